package emailsend

import (
	"context"

	"outreach-campaigns/internal/common/logger"
)

// Message is a fully rendered email ready for a transport.
type Message struct {
	From        string
	To          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
	Headers     map[string]string
	// MessageID becomes the Message-ID header when set.
	MessageID string
}

// Attachment is read from Path unless Content is already set.
type Attachment struct {
	Filename    string `json:"filename"`
	Path        string `json:"path,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Content     []byte `json:"-"`
}

// Sender delivers a message and returns the transport's message id.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

type ServiceDependencies struct {
	Logger    logger.Logger
	SESClient SESService
}
