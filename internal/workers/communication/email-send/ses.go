package emailsend

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/google/uuid"

	"outreach-campaigns/internal/common/logger"
)

// SESService is the subset of the SES client used for raw sends.
type SESService interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESSender delivers mail through Amazon SES. Raw sends keep custom headers
// and attachments intact.
type SESSender struct {
	config *Config
	client SESService
	logger logger.Logger
	now    func() time.Time
}

func NewSESSender(deps ServiceDependencies, config *Config) *SESSender {
	return &SESSender{
		config: config,
		client: deps.SESClient,
		logger: logger.ForComponent(deps.Logger, "email-send"),
		now:    time.Now,
	}
}

func (s *SESSender) Send(ctx context.Context, msg *Message) (string, error) {
	if err := validateMessage(msg); err != nil {
		return "", err
	}

	id := msg.MessageID
	if id == "" {
		id = uuid.NewString()
	}
	raw, err := buildMIME(msg, formatMessageID(id, "outreach"), s.now())
	if err != nil {
		return "", fmt.Errorf("build message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	out, err := s.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(msg.From),
		Destinations: msg.To,
		RawMessage:   &types.RawMessage{Data: raw},
	})
	if err != nil {
		return "", err
	}

	messageID := aws.ToString(out.MessageId)
	s.logger.Debug("Email sent via SES", map[string]interface{}{
		"messageId": messageID,
	})
	return messageID, nil
}
