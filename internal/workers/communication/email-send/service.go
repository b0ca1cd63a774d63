package emailsend

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"outreach-campaigns/internal/common/logger"
)

// sendMailFunc matches smtp.SendMail so tests can capture outgoing mail.
type sendMailFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers mail through an SMTP relay, upgrading with STARTTLS when configured.
type SMTPSender struct {
	config   *Config
	logger   logger.Logger
	sendMail sendMailFunc
	now      func() time.Time
}

func NewSMTPSender(deps ServiceDependencies, config *Config) *SMTPSender {
	s := &SMTPSender{
		config: config,
		logger: logger.ForComponent(deps.Logger, "email-send"),
		now:    time.Now,
	}
	s.sendMail = smtp.SendMail
	if config.UseTLS {
		s.sendMail = s.sendWithTLS
	}
	return s
}

func (s *SMTPSender) Send(ctx context.Context, msg *Message) (string, error) {
	if err := validateMessage(msg); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context cancelled before sending email: %w", err)
	}

	messageID := s.messageIDFor(msg)
	raw, err := buildMIME(msg, messageID, s.now())
	if err != nil {
		return "", fmt.Errorf("build message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	var auth smtp.Auth
	if s.config.SMTPUsername != "" && s.config.SMTPPassword != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := s.sendMail(addr, auth, msg.From, msg.To, raw); err != nil {
		return "", err
	}

	s.logger.Debug("Email sent", map[string]interface{}{
		"to":        strings.Join(msg.To, ","),
		"messageId": messageID,
	})
	return messageID, nil
}

func (s *SMTPSender) sendWithTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if err = client.StartTLS(&tls.Config{ServerName: s.config.SMTPHost}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

func (s *SMTPSender) messageIDFor(msg *Message) string {
	if msg.MessageID != "" {
		return formatMessageID(msg.MessageID, s.config.SMTPHost)
	}
	return fmt.Sprintf("<%d.%s@%s>", s.now().UnixNano(), uuid.NewString()[:8], s.config.SMTPHost)
}

// formatMessageID wraps a bare id as <id@domain>.
func formatMessageID(id, domain string) string {
	if strings.HasPrefix(id, "<") && strings.HasSuffix(id, ">") {
		return id
	}
	if strings.Contains(id, "@") {
		return "<" + id + ">"
	}
	return fmt.Sprintf("<%s@%s>", id, domain)
}

// TestConnection dials the relay and negotiates TLS without sending anything.
func (s *SMTPSender) TestConnection(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if s.config.UseTLS {
		if err = client.StartTLS(&tls.Config{ServerName: s.config.SMTPHost}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}
	return client.Quit()
}

// NewSender builds the transport selected by config.Provider.
func NewSender(deps ServiceDependencies, config *Config) (Sender, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}
	switch config.Provider {
	case ProviderSES:
		if deps.SESClient == nil {
			return nil, fmt.Errorf("ses client is required for provider %q", ProviderSES)
		}
		return NewSESSender(deps, config), nil
	default:
		return NewSMTPSender(deps, config), nil
	}
}
