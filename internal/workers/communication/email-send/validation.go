package emailsend

import (
	"errors"
	"fmt"
	"strings"

	"outreach-campaigns/internal/common/validation"
)

var (
	ErrInvalidAddress = errors.New("INVALID_EMAIL")
	ErrEmptyMessage   = errors.New("EMPTY_MESSAGE")
)

// ValidateAddresses checks the sender and every recipient.
func ValidateAddresses(from string, to []string) error {
	if !validation.ValidateEmail(strings.TrimSpace(from)) {
		return fmt.Errorf("%w: from %q", ErrInvalidAddress, from)
	}
	if len(to) == 0 {
		return fmt.Errorf("%w: no recipients", ErrInvalidAddress)
	}
	for _, addr := range to {
		if !validation.ValidateEmail(strings.TrimSpace(addr)) {
			return fmt.Errorf("%w: to %q", ErrInvalidAddress, addr)
		}
	}
	return nil
}

func validateMessage(msg *Message) error {
	if msg == nil {
		return ErrEmptyMessage
	}
	if err := ValidateAddresses(msg.From, msg.To); err != nil {
		return err
	}
	if msg.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrEmptyMessage)
	}
	if msg.HTML == "" && msg.Text == "" {
		return fmt.Errorf("%w: html or text body is required", ErrEmptyMessage)
	}
	for _, a := range msg.Attachments {
		if a.Filename == "" {
			return fmt.Errorf("%w: attachment without filename", ErrEmptyMessage)
		}
		if a.Path == "" && a.Content == nil {
			return fmt.Errorf("%w: attachment %s has no content", ErrEmptyMessage, a.Filename)
		}
	}
	return nil
}
