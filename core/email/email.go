package email

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// EmailSender delivers a single HTML email.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams describes one outgoing email.
type SendEmailParams struct {
	SendTo   string
	ReplyTo  string
	Subject  string
	BodyHTML string
	Tag      string
}

// addressRegex is a simple address check shared by senders.
var addressRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidAddress reports whether s looks like an email address.
func IsValidAddress(s string) bool {
	return addressRegex.MatchString(s)
}

// Validate checks the parameters and joins every problem into one error
// wrapping ErrInvalidParams.
func (p SendEmailParams) Validate() error {
	var errs []error

	if strings.TrimSpace(p.SendTo) == "" {
		errs = append(errs, errors.New("recipient is required"))
	} else if !IsValidAddress(p.SendTo) {
		errs = append(errs, fmt.Errorf("recipient %q is not a valid address", p.SendTo))
	}
	if p.ReplyTo != "" && !IsValidAddress(p.ReplyTo) {
		errs = append(errs, fmt.Errorf("reply-to %q is not a valid address", p.ReplyTo))
	}
	if strings.TrimSpace(p.Subject) == "" {
		errs = append(errs, errors.New("subject is required"))
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		errs = append(errs, errors.New("body is required"))
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidParams}, errs...)...)
}
