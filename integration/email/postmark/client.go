package postmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/contactform/core/email"
)

// api is the subset of the Postmark client used here.
type api interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// Client sends email through the Postmark transactional API.
type Client struct {
	api    api
	config Config
}

// New creates a Postmark-backed email sender.
func New(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Client{
		api:    postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// MustNewClient is like New but panics on invalid configuration.
func MustNewClient(cfg Config) *Client {
	client, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

func (cfg Config) validate() error {
	switch {
	case cfg.PostmarkServerToken == "":
		return fmt.Errorf("%w: PostmarkServerToken is required", email.ErrInvalidConfig)
	case cfg.PostmarkAccountToken == "":
		return fmt.Errorf("%w: PostmarkAccountToken is required", email.ErrInvalidConfig)
	case !email.IsValidAddress(cfg.SenderEmail):
		return fmt.Errorf("%w: SenderEmail must be a valid email address", email.ErrInvalidConfig)
	case !email.IsValidAddress(cfg.SupportEmail):
		return fmt.Errorf("%w: SupportEmail must be a valid email address", email.ErrInvalidConfig)
	}
	return nil
}

// SendEmail implements email.EmailSender. Replies go to params.ReplyTo, or to
// the support address when it is empty. Opens and HTML link clicks are
// tracked.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	replyTo := params.ReplyTo
	if replyTo == "" {
		replyTo = c.config.SupportEmail
	}

	resp, err := c.api.SendEmail(ctx, postmark.Email{
		From:       c.config.SenderEmail,
		ReplyTo:    replyTo,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			email.ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
