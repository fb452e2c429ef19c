package postmark

import (
	"context"

	"github.com/mrz1836/postmark"
)

// APIFunc lets tests replace the Postmark API client.
type APIFunc func(ctx context.Context, e postmark.Email) (postmark.EmailResponse, error)

func (f APIFunc) SendEmail(ctx context.Context, e postmark.Email) (postmark.EmailResponse, error) {
	return f(ctx, e)
}

// SetAPI swaps the underlying API client.
func (c *Client) SetAPI(a APIFunc) {
	c.api = a
}
