package contactform_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/app/contactform"
	"github.com/dmitrymomot/contactform/core/email"
)

type recordingSender struct {
	sent []email.SendEmailParams
	err  error
}

func (s *recordingSender) SendEmail(_ context.Context, params email.SendEmailParams) error {
	s.sent = append(s.sent, params)
	return s.err
}

func newMailSubmitter(t *testing.T, sender email.EmailSender, recipient string) (*contactform.MailSubmitter, error) {
	t.Helper()

	resolver, err := contactform.NewResolver(nil)
	require.NoError(t, err)
	registry, err := contactform.LoadFields("")
	require.NoError(t, err)

	return contactform.NewMailSubmitter(sender, resolver, registry, recipient)
}

func TestMailSubmitter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("sends a sanitized message", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{}
		m, err := newMailSubmitter(t, sender, "support@example.com")
		require.NoError(t, err)

		err = m.Submit(ctx, map[string]string{
			"name":    "Jane <b>Doe</b>",
			"email":   "jane@example.com",
			"phone":   "",
			"message": "Hi & bye <script>alert(1)</script>",
		})
		require.NoError(t, err)
		require.Len(t, sender.sent, 1)

		params := sender.sent[0]
		assert.Equal(t, "support@example.com", params.SendTo)
		assert.Equal(t, "jane@example.com", params.ReplyTo)
		assert.Equal(t, "New contact form message from Jane Doe", params.Subject)
		assert.Equal(t, "contact-form", params.Tag)

		assert.Contains(t, params.BodyHTML, "Full Name")
		assert.Contains(t, params.BodyHTML, "Jane Doe")
		assert.Contains(t, params.BodyHTML, "Hi &amp; bye")
		assert.NotContains(t, params.BodyHTML, "<script>")
		assert.NotContains(t, params.BodyHTML, "<b>")
		assert.Less(t, strings.Index(params.BodyHTML, "Full Name"), strings.Index(params.BodyHTML, "Your Message"))
	})

	t.Run("invalid reply address is dropped", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{}
		m, err := newMailSubmitter(t, sender, "support@example.com")
		require.NoError(t, err)

		require.NoError(t, m.Submit(ctx, map[string]string{"name": "Jane", "email": "nope"}))
		assert.Empty(t, sender.sent[0].ReplyTo)
	})

	t.Run("sender errors are returned", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		m, err := newMailSubmitter(t, &recordingSender{err: boom}, "support@example.com")
		require.NoError(t, err)

		assert.ErrorIs(t, m.Submit(ctx, map[string]string{"name": "Jane"}), boom)
	})

	t.Run("recipient is required", func(t *testing.T) {
		t.Parallel()

		_, err := newMailSubmitter(t, &recordingSender{}, "")
		assert.ErrorIs(t, err, contactform.ErrMissingRecipient)
	})

	t.Run("dev transport writes mails to disk", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		m, err := newMailSubmitter(t, email.NewDevSender(dir), "support@example.com")
		require.NoError(t, err)

		require.NoError(t, m.Submit(ctx, map[string]string{
			"name":    "Jane Doe",
			"email":   "jane@example.com",
			"message": "Hello there, this is a test message.",
		}))

		files, err := filepath.Glob(filepath.Join(dir, "*.html"))
		require.NoError(t, err)
		require.Len(t, files, 1)

		body, err := os.ReadFile(files[0])
		require.NoError(t, err)
		assert.Contains(t, string(body), "Hello there, this is a test message.")
	})
}
