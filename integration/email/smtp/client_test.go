package smtp_test

import (
	"context"
	"io"
	"net"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/core/email"
	"github.com/dmitrymomot/contactform/integration/email/smtp"
)

func TestNew(t *testing.T) {
	t.Parallel()

	valid := smtp.Config{
		Host:        "smtp.example.com",
		Port:        587,
		Username:    "user",
		Password:    "secret",
		TLSMode:     smtp.ModeSTARTTLS,
		SenderEmail: "noreply@example.com",
	}

	tests := []struct {
		name   string
		modify func(*smtp.Config)
		ok     bool
	}{
		{name: "valid", modify: func(*smtp.Config) {}, ok: true},
		{name: "no auth", modify: func(c *smtp.Config) { c.Username, c.Password = "", "" }, ok: true},
		{name: "direct tls", modify: func(c *smtp.Config) { c.TLSMode = smtp.ModeTLS }, ok: true},
		{name: "empty host", modify: func(c *smtp.Config) { c.Host = "" }},
		{name: "zero port", modify: func(c *smtp.Config) { c.Port = 0 }},
		{name: "port too high", modify: func(c *smtp.Config) { c.Port = 70000 }},
		{name: "unknown tls mode", modify: func(c *smtp.Config) { c.TLSMode = "ssl" }},
		{name: "invalid sender", modify: func(c *smtp.Config) { c.SenderEmail = "nope" }},
		{name: "username without password", modify: func(c *smtp.Config) { c.Password = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.modify(&cfg)

			c, err := smtp.New(cfg)
			if tt.ok {
				require.NoError(t, err)
				assert.NotNil(t, c)
				return
			}
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
		})
	}

	t.Run("must panics on invalid config", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { smtp.MustNewClient(smtp.Config{}) })
	})
}

// fakeServer accepts one plain SMTP session and records the envelope.
// The recorded data has \n line endings, as returned by the dot reader.
type fakeServer struct {
	ln net.Listener

	mu   sync.Mutex
	from string
	to   string
	data string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	s := &fakeServer{ln: ln}
	go s.serve()
	return s
}

func (s *fakeServer) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeServer) serve() {
	conn, err := s.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 localhost ESMTP")

	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		cmd := strings.ToUpper(strings.SplitN(line, " ", 2)[0])

		switch cmd {
		case "EHLO", "HELO":
			_ = tp.PrintfLine("250 localhost")
		case "MAIL":
			s.mu.Lock()
			s.from = line
			s.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case "RCPT":
			s.mu.Lock()
			s.to = line
			s.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case "DATA":
			_ = tp.PrintfLine("354 go ahead")
			data, err := io.ReadAll(tp.DotReader())
			if err != nil {
				return
			}
			s.mu.Lock()
			s.data = string(data)
			s.mu.Unlock()
			_ = tp.PrintfLine("250 queued")
		case "QUIT":
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("502 not implemented")
		}
	}
}

func TestSendEmail(t *testing.T) {
	t.Parallel()

	params := email.SendEmailParams{
		SendTo:   "support@example.com",
		ReplyTo:  "jane@example.com",
		Subject:  "Nouveau message de Zoé",
		BodyHTML: "<p>Hello</p>",
		Tag:      "contact-form",
	}

	t.Run("delivers over a plain connection", func(t *testing.T) {
		t.Parallel()

		srv := newFakeServer(t)
		c, err := smtp.New(smtp.Config{
			Host:        "127.0.0.1",
			Port:        srv.port(),
			TLSMode:     smtp.ModePlain,
			SenderEmail: "noreply@example.com",
			Timeout:     5 * time.Second,
		})
		require.NoError(t, err)
		c.SetClock(func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) })

		require.NoError(t, c.SendEmail(context.Background(), params))

		srv.mu.Lock()
		defer srv.mu.Unlock()
		assert.Contains(t, srv.from, "<noreply@example.com>")
		assert.Contains(t, srv.to, "<support@example.com>")
		assert.Contains(t, srv.data, "From: noreply@example.com\n")
		assert.Contains(t, srv.data, "To: support@example.com\n")
		assert.Contains(t, srv.data, "Reply-To: jane@example.com\n")
		assert.Contains(t, srv.data, "Subject: =?utf-8?q?")
		assert.Contains(t, srv.data, "Date: Fri, 02 Jan 2026 03:04:05 +0000\n")
		assert.Contains(t, srv.data, "X-Tag: contact-form\n")
		assert.True(t, strings.HasSuffix(strings.TrimRight(srv.data, "\r\n"), "<p>Hello</p>"))
	})

	t.Run("invalid params are rejected before connecting", func(t *testing.T) {
		t.Parallel()

		c := smtp.MustNewClient(smtp.Config{
			Host: "127.0.0.1", Port: 1, TLSMode: smtp.ModePlain, SenderEmail: "noreply@example.com",
		})
		err := c.SendEmail(context.Background(), email.SendEmailParams{SendTo: "nope"})
		assert.ErrorIs(t, err, email.ErrInvalidParams)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		c := smtp.MustNewClient(smtp.Config{
			Host: "127.0.0.1", Port: 1, TLSMode: smtp.ModePlain, SenderEmail: "noreply@example.com",
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := c.SendEmail(ctx, params)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		port := ln.Addr().(*net.TCPAddr).Port
		require.NoError(t, ln.Close())

		c := smtp.MustNewClient(smtp.Config{
			Host: "127.0.0.1", Port: port, TLSMode: smtp.ModePlain, SenderEmail: "noreply@example.com",
			Timeout: time.Second,
		})
		err = c.SendEmail(context.Background(), params)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "connect")
	})
}
