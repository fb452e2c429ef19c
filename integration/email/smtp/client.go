package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/contactform/core/email"
)

// TLS modes.
const (
	ModeSTARTTLS = "starttls"
	ModeTLS      = "tls"
	ModePlain    = "plain"
)

const defaultTimeout = 10 * time.Second

// Client sends mail over SMTP, one connection per message.
type Client struct {
	config Config
	auth   smtp.Auth
	now    func() time.Time
}

// New validates cfg and creates a client. Authentication is used only when
// a username is configured.
func New(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: host is required", email.ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: port must be between 1 and 65535", email.ErrInvalidConfig)
	}
	switch cfg.TLSMode {
	case ModeSTARTTLS, ModeTLS, ModePlain:
	default:
		return nil, fmt.Errorf("%w: tls mode must be starttls, tls or plain", email.ErrInvalidConfig)
	}
	if !email.IsValidAddress(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: sender must be a valid address", email.ErrInvalidConfig)
	}
	if cfg.Username != "" && cfg.Password == "" {
		return nil, fmt.Errorf("%w: password is required with a username", email.ErrInvalidConfig)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	c := &Client{config: cfg, now: time.Now}
	if cfg.Username != "" {
		c.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return c, nil
}

// MustNewClient is like New but panics on error.
func MustNewClient(cfg Config) *Client {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// SendEmail implements email.EmailSender. The context bounds the whole
// SMTP exchange.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	if err := params.Validate(); err != nil {
		return err
	}

	if err := c.send(ctx, params.SendTo, c.buildMessage(params)); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, to string, message []byte) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	addr := net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port))

	var (
		conn net.Conn
		err  error
	)
	if c.config.TLSMode == ModeTLS {
		d := &tls.Dialer{Config: &tls.Config{ServerName: c.config.Host}}
		conn, err = d.DialContext(ctx, "tcp", addr)
	} else {
		var d net.Dialer
		conn, err = d.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return fmt.Errorf("set deadline: %w", err)
		}
	}

	client, err := smtp.NewClient(conn, c.config.Host)
	if err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	defer client.Close()

	if c.config.TLSMode == ModeSTARTTLS {
		if err := client.StartTLS(&tls.Config{ServerName: c.config.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if c.auth != nil {
		if err := client.Auth(c.auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := client.Mail(c.config.SenderEmail); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		_ = w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}

	// The message is accepted at this point; some servers drop the
	// connection instead of answering QUIT.
	_ = client.Quit()
	return nil
}

// buildMessage renders the MIME message with a stable header order.
func (c *Client) buildMessage(params email.SendEmailParams) []byte {
	headers := [][2]string{
		{"From", c.config.SenderEmail},
		{"To", params.SendTo},
	}
	if params.ReplyTo != "" {
		headers = append(headers, [2]string{"Reply-To", params.ReplyTo})
	}
	headers = append(headers,
		[2]string{"Subject", mime.QEncoding.Encode("utf-8", params.Subject)},
		[2]string{"Date", c.now().Format(time.RFC1123Z)},
		[2]string{"Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), c.config.Host)},
		[2]string{"MIME-Version", "1.0"},
		[2]string{"Content-Type", `text/html; charset="UTF-8"`},
	)
	if params.Tag != "" {
		headers = append(headers, [2]string{"X-Tag", params.Tag})
	}

	var b strings.Builder
	for _, h := range headers {
		b.WriteString(h[0])
		b.WriteString(": ")
		b.WriteString(h[1])
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(params.BodyHTML)

	return []byte(b.String())
}
