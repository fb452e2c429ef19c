package smtp

import "time"

// Config holds SMTP server settings. Validation happens in New so the
// variables can stay unset when another transport is used.
type Config struct {
	Host        string        `env:"SMTP_HOST"`
	Port        int           `env:"SMTP_PORT" envDefault:"587"`
	Username    string        `env:"SMTP_USERNAME"`
	Password    string        `env:"SMTP_PASSWORD"`
	TLSMode     string        `env:"SMTP_TLS_MODE" envDefault:"starttls"` // starttls, tls or plain
	SenderEmail string        `env:"SMTP_SENDER_EMAIL"`
	Timeout     time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
}
