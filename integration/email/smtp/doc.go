// Package smtp implements email.EmailSender over a plain SMTP server.
//
//	sender, err := smtp.New(smtp.Config{
//		Host:        "smtp.example.com",
//		Port:        587,
//		Username:    "user",
//		Password:    "secret",
//		TLSMode:     smtp.ModeSTARTTLS,
//		SenderEmail: "noreply@example.com",
//	})
//
// Each message opens its own connection. TLSMode selects STARTTLS on a
// plain connection, direct TLS (usually port 465) or no encryption for
// local relays. The Reply-To header is taken from the message parameters.
package smtp
