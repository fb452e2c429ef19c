// Package email defines the EmailSender abstraction used to deliver contact
// form submissions, plus a development sender that writes messages to disk.
//
//	sender := email.NewDevSender("./tmp/emails")
//
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "support@example.com",
//		ReplyTo:  "jane@example.com",
//		Subject:  "New contact request from Jane",
//		BodyHTML: body,
//		Tag:      "contact-form",
//	})
//
// Production senders live under integration/email.
package email
