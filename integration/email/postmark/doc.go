// Package postmark implements email.EmailSender on top of the Postmark
// transactional API.
//
//	sender, err := postmark.New(postmark.Config{
//		PostmarkServerToken:  serverToken,
//		PostmarkAccountToken: accountToken,
//		SenderEmail:          "noreply@example.com",
//		SupportEmail:         "support@example.com",
//	})
//
// Every message tracks opens and HTML link clicks. Postmark API errors
// (non-zero ErrorCode) are returned joined with email.ErrFailedToSendEmail.
package postmark
