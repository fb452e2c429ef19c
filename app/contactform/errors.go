package contactform

import "errors"

var (
	ErrUnknownTransport       = errors.New("unknown submission transport")
	ErrUnknownPreferenceStore = errors.New("unknown preference store")
	ErrMissingRecipient       = errors.New("mail recipient is not configured")
	ErrMissingDependency      = errors.New("required dependency is not provided")
	ErrSessionClosed          = errors.New("session registry is closed")
)
