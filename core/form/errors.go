package form

import (
	"errors"

	"github.com/dmitrymomot/contactform/core/validator"
)

var (
	ErrEmptyRegistry      = errors.New("registry has no fields")
	ErrEmptyFieldName     = errors.New("field name cannot be empty")
	ErrDuplicateField     = errors.New("duplicate field name")
	ErrUnknownKind        = errors.New("unknown field kind")
	ErrInvalidBounds      = errors.New("invalid length bounds")
	ErrNilRegistry        = errors.New("registry is not provided")
	ErrNilTranslator      = errors.New("translator is not provided")
	ErrInvalidResetDelay  = errors.New("reset delay cannot be negative")
	ErrUnknownField       = errors.New("unknown field")
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrAlreadySubmitted   = errors.New("form already submitted")
	ErrSubmissionFailed   = errors.New("submission failed")
	ErrClosed             = errors.New("form is closed")

	// ErrValidationFailed is returned (wrapped in validator.ValidationErrors)
	// when Submit finds invalid fields.
	ErrValidationFailed = validator.ErrValidationFailed
)
