package validator

import (
	"errors"
	"strings"
)

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidPattern   = errors.New("invalid pattern")
)

// ValidationErrors collects the failed results of a form, in field order.
type ValidationErrors []Result

// Add appends r when it carries an error. Valid results are ignored.
func (e *ValidationErrors) Add(r Result) {
	if r.Valid() {
		return
	}
	*e = append(*e, r)
}

// Has reports whether field has an error.
func (e ValidationErrors) Has(field string) bool {
	_, ok := e.Get(field)
	return ok
}

// Get returns the first error recorded for field.
func (e ValidationErrors) Get(field string) (Result, bool) {
	for _, r := range e {
		if r.Field == field {
			return r, true
		}
	}
	return Result{}, false
}

// Fields returns the names of the failed fields in order.
func (e ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, r := range e {
		fields = append(fields, r.Field)
	}
	return fields
}

// IsEmpty reports whether no errors were collected.
func (e ValidationErrors) IsEmpty() bool {
	return len(e) == 0
}

// Localize resolves every error message through t, keyed by field.
func (e ValidationErrors) Localize(t Translator) map[string]string {
	messages := make(map[string]string, len(e))
	for _, r := range e {
		messages[r.Field] = r.Localize(t)
	}
	return messages
}

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, 0, len(e))
	for _, r := range e {
		parts = append(parts, r.Field+": "+r.Key)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap allows errors.Is(err, ErrValidationFailed).
func (e ValidationErrors) Unwrap() error {
	return ErrValidationFailed
}
