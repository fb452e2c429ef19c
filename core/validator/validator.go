package validator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/contactform/core/i18n"
)

// Message keys produced by Check.
const (
	KeyRequired  = "form.error.required"
	KeyMinLength = "form.error.minLength"
	KeyMaxLength = "form.error.maxLength"
	KeyPattern   = "form.error.pattern"
	ParamMin     = "min"
	ParamMax     = "max"
)

// Translator resolves a message key for the active language.
// *i18n.Translator satisfies it.
type Translator interface {
	T(key string, params ...i18n.M) string
}

// Result is the unlocalized outcome of validating one field.
// A zero Key means the value is valid.
type Result struct {
	Field  string
	Key    string
	Params i18n.M
}

// Valid reports whether the result carries no error.
func (r Result) Valid() bool {
	return r.Key == ""
}

// Localize resolves the error message through t.
// Returns an empty string for a valid result.
func (r Result) Localize(t Translator) string {
	if r.Valid() || t == nil {
		return ""
	}
	if len(r.Params) == 0 {
		return t.T(r.Key)
	}
	return t.T(r.Key, r.Params)
}

// Check evaluates the rules of desc against raw in strict order and stops at
// the first failure: required, min length, max length, pattern.
// Requiredness and pattern use the trimmed value; length bounds count the
// runes of the untrimmed value. Empty optional values are always valid.
func Check(desc Descriptor, raw string) Result {
	res := Result{Field: desc.Name}
	trimmed := Trim(raw)

	if trimmed == "" {
		if desc.Required {
			res.Key = KeyRequired
		}
		return res
	}

	length := utf8.RuneCountInString(raw)
	switch {
	case desc.MinLength > 0 && length < desc.MinLength:
		res.Key = KeyMinLength
		res.Params = i18n.M{ParamMin: desc.MinLength}
	case desc.MaxLength > 0 && length > desc.MaxLength:
		res.Key = KeyMaxLength
		res.Params = i18n.M{ParamMax: desc.MaxLength}
	case desc.Pattern != nil && !desc.Pattern.MatchString(trimmed):
		res.Key = desc.PatternErrorKey
		if res.Key == "" {
			res.Key = KeyPattern
		}
	}

	return res
}

// Trim removes the whitespace a browser's String.prototype.trim removes:
// space separators, tab, line terminators, NBSP and the byte order mark.
// U+0085 is kept.
func Trim(s string) string {
	return strings.TrimFunc(s, isTrimSpace)
}

func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u00a0', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// Validate runs Check and resolves the message with t in one step.
func Validate(desc Descriptor, raw string, t Translator) (Result, string) {
	res := Check(desc, raw)
	return res, res.Localize(t)
}
