package validator

import (
	"fmt"
	"regexp"
)

// Kind is the input kind of a field.
type Kind string

// Supported field kinds.
const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindTel      Kind = "tel"
	KindTextarea Kind = "textarea"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindEmail, KindTel, KindTextarea:
		return true
	}
	return false
}

// Multiline reports whether the field renders as a multi-line input.
func (k Kind) Multiline() bool {
	return k == KindTextarea
}

// Descriptor is the static configuration of one form field.
// Zero MinLength or MaxLength means the bound is not set.
type Descriptor struct {
	Name            string
	Kind            Kind
	Required        bool
	MinLength       int
	MaxLength       int
	Pattern         *Pattern
	PatternErrorKey string
}

// Pattern is a regular expression matched against the whole value.
type Pattern struct {
	expr string
	re   *regexp.Regexp
}

// CompilePattern compiles expr anchored at both ends so that a match always
// covers the full value.
func CompilePattern(expr string) (*Pattern, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, expr, err)
	}
	return &Pattern{expr: expr, re: re}, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(expr string) *Pattern {
	p, err := CompilePattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// MatchString reports whether s fully matches the pattern.
func (p *Pattern) MatchString(s string) bool {
	return p.re.MatchString(s)
}

// String returns the source expression.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.expr
}
