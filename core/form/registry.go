package form

import (
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/contactform/core/validator"
)

// Patterns of the contact form.
const (
	EmailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	PhonePattern = `^[+]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}$`
)

// Registry is the ordered, immutable list of field descriptors of a form.
// Order defines render and tab order.
type Registry struct {
	fields []validator.Descriptor
	index  map[string]int
}

// NewRegistry validates descs and returns a registry preserving their order.
func NewRegistry(descs ...validator.Descriptor) (*Registry, error) {
	if len(descs) == 0 {
		return nil, ErrEmptyRegistry
	}

	r := &Registry{
		fields: make([]validator.Descriptor, 0, len(descs)),
		index:  make(map[string]int, len(descs)),
	}

	for _, d := range descs {
		if d.Name == "" {
			return nil, ErrEmptyFieldName
		}
		if _, exists := r.index[d.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, d.Name)
		}
		if !d.Kind.Valid() {
			return nil, fmt.Errorf("%w: %q for field %s", ErrUnknownKind, d.Kind, d.Name)
		}
		if d.MinLength < 0 || d.MaxLength < 0 {
			return nil, fmt.Errorf("%w: negative bound for field %s", ErrInvalidBounds, d.Name)
		}
		if d.MinLength > 0 && d.MaxLength > 0 && d.MinLength > d.MaxLength {
			return nil, fmt.Errorf("%w: min %d > max %d for field %s", ErrInvalidBounds, d.MinLength, d.MaxLength, d.Name)
		}

		r.index[d.Name] = len(r.fields)
		r.fields = append(r.fields, d)
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(descs ...validator.Descriptor) *Registry {
	r, err := NewRegistry(descs...)
	if err != nil {
		panic(err)
	}
	return r
}

// ContactFields returns the registry of the contact form:
// name, email, phone and message.
func ContactFields() *Registry {
	return MustNewRegistry(
		validator.Descriptor{
			Name:      "name",
			Kind:      validator.KindText,
			Required:  true,
			MinLength: 2,
			MaxLength: 50,
		},
		validator.Descriptor{
			Name:            "email",
			Kind:            validator.KindEmail,
			Required:        true,
			Pattern:         validator.MustCompilePattern(EmailPattern),
			PatternErrorKey: "form.error.email",
		},
		validator.Descriptor{
			Name:            "phone",
			Kind:            validator.KindTel,
			Pattern:         validator.MustCompilePattern(PhonePattern),
			PatternErrorKey: "form.error.pattern",
		},
		validator.Descriptor{
			Name:      "message",
			Kind:      validator.KindTextarea,
			Required:  true,
			MinLength: 10,
			MaxLength: 500,
		},
	)
}

// Fields returns a copy of the descriptors in order.
func (r *Registry) Fields() []validator.Descriptor {
	return slices.Clone(r.fields)
}

// Lookup returns the descriptor of the named field.
func (r *Registry) Lookup(name string) (validator.Descriptor, bool) {
	i, ok := r.index[name]
	if !ok {
		return validator.Descriptor{}, false
	}
	return r.fields[i], true
}

// Names returns the field names in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.fields))
	for i, d := range r.fields {
		names[i] = d.Name
	}
	return names
}

// Len returns the number of fields.
func (r *Registry) Len() int {
	return len(r.fields)
}

// FieldSpec is the file representation of a descriptor.
type FieldSpec struct {
	Name            string `yaml:"name"`
	Kind            string `yaml:"kind"`
	Required        bool   `yaml:"required,omitempty"`
	MinLength       int    `yaml:"minLength,omitempty"`
	MaxLength       int    `yaml:"maxLength,omitempty"`
	Pattern         string `yaml:"pattern,omitempty"`
	PatternErrorKey string `yaml:"patternErrorKey,omitempty"`
}

type registryFile struct {
	Fields []FieldSpec `yaml:"fields"`
}

// LoadRegistry decodes a YAML document of the form
//
//	fields:
//	  - name: name
//	    kind: text
//	    required: true
//	    minLength: 2
//
// and builds a registry from it.
func LoadRegistry(rd io.Reader) (*Registry, error) {
	var file registryFile
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyRegistry
		}
		return nil, fmt.Errorf("decode registry: %w", err)
	}

	descs := make([]validator.Descriptor, 0, len(file.Fields))
	for _, spec := range file.Fields {
		d := validator.Descriptor{
			Name:            spec.Name,
			Kind:            validator.Kind(spec.Kind),
			Required:        spec.Required,
			MinLength:       spec.MinLength,
			MaxLength:       spec.MaxLength,
			PatternErrorKey: spec.PatternErrorKey,
		}
		if spec.Pattern != "" {
			p, err := validator.CompilePattern(spec.Pattern)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", spec.Name, err)
			}
			d.Pattern = p
		}
		descs = append(descs, d)
	}

	return NewRegistry(descs...)
}

// Specs returns the file representation of every descriptor in order.
func (r *Registry) Specs() []FieldSpec {
	specs := make([]FieldSpec, len(r.fields))
	for i, d := range r.fields {
		specs[i] = FieldSpec{
			Name:            d.Name,
			Kind:            string(d.Kind),
			Required:        d.Required,
			MinLength:       d.MinLength,
			MaxLength:       d.MaxLength,
			Pattern:         d.Pattern.String(),
			PatternErrorKey: d.PatternErrorKey,
		}
	}
	return specs
}

// WriteYAML encodes the registry in the format read by LoadRegistry.
func (r *Registry) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(registryFile{Fields: r.Specs()}); err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	return enc.Close()
}
