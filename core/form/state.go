package form

import "github.com/dmitrymomot/contactform/core/validator"

// FieldState is the presentation view of one field.
type FieldState struct {
	Name        string
	Kind        validator.Kind
	Label       string
	Placeholder string
	Value       string
	Error       string
	Required    bool
	MaxLength   int
}

// Invalid reports whether the field has an error to display.
func (f FieldState) Invalid() bool {
	return f.Error != ""
}

// State is the presentation view of the whole form.
type State struct {
	Fields             []FieldState
	SubmissionInFlight bool
	Submitted          bool
}

// Field returns the state of the named field.
func (s State) Field(name string) (FieldState, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldState{}, false
}

// Valid reports whether no field has an error.
func (s State) Valid() bool {
	for _, f := range s.Fields {
		if f.Invalid() {
			return false
		}
	}
	return true
}

// LabelKey returns the message key of a field label.
func LabelKey(name string) string {
	return "form." + name
}

// Snapshot captures the form in registry order with labels and errors
// resolved for the active language.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	state := State{
		Fields:             make([]FieldState, 0, c.registry.Len()),
		SubmissionInFlight: c.inFlight,
		Submitted:          c.submitted,
	}
	for _, desc := range c.registry.fields {
		state.Fields = append(state.Fields, FieldState{
			Name:      desc.Name,
			Kind:      desc.Kind,
			Value:     c.values[desc.Name],
			Error:     c.errors[desc.Name].Localize(c.translator),
			Required:  desc.Required,
			MaxLength: desc.MaxLength,
		})
	}
	c.mu.Unlock()

	for i := range state.Fields {
		label := c.translator.T(LabelKey(state.Fields[i].Name))
		state.Fields[i].Label = label
		state.Fields[i].Placeholder = label
	}

	return state
}
