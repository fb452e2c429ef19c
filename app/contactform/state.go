package contactform

import (
	"github.com/dmitrymomot/contactform/core/form"
	"github.com/dmitrymomot/contactform/core/preference"
)

// Submit button labels outside the idle state.
const (
	submitLabelInFlight  = "..."
	submitLabelSubmitted = "✓"
)

// FieldView is the client representation of one field.
type FieldView struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Value       string `json:"value"`
	Error       string `json:"error,omitempty"`
	Required    bool   `json:"required"`
	MaxLength   int    `json:"maxLength,omitempty"`
}

// StateView is the client representation of a visitor's widget.
type StateView struct {
	Fields             []FieldView `json:"fields"`
	SubmissionInFlight bool        `json:"submissionInFlight"`
	Submitted          bool        `json:"submitted"`
	SubmitLabel        string      `json:"submitLabel"`
	Language           string      `json:"language"`
	Direction          string      `json:"direction"`
	Theme              string      `json:"theme"`
	Toast              string      `json:"toast,omitempty"`
}

func newStateView(sess *Session, toast string) StateView {
	snap := sess.Form.Snapshot()

	fields := make([]FieldView, 0, len(snap.Fields))
	for _, f := range snap.Fields {
		fields = append(fields, FieldView{
			Name:        f.Name,
			Kind:        string(f.Kind),
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Value:       f.Value,
			Error:       f.Error,
			Required:    f.Required,
			MaxLength:   f.MaxLength,
		})
	}

	return StateView{
		Fields:             fields,
		SubmissionInFlight: snap.SubmissionInFlight,
		Submitted:          snap.Submitted,
		SubmitLabel:        submitLabel(sess, snap),
		Language:           sess.Language.Language(),
		Direction:          sess.Language.Direction(),
		Theme:              string(sess.Theme.Theme()),
		Toast:              toast,
	}
}

func submitLabel(sess *Session, snap form.State) string {
	switch {
	case snap.SubmissionInFlight:
		return submitLabelInFlight
	case snap.Submitted:
		return submitLabelSubmitted
	}
	return sess.Translator.T("form.submit")
}

// PageView holds everything the page template renders.
type PageView struct {
	State         StateView
	Dark          bool
	Badge         string
	Title         string
	Subtitle      string
	ResetLabel    string
	ThemeToggle   string
	LanguageLabel string
	Languages     []LanguageView
}

// LanguageView is one entry of the language selector.
type LanguageView struct {
	preference.LanguageOption
	Current bool
}

func newPageView(sess *Session, toast string) PageView {
	t := sess.Translator
	state := newStateView(sess, toast)

	options := sess.Language.Available()
	langs := make([]LanguageView, 0, len(options))
	for _, opt := range options {
		langs = append(langs, LanguageView{
			LanguageOption: opt,
			Current:        opt.Code == state.Language,
		})
	}

	return PageView{
		State:         state,
		Dark:          sess.Theme.Dark(),
		Badge:         t.T("form.badge"),
		Title:         t.T("form.title"),
		Subtitle:      t.T("form.subtitle"),
		ResetLabel:    t.T("form.reset"),
		ThemeToggle:   t.T("theme.toggle"),
		LanguageLabel: t.T("language.label"),
		Languages:     langs,
	}
}
