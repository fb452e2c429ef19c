package i18n

// M is a convenience type for placeholder maps used in translations.
// It maps placeholder names to their values.
type M map[string]any
