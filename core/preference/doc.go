// Package preference holds the two persisted user preferences of the contact
// form: the color theme and the active language.
//
// Each controller reads its persisted value once at construction and writes
// it back on every change. The in-memory value is the source of truth for
// rendering; a failing store write is returned to the caller but does not
// revert the change.
//
//	store := preference.Prefixed(redisStore, "visitor:"+id+":")
//
//	theme, err := preference.NewTheme(ctx, store, prefersDark)
//	lang, err := preference.NewLanguage(ctx, store, resolver, negotiated)
//
//	translator := i18n.NewTranslator(resolver, lang)
package preference
