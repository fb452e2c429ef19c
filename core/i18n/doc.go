// Package i18n resolves localized message templates with an immutable,
// thread-safe Resolver.
//
// Translations are plain key → template tables per language. Lookups fall
// back from the requested language to the default language and finally to
// the key itself, so a missing translation never fails: it degrades to the
// default language text or to the raw key.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/contactform/core/i18n"
//
//	resolver, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithTranslations("en", map[string]any{
//			"form.error.minLength": "Must be at least {{min}} characters",
//		}),
//		i18n.WithTranslations("fr", map[string]any{
//			"form.error.minLength": "Doit comporter au moins {{min}} caractères",
//		}),
//		i18n.WithRTL("ar"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resolver.T("fr", "form.error.minLength", i18n.M{"min": 2})
//	// Output: "Doit comporter au moins 2 caractères"
//
// # Nested Tables
//
// Nested maps are flattened with dot notation, so these two tables are
// equivalent:
//
//	map[string]any{"form.submit": "Submit"}
//	map[string]any{"form": map[string]any{"submit": "Submit"}}
//
// # Placeholders
//
// Templates use {{name}} placeholders. Every occurrence of a supplied
// parameter is replaced in a single pass; placeholders without a value are
// left verbatim:
//
//	i18n.ReplacePlaceholders("{{min}}-{{max}}", i18n.M{"min": 2})
//	// Output: "2-{{max}}"
//
// # Active Language
//
// A Translator binds the resolver to a LanguageSource and resolves with the
// language that is active at call time:
//
//	t := i18n.NewTranslator(resolver, languageController)
//	t.T("form.submit")
//
// # Loading Tables
//
// LoadFS reads <lang>.yaml files from any fs.FS, typically an embed.FS:
//
//	//go:embed locales/*.yaml
//	var locales embed.FS
//
//	opts, err := i18n.LoadFS(locales, "locales")
//	resolver, err := i18n.New(append(opts, i18n.WithRTL("ar"))...)
//
// # Language Negotiation
//
// NegotiateLanguage picks the best supported language for an
// Accept-Language header using golang.org/x/text/language matching.
package i18n
