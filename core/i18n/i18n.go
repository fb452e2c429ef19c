package i18n

import (
	"fmt"
	"maps"
	"slices"
	"sort"
)

// DefaultLang is the default language code used when no default language is specified.
const DefaultLang = "en"

// Text directions reported by Direction.
const (
	LTR = "ltr"
	RTL = "rtl"
)

// Resolver maps a message key and a language to a localized template.
// It is immutable after creation, making it safe for concurrent use.
type Resolver struct {
	// Flattened translations map for O(1) lookups
	// Key format: "lang:key.path"
	translations map[string]string

	// Default/fallback language
	defaultLang string

	// Pre-computed list of available languages
	languages []string

	// Languages written right-to-left
	rtl map[string]bool

	// Optional handler called when a translation key is not found
	missingKeyHandler func(lang, key string)
}

// Option configures the Resolver during construction.
type Option func(*Resolver) error

// New creates a new Resolver with the given options.
// All configuration happens during construction, making the instance
// immutable and thread-safe from creation.
func New(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
		rtl:          make(map[string]bool),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if r.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}

	r.languages = r.buildLanguagesList()

	return r, nil
}

// MustNew is like New but panics on error. Intended for startup wiring.
func MustNew(opts ...Option) *Resolver {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// WithDefaultLanguage sets the default/fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(r *Resolver) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		r.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the supported languages.
// The default language is always included and placed first in the list,
// other languages are sorted alphabetically.
func WithLanguages(langs ...string) Option {
	return func(r *Resolver) error {
		for _, lang := range langs {
			if lang == "" {
				continue
			}
			if !slices.Contains(r.languages, lang) {
				r.languages = append(r.languages, lang)
			}
		}
		return nil
	}
}

// WithRTL marks languages that are written right-to-left.
func WithRTL(langs ...string) Option {
	return func(r *Resolver) error {
		for _, lang := range langs {
			if lang != "" {
				r.rtl[lang] = true
			}
		}
		return nil
	}
}

// WithMissingKeyHandler sets a handler called when a key is not found in the
// requested language nor in the default one.
// Useful for logging missing translations during development.
func WithMissingKeyHandler(handler func(lang, key string)) Option {
	return func(r *Resolver) error {
		r.missingKeyHandler = handler
		return nil
	}
}

// WithTranslations loads the translation table of a language.
// The table can be nested; it is flattened into dot-notation keys.
// Loading a table also registers the language as supported.
func WithTranslations(lang string, table map[string]any) Option {
	return func(r *Resolver) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if !slices.Contains(r.languages, lang) {
			r.languages = append(r.languages, lang)
		}
		for key, value := range flattenTranslations(table, "") {
			r.translations[buildKey(lang, key)] = value
		}
		return nil
	}
}

// T resolves key for lang and substitutes placeholders.
// Lookup order: lang's table, the default language's table, the key itself.
// Empty templates count as missing.
func (r *Resolver) T(lang, key string, params ...M) string {
	if template, ok := r.lookup(lang, key); ok {
		return replacePlaceholdersWithMerge(template, params...)
	}

	if lang != r.defaultLang {
		if template, ok := r.lookup(r.defaultLang, key); ok {
			return replacePlaceholdersWithMerge(template, params...)
		}
	}

	if r.missingKeyHandler != nil {
		r.missingKeyHandler(lang, key)
	}

	return key
}

// Has reports whether key has a non-empty template in lang's own table.
func (r *Resolver) Has(lang, key string) bool {
	_, ok := r.lookup(lang, key)
	return ok
}

// Languages returns all configured languages, default first, others sorted.
func (r *Resolver) Languages() []string {
	return slices.Clone(r.languages)
}

// DefaultLanguage returns the default language code.
func (r *Resolver) DefaultLanguage() string {
	return r.defaultLang
}

// Supports reports whether lang is one of the configured languages.
func (r *Resolver) Supports(lang string) bool {
	return lang != "" && slices.Contains(r.languages, lang)
}

// Direction returns the reading direction of lang: RTL or LTR.
func (r *Resolver) Direction(lang string) string {
	if r.rtl[lang] {
		return RTL
	}
	return LTR
}

func (r *Resolver) lookup(lang, key string) (string, bool) {
	template, ok := r.translations[buildKey(lang, key)]
	if !ok || template == "" {
		return "", false
	}
	return template, true
}

// buildLanguagesList puts the default language first and sorts the rest.
// Called once during construction after all options are applied.
func (r *Resolver) buildLanguagesList() []string {
	others := make([]string, 0, len(r.languages))
	for _, lang := range r.languages {
		if lang != r.defaultLang {
			others = append(others, lang)
		}
	}
	sort.Strings(others)
	return append([]string{r.defaultLang}, others...)
}

// buildKey creates a composite key for the translations map.
func buildKey(lang, key string) string {
	return lang + ":" + key
}

// flattenTranslations recursively flattens a nested map into dot-notation keys.
func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		case nil:
			result[fullKey] = ""
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}
