package preference

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrymomot/contactform/core/i18n"
)

// LanguageOption describes a selectable language.
type LanguageOption struct {
	Code  string
	Label string
	Flag  string
}

var knownLanguages = map[string]LanguageOption{
	"en": {Code: "en", Label: "English", Flag: "🇺🇸"},
	"fr": {Code: "fr", Label: "Français", Flag: "🇫🇷"},
	"es": {Code: "es", Label: "Español", Flag: "🇪🇸"},
	"de": {Code: "de", Label: "Deutsch", Flag: "🇩🇪"},
	"ar": {Code: "ar", Label: "العربية", Flag: "🇸🇦"},
}

// languageOrder is the display order of the language selector.
var languageOrder = []string{"en", "fr", "es", "de", "ar"}

// LanguageController holds the active language and persists every change.
// It implements i18n.LanguageSource.
type LanguageController struct {
	store    Store
	resolver *i18n.Resolver

	mu   sync.RWMutex
	lang string
}

// NewLanguage reads the persisted language once. An unsupported or missing
// value falls back to fallback when supported, then to the resolver default.
// A store read error is returned together with a usable controller.
func NewLanguage(ctx context.Context, store Store, resolver *i18n.Resolver, fallback string) (*LanguageController, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if resolver == nil {
		return nil, ErrNilResolver
	}

	c := &LanguageController{
		store:    store,
		resolver: resolver,
		lang:     resolver.DefaultLanguage(),
	}
	if resolver.Supports(fallback) {
		c.lang = fallback
	}

	v, ok, err := store.Get(ctx, KeyLanguage)
	if err != nil {
		return c, fmt.Errorf("read language: %w", err)
	}
	if ok && resolver.Supports(v) {
		c.lang = v
	}

	return c, nil
}

// Language returns the active language code.
func (c *LanguageController) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lang
}

// Set activates code. Unsupported codes leave the state unchanged.
func (c *LanguageController) Set(ctx context.Context, code string) error {
	if !c.resolver.Supports(code) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}

	c.mu.Lock()
	c.lang = code
	c.mu.Unlock()

	if err := c.store.Set(ctx, KeyLanguage, code); err != nil {
		return fmt.Errorf("persist language: %w", err)
	}
	return nil
}

// Direction returns the reading direction of the active language.
func (c *LanguageController) Direction() string {
	return c.resolver.Direction(c.Language())
}

// Available lists the configured languages in display order. Languages
// without a known label are listed after the known ones with the code as
// label.
func (c *LanguageController) Available() []LanguageOption {
	configured := c.resolver.Languages()
	options := make([]LanguageOption, 0, len(configured))

	for _, code := range languageOrder {
		if c.resolver.Supports(code) {
			options = append(options, knownLanguages[code])
		}
	}
	for _, code := range configured {
		if _, ok := knownLanguages[code]; !ok {
			options = append(options, LanguageOption{Code: code, Label: code})
		}
	}

	return options
}
