package i18n

// LanguageSource reports the active language at call time.
type LanguageSource interface {
	Language() string
}

// Fixed is a LanguageSource that always reports the same language.
type Fixed string

// Language implements LanguageSource.
func (f Fixed) Language() string {
	return string(f)
}

// Translator binds a Resolver to a language source, so every lookup follows
// the language that is active when T is called rather than when the
// translator was created.
type Translator struct {
	resolver *Resolver
	source   LanguageSource
}

// NewTranslator creates a Translator over resolver. A nil source falls back to
// the resolver's default language.
func NewTranslator(resolver *Resolver, source LanguageSource) *Translator {
	if resolver == nil {
		panic("i18n: resolver is not provided")
	}
	if source == nil {
		source = Fixed(resolver.DefaultLanguage())
	}
	return &Translator{
		resolver: resolver,
		source:   source,
	}
}

// T translates key using the currently active language.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.resolver.T(t.Language(), key, placeholders...)
}

// Language returns the currently active language.
func (t *Translator) Language() string {
	lang := t.source.Language()
	if lang == "" {
		return t.resolver.DefaultLanguage()
	}
	return lang
}

// Direction returns the reading direction of the active language.
func (t *Translator) Direction() string {
	return t.resolver.Direction(t.Language())
}

// Resolver returns the underlying resolver.
func (t *Translator) Resolver() *Resolver {
	return t.resolver
}
