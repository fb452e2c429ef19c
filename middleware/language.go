package middleware

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/contactform/core/i18n"
)

type languageContextKey struct{}

// Language negotiates Accept-Language against the resolver's languages and
// stores the result in the request context. It falls back to the resolver's
// default language.
func Language(resolver *i18n.Resolver) func(http.Handler) http.Handler {
	if resolver == nil {
		panic("language middleware: resolver is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := i18n.NegotiateLanguage(r.Header.Get("Accept-Language"), resolver.Languages())
			if lang == "" {
				lang = resolver.DefaultLanguage()
			}
			w.Header().Add("Vary", "Accept-Language")
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), languageContextKey{}, lang)))
		})
	}
}

// GetLanguage returns the language negotiated by Language.
func GetLanguage(ctx context.Context) (string, bool) {
	lang, ok := ctx.Value(languageContextKey{}).(string)
	return lang, ok
}
