// Package middleware provides net/http middleware for the contact form
// server. Every constructor returns func(http.Handler) http.Handler, so the
// middleware plugs into chi directly:
//
//	r := chi.NewRouter()
//	r.Use(
//		middleware.RequestID(),
//		middleware.Logging(log),
//		middleware.SecurityHeadersWithConfig(middleware.BalancedSecurity),
//		middleware.BodyLimit(64*middleware.KB),
//		middleware.Language(resolver),
//	)
//
// RequestIDExtractor feeds the request ID into log records when passed to
// logger.WithContextExtractors. Language stores the Accept-Language match,
// read back with GetLanguage, which seeds a visitor's language before they
// pick one.
package middleware
