package middleware

import (
	"maps"
	"net/http"
)

// SecurityHeadersConfig lists the response headers set by
// SecurityHeadersWithConfig. Empty values are not sent.
type SecurityHeadersConfig struct {
	ContentTypeOptions        string
	FrameOptions              string
	StrictTransportSecurity   string
	ContentSecurityPolicy     string
	ReferrerPolicy            string
	PermissionsPolicy         string
	CrossOriginOpenerPolicy   string
	CrossOriginResourcePolicy string

	// CustomHeaders are sent as is and override the fields above.
	CustomHeaders map[string]string
}

// BalancedSecurity allows same-origin framing, inline styles and data: images.
var BalancedSecurity = SecurityHeadersConfig{
	ContentTypeOptions:        "nosniff",
	FrameOptions:              "SAMEORIGIN",
	StrictTransportSecurity:   "max-age=31536000; includeSubDomains",
	ContentSecurityPolicy:     "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' data:",
	ReferrerPolicy:            "strict-origin-when-cross-origin",
	PermissionsPolicy:         "geolocation=(), microphone=(), camera=()",
	CrossOriginOpenerPolicy:   "same-origin-allow-popups",
	CrossOriginResourcePolicy: "cross-origin",
}

// DevelopmentSecurity is BalancedSecurity without HSTS, so a browser never
// pins https for a local host.
var DevelopmentSecurity = func() SecurityHeadersConfig {
	cfg := BalancedSecurity
	cfg.StrictTransportSecurity = ""
	return cfg
}()

// SecurityHeadersWithConfig sets the configured headers on every response.
func SecurityHeadersWithConfig(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	headers := make(map[string]string)
	for name, value := range map[string]string{
		"X-Content-Type-Options":       cfg.ContentTypeOptions,
		"X-Frame-Options":              cfg.FrameOptions,
		"Strict-Transport-Security":    cfg.StrictTransportSecurity,
		"Content-Security-Policy":      cfg.ContentSecurityPolicy,
		"Referrer-Policy":              cfg.ReferrerPolicy,
		"Permissions-Policy":           cfg.PermissionsPolicy,
		"Cross-Origin-Opener-Policy":   cfg.CrossOriginOpenerPolicy,
		"Cross-Origin-Resource-Policy": cfg.CrossOriginResourcePolicy,
	} {
		if value != "" {
			headers[name] = value
		}
	}
	maps.Copy(headers, cfg.CustomHeaders)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for key, value := range headers {
				w.Header().Set(key, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
