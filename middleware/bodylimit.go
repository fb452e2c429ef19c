package middleware

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/contactform/core/response"
)

// Common size constants.
const (
	KB int64 = 1024
	MB       = 1024 * KB
)

// BodyLimitConfig configures the request body limit middleware.
type BodyLimitConfig struct {
	// MaxSize is the maximum allowed size in bytes (default: 64KB)
	MaxSize int64

	// ErrorHandler writes the rejection (default: response.ErrorHandler)
	ErrorHandler response.ErrorHandlerFunc
}

// BodyLimit rejects bodies larger than maxSize.
func BodyLimit(maxSize int64) func(http.Handler) http.Handler {
	return BodyLimitWithConfig(BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig answers 413 when Content-Length exceeds the limit and
// caps the body reader for requests that do not declare a length.
func BodyLimitWithConfig(cfg BodyLimitConfig) func(http.Handler) http.Handler {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 64 * KB
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = response.ErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > cfg.MaxSize {
				cfg.ErrorHandler(w, r, response.ErrRequestEntityTooLarge.
					WithMessage(fmt.Sprintf("Request body too large. Maximum allowed: %d bytes", cfg.MaxSize)).
					WithDetails(map[string]any{"limit": cfg.MaxSize, "size": r.ContentLength}))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxSize)
			}
			next.ServeHTTP(w, r)
		})
	}
}
