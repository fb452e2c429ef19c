package logger

import (
	"log/slog"
	"time"
)

// Helpers that take a string or error return the zero Attr for empty input,
// which slog drops. Callers never need to check before logging.

func optional(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}

// Error logs err under "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Key logs an arbitrary value. A nil value is dropped.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// Count logs an integer under key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Component(name string) slog.Attr { return optional("component", name) }
func Action(action string) slog.Attr  { return optional("action", action) }
func Result(result string) slog.Attr  { return optional("result", result) }
func Version(v string) slog.Attr      { return optional("version", v) }

// HTTP request attributes.

func RequestID(id string) slog.Attr  { return optional("request_id", id) }
func Method(method string) slog.Attr { return slog.String("method", method) }
func Path(path string) slog.Attr     { return slog.String("path", path) }
func ClientIP(ip string) slog.Attr   { return optional("client_ip", ip) }

func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

func BytesOut(n int64) slog.Attr {
	return slog.Int64("bytes_out", n)
}

// Contact form attributes.

func Field(name string) slog.Attr     { return optional("field", name) }
func Language(code string) slog.Attr  { return optional("language", code) }
func Theme(theme string) slog.Attr    { return optional("theme", theme) }
func FormID(id string) slog.Attr      { return optional("form_id", id) }
func VisitorID(id string) slog.Attr   { return optional("visitor_id", id) }
