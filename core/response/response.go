package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/goccy/go-json"
)

// Response renders an HTTP response.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc produces a Response for a request.
type HandlerFunc func(r *http.Request) Response

// ErrorHandlerFunc writes a failed Response.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// Handle adapts h to http.Handler. A nil Response writes nothing; a Response
// error goes to onError, or to ErrorHandler when onError is nil.
func Handle(h HandlerFunc, onError ErrorHandlerFunc) http.Handler {
	if onError == nil {
		onError = ErrorHandler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := h(r)
		if resp == nil {
			return
		}
		if err := resp(w, r); err != nil {
			onError(w, r, err)
		}
	})
}

// String writes a text/plain body.
func String(content string, status int) Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(statusOrOK(status))
		if content == "" {
			return nil
		}
		_, err := w.Write([]byte(content))
		return err
	}
}

// JSON encodes v with the given status. Zero status means 200.
func JSON(v any, status int) Response {
	return func(w http.ResponseWriter, _ *http.Request) error {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		status = statusOrOK(status)
		w.WriteHeader(status)
		if status == http.StatusNoContent || status == http.StatusNotModified {
			return nil
		}
		return json.NewEncoder(w).Encode(v)
	}
}

// Templ renders component with the request context.
func Templ(component templ.Component, status int) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if component == nil {
			return errors.New("templ component is nil")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(statusOrOK(status))
		if err := component.Render(r.Context(), w); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}
		return nil
	}
}

// RedirectSeeOther redirects with 303, the usual answer to a POST.
func RedirectSeeOther(url string) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		http.Redirect(w, r, url, http.StatusSeeOther)
		return nil
	}
}

// Error propagates err to the error handler.
func Error(err error) Response {
	return func(http.ResponseWriter, *http.Request) error {
		return err
	}
}

func statusOrOK(status int) int {
	if status == 0 {
		return http.StatusOK
	}
	return status
}
