package contactform

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/dmitrymomot/contactform/core/form"
	"github.com/dmitrymomot/contactform/core/health"
	"github.com/dmitrymomot/contactform/core/logger"
	"github.com/dmitrymomot/contactform/core/preference"
	"github.com/dmitrymomot/contactform/core/response"
	"github.com/dmitrymomot/contactform/middleware"
)

const (
	maxBodySize        = 64 * middleware.KB
	healthcheckTimeout = 3 * time.Second
)

// widgetCSP allows the animation player CDN.
const widgetCSP = "default-src 'self'; script-src 'self' https://cdnjs.cloudflare.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'"

// securityHeaders picks the production or development preset and applies
// the widget's content security policy.
func (app *App) securityHeaders() middleware.SecurityHeadersConfig {
	cfg := middleware.DevelopmentSecurity
	if app.config.IsProduction() {
		cfg = middleware.BalancedSecurity
	}
	cfg.ContentSecurityPolicy = widgetCSP
	return cfg
}

type sessionContextKey struct{}

func (app *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(app.logger),
		app.metrics.Middleware,
		middleware.SecurityHeadersWithConfig(app.securityHeaders()),
		middleware.BodyLimit(maxBodySize),
		middleware.Language(app.resolver),
	)

	r.NotFound(response.Handle(func(*http.Request) response.Response {
		return response.Error(response.ErrNotFound)
	}, app.onError).ServeHTTP)
	r.MethodNotAllowed(response.Handle(func(*http.Request) response.Response {
		return response.Error(response.ErrMethodNotAllowed)
	}, app.onError).ServeHTTP)

	r.Method(http.MethodGet, "/livez", response.Handle(health.Liveness, nil))
	r.Method(http.MethodGet, "/healthz", response.Handle(health.Readiness(app.logger, healthcheckTimeout, app.checks), response.JSONErrorHandler))
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())
	r.Method(http.MethodGet, "/assets/*", http.StripPrefix("/assets/", http.FileServerFS(Assets())))

	r.Group(func(r chi.Router) {
		r.Use(app.withSession)

		r.Method(http.MethodGet, "/", response.Handle(app.page, app.onError))
		r.Method(http.MethodGet, "/state", response.Handle(app.state, app.onError))
		r.Method(http.MethodPost, "/fields/{name}/change", response.Handle(app.fieldChange, app.onError))
		r.Method(http.MethodPost, "/fields/{name}/blur", response.Handle(app.fieldBlur, app.onError))
		r.Method(http.MethodPost, "/submit", response.Handle(app.submit, app.onError))
		r.Method(http.MethodPost, "/reset", response.Handle(app.reset, app.onError))
		r.Method(http.MethodPost, "/preferences/theme", response.Handle(app.toggleTheme, app.onError))
		r.Method(http.MethodPost, "/preferences/language", response.Handle(app.setLanguage, app.onError))
	})

	return r
}

// withSession resolves the visitor and attaches its session to the request.
func (app *App) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := visitorID(app.cookie, w, r)
		if err != nil {
			app.onError(w, r, err)
			return
		}

		seed := Seed{PrefersDark: prefersDark(r)}
		seed.Language, _ = middleware.GetLanguage(r.Context())

		sess, err := app.sessions.Get(r.Context(), id, seed)
		if err != nil {
			if errors.Is(err, ErrSessionClosed) {
				err = response.ErrServiceUnavailable
			}
			app.onError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *Session {
	sess, _ := r.Context().Value(sessionContextKey{}).(*Session)
	return sess
}

func (app *App) onError(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := response.AsHTTPError(err)
	if httpErr.Status >= http.StatusInternalServerError {
		app.logger.ErrorContext(r.Context(), "request failed",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Error(err),
		)
	}
	if wantsJSON(r) {
		response.JSONErrorHandler(w, r, httpErr)
		return
	}
	response.ErrorHandler(w, r, httpErr)
}

// wantsJSON reports whether the client sent or accepts JSON.
func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (app *App) page(r *http.Request) response.Response {
	sess := sessionFrom(r)
	view := newPageView(sess, sess.TakeToast())

	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
		w.Header().Add("Vary", "Sec-CH-Prefers-Color-Scheme")
		return response.Templ(Page(view), http.StatusOK)(w, r)
	}
}

func (app *App) state(r *http.Request) response.Response {
	sess := sessionFrom(r)
	return response.JSON(newStateView(sess, sess.TakeToast()), http.StatusOK)
}

// respond answers JSON clients with the state and redirects the others back
// to the page.
func respond(r *http.Request, sess *Session, status int) response.Response {
	if !wantsJSON(r) {
		return response.RedirectSeeOther("/")
	}
	return response.JSON(newStateView(sess, sess.TakeToast()), status)
}

func (app *App) fieldChange(r *http.Request) response.Response {
	sess := sessionFrom(r)
	name := chi.URLParam(r, "name")

	value, err := decodeField(r, "value")
	if err != nil {
		return response.Error(err)
	}

	if err := sess.Form.SetValue(name, value); err != nil {
		return response.Error(formError(err))
	}
	return respond(r, sess, http.StatusOK)
}

func (app *App) fieldBlur(r *http.Request) response.Response {
	sess := sessionFrom(r)
	name := chi.URLParam(r, "name")

	if _, ok := sess.Form.Registry().Lookup(name); !ok {
		return response.Error(response.ErrNotFound.WithMessage("unknown field"))
	}

	value, err := decodeField(r, "value")
	if err != nil {
		return response.Error(err)
	}

	sess.Form.HandleBlur(name, value)
	return respond(r, sess, http.StatusOK)
}

func (app *App) submit(r *http.Request) response.Response {
	sess := sessionFrom(r)

	if !wantsJSON(r) {
		if err := r.ParseForm(); err != nil {
			return response.Error(bodyError(err))
		}
		for _, name := range sess.Form.Registry().Names() {
			if _, ok := r.PostForm[name]; !ok {
				continue
			}
			if err := sess.Form.SetValue(name, r.PostForm.Get(name)); err != nil {
				return response.Error(formError(err))
			}
		}
	}

	err := sess.Form.Submit(r.Context())
	if err == nil {
		return respond(r, sess, http.StatusOK)
	}
	if rejected, ok := submitRejection(err); ok {
		return respond(r, sess, rejected.Status)
	}
	return response.Error(formError(err))
}

// submitRejection maps the Submit errors after which the visitor keeps an
// editable form and gets the current state back. A failed submission is
// already reported by the form.
func submitRejection(err error) (response.HTTPError, bool) {
	switch {
	case errors.Is(err, form.ErrValidationFailed):
		return response.ErrUnprocessableEntity, true
	case errors.Is(err, form.ErrSubmissionInFlight), errors.Is(err, form.ErrAlreadySubmitted):
		return response.ErrConflict, true
	case errors.Is(err, form.ErrSubmissionFailed):
		return response.ErrBadGateway, true
	}
	return response.HTTPError{}, false
}

func (app *App) reset(r *http.Request) response.Response {
	sess := sessionFrom(r)
	sess.Form.Reset()
	return respond(r, sess, http.StatusOK)
}

func (app *App) toggleTheme(r *http.Request) response.Response {
	sess := sessionFrom(r)

	theme, err := sess.Theme.Toggle(r.Context())
	if err != nil {
		app.logger.WarnContext(r.Context(), "theme not persisted",
			logger.VisitorID(sess.ID),
			logger.Theme(string(theme)),
			logger.Error(err),
		)
	}
	return respond(r, sess, http.StatusOK)
}

func (app *App) setLanguage(r *http.Request) response.Response {
	sess := sessionFrom(r)

	code, err := decodeField(r, "language")
	if err != nil {
		return response.Error(err)
	}

	if err := sess.Language.Set(r.Context(), code); err != nil {
		if errors.Is(err, preference.ErrUnsupportedLanguage) {
			return response.Error(response.ErrBadRequest.WithMessage("unsupported language"))
		}
		app.logger.WarnContext(r.Context(), "language not persisted",
			logger.VisitorID(sess.ID),
			logger.Language(code),
			logger.Error(err),
		)
	}
	return respond(r, sess, http.StatusOK)
}

// decodeField reads one string field from a JSON object or a form body.
func decodeField(r *http.Request, key string) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", bodyError(err)
		}
		return body[key], nil
	}

	if err := r.ParseForm(); err != nil {
		return "", bodyError(err)
	}
	return r.PostForm.Get(key), nil
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return response.ErrRequestEntityTooLarge
	}
	return response.ErrBadRequest.WithError(err)
}

func formError(err error) error {
	switch {
	case errors.Is(err, form.ErrUnknownField):
		return response.ErrNotFound.WithMessage("unknown field")
	case errors.Is(err, form.ErrClosed):
		return response.ErrServiceUnavailable
	}
	return err
}
