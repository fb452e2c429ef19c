package contactform_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/app/contactform"
	"github.com/dmitrymomot/contactform/core/form"
	"github.com/dmitrymomot/contactform/core/response"
	"github.com/dmitrymomot/contactform/core/validator"
)

func TestPage(t *testing.T) {
	t.Parallel()

	t.Run("renders the form in the default language", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		rec := v.get("/")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Equal(t, "Sec-CH-Prefers-Color-Scheme", rec.Header().Get("Accept-CH"))

		body := rec.Body.String()
		assert.Contains(t, body, `<html lang="en" dir="ltr">`)
		assert.Contains(t, body, "Smart Form")
		assert.Contains(t, body, "Contact Form")
		assert.Contains(t, body, "Full Name")
		assert.Contains(t, body, `<span class="required" aria-hidden="true">*</span>`)
		assert.Contains(t, body, `<textarea rows="4"`)
		assert.Contains(t, body, `data-loop="true"`)
		assert.Contains(t, body, `id="form-state"`)
		assert.Contains(t, v.cookies, "cf_visitor")
	})

	t.Run("negotiates the first visit language", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		v.headers.Set("Accept-Language", "ar-SA,ar;q=0.9")

		body := v.get("/").Body.String()
		assert.Contains(t, body, `<html lang="ar" dir="rtl">`)
	})

	t.Run("applies the dark color scheme hint", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		v.headers.Set("Sec-CH-Prefers-Color-Scheme", "dark")

		body := v.get("/").Body.String()
		assert.Contains(t, body, `class="dark"`)
	})

	t.Run("keeps the session across requests", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		v.postJSON("/fields/name/change", map[string]string{"value": "Jane"})

		state := decodeState(t, v.get("/state"))
		assert.Equal(t, "Jane", fieldOf(t, state, "name").Value)
	})

	t.Run("a tampered visitor cookie starts a new session", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		v.postJSON("/fields/name/change", map[string]string{"value": "Jane"})
		v.cookies["cf_visitor"].Value = "forged"

		state := decodeState(t, v.get("/state"))
		assert.Empty(t, fieldOf(t, state, "name").Value)
	})
}

func TestFieldRoutes(t *testing.T) {
	t.Parallel()

	t.Run("change stores the value and clears the error", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		rec := v.postJSON("/fields/email/blur", map[string]string{"value": "nope"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Please enter a valid email address", fieldOf(t, decodeState(t, rec), "email").Error)

		rec = v.postJSON("/fields/email/change", map[string]string{"value": "nope"})
		require.Equal(t, http.StatusOK, rec.Code)
		email := fieldOf(t, decodeState(t, rec), "email")
		assert.Equal(t, "nope", email.Value)
		assert.Empty(t, email.Error)
	})

	t.Run("blur reports parameterized messages", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		rec := v.postJSON("/fields/name/blur", map[string]string{"value": "J"})

		assert.Equal(t, "Must be at least 2 characters", fieldOf(t, decodeState(t, rec), "name").Error)
	})

	t.Run("unknown fields are not found", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		assert.Equal(t, http.StatusNotFound, v.postJSON("/fields/age/change", map[string]string{"value": "1"}).Code)
		assert.Equal(t, http.StatusNotFound, v.postJSON("/fields/age/blur", map[string]string{"value": "1"}).Code)
	})

	t.Run("malformed JSON is a bad request", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		assert.Equal(t, http.StatusBadRequest, v.postJSON("/fields/name/change", []int{1}).Code)
	})
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	t.Run("invalid form is rejected with localized errors", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		rec := v.postJSON("/submit", map[string]string{})

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		state := decodeState(t, rec)
		assert.Equal(t, "This field is required", fieldOf(t, state, "name").Error)
		assert.Equal(t, "This field is required", fieldOf(t, state, "message").Error)
		assert.Empty(t, fieldOf(t, state, "phone").Error)
		assert.False(t, state.Submitted)
	})

	t.Run("valid form is delivered once", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		var got map[string]string
		app := newTestApp(t, contactform.WithSubmitter(form.SubmitterFunc(func(_ context.Context, values map[string]string) error {
			calls.Add(1)
			got = values
			return nil
		})))
		v := newVisitor(t, app)
		fillValid(t, v)

		rec := v.postJSON("/submit", map[string]string{})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		state := decodeState(t, rec)
		assert.True(t, state.Submitted)
		assert.Equal(t, "✓", state.SubmitLabel)
		assert.Equal(t, "Form submitted successfully!", state.Toast)
		assert.Equal(t, "jane@example.com", got["email"])

		rec = v.postJSON("/submit", map[string]string{})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("failed delivery keeps the form and shows nothing", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t, contactform.WithSubmitter(form.SubmitterFunc(func(context.Context, map[string]string) error {
			return errors.New("smtp down")
		})))
		v := newVisitor(t, app)
		fillValid(t, v)

		rec := v.postJSON("/submit", map[string]string{})
		require.Equal(t, http.StatusBadGateway, rec.Code)

		state := decodeState(t, rec)
		assert.False(t, state.Submitted)
		assert.False(t, state.SubmissionInFlight)
		assert.Empty(t, state.Toast)
		assert.Equal(t, "Submit", state.SubmitLabel)
		assert.Equal(t, "Jane Doe", fieldOf(t, state, "name").Value)
	})

	t.Run("form post redirects and shows the toast once", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		rec := v.postForm("/submit", url.Values{
			"name":    {"Jane Doe"},
			"email":   {"jane@example.com"},
			"message": {"Hello there, this is a test message."},
		})

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		body := v.get("/").Body.String()
		assert.Contains(t, body, "Form submitted successfully!")
		assert.Contains(t, body, "disabled")

		body = v.get("/").Body.String()
		assert.NotContains(t, body, "Form submitted successfully!")
	})

	t.Run("reset clears the submitted form", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		fillValid(t, v)
		require.Equal(t, http.StatusOK, v.postJSON("/submit", map[string]string{}).Code)

		rec := v.postJSON("/reset", map[string]string{})
		require.Equal(t, http.StatusOK, rec.Code)

		state := decodeState(t, rec)
		assert.False(t, state.Submitted)
		assert.Equal(t, "Submit", state.SubmitLabel)
		assert.Empty(t, fieldOf(t, state, "name").Value)
	})
}

func TestSubmitRejection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want response.HTTPError
	}{
		{"invalid form", validator.ValidationErrors{{Field: "name", Key: "form.error.required"}}, response.ErrUnprocessableEntity},
		{"in flight", form.ErrSubmissionInFlight, response.ErrConflict},
		{"already submitted", form.ErrAlreadySubmitted, response.ErrConflict},
		{"transport failure", fmt.Errorf("%w: %w", form.ErrSubmissionFailed, errors.New("smtp down")), response.ErrBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := contactform.SubmitRejection(tt.err)
			require.True(t, ok)
			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.Code, got.Code)
		})
	}

	t.Run("closed form is not a rejection", func(t *testing.T) {
		_, ok := contactform.SubmitRejection(form.ErrClosed)
		assert.False(t, ok)
	})
}

func TestPreferenceRoutes(t *testing.T) {
	t.Parallel()

	t.Run("theme toggles", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		rec := v.postJSON("/preferences/theme", map[string]string{})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "dark", decodeState(t, rec).Theme)

		rec = v.postJSON("/preferences/theme", map[string]string{})
		assert.Equal(t, "light", decodeState(t, rec).Theme)
	})

	t.Run("language switch relocalizes errors", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		v.postJSON("/fields/name/blur", map[string]string{"value": ""})

		rec := v.postJSON("/preferences/language", map[string]string{"language": "fr"})
		require.Equal(t, http.StatusOK, rec.Code)

		state := decodeState(t, rec)
		assert.Equal(t, "fr", state.Language)
		assert.Equal(t, "ltr", state.Direction)
		assert.NotEqual(t, "This field is required", fieldOf(t, state, "name").Error)
		assert.NotEmpty(t, fieldOf(t, state, "name").Error)
	})

	t.Run("unsupported language is rejected", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		rec := v.postJSON("/preferences/language", map[string]string{"language": "xx"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		assert.Equal(t, "en", decodeState(t, v.get("/state")).Language)
	})

	t.Run("form post redirects", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		rec := v.postForm("/preferences/language", url.Values{"language": {"ar"}})
		require.Equal(t, http.StatusSeeOther, rec.Code)

		assert.Contains(t, v.get("/").Body.String(), `<html lang="ar" dir="rtl">`)
	})
}

func TestOperationalRoutes(t *testing.T) {
	t.Parallel()

	t.Run("healthz reports checks", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t,
			contactform.WithHealthcheck("ok", func(context.Context) error { return nil }),
		)
		rec := newVisitor(t, app).get("/healthz")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","checks":{"ok":"ok"}}`, rec.Body.String())
	})

	t.Run("healthz fails when a dependency fails", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t,
			contactform.WithHealthcheck("db", func(context.Context) error { return errors.New("down") }),
		)
		rec := newVisitor(t, app).get("/healthz")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "down")
	})

	t.Run("hsts only in production", func(t *testing.T) {
		t.Parallel()

		rec := newVisitor(t, newTestApp(t)).get("/livez")
		assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
		assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "https://cdnjs.cloudflare.com")

		cfg := testConfig()
		cfg.Env = "production"
		rec = newVisitor(t, newTestAppWithConfig(t, cfg)).get("/livez")
		assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
		assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "https://cdnjs.cloudflare.com")
	})

	t.Run("livez", func(t *testing.T) {
		t.Parallel()

		rec := newVisitor(t, newTestApp(t)).get("/livez")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ALIVE", rec.Body.String())
	})

	t.Run("assets are served", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		assert.Equal(t, http.StatusOK, v.get("/assets/form.js").Code)
		assert.Equal(t, http.StatusOK, v.get("/assets/animation.json").Code)
	})

	t.Run("metrics count submissions", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		fillValid(t, v)
		require.Equal(t, http.StatusOK, v.postJSON("/submit", map[string]string{}).Code)

		rec := v.get("/metrics")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `contactform_submissions_total{result="success"} 1`)
		assert.Contains(t, rec.Body.String(), "contactform_active_sessions 1")
	})

	t.Run("unknown route", func(t *testing.T) {
		t.Parallel()

		v := newVisitor(t, newTestApp(t))
		assert.Equal(t, http.StatusNotFound, v.get("/nope").Code)
	})
}
