package contactform_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/app/contactform"
	"github.com/dmitrymomot/contactform/core/cookie"
	"github.com/dmitrymomot/contactform/core/form"
	"github.com/dmitrymomot/contactform/core/logger"
	"github.com/dmitrymomot/contactform/core/server"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig() contactform.Config {
	return contactform.Config{
		AppName: "contactform",
		Env:     "test",
		Form: contactform.FormConfig{
			Transport:          contactform.TransportDelay,
			ResetDelay:         time.Hour,
			PreferenceStore:    contactform.StoreMemory,
			SessionIdleTimeout: time.Hour,
		},
	}
}

func newTestApp(t *testing.T, opts ...contactform.AppOption) *contactform.App {
	t.Helper()
	return newTestAppWithConfig(t, testConfig(), opts...)
}

func newTestAppWithConfig(t *testing.T, cfg contactform.Config, opts ...contactform.AppOption) *contactform.App {
	t.Helper()

	cm, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	base := []contactform.AppOption{
		contactform.WithLogger(logger.New(logger.WithOutput(io.Discard))),
		contactform.WithCookieManager(cm),
		contactform.WithServer(server.New("127.0.0.1:0")),
		contactform.WithSubmitter(form.SubmitterFunc(func(context.Context, map[string]string) error {
			return nil
		})),
	}

	app, err := contactform.NewApp(cfg, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

// visitor replays the cookies of previous responses like a browser.
type visitor struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
	headers http.Header
}

func newVisitor(t *testing.T, app *contactform.App) *visitor {
	return &visitor{
		t:       t,
		handler: app.Handler(),
		cookies: make(map[string]*http.Cookie),
		headers: make(http.Header),
	}
}

func (v *visitor) do(req *http.Request) *httptest.ResponseRecorder {
	v.t.Helper()

	for k, vals := range v.headers {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}
	for _, c := range v.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	v.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(v.cookies, c.Name)
			continue
		}
		v.cookies[c.Name] = c
	}
	return rec
}

func (v *visitor) get(path string) *httptest.ResponseRecorder {
	return v.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (v *visitor) postJSON(path string, body any) *httptest.ResponseRecorder {
	v.t.Helper()

	data, err := json.Marshal(body)
	require.NoError(v.t, err)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(data)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return v.do(req)
}

func (v *visitor) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return v.do(req)
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) contactform.StateView {
	t.Helper()

	var state contactform.StateView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	return state
}

func fieldOf(t *testing.T, state contactform.StateView, name string) contactform.FieldView {
	t.Helper()

	for _, f := range state.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %q not in state", name)
	return contactform.FieldView{}
}

func fillValid(t *testing.T, v *visitor) {
	t.Helper()

	values := map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"phone":   "(555) 123-4567",
		"message": "Hello there, this is a test message.",
	}
	for name, value := range values {
		rec := v.postJSON("/fields/"+name+"/change", map[string]string{"value": value})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
}
