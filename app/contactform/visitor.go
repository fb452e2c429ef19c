package contactform

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/contactform/core/cookie"
)

const (
	visitorCookie = "cf_visitor"
	visitorMaxAge = 365 * 24 * 60 * 60
)

// visitorID returns the visitor identifier from the signed cookie, issuing
// a new one when the cookie is missing, tampered or malformed.
func visitorID(cm *cookie.Manager, w http.ResponseWriter, r *http.Request) (string, error) {
	if v, err := cm.GetSigned(r, visitorCookie); err == nil {
		if id, err := uuid.Parse(v); err == nil {
			return id.String(), nil
		}
	}

	id := uuid.NewString()
	if err := cm.SetSigned(w, visitorCookie, id, cookie.WithMaxAge(visitorMaxAge)); err != nil {
		return "", err
	}
	return id, nil
}

// prefersDark reads the color scheme client hint.
func prefersDark(r *http.Request) bool {
	return r.Header.Get("Sec-CH-Prefers-Color-Scheme") == "dark"
}
