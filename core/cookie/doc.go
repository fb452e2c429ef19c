// Package cookie manages HTTP cookies with optional HMAC signing.
//
//	m, err := cookie.New([]string{secret},
//		cookie.WithSecure(true),
//		cookie.WithMaxAge(365*24*60*60),
//	)
//
//	// Tamper-evident visitor id
//	err = m.SetSigned(w, "cf_visitor", visitorID)
//	id, err := m.GetSigned(r, "cf_visitor")
//
// Several secrets enable rotation: the first one signs, every one of them is
// accepted when reading. Secrets must be at least 32 characters long.
package cookie
