// Package session implements the transport-level carrier for the two auth
// credentials: a pair of named, HttpOnly cookies scoped to the whole
// application path. The carrier is an opaque slot mechanism — it knows
// nothing about token contents.
package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// AccessCookie is the slot holding the short-lived access token.
	AccessCookie = "access_token"
	// RefreshCookie is the slot holding the long-lived refresh token.
	RefreshCookie = "refresh_token"
)

// Carrier reads and writes credential cookies on Echo contexts.
type Carrier struct {
	secure bool
}

// NewCarrier builds a Carrier. secure controls the cookie Secure attribute
// and should be true outside local development.
func NewCarrier(secure bool) Carrier {
	return Carrier{secure: secure}
}

// Set installs a credential in the named slot with a finite lifetime. The
// cookie is HttpOnly (not script-accessible) and scoped to "/".
func (cr Carrier) Set(c echo.Context, name, value string, maxAge time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   cr.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the credential in the named slot, or "" when absent.
func (cr Carrier) Read(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// Clear deletes a slot by overwriting it with an empty value and an
// immediately expiring lifetime — browsers have no native delete primitive.
func (cr Carrier) Clear(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cr.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
