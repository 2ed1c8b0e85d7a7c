package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/boardhouse/board-service/internal/core/domain"
)

const (
	// identityKey holds the request's authenticated domain.Identity.
	identityKey = "auth_identity"
	// renewedTokenKey carries an access token freshly minted by the refresh
	// middleware to the auth middleware within the same request, so the
	// renewal takes effect without a client round trip.
	renewedTokenKey = "auth_renewed_access_token"
)

// SetIdentity installs the authenticated identity on the request context.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom retrieves the authenticated identity, if one was established.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}

func setRenewedToken(c echo.Context, tok string) {
	c.Set(renewedTokenKey, tok)
}

func renewedToken(c echo.Context) string {
	tok, _ := c.Get(renewedTokenKey).(string)
	return tok
}
