package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardhouse/board-service/internal/api/middleware"
	"github.com/boardhouse/board-service/internal/core/domain"
)

// requireIdentity extracts the authenticated identity installed by the auth
// pipeline. Protected routes sit behind RequireAuth, so absence here means a
// route was wired without its policy middleware — still reject.
func requireIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return identity, nil
}
