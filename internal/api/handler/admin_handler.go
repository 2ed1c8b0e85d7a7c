package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardhouse/board-service/internal/core/ports"
)

// AdminHandler exposes account administration. Routes are guarded by
// RequireRole(ROLE_ADMIN) in the router.
type AdminHandler struct {
	users ports.AuthRepository
	store ports.TokenStore
}

func NewAdminHandler(users ports.AuthRepository, store ports.TokenStore) *AdminHandler {
	return &AdminHandler{users: users, store: store}
}

// ListUsers returns all registered accounts.
//
// @Summary      List user accounts
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteUser removes an account and revokes its refresh record, so the
// deleted account's session cannot renew itself afterwards.
//
// @Summary      Delete a user account
// @Tags         admin
// @Param        username  path  string  true  "Username"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{username} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	username := c.Param("username")

	if err := h.users.Delete(c.Request().Context(), username); err != nil {
		return err
	}
	if err := h.store.Delete(c.Request().Context(), username); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
