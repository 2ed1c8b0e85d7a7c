package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardhouse/board-service/internal/core/ports"
)

type FollowHandler struct {
	follows ports.FollowService
}

func NewFollowHandler(follows ports.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

// Follow creates a follow edge from the caller to the named user.
//
// @Summary      Follow a user
// @Tags         follows
// @Param        username  path  string  true  "User to follow"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /users/{username}/follow [post]
func (h *FollowHandler) Follow(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if err := h.follows.Follow(c.Request().Context(), identity.Subject, c.Param("username")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unfollow removes the follow edge from the caller to the named user.
//
// @Summary      Unfollow a user
// @Tags         follows
// @Param        username  path  string  true  "User to unfollow"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/{username}/follow [delete]
func (h *FollowHandler) Unfollow(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if err := h.follows.Unfollow(c.Request().Context(), identity.Subject, c.Param("username")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Following lists the users the named user follows.
//
// @Summary      List followed users
// @Tags         follows
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {array}  string
// @Router       /users/{username}/following [get]
func (h *FollowHandler) Following(c echo.Context) error {
	names, err := h.follows.Following(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, names)
}

// Followers lists the users following the named user.
//
// @Summary      List followers
// @Tags         follows
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {array}  string
// @Router       /users/{username}/followers [get]
func (h *FollowHandler) Followers(c echo.Context) error {
	names, err := h.follows.Followers(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, names)
}
