package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boardhouse/board-service/internal/api/metrics"
	"github.com/boardhouse/board-service/internal/api/session"
	"github.com/boardhouse/board-service/internal/core/domain"
	"github.com/boardhouse/board-service/internal/core/ports"
	"github.com/boardhouse/board-service/internal/token"
)

// AuthHandler owns the issuance and revocation entry points. Tokens travel
// exclusively in the cookie carrier, never in response bodies.
type AuthHandler struct {
	authService ports.AuthService
	carrier     session.Carrier
	codec       *token.Codec
}

func NewAuthHandler(authService ports.AuthService, carrier session.Carrier, codec *token.Codec) *AuthHandler {
	return &AuthHandler{authService: authService, carrier: carrier, codec: codec}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=ROLE_USER ROLE_ADMIN"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// Login verifies credentials, issues the access/refresh pair and installs
// both cookies. The refresh record in the store is overwritten, invalidating
// any previous session for the subject.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	h.carrier.Set(c, session.AccessCookie, pair.AccessToken, h.codec.AccessTTL())
	h.carrier.Set(c, session.RefreshCookie, pair.RefreshToken, h.codec.RefreshTTL())

	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Logout clears both cookie slots and deletes the server-side refresh
// record. Both steps are required: clearing only the cookies would leave the
// refresh token usable by anyone still holding a copy.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), identity.Subject); err != nil {
		return err
	}

	h.carrier.Clear(c, session.AccessCookie)
	h.carrier.Clear(c, session.RefreshCookie)

	return c.NoContent(http.StatusNoContent)
}

// Refresh reports the outcome of the renewal pipeline for an explicit
// client-driven renewal. The refresh middleware has already minted and
// installed a fresh access token by the time this handler runs; all that is
// left is to confirm whether an identity was established.
//
// @Summary      Renew the access token
// @Tags         auth
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}

// Me returns the caller's authenticated identity.
//
// @Summary      Current identity
// @Tags         auth
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}
