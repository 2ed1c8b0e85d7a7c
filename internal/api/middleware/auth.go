package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/boardhouse/board-service/internal/api/metrics"
	"github.com/boardhouse/board-service/internal/api/session"
	"github.com/boardhouse/board-service/internal/core/domain"
	"github.com/boardhouse/board-service/internal/core/ports"
	"github.com/boardhouse/board-service/internal/token"
)

// AuthConfig wires the access-token middleware.
type AuthConfig struct {
	Codec    *token.Codec
	Resolver ports.IdentityResolver
	Carrier  session.Carrier
	// ResolveTimeout bounds the resolver call. Defaults to 2s.
	ResolveTimeout time.Duration
	Logger         zerolog.Logger
}

// Auth is the second stage of the auth pipeline. It validates the access
// token — preferring one freshly minted by the refresh middleware on this
// request — resolves the subject against user storage, and installs the
// authenticated identity on the context.
//
// Every failure degrades to "no identity established"; the middleware never
// terminates the request itself. Route policy (RequireAuth / RequireRole)
// produces the user-visible error downstream.
func Auth(cfg AuthConfig) echo.MiddlewareFunc {
	if cfg.ResolveTimeout <= 0 {
		cfg.ResolveTimeout = defaultStoreTimeout
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := IdentityFrom(c); ok {
				// The refresh middleware already established identity for
				// this request.
				return next(c)
			}

			tok := renewedToken(c)
			if tok == "" {
				tok = cfg.Carrier.Read(c, session.AccessCookie)
			}
			if tok == "" {
				return next(c)
			}

			claims, err := cfg.Codec.Decode(tok)
			if err != nil {
				reason := "malformed"
				if errors.Is(err, domain.ErrTokenExpired) {
					reason = "expired"
				}
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				cfg.Logger.Debug().Err(err).Msg("access token rejected")
				return next(c)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.ResolveTimeout)
			defer cancel()

			identity, err := cfg.Resolver.Resolve(ctx, claims.Subject)
			if err != nil {
				// Account deleted since issuance, or resolver outage.
				metrics.AuthFailuresTotal.WithLabelValues("unknown_subject").Inc()
				cfg.Logger.Debug().Err(err).Str("subject", claims.Subject).Msg("identity resolution failed")
				return next(c)
			}

			SetIdentity(c, *identity)
			return next(c)
		}
	}
}
