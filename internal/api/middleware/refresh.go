package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/boardhouse/board-service/internal/api/metrics"
	"github.com/boardhouse/board-service/internal/api/session"
	"github.com/boardhouse/board-service/internal/core/domain"
	"github.com/boardhouse/board-service/internal/core/ports"
	"github.com/boardhouse/board-service/internal/token"
)

// FailMode decides what a store or resolver outage does to the request.
type FailMode string

const (
	// FailOpen degrades the request to anonymous when auth infrastructure is
	// unavailable.
	FailOpen FailMode = "open"
	// FailClosed rejects the request with 503 instead.
	FailClosed FailMode = "closed"
)

const defaultStoreTimeout = 2 * time.Second

// RefreshConfig wires the refresh middleware.
type RefreshConfig struct {
	Codec    *token.Codec
	Store    ports.TokenStore
	Resolver ports.IdentityResolver
	Carrier  session.Carrier
	// Events receives audit events; may be nil.
	Events ports.SecurityEventSink
	// StoreTimeout bounds the store and resolver calls. Defaults to 2s.
	StoreTimeout time.Duration
	FailMode     FailMode
	Logger       zerolog.Logger
}

// Refresh is the first stage of the auth pipeline. It watches for an expired
// access token and, when the presented refresh token matches the stored
// record for its subject, transparently mints a replacement: into the
// response cookie for the client's next request, and into the request
// context so the auth middleware accepts it immediately.
//
// The middleware never rejects a request on token grounds. Absent, valid and
// malformed access tokens all pass through unchanged — absence is not
// expiry (anonymous browsing is legitimate), and malformed tokens are left
// for the auth middleware to degrade to anonymous. Only a store outage under
// FailClosed produces an error response.
//
// Refresh must run strictly before Auth; the router owns that ordering.
func Refresh(cfg RefreshConfig) echo.MiddlewareFunc {
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = defaultStoreTimeout
	}
	if cfg.FailMode == "" {
		cfg.FailMode = FailOpen
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			access := cfg.Carrier.Read(c, session.AccessCookie)
			if access == "" {
				// No access token at all. Not necessarily expiry — do not
				// attempt renewal.
				return next(c)
			}

			_, err := cfg.Codec.Decode(access)
			if err == nil {
				return next(c)
			}
			if !errors.Is(err, domain.ErrTokenExpired) {
				// Malformed or tampered. Never triggers renewal; the auth
				// middleware will reject it.
				return next(c)
			}

			if err := renew(c, cfg); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// renew runs the renewal subprotocol for a request whose access token has
// expired. Every validation failure aborts renewal and returns nil: the
// request continues and the auth middleware leaves it anonymous. A non-nil
// return only happens for infrastructure failure under FailClosed.
func renew(c echo.Context, cfg RefreshConfig) (err error) {
	// A fault inside the subprotocol must never take the request down with
	// it. Whatever panics here counts as a failed renewal and the request
	// proceeds anonymously.
	defer func() {
		if r := recover(); r != nil {
			metrics.RenewalsTotal.WithLabelValues("panic").Inc()
			cfg.Logger.Error().Interface("panic", r).Msg("renewal subprotocol panicked")
			err = nil
		}
	}()

	refresh := cfg.Carrier.Read(c, session.RefreshCookie)
	if refresh == "" {
		metrics.RenewalsTotal.WithLabelValues("missing_refresh").Inc()
		cfg.Logger.Debug().Msg("access token expired, no refresh token presented")
		return nil
	}

	claims, err := cfg.Codec.Decode(refresh)
	if err != nil {
		// Includes the refresh token's own expiry.
		metrics.RenewalsTotal.WithLabelValues("invalid_refresh").Inc()
		cfg.Logger.Debug().Err(err).Msg("refresh token failed validation")
		return nil
	}
	subject := claims.Subject

	ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.StoreTimeout)
	defer cancel()

	stored, err := cfg.Store.Find(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			// Revoked, expired server-side, or never issued.
			metrics.RenewalsTotal.WithLabelValues("revoked").Inc()
			emit(cfg, domain.SecurityEvent{
				Subject:    subject,
				Kind:       domain.SecurityEventRenewalRevoked,
				Detail:     "no stored refresh record",
				OccurredAt: time.Now().UTC(),
			})
			cfg.Logger.Info().Str("subject", subject).Msg("renewal rejected: session revoked or unknown")
			return nil
		}
		metrics.RenewalsTotal.WithLabelValues("store_failed").Inc()
		cfg.Logger.Error().Err(err).Str("subject", subject).Msg("token store unavailable during renewal")
		if cfg.FailMode == FailClosed {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "authentication temporarily unavailable")
		}
		return nil
	}

	if stored != refresh {
		// The session was superseded, e.g. by a login elsewhere. The stored
		// record belongs to the legitimate session — leave it alone.
		metrics.RenewalsTotal.WithLabelValues("mismatch").Inc()
		emit(cfg, domain.SecurityEvent{
			Subject:    subject,
			Kind:       domain.SecurityEventRenewalMismatch,
			Detail:     domain.ErrTokenMismatch.Error(),
			OccurredAt: time.Now().UTC(),
		})
		cfg.Logger.Warn().Err(domain.ErrTokenMismatch).Str("subject", subject).Msg("renewal rejected: session superseded or token stolen")
		return nil
	}

	newAccess, err := cfg.Codec.Mint(subject, claims.Role, domain.TokenKindAccess)
	if err != nil {
		metrics.RenewalsTotal.WithLabelValues("store_failed").Inc()
		cfg.Logger.Error().Err(err).Str("subject", subject).Msg("minting renewed access token failed")
		return nil
	}

	// Install for the client's next request and hand off in-flight so the
	// auth middleware accepts this request without a round trip.
	cfg.Carrier.Set(c, session.AccessCookie, newAccess, cfg.Codec.AccessTTL())
	setRenewedToken(c, newAccess)

	// Establish identity immediately so the current request succeeds.
	identity, err := cfg.Resolver.Resolve(ctx, subject)
	if err != nil {
		metrics.RenewalsTotal.WithLabelValues("resolver_failed").Inc()
		cfg.Logger.Warn().Err(err).Str("subject", subject).Msg("identity resolution failed after renewal")
		if cfg.FailMode == FailClosed && !errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "authentication temporarily unavailable")
		}
		return nil
	}
	SetIdentity(c, *identity)

	metrics.RenewalsTotal.WithLabelValues("renewed").Inc()
	emit(cfg, domain.SecurityEvent{
		Subject:    subject,
		Kind:       domain.SecurityEventRenewed,
		OccurredAt: time.Now().UTC(),
	})
	cfg.Logger.Info().Str("subject", subject).Msg("access token renewed")
	return nil
}

func emit(cfg RefreshConfig, event domain.SecurityEvent) {
	metrics.SecurityEventsTotal.WithLabelValues(string(event.Kind)).Inc()
	if cfg.Events != nil {
		cfg.Events.Enqueue(event)
	}
}
