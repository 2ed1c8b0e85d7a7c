package ports

import (
	"context"

	"github.com/boardhouse/board-service/internal/core/domain"
)

// AuthService implements registration, the issuance entry point (login) and
// the revocation entry point (logout).
type AuthService interface {
	IdentityResolver

	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	// Login verifies credentials, mints the access/refresh pair and persists
	// the refresh token, overwriting any prior record for the subject.
	Login(ctx context.Context, username, password string) (*domain.TokenPair, *domain.User, error)
	// Logout deletes the server-side refresh record for the subject.
	Logout(ctx context.Context, subject string) error
}
