package ports

import (
	"context"

	"github.com/boardhouse/board-service/internal/core/domain"
)

// IdentityResolver is the sole bridge between the auth pipeline and user
// storage: given a subject it returns the current identity, or
// domain.ErrUserNotFound when the account no longer exists.
type IdentityResolver interface {
	Resolve(ctx context.Context, subject string) (*domain.Identity, error)
}
