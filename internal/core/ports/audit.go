package ports

import (
	"context"

	"github.com/boardhouse/board-service/internal/core/domain"
)

// AuditRepository persists security-event records.
type AuditRepository interface {
	Record(ctx context.Context, event domain.SecurityEvent) error
}

// SecurityEventSink accepts events from the auth pipeline without blocking
// request processing. Implemented by the queue dispatcher.
type SecurityEventSink interface {
	Enqueue(event domain.SecurityEvent)
}
