package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/boardhouse/board-service/internal/core/domain"
)

const collectionAudit = "security_events"

// AuditRepository appends security-event records produced by the auth
// pipeline. Records are write-only from the service's point of view.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

func (r *AuditRepository) Record(ctx context.Context, event domain.SecurityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("record security event: %w", err)
	}
	return nil
}
