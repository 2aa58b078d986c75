package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
)

// BulkOperationRepository defines durable bulk-operation marker access. The
// marker table is the single shared mutable resource of the audit guard; the
// active-marker predicate must be read from the same store the guarded
// mutation writes to so the two stay consistent across pooled connections.
type BulkOperationRepository interface {
	Create(ctx context.Context, marker *entity.BulkOperationMarker) error
	GetByOperationID(ctx context.Context, operationID string) (*entity.BulkOperationMarker, error)
	DeleteByOperationID(ctx context.Context, operationID string) error
	// ActiveForTeam reports whether any non-expired marker exists for the team
	ActiveForTeam(ctx context.Context, teamID uuid.UUID) (bool, error)
	// DeleteExpired removes orphaned markers past their staleness bound
	DeleteExpired(ctx context.Context) (int64, error)
}

// ActivityLogRepository defines audit log data access
type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	ListByTeam(ctx context.Context, teamID uuid.UUID, limit int) ([]entity.ActivityLog, error)
}
