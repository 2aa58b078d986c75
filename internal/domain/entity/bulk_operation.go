package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/enum"
)

// BulkOperationMarker is a durable row signaling that many rows are being
// mutated as one logical operation for a team. While a non-expired marker
// exists, per-row activity logging for that team is suppressed and the caller
// writes a single summary entry instead.
//
// A durable row is used instead of connection session state because the
// database is accessed through a pooled set of connections: state set on one
// connection is not visible to the connection performing the next mutation.
// Only a shared durable read is consistent across the pool.
type BulkOperationMarker struct {
	ID            uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OperationID   string                 `gorm:"uniqueIndex;size:100;not null" json:"operation_id"`
	TeamID        uuid.UUID              `gorm:"type:uuid;not null;index" json:"team_id"`
	OperationType enum.BulkOperationType `gorm:"size:50;not null" json:"operation_type"`
	StartedAt     time.Time              `gorm:"autoCreateTime" json:"started_at"`
	ExpiresAt     time.Time              `gorm:"not null;index" json:"expires_at"`
}

// TableName returns the table name for BulkOperationMarker
func (BulkOperationMarker) TableName() string {
	return "bulk_operation_markers"
}

// IsExpired checks whether the marker has passed its staleness bound. An
// orphaned marker (caller crashed between start and end) would otherwise
// suppress individual logging for the team forever.
func (m *BulkOperationMarker) IsExpired() bool {
	return time.Now().After(m.ExpiresAt)
}
