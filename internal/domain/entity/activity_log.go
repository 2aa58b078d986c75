package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLog is a single audit entry. Individual entries describe one row
// mutation; summary entries describe a whole bulk operation ("26 components
// deleted") and replace the individual entries that would otherwise flood the
// log.
type ActivityLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TeamID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"team_id"`
	UserID        *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	EntityType    string     `gorm:"size:100;not null" json:"entity_type"`
	EntityID      *uuid.UUID `gorm:"type:uuid" json:"entity_id,omitempty"`
	Action        string     `gorm:"size:50;not null" json:"action"`
	Summary       string     `gorm:"type:text" json:"summary"`
	IsBulkSummary bool       `gorm:"default:false" json:"is_bulk_summary"`
	CreatedAt     time.Time  `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new activity log entry
func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ActivityLog model
func (ActivityLog) TableName() string {
	return "activity_logs"
}
