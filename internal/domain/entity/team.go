package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team represents a sales team. All catalog, quotation, activity-log and
// bulk-marker rows are scoped to exactly one team.
type Team struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:100;unique;not null" json:"slug"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Users []User `gorm:"foreignKey:TeamID" json:"users,omitempty"`
}

// BeforeCreate generates a UUID before creating a new team
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Team model
func (Team) TableName() string {
	return "teams"
}
