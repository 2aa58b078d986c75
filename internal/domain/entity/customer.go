package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a customer that quotations are issued to
type Customer struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TeamID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"team_id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	CompanyName   string         `gorm:"size:255" json:"company_name"`
	Email         string         `gorm:"size:255" json:"email"`
	Phone         string         `gorm:"size:50" json:"phone"`
	Address       string         `gorm:"type:text" json:"address"`
	ContactPerson string         `gorm:"size:255" json:"contact_person"`
	Note          *string        `gorm:"type:text" json:"note,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
