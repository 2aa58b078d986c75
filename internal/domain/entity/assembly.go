package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assembly represents a named bill of components that can be quoted as a unit
type Assembly struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TeamID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"team_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Components []AssemblyComponent `gorm:"foreignKey:AssemblyID" json:"components,omitempty"`
}

// BeforeCreate generates a UUID before creating a new assembly
func (a *Assembly) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Assembly model
func (Assembly) TableName() string {
	return "assemblies"
}

// AssemblyComponent links a component into an assembly with a quantity
type AssemblyComponent struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AssemblyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"assembly_id"`
	ComponentID uuid.UUID `gorm:"type:uuid;not null;index" json:"component_id"`
	Quantity    float64   `gorm:"type:decimal(10,2);default:1" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Assembly  Assembly  `gorm:"foreignKey:AssemblyID" json:"-"`
	Component Component `gorm:"foreignKey:ComponentID" json:"component,omitempty"`
}

// BeforeCreate generates a UUID before creating a new assembly component
func (ac *AssemblyComponent) BeforeCreate(tx *gorm.DB) error {
	if ac.ID == uuid.Nil {
		ac.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AssemblyComponent model
func (AssemblyComponent) TableName() string {
	return "assembly_components"
}
