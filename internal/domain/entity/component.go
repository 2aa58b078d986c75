package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Component represents a priced catalog component. The unit cost is stored
// redundantly in all three currencies; OriginalCurrency and OriginalCost are
// the single source of truth from which the other two are re-derived whenever
// exchange rates change. The derived fields may be overwritten freely, the
// original pair is set once and never drifts.
type Component struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TeamID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"team_id"`
	PartNumber   string         `gorm:"size:100;index" json:"part_number"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Category     string         `gorm:"size:100;index" json:"category"`
	Manufacturer string         `gorm:"size:255" json:"manufacturer"`
	SupplierName string         `gorm:"size:255" json:"supplier_name"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Pricing
	UnitCostILS      float64       `gorm:"type:decimal(15,2);default:0" json:"unit_cost_ils"`
	UnitCostUSD      float64       `gorm:"type:decimal(15,2);default:0" json:"unit_cost_usd"`
	UnitCostEUR      float64       `gorm:"type:decimal(15,2);default:0" json:"unit_cost_eur"`
	OriginalCurrency enum.Currency `gorm:"size:3;default:'ILS'" json:"original_currency"`
	OriginalCost     float64       `gorm:"type:decimal(15,2);default:0" json:"original_cost"`
}

// BeforeCreate generates a UUID before creating a new component
func (c *Component) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Component model
func (Component) TableName() string {
	return "components"
}
