package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/enum"
	"gorm.io/gorm"
)

// ExchangeRateSettings is the single durable row holding the global exchange
// rates. It is refreshed out of band by an admin and cached process-wide; the
// pricing engine never reads it directly, only through the rates service.
type ExchangeRateSettings struct {
	ID           int        `gorm:"primaryKey" json:"id"`
	USDToILSRate float64    `gorm:"type:decimal(10,4);not null" json:"usd_to_ils_rate"`
	EURToILSRate float64    `gorm:"type:decimal(10,4);not null" json:"eur_to_ils_rate"`
	UpdatedBy    *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName returns the table name for the ExchangeRateSettings model
func (ExchangeRateSettings) TableName() string {
	return "exchange_rate_settings"
}

// TeamSettings holds per-team defaults applied to newly created quotations
type TeamSettings struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TeamID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"team_id"`

	DefaultMarkupMode  enum.MarkupMode `gorm:"size:10;default:'percent'" json:"default_markup_mode"`
	DefaultMarkupValue float64         `gorm:"type:decimal(10,4);default:25" json:"default_markup_value"`
	LaborDayCostILS    float64         `gorm:"type:decimal(15,2);default:0" json:"labor_day_cost_ils"`
	DefaultRiskPercent float64         `gorm:"type:decimal(5,2);default:0" json:"default_risk_percent"`
	IncludeVAT         bool            `gorm:"default:true" json:"include_vat"`
	DefaultVATRate     float64         `gorm:"type:decimal(5,2);default:17" json:"default_vat_rate"`
	PaymentTerms       string          `gorm:"size:255" json:"payment_terms"`
	DeliveryTerms      string          `gorm:"size:255" json:"delivery_terms"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating new team settings
func (s *TeamSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TeamSettings model
func (TeamSettings) TableName() string {
	return "team_settings"
}
