package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/enum"
	"gorm.io/gorm"
)

// QuotationProject is the root aggregate for a customer quotation: systems,
// items, the per-quotation pricing parameters and the last computed totals.
type QuotationProject struct {
	ID           uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	TeamID       uuid.UUID            `gorm:"type:uuid;not null;index" json:"team_id"`
	UserID       uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID   *uuid.UUID           `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Reference    string               `gorm:"size:100;unique;not null" json:"reference"`
	ProjectName  string               `gorm:"size:255;not null" json:"project_name"`
	CustomerName string               `gorm:"size:255" json:"customer_name"`
	Status       enum.QuotationStatus `gorm:"default:0" json:"status"`
	Note         *string              `gorm:"type:text" json:"note,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	DeletedAt    gorm.DeletedAt       `gorm:"index" json:"-"`

	// Last computed totals, recomputed wholesale on every calculation pass
	Calculations QuotationCalculations `gorm:"embedded;embeddedPrefix:calc_" json:"calculations"`

	// Relationships
	Customer   *Customer            `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Parameters *QuotationParameters `gorm:"foreignKey:QuotationID" json:"parameters,omitempty"`
	Systems    []QuotationSystem    `gorm:"foreignKey:QuotationID" json:"systems,omitempty"`
	Items      []QuotationItem      `gorm:"foreignKey:QuotationID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quotation project
func (q *QuotationProject) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotationProject model
func (QuotationProject) TableName() string {
	return "quotation_projects"
}

// QuotationParameters holds the per-quotation pricing policy. Mandatory for
// any calculation pass and immutable for its duration.
type QuotationParameters struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	QuotationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"quotation_id"`

	USDToILSRate    float64         `gorm:"type:decimal(10,4);not null" json:"usd_to_ils_rate"`
	EURToILSRate    float64         `gorm:"type:decimal(10,4);not null" json:"eur_to_ils_rate"`
	MarkupMode      enum.MarkupMode `gorm:"size:10;default:'percent'" json:"markup_mode"`
	MarkupValue     float64         `gorm:"type:decimal(10,4);default:0" json:"markup_value"`
	LaborDayCostILS float64         `gorm:"type:decimal(15,2);default:0" json:"labor_day_cost_ils"`
	RiskPercent     float64         `gorm:"type:decimal(5,2);default:0" json:"risk_percent"`
	IncludeVAT      bool            `gorm:"default:true" json:"include_vat"`
	VATRate         float64         `gorm:"type:decimal(5,2);default:0" json:"vat_rate"`
	PaymentTerms    string          `gorm:"size:255" json:"payment_terms"`
	DeliveryTerms   string          `gorm:"size:255" json:"delivery_terms"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating quotation parameters
func (p *QuotationParameters) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotationParameters model
func (QuotationParameters) TableName() string {
	return "quotation_parameters"
}

// QuotationSystem is a named, independently quantifiable group of items
// within a quotation. Its quantity multiplies all item totals belonging to it.
type QuotationSystem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	QuotationID uuid.UUID `gorm:"type:uuid;not null;index" json:"quotation_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Order       int       `gorm:"column:sort_order;not null;default:1" json:"order"`
	Quantity    float64   `gorm:"type:decimal(10,2);default:1" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new quotation system
func (s *QuotationSystem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotationSystem model
func (QuotationSystem) TableName() string {
	return "quotation_systems"
}

// QuotationItem is a single priced line belonging to exactly one system.
// DisplayNumber is always derived from SystemOrder and ItemOrder, never
// carried over from stale state.
type QuotationItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	QuotationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"quotation_id"`
	SystemID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"system_id"`
	ComponentID *uuid.UUID `gorm:"type:uuid;index" json:"component_id,omitempty"`

	Name         string            `gorm:"size:255;not null" json:"name"`
	ItemType     enum.ItemType     `gorm:"size:20;not null" json:"item_type"`
	LaborSubtype enum.LaborSubtype `gorm:"size:20" json:"labor_subtype,omitempty"`

	SystemOrder   int    `gorm:"not null;default:1" json:"system_order"`
	ItemOrder     int    `gorm:"not null;default:1" json:"item_order"`
	DisplayNumber string `gorm:"size:20" json:"display_number"`

	Quantity         float64 `gorm:"type:decimal(10,2);default:0" json:"quantity"`
	UnitPriceUSD     float64 `gorm:"type:decimal(15,2);default:0" json:"unit_price_usd"`
	UnitPriceILS     float64 `gorm:"type:decimal(15,2);default:0" json:"unit_price_ils"`
	TotalPriceUSD    float64 `gorm:"type:decimal(15,2);default:0" json:"total_price_usd"`
	TotalPriceILS    float64 `gorm:"type:decimal(15,2);default:0" json:"total_price_ils"`
	MarkupPercent    float64 `gorm:"type:decimal(10,4);default:0" json:"markup_percent"`
	CustomerPriceILS float64 `gorm:"type:decimal(15,2);default:0" json:"customer_price_ils"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Component *Component `gorm:"foreignKey:ComponentID" json:"component,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quotation item
func (i *QuotationItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotationItem model
func (QuotationItem) TableName() string {
	return "quotation_items"
}

// FormatDisplayNumber derives the hierarchical display number from the given
// order fields, e.g. system 2 item 3 -> "2.3"
func FormatDisplayNumber(systemOrder, itemOrder int) string {
	return fmt.Sprintf("%d.%d", systemOrder, itemOrder)
}

// QuotationCalculations is the pure output of a quotation aggregation pass.
// Amounts are in ILS unless named otherwise, rounded to 2 decimal places.
type QuotationCalculations struct {
	HardwareCostILS      float64 `gorm:"type:decimal(15,2);default:0" json:"hardware_cost_ils"`
	SoftwareCostILS      float64 `gorm:"type:decimal(15,2);default:0" json:"software_cost_ils"`
	LaborCostILS         float64 `gorm:"type:decimal(15,2);default:0" json:"labor_cost_ils"`
	EngineeringCostILS   float64 `gorm:"type:decimal(15,2);default:0" json:"engineering_cost_ils"`
	CommissioningCostILS float64 `gorm:"type:decimal(15,2);default:0" json:"commissioning_cost_ils"`
	InstallationCostILS  float64 `gorm:"type:decimal(15,2);default:0" json:"installation_cost_ils"`

	TotalCostILS          float64 `gorm:"type:decimal(15,2);default:0" json:"total_cost_ils"`
	SubtotalUSD           float64 `gorm:"type:decimal(15,2);default:0" json:"subtotal_usd"`
	TotalCustomerPriceILS float64 `gorm:"type:decimal(15,2);default:0" json:"total_customer_price_ils"`
	TotalProfitILS        float64 `gorm:"type:decimal(15,2);default:0" json:"total_profit_ils"`
	RiskAdditionILS       float64 `gorm:"type:decimal(15,2);default:0" json:"risk_addition_ils"`
	TotalQuoteILS         float64 `gorm:"type:decimal(15,2);default:0" json:"total_quote_ils"`
	TotalVATILS           float64 `gorm:"type:decimal(15,2);default:0" json:"total_vat_ils"`
	FinalTotalILS         float64 `gorm:"type:decimal(15,2);default:0" json:"final_total_ils"`
	ProfitMarginPercent   float64 `gorm:"type:decimal(5,2);default:0" json:"profit_margin_percent"`

	ItemCount int `gorm:"default:0" json:"item_count"`
}
