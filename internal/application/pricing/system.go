package pricing

import (
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
)

// SystemTotals is the cost breakdown of one system, already scaled by the
// system quantity.
type SystemTotals struct {
	HardwareILS float64 `json:"hardware_ils"`
	HardwareUSD float64 `json:"hardware_usd"`
	SoftwareILS float64 `json:"software_ils"`
	SoftwareUSD float64 `json:"software_usd"`
	LaborILS    float64 `json:"labor_ils"`
	LaborUSD    float64 `json:"labor_usd"`

	EngineeringILS   float64 `json:"engineering_ils"`
	CommissioningILS float64 `json:"commissioning_ils"`
	InstallationILS  float64 `json:"installation_ils"`

	TotalILS float64 `json:"total_ils"`
	TotalUSD float64 `json:"total_usd"`

	ItemCount int `json:"item_count"`
}

// CalculateSystemTotals rolls up the items belonging to one system, split by
// item type and labor subtype. Labor items without a subtype count as
// engineering. The system quantity multiplies the finished sums exactly once,
// never per item, so duplicating a system scales its whole breakdown
// uniformly. A system with no items returns all-zero totals.
func CalculateSystemTotals(system entity.QuotationSystem, items []entity.QuotationItem) SystemTotals {
	var t SystemTotals

	for _, item := range items {
		if item.SystemID != system.ID {
			continue
		}
		t.ItemCount++

		switch item.ItemType {
		case enum.ItemTypeHardware:
			t.HardwareILS += item.TotalPriceILS
			t.HardwareUSD += item.TotalPriceUSD
		case enum.ItemTypeSoftware:
			t.SoftwareILS += item.TotalPriceILS
			t.SoftwareUSD += item.TotalPriceUSD
		case enum.ItemTypeLabor:
			t.LaborILS += item.TotalPriceILS
			t.LaborUSD += item.TotalPriceUSD
			switch item.LaborSubtype {
			case enum.LaborSubtypeCommissioning:
				t.CommissioningILS += item.TotalPriceILS
			case enum.LaborSubtypeInstallation:
				t.InstallationILS += item.TotalPriceILS
			default:
				t.EngineeringILS += item.TotalPriceILS
			}
		}
	}

	qty := system.Quantity
	if qty <= 0 {
		qty = 1
	}

	t.HardwareILS = Round2(t.HardwareILS * qty)
	t.HardwareUSD = Round2(t.HardwareUSD * qty)
	t.SoftwareILS = Round2(t.SoftwareILS * qty)
	t.SoftwareUSD = Round2(t.SoftwareUSD * qty)
	t.LaborILS = Round2(t.LaborILS * qty)
	t.LaborUSD = Round2(t.LaborUSD * qty)
	t.EngineeringILS = Round2(t.EngineeringILS * qty)
	t.CommissioningILS = Round2(t.CommissioningILS * qty)
	t.InstallationILS = Round2(t.InstallationILS * qty)
	t.TotalILS = Round2(t.HardwareILS + t.SoftwareILS + t.LaborILS)
	t.TotalUSD = Round2(t.HardwareUSD + t.SoftwareUSD + t.LaborUSD)

	return t
}
