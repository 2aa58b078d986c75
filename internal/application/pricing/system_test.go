package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
)

func TestCalculateSystemTotals(t *testing.T) {
	systemID := uuid.New()
	otherID := uuid.New()

	items := []entity.QuotationItem{
		{SystemID: systemID, ItemType: enum.ItemTypeHardware, TotalPriceILS: 1000, TotalPriceUSD: 270},
		{SystemID: systemID, ItemType: enum.ItemTypeSoftware, TotalPriceILS: 500, TotalPriceUSD: 135},
		{SystemID: systemID, ItemType: enum.ItemTypeLabor, LaborSubtype: enum.LaborSubtypeCommissioning, TotalPriceILS: 300, TotalPriceUSD: 81},
		{SystemID: systemID, ItemType: enum.ItemTypeLabor, LaborSubtype: enum.LaborSubtypeInstallation, TotalPriceILS: 200, TotalPriceUSD: 54},
		// no subtype counts as engineering
		{SystemID: systemID, ItemType: enum.ItemTypeLabor, TotalPriceILS: 100, TotalPriceUSD: 27},
		// belongs to another system, must be ignored
		{SystemID: otherID, ItemType: enum.ItemTypeHardware, TotalPriceILS: 9999, TotalPriceUSD: 2700},
	}

	got := CalculateSystemTotals(entity.QuotationSystem{ID: systemID, Quantity: 1}, items)

	if !approx(got.HardwareILS, 1000) {
		t.Errorf("HardwareILS = %v, want 1000", got.HardwareILS)
	}
	if !approx(got.SoftwareILS, 500) {
		t.Errorf("SoftwareILS = %v, want 500", got.SoftwareILS)
	}
	if !approx(got.LaborILS, 600) {
		t.Errorf("LaborILS = %v, want 600", got.LaborILS)
	}
	if !approx(got.EngineeringILS, 100) {
		t.Errorf("EngineeringILS = %v, want 100", got.EngineeringILS)
	}
	if !approx(got.CommissioningILS, 300) {
		t.Errorf("CommissioningILS = %v, want 300", got.CommissioningILS)
	}
	if !approx(got.InstallationILS, 200) {
		t.Errorf("InstallationILS = %v, want 200", got.InstallationILS)
	}
	if !approx(got.TotalILS, 2100) {
		t.Errorf("TotalILS = %v, want 2100", got.TotalILS)
	}
	if !approx(got.TotalUSD, 567) {
		t.Errorf("TotalUSD = %v, want 567", got.TotalUSD)
	}
	if got.ItemCount != 5 {
		t.Errorf("ItemCount = %v, want 5", got.ItemCount)
	}
}

// Two identical cabinets: the system quantity scales the whole breakdown
// uniformly, applied once at the end rather than per item.
func TestCalculateSystemTotalsQuantityScaling(t *testing.T) {
	systemID := uuid.New()
	items := []entity.QuotationItem{
		{SystemID: systemID, ItemType: enum.ItemTypeHardware, TotalPriceILS: 1000, TotalPriceUSD: 270},
		{SystemID: systemID, ItemType: enum.ItemTypeLabor, LaborSubtype: enum.LaborSubtypeEngineering, TotalPriceILS: 400, TotalPriceUSD: 108},
	}

	got := CalculateSystemTotals(entity.QuotationSystem{ID: systemID, Quantity: 2}, items)

	if !approx(got.HardwareILS, 2000) {
		t.Errorf("HardwareILS = %v, want 2000", got.HardwareILS)
	}
	if !approx(got.EngineeringILS, 800) {
		t.Errorf("EngineeringILS = %v, want 800", got.EngineeringILS)
	}
	if !approx(got.TotalILS, 2800) {
		t.Errorf("TotalILS = %v, want 2800", got.TotalILS)
	}
	if got.ItemCount != 2 {
		t.Errorf("ItemCount = %v, want 2", got.ItemCount)
	}
}

func TestCalculateSystemTotalsEdgeCases(t *testing.T) {
	systemID := uuid.New()

	t.Run("no items returns zero totals", func(t *testing.T) {
		got := CalculateSystemTotals(entity.QuotationSystem{ID: systemID, Quantity: 3}, nil)
		if got.TotalILS != 0 || got.TotalUSD != 0 || got.ItemCount != 0 {
			t.Errorf("expected all-zero totals, got %+v", got)
		}
	})

	t.Run("zero quantity defaults to one", func(t *testing.T) {
		items := []entity.QuotationItem{
			{SystemID: systemID, ItemType: enum.ItemTypeHardware, TotalPriceILS: 750},
		}
		got := CalculateSystemTotals(entity.QuotationSystem{ID: systemID, Quantity: 0}, items)
		if !approx(got.TotalILS, 750) {
			t.Errorf("TotalILS = %v, want 750", got.TotalILS)
		}
	})
}
