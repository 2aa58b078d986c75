package pricing

import (
	"testing"

	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
)

func TestMarkupPolicyCustomerPrice(t *testing.T) {
	tests := []struct {
		name   string
		policy MarkupPolicy
		cost   float64
		expect float64
	}{
		{"percent 25 over cost", MarkupPolicy{enum.MarkupModePercent, 25}, 10000, 12500},
		{"percent 0 passes cost through", MarkupPolicy{enum.MarkupModePercent, 0}, 10000, 10000},
		{"percent 100 doubles", MarkupPolicy{enum.MarkupModePercent, 100}, 500, 1000},
		{"ratio 0.75", MarkupPolicy{enum.MarkupModeRatio, 0.75}, 10000, 13333.33},
		{"ratio 1 passes cost through", MarkupPolicy{enum.MarkupModeRatio, 1}, 750, 750},
		{"ratio 0 degrades to zero", MarkupPolicy{enum.MarkupModeRatio, 0}, 10000, 0},
		{"percent -100 degrades to zero", MarkupPolicy{enum.MarkupModePercent, -100}, 10000, 0},
		{"zero cost", MarkupPolicy{enum.MarkupModePercent, 25}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.CustomerPrice(tt.cost); !approx(got, tt.expect) {
				t.Errorf("CustomerPrice(%v) = %v, want %v", tt.cost, got, tt.expect)
			}
		})
	}
}

func TestCalculateItemTotals(t *testing.T) {
	params := &entity.QuotationParameters{
		USDToILSRate: 3.7,
		EURToILSRate: 4.0,
		MarkupMode:   enum.MarkupModePercent,
		MarkupValue:  25,
	}

	tests := []struct {
		name         string
		item         entity.QuotationItem
		wantTotalUSD float64
		wantTotalILS float64
		wantCustomer float64
		wantDisplay  string
	}{
		{
			name: "basic hardware line",
			item: entity.QuotationItem{
				ItemType: enum.ItemTypeHardware, Quantity: 2,
				UnitPriceUSD: 1000, UnitPriceILS: 3700,
				SystemOrder: 1, ItemOrder: 1,
			},
			wantTotalUSD: 2000, wantTotalILS: 7400, wantCustomer: 9250, wantDisplay: "1.1",
		},
		{
			name: "zero quantity yields zero totals",
			item: entity.QuotationItem{
				ItemType: enum.ItemTypeHardware, Quantity: 0,
				UnitPriceUSD: 1000, UnitPriceILS: 3700,
				SystemOrder: 1, ItemOrder: 2,
			},
			wantTotalUSD: 0, wantTotalILS: 0, wantCustomer: 0, wantDisplay: "1.2",
		},
		{
			name: "zero price yields zero totals",
			item: entity.QuotationItem{
				ItemType: enum.ItemTypeSoftware, Quantity: 5,
				SystemOrder: 3, ItemOrder: 4,
			},
			wantTotalUSD: 0, wantTotalILS: 0, wantCustomer: 0, wantDisplay: "3.4",
		},
		{
			name: "item markup overrides quotation markup",
			item: entity.QuotationItem{
				ItemType: enum.ItemTypeHardware, Quantity: 1,
				UnitPriceILS: 1000, MarkupPercent: 50,
				SystemOrder: 2, ItemOrder: 1,
			},
			wantTotalUSD: 0, wantTotalILS: 1000, wantCustomer: 1500, wantDisplay: "2.1",
		},
		{
			name: "stale display number regenerated",
			item: entity.QuotationItem{
				ItemType: enum.ItemTypeLabor, Quantity: 1, UnitPriceILS: 100,
				SystemOrder: 4, ItemOrder: 7, DisplayNumber: "9.9",
			},
			wantTotalUSD: 0, wantTotalILS: 100, wantCustomer: 125, wantDisplay: "4.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateItemTotals(tt.item, params)
			if !approx(got.TotalPriceUSD, tt.wantTotalUSD) {
				t.Errorf("TotalPriceUSD = %v, want %v", got.TotalPriceUSD, tt.wantTotalUSD)
			}
			if !approx(got.TotalPriceILS, tt.wantTotalILS) {
				t.Errorf("TotalPriceILS = %v, want %v", got.TotalPriceILS, tt.wantTotalILS)
			}
			if !approx(got.CustomerPriceILS, tt.wantCustomer) {
				t.Errorf("CustomerPriceILS = %v, want %v", got.CustomerPriceILS, tt.wantCustomer)
			}
			if got.DisplayNumber != tt.wantDisplay {
				t.Errorf("DisplayNumber = %q, want %q", got.DisplayNumber, tt.wantDisplay)
			}
		})
	}
}

func TestCalculateItemTotalsDoesNotMutateInput(t *testing.T) {
	params := &entity.QuotationParameters{MarkupMode: enum.MarkupModePercent, MarkupValue: 25}
	item := entity.QuotationItem{Quantity: 2, UnitPriceILS: 100, SystemOrder: 1, ItemOrder: 1}

	_ = CalculateItemTotals(item, params)
	if item.TotalPriceILS != 0 || item.CustomerPriceILS != 0 {
		t.Errorf("input item was mutated: %+v", item)
	}
}
