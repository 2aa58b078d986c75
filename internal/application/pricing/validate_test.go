package pricing

import (
	"testing"

	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
)

func TestValidateExchangeRates(t *testing.T) {
	tests := []struct {
		name      string
		rates     ExchangeRates
		wantCount int
	}{
		{"valid", ExchangeRates{USDToILS: 3.7, EURToILS: 4.0}, 0},
		{"zero usd rate", ExchangeRates{USDToILS: 0, EURToILS: 4.0}, 1},
		{"negative eur rate", ExchangeRates{USDToILS: 3.7, EURToILS: -1}, 1},
		{"both invalid", ExchangeRates{}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateExchangeRates(tt.rates); len(got) != tt.wantCount {
				t.Errorf("got %d errors %v, want %d", len(got), got, tt.wantCount)
			}
		})
	}
}

func TestValidateParameters(t *testing.T) {
	valid := entity.QuotationParameters{
		USDToILSRate: 3.7, EURToILSRate: 4.0,
		MarkupMode: enum.MarkupModePercent, MarkupValue: 25,
		RiskPercent: 10, VATRate: 17,
	}

	t.Run("valid parameters", func(t *testing.T) {
		if got := ValidateParameters(&valid); len(got) != 0 {
			t.Errorf("unexpected errors: %v", got)
		}
	})

	t.Run("nil parameters", func(t *testing.T) {
		if got := ValidateParameters(nil); len(got) != 1 {
			t.Errorf("got %v, want a single missing-parameters error", got)
		}
	})

	t.Run("negative policy fields", func(t *testing.T) {
		p := valid
		p.MarkupValue = -5
		p.RiskPercent = -1
		p.VATRate = -17
		if got := ValidateParameters(&p); len(got) != 3 {
			t.Errorf("got %d errors %v, want 3", len(got), got)
		}
	})

	t.Run("bad markup mode", func(t *testing.T) {
		p := valid
		p.MarkupMode = "multiplier"
		if got := ValidateParameters(&p); len(got) != 1 {
			t.Errorf("got %v, want a single markup-mode error", got)
		}
	})
}

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name      string
		item      entity.QuotationItem
		wantCount int
	}{
		{"valid hardware", entity.QuotationItem{ItemType: enum.ItemTypeHardware, Quantity: 1, UnitPriceILS: 100}, 0},
		{"valid labor with subtype", entity.QuotationItem{ItemType: enum.ItemTypeLabor, LaborSubtype: enum.LaborSubtypeInstallation, Quantity: 2}, 0},
		{"negative quantity", entity.QuotationItem{ItemType: enum.ItemTypeHardware, Quantity: -1}, 1},
		{"negative prices", entity.QuotationItem{ItemType: enum.ItemTypeHardware, UnitPriceUSD: -5, UnitPriceILS: -5}, 2},
		{"unknown type", entity.QuotationItem{ItemType: "firmware"}, 1},
		{"unknown labor subtype", entity.QuotationItem{ItemType: enum.ItemTypeLabor, LaborSubtype: "management"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateItem(tt.item); len(got) != tt.wantCount {
				t.Errorf("got %d errors %v, want %d", len(got), got, tt.wantCount)
			}
		})
	}
}
