package pricing

import (
	"math"
	"testing"

	"github.com/robomation/roboquote-api/internal/domain/enum"
)

// approx is the float tolerance used across the pricing tests
func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestDetectOriginalCurrency(t *testing.T) {
	tests := []struct {
		name       string
		ils        float64
		usd        float64
		eur        float64
		declared   enum.Currency
		wantCur    enum.Currency
		wantAmount float64
	}{
		{"declared USD with amount", 9250, 2500, 0, enum.CurrencyUSD, enum.CurrencyUSD, 2500},
		{"declared EUR with amount", 0, 0, 1800, enum.CurrencyEUR, enum.CurrencyEUR, 1800},
		{"declared USD but zero amount falls back", 500, 0, 0, enum.CurrencyUSD, enum.CurrencyILS, 500},
		{"no declared, ILS wins priority", 100, 200, 300, "", enum.CurrencyILS, 100},
		{"no declared, USD before EUR", 0, 200, 300, "", enum.CurrencyUSD, 200},
		{"no declared, EUR last", 0, 0, 300, "", enum.CurrencyEUR, 300},
		{"legacy record with junk tag", 0, 450, 0, "GBP", enum.CurrencyUSD, 450},
		{"all zero defaults to ILS", 0, 0, 0, "", enum.CurrencyILS, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectOriginalCurrency(tt.ils, tt.usd, tt.eur, tt.declared)
			if got.Currency != tt.wantCur {
				t.Errorf("currency = %v, want %v", got.Currency, tt.wantCur)
			}
			if !approx(got.Amount, tt.wantAmount) {
				t.Errorf("amount = %v, want %v", got.Amount, tt.wantAmount)
			}
		})
	}
}

func TestConvertToAllCurrencies(t *testing.T) {
	rates := ExchangeRates{USDToILS: 3.7, EURToILS: 4.0}

	tests := []struct {
		name     string
		amount   float64
		currency enum.Currency
		rates    ExchangeRates
		wantILS  float64
		wantUSD  float64
		wantEUR  float64
	}{
		{"from ILS", 10000, enum.CurrencyILS, rates, 10000, 2702.70, 2500},
		{"from USD through hub", 2500, enum.CurrencyUSD, rates, 9250, 2500, 2312.50},
		{"from EUR through hub", 1000, enum.CurrencyEUR, rates, 4000, 1081.08, 1000},
		{"zero amount", 0, enum.CurrencyUSD, rates, 0, 0, 0},
		{"zero USD rate degrades to zero", 100, enum.CurrencyUSD, ExchangeRates{USDToILS: 0, EURToILS: 4.0}, 0, 100, 0},
		{"zero EUR rate degrades to zero", 100, enum.CurrencyILS, ExchangeRates{USDToILS: 3.7, EURToILS: 0}, 100, 27.03, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertToAllCurrencies(tt.amount, tt.currency, tt.rates)
			if !approx(got.UnitCostILS, tt.wantILS) {
				t.Errorf("UnitCostILS = %v, want %v", got.UnitCostILS, tt.wantILS)
			}
			if !approx(got.UnitCostUSD, tt.wantUSD) {
				t.Errorf("UnitCostUSD = %v, want %v", got.UnitCostUSD, tt.wantUSD)
			}
			if !approx(got.UnitCostEUR, tt.wantEUR) {
				t.Errorf("UnitCostEUR = %v, want %v", got.UnitCostEUR, tt.wantEUR)
			}
			if got.Currency != tt.currency {
				t.Errorf("Currency = %v, want %v", got.Currency, tt.currency)
			}
		})
	}
}

// Changing a rate must leave the original currency's amount unchanged and only
// recompute the other two currencies.
func TestConvertRateChangeKeepsOriginal(t *testing.T) {
	before := ConvertToAllCurrencies(2500, enum.CurrencyUSD, ExchangeRates{USDToILS: 3.7, EURToILS: 4.0})
	if before.UnitCostUSD != 2500 {
		t.Fatalf("UnitCostUSD = %v, want 2500", before.UnitCostUSD)
	}
	if !approx(before.UnitCostILS, 9250) {
		t.Fatalf("UnitCostILS = %v, want 9250", before.UnitCostILS)
	}

	after := ConvertToAllCurrencies(before.OriginalCost, before.Currency, ExchangeRates{USDToILS: 4.0, EURToILS: 4.0})
	if after.UnitCostUSD != 2500 {
		t.Errorf("UnitCostUSD after rate change = %v, want 2500 unchanged", after.UnitCostUSD)
	}
	if !approx(after.UnitCostILS, 10000) {
		t.Errorf("UnitCostILS after rate change = %v, want 10000", after.UnitCostILS)
	}
}

// For every currency the field matching the input currency must round-trip
// the amount, and the derived fields must be consistent with the rate graph.
func TestConvertRoundTrip(t *testing.T) {
	rates := ExchangeRates{USDToILS: 3.65, EURToILS: 3.95}
	amounts := []float64{0.01, 1, 99.99, 2500, 123456.78}
	currencies := []enum.Currency{enum.CurrencyILS, enum.CurrencyUSD, enum.CurrencyEUR}

	for _, cur := range currencies {
		for _, amount := range amounts {
			got := ConvertToAllCurrencies(amount, cur, rates)

			var original float64
			switch cur {
			case enum.CurrencyILS:
				original = got.UnitCostILS
			case enum.CurrencyUSD:
				original = got.UnitCostUSD
			case enum.CurrencyEUR:
				original = got.UnitCostEUR
			}
			if !approx(original, Round2(amount)) {
				t.Errorf("%s %v: original field = %v, want %v", cur, amount, original, Round2(amount))
			}

			// derived fields stay consistent with the hub within rounding
			if math.Abs(got.UnitCostUSD*rates.USDToILS-got.UnitCostILS) > 0.05 {
				t.Errorf("%s %v: USD/ILS inconsistent: %v vs %v", cur, amount, got.UnitCostUSD*rates.USDToILS, got.UnitCostILS)
			}
			if math.Abs(got.UnitCostEUR*rates.EURToILS-got.UnitCostILS) > 0.05 {
				t.Errorf("%s %v: EUR/ILS inconsistent: %v vs %v", cur, amount, got.UnitCostEUR*rates.EURToILS, got.UnitCostILS)
			}
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in     float64
		expect float64
	}{
		{0.125, 0.13}, // half rounds away from zero
		{-0.125, -0.13},
		{1.004, 1.0},
		{2.676, 2.68},
		{0, 0},
		{1333.333333, 1333.33},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); !approx(got, tt.expect) {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.expect)
		}
	}
}
