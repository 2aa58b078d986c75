// Package pricing implements the quotation pricing and currency engine: pure,
// synchronous calculation over data supplied by the caller, with no I/O and no
// shared mutable state.
package pricing

import (
	"math"

	"github.com/robomation/roboquote-api/internal/domain/enum"
)

// ExchangeRates is a snapshot of the global conversion rates. ILS is the hub:
// converting between USD and EUR always goes through ILS using both rates.
type ExchangeRates struct {
	USDToILS float64 `json:"usd_to_ils_rate"`
	EURToILS float64 `json:"eur_to_ils_rate"`
}

// DefaultRates is the documented fallback used when no rate snapshot has been
// stored yet.
var DefaultRates = ExchangeRates{USDToILS: 3.70, EURToILS: 4.00}

// Round2 rounds to 2 decimal places, half away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OriginalPrice is the resolved source value of a component price: the one
// currency/amount pair all other representations are derived from.
type OriginalPrice struct {
	Currency enum.Currency `json:"currency"`
	Amount   float64       `json:"amount"`
}

// DetectOriginalCurrency resolves the original currency and amount of a price
// record. If a declared currency is given and its amount is present and
// non-zero, that pair wins. Otherwise the first non-zero amount in fixed
// priority order ILS, USD, EUR is used; legacy records lacking an explicit
// currency tag are handled this way. All absent or zero yields {ILS, 0}.
func DetectOriginalCurrency(amountILS, amountUSD, amountEUR float64, declared enum.Currency) OriginalPrice {
	if declared.IsValid() {
		switch declared {
		case enum.CurrencyILS:
			if amountILS != 0 {
				return OriginalPrice{Currency: enum.CurrencyILS, Amount: amountILS}
			}
		case enum.CurrencyUSD:
			if amountUSD != 0 {
				return OriginalPrice{Currency: enum.CurrencyUSD, Amount: amountUSD}
			}
		case enum.CurrencyEUR:
			if amountEUR != 0 {
				return OriginalPrice{Currency: enum.CurrencyEUR, Amount: amountEUR}
			}
		}
	}

	switch {
	case amountILS != 0:
		return OriginalPrice{Currency: enum.CurrencyILS, Amount: amountILS}
	case amountUSD != 0:
		return OriginalPrice{Currency: enum.CurrencyUSD, Amount: amountUSD}
	case amountEUR != 0:
		return OriginalPrice{Currency: enum.CurrencyEUR, Amount: amountEUR}
	}
	return OriginalPrice{Currency: enum.CurrencyILS, Amount: 0}
}

// ConvertedPrices holds one amount expressed in all three currencies. The
// field matching Currency always equals OriginalCost; the other two are
// derived through the ILS hub.
type ConvertedPrices struct {
	UnitCostILS  float64       `json:"unit_cost_ils"`
	UnitCostUSD  float64       `json:"unit_cost_usd"`
	UnitCostEUR  float64       `json:"unit_cost_eur"`
	Currency     enum.Currency `json:"currency"`
	OriginalCost float64       `json:"original_cost"`
}

// ConvertToAllCurrencies converts one amount into all three currencies at the
// given rates. The original currency's amount is carried through unchanged;
// the other two are derived and rounded to 2 decimal places. A zero rate
// yields a zero converted amount rather than an error.
func ConvertToAllCurrencies(amount float64, currency enum.Currency, rates ExchangeRates) ConvertedPrices {
	if !currency.IsValid() {
		currency = enum.CurrencyILS
	}

	var ils float64
	switch currency {
	case enum.CurrencyILS:
		ils = amount
	case enum.CurrencyUSD:
		ils = amount * rates.USDToILS
	case enum.CurrencyEUR:
		ils = amount * rates.EURToILS
	}

	out := ConvertedPrices{
		UnitCostILS:  Round2(ils),
		UnitCostUSD:  Round2(safeDiv(ils, rates.USDToILS)),
		UnitCostEUR:  Round2(safeDiv(ils, rates.EURToILS)),
		Currency:     currency,
		OriginalCost: Round2(amount),
	}

	// The original currency is never re-derived from a converted value
	switch currency {
	case enum.CurrencyILS:
		out.UnitCostILS = Round2(amount)
	case enum.CurrencyUSD:
		out.UnitCostUSD = Round2(amount)
	case enum.CurrencyEUR:
		out.UnitCostEUR = Round2(amount)
	}

	return out
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
