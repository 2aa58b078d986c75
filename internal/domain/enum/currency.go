package enum

// Currency identifies one of the three currencies a price can be denominated in.
// ILS is the base currency; USD and EUR amounts are derived through it.
type Currency string

const (
	CurrencyILS Currency = "ILS"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// IsValid reports whether the currency is one of the supported three
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyILS, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// Symbol returns the display symbol for the currency
func (c Currency) Symbol() string {
	switch c {
	case CurrencyILS:
		return "₪"
	case CurrencyUSD:
		return "$"
	case CurrencyEUR:
		return "€"
	}
	return string(c)
}
