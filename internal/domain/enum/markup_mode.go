package enum

// MarkupMode selects how the markup value on quotation parameters is
// interpreted. The two interpretations are incompatible for the same number,
// so the mode is chosen once per quotation instead of overloading one field.
type MarkupMode string

const (
	// MarkupModePercent treats the value as a percentage markup over cost:
	// customer price = cost * (1 + value/100)
	MarkupModePercent MarkupMode = "percent"
	// MarkupModeRatio treats the value as a cost-to-price ratio:
	// customer price = cost / value (e.g. 0.75 means cost is 75% of price)
	MarkupModeRatio MarkupMode = "ratio"
)

// IsValid reports whether the markup mode is one of the known modes
func (m MarkupMode) IsValid() bool {
	return m == MarkupModePercent || m == MarkupModeRatio
}
