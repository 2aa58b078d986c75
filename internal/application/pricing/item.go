package pricing

import (
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
)

// MarkupPolicy converts internal cost into customer-facing price. The mode is
// chosen once per quotation; the same numeric value means different things
// under each mode, so the two are never mixed on one quotation.
type MarkupPolicy struct {
	Mode  enum.MarkupMode
	Value float64
}

// Coefficient returns the profit coefficient: the cost-to-price ratio the
// customer price is derived from (price = cost / coefficient). A coefficient
// of zero or below means the policy cannot produce a price and callers treat
// the result as zero.
func (p MarkupPolicy) Coefficient() float64 {
	switch p.Mode {
	case enum.MarkupModeRatio:
		return p.Value
	default:
		base := 1 + p.Value/100
		if base <= 0 {
			return 0
		}
		return 1 / base
	}
}

// CustomerPrice applies the policy to a cost. Degenerate coefficients yield
// zero rather than Inf/NaN.
func (p MarkupPolicy) CustomerPrice(costILS float64) float64 {
	coeff := p.Coefficient()
	if coeff <= 0 {
		return 0
	}
	return Round2(costILS / coeff)
}

// PolicyFromParameters builds the quotation-level markup policy
func PolicyFromParameters(params *entity.QuotationParameters) MarkupPolicy {
	return MarkupPolicy{Mode: params.MarkupMode, Value: params.MarkupValue}
}

// CalculateItemTotals computes the derived fields of a line item: totals from
// quantity and unit prices, the customer price from the markup policy, and the
// display number regenerated from the order fields. Zero quantity or zero
// price yields zero totals. The input item is not mutated.
func CalculateItemTotals(item entity.QuotationItem, params *entity.QuotationParameters) entity.QuotationItem {
	item.TotalPriceUSD = Round2(item.Quantity * item.UnitPriceUSD)
	item.TotalPriceILS = Round2(item.Quantity * item.UnitPriceILS)

	policy := PolicyFromParameters(params)
	if item.MarkupPercent != 0 {
		policy.Value = item.MarkupPercent
	}
	item.CustomerPriceILS = policy.CustomerPrice(item.Quantity * item.UnitPriceILS)

	item.DisplayNumber = entity.FormatDisplayNumber(item.SystemOrder, item.ItemOrder)
	return item
}
