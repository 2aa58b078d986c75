package pricing

import (
	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/pkg/apperror"
)

// ErrMissingParameters is returned when a calculation is attempted without
// quotation parameters. Parameters carry policy fields that change financial
// outcomes, so defaults are never silently substituted.
var ErrMissingParameters = apperror.NewBadRequestError("quotation parameters are required for calculation")

// Calculate turns the items and systems of a quotation into the full cost,
// profit, risk, VAT and final-price figures. The chain is strictly ordered:
// cost, then profit, then risk on price-after-profit, then the pre-tax total,
// then VAT, then the final total, then the margin against the final total.
// Each output field is rounded to 2 decimal places from unrounded
// intermediates.
//
// The result is independent of the ordering of the items and systems slices
// and idempotent for unchanged input. Empty input yields all-zero totals.
func Calculate(items []entity.QuotationItem, systems []entity.QuotationSystem, params *entity.QuotationParameters) (entity.QuotationCalculations, error) {
	if params == nil {
		return entity.QuotationCalculations{}, ErrMissingParameters
	}

	calcItems := make([]entity.QuotationItem, len(items))
	for i, item := range items {
		calcItems[i] = CalculateItemTotals(item, params)
	}

	systemQty := make(map[uuid.UUID]float64, len(systems))
	var calc entity.QuotationCalculations

	// Step 1: cost, summed from per-system totals already scaled by system
	// quantity
	for _, system := range systems {
		qty := system.Quantity
		if qty <= 0 {
			qty = 1
		}
		systemQty[system.ID] = qty

		st := CalculateSystemTotals(system, calcItems)
		calc.HardwareCostILS += st.HardwareILS
		calc.SoftwareCostILS += st.SoftwareILS
		calc.LaborCostILS += st.LaborILS
		calc.EngineeringCostILS += st.EngineeringILS
		calc.CommissioningCostILS += st.CommissioningILS
		calc.InstallationCostILS += st.InstallationILS
		calc.TotalCostILS += st.TotalILS
		calc.SubtotalUSD += st.TotalUSD
	}

	// Step 2: customer price and profit. Profit comes from the markup policy
	// applied at the aggregate level, not from summing per-item profits, to
	// avoid rounding drift.
	var totalCustomer float64
	for _, item := range calcItems {
		qty, ok := systemQty[item.SystemID]
		if !ok {
			qty = 1
		}
		totalCustomer += item.CustomerPriceILS * qty
	}

	cost := calc.TotalCostILS
	var profit float64
	if coeff := PolicyFromParameters(params).Coefficient(); coeff > 0 {
		profit = cost/coeff - cost
	}

	// Steps 3-7: risk on price-after-profit, pre-tax total, VAT, final, margin
	risk := (cost + profit) * params.RiskPercent / 100
	pretax := cost + profit + risk
	var vat float64
	if params.IncludeVAT {
		vat = pretax * params.VATRate / 100
	}
	final := pretax + vat
	var margin float64
	if final > 0 {
		margin = profit / final * 100
	}

	calc.HardwareCostILS = Round2(calc.HardwareCostILS)
	calc.SoftwareCostILS = Round2(calc.SoftwareCostILS)
	calc.LaborCostILS = Round2(calc.LaborCostILS)
	calc.EngineeringCostILS = Round2(calc.EngineeringCostILS)
	calc.CommissioningCostILS = Round2(calc.CommissioningCostILS)
	calc.InstallationCostILS = Round2(calc.InstallationCostILS)
	calc.TotalCostILS = Round2(calc.TotalCostILS)
	calc.SubtotalUSD = Round2(calc.SubtotalUSD)
	calc.TotalCustomerPriceILS = Round2(totalCustomer)
	calc.TotalProfitILS = Round2(profit)
	calc.RiskAdditionILS = Round2(risk)
	calc.TotalQuoteILS = Round2(pretax)
	calc.TotalVATILS = Round2(vat)
	calc.FinalTotalILS = Round2(final)
	calc.ProfitMarginPercent = Round2(margin)
	calc.ItemCount = len(items)

	return calc, nil
}

// CalculateProject is a convenience wrapper over Calculate for a loaded
// project aggregate.
func CalculateProject(project *entity.QuotationProject) (entity.QuotationCalculations, error) {
	return Calculate(project.Items, project.Systems, project.Parameters)
}
