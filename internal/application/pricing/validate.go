package pricing

import (
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/pkg/apperror"
)

// Validation is a pre-pass the caller runs before trusting calculation
// results. The calculation functions themselves do not validate; they degrade
// gracefully on degenerate numeric input instead of raising.

// ValidateExchangeRates checks that both rates are positive
func ValidateExchangeRates(rates ExchangeRates) []apperror.FieldError {
	var errs []apperror.FieldError
	if rates.USDToILS <= 0 {
		errs = append(errs, apperror.FieldError{Field: "usd_to_ils_rate", Message: "USD to ILS rate must be greater than zero"})
	}
	if rates.EURToILS <= 0 {
		errs = append(errs, apperror.FieldError{Field: "eur_to_ils_rate", Message: "EUR to ILS rate must be greater than zero"})
	}
	return errs
}

// ValidateParameters checks a quotation's pricing parameters
func ValidateParameters(params *entity.QuotationParameters) []apperror.FieldError {
	if params == nil {
		return []apperror.FieldError{{Field: "parameters", Message: "quotation parameters are required"}}
	}

	errs := ValidateExchangeRates(ExchangeRates{USDToILS: params.USDToILSRate, EURToILS: params.EURToILSRate})
	if !params.MarkupMode.IsValid() {
		errs = append(errs, apperror.FieldError{Field: "markup_mode", Message: "markup mode must be percent or ratio"})
	}
	if params.MarkupValue < 0 {
		errs = append(errs, apperror.FieldError{Field: "markup_value", Message: "markup value cannot be negative"})
	}
	if params.RiskPercent < 0 {
		errs = append(errs, apperror.FieldError{Field: "risk_percent", Message: "risk percent cannot be negative"})
	}
	if params.VATRate < 0 {
		errs = append(errs, apperror.FieldError{Field: "vat_rate", Message: "VAT rate cannot be negative"})
	}
	if params.LaborDayCostILS < 0 {
		errs = append(errs, apperror.FieldError{Field: "labor_day_cost_ils", Message: "labor day cost cannot be negative"})
	}
	return errs
}

// ValidateItem checks a quotation line item
func ValidateItem(item entity.QuotationItem) []apperror.FieldError {
	var errs []apperror.FieldError
	if item.Quantity < 0 {
		errs = append(errs, apperror.FieldError{Field: "quantity", Message: "quantity cannot be negative"})
	}
	if item.UnitPriceUSD < 0 {
		errs = append(errs, apperror.FieldError{Field: "unit_price_usd", Message: "unit price cannot be negative"})
	}
	if item.UnitPriceILS < 0 {
		errs = append(errs, apperror.FieldError{Field: "unit_price_ils", Message: "unit price cannot be negative"})
	}
	if !item.ItemType.IsValid() {
		errs = append(errs, apperror.FieldError{Field: "item_type", Message: "item type must be hardware, software or labor"})
	}
	if item.LaborSubtype != "" && !item.LaborSubtype.IsValid() {
		errs = append(errs, apperror.FieldError{Field: "labor_subtype", Message: "labor subtype must be engineering, commissioning or installation"})
	}
	return errs
}
