package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
)

func TestCalculateRequiresParameters(t *testing.T) {
	_, err := Calculate(nil, nil, nil)
	if err == nil {
		t.Fatal("expected an error for missing parameters, got nil")
	}
}

func TestCalculateEmptyQuotation(t *testing.T) {
	params := &entity.QuotationParameters{
		USDToILSRate: 3.7, EURToILSRate: 4.0,
		MarkupMode: enum.MarkupModePercent, MarkupValue: 25,
		RiskPercent: 10, IncludeVAT: true, VATRate: 17,
	}

	got, err := Calculate(nil, nil, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCostILS != 0 || got.TotalProfitILS != 0 || got.FinalTotalILS != 0 || got.ProfitMarginPercent != 0 {
		t.Errorf("expected all-zero calculations, got %+v", got)
	}
}

// One system, one hardware item at 10000 ILS, cost-to-price ratio 0.75
// (25% of the price is profit), 10% risk, 17% VAT.
func TestCalculateAggregationExample(t *testing.T) {
	systemID := uuid.New()
	quotationID := uuid.New()

	systems := []entity.QuotationSystem{
		{ID: systemID, QuotationID: quotationID, Name: "Robot cell", Order: 1, Quantity: 1},
	}
	items := []entity.QuotationItem{
		{
			QuotationID: quotationID, SystemID: systemID,
			ItemType: enum.ItemTypeHardware, Quantity: 1,
			UnitPriceILS: 10000, UnitPriceUSD: 2702.70,
			SystemOrder: 1, ItemOrder: 1,
		},
	}
	params := &entity.QuotationParameters{
		USDToILSRate: 3.7, EURToILSRate: 4.0,
		MarkupMode: enum.MarkupModeRatio, MarkupValue: 0.75,
		RiskPercent: 10, IncludeVAT: true, VATRate: 17,
	}

	got, err := Calculate(items, systems, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		field  string
		got    float64
		expect float64
	}{
		{"TotalCostILS", got.TotalCostILS, 10000},
		{"HardwareCostILS", got.HardwareCostILS, 10000},
		{"TotalCustomerPriceILS", got.TotalCustomerPriceILS, 13333.33},
		{"TotalProfitILS", got.TotalProfitILS, 3333.33},
		{"RiskAdditionILS", got.RiskAdditionILS, 1333.33},
		{"TotalQuoteILS", got.TotalQuoteILS, 14666.67},
		{"TotalVATILS", got.TotalVATILS, 2493.33},
		{"FinalTotalILS", got.FinalTotalILS, 17160.00},
	}
	for _, c := range checks {
		if !approx(c.got, c.expect) {
			t.Errorf("%s = %v, want %v", c.field, c.got, c.expect)
		}
	}

	// margin is expressed against the final customer-facing total
	wantMargin := Round2(3333.3333 / 17160.00 * 100)
	if !approx(got.ProfitMarginPercent, wantMargin) {
		t.Errorf("ProfitMarginPercent = %v, want %v", got.ProfitMarginPercent, wantMargin)
	}
	if got.ItemCount != 1 {
		t.Errorf("ItemCount = %v, want 1", got.ItemCount)
	}
}

func TestCalculateVATExcluded(t *testing.T) {
	systemID := uuid.New()
	systems := []entity.QuotationSystem{{ID: systemID, Order: 1, Quantity: 1}}
	items := []entity.QuotationItem{
		{SystemID: systemID, ItemType: enum.ItemTypeHardware, Quantity: 1, UnitPriceILS: 1000, SystemOrder: 1, ItemOrder: 1},
	}
	params := &entity.QuotationParameters{
		USDToILSRate: 3.7, EURToILSRate: 4.0,
		MarkupMode: enum.MarkupModePercent, MarkupValue: 0,
		IncludeVAT: false, VATRate: 17,
	}

	got, err := Calculate(items, systems, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalVATILS != 0 {
		t.Errorf("TotalVATILS = %v, want 0 when VAT excluded", got.TotalVATILS)
	}
	if !approx(got.FinalTotalILS, got.TotalQuoteILS) {
		t.Errorf("FinalTotalILS = %v, want equal to pre-tax total %v", got.FinalTotalILS, got.TotalQuoteILS)
	}
}

// A permutation of the input items and systems yields identical totals.
func TestCalculateOrderIndependence(t *testing.T) {
	sysA := uuid.New()
	sysB := uuid.New()
	systems := []entity.QuotationSystem{
		{ID: sysA, Order: 1, Quantity: 2},
		{ID: sysB, Order: 2, Quantity: 1},
	}
	items := []entity.QuotationItem{
		{SystemID: sysA, ItemType: enum.ItemTypeHardware, Quantity: 3, UnitPriceILS: 123.45, SystemOrder: 1, ItemOrder: 1},
		{SystemID: sysA, ItemType: enum.ItemTypeLabor, LaborSubtype: enum.LaborSubtypeInstallation, Quantity: 2, UnitPriceILS: 850, SystemOrder: 1, ItemOrder: 2},
		{SystemID: sysB, ItemType: enum.ItemTypeSoftware, Quantity: 1, UnitPriceILS: 4999.99, SystemOrder: 2, ItemOrder: 1},
	}
	params := &entity.QuotationParameters{
		USDToILSRate: 3.7, EURToILSRate: 4.0,
		MarkupMode: enum.MarkupModePercent, MarkupValue: 30,
		RiskPercent: 5, IncludeVAT: true, VATRate: 17,
	}

	forward, err := Calculate(items, systems, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reversedItems := []entity.QuotationItem{items[2], items[1], items[0]}
	reversedSystems := []entity.QuotationSystem{systems[1], systems[0]}
	backward, err := Calculate(reversedItems, reversedSystems, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pairs := []struct {
		field string
		a, b  float64
	}{
		{"TotalCostILS", forward.TotalCostILS, backward.TotalCostILS},
		{"SubtotalUSD", forward.SubtotalUSD, backward.SubtotalUSD},
		{"TotalCustomerPriceILS", forward.TotalCustomerPriceILS, backward.TotalCustomerPriceILS},
		{"TotalProfitILS", forward.TotalProfitILS, backward.TotalProfitILS},
		{"RiskAdditionILS", forward.RiskAdditionILS, backward.RiskAdditionILS},
		{"TotalVATILS", forward.TotalVATILS, backward.TotalVATILS},
		{"FinalTotalILS", forward.FinalTotalILS, backward.FinalTotalILS},
		{"ProfitMarginPercent", forward.ProfitMarginPercent, backward.ProfitMarginPercent},
	}
	for _, p := range pairs {
		if !approx(p.a, p.b) {
			t.Errorf("%s differs under permutation: %v vs %v", p.field, p.a, p.b)
		}
	}
}

func TestCalculateIdempotent(t *testing.T) {
	systemID := uuid.New()
	systems := []entity.QuotationSystem{{ID: systemID, Order: 1, Quantity: 1}}
	items := []entity.QuotationItem{
		{SystemID: systemID, ItemType: enum.ItemTypeHardware, Quantity: 4, UnitPriceILS: 333.33, SystemOrder: 1, ItemOrder: 1},
	}
	params := &entity.QuotationParameters{
		USDToILSRate: 3.7, EURToILSRate: 4.0,
		MarkupMode: enum.MarkupModeRatio, MarkupValue: 0.8,
		RiskPercent: 7.5, IncludeVAT: true, VATRate: 17,
	}

	first, err := Calculate(items, systems, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Calculate(items, systems, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("re-running on unchanged input changed the result:\nfirst  %+v\nsecond %+v", first, second)
	}
}
