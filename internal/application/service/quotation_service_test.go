package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/application/pricing"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
)

// A project row can exist without its parameters row when creation fails
// between the two inserts. Recalculation must surface the missing-parameters
// error instead of dereferencing nil, and must not touch any repository.
func TestRecalculateWithoutParametersFailsFast(t *testing.T) {
	svc := NewQuotationService(nil, nil, nil, nil, nil, nil, nil, nil)

	systemID := uuid.New()
	project := &entity.QuotationProject{
		ID:     uuid.New(),
		TeamID: uuid.New(),
		Systems: []entity.QuotationSystem{
			{ID: systemID, Name: "Assembly cell", Quantity: 1, Order: 1},
		},
		Items: []entity.QuotationItem{
			{ID: uuid.New(), SystemID: systemID, Name: "Safety PLC",
				ItemType: enum.ItemTypeHardware, Quantity: 2, UnitPriceILS: 1850},
		},
	}

	err := svc.recalculate(context.Background(), project)
	if err == nil {
		t.Fatal("expected error for quotation without parameters")
	}
	if !errors.Is(err, pricing.ErrMissingParameters) {
		t.Errorf("expected missing-parameters error, got %v", err)
	}
}
