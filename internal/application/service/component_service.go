package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/application/pricing"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
	"github.com/robomation/roboquote-api/internal/domain/repository"
	"github.com/robomation/roboquote-api/pkg/apperror"
	"github.com/robomation/roboquote-api/pkg/utils"
)

// ComponentService handles catalog component operations, including the bulk
// mutations that run under the audit guard
type ComponentService struct {
	componentRepo repository.ComponentRepository
	ratesService  *RatesService
	bulkService   *BulkOperationService
	activity      *ActivityService
}

// NewComponentService creates a new component service
func NewComponentService(
	componentRepo repository.ComponentRepository,
	ratesService *RatesService,
	bulkService *BulkOperationService,
	activity *ActivityService,
) *ComponentService {
	return &ComponentService{
		componentRepo: componentRepo,
		ratesService:  ratesService,
		bulkService:   bulkService,
		activity:      activity,
	}
}

// ComponentInput represents the input for creating or updating a component
type ComponentInput struct {
	PartNumber   string
	Name         string
	Description  string
	Category     string
	Manufacturer string
	SupplierName string

	UnitCostILS      float64
	UnitCostUSD      float64
	UnitCostEUR      float64
	OriginalCurrency enum.Currency
}

// normalizePricing detects the original currency, then derives all three
// unit cost fields from the original amount at the current rates. The
// original pair is what survives future rate changes.
func (s *ComponentService) normalizePricing(ctx context.Context, component *entity.Component, input *ComponentInput) error {
	rates, err := s.ratesService.Current(ctx)
	if err != nil {
		return err
	}

	original := pricing.DetectOriginalCurrency(
		input.UnitCostILS, input.UnitCostUSD, input.UnitCostEUR, input.OriginalCurrency)
	converted := pricing.ConvertToAllCurrencies(original.Amount, original.Currency, rates)

	component.UnitCostILS = converted.UnitCostILS
	component.UnitCostUSD = converted.UnitCostUSD
	component.UnitCostEUR = converted.UnitCostEUR
	component.OriginalCurrency = converted.Currency
	component.OriginalCost = converted.OriginalCost
	return nil
}

// CreateComponent creates a new catalog component
func (s *ComponentService) CreateComponent(ctx context.Context, teamID uuid.UUID, userID *uuid.UUID, input *ComponentInput) (*entity.Component, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Component name is required")
	}

	component := &entity.Component{
		TeamID:       teamID,
		PartNumber:   input.PartNumber,
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		Manufacturer: input.Manufacturer,
		SupplierName: input.SupplierName,
	}
	if err := s.normalizePricing(ctx, component, input); err != nil {
		return nil, err
	}

	if err := s.componentRepo.Create(ctx, component); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, teamID, userID, "component", &component.ID, "create",
		fmt.Sprintf("Component %q created", component.Name))
	return component, nil
}

// UpdateComponent updates an existing component and re-normalizes its pricing
func (s *ComponentService) UpdateComponent(ctx context.Context, id uuid.UUID, userID *uuid.UUID, input *ComponentInput) (*entity.Component, error) {
	component, err := s.componentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, apperror.NewNotFoundError("Component")
	}

	component.PartNumber = input.PartNumber
	component.Name = input.Name
	component.Description = input.Description
	component.Category = input.Category
	component.Manufacturer = input.Manufacturer
	component.SupplierName = input.SupplierName
	if err := s.normalizePricing(ctx, component, input); err != nil {
		return nil, err
	}

	if err := s.componentRepo.Update(ctx, component); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, component.TeamID, userID, "component", &component.ID, "update",
		fmt.Sprintf("Component %q updated", component.Name))
	return component, nil
}

// GetComponent returns a single component
func (s *ComponentService) GetComponent(ctx context.Context, id uuid.UUID) (*entity.Component, error) {
	component, err := s.componentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, apperror.NewNotFoundError("Component")
	}
	return component, nil
}

// ListComponents returns a filtered page of components
func (s *ComponentService) ListComponents(ctx context.Context, teamID uuid.UUID, params *repository.ComponentFilterParams) ([]entity.Component, int64, error) {
	return s.componentRepo.List(ctx, teamID, params)
}

// DeleteComponent deletes a single component
func (s *ComponentService) DeleteComponent(ctx context.Context, id uuid.UUID, userID *uuid.UUID) error {
	component, err := s.componentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if component == nil {
		return apperror.NewNotFoundError("Component")
	}

	if err := s.componentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(ctx, component.TeamID, userID, "component", &id, "delete",
		fmt.Sprintf("Component %q deleted", component.Name))
	return nil
}

// BulkDelete deletes many components as one logical operation. Runs under a
// bulk marker so only one summary audit entry is written.
func (s *ComponentService) BulkDelete(ctx context.Context, teamID uuid.UUID, userID *uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, apperror.NewBadRequestError("No component IDs provided")
	}

	operationID := utils.NewOperationID()
	if _, err := s.bulkService.Start(ctx, teamID, operationID, enum.BulkOperationDelete); err != nil {
		return 0, err
	}
	defer s.bulkService.End(ctx, operationID)

	deleted, err := s.componentRepo.DeleteBatch(ctx, teamID, ids)
	if err != nil {
		return 0, err
	}

	s.activity.WriteSummary(ctx, teamID, userID, "component", "bulk_delete",
		fmt.Sprintf("%d components deleted", deleted))
	return deleted, nil
}

// ApplyExchangeRates re-derives every component's unit costs from its
// original currency amount at the current rates. The original amount is
// never touched, so repeated rate changes cannot drift it. Runs under a bulk
// marker so the pass produces one summary audit entry.
func (s *ComponentService) ApplyExchangeRates(ctx context.Context, teamID uuid.UUID, userID *uuid.UUID) (int, error) {
	rates, err := s.ratesService.Refresh(ctx)
	if err != nil {
		return 0, err
	}

	operationID := utils.NewOperationID()
	if _, err := s.bulkService.Start(ctx, teamID, operationID, enum.BulkOperationRateUpdate); err != nil {
		return 0, err
	}
	defer s.bulkService.End(ctx, operationID)

	components, err := s.componentRepo.ListAll(ctx, teamID)
	if err != nil {
		return 0, err
	}

	for i := range components {
		converted := pricing.ConvertToAllCurrencies(
			components[i].OriginalCost, components[i].OriginalCurrency, rates)
		components[i].UnitCostILS = converted.UnitCostILS
		components[i].UnitCostUSD = converted.UnitCostUSD
		components[i].UnitCostEUR = converted.UnitCostEUR
	}

	if err := s.componentRepo.UpdateBatch(ctx, components); err != nil {
		return 0, err
	}

	s.activity.WriteSummary(ctx, teamID, userID, "component", "rate_update",
		fmt.Sprintf("Exchange rates applied to %d components", len(components)))
	return len(components), nil
}
