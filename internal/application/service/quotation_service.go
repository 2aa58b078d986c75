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
)

// QuotationService handles quotation lifecycle operations. Every structural
// mutation runs the same pass: renumber systems and items, recompute all item
// totals and the aggregation chain, persist the result. Stored numbers are
// never trusted across mutations.
type QuotationService struct {
	quotationRepo repository.QuotationRepository
	systemRepo    repository.QuotationSystemRepository
	itemRepo      repository.QuotationItemRepository
	componentRepo repository.ComponentRepository
	customerRepo  repository.CustomerRepository
	settingsRepo  repository.SettingsRepository
	ratesService  *RatesService
	activity      *ActivityService
}

// NewQuotationService creates a new quotation service
func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	systemRepo repository.QuotationSystemRepository,
	itemRepo repository.QuotationItemRepository,
	componentRepo repository.ComponentRepository,
	customerRepo repository.CustomerRepository,
	settingsRepo repository.SettingsRepository,
	ratesService *RatesService,
	activity *ActivityService,
) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		systemRepo:    systemRepo,
		itemRepo:      itemRepo,
		componentRepo: componentRepo,
		customerRepo:  customerRepo,
		settingsRepo:  settingsRepo,
		ratesService:  ratesService,
		activity:      activity,
	}
}

// CreateQuotationInput represents the input for creating a quotation project
type CreateQuotationInput struct {
	UserID      uuid.UUID
	CustomerID  *uuid.UUID
	ProjectName string
	Note        *string
}

// CreateQuotation creates a new quotation project. Pricing parameters are
// snapshotted from the team defaults and the current exchange rates, so later
// rate or default changes never silently reprice an existing quotation.
func (s *QuotationService) CreateQuotation(ctx context.Context, teamID uuid.UUID, input *CreateQuotationInput) (*entity.QuotationProject, error) {
	if input.ProjectName == "" {
		return nil, apperror.NewBadRequestError("Project name is required")
	}

	nextNum, err := s.quotationRepo.GetNextReferenceNumber(ctx)
	if err != nil {
		return nil, err
	}
	reference := fmt.Sprintf("QU-%06d", nextNum)

	var customerName string
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		customerName = customer.Name
	}

	project := &entity.QuotationProject{
		TeamID:       teamID,
		UserID:       input.UserID,
		CustomerID:   input.CustomerID,
		Reference:    reference,
		ProjectName:  input.ProjectName,
		CustomerName: customerName,
		Status:       enum.QuotationStatusDraft,
		Note:         input.Note,
	}
	if err := s.quotationRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	params, err := s.snapshotParameters(ctx, teamID, project.ID)
	if err != nil {
		return nil, err
	}
	if err := s.quotationRepo.SaveParameters(ctx, params); err != nil {
		return nil, err
	}
	project.Parameters = params

	s.activity.Record(ctx, teamID, &input.UserID, "quotation", &project.ID, "create",
		fmt.Sprintf("Quotation %s created", reference))
	return project, nil
}

// snapshotParameters builds the per-quotation parameter row from the team
// defaults and the current global exchange rates
func (s *QuotationService) snapshotParameters(ctx context.Context, teamID, quotationID uuid.UUID) (*entity.QuotationParameters, error) {
	rates, err := s.ratesService.Current(ctx)
	if err != nil {
		return nil, err
	}

	params := &entity.QuotationParameters{
		QuotationID:  quotationID,
		USDToILSRate: rates.USDToILS,
		EURToILSRate: rates.EURToILS,
		MarkupMode:   enum.MarkupModePercent,
		MarkupValue:  25,
		IncludeVAT:   true,
		VATRate:      17,
	}

	teamSettings, err := s.settingsRepo.GetTeamSettings(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if teamSettings != nil {
		params.MarkupMode = teamSettings.DefaultMarkupMode
		params.MarkupValue = teamSettings.DefaultMarkupValue
		params.LaborDayCostILS = teamSettings.LaborDayCostILS
		params.RiskPercent = teamSettings.DefaultRiskPercent
		params.IncludeVAT = teamSettings.IncludeVAT
		params.VATRate = teamSettings.DefaultVATRate
		params.PaymentTerms = teamSettings.PaymentTerms
		params.DeliveryTerms = teamSettings.DeliveryTerms
	}
	return params, nil
}

// GetQuotation returns a quotation with parameters, systems and items
func (s *QuotationService) GetQuotation(ctx context.Context, id uuid.UUID) (*entity.QuotationProject, error) {
	project, err := s.quotationRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return project, nil
}

// ListQuotations returns a filtered page of quotation projects
func (s *QuotationService) ListQuotations(ctx context.Context, teamID uuid.UUID, params *repository.QuotationFilterParams) ([]entity.QuotationProject, int64, error) {
	return s.quotationRepo.List(ctx, teamID, params)
}

// UpdateQuotationInput represents updatable quotation metadata
type UpdateQuotationInput struct {
	ProjectName string
	CustomerID  *uuid.UUID
	Note        *string
}

// UpdateQuotation updates quotation metadata
func (s *QuotationService) UpdateQuotation(ctx context.Context, id uuid.UUID, userID *uuid.UUID, input *UpdateQuotationInput) (*entity.QuotationProject, error) {
	project, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}

	if input.ProjectName != "" {
		project.ProjectName = input.ProjectName
	}
	project.Note = input.Note
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		project.CustomerID = input.CustomerID
		project.CustomerName = customer.Name
	}

	if err := s.quotationRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, project.TeamID, userID, "quotation", &project.ID, "update",
		fmt.Sprintf("Quotation %s updated", project.Reference))
	return project, nil
}

// UpdateParameters replaces the quotation's pricing parameters and
// recalculates all totals under the new policy
func (s *QuotationService) UpdateParameters(ctx context.Context, id uuid.UUID, userID *uuid.UUID, params *entity.QuotationParameters) (*entity.QuotationProject, error) {
	project, err := s.quotationRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}

	if fieldErrors := pricing.ValidateParameters(params); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	params.QuotationID = project.ID
	if project.Parameters != nil {
		params.ID = project.Parameters.ID
		params.CreatedAt = project.Parameters.CreatedAt
	}
	if err := s.quotationRepo.SaveParameters(ctx, params); err != nil {
		return nil, err
	}
	project.Parameters = params

	if err := s.recalculate(ctx, project); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, project.TeamID, userID, "quotation", &project.ID, "update",
		fmt.Sprintf("Quotation %s parameters changed", project.Reference))
	return project, nil
}

// UpdateStatus changes the quotation status
func (s *QuotationService) UpdateStatus(ctx context.Context, id uuid.UUID, userID *uuid.UUID, status enum.QuotationStatus) error {
	project, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return apperror.NewNotFoundError("Quotation")
	}

	if err := s.quotationRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.activity.Record(ctx, project.TeamID, userID, "quotation", &id, "status",
		fmt.Sprintf("Quotation %s marked %s", project.Reference, status.String()))
	return nil
}

// DeleteQuotation deletes a quotation with its parameters, systems and items
func (s *QuotationService) DeleteQuotation(ctx context.Context, id uuid.UUID, userID *uuid.UUID) error {
	project, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return apperror.NewNotFoundError("Quotation")
	}

	if err := s.quotationRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(ctx, project.TeamID, userID, "quotation", &id, "delete",
		fmt.Sprintf("Quotation %s deleted", project.Reference))
	return nil
}

// SystemInput represents the input for creating or updating a system
type SystemInput struct {
	Name        string
	Description string
	Quantity    float64
}

// AddSystem appends a system to the quotation and renumbers
func (s *QuotationService) AddSystem(ctx context.Context, quotationID uuid.UUID, input *SystemInput) (*entity.QuotationProject, error) {
	project, err := s.quotationRepo.GetWithDetails(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("System name is required")
	}

	system := &entity.QuotationSystem{
		QuotationID: quotationID,
		Name:        input.Name,
		Description: input.Description,
		Order:       len(project.Systems) + 1,
		Quantity:    input.Quantity,
	}
	if system.Quantity <= 0 {
		system.Quantity = 1
	}
	if err := s.systemRepo.Create(ctx, system); err != nil {
		return nil, err
	}

	return s.reloadAndRecalculate(ctx, quotationID)
}

// UpdateSystem updates a system's metadata or quantity and recalculates
func (s *QuotationService) UpdateSystem(ctx context.Context, quotationID, systemID uuid.UUID, input *SystemInput) (*entity.QuotationProject, error) {
	system, err := s.systemRepo.GetByID(ctx, systemID)
	if err != nil {
		return nil, err
	}
	if system == nil || system.QuotationID != quotationID {
		return nil, apperror.NewNotFoundError("System")
	}

	if input.Name != "" {
		system.Name = input.Name
	}
	system.Description = input.Description
	if input.Quantity > 0 {
		system.Quantity = input.Quantity
	}
	if err := s.systemRepo.SaveAll(ctx, []entity.QuotationSystem{*system}); err != nil {
		return nil, err
	}

	return s.reloadAndRecalculate(ctx, quotationID)
}

// DeleteSystem removes a system and its items, then renumbers the remaining
// systems so numbering stays gapless
func (s *QuotationService) DeleteSystem(ctx context.Context, quotationID, systemID uuid.UUID) (*entity.QuotationProject, error) {
	system, err := s.systemRepo.GetByID(ctx, systemID)
	if err != nil {
		return nil, err
	}
	if system == nil || system.QuotationID != quotationID {
		return nil, apperror.NewNotFoundError("System")
	}

	if err := s.itemRepo.DeleteBySystemID(ctx, systemID); err != nil {
		return nil, err
	}
	if err := s.systemRepo.Delete(ctx, systemID); err != nil {
		return nil, err
	}

	return s.reloadAndRecalculate(ctx, quotationID)
}

// ReorderSystems applies a new system order given the full list of system IDs
// in their desired sequence
func (s *QuotationService) ReorderSystems(ctx context.Context, quotationID uuid.UUID, orderedIDs []uuid.UUID) (*entity.QuotationProject, error) {
	systems, err := s.systemRepo.ListByQuotationID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if len(orderedIDs) != len(systems) {
		return nil, apperror.NewBadRequestError("Reorder must list every system exactly once")
	}

	byID := make(map[uuid.UUID]*entity.QuotationSystem, len(systems))
	for i := range systems {
		byID[systems[i].ID] = &systems[i]
	}

	reordered := make([]entity.QuotationSystem, 0, len(systems))
	for _, id := range orderedIDs {
		system, ok := byID[id]
		if !ok {
			return nil, apperror.NewBadRequestError("Unknown system ID in reorder")
		}
		reordered = append(reordered, *system)
	}

	reordered = pricing.RenumberSystems(reordered)
	if err := s.systemRepo.SaveAll(ctx, reordered); err != nil {
		return nil, err
	}

	return s.reloadAndRecalculate(ctx, quotationID)
}

// ItemInput represents the input for creating or updating a quotation item
type ItemInput struct {
	SystemID      uuid.UUID
	ComponentID   *uuid.UUID
	Name          string
	ItemType      enum.ItemType
	LaborSubtype  enum.LaborSubtype
	Quantity      float64
	UnitPriceUSD  float64
	UnitPriceILS  float64
	MarkupPercent float64
}

// AddItem appends an item to a system. When a component is referenced, its
// name and unit costs seed the line.
func (s *QuotationService) AddItem(ctx context.Context, quotationID uuid.UUID, input *ItemInput) (*entity.QuotationProject, error) {
	system, err := s.systemRepo.GetByID(ctx, input.SystemID)
	if err != nil {
		return nil, err
	}
	if system == nil || system.QuotationID != quotationID {
		return nil, apperror.NewNotFoundError("System")
	}

	item := entity.QuotationItem{
		QuotationID:   quotationID,
		SystemID:      input.SystemID,
		ComponentID:   input.ComponentID,
		Name:          input.Name,
		ItemType:      input.ItemType,
		LaborSubtype:  input.LaborSubtype,
		Quantity:      input.Quantity,
		UnitPriceUSD:  input.UnitPriceUSD,
		UnitPriceILS:  input.UnitPriceILS,
		MarkupPercent: input.MarkupPercent,
	}

	if input.ComponentID != nil {
		component, err := s.componentRepo.GetByID(ctx, *input.ComponentID)
		if err != nil {
			return nil, err
		}
		if component == nil {
			return nil, apperror.NewNotFoundError("Component")
		}
		if item.Name == "" {
			item.Name = component.Name
		}
		if item.UnitPriceUSD == 0 && item.UnitPriceILS == 0 {
			item.UnitPriceUSD = component.UnitCostUSD
			item.UnitPriceILS = component.UnitCostILS
		}
	}

	if fieldErrors := pricing.ValidateItem(item); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.itemRepo.ListByQuotationID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	item.SystemOrder = system.Order
	item.ItemOrder = 1
	for _, other := range existing {
		if other.SystemID == input.SystemID && other.ItemOrder >= item.ItemOrder {
			item.ItemOrder = other.ItemOrder + 1
		}
	}
	item.DisplayNumber = entity.FormatDisplayNumber(item.SystemOrder, item.ItemOrder)

	if err := s.itemRepo.Create(ctx, &item); err != nil {
		return nil, err
	}

	return s.reloadAndRecalculate(ctx, quotationID)
}

// UpdateItem updates an item's pricing fields and recalculates
func (s *QuotationService) UpdateItem(ctx context.Context, quotationID, itemID uuid.UUID, input *ItemInput) (*entity.QuotationProject, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.QuotationID != quotationID {
		return nil, apperror.NewNotFoundError("Item")
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.ItemType != "" {
		item.ItemType = input.ItemType
	}
	item.LaborSubtype = input.LaborSubtype
	item.Quantity = input.Quantity
	item.UnitPriceUSD = input.UnitPriceUSD
	item.UnitPriceILS = input.UnitPriceILS
	item.MarkupPercent = input.MarkupPercent

	if fieldErrors := pricing.ValidateItem(*item); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if err := s.itemRepo.SaveAll(ctx, []entity.QuotationItem{*item}); err != nil {
		return nil, err
	}

	return s.reloadAndRecalculate(ctx, quotationID)
}

// DeleteItem removes an item and renumbers the remaining items in its system
func (s *QuotationService) DeleteItem(ctx context.Context, quotationID, itemID uuid.UUID) (*entity.QuotationProject, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.QuotationID != quotationID {
		return nil, apperror.NewNotFoundError("Item")
	}

	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		return nil, err
	}

	return s.reloadAndRecalculate(ctx, quotationID)
}

// Recalculate reruns the full renumber and pricing pass on demand
func (s *QuotationService) Recalculate(ctx context.Context, quotationID uuid.UUID) (*entity.QuotationProject, error) {
	return s.reloadAndRecalculate(ctx, quotationID)
}

func (s *QuotationService) reloadAndRecalculate(ctx context.Context, quotationID uuid.UUID) (*entity.QuotationProject, error) {
	project, err := s.quotationRepo.GetWithDetails(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	if err := s.recalculate(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// recalculate renumbers systems and items, recomputes every item's totals
// and the quotation aggregation, and persists all of it
func (s *QuotationService) recalculate(ctx context.Context, project *entity.QuotationProject) error {
	if project.Parameters == nil {
		return pricing.ErrMissingParameters
	}

	project.Systems = pricing.RenumberSystems(project.Systems)
	project.Items = pricing.RenumberItems(project.Items, pricing.SystemOrderMap(project.Systems))

	for i := range project.Items {
		project.Items[i] = pricing.CalculateItemTotals(project.Items[i], project.Parameters)
	}

	calcs, err := pricing.Calculate(project.Items, project.Systems, project.Parameters)
	if err != nil {
		return err
	}
	project.Calculations = calcs

	if err := s.systemRepo.SaveAll(ctx, project.Systems); err != nil {
		return err
	}
	if err := s.itemRepo.SaveAll(ctx, project.Items); err != nil {
		return err
	}
	return s.quotationRepo.Update(ctx, project)
}
