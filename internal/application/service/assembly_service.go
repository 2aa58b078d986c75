package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/application/pricing"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/repository"
	"github.com/robomation/roboquote-api/pkg/apperror"
	"github.com/robomation/roboquote-api/pkg/pagination"
)

// AssemblyService handles assembly operations and their cost rollups
type AssemblyService struct {
	assemblyRepo  repository.AssemblyRepository
	componentRepo repository.ComponentRepository
	activity      *ActivityService
}

// NewAssemblyService creates a new assembly service
func NewAssemblyService(
	assemblyRepo repository.AssemblyRepository,
	componentRepo repository.ComponentRepository,
	activity *ActivityService,
) *AssemblyService {
	return &AssemblyService{
		assemblyRepo:  assemblyRepo,
		componentRepo: componentRepo,
		activity:      activity,
	}
}

// AssemblyInput represents the input for creating or updating an assembly
type AssemblyInput struct {
	Name        string
	Description string
	Components  []AssemblyComponentInput
}

// AssemblyComponentInput links a component with a quantity
type AssemblyComponentInput struct {
	ComponentID uuid.UUID
	Quantity    float64
}

// AssemblyCost is the summed component cost of an assembly per currency
type AssemblyCost struct {
	TotalILS float64 `json:"total_ils"`
	TotalUSD float64 `json:"total_usd"`
	TotalEUR float64 `json:"total_eur"`
}

// CreateAssembly creates an assembly with its component list
func (s *AssemblyService) CreateAssembly(ctx context.Context, teamID uuid.UUID, userID *uuid.UUID, input *AssemblyInput) (*entity.Assembly, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Assembly name is required")
	}

	assembly := &entity.Assembly{
		TeamID:      teamID,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.assemblyRepo.Create(ctx, assembly); err != nil {
		return nil, err
	}

	components, err := s.buildComponents(ctx, input.Components)
	if err != nil {
		return nil, err
	}
	if err := s.assemblyRepo.ReplaceComponents(ctx, assembly.ID, components); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, teamID, userID, "assembly", &assembly.ID, "create",
		fmt.Sprintf("Assembly %q created", assembly.Name))
	return s.assemblyRepo.GetWithComponents(ctx, assembly.ID)
}

// GetAssembly returns an assembly with its components
func (s *AssemblyService) GetAssembly(ctx context.Context, id uuid.UUID) (*entity.Assembly, error) {
	assembly, err := s.assemblyRepo.GetWithComponents(ctx, id)
	if err != nil {
		return nil, err
	}
	if assembly == nil {
		return nil, apperror.NewNotFoundError("Assembly")
	}
	return assembly, nil
}

// ListAssemblies returns a page of assemblies
func (s *AssemblyService) ListAssemblies(ctx context.Context, teamID uuid.UUID, params *pagination.PaginationParams) ([]entity.Assembly, int64, error) {
	return s.assemblyRepo.List(ctx, teamID, params)
}

// UpdateAssembly updates assembly metadata and replaces its component list
func (s *AssemblyService) UpdateAssembly(ctx context.Context, id uuid.UUID, userID *uuid.UUID, input *AssemblyInput) (*entity.Assembly, error) {
	assembly, err := s.assemblyRepo.GetWithComponents(ctx, id)
	if err != nil {
		return nil, err
	}
	if assembly == nil {
		return nil, apperror.NewNotFoundError("Assembly")
	}

	if input.Name != "" {
		assembly.Name = input.Name
	}
	assembly.Description = input.Description
	assembly.Components = nil
	if err := s.assemblyRepo.Update(ctx, assembly); err != nil {
		return nil, err
	}

	components, err := s.buildComponents(ctx, input.Components)
	if err != nil {
		return nil, err
	}
	if err := s.assemblyRepo.ReplaceComponents(ctx, assembly.ID, components); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, assembly.TeamID, userID, "assembly", &assembly.ID, "update",
		fmt.Sprintf("Assembly %q updated", assembly.Name))
	return s.assemblyRepo.GetWithComponents(ctx, id)
}

// DeleteAssembly deletes an assembly and its component links
func (s *AssemblyService) DeleteAssembly(ctx context.Context, id uuid.UUID, userID *uuid.UUID) error {
	assembly, err := s.assemblyRepo.GetWithComponents(ctx, id)
	if err != nil {
		return err
	}
	if assembly == nil {
		return apperror.NewNotFoundError("Assembly")
	}

	if err := s.assemblyRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(ctx, assembly.TeamID, userID, "assembly", &id, "delete",
		fmt.Sprintf("Assembly %q deleted", assembly.Name))
	return nil
}

// CalculateCost sums the assembly's component unit costs per currency,
// weighted by quantity
func (s *AssemblyService) CalculateCost(ctx context.Context, id uuid.UUID) (*AssemblyCost, error) {
	assembly, err := s.assemblyRepo.GetWithComponents(ctx, id)
	if err != nil {
		return nil, err
	}
	if assembly == nil {
		return nil, apperror.NewNotFoundError("Assembly")
	}

	cost := &AssemblyCost{}
	for _, ac := range assembly.Components {
		qty := ac.Quantity
		if qty <= 0 {
			qty = 1
		}
		cost.TotalILS += ac.Component.UnitCostILS * qty
		cost.TotalUSD += ac.Component.UnitCostUSD * qty
		cost.TotalEUR += ac.Component.UnitCostEUR * qty
	}
	cost.TotalILS = pricing.Round2(cost.TotalILS)
	cost.TotalUSD = pricing.Round2(cost.TotalUSD)
	cost.TotalEUR = pricing.Round2(cost.TotalEUR)
	return cost, nil
}

func (s *AssemblyService) buildComponents(ctx context.Context, inputs []AssemblyComponentInput) ([]entity.AssemblyComponent, error) {
	components := make([]entity.AssemblyComponent, 0, len(inputs))
	for _, in := range inputs {
		component, err := s.componentRepo.GetByID(ctx, in.ComponentID)
		if err != nil {
			return nil, err
		}
		if component == nil {
			return nil, apperror.NewNotFoundError("Component")
		}
		qty := in.Quantity
		if qty <= 0 {
			qty = 1
		}
		components = append(components, entity.AssemblyComponent{
			ComponentID: in.ComponentID,
			Quantity:    qty,
		})
	}
	return components, nil
}
