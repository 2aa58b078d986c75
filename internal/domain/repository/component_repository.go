package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/pkg/pagination"
)

// ComponentFilterParams holds filtering options for listing components
type ComponentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	SortBy     string
	SortOrder  string
}

// ComponentRepository defines catalog component data access
type ComponentRepository interface {
	Create(ctx context.Context, component *entity.Component) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Component, error)
	Update(ctx context.Context, component *entity.Component) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, teamID uuid.UUID, params *ComponentFilterParams) ([]entity.Component, int64, error)
	// ListAll returns every component of a team, for bulk re-derivation passes
	ListAll(ctx context.Context, teamID uuid.UUID) ([]entity.Component, error)
	UpdateBatch(ctx context.Context, components []entity.Component) error
	DeleteBatch(ctx context.Context, teamID uuid.UUID, ids []uuid.UUID) (int64, error)
}

// AssemblyRepository defines assembly data access
type AssemblyRepository interface {
	Create(ctx context.Context, assembly *entity.Assembly) error
	GetWithComponents(ctx context.Context, id uuid.UUID) (*entity.Assembly, error)
	Update(ctx context.Context, assembly *entity.Assembly) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, teamID uuid.UUID, params *pagination.PaginationParams) ([]entity.Assembly, int64, error)
	ReplaceComponents(ctx context.Context, assemblyID uuid.UUID, components []entity.AssemblyComponent) error
}
