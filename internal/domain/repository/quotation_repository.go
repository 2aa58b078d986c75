package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
	"github.com/robomation/roboquote-api/pkg/pagination"
)

// QuotationFilterParams holds filtering options for listing quotations
type QuotationFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuotationStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}

// QuotationRepository defines quotation project data access
type QuotationRepository interface {
	Create(ctx context.Context, project *entity.QuotationProject) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.QuotationProject, error)
	// GetWithDetails loads the project with parameters, systems and items
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.QuotationProject, error)
	Update(ctx context.Context, project *entity.QuotationProject) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, teamID uuid.UUID, params *QuotationFilterParams) ([]entity.QuotationProject, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuotationStatus) error
	GetNextReferenceNumber(ctx context.Context) (int, error)

	SaveParameters(ctx context.Context, params *entity.QuotationParameters) error
}

// QuotationSystemRepository defines quotation system data access
type QuotationSystemRepository interface {
	Create(ctx context.Context, system *entity.QuotationSystem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.QuotationSystem, error)
	ListByQuotationID(ctx context.Context, quotationID uuid.UUID) ([]entity.QuotationSystem, error)
	SaveAll(ctx context.Context, systems []entity.QuotationSystem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuotationItemRepository defines quotation item data access
type QuotationItemRepository interface {
	Create(ctx context.Context, item *entity.QuotationItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.QuotationItem, error)
	ListByQuotationID(ctx context.Context, quotationID uuid.UUID) ([]entity.QuotationItem, error)
	SaveAll(ctx context.Context, items []entity.QuotationItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySystemID(ctx context.Context, systemID uuid.UUID) error
}
