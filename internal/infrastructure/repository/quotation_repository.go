package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
	domainRepo "github.com/robomation/roboquote-api/internal/domain/repository"
	"gorm.io/gorm"
)

type quotationRepository struct {
	db *gorm.DB
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *gorm.DB) domainRepo.QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(ctx context.Context, project *entity.QuotationProject) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *quotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.QuotationProject, error) {
	var project entity.QuotationProject
	err := r.db.WithContext(ctx).
		Scopes(TeamScope(ctx)).
		Preload("Customer").
		First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &project, err
}

func (r *quotationRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.QuotationProject, error) {
	var project entity.QuotationProject
	err := r.db.WithContext(ctx).
		Scopes(TeamScope(ctx)).
		Preload("Customer").
		Preload("Parameters").
		Preload("Systems", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("system_order ASC, item_order ASC")
		}).
		First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &project, err
}

func (r *quotationRepository) Update(ctx context.Context, project *entity.QuotationProject) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *quotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.QuotationItem{}, "quotation_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.QuotationSystem{}, "quotation_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.QuotationParameters{}, "quotation_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.QuotationProject{}, "id = ?", id).Error
	})
}

func (r *quotationRepository) List(ctx context.Context, teamID uuid.UUID, params *domainRepo.QuotationFilterParams) ([]entity.QuotationProject, int64, error) {
	var projects []entity.QuotationProject
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.QuotationProject{})

	if teamID != uuid.Nil {
		query = query.Where("team_id = ?", teamID)
	}

	if params.Search != "" {
		query = query.Where("reference ILIKE ? OR project_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Find(&projects).Error

	return projects, total, err
}

func (r *quotationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuotationStatus) error {
	return r.db.WithContext(ctx).Model(&entity.QuotationProject{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *quotationRepository) GetNextReferenceNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.QuotationProject{}).Count(&count).Error
	return int(count) + 1, err
}

func (r *quotationRepository) SaveParameters(ctx context.Context, params *entity.QuotationParameters) error {
	return r.db.WithContext(ctx).Save(params).Error
}

type quotationSystemRepository struct {
	db *gorm.DB
}

// NewQuotationSystemRepository creates a new quotation system repository
func NewQuotationSystemRepository(db *gorm.DB) domainRepo.QuotationSystemRepository {
	return &quotationSystemRepository{db: db}
}

func (r *quotationSystemRepository) Create(ctx context.Context, system *entity.QuotationSystem) error {
	return r.db.WithContext(ctx).Create(system).Error
}

func (r *quotationSystemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.QuotationSystem, error) {
	var system entity.QuotationSystem
	err := r.db.WithContext(ctx).First(&system, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &system, err
}

func (r *quotationSystemRepository) ListByQuotationID(ctx context.Context, quotationID uuid.UUID) ([]entity.QuotationSystem, error) {
	var systems []entity.QuotationSystem
	err := r.db.WithContext(ctx).
		Where("quotation_id = ?", quotationID).
		Order("sort_order ASC").
		Find(&systems).Error
	return systems, err
}

func (r *quotationSystemRepository) SaveAll(ctx context.Context, systems []entity.QuotationSystem) error {
	if len(systems) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&systems).Error
}

func (r *quotationSystemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.QuotationSystem{}, "id = ?", id).Error
}

type quotationItemRepository struct {
	db *gorm.DB
}

// NewQuotationItemRepository creates a new quotation item repository
func NewQuotationItemRepository(db *gorm.DB) domainRepo.QuotationItemRepository {
	return &quotationItemRepository{db: db}
}

func (r *quotationItemRepository) Create(ctx context.Context, item *entity.QuotationItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *quotationItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.QuotationItem, error) {
	var item entity.QuotationItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *quotationItemRepository) ListByQuotationID(ctx context.Context, quotationID uuid.UUID) ([]entity.QuotationItem, error) {
	var items []entity.QuotationItem
	err := r.db.WithContext(ctx).
		Where("quotation_id = ?", quotationID).
		Order("system_order ASC, item_order ASC").
		Find(&items).Error
	return items, err
}

func (r *quotationItemRepository) SaveAll(ctx context.Context, items []entity.QuotationItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&items).Error
}

func (r *quotationItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.QuotationItem{}, "id = ?", id).Error
}

func (r *quotationItemRepository) DeleteBySystemID(ctx context.Context, systemID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.QuotationItem{}, "system_id = ?", systemID).Error
}
