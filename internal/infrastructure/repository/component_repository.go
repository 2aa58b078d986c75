package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	domainRepo "github.com/robomation/roboquote-api/internal/domain/repository"
	"github.com/robomation/roboquote-api/pkg/pagination"
	"gorm.io/gorm"
)

type componentRepository struct {
	db *gorm.DB
}

// NewComponentRepository creates a new component repository
func NewComponentRepository(db *gorm.DB) domainRepo.ComponentRepository {
	return &componentRepository{db: db}
}

func (r *componentRepository) Create(ctx context.Context, component *entity.Component) error {
	return r.db.WithContext(ctx).Create(component).Error
}

func (r *componentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Component, error) {
	var component entity.Component
	err := r.db.WithContext(ctx).
		Scopes(TeamScope(ctx)).
		First(&component, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &component, err
}

func (r *componentRepository) Update(ctx context.Context, component *entity.Component) error {
	return r.db.WithContext(ctx).Save(component).Error
}

func (r *componentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Component{}, "id = ?", id).Error
}

func (r *componentRepository) List(ctx context.Context, teamID uuid.UUID, params *domainRepo.ComponentFilterParams) ([]entity.Component, int64, error) {
	var components []entity.Component
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Component{})

	if teamID != uuid.Nil {
		query = query.Where("team_id = ?", teamID)
	}

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR part_number ILIKE ? OR manufacturer ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "name"
	sortOrder := "ASC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&components).Error

	return components, total, err
}

func (r *componentRepository) ListAll(ctx context.Context, teamID uuid.UUID) ([]entity.Component, error) {
	var components []entity.Component
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Find(&components).Error
	return components, err
}

func (r *componentRepository) UpdateBatch(ctx context.Context, components []entity.Component) error {
	if len(components) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range components {
			if err := tx.Save(&components[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *componentRepository) DeleteBatch(ctx context.Context, teamID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Delete(&entity.Component{}, "id IN ?", ids)
	return result.RowsAffected, result.Error
}

type assemblyRepository struct {
	db *gorm.DB
}

// NewAssemblyRepository creates a new assembly repository
func NewAssemblyRepository(db *gorm.DB) domainRepo.AssemblyRepository {
	return &assemblyRepository{db: db}
}

func (r *assemblyRepository) Create(ctx context.Context, assembly *entity.Assembly) error {
	return r.db.WithContext(ctx).Create(assembly).Error
}

func (r *assemblyRepository) GetWithComponents(ctx context.Context, id uuid.UUID) (*entity.Assembly, error) {
	var assembly entity.Assembly
	err := r.db.WithContext(ctx).
		Scopes(TeamScope(ctx)).
		Preload("Components.Component").
		First(&assembly, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &assembly, err
}

func (r *assemblyRepository) Update(ctx context.Context, assembly *entity.Assembly) error {
	return r.db.WithContext(ctx).Save(assembly).Error
}

func (r *assemblyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.AssemblyComponent{}, "assembly_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Assembly{}, "id = ?", id).Error
	})
}

func (r *assemblyRepository) List(ctx context.Context, teamID uuid.UUID, params *pagination.PaginationParams) ([]entity.Assembly, int64, error) {
	var assemblies []entity.Assembly
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Assembly{})
	if teamID != uuid.Nil {
		query = query.Where("team_id = ?", teamID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Components.Component").
		Order("name ASC").
		Find(&assemblies).Error

	return assemblies, total, err
}

func (r *assemblyRepository) ReplaceComponents(ctx context.Context, assemblyID uuid.UUID, components []entity.AssemblyComponent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.AssemblyComponent{}, "assembly_id = ?", assemblyID).Error; err != nil {
			return err
		}
		if len(components) == 0 {
			return nil
		}
		for i := range components {
			components[i].AssemblyID = assemblyID
		}
		return tx.Create(&components).Error
	})
}
