package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	domainRepo "github.com/robomation/roboquote-api/internal/domain/repository"
	"gorm.io/gorm"
)

type bulkOperationRepository struct {
	db *gorm.DB
}

// NewBulkOperationRepository creates a new bulk operation marker repository
func NewBulkOperationRepository(db *gorm.DB) domainRepo.BulkOperationRepository {
	return &bulkOperationRepository{db: db}
}

func (r *bulkOperationRepository) Create(ctx context.Context, marker *entity.BulkOperationMarker) error {
	return r.db.WithContext(ctx).Create(marker).Error
}

func (r *bulkOperationRepository) GetByOperationID(ctx context.Context, operationID string) (*entity.BulkOperationMarker, error) {
	var marker entity.BulkOperationMarker
	err := r.db.WithContext(ctx).First(&marker, "operation_id = ?", operationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &marker, err
}

func (r *bulkOperationRepository) DeleteByOperationID(ctx context.Context, operationID string) error {
	return r.db.WithContext(ctx).
		Delete(&entity.BulkOperationMarker{}, "operation_id = ?", operationID).Error
}

func (r *bulkOperationRepository) ActiveForTeam(ctx context.Context, teamID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.BulkOperationMarker{}).
		Where("team_id = ? AND expires_at > ?", teamID, time.Now()).
		Count(&count).Error
	return count > 0, err
}

func (r *bulkOperationRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&entity.BulkOperationMarker{})
	return result.RowsAffected, result.Error
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *gorm.DB) domainRepo.ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, log *entity.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *activityLogRepository) ListByTeam(ctx context.Context, teamID uuid.UUID, limit int) ([]entity.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []entity.ActivityLog
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
