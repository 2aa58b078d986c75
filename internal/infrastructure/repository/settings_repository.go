package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	domainRepo "github.com/robomation/roboquote-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetExchangeRates(ctx context.Context) (*entity.ExchangeRateSettings, error) {
	var settings entity.ExchangeRateSettings
	err := r.db.WithContext(ctx).First(&settings, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

func (r *settingsRepository) SaveExchangeRates(ctx context.Context, settings *entity.ExchangeRateSettings) error {
	settings.ID = 1
	return r.db.WithContext(ctx).Save(settings).Error
}

func (r *settingsRepository) GetTeamSettings(ctx context.Context, teamID uuid.UUID) (*entity.TeamSettings, error) {
	var settings entity.TeamSettings
	err := r.db.WithContext(ctx).First(&settings, "team_id = ?", teamID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

func (r *settingsRepository) SaveTeamSettings(ctx context.Context, settings *entity.TeamSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
