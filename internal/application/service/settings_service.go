package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
	"github.com/robomation/roboquote-api/internal/domain/repository"
	"github.com/robomation/roboquote-api/pkg/apperror"
)

// SettingsService handles per-team quotation defaults
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetTeamSettings returns the team's quotation defaults, materializing the
// built-in defaults if no row exists yet
func (s *SettingsService) GetTeamSettings(ctx context.Context, teamID uuid.UUID) (*entity.TeamSettings, error) {
	settings, err := s.settingsRepo.GetTeamSettings(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.TeamSettings{
			TeamID:             teamID,
			DefaultMarkupMode:  enum.MarkupModePercent,
			DefaultMarkupValue: 25,
			IncludeVAT:         true,
			DefaultVATRate:     17,
		}
	}
	return settings, nil
}

// TeamSettingsInput represents updatable team defaults
type TeamSettingsInput struct {
	DefaultMarkupMode  enum.MarkupMode
	DefaultMarkupValue float64
	LaborDayCostILS    float64
	DefaultRiskPercent float64
	IncludeVAT         bool
	DefaultVATRate     float64
	PaymentTerms       string
	DeliveryTerms      string
}

// UpdateTeamSettings validates and persists the team's quotation defaults
func (s *SettingsService) UpdateTeamSettings(ctx context.Context, teamID uuid.UUID, input *TeamSettingsInput) (*entity.TeamSettings, error) {
	if !input.DefaultMarkupMode.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid markup mode")
	}
	if input.DefaultVATRate < 0 || input.DefaultRiskPercent < 0 {
		return nil, apperror.NewBadRequestError("Rates cannot be negative")
	}

	settings, err := s.settingsRepo.GetTeamSettings(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.TeamSettings{TeamID: teamID}
	}

	settings.DefaultMarkupMode = input.DefaultMarkupMode
	settings.DefaultMarkupValue = input.DefaultMarkupValue
	settings.LaborDayCostILS = input.LaborDayCostILS
	settings.DefaultRiskPercent = input.DefaultRiskPercent
	settings.IncludeVAT = input.IncludeVAT
	settings.DefaultVATRate = input.DefaultVATRate
	settings.PaymentTerms = input.PaymentTerms
	settings.DeliveryTerms = input.DeliveryTerms

	if err := s.settingsRepo.SaveTeamSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
