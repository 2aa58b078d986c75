package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
)

// SettingsRepository defines access to the global exchange-rate row and the
// per-team quotation defaults
type SettingsRepository interface {
	GetExchangeRates(ctx context.Context) (*entity.ExchangeRateSettings, error)
	SaveExchangeRates(ctx context.Context, settings *entity.ExchangeRateSettings) error

	GetTeamSettings(ctx context.Context, teamID uuid.UUID) (*entity.TeamSettings, error)
	SaveTeamSettings(ctx context.Context, settings *entity.TeamSettings) error
}
