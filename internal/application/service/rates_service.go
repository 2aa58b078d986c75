package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/application/pricing"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/repository"
	"github.com/robomation/roboquote-api/pkg/apperror"
)

// RatesService owns the process-wide exchange rate snapshot. The durable row
// is read once and cached; every caller sees the same snapshot until an admin
// saves new rates, which refreshes the cache in the same call.
type RatesService struct {
	settingsRepo repository.SettingsRepository

	mu     sync.RWMutex
	cached *pricing.ExchangeRates
}

// NewRatesService creates a new rates service
func NewRatesService(settingsRepo repository.SettingsRepository) *RatesService {
	return &RatesService{settingsRepo: settingsRepo}
}

// Current returns the cached exchange rate snapshot, loading it from the
// database on first use. Falls back to the built-in defaults when no row
// exists yet.
func (s *RatesService) Current(ctx context.Context) (pricing.ExchangeRates, error) {
	s.mu.RLock()
	if s.cached != nil {
		rates := *s.cached
		s.mu.RUnlock()
		return rates, nil
	}
	s.mu.RUnlock()

	return s.Refresh(ctx)
}

// Refresh re-reads the durable row and replaces the cached snapshot
func (s *RatesService) Refresh(ctx context.Context) (pricing.ExchangeRates, error) {
	settings, err := s.settingsRepo.GetExchangeRates(ctx)
	if err != nil {
		return pricing.ExchangeRates{}, err
	}

	rates := pricing.DefaultRates
	if settings != nil {
		rates = pricing.ExchangeRates{
			USDToILS: settings.USDToILSRate,
			EURToILS: settings.EURToILSRate,
		}
	}

	s.mu.Lock()
	s.cached = &rates
	s.mu.Unlock()
	return rates, nil
}

// UpdateRates validates and persists new exchange rates, then refreshes the
// cached snapshot so subsequent pricing passes use them immediately
func (s *RatesService) UpdateRates(ctx context.Context, usdToILS, eurToILS float64, updatedBy uuid.UUID) (*entity.ExchangeRateSettings, error) {
	rates := pricing.ExchangeRates{USDToILS: usdToILS, EURToILS: eurToILS}
	if fieldErrors := pricing.ValidateExchangeRates(rates); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	settings := &entity.ExchangeRateSettings{
		USDToILSRate: usdToILS,
		EURToILSRate: eurToILS,
		UpdatedBy:    &updatedBy,
		UpdatedAt:    time.Now(),
	}
	if err := s.settingsRepo.SaveExchangeRates(ctx, settings); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = &rates
	s.mu.Unlock()
	return settings, nil
}
