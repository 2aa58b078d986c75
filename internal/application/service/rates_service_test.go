package service

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/application/pricing"
	"github.com/robomation/roboquote-api/internal/domain/entity"
)

func TestRatesFallBackToDefaultsWhenUnset(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewRatesService(repo)

	rates, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if rates != pricing.DefaultRates {
		t.Errorf("expected default rates %+v, got %+v", pricing.DefaultRates, rates)
	}
}

func TestRatesAreCachedAcrossReads(t *testing.T) {
	repo := newFakeSettingsRepo()
	repo.rates = &entity.ExchangeRateSettings{ID: 1, USDToILSRate: 3.65, EURToILSRate: 3.95}
	svc := NewRatesService(repo)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rates, err := svc.Current(ctx)
		if err != nil {
			t.Fatalf("Current failed: %v", err)
		}
		if math.Abs(rates.USDToILS-3.65) > 0.0001 {
			t.Fatalf("unexpected USD rate %v", rates.USDToILS)
		}
	}
	if repo.readCount != 1 {
		t.Errorf("expected one durable read, got %d", repo.readCount)
	}
}

func TestUpdateRatesRefreshesSnapshot(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewRatesService(repo)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.Current(ctx); err != nil {
		t.Fatalf("Current failed: %v", err)
	}

	if _, err := svc.UpdateRates(ctx, 3.80, 4.10, userID); err != nil {
		t.Fatalf("UpdateRates failed: %v", err)
	}

	rates, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if math.Abs(rates.USDToILS-3.80) > 0.0001 || math.Abs(rates.EURToILS-4.10) > 0.0001 {
		t.Errorf("snapshot not refreshed, got %+v", rates)
	}
}

func TestUpdateRatesRejectsInvalid(t *testing.T) {
	svc := NewRatesService(newFakeSettingsRepo())
	tests := []struct {
		name     string
		usd, eur float64
	}{
		{"zero usd", 0, 4.0},
		{"negative eur", 3.7, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.UpdateRates(context.Background(), tt.usd, tt.eur, uuid.New()); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
