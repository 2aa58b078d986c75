package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
)

func newComponentFixture() (*ComponentService, *fakeComponentRepo, *fakeSettingsRepo, *fakeActivityRepo, *fakeBulkRepo) {
	componentRepo := newFakeComponentRepo()
	settingsRepo := newFakeSettingsRepo()
	activityRepo := &fakeActivityRepo{}
	bulkRepo := newFakeBulkRepo()

	rates := NewRatesService(settingsRepo)
	bulk := NewBulkOperationService(bulkRepo, 15*time.Minute)
	activity := NewActivityService(activityRepo, bulkRepo)
	svc := NewComponentService(componentRepo, rates, bulk, activity)
	return svc, componentRepo, settingsRepo, activityRepo, bulkRepo
}

func TestCreateComponentNormalizesFromUSD(t *testing.T) {
	svc, _, settingsRepo, _, _ := newComponentFixture()
	settingsRepo.rates = &entity.ExchangeRateSettings{ID: 1, USDToILSRate: 3.70, EURToILSRate: 4.00}
	ctx := context.Background()

	component, err := svc.CreateComponent(ctx, uuid.New(), nil, &ComponentInput{
		Name:             "Servo drive",
		UnitCostUSD:      2500,
		OriginalCurrency: enum.CurrencyUSD,
	})
	if err != nil {
		t.Fatalf("CreateComponent failed: %v", err)
	}

	if component.OriginalCurrency != enum.CurrencyUSD {
		t.Errorf("expected original currency USD, got %s", component.OriginalCurrency)
	}
	if math.Abs(component.OriginalCost-2500) > 0.001 {
		t.Errorf("expected original cost 2500, got %v", component.OriginalCost)
	}
	if math.Abs(component.UnitCostILS-9250) > 0.001 {
		t.Errorf("expected ILS cost 9250, got %v", component.UnitCostILS)
	}
}

func TestApplyExchangeRatesKeepsOriginalAmount(t *testing.T) {
	svc, componentRepo, settingsRepo, _, _ := newComponentFixture()
	settingsRepo.rates = &entity.ExchangeRateSettings{ID: 1, USDToILSRate: 3.70, EURToILSRate: 4.00}
	ctx := context.Background()
	teamID := uuid.New()

	component, err := svc.CreateComponent(ctx, teamID, nil, &ComponentInput{
		Name:             "Servo drive",
		UnitCostUSD:      2500,
		OriginalCurrency: enum.CurrencyUSD,
	})
	if err != nil {
		t.Fatalf("CreateComponent failed: %v", err)
	}

	// Admin changes the USD rate, then runs the catalog-wide re-derivation
	settingsRepo.rates = &entity.ExchangeRateSettings{ID: 1, USDToILSRate: 4.00, EURToILSRate: 4.00}
	updated, err := svc.ApplyExchangeRates(ctx, teamID, nil)
	if err != nil {
		t.Fatalf("ApplyExchangeRates failed: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 component updated, got %d", updated)
	}

	after, _ := componentRepo.GetByID(ctx, component.ID)
	if math.Abs(after.UnitCostUSD-2500) > 0.001 {
		t.Errorf("USD amount must never drift from its original 2500, got %v", after.UnitCostUSD)
	}
	if math.Abs(after.UnitCostILS-10000) > 0.001 {
		t.Errorf("expected re-derived ILS cost 10000, got %v", after.UnitCostILS)
	}
	if math.Abs(after.OriginalCost-2500) > 0.001 {
		t.Errorf("original cost must be untouched, got %v", after.OriginalCost)
	}
}

func TestApplyExchangeRatesRepeatedIsStable(t *testing.T) {
	svc, componentRepo, settingsRepo, _, _ := newComponentFixture()
	settingsRepo.rates = &entity.ExchangeRateSettings{ID: 1, USDToILSRate: 3.70, EURToILSRate: 4.00}
	ctx := context.Background()
	teamID := uuid.New()

	component, err := svc.CreateComponent(ctx, teamID, nil, &ComponentInput{
		Name:             "Gripper",
		UnitCostEUR:      1234.56,
		OriginalCurrency: enum.CurrencyEUR,
	})
	if err != nil {
		t.Fatalf("CreateComponent failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.ApplyExchangeRates(ctx, teamID, nil); err != nil {
			t.Fatalf("pass %d failed: %v", i, err)
		}
	}

	after, _ := componentRepo.GetByID(ctx, component.ID)
	if math.Abs(after.UnitCostEUR-1234.56) > 0.001 {
		t.Errorf("EUR amount drifted to %v after repeated passes", after.UnitCostEUR)
	}
}

func TestBulkDeleteWritesSingleSummary(t *testing.T) {
	svc, componentRepo, settingsRepo, activityRepo, bulkRepo := newComponentFixture()
	settingsRepo.rates = &entity.ExchangeRateSettings{ID: 1, USDToILSRate: 3.70, EURToILSRate: 4.00}
	ctx := context.Background()
	teamID := uuid.New()

	var ids []uuid.UUID
	for i := 0; i < 26; i++ {
		component := &entity.Component{TeamID: teamID, Name: "bulk target"}
		if err := componentRepo.Create(ctx, component); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		ids = append(ids, component.ID)
	}

	before := len(activityRepo.entries)
	deleted, err := svc.BulkDelete(ctx, teamID, nil, ids)
	if err != nil {
		t.Fatalf("BulkDelete failed: %v", err)
	}
	if deleted != 26 {
		t.Errorf("expected 26 deleted, got %d", deleted)
	}

	newEntries := activityRepo.entries[before:]
	if len(newEntries) != 1 {
		t.Fatalf("expected exactly one audit entry, got %d", len(newEntries))
	}
	if !newEntries[0].IsBulkSummary {
		t.Error("expected the single entry to be a bulk summary")
	}

	// The marker must be gone so individual logging resumes
	if active, _ := bulkRepo.ActiveForTeam(ctx, teamID); active {
		t.Error("marker should be removed after the bulk delete ends")
	}
}

func TestIndividualLoggingSuppressedDuringBulk(t *testing.T) {
	_, _, _, activityRepo, bulkRepo := newComponentFixture()
	activity := NewActivityService(activityRepo, bulkRepo)
	ctx := context.Background()
	teamID := uuid.New()

	bulkRepo.Create(ctx, &entity.BulkOperationMarker{
		OperationID:   "op-running",
		TeamID:        teamID,
		OperationType: enum.BulkOperationDelete,
		ExpiresAt:     time.Now().Add(10 * time.Minute),
	})

	activity.Record(ctx, teamID, nil, "component", nil, "delete", "Component deleted")
	if len(activityRepo.entries) != 0 {
		t.Errorf("individual entry written during active bulk operation")
	}

	activity.WriteSummary(ctx, teamID, nil, "component", "bulk_delete", "26 components deleted")
	if len(activityRepo.entries) != 1 {
		t.Fatalf("expected the summary entry, got %d entries", len(activityRepo.entries))
	}
}
