package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes. Only the methods the tests drive are
// meaningfully implemented.

type fakeBulkRepo struct {
	markers map[string]*entity.BulkOperationMarker
}

func newFakeBulkRepo() *fakeBulkRepo {
	return &fakeBulkRepo{markers: make(map[string]*entity.BulkOperationMarker)}
}

func (f *fakeBulkRepo) Create(_ context.Context, marker *entity.BulkOperationMarker) error {
	if _, exists := f.markers[marker.OperationID]; exists {
		// operation_id carries a unique index
		return gorm.ErrDuplicatedKey
	}
	if marker.ID == uuid.Nil {
		marker.ID = uuid.New()
	}
	cp := *marker
	f.markers[marker.OperationID] = &cp
	return nil
}

func (f *fakeBulkRepo) GetByOperationID(_ context.Context, operationID string) (*entity.BulkOperationMarker, error) {
	marker, ok := f.markers[operationID]
	if !ok {
		return nil, nil
	}
	cp := *marker
	return &cp, nil
}

func (f *fakeBulkRepo) DeleteByOperationID(_ context.Context, operationID string) error {
	delete(f.markers, operationID)
	return nil
}

func (f *fakeBulkRepo) ActiveForTeam(_ context.Context, teamID uuid.UUID) (bool, error) {
	for _, marker := range f.markers {
		if marker.TeamID == teamID && !marker.IsExpired() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBulkRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	for id, marker := range f.markers {
		if marker.IsExpired() {
			delete(f.markers, id)
			n++
		}
	}
	return n, nil
}

type fakeSettingsRepo struct {
	rates        *entity.ExchangeRateSettings
	teamSettings map[uuid.UUID]*entity.TeamSettings
	readCount    int
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{teamSettings: make(map[uuid.UUID]*entity.TeamSettings)}
}

func (f *fakeSettingsRepo) GetExchangeRates(_ context.Context) (*entity.ExchangeRateSettings, error) {
	f.readCount++
	if f.rates == nil {
		return nil, nil
	}
	cp := *f.rates
	return &cp, nil
}

func (f *fakeSettingsRepo) SaveExchangeRates(_ context.Context, settings *entity.ExchangeRateSettings) error {
	settings.ID = 1
	settings.UpdatedAt = time.Now()
	cp := *settings
	f.rates = &cp
	return nil
}

func (f *fakeSettingsRepo) GetTeamSettings(_ context.Context, teamID uuid.UUID) (*entity.TeamSettings, error) {
	settings, ok := f.teamSettings[teamID]
	if !ok {
		return nil, nil
	}
	cp := *settings
	return &cp, nil
}

func (f *fakeSettingsRepo) SaveTeamSettings(_ context.Context, settings *entity.TeamSettings) error {
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}
	cp := *settings
	f.teamSettings[settings.TeamID] = &cp
	return nil
}

type fakeComponentRepo struct {
	components map[uuid.UUID]*entity.Component
}

func newFakeComponentRepo() *fakeComponentRepo {
	return &fakeComponentRepo{components: make(map[uuid.UUID]*entity.Component)}
}

func (f *fakeComponentRepo) Create(_ context.Context, component *entity.Component) error {
	if component.ID == uuid.Nil {
		component.ID = uuid.New()
	}
	cp := *component
	f.components[component.ID] = &cp
	return nil
}

func (f *fakeComponentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Component, error) {
	component, ok := f.components[id]
	if !ok {
		return nil, nil
	}
	cp := *component
	return &cp, nil
}

func (f *fakeComponentRepo) Update(_ context.Context, component *entity.Component) error {
	cp := *component
	f.components[component.ID] = &cp
	return nil
}

func (f *fakeComponentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.components, id)
	return nil
}

func (f *fakeComponentRepo) List(_ context.Context, teamID uuid.UUID, _ *repository.ComponentFilterParams) ([]entity.Component, int64, error) {
	all, _ := f.ListAll(context.Background(), teamID)
	return all, int64(len(all)), nil
}

func (f *fakeComponentRepo) ListAll(_ context.Context, teamID uuid.UUID) ([]entity.Component, error) {
	var out []entity.Component
	for _, component := range f.components {
		if component.TeamID == teamID {
			out = append(out, *component)
		}
	}
	return out, nil
}

func (f *fakeComponentRepo) UpdateBatch(_ context.Context, components []entity.Component) error {
	for i := range components {
		cp := components[i]
		f.components[cp.ID] = &cp
	}
	return nil
}

func (f *fakeComponentRepo) DeleteBatch(_ context.Context, teamID uuid.UUID, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if component, ok := f.components[id]; ok && component.TeamID == teamID {
			delete(f.components, id)
			n++
		}
	}
	return n, nil
}

type fakeActivityRepo struct {
	entries []entity.ActivityLog
}

func (f *fakeActivityRepo) Create(_ context.Context, log *entity.ActivityLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	log.CreatedAt = time.Now()
	f.entries = append(f.entries, *log)
	return nil
}

func (f *fakeActivityRepo) ListByTeam(_ context.Context, teamID uuid.UUID, limit int) ([]entity.ActivityLog, error) {
	var out []entity.ActivityLog
	for _, entry := range f.entries {
		if entry.TeamID == teamID {
			out = append(out, entry)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
