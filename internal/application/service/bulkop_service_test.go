package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
	"github.com/robomation/roboquote-api/pkg/apperror"
)

func TestBulkOperationStartConflictsOnDuplicate(t *testing.T) {
	repo := newFakeBulkRepo()
	svc := NewBulkOperationService(repo, 15*time.Minute)
	ctx := context.Background()
	teamID := uuid.New()

	if _, err := svc.Start(ctx, teamID, "op-1", enum.BulkOperationDelete); err != nil {
		t.Fatalf("first start failed: %v", err)
	}

	_, err := svc.Start(ctx, teamID, "op-1", enum.BulkOperationDelete)
	if err == nil {
		t.Fatal("expected conflict for duplicate active operation ID")
	}
	appErr := apperror.GetAppError(err)
	if appErr == nil || appErr.Code != 409 {
		t.Errorf("expected 409 conflict, got %v", err)
	}
}

// blindBulkRepo never sees existing markers on lookup, simulating a second
// writer inserting between the read and the create.
type blindBulkRepo struct {
	*fakeBulkRepo
}

func (r *blindBulkRepo) GetByOperationID(_ context.Context, _ string) (*entity.BulkOperationMarker, error) {
	return nil, nil
}

func TestBulkOperationStartDuplicateInsertIsConflict(t *testing.T) {
	repo := newFakeBulkRepo()
	svc := NewBulkOperationService(&blindBulkRepo{repo}, 15*time.Minute)
	ctx := context.Background()
	teamID := uuid.New()

	if _, err := svc.Start(ctx, teamID, "op-race", enum.BulkOperationDelete); err != nil {
		t.Fatalf("first start failed: %v", err)
	}

	_, err := svc.Start(ctx, teamID, "op-race", enum.BulkOperationDelete)
	if err == nil {
		t.Fatal("expected conflict when the insert loses the race")
	}
	appErr := apperror.GetAppError(err)
	if appErr == nil || appErr.Code != 409 {
		t.Errorf("expected 409 conflict, got %v", err)
	}
}

func TestBulkOperationStartAfterEndSucceeds(t *testing.T) {
	repo := newFakeBulkRepo()
	svc := NewBulkOperationService(repo, 15*time.Minute)
	ctx := context.Background()
	teamID := uuid.New()

	if _, err := svc.Start(ctx, teamID, "op-1", enum.BulkOperationDelete); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	svc.End(ctx, "op-1")

	if _, err := svc.Start(ctx, teamID, "op-1", enum.BulkOperationDelete); err != nil {
		t.Fatalf("restart after end failed: %v", err)
	}
}

func TestBulkOperationExpiredMarkerIsReclaimed(t *testing.T) {
	repo := newFakeBulkRepo()
	svc := NewBulkOperationService(repo, 15*time.Minute)
	ctx := context.Background()
	teamID := uuid.New()

	marker, err := svc.Start(ctx, teamID, "op-stale", enum.BulkOperationImport)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	// Simulate the caller crashing and the marker going stale
	repo.markers[marker.OperationID].ExpiresAt = time.Now().Add(-time.Minute)

	if active, _ := svc.IsActive(ctx, teamID); active {
		t.Error("expired marker should not count as active")
	}

	if _, err := svc.Start(ctx, teamID, "op-stale", enum.BulkOperationImport); err != nil {
		t.Fatalf("expected expired marker to be reclaimed, got %v", err)
	}
}

func TestBulkOperationIsActivePerTeam(t *testing.T) {
	repo := newFakeBulkRepo()
	svc := NewBulkOperationService(repo, 15*time.Minute)
	ctx := context.Background()
	teamA := uuid.New()
	teamB := uuid.New()

	if _, err := svc.Start(ctx, teamA, "op-a", enum.BulkOperationDelete); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if active, _ := svc.IsActive(ctx, teamA); !active {
		t.Error("team A should have an active marker")
	}
	if active, _ := svc.IsActive(ctx, teamB); active {
		t.Error("team B should not be affected by team A's marker")
	}
}

func TestBulkOperationPurgeExpired(t *testing.T) {
	repo := newFakeBulkRepo()
	svc := NewBulkOperationService(repo, 15*time.Minute)
	ctx := context.Background()
	teamID := uuid.New()

	fresh, _ := svc.Start(ctx, teamID, "op-fresh", enum.BulkOperationDelete)
	stale, _ := svc.Start(ctx, teamID, "op-stale", enum.BulkOperationDelete)
	repo.markers[stale.OperationID].ExpiresAt = time.Now().Add(-time.Minute)

	purged, err := svc.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if purged != 1 {
		t.Errorf("expected 1 purged marker, got %d", purged)
	}
	if _, ok := repo.markers[fresh.OperationID]; !ok {
		t.Error("fresh marker should survive the purge")
	}
}

func TestBulkOperationStartRequiresID(t *testing.T) {
	svc := NewBulkOperationService(newFakeBulkRepo(), 15*time.Minute)
	if _, err := svc.Start(context.Background(), uuid.New(), "", enum.BulkOperationDelete); err == nil {
		t.Fatal("expected error for empty operation ID")
	}
}
