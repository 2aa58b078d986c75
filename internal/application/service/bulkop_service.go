package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/enum"
	"github.com/robomation/roboquote-api/internal/domain/repository"
	"github.com/robomation/roboquote-api/pkg/apperror"
	"gorm.io/gorm"
)

// BulkOperationService manages the durable bulk-operation markers that
// suppress per-row audit logging while a multi-row mutation runs. Markers
// carry a staleness bound so a caller crash between start and end cannot
// suppress logging indefinitely.
type BulkOperationService struct {
	bulkRepo repository.BulkOperationRepository
	ttl      time.Duration
}

// NewBulkOperationService creates a new bulk operation service. ttl bounds
// how long an unfinished marker stays effective.
func NewBulkOperationService(bulkRepo repository.BulkOperationRepository, ttl time.Duration) *BulkOperationService {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &BulkOperationService{bulkRepo: bulkRepo, ttl: ttl}
}

// Start registers a marker for the operation. A second start with the same
// operation ID while the first is still active is a conflict; an expired
// marker with the same ID is reclaimed.
func (s *BulkOperationService) Start(ctx context.Context, teamID uuid.UUID, operationID string, opType enum.BulkOperationType) (*entity.BulkOperationMarker, error) {
	if operationID == "" {
		return nil, apperror.NewBadRequestError("Operation ID is required")
	}

	existing, err := s.bulkRepo.GetByOperationID(ctx, operationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.IsExpired() {
			return nil, apperror.NewConflictError(fmt.Sprintf("Bulk operation %s is already in progress", operationID))
		}
		// Reclaim the orphaned marker
		if err := s.bulkRepo.DeleteByOperationID(ctx, operationID); err != nil {
			return nil, err
		}
	}

	marker := &entity.BulkOperationMarker{
		OperationID:   operationID,
		TeamID:        teamID,
		OperationType: opType,
		ExpiresAt:     time.Now().Add(s.ttl),
	}
	if err := s.bulkRepo.Create(ctx, marker); err != nil {
		// Two concurrent starts can both miss the lookup; the unique index
		// on operation_id decides the loser, which is still a conflict
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.NewConflictError(fmt.Sprintf("Bulk operation %s is already in progress", operationID))
		}
		return nil, err
	}
	return marker, nil
}

// End removes the marker. Failure to remove is logged but not returned: the
// bulk mutation itself already succeeded, and the staleness bound will
// reclaim the marker anyway.
func (s *BulkOperationService) End(ctx context.Context, operationID string) {
	if err := s.bulkRepo.DeleteByOperationID(ctx, operationID); err != nil {
		log.Printf("bulk operation %s: failed to remove marker: %v", operationID, err)
	}
}

// IsActive reports whether any non-expired marker exists for the team
func (s *BulkOperationService) IsActive(ctx context.Context, teamID uuid.UUID) (bool, error) {
	return s.bulkRepo.ActiveForTeam(ctx, teamID)
}

// PurgeExpired removes all markers past their staleness bound. Exposed as an
// operator maintenance action.
func (s *BulkOperationService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.bulkRepo.DeleteExpired(ctx)
}
