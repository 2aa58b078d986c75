package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/repository"
)

// ActivityService writes audit log entries. Individual entries are suppressed
// while a bulk operation marker is active for the team; bulk callers write a
// single summary entry through WriteSummary instead.
type ActivityService struct {
	activityRepo repository.ActivityLogRepository
	bulkRepo     repository.BulkOperationRepository
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo repository.ActivityLogRepository, bulkRepo repository.BulkOperationRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo, bulkRepo: bulkRepo}
}

// Record writes an individual audit entry unless a bulk operation is active
// for the team. Audit write failures are logged, never surfaced: auditing
// must not fail the mutation it describes.
func (s *ActivityService) Record(ctx context.Context, teamID uuid.UUID, userID *uuid.UUID, entityType string, entityID *uuid.UUID, action, summary string) {
	active, err := s.bulkRepo.ActiveForTeam(ctx, teamID)
	if err != nil {
		log.Printf("activity log: active marker check failed: %v", err)
		return
	}
	if active {
		return
	}

	entry := &entity.ActivityLog{
		TeamID:     teamID,
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Summary:    summary,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		log.Printf("activity log: write failed: %v", err)
	}
}

// WriteSummary writes the single summary entry for a completed bulk
// operation, e.g. "26 components deleted"
func (s *ActivityService) WriteSummary(ctx context.Context, teamID uuid.UUID, userID *uuid.UUID, entityType, action, summary string) {
	entry := &entity.ActivityLog{
		TeamID:        teamID,
		UserID:        userID,
		EntityType:    entityType,
		Action:        action,
		Summary:       summary,
		IsBulkSummary: true,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		log.Printf("activity log: summary write failed: %v", err)
	}
}

// ListRecent returns the latest audit entries for a team
func (s *ActivityService) ListRecent(ctx context.Context, teamID uuid.UUID, limit int) ([]entity.ActivityLog, error) {
	return s.activityRepo.ListByTeam(ctx, teamID, limit)
}
