package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// TeamIDKey is the context key for team ID
	TeamIDKey ctxKey = "team_id"
	// SkipTeamScopeKey is the context key for skipping team scope (operators)
	SkipTeamScopeKey ctxKey = "skip_team_scope"
)

// TeamScope returns a GORM scope that filters by team.
// This should be applied to all queries for team-scoped entities.
// If SkipTeamScopeKey is true in context (operator), returns all records.
func TeamScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skipScope, ok := ctx.Value(SkipTeamScopeKey).(bool); ok && skipScope {
			return db
		}

		teamID, ok := ctx.Value(TeamIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if team context missing
			// This prevents accidental cross-team data access
			return db.Where("1 = 0")
		}
		return db.Where("team_id = ?", teamID)
	}
}

// WithSkipTeamScope adds skip team scope flag to context (for operators)
func WithSkipTeamScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipTeamScopeKey, skip)
}

// WithTeam adds team ID to context
func WithTeam(ctx context.Context, teamID uuid.UUID) context.Context {
	return context.WithValue(ctx, TeamIDKey, teamID)
}

// GetTeamID extracts team ID from context
func GetTeamID(ctx context.Context) (uuid.UUID, bool) {
	teamID, ok := ctx.Value(TeamIDKey).(uuid.UUID)
	return teamID, ok
}
