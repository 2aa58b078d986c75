package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/repository"
	infraRepo "github.com/robomation/roboquote-api/internal/infrastructure/repository"
	"github.com/robomation/roboquote-api/internal/presentation/http/dto/response"
)

// TeamMiddleware validates the authenticated user's team and propagates it
// into the request context so repository scopes can filter by it. Must run
// after AuthMiddleware.
func TeamMiddleware(teamRepo repository.TeamRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamIDVal, exists := c.Get("team_id")
		if !exists {
			response.Unauthorized(c, "Team context required")
			c.Abort()
			return
		}

		teamID, ok := teamIDVal.(uuid.UUID)
		if !ok || teamID == uuid.Nil {
			response.Unauthorized(c, "Invalid team context")
			c.Abort()
			return
		}

		team, err := teamRepo.GetByID(c.Request.Context(), teamID)
		if err != nil || team == nil {
			response.Forbidden(c, "Team not found")
			c.Abort()
			return
		}

		c.Set("team", team)

		// Propagate into the request context for repository scopes
		ctx := infraRepo.WithTeam(c.Request.Context(), teamID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetTeamID retrieves the team ID from gin context
func GetTeamID(c *gin.Context) uuid.UUID {
	teamIDVal, exists := c.Get("team_id")
	if !exists {
		return uuid.Nil
	}
	teamID, ok := teamIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return teamID
}
