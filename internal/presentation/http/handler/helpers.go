package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetTeamID extracts the team ID from the Gin context
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

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// IsAdmin checks if the authenticated user has the admin role
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == entity.RoleAdmin
}
