package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/food-hub-app/backend/internal/middleware"
	"github.com/food-hub-app/backend/internal/models"
	"github.com/food-hub-app/backend/internal/service"
)

// requireProfile resolves the authenticated user's profile. Writes the
// error response and returns nil when it cannot.
func requireProfile(c *gin.Context, profiles *service.ProfileService) *models.Profile {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}

	profile, err := profiles.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return nil
	}
	return profile
}

// pathUUID parses a uuid path parameter, writing the error response on
// failure.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
