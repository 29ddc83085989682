package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/food-hub-app/backend/internal/middleware"
	"github.com/food-hub-app/backend/internal/service"
	"github.com/food-hub-app/backend/internal/types"
	"github.com/food-hub-app/backend/internal/units"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	authService    *service.AuthService
}

func NewProfileHandler(profileService *service.ProfileService, authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.authService))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)

		profile.GET("/weight-measurements", h.ListWeightMeasurements)
		profile.POST("/weight-measurements", h.AddWeightMeasurement)
		profile.DELETE("/weight-measurements/:id", h.DeleteWeightMeasurement)
		profile.GET("/weight-measurements/last-month", h.LastMonthWeights)

		profile.GET("/tracked-nutrients", h.GetTrackedNutrients)
		profile.PUT("/tracked-nutrients", h.SetTrackedNutrients)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileService.Update(userID, req.Age, req.Height, req.Weight, req.ActivityLevel, req.Sex)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidActivity), errors.Is(err, service.ErrInvalidSex):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) ListWeightMeasurements(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	measurements, err := h.profileService.ListWeightMeasurements(profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list measurements"})
		return
	}
	c.JSON(http.StatusOK, measurements)
}

func (h *ProfileHandler) AddWeightMeasurement(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	var req types.WeightMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	weight := req.Weight
	switch req.Unit {
	case "", "kg":
	case "lbs":
		weight = units.PoundsToKilograms(weight)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit, expected kg or lbs"})
		return
	}

	measurement, err := h.profileService.AddWeightMeasurement(profile.ID, date, weight)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record measurement"})
		return
	}
	c.JSON(http.StatusCreated, measurement)
}

func (h *ProfileHandler) DeleteWeightMeasurement(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.DeleteWeightMeasurement(profile.ID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "measurement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete measurement"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) LastMonthWeights(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	points, err := h.profileService.LastMonthWeights(profile.ID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load weights"})
		return
	}
	c.JSON(http.StatusOK, points)
}

func (h *ProfileHandler) GetTrackedNutrients(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	nutrients, err := h.profileService.TrackedNutrients(profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tracked nutrients"})
		return
	}
	c.JSON(http.StatusOK, nutrients)
}

func (h *ProfileHandler) SetTrackedNutrients(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	var req types.TrackedNutrientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ids := make([]uuid.UUID, 0, len(req.NutrientIDs))
	for _, raw := range req.NutrientIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nutrient id"})
			return
		}
		ids = append(ids, id)
	}

	if err := h.profileService.SetTrackedNutrients(profile.ID, ids); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "nutrient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update tracked nutrients"})
		return
	}

	nutrients, err := h.profileService.TrackedNutrients(profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tracked nutrients"})
		return
	}
	c.JSON(http.StatusOK, nutrients)
}
