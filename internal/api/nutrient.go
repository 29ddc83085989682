package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/food-hub-app/backend/internal/middleware"
	"github.com/food-hub-app/backend/internal/service"
	"github.com/food-hub-app/backend/internal/types"
)

type NutrientHandler struct {
	nutrientService *service.NutrientService
	intakeService   *service.IntakeService
	profileService  *service.ProfileService
	authService     *service.AuthService
}

func NewNutrientHandler(nutrientService *service.NutrientService, intakeService *service.IntakeService, profileService *service.ProfileService, authService *service.AuthService) *NutrientHandler {
	return &NutrientHandler{
		nutrientService: nutrientService,
		intakeService:   intakeService,
		profileService:  profileService,
		authService:     authService,
	}
}

func (h *NutrientHandler) RegisterRoutes(router *gin.RouterGroup) {
	nutrients := router.Group("/nutrients")
	nutrients.Use(middleware.AuthMiddleware(h.authService))
	{
		nutrients.GET("", h.List)
		nutrients.GET("/grouped", h.ListGrouped)
		nutrients.GET("/:id", h.Get)
		nutrients.PUT("/:id/unit", h.UpdateUnit)
		nutrients.GET("/:id/last-month-intakes", h.LastMonthIntakes)
	}
}

func (h *NutrientHandler) List(c *gin.Context) {
	nutrients, err := h.nutrientService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list nutrients"})
		return
	}
	c.JSON(http.StatusOK, nutrients)
}

func (h *NutrientHandler) ListGrouped(c *gin.Context) {
	groups, err := h.nutrientService.ListGrouped()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list nutrients"})
		return
	}
	c.JSON(http.StatusOK, groups)
}

// Get returns a nutrient with the recommendations matching the
// requesting profile, amounts adjusted for its demographics.
func (h *NutrientHandler) Get(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	nutrient, err := h.nutrientService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNutrientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load nutrient"})
		return
	}

	recommendations := make([]gin.H, 0)
	for i := range nutrient.Recommendations {
		rec := &nutrient.Recommendations[i]
		if !rec.Matches(profile) {
			continue
		}
		rec.Nutrient = *nutrient
		recommendations = append(recommendations, gin.H{
			"dri_type":   rec.DRIType,
			"amount":     rec.DisplayedAmount(profile),
			"amount_max": rec.ProfileAmountMax(profile),
		})
	}
	nutrient.Recommendations = nil

	c.JSON(http.StatusOK, gin.H{
		"nutrient":        nutrient,
		"recommendations": recommendations,
	})
}

// UpdateUnit changes the unit a nutrient is measured in, rescaling the
// stored ingredient amounts and recommendation bounds.
func (h *NutrientHandler) UpdateUnit(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.NutrientUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.nutrientService.UpdateUnit(id, req.Unit); err != nil {
		if errors.Is(err, service.ErrNutrientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		// Anything else is an impossible conversion.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nutrient, err := h.nutrientService.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load nutrient"})
		return
	}
	c.JSON(http.StatusOK, nutrient)
}

// LastMonthIntakes charts the daily intake of one nutrient over the
// last month.
func (h *NutrientHandler) LastMonthIntakes(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if _, err := h.nutrientService.Get(id); err != nil {
		if errors.Is(err, service.ErrNutrientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load nutrient"})
		return
	}

	now := time.Now()
	points, err := h.intakeService.NutrientIntakesLastMonth(profile.ID, id, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load intakes"})
		return
	}

	averages, _, err := h.intakeService.AverageIntakes(profile.ID, now.AddDate(0, -1, 0), now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load intakes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"points":  points,
		"average": averages[id],
	})
}
