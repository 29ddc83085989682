package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/food-hub-app/backend/internal/middleware"
	"github.com/food-hub-app/backend/internal/models"
	"github.com/food-hub-app/backend/internal/service"
	"github.com/food-hub-app/backend/internal/types"
)

type MealHandler struct {
	mealService        *service.MealService
	intakeService      *service.IntakeService
	currentMealService *service.CurrentMealService
	nutrientService    *service.NutrientService
	profileService     *service.ProfileService
	authService        *service.AuthService
	rateLimiter        *middleware.RateLimiter
}

func NewMealHandler(mealService *service.MealService, intakeService *service.IntakeService, currentMealService *service.CurrentMealService, nutrientService *service.NutrientService, profileService *service.ProfileService, authService *service.AuthService, rateLimiter *middleware.RateLimiter) *MealHandler {
	return &MealHandler{
		mealService:        mealService,
		intakeService:      intakeService,
		currentMealService: currentMealService,
		nutrientService:    nutrientService,
		profileService:     profileService,
		authService:        authService,
		rateLimiter:        rateLimiter,
	}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	meals.Use(middleware.AuthMiddleware(h.authService))
	if h.rateLimiter != nil {
		meals.Use(h.rateLimiter.RateLimitMiddleware())
	}
	{
		meals.GET("", h.List)
		meals.POST("", h.GetOrCreate)

		if h.currentMealService != nil {
			meals.GET("/current", h.GetCurrent)
			meals.PUT("/current", h.SetCurrent)
			meals.DELETE("/current", h.ClearCurrent)
		}

		meals.GET("/:id", h.Get)
		meals.GET("/:id/intakes", h.Intakes)

		meals.POST("/:id/ingredients", h.AddIngredient)
		meals.PUT("/:id/ingredients/:itemID", h.UpdateIngredient)
		meals.DELETE("/:id/ingredients/:itemID", h.RemoveIngredient)

		meals.POST("/:id/recipes", h.AddRecipe)
		meals.PUT("/:id/recipes/:itemID", h.UpdateRecipe)
		meals.DELETE("/:id/recipes/:itemID", h.RemoveRecipe)
	}
}

func (h *MealHandler) List(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		to = parsed
	}

	meals, err := h.mealService.List(profile.ID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
		return
	}
	c.JSON(http.StatusOK, meals)
}

// GetOrCreate returns the meal for the requested date, creating it on
// first use. Defaults to today.
func (h *MealHandler) GetOrCreate(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	var req struct {
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	meal, err := h.mealService.GetOrCreate(profile.ID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open meal"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) Get(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	meal, err := h.mealService.Get(profile.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

// Intakes returns the nutrient amounts consumed in the meal, arranged
// into the dashboard display groups.
func (h *MealHandler) Intakes(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	id, ok := h.mealID(c, profile.ID)
	if !ok {
		return
	}

	meal, err := h.mealService.Get(profile.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal"})
		return
	}

	intakes := service.MealIntakes(meal)

	groups, err := h.nutrientService.ListGrouped()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load nutrients"})
		return
	}

	ret := make([]gin.H, 0, len(groups))
	for _, group := range groups {
		nutrients := make([]gin.H, 0, len(group.Nutrients))
		for i := range group.Nutrients {
			nutrient := &group.Nutrients[i]
			amount, consumed := intakes[nutrient.ID]
			if !consumed {
				continue
			}
			nutrients = append(nutrients, gin.H{"nutrient": nutrient, "amount": amount})
		}
		if len(nutrients) == 0 {
			continue
		}
		ret = append(ret, gin.H{"type": group.Type, "nutrients": nutrients})
	}
	c.JSON(http.StatusOK, ret)
}

// mealID resolves the meal the request targets: the :id path parameter,
// or the current-meal selection when the parameter is "current".
func (h *MealHandler) mealID(c *gin.Context, profileID uuid.UUID) (uuid.UUID, bool) {
	raw := c.Param("id")
	if raw == "current" {
		if h.currentMealService == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal selection is not available"})
			return uuid.Nil, false
		}
		id, err := h.currentMealService.Get(c.Request.Context(), profileID)
		if err != nil {
			if errors.Is(err, service.ErrNoCurrentMeal) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return uuid.Nil, false
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal selection"})
			return uuid.Nil, false
		}
		return id, true
	}
	return pathUUID(c, "id")
}

func (h *MealHandler) AddIngredient(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	mealID, ok := h.mealID(c, profile.ID)
	if !ok {
		return
	}

	var req types.MealItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ingredientID, err := uuid.Parse(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	line, err := h.mealService.AddIngredient(profile.ID, mealID, ingredientID, req.Amount)
	if err != nil {
		h.writeItemError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (h *MealHandler) UpdateIngredient(c *gin.Context) {
	h.updateItem(c, h.mealService.UpdateIngredient)
}

func (h *MealHandler) RemoveIngredient(c *gin.Context) {
	h.removeItem(c, h.mealService.RemoveIngredient)
}

func (h *MealHandler) AddRecipe(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	mealID, ok := h.mealID(c, profile.ID)
	if !ok {
		return
	}

	var req types.MealItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recipeID, err := uuid.Parse(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	line, err := h.mealService.AddRecipe(profile.ID, mealID, recipeID, req.Amount)
	if err != nil {
		h.writeItemError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (h *MealHandler) UpdateRecipe(c *gin.Context) {
	h.updateItem(c, h.mealService.UpdateRecipe)
}

func (h *MealHandler) RemoveRecipe(c *gin.Context) {
	h.removeItem(c, h.mealService.RemoveRecipe)
}

func (h *MealHandler) updateItem(c *gin.Context, update func(ownerID, mealID, lineID uuid.UUID, amount float64) error) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	mealID, ok := h.mealID(c, profile.ID)
	if !ok {
		return
	}
	lineID, ok := pathUUID(c, "itemID")
	if !ok {
		return
	}

	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := update(profile.ID, mealID, lineID, req.Amount); err != nil {
		h.writeItemError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MealHandler) removeItem(c *gin.Context, remove func(ownerID, mealID, lineID uuid.UUID) error) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	mealID, ok := h.mealID(c, profile.ID)
	if !ok {
		return
	}
	lineID, ok := pathUUID(c, "itemID")
	if !ok {
		return
	}

	if err := remove(profile.ID, mealID, lineID); err != nil {
		h.writeItemError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MealHandler) writeItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMealNotFound),
		errors.Is(err, service.ErrMealItemNotFound),
		errors.Is(err, service.ErrIngredientNotFound),
		errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrOwnerMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update meal"})
	}
}

// GetCurrent returns the currently selected meal and refreshes the
// selection's expiry.
func (h *MealHandler) GetCurrent(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	mealID, err := h.currentMealService.Get(c.Request.Context(), profile.ID)
	if err != nil {
		if errors.Is(err, service.ErrNoCurrentMeal) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal selection"})
		return
	}

	meal, err := h.mealService.Get(profile.ID, mealID)
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			// The selected meal is gone; drop the stale selection.
			_ = h.currentMealService.Clear(c.Request.Context(), profile.ID)
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) SetCurrent(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	var req types.CurrentMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mealID, err := uuid.Parse(req.MealID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := h.mealService.Get(profile.ID, mealID)
	if err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal"})
		return
	}

	if err := h.currentMealService.Set(c.Request.Context(), profile.ID, meal.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to select meal"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) ClearCurrent(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	if err := h.currentMealService.Clear(c.Request.Context(), profile.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear meal selection"})
		return
	}
	c.Status(http.StatusNoContent)
}
