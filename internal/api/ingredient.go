package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/food-hub-app/backend/internal/middleware"
	"github.com/food-hub-app/backend/internal/models"
	"github.com/food-hub-app/backend/internal/service"
	"github.com/food-hub-app/backend/internal/types"
)

type IngredientHandler struct {
	ingredientService *service.IngredientService
	authService       *service.AuthService
}

func NewIngredientHandler(ingredientService *service.IngredientService, authService *service.AuthService) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
		authService:       authService,
	}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	ingredients.Use(middleware.AuthMiddleware(h.authService))
	{
		ingredients.GET("", h.Search)
		ingredients.POST("", h.Create)
		ingredients.GET("/:id", h.Get)
		ingredients.PUT("/:id", h.Update)
	}
}

func (h *IngredientHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	ingredients, err := h.ingredientService.Search(query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search ingredients"})
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *IngredientHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	ingredient, err := h.ingredientService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrIngredientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ingredient"})
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) Create(c *gin.Context) {
	var req types.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines, ok := ingredientNutrients(c, req.Nutrients)
	if !ok {
		return
	}

	ingredient := models.Ingredient{Name: req.Name, Nutrients: lines}
	if err := h.ingredientService.Create(&ingredient); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ingredient"})
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

// Update replaces the ingredient's name and nutrient amounts.
func (h *IngredientHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines, ok := ingredientNutrients(c, req.Nutrients)
	if !ok {
		return
	}

	ingredient, err := h.ingredientService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrIngredientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ingredient"})
		return
	}

	ingredient.Name = req.Name
	ingredient.Nutrients = nil
	if err := h.ingredientService.Update(ingredient, lines); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ingredient"})
		return
	}

	updated, err := h.ingredientService.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ingredient"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func ingredientNutrients(c *gin.Context, reqs []types.IngredientNutrientRequest) ([]models.IngredientNutrient, bool) {
	lines := make([]models.IngredientNutrient, 0, len(reqs))
	for _, in := range reqs {
		id, err := uuid.Parse(in.NutrientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nutrient id"})
			return nil, false
		}
		lines = append(lines, models.IngredientNutrient{NutrientID: id, Amount: in.Amount})
	}
	return lines, true
}
