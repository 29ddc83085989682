package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/food-hub-app/backend/internal/middleware"
	"github.com/food-hub-app/backend/internal/models"
	"github.com/food-hub-app/backend/internal/service"
	"github.com/food-hub-app/backend/internal/types"
)

type RecipeHandler struct {
	recipeService  *service.RecipeService
	profileService *service.ProfileService
	authService    *service.AuthService
}

func NewRecipeHandler(recipeService *service.RecipeService, profileService *service.ProfileService, authService *service.AuthService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:  recipeService,
		profileService: profileService,
		authService:    authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.authService))
	{
		recipes.GET("", h.List)
		recipes.POST("", h.Create)
		recipes.GET("/:id", h.Get)
		recipes.PUT("/:id", h.Update)
		recipes.DELETE("/:id", h.Delete)
		recipes.GET("/:id/nutrients", h.Nutrients)
	}
}

func (h *RecipeHandler) List(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	recipes, err := h.recipeService.List(profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) Get(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	// The path accepts either the recipe id or its slug.
	raw := c.Param("id")
	var recipe *models.Recipe
	var err error
	if id, parseErr := uuid.Parse(raw); parseErr == nil {
		recipe, err = h.recipeService.Get(profile.ID, id)
	} else {
		recipe, err = h.recipeService.GetBySlug(profile.ID, raw)
	}
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recipe"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredients, ok := recipeIngredients(c, req.Ingredients)
	if !ok {
		return
	}

	recipe, err := h.recipeService.Create(profile.ID, req.Name, req.FinalWeight, ingredients)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNameExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredients, ok := recipeIngredients(c, req.Ingredients)
	if !ok {
		return
	}

	recipe, err := h.recipeService.Update(profile.ID, id, req.Name, req.FinalWeight, ingredients)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrRecipeNameExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		}
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.Delete(profile.ID, id); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Nutrients reports the recipe's nutrient content per 100 grams of the
// prepared dish.
func (h *RecipeHandler) Nutrients(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(profile.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recipe"})
		return
	}

	perGram := service.RecipeNutrientAmounts(recipe)
	per100g := make(map[string]float64, len(perGram))
	for nid, amount := range perGram {
		per100g[nid.String()] = amount * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"weight":    recipe.Weight(),
		"nutrients": per100g,
	})
}

func recipeIngredients(c *gin.Context, reqs []types.RecipeIngredientRequest) ([]models.RecipeIngredient, bool) {
	ingredients := make([]models.RecipeIngredient, 0, len(reqs))
	for _, ri := range reqs {
		id, err := uuid.Parse(ri.IngredientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
			return nil, false
		}
		ingredients = append(ingredients, models.RecipeIngredient{IngredientID: id, Amount: ri.Amount})
	}
	return ingredients, true
}
