package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/food-hub-app/backend/internal/database"
	"github.com/food-hub-app/backend/internal/middleware"
	"github.com/food-hub-app/backend/internal/service"
)

// SetupAPI wires the services and registers every route under /api/v1.
// The redis client may be nil; meal selection shortcuts and rate
// limiting are then disabled.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, jwtSecret string, mealExpiry time.Duration) {
	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		authService := service.NewAuthService(db, jwtSecret)
		profileService := service.NewProfileService(db)
		nutrientService := service.NewNutrientService(db)
		ingredientService := service.NewIngredientService(db)
		recipeService := service.NewRecipeService(db)
		mealService := service.NewMealService(db)
		intakeService := service.NewIntakeService(db)
		dashboardService := service.NewDashboardService(db, intakeService, profileService)

		var currentMealService *service.CurrentMealService
		var mealLimiter *middleware.RateLimiter
		if redisClient != nil {
			currentMealService = service.NewCurrentMealService(redisClient, mealExpiry)
			mealLimiter = middleware.NewMealLoggingRateLimiter(redisClient)
		}

		authHandler := NewAuthHandler(authService)
		profileHandler := NewProfileHandler(profileService, authService)
		nutrientHandler := NewNutrientHandler(nutrientService, intakeService, profileService, authService)
		ingredientHandler := NewIngredientHandler(ingredientService, authService)
		recipeHandler := NewRecipeHandler(recipeService, profileService, authService)
		mealHandler := NewMealHandler(mealService, intakeService, currentMealService, nutrientService, profileService, authService, mealLimiter)
		dashboardHandler := NewDashboardHandler(dashboardService, intakeService, profileService, authService)

		authHandler.RegisterRoutes(v1)
		profileHandler.RegisterRoutes(v1)
		nutrientHandler.RegisterRoutes(v1)
		ingredientHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
		mealHandler.RegisterRoutes(v1)
		dashboardHandler.RegisterRoutes(v1)
	}
}
