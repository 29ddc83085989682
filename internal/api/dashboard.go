package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/food-hub-app/backend/internal/middleware"
	"github.com/food-hub-app/backend/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	intakeService    *service.IntakeService
	profileService   *service.ProfileService
	authService      *service.AuthService
}

func NewDashboardHandler(dashboardService *service.DashboardService, intakeService *service.IntakeService, profileService *service.ProfileService, authService *service.AuthService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		intakeService:    intakeService,
		profileService:   profileService,
		authService:      authService,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(h.authService))
	{
		dashboard.GET("", h.Get)
		dashboard.GET("/calories/last-month", h.CaloriesLastMonth)
	}
}

// Get assembles the nutrition overview from the last month of meals.
func (h *DashboardHandler) Get(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	dashboard, err := h.dashboardService.Assemble(profile, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assemble dashboard"})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// CaloriesLastMonth charts the per-nutrient caloric contributions of
// the last month.
func (h *DashboardHandler) CaloriesLastMonth(c *gin.Context) {
	profile := requireProfile(c, h.profileService)
	if profile == nil {
		return
	}

	series, average, err := h.intakeService.CaloriesLastMonth(profile.ID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load calories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"series":  series,
		"average": average,
	})
}
