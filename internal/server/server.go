package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/food-hub-app/backend/config"
	"github.com/food-hub-app/backend/internal/api"
	"github.com/food-hub-app/backend/internal/middleware"
)

// Server wraps the HTTP server with its route setup.
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New builds the router and binds it to the configured address.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	var origins []string
	if raw := cfg.AllowedOrigins; raw != "" {
		origins = strings.Split(raw, ",")
	}
	router.Use(middleware.CORS(origins))

	api.SetupAPI(router, db, redisClient, cfg.JWTSecret, cfg.MealExpiry)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server, draining in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
