package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/timmy/movierec/internal/api/handler"
	"github.com/timmy/movierec/internal/api/middleware"
	"github.com/timmy/movierec/internal/config"
	"github.com/timmy/movierec/internal/logger"
	"github.com/timmy/movierec/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	recommendService *service.RecommendService,
	cfg *config.ServerConfig,
	log *logger.Logger,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(middleware.NewCORSConfig(cfg.CORS.AllowedOrigins, cfg.CORS.AllowAllOrigins)))

	// Create handlers
	healthHandler := handler.NewHealthHandler(recommendService.GetStats().Movies)
	recommendHandler := handler.NewRecommendHandler(recommendService)
	movieHandler := handler.NewMovieHandler(recommendService)

	// Health check and metrics
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Recommendations
		v1.GET("/recommend", recommendHandler.RecommendGet)
		v1.POST("/recommend", recommendHandler.Recommend)

		// Catalog
		v1.GET("/movies", movieHandler.ListMovies)
		v1.GET("/movies/:id", movieHandler.GetMovie)

		// Stats
		v1.GET("/stats", recommendHandler.GetStats)
	}

	return r
}
