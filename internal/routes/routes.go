package routes

import (
	"github.com/Conversly/article-stream/internal/api/article"
	"github.com/Conversly/article-stream/internal/config"
	"github.com/Conversly/article-stream/internal/llm"
	"github.com/Conversly/article-stream/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, provider llm.Provider, cfg *config.Config) {
	// Apply global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID())

	// Setup route groups
	articles := article.RegisterRoutes(router, provider, cfg)
	SetupHealthRoutes(router, provider, articles)
	SetupSystemRoutes(router, cfg)
	Setup404Handler(router)
}
