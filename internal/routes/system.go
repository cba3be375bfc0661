package routes

import (
	"github.com/Conversly/article-stream/internal/config"
	"github.com/Conversly/article-stream/internal/controllers"
	"github.com/gin-gonic/gin"
)

// SetupSystemRoutes configures the service metadata endpoints
func SetupSystemRoutes(router *gin.Engine, cfg *config.Config) {
	systemController := controllers.NewSystemController(cfg)

	v1 := router.Group("/api/v1")
	v1.GET("/status", systemController.Status)
	v1.GET("/info", systemController.Info)
}
