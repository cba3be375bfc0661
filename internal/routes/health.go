package routes

import (
	"net/http"

	"github.com/Conversly/article-stream/internal/controllers"
	"github.com/Conversly/article-stream/internal/llm"
	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes configures health check endpoints
func SetupHealthRoutes(router *gin.Engine, provider llm.Provider, streams controllers.StreamCounter) {
	healthController := controllers.NewHealthController(provider, streams)

	// Root endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	health := router.Group("/health")
	health.GET("", healthController.HealthCheck)
	health.GET("/live", healthController.Liveness)
	health.GET("/ready", healthController.Readiness)
}
