package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Conversly/article-stream/internal/api/article"
	"github.com/Conversly/article-stream/internal/llm"
	"github.com/Conversly/article-stream/internal/utils"
)

// StreamCounter reports relay activity.
type StreamCounter interface {
	Stats() article.Stats
}

type HealthController struct {
	provider llm.Provider
	streams  StreamCounter
	started  time.Time
}

func NewHealthController(provider llm.Provider, streams StreamCounter) *HealthController {
	return &HealthController{provider: provider, streams: streams, started: time.Now()}
}

// HealthCheck godoc
// @Summary Check application health
// @Description Report the generation provider, uptime and relay counters
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthController) HealthCheck(c *gin.Context) {
	body := gin.H{
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"timestamp": time.Now().UTC(),
	}
	if h.streams != nil {
		body["streams"] = h.streams.Stats()
	}

	if h.provider == nil {
		utils.Zlog.Error("Health check failed: no provider configured")
		body["status"] = "unhealthy"
		body["provider"] = "missing"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	body["status"] = "healthy"
	body["provider"] = h.provider.Name()
	c.JSON(http.StatusOK, body)
}

// Liveness godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/live [get]
func (h *HealthController) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}

// Readiness godoc
// @Summary Readiness probe
// @Description Ready once a provider is configured; streams never block readiness
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/ready [get]
func (h *HealthController) Readiness(c *gin.Context) {
	if h.provider == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not ready",
			"provider":  "missing",
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"provider":  h.provider.Name(),
		"timestamp": time.Now().UTC(),
	})
}
