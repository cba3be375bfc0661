package article

import (
	"github.com/gin-gonic/gin"

	"github.com/Conversly/article-stream/internal/config"
	"github.com/Conversly/article-stream/internal/llm"
)

const Path = "/generate-article-stream"

// RegisterRoutes registers the article streaming endpoint and returns its
// service so other routes can read the relay counters.
func RegisterRoutes(router *gin.Engine, provider llm.Provider, cfg *config.Config) *Service {
	svc := NewService(provider, cfg.StreamTimeout)
	ctrl := NewController(svc)
	router.POST(Path, ctrl.GenerateStream)
	return svc
}
