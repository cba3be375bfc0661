package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Conversly/article-stream/internal/api/article"
	"github.com/Conversly/article-stream/internal/config"
)

const Version = "1.0.0"

// StatusResponse identifies the running instance.
type StatusResponse struct {
	Service     string    `json:"service"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	Hostname    string    `json:"hostname"`
	Timestamp   time.Time `json:"timestamp"`
}

// InfoResponse adds the generation settings a client may need to know.
type InfoResponse struct {
	StatusResponse
	Debug          bool     `json:"debug"`
	LogLevel       string   `json:"log_level"`
	Provider       string   `json:"provider"`
	Model          string   `json:"model,omitempty"`
	Endpoint       string   `json:"endpoint"`
	Tones          []string `json:"tones"`
	AllowedOrigins []string `json:"allowed_origins"`
	StreamTimeout  string   `json:"stream_timeout"`
}

type SystemController struct {
	cfg *config.Config
}

func NewSystemController(cfg *config.Config) *SystemController {
	return &SystemController{cfg: cfg}
}

// Status godoc
// @Summary Get service status
// @Tags system
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /api/v1/status [get]
func (s *SystemController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, s.status())
}

// Info godoc
// @Summary Get generation settings
// @Description Provider, model, offered tones and CORS allow-list. Keys are never exposed.
// @Tags system
// @Produce json
// @Success 200 {object} InfoResponse
// @Router /api/v1/info [get]
func (s *SystemController) Info(c *gin.Context) {
	timeout := "none"
	if s.cfg.StreamTimeout > 0 {
		timeout = s.cfg.StreamTimeout.String()
	}

	c.JSON(http.StatusOK, InfoResponse{
		StatusResponse: s.status(),
		Debug:          s.cfg.Debug,
		LogLevel:       s.cfg.LogLevel,
		Provider:       s.cfg.Provider,
		Model:          s.model(),
		Endpoint:       article.Path,
		Tones:          article.Tones,
		AllowedOrigins: s.cfg.AllowedOrigins,
		StreamTimeout:  timeout,
	})
}

func (s *SystemController) status() StatusResponse {
	return StatusResponse{
		Service:     s.cfg.ServiceName,
		Version:     Version,
		Environment: s.cfg.Environment,
		Hostname:    s.cfg.Hostname,
		Timestamp:   time.Now().UTC(),
	}
}

func (s *SystemController) model() string {
	switch s.cfg.Provider {
	case config.ProviderGemini:
		return s.cfg.GeminiModel
	case config.ProviderOpenAI:
		return s.cfg.OpenAIModel
	default:
		return ""
	}
}
