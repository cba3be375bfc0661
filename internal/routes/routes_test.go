package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conversly/article-stream/internal/config"
	"github.com/Conversly/article-stream/internal/llm"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	cfg := &config.Config{
		ServiceName:    "article-stream",
		Environment:    "test",
		Provider:       config.ProviderStatic,
		AllowedOrigins: config.DefaultAllowedOrigins,
	}
	SetupRoutes(router, llm.NewStaticProvider("# Título\n", "corpo"), cfg)
	return router
}

func getJSON(t *testing.T, router *gin.Engine, path string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthEndpoints(t *testing.T) {
	router := newEngine()

	code, body := getJSON(t, router, "/")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	code, body = getJSON(t, router, "/health")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, config.ProviderStatic, body["provider"])

	code, body = getJSON(t, router, "/health/live")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alive", body["status"])

	code, body = getJSON(t, router, "/health/ready")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])
}

func TestSystemEndpoints(t *testing.T) {
	router := newEngine()

	code, body := getJSON(t, router, "/api/v1/status")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "article-stream", body["service"])
	assert.Equal(t, "test", body["environment"])

	code, body = getJSON(t, router, "/api/v1/info")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, config.ProviderStatic, body["provider"])
	assert.Len(t, body["allowed_origins"], 2)
	assert.Equal(t, "/generate-article-stream", body["endpoint"])
	assert.Len(t, body["tones"], 4)
	assert.Equal(t, "none", body["stream_timeout"])
	assert.NotContains(t, body, "model")
}

func TestNotFound(t *testing.T) {
	code, body := getJSON(t, newEngine(), "/nope")
	require.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "/nope", body["path"])
	assert.Equal(t, "not_found", body["error"])
	assert.NotEmpty(t, body["request_id"])
}

func TestArticleRouteIsWired(t *testing.T) {
	router := newEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate-article-stream", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# Título\ncorpo", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
