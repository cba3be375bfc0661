package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOrigins = []string{"http://localhost:5173", "https://desafio-ia-vitor.vercel.app"}

func newRouter(hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(testOrigins), RequestID())
	r.POST("/generate-article-stream", func(c *gin.Context) {
		*hits++
		c.String(http.StatusOK, GetRequestID(c))
	})
	return r
}

func TestCORSAllowsRequestsWithoutOrigin(t *testing.T) {
	hits := 0
	r := newRouter(&hits)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/generate-article-stream", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, hits)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowsListedOrigins(t *testing.T) {
	for _, origin := range testOrigins {
		hits := 0
		r := newRouter(&hits)

		req := httptest.NewRequest(http.MethodPost, "/generate-article-stream", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, origin)
		require.Equal(t, 1, hits)
		assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestCORSRejectsUnlistedOriginBeforeHandler(t *testing.T) {
	hits := 0
	r := newRouter(&hits)

	req := httptest.NewRequest(http.MethodPost, "/generate-article-stream", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Zero(t, hits)
	assert.Contains(t, w.Body.String(), "cors_rejected")
}

func TestRequestIDPropagatesOrGenerates(t *testing.T) {
	hits := 0
	r := newRouter(&hits)

	req := httptest.NewRequest(http.MethodPost, "/generate-article-stream", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/generate-article-stream", nil))
	generated := w.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())
}
