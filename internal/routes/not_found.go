package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conversly/article-stream/internal/middleware"
)

// Setup404Handler answers unknown paths and methods with a JSON body.
func Setup404Handler(router *gin.Engine) {
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "not_found",
			"message":    "Recurso não encontrado",
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": middleware.GetRequestID(c),
		})
	})
}
