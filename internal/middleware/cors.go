package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Conversly/article-stream/internal/utils"
)

// CORS admits requests without an Origin header and requests from one of
// allowedOrigins. Any other origin is aborted with 403 before later handlers run.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := utils.NewOriginAllowList(allowedOrigins)

	corsHandler := cors.New(cors.Config{
		AllowOriginFunc: allowed.Allows,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:   []string{"X-Request-ID"},
		MaxAge:          12 * time.Hour,
	})

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if !allowed.Allows(origin) {
				utils.Zlog.Warn("Origin rejected by CORS policy",
					zap.String("origin", origin),
					zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error":   "cors_rejected",
					"message": "Acesso não permitido por CORS",
				})
				return
			}
		}
		corsHandler(c)
	}
}
