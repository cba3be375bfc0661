package article

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Conversly/article-stream/internal/middleware"
	"github.com/Conversly/article-stream/internal/utils"
)

type Controller struct {
	svc *Service
}

func NewController(svc *Service) *Controller {
	return &Controller{svc: svc}
}

// GenerateStream relays provider fragments to the response body as they arrive.
func (c *Controller) GenerateStream(ctx *gin.Context) {
	started := time.Now()
	requestID := middleware.GetRequestID(ctx)

	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.Zlog.Warn("invalid /generate-article-stream payload",
			zap.String("request_id", requestID),
			zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	done := c.svc.track()
	ok := false
	defer func() { done(ok) }()

	stream, cancel, err := c.svc.OpenStream(ctx.Request.Context(), &req)
	if err != nil {
		utils.Zlog.Error("article stream setup failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		writeFailure(ctx)
		return
	}
	defer cancel()
	defer stream.Close()

	w := ctx.Writer
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Trailer", TrailerStatus)

	stats := relayStats{started: started}
	for {
		fragment, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			utils.Zlog.Error("article stream failed",
				append(stats.fields(), zap.String("request_id", requestID), zap.Error(err))...)
			writeFailure(ctx)
			return
		}

		n, err := w.WriteString(fragment)
		if err != nil {
			utils.Zlog.Warn("client went away during article stream",
				append(stats.fields(), zap.String("request_id", requestID), zap.Error(err))...)
			return
		}
		w.Flush()
		stats.fragments++
		stats.bytes += n
	}

	if !w.Written() {
		w.WriteHeaderNow()
	}
	w.Header().Set(TrailerStatus, StatusComplete)
	ok = true

	utils.Zlog.Info("article stream completed",
		append(stats.fields(), zap.String("request_id", requestID))...)
}

// writeFailure answers 500 with the fixed message when nothing was sent yet.
// Once the status is committed it appends the message and flags the trailer.
func writeFailure(ctx *gin.Context) {
	w := ctx.Writer
	if !w.Written() {
		w.Header().Del("Trailer")
		ctx.Data(http.StatusInternalServerError, ContentType, []byte(FailureMessage))
		return
	}
	_, _ = w.WriteString(FailureMessage)
	w.Flush()
	w.Header().Set(TrailerStatus, StatusError)
}
