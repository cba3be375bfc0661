package article

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/Conversly/article-stream/internal/llm"
	"github.com/Conversly/article-stream/internal/utils"
)

// Stats counts relays since startup.
type Stats struct {
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
}

// Service turns a generation request into a provider fragment stream.
// Requests share nothing but the relay counters.
type Service struct {
	provider      llm.Provider
	streamTimeout time.Duration

	active    atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
}

// NewService creates the service. A zero streamTimeout waits on the provider indefinitely.
func NewService(provider llm.Provider, streamTimeout time.Duration) *Service {
	return &Service{provider: provider, streamTimeout: streamTimeout}
}

// OpenStream builds the prompt and opens the provider stream. The returned
// cancel func must be called once the stream has been consumed.
func (s *Service) OpenStream(ctx context.Context, req *Request) (*schema.StreamReader[string], context.CancelFunc, error) {
	var cancel context.CancelFunc
	if s.streamTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.streamTimeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	utils.Zlog.Info("Opening article stream",
		zap.String("provider", s.provider.Name()),
		zap.String("topic", req.Topic),
		zap.String("tone", req.Tone))

	stream, err := s.provider.StreamText(ctx, BuildPrompt(*req))
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to open provider stream: %w", err)
	}
	return stream, cancel, nil
}

func (s *Service) Stats() Stats {
	return Stats{
		Active:    s.active.Load(),
		Completed: s.completed.Load(),
		Failed:    s.failed.Load(),
	}
}

// track marks a relay as started and returns the func that records its outcome.
func (s *Service) track() func(ok bool) {
	s.active.Add(1)
	return func(ok bool) {
		s.active.Add(-1)
		if ok {
			s.completed.Add(1)
		} else {
			s.failed.Add(1)
		}
	}
}

// relayStats is logged when a relay finishes.
type relayStats struct {
	fragments int
	bytes     int
	started   time.Time
}

func (r relayStats) fields() []zap.Field {
	return []zap.Field{
		zap.Int("fragments", r.fragments),
		zap.Int("bytes", r.bytes),
		zap.Int64("latency_ms", time.Since(r.started).Milliseconds()),
	}
}
