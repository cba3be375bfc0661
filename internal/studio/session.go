package studio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Conversly/article-stream/internal/api/article"
	"github.com/Conversly/article-stream/internal/utils"
)

// ErrBusy is returned while a submission is in flight.
var ErrBusy = errors.New("a generation is already in progress")

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateStreaming
	StateDone
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateStreaming:
		return "streaming"
	case StateDone:
		return "done"
	case StateErrored:
		return "errored"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Generator streams an article for a request, chunk by chunk.
type Generator interface {
	GenerateStream(ctx context.Context, req article.Request, onChunk func(chunk string)) error
}

// History stores finished articles.
type History interface {
	Add(article string) error
	Get(i int) (string, error)
	Entries() []string
}

// Update is handed to the Renderer after every visible change.
type Update struct {
	State   State
	Display string
	// Chunk is the text appended by this update, if any.
	Chunk string
	// Err is the user-facing error message, if any.
	Err string
	// ScrollToTop is set when the display was replaced rather than appended to.
	ScrollToTop bool
}

type Renderer interface {
	Render(u Update)
}

type RendererFunc func(u Update)

func (f RendererFunc) Render(u Update) { f(u) }

// FormatError builds the message shown to the user for a failed submission.
func FormatError(err error) string {
	return fmt.Sprintf("Houve um problema ao gerar o artigo. Verifique se o backend está rodando. (%s)", err.Error())
}

// Session holds the state of one user's form: the display buffer, the last
// error and the in-flight flag. The display buffer only grows while
// streaming; it is committed to history only after the stream succeeds.
type Session struct {
	gen      Generator
	history  History
	renderer Renderer

	mu      sync.Mutex
	state   State
	display strings.Builder
	errMsg  string
}

func NewSession(gen Generator, history History, renderer Renderer) *Session {
	if renderer == nil {
		renderer = RendererFunc(func(Update) {})
	}
	return &Session{gen: gen, history: history, renderer: renderer}
}

// Submit generates one article. It resets the display and error, appends
// every chunk to the display, and on success commits non-empty text to
// history. On failure the partial display is kept and the error message set.
func (s *Session) Submit(ctx context.Context, topic, tone string) error {
	s.mu.Lock()
	if s.state == StateSubmitting || s.state == StateStreaming {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state = StateSubmitting
	s.display.Reset()
	s.errMsg = ""
	s.mu.Unlock()
	s.renderer.Render(s.snapshot(""))

	err := s.gen.GenerateStream(ctx, article.Request{Topic: topic, Tone: tone}, s.appendChunk)
	if err != nil {
		msg := FormatError(err)
		utils.Zlog.Error("Article generation failed", zap.Error(err))

		s.mu.Lock()
		s.state = StateErrored
		s.errMsg = msg
		s.mu.Unlock()
		s.renderer.Render(s.snapshot(""))
		return err
	}

	s.mu.Lock()
	full := s.display.String()
	s.state = StateDone
	s.mu.Unlock()

	if full != "" {
		if err := s.history.Add(full); err != nil {
			utils.Zlog.Error("Failed to save article history", zap.Error(err))
		}
	}
	s.renderer.Render(s.snapshot(""))
	return nil
}

func (s *Session) appendChunk(chunk string) {
	s.mu.Lock()
	s.state = StateStreaming
	s.display.WriteString(chunk)
	s.mu.Unlock()
	s.renderer.Render(s.snapshot(chunk))
}

// LoadFromHistory replaces the display with history entry i. No request is made.
func (s *Session) LoadFromHistory(i int) error {
	s.mu.Lock()
	if s.state == StateSubmitting || s.state == StateStreaming {
		s.mu.Unlock()
		return ErrBusy
	}
	s.mu.Unlock()

	text, err := s.history.Get(i)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.display.Reset()
	s.display.WriteString(text)
	s.mu.Unlock()

	u := s.snapshot("")
	u.ScrollToTop = true
	s.renderer.Render(u)
	return nil
}

func (s *Session) Display() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display.String()
}

func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns the stored articles, newest first.
func (s *Session) History() []string {
	return s.history.Entries()
}

func (s *Session) snapshot(chunk string) Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Update{
		State:   s.state,
		Display: s.display.String(),
		Chunk:   chunk,
		Err:     s.errMsg,
	}
}
