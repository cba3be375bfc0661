package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Conversly/article-stream/internal/utils"
)

const (
	// StorageKey names the single persisted history record.
	StorageKey = "articleHistory"

	// DefaultLimit is how many finished articles are kept.
	DefaultLimit = 5
)

var ErrIndexOutOfRange = errors.New("history index out of range")

// FileStore keeps finished articles newest first, capped at limit, and
// rewrites <baseDir>/articleHistory.json on every change.
type FileStore struct {
	baseDir string
	limit   int

	mu      sync.Mutex
	entries []string
}

// NewFileStore opens the history rooted at baseDir. A missing or unreadable
// history file yields an empty history.
func NewFileStore(baseDir string, limit int) (*FileStore, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, errors.New("base directory must be provided")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	s := &FileStore{baseDir: baseDir, limit: limit}
	entries, err := s.read()
	if err != nil {
		utils.Zlog.Warn("Failed to read article history, starting empty",
			zap.String("path", s.path()),
			zap.Error(err))
		entries = nil
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	s.entries = entries
	return s, nil
}

// Entries returns a copy of the history, newest first.
func (s *FileStore) Entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.entries...)
}

func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Add puts article at index 0 and evicts entries beyond the limit.
// Empty articles are ignored.
func (s *FileStore) Add(article string) error {
	if article == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]string, 0, s.limit)
	next = append(next, article)
	for _, e := range s.entries {
		if len(next) == s.limit {
			break
		}
		next = append(next, e)
	}

	if err := s.write(next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// Get returns the article at index i (0 is the newest).
func (s *FileStore) Get(i int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.entries) {
		return "", fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(s.entries))
	}
	return s.entries[i], nil
}

// Clear empties the history and persists the empty list.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write([]string{}); err != nil {
		return err
	}
	s.entries = nil
	return nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.baseDir, StorageKey+".json")
}

func (s *FileStore) read() ([]string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}

func (s *FileStore) write(entries []string) error {
	tmp, err := os.CreateTemp(s.baseDir, StorageKey+"-*.json")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}

	if err := json.NewEncoder(tmp).Encode(entries); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode history: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close history temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persist history: %w", err)
	}

	return nil
}
