package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-hclog"

	workoutout "mapty/internal/modules/workout/port/out"
)

var errUnreadableStorage = errors.New("unreadable local storage")

// FileSnapshotStore keeps every key in a single JSON object on disk. Each
// write rewrites the whole file through a temp file and rename. Reads of an
// unreadable file fail; writes replace it.
type FileSnapshotStore struct {
	path   string
	logger hclog.Logger
	mu     sync.Mutex
}

func NewFileSnapshotStore(path string, logger hclog.Logger) workoutout.SnapshotStore {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FileSnapshotStore{path: path, logger: logger}
}

func (s *FileSnapshotStore) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := items[key]
	return value, ok, nil
}

func (s *FileSnapshotStore) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, _, err := s.loadForWrite()
	if err != nil {
		return err
	}
	items[key] = value
	return s.save(items)
}

func (s *FileSnapshotStore) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, discarded, err := s.loadForWrite()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok && !discarded {
		return nil
	}
	delete(items, key)
	return s.save(items)
}

func (s *FileSnapshotStore) Close() error { return nil }

func (s *FileSnapshotStore) load() (map[string]string, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read local storage: %w", err)
	}
	items := map[string]string{}
	if len(payload) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", errUnreadableStorage, err)
	}
	return items, nil
}

// loadForWrite starts from an empty object when the file cannot be decoded
// and reports that the old content was discarded.
func (s *FileSnapshotStore) loadForWrite() (map[string]string, bool, error) {
	items, err := s.load()
	if errors.Is(err, errUnreadableStorage) {
		s.logger.Warn("discarding unreadable local storage", "path", s.path, "error", err)
		return map[string]string{}, true, nil
	}
	return items, false, err
}

func (s *FileSnapshotStore) save(items map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create local storage dir: %w", err)
	}
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal local storage: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write local storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace local storage: %w", err)
	}
	return nil
}
