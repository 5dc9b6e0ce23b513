package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileStore persists each key as a JSON document under a data directory.
type FileStore struct {
	dir    string
	logger *log.Logger
}

// NewFileStore creates the data directory if needed. A nil logger silences
// degradation logging.
func NewFileStore(dir string, logger *log.Logger) (*FileStore, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get implements Store.
func (s *FileStore) Get(key string, v any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("read key", "key", key, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Error("decode key", "key", key, "err", err)
		return false
	}
	return true
}

// Set implements Store.
func (s *FileStore) Set(key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode key", "key", key, "err", err)
		return false
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Error("write key", "key", key, "err", err)
		return false
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		s.logger.Error("commit key", "key", key, "err", err)
		return false
	}
	return true
}

// Remove implements Store.
func (s *FileStore) Remove(key string) bool {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.logger.Error("remove key", "key", key, "err", err)
		return false
	}
	return true
}

// Clear implements Store.
func (s *FileStore) Clear() bool {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Error("clear store", "err", err)
		return false
	}
	ok := true
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			s.logger.Error("clear key", "file", e.Name(), "err", err)
			ok = false
		}
	}
	return ok
}
