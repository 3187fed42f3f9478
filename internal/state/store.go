package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const defaultStorePath = "~/.local/share/multiterm/storage.json"

// DefaultPath returns the default store file path.
func DefaultPath() string {
	return defaultStorePath
}

// Store is a file-backed key/value map of JSON values.
type Store struct {
	path   string
	logger *slog.Logger

	mu         sync.RWMutex
	data       map[string]json.RawMessage
	lastError  error
	lastLoaded time.Time
}

// Open loads the store at path. An empty path selects the default location.
// Unreadable or malformed files yield an empty store; only an unresolvable
// path is an error.
func Open(path string, logger *slog.Logger) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{path: resolved, logger: logger, data: map[string]json.RawMessage{}}
	if _, err := s.Reload(); err != nil {
		logger.Warn("store unreadable, starting empty",
			slog.String("path", resolved),
			slog.Any("err", err),
		)
	}
	return s, nil
}

// NewMemory returns a store that never touches disk.
func NewMemory() *Store {
	return &Store{logger: slog.Default(), data: map[string]json.RawMessage{}}
}

// Path is the backing file, or "" for an in-memory store.
func (s *Store) Path() string { return s.path }

// Get decodes the value under key into v. found is false when the key is
// absent. A value that does not decode is reported as an error.
func (s *Store) Get(key string, v any) (found bool, err error) {
	raw, ok := s.GetRaw(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// GetRaw returns a copy of the encoded value under key.
func (s *Store) GetRaw(key string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[key]
	if !ok {
		return nil, false
	}
	return append(json.RawMessage(nil), raw...), true
}

// Set encodes v under key and rewrites the file.
func (s *Store) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	s.data[key] = raw
	if err := s.persistLocked(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

// Delete removes key and rewrites the file. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	if !had {
		return nil
	}
	delete(s.data, key)
	if err := s.persistLocked(); err != nil {
		s.data[key] = prev
		return err
	}
	return nil
}

// Keys returns every key in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LastError is the most recent load failure, or nil.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastError == nil {
		return nil
	}
	return fmt.Errorf("%w", s.lastError)
}

// LastLoaded is when the file was last read successfully.
func (s *Store) LastLoaded() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastLoaded
}

// Reload re-reads the file and reports whether the contents changed. A read
// or parse failure keeps the previous contents and is returned.
func (s *Store) Reload() (changed bool, err error) {
	if s.path == "" {
		return false, nil
	}

	data, readErr := readFile(s.path)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastError = readErr
	if readErr != nil {
		return false, readErr
	}
	s.lastLoaded = time.Now()
	changed = !equalData(s.data, data)
	s.data = data
	return changed, readErr
}

func readFile(path string) (map[string]json.RawMessage, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse store: %w", err)
	}
	if data == nil {
		data = map[string]json.RawMessage{}
	}
	return data, nil
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}

	encoded, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".storage-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(append(encoded, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

func equalData(a, b map[string]json.RawMessage) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !jsonEqual(av, bv) {
			return false
		}
	}
	return true
}

func jsonEqual(a, b json.RawMessage) bool {
	if bytes.Equal(a, b) {
		return true
	}
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return false
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultStorePath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
