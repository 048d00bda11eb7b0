package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/anta-store/anta-api/internal/logger"
)

// Store is a file-backed key-value store. It stands in for the browser
// localStorage of the legacy client: demo mode runs carts and wishlists on
// it, and it backs order notes and language preferences when redis is off.
//
// Failure policy mirrors the original client: unreadable entries degrade to
// "absent" and failed writes are logged and swallowed — the in-memory state
// of the calling service stays authoritative for the session.
type Store struct {
	dir string
	mu  sync.Mutex
}

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9_:.-]{1,128}$`)

// ErrInvalidKey is returned for keys that cannot map to a file name.
var ErrInvalidKey = errors.New("localstore: invalid key")

// New opens (and creates if needed) a store rooted at dir.
func New(dir string) (*Store, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		trimmed = "./data/localstore"
	}
	if err := os.MkdirAll(trimmed, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: trimmed}, nil
}

// GetString reads a plain string value. Missing or unreadable entries
// return ("", false) without an error.
func (s *Store) GetString(key string) (string, bool) {
	raw, ok := s.read(key)
	if !ok {
		return "", false
	}
	return string(raw), true
}

// SetString writes a plain string value, best effort.
func (s *Store) SetString(key, value string) {
	s.write(key, []byte(value))
}

// GetJSON decodes a JSON value into dest. Corrupted entries count as
// absent: the caller falls back to its empty state instead of failing.
func (s *Store) GetJSON(key string, dest interface{}) bool {
	raw, ok := s.read(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warnw("localstore_decode_failed", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON encodes and writes a JSON value, best effort.
func (s *Store) SetJSON(key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warnw("localstore_encode_failed", "key", key, "error", err)
		return
	}
	s.write(key, raw)
}

// Delete removes an entry synchronously. Removing an absent key is a no-op.
func (s *Store) Delete(key string) {
	path, err := s.path(key)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnw("localstore_delete_failed", "key", key, "error", err)
	}
}

func (s *Store) read(key string) ([]byte, bool) {
	path, err := s.path(key)
	if err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warnw("localstore_read_failed", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (s *Store) write(key string, raw []byte) {
	path, err := s.path(key)
	if err != nil {
		logger.Warnw("localstore_write_failed", "key", key, "error", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Write through a temp file so a crash never leaves a half-written
	// entry behind; corrupt entries read back as absent anyway.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		logger.Warnw("localstore_write_failed", "key", key, "error", err)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		logger.Warnw("localstore_write_failed", "key", key, "error", err)
	}
}

func (s *Store) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", ErrInvalidKey
	}
	// ":" separates namespaces in keys but cannot appear in file names on
	// every platform.
	name := strings.ReplaceAll(key, ":", "__") + ".json"
	return filepath.Join(s.dir, name), nil
}
