package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anta-store/anta-api/internal/cache"
	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/localstore"
	"github.com/anta-store/anta-api/internal/logger"
)

// NoteStore persists order notes across sessions. Implementations exist for
// redis and for the file-backed store.
type NoteStore interface {
	Get(userID uint) (string, bool, error)
	Set(userID uint, note string) error
	Delete(userID uint) error
}

// RedisNoteStore keeps notes in redis under the anta_order_note_v1 key.
type RedisNoteStore struct{}

// NewRedisNoteStore creates a redis-backed note store.
func NewRedisNoteStore() *RedisNoteStore {
	return &RedisNoteStore{}
}

func redisNoteKey(userID uint) string {
	return fmt.Sprintf("%s:%d", constants.LocalKeyOrderNote, userID)
}

// Get reads the persisted note.
func (s *RedisNoteStore) Get(userID uint) (string, bool, error) {
	return cache.GetString(context.Background(), redisNoteKey(userID))
}

// Set writes the persisted note.
func (s *RedisNoteStore) Set(userID uint, note string) error {
	return cache.SetString(context.Background(), redisNoteKey(userID), note, 0)
}

// Delete removes the persisted note.
func (s *RedisNoteStore) Delete(userID uint) error {
	return cache.Del(context.Background(), redisNoteKey(userID))
}

// LocalNoteStore keeps notes in the file-backed store.
type LocalNoteStore struct {
	store *localstore.Store
}

// NewLocalNoteStore creates a file-backed note store.
func NewLocalNoteStore(store *localstore.Store) *LocalNoteStore {
	return &LocalNoteStore{store: store}
}

func (s *LocalNoteStore) key(userID uint) string {
	return fmt.Sprintf("%s:%d", constants.LocalKeyOrderNote, userID)
}

// Get reads the persisted note.
func (s *LocalNoteStore) Get(userID uint) (string, bool, error) {
	val, ok := s.store.GetString(s.key(userID))
	return val, ok, nil
}

// Set writes the persisted note.
func (s *LocalNoteStore) Set(userID uint, note string) error {
	s.store.SetString(s.key(userID), note)
	return nil
}

// Delete removes the persisted note.
func (s *LocalNoteStore) Delete(userID uint) error {
	s.store.Delete(s.key(userID))
	return nil
}

// OrderNoteService owns the per-user pending order note. The in-memory
// value is authoritative for the session; writes to the backing store are
// debounced so a burst of edits persists once, after the burst settles.
// Clearing is synchronous and cancels any pending write, so a cleared note
// can never resurface from a stale timer.
type OrderNoteService struct {
	store    NoteStore
	debounce time.Duration

	mu     sync.Mutex
	notes  map[uint]string
	loaded map[uint]bool
	timers map[uint]*time.Timer
}

// NewOrderNoteService creates an order note service. debounceMS below 1
// falls back to the standard settle window.
func NewOrderNoteService(store NoteStore, debounceMS int) *OrderNoteService {
	if debounceMS < 1 {
		debounceMS = constants.NoteDebounceDefaultMS
	}
	return &OrderNoteService{
		store:    store,
		debounce: time.Duration(debounceMS) * time.Millisecond,
		notes:    make(map[uint]string),
		loaded:   make(map[uint]bool),
		timers:   make(map[uint]*time.Timer),
	}
}

// GetNote returns the user's current note, loading the persisted value on
// first access. Store read failures degrade to an empty note.
func (s *OrderNoteService) GetNote(userID uint) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(userID)
}

// SetNote replaces the in-memory note and schedules a debounced persist.
// Input beyond the maximum length truncates instead of failing; the stored
// value is returned. SetNote never returns an error: persistence is best
// effort and the in-memory value stays authoritative.
func (s *OrderNoteService) SetNote(userID uint, note string) string {
	note = TruncateNote(note)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[userID] = note
	s.loaded[userID] = true
	s.scheduleLocked(userID)
	return note
}

// ClearNote empties the note and removes the persisted entry immediately.
// Unlike edits this is not debounced: clearing happens on logout and order
// completion and must not leave a previous user's note behind.
func (s *OrderNoteService) ClearNote(userID uint) {
	s.mu.Lock()
	if timer, ok := s.timers[userID]; ok {
		timer.Stop()
		delete(s.timers, userID)
	}
	s.notes[userID] = ""
	s.loaded[userID] = true
	s.mu.Unlock()

	if err := s.store.Delete(userID); err != nil {
		logger.Warnw("order_note_clear_failed", "user_id", userID, "error", err)
	}
}

// Flush persists any pending note write immediately. Called on shutdown so
// the settle window does not drop the last edit.
func (s *OrderNoteService) Flush() {
	s.mu.Lock()
	pending := make(map[uint]string)
	for userID, timer := range s.timers {
		timer.Stop()
		pending[userID] = s.notes[userID]
	}
	s.timers = make(map[uint]*time.Timer)
	s.mu.Unlock()

	for userID, note := range pending {
		s.persist(userID, note)
	}
}

// scheduleLocked resets the user's settle timer. Caller holds s.mu.
func (s *OrderNoteService) scheduleLocked(userID uint) {
	if timer, ok := s.timers[userID]; ok {
		timer.Stop()
	}
	s.timers[userID] = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		delete(s.timers, userID)
		note, ok := s.notes[userID]
		s.mu.Unlock()
		if !ok {
			return
		}
		s.persist(userID, note)
	})
}

// loadLocked returns the note, reading the store on first access. Caller
// holds s.mu.
func (s *OrderNoteService) loadLocked(userID uint) string {
	if s.loaded[userID] {
		return s.notes[userID]
	}
	s.loaded[userID] = true
	val, ok, err := s.store.Get(userID)
	if err != nil {
		logger.Warnw("order_note_load_failed", "user_id", userID, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	val = TruncateNote(val)
	s.notes[userID] = val
	return val
}

func (s *OrderNoteService) persist(userID uint, note string) {
	var err error
	if note == "" {
		err = s.store.Delete(userID)
	} else {
		err = s.store.Set(userID, note)
	}
	if err != nil {
		logger.Warnw("order_note_persist_failed", "user_id", userID, "error", err)
	}
}

// TruncateNote enforces the maximum note length, counting characters rather
// than bytes so Arabic text is not cut mid-rune.
func TruncateNote(note string) string {
	runes := []rune(note)
	if len(runes) <= constants.OrderNoteMaxLen {
		return note
	}
	return string(runes[:constants.OrderNoteMaxLen])
}
