package service

import (
	"strings"
	"testing"
	"time"

	"github.com/anta-store/anta-api/internal/localstore"
)

func setupNoteService(t *testing.T, debounceMS int) (*OrderNoteService, *LocalNoteStore) {
	t.Helper()
	store, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("new localstore failed: %v", err)
	}
	noteStore := NewLocalNoteStore(store)
	return NewOrderNoteService(noteStore, debounceMS), noteStore
}

func TestSetNoteTruncatesToMaxLength(t *testing.T) {
	svc, _ := setupNoteService(t, 10)
	stored := svc.SetNote(1, strings.Repeat("A", 700))
	if len([]rune(stored)) != 600 {
		t.Fatalf("stored length want 600 got %d", len([]rune(stored)))
	}
	if got := svc.GetNote(1); got != stored {
		t.Fatalf("in-memory note mismatch")
	}
}

func TestDebouncedPersistWritesOncePerBurst(t *testing.T) {
	svc, store := setupNoteService(t, 30)

	svc.SetNote(1, "first")
	svc.SetNote(1, "second")
	svc.SetNote(1, "final")

	if _, ok, _ := store.Get(1); ok {
		t.Fatalf("note must not persist before the settle window")
	}

	time.Sleep(120 * time.Millisecond)

	val, ok, err := store.Get(1)
	if err != nil || !ok {
		t.Fatalf("expected persisted note: ok=%v err=%v", ok, err)
	}
	if val != "final" {
		t.Fatalf("persisted note want final got %q", val)
	}
}

func TestClearNoteIsSynchronousAndCancelsPendingWrite(t *testing.T) {
	svc, store := setupNoteService(t, 30)

	svc.SetNote(1, "will be discarded")
	svc.ClearNote(1)

	if got := svc.GetNote(1); got != "" {
		t.Fatalf("in-memory note must be empty after clear, got %q", got)
	}

	time.Sleep(120 * time.Millisecond)

	if _, ok, _ := store.Get(1); ok {
		t.Fatalf("cleared note resurfaced from a stale timer")
	}
}

func TestGetNoteLoadsPersistedValueOnFirstAccess(t *testing.T) {
	svc, store := setupNoteService(t, 10)
	if err := store.Set(7, "restored note"); err != nil {
		t.Fatalf("seed store failed: %v", err)
	}

	if got := svc.GetNote(7); got != "restored note" {
		t.Fatalf("expected persisted note to load, got %q", got)
	}
}

func TestFlushPersistsPendingWrites(t *testing.T) {
	svc, store := setupNoteService(t, 10_000)

	svc.SetNote(1, "about to shut down")
	svc.Flush()

	val, ok, _ := store.Get(1)
	if !ok || val != "about to shut down" {
		t.Fatalf("flush did not persist the pending note: ok=%v val=%q", ok, val)
	}
}
