package localstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	type line struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	in := []line{{ProductID: 1, Quantity: 2}, {ProductID: 9, Quantity: 1}}
	store.SetJSON("anta_cart:7", in)

	var out []line
	if !store.GetJSON("anta_cart:7", &out) {
		t.Fatalf("expected cart entry to exist")
	}
	if len(out) != 2 || out[0].ProductID != 1 || out[1].Quantity != 1 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestCorruptEntryReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	store.SetJSON("anta_cart:7", []int{1})
	if err := os.WriteFile(filepath.Join(dir, "anta_cart__7.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt entry failed: %v", err)
	}

	var out []int
	if store.GetJSON("anta_cart:7", &out) {
		t.Fatalf("expected corrupted entry to read as absent")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	store.SetString("anta_order_note_v1:3", "note")
	store.Delete("anta_order_note_v1:3")
	store.Delete("anta_order_note_v1:3")
	if _, ok := store.GetString("anta_order_note_v1:3"); ok {
		t.Fatalf("expected entry to be gone")
	}
}

func TestInvalidKeyRejected(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	if _, ok := store.GetString("../escape"); ok {
		t.Fatalf("expected invalid key to read as absent")
	}
}
