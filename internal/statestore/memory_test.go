package statestore

import (
	"context"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if err := store.Save(ctx, "s1", "cart", sample{Name: "x", Count: 3}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got sample
	ok, err := store.Load(ctx, "s1", "cart", &got)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok || got.Name != "x" || got.Count != 3 {
		t.Fatalf("unexpected load ok=%v got=%+v", ok, got)
	}
}

func TestLoadMissingKeyReportsAbsent(t *testing.T) {
	var got sample
	ok, err := NewMemory().Load(context.Background(), "s1", "cart", &got)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("expected absent")
	}
}

func TestCorruptBlobReportsAbsent(t *testing.T) {
	store := NewMemory()
	store.Put("s1", "cart", []byte(`{"name": `))

	var got sample
	ok, err := store.Load(context.Background(), "s1", "cart", &got)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("corrupt blob must read as absent")
	}
}

func TestRemoveDeletesOnlyTargetKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	if err := store.Save(ctx, "s1", "cart", sample{Name: "a"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "s1", "wishlist", sample{Name: "b"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := store.Remove(ctx, "s1", "cart"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	var got sample
	if ok, _ := store.Load(ctx, "s1", "cart", &got); ok {
		t.Fatalf("cart should be gone")
	}
	if ok, _ := store.Load(ctx, "s1", "wishlist", &got); !ok {
		t.Fatalf("wishlist should survive")
	}
}

func TestListByKeySpansSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	if err := store.Save(ctx, "s1", "orders", sample{Name: "a"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "s2", "orders", sample{Name: "b"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "s3", "cart", sample{Name: "c"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := store.ListByKey(ctx, "orders")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.SessionID != "s1" && entry.SessionID != "s2" {
			t.Fatalf("unexpected session %s", entry.SessionID)
		}
	}
}
