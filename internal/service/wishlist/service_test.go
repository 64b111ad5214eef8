package wishlist

import (
	"context"
	"testing"

	"shopfront/internal/domain"
	"shopfront/internal/statestore"
)

func TestAddIsIdempotentPerID(t *testing.T) {
	ctx := context.Background()
	svc := New(statestore.NewMemory())

	item := domain.WishlistItem{ID: 7, Title: "thing"}
	if _, err := svc.Add(ctx, "s1", item); err != nil {
		t.Fatalf("add: %v", err)
	}
	st, err := svc.Add(ctx, "s1", item)
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if len(st.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(st.Items))
	}
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	svc := New(statestore.NewMemory())

	if _, err := svc.Add(ctx, "s1", domain.WishlistItem{ID: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, "s1", domain.WishlistItem{ID: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}

	st, err := svc.Remove(ctx, "s1", 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(st.Items) != 1 || st.Items[0].ID != 2 {
		t.Fatalf("unexpected items %+v", st.Items)
	}

	// Removing an absent id is a no-op.
	st, err = svc.Remove(ctx, "s1", 99)
	if err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if len(st.Items) != 1 {
		t.Fatalf("remove of absent id changed the list: %+v", st.Items)
	}

	if err := svc.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	st, err = svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(st.Items) != 0 {
		t.Fatalf("expected empty wishlist, got %+v", st.Items)
	}
}

func TestCorruptBlobFallsBackToEmptyList(t *testing.T) {
	ctx := context.Background()
	store := statestore.NewMemory()
	store.Put("s1", "wishlist", []byte(`[broken`))
	svc := New(store)

	st, err := svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(st.Items) != 0 {
		t.Fatalf("expected default wishlist, got %+v", st.Items)
	}
}
