package orders

import (
	"context"
	"io"
	"log"
	"testing"

	"shopfront/internal/domain"
	"shopfront/internal/statestore"
)

func testService(store statestore.Store) *Service {
	return New(store, log.New(io.Discard, "", 0))
}

func createOrder(t *testing.T, svc *Service, sessionID string) *domain.Order {
	t.Helper()
	order, err := svc.Create(context.Background(), sessionID, CreateInput{
		Items: []domain.CartItem{
			{ID: 1, Title: "a", UnitPriceCents: 1000, Quantity: 2},
			{ID: 2, Title: "b", UnitPriceCents: 300, Quantity: 1},
		},
		Shipping:      domain.ShippingDetails{FullName: "Ada Test", City: "Lagos"},
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return order
}

func TestCreateComputesTotalAndStartsPending(t *testing.T) {
	svc := testService(statestore.NewMemory())
	order := createOrder(t, svc, "s1")

	if order.Status != domain.OrderPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if order.TotalCents != 2300 {
		t.Fatalf("expected total 2300, got %d", order.TotalCents)
	}
	if order.ID == "" {
		t.Fatalf("expected an order id")
	}
}

func TestListReturnsNewestFirst(t *testing.T) {
	svc := testService(statestore.NewMemory())
	first := createOrder(t, svc, "s1")
	second := createOrder(t, svc, "s1")

	list, err := svc.List(context.Background(), "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %s then %s", list[0].ID, list[1].ID)
	}
}

func TestGetUnknownOrderReturnsNotFound(t *testing.T) {
	svc := testService(statestore.NewMemory())
	createOrder(t, svc, "s1")

	if _, err := svc.Get(context.Background(), "s1", "ORD-0-FFFFFF"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetStatusTransitions(t *testing.T) {
	cases := []struct {
		name string
		path []domain.OrderStatus
		ok   bool
	}{
		{"full lifecycle", []domain.OrderStatus{domain.OrderProcessing, domain.OrderShipped, domain.OrderDelivered}, true},
		{"cancel while pending", []domain.OrderStatus{domain.OrderCancelled}, true},
		{"cancel while shipped", []domain.OrderStatus{domain.OrderProcessing, domain.OrderShipped, domain.OrderCancelled}, true},
		{"skip to shipped", []domain.OrderStatus{domain.OrderShipped}, false},
		{"backwards", []domain.OrderStatus{domain.OrderProcessing, domain.OrderPending}, false},
		{"leave delivered", []domain.OrderStatus{domain.OrderProcessing, domain.OrderShipped, domain.OrderDelivered, domain.OrderCancelled}, false},
		{"leave cancelled", []domain.OrderStatus{domain.OrderCancelled, domain.OrderProcessing}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := testService(statestore.NewMemory())
			order := createOrder(t, svc, "s1")

			var lastErr error
			for _, status := range tc.path {
				_, lastErr = svc.SetStatus(context.Background(), "s1", order.ID, status)
				if lastErr != nil {
					break
				}
			}
			if tc.ok && lastErr != nil {
				t.Fatalf("expected path to succeed, got %v", lastErr)
			}
			if !tc.ok && lastErr != domain.ErrInvalidTransition {
				t.Fatalf("expected ErrInvalidTransition, got %v", lastErr)
			}
		})
	}
}

func TestRejectedTransitionLeavesOrderUntouched(t *testing.T) {
	svc := testService(statestore.NewMemory())
	order := createOrder(t, svc, "s1")

	if _, err := svc.SetStatus(context.Background(), "s1", order.ID, domain.OrderDelivered); err != domain.ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	got, err := svc.Get(context.Background(), "s1", order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.OrderPending {
		t.Fatalf("status changed despite rejection: %s", got.Status)
	}
}

func TestSetStatusUnknownValueRejected(t *testing.T) {
	svc := testService(statestore.NewMemory())
	order := createOrder(t, svc, "s1")

	if _, err := svc.SetStatus(context.Background(), "s1", order.ID, "returned"); err != domain.ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestListAllSpansSessionsAndSkipsCorruptLogs(t *testing.T) {
	store := statestore.NewMemory()
	svc := testService(store)

	a := createOrder(t, svc, "s1")
	b := createOrder(t, svc, "s2")
	store.Put("s3", "orders", []byte(`{"orders": 42}`))

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}
	seen := map[string]string{}
	for _, so := range all {
		seen[so.Order.ID] = so.SessionID
	}
	if seen[a.ID] != "s1" || seen[b.ID] != "s2" {
		t.Fatalf("unexpected session attribution %+v", seen)
	}
}

func TestSetStatusByIDFindsOwningSession(t *testing.T) {
	svc := testService(statestore.NewMemory())
	createOrder(t, svc, "s1")
	target := createOrder(t, svc, "s2")

	updated, err := svc.SetStatusByID(context.Background(), target.ID, domain.OrderProcessing)
	if err != nil {
		t.Fatalf("set status by id: %v", err)
	}
	if updated.Status != domain.OrderProcessing {
		t.Fatalf("expected processing, got %s", updated.Status)
	}

	got, err := svc.Get(context.Background(), "s2", target.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.OrderProcessing {
		t.Fatalf("status not persisted: %s", got.Status)
	}
}

func TestClearAllWipesEverySession(t *testing.T) {
	svc := testService(statestore.NewMemory())
	createOrder(t, svc, "s1")
	createOrder(t, svc, "s2")

	if err := svc.ClearAll(context.Background()); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no orders, got %d", len(all))
	}
}
