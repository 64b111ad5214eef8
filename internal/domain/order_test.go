package domain

import (
	"strings"
	"testing"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPending, OrderProcessing, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderShipped, false},
		{OrderPending, OrderDelivered, false},
		{OrderProcessing, OrderShipped, true},
		{OrderProcessing, OrderCancelled, true},
		{OrderProcessing, OrderPending, false},
		{OrderShipped, OrderDelivered, true},
		{OrderShipped, OrderCancelled, true},
		{OrderShipped, OrderProcessing, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderDelivered, OrderProcessing, false},
		{OrderCancelled, OrderPending, false},
		{OrderCancelled, OrderProcessing, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		if !ValidOrderStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	if ValidOrderStatus("returned") || ValidOrderStatus("") {
		t.Errorf("unknown statuses must be invalid")
	}
}

func TestNewOrderIDDistinctWithinSameMillisecond(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := NewOrderID()
		if !strings.HasPrefix(id, "ORD-") {
			t.Fatalf("unexpected id format %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate order id %q", id)
		}
		seen[id] = true
	}
}
