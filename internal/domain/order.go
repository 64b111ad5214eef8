package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// OrderStatus values. Normal operation moves forward through
// pending -> processing -> shipped -> delivered; cancelled is reachable
// from any non-terminal status.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known status value.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to
// another. Terminal statuses (delivered, cancelled) accept no transitions.
func CanTransition(from, to OrderStatus) bool {
	switch from {
	case OrderPending:
		return to == OrderProcessing || to == OrderCancelled
	case OrderProcessing:
		return to == OrderShipped || to == OrderCancelled
	case OrderShipped:
		return to == OrderDelivered || to == OrderCancelled
	default:
		return false
	}
}

// OrderItem is a snapshot of a cart line at purchase time. It is never
// updated after the order is created.
type OrderItem struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	Thumbnail      string `json:"thumbnail,omitempty"`
}

// ShippingDetails captures the delivery address collected at checkout.
type ShippingDetails struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	Country       string `json:"country"`
	PostalCode    string `json:"postalCode"`
}

// Order is a placed order. Status is the only mutable field.
type Order struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"createdAt"`
	Status        OrderStatus     `json:"status"`
	Items         []OrderItem     `json:"items"`
	TotalCents    int64           `json:"totalCents"`
	Shipping      ShippingDetails `json:"shipping"`
	PaymentMethod string          `json:"paymentMethod"`
	UserID        string          `json:"userId,omitempty"`
}

// OrdersState is the persisted order log, newest first.
type OrdersState struct {
	Orders []Order `json:"orders"`
}

// EmptyOrders returns the default order log.
func EmptyOrders() OrdersState {
	return OrdersState{Orders: []Order{}}
}

// NewOrderID produces a human-readable order id of the form
// ORD-<unix ms>-<random>. The random suffix keeps ids distinct even for
// calls within the same millisecond.
func NewOrderID() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), randomSuffix(3))
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return strings.ToUpper(hex.EncodeToString(b))
}
