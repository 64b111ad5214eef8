package domain

import "time"

// TransactionStatus values reported by the payment gateway.
const (
	TransactionSuccess   = "success"
	TransactionPending   = "pending"
	TransactionFailed    = "failed"
	TransactionAbandoned = "abandoned"
)

// TransactionMetadata travels with a transaction through the gateway and
// comes back on verification.
type TransactionMetadata struct {
	OrderID      string `json:"orderId,omitempty"`
	CustomerName string `json:"customerName,omitempty"`
}

// Transaction is the gateway's view of a payment, as returned by the
// verify-by-reference endpoint. Amounts are in the currency's minor unit.
type Transaction struct {
	Reference     string
	Status        string
	AmountCents   int64
	Currency      string
	Channel       string
	CustomerEmail string
	Metadata      TransactionMetadata
	PaidAt        *time.Time
}
