package domain

// CartItem is a single product line in a cart. At most one line exists per
// product id; merging happens on add.
type CartItem struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	Thumbnail      string `json:"thumbnail,omitempty"`
	Description    string `json:"description,omitempty"`
}

// CartState is the persisted cart blob. Totals are derived from Items and
// recomputed on every mutation rather than maintained incrementally.
type CartState struct {
	Items         []CartItem `json:"items"`
	TotalQuantity int        `json:"totalQuantity"`
	TotalCents    int64      `json:"totalCents"`
	IsOpen        bool       `json:"isOpen"`
}

// EmptyCart returns the default cart state used when nothing is persisted
// or the persisted blob cannot be decoded.
func EmptyCart() CartState {
	return CartState{Items: []CartItem{}}
}
