package domain

// WishlistItem is a saved product. Membership is binary, keyed by product id.
type WishlistItem struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Thumbnail      string `json:"thumbnail,omitempty"`
}

// WishlistState is the persisted wishlist blob.
type WishlistState struct {
	Items []WishlistItem `json:"items"`
}

// EmptyWishlist returns the default wishlist state.
func EmptyWishlist() WishlistState {
	return WishlistState{Items: []WishlistItem{}}
}
