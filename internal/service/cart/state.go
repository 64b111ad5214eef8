package cart

import "shopfront/internal/domain"

// Pure state transitions. Each function takes the current state and returns
// the next one; persistence happens separately in the Service so transitions
// stay unit-testable without a storage fake.

func addItem(st domain.CartState, item domain.CartItem, quantity int) domain.CartState {
	if quantity < 1 {
		quantity = 1
	}
	merged := false
	items := make([]domain.CartItem, 0, len(st.Items)+1)
	for _, existing := range st.Items {
		if existing.ID == item.ID {
			existing.Quantity += quantity
			merged = true
		}
		items = append(items, existing)
	}
	if !merged {
		item.Quantity = quantity
		items = append(items, item)
	}
	st.Items = items
	st.IsOpen = true
	return recompute(st)
}

func removeItem(st domain.CartState, id int64) domain.CartState {
	items := make([]domain.CartItem, 0, len(st.Items))
	for _, existing := range st.Items {
		if existing.ID != id {
			items = append(items, existing)
		}
	}
	st.Items = items
	return recompute(st)
}

// setQuantity adjusts a line's quantity. A quantity of zero or less removes
// the line, matching what shoppers expect from a stepper hitting zero.
func setQuantity(st domain.CartState, id int64, quantity int) domain.CartState {
	if quantity <= 0 {
		return removeItem(st, id)
	}
	items := make([]domain.CartItem, 0, len(st.Items))
	for _, existing := range st.Items {
		if existing.ID == id {
			existing.Quantity = quantity
		}
		items = append(items, existing)
	}
	st.Items = items
	return recompute(st)
}

func setOpen(st domain.CartState, open bool) domain.CartState {
	st.IsOpen = open
	return st
}

// recompute derives the denormalized totals from the item set. Full
// recomputation on every transition keeps the totals from drifting.
func recompute(st domain.CartState) domain.CartState {
	st.TotalQuantity = 0
	st.TotalCents = 0
	for _, item := range st.Items {
		st.TotalQuantity += item.Quantity
		st.TotalCents += int64(item.Quantity) * item.UnitPriceCents
	}
	return st
}
