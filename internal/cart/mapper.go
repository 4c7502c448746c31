package cart

import "lokamart-be/internal/identity"

// EffectivePrice is the sale price when positive, the base price otherwise.
func EffectivePrice(item Item) float64 {
	if item.SalePrice > 0 {
		return item.SalePrice
	}
	return item.BasePrice
}

// Subtotal recomputes the cart total from its ledger rows, clamped at zero.
func Subtotal(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * EffectivePrice(item)
	}
	if total < 0 {
		return 0
	}
	return total
}

// EmptyView is the well-formed representation of "no active cart".
func EmptyView(ownerType identity.OwnerType) *View {
	return &View{
		CartID:    nil,
		SubTotal:  0,
		CartItems: []Item{},
		OwnerType: ownerType,
	}
}

func NewView(cartID uint, items []Item, ownerType identity.OwnerType) *View {
	if items == nil {
		items = []Item{}
	}
	return &View{
		CartID:    &cartID,
		SubTotal:  Subtotal(items),
		CartItems: items,
		OwnerType: ownerType,
	}
}
