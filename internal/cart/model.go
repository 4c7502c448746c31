package cart

import (
	"time"

	"lokamart-be/internal/identity"
)

// Cart is the persisted cart row. Exactly one of UserID/SessionID is set,
// and at most one non-deleted cart exists per owner key.
type Cart struct {
	ID          uint
	UserID      *uint
	SessionID   *string
	TotalAmount float64
	CreatedAt   time.Time
	ExpiresAt   *time.Time
}

// Item is a cart line joined with its product snapshot, as exposed to
// clients.
type Item struct {
	CartItemID uint    `json:"cartItemId"`
	ProductID  uint    `json:"productId"`
	Name       string  `json:"itemName"`
	BasePrice  float64 `json:"itemPrice"`
	SalePrice  float64 `json:"itemSalePrice"`
	ImageURL   *string `json:"itemImageUrl"`
	Quantity   int     `json:"itemQuantity"`
	InStock    bool    `json:"inStock"`
}

// View is the externally visible cart representation. CartID is nil when
// the owner has no active cart; that is a normal state, not an error.
type View struct {
	CartID    *uint              `json:"cartId"`
	SubTotal  float64            `json:"subTotal"`
	CartItems []Item             `json:"cartItems"`
	OwnerType identity.OwnerType `json:"ownerType"`
}

// AddResult reports a successful ledger mutation.
type AddResult struct {
	CartID     uint
	CartItemID uint
	Quantity   int
	Total      float64
}

type AddToCartParams struct {
	Owner     identity.CartOwner
	ProductID uint
	Quantity  int
}
