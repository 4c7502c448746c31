package product

// Product is the catalog read model: the active-product row joined with
// its category, primary image and inventory.
type Product struct {
	ID               uint    `json:"productId"`
	Name             string  `json:"productName"`
	BasePrice        float64 `json:"productBasePrice"`
	SalePrice        float64 `json:"productSalePrice"`
	Description      string  `json:"productDescription"`
	Category         string  `json:"productCategory"`
	ImageURL         *string `json:"productImageUrl"`
	ImageAltText     *string `json:"productImageAltText"`
	IsStockAvailable bool    `json:"isStockAvailable"`
	LowStockAlert    *int    `json:"lowStockAlert"`
}

// Snapshot is the pricing/inventory view consumed by the cart core. It is
// read-only: nothing in this package or the cart ever mutates it.
type Snapshot struct {
	ProductID         uint    `json:"productId"`
	BasePrice         float64 `json:"basePrice"`
	SalePrice         float64 `json:"salePrice"`
	AvailableQuantity int     `json:"availableQuantity"`
}

// EffectivePrice is the sale price when positive, the base price otherwise.
func (s Snapshot) EffectivePrice() float64 {
	if s.SalePrice > 0 {
		return s.SalePrice
	}
	return s.BasePrice
}
