package dashboard

import "lokamart-be/internal/product"

type Image struct {
	Name string `json:"imageName"`
	URL  string `json:"imageUrl"`
}

// Data is the dashboard payload: promotional images plus active products
// running low on stock.
type Data struct {
	DashboardImages     []Image           `json:"dashboardImages,omitempty"`
	FastSellingProducts []product.Product `json:"fastSellingProducts,omitempty"`
}
