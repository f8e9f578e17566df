package promo

import "github.com/noah-isme/backend-kasir/internal/catalog"

// Discount is a single reduction applied to the receipt total. Amount is
// negative by convention. Product is nil for bundle and loyalty discounts
// that are not attributable to a single line.
type Discount struct {
	Product     *catalog.Product `json:"product,omitempty"`
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
}
