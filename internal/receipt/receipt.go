package receipt

import (
	"github.com/google/uuid"

	"github.com/noah-isme/backend-kasir/internal/catalog"
	"github.com/noah-isme/backend-kasir/internal/promo"
)

// Item is one priced basket line on the receipt.
type Item struct {
	Product    catalog.Product `json:"product"`
	Quantity   float64         `json:"quantity"`
	Price      float64         `json:"price"`
	TotalPrice float64         `json:"total_price"`
}

// Receipt collects priced items, resolved discounts, and loyalty results for
// one checkout. It owns the Discount records the engine produced.
type Receipt struct {
	ID            string           `json:"id"`
	Items         []Item           `json:"items"`
	Discounts     []promo.Discount `json:"discounts"`
	LoyaltyPoints int              `json:"loyalty_points_earned"`
}

// New returns an empty receipt with a fresh identifier.
func New() *Receipt {
	return &Receipt{ID: uuid.NewString()}
}

// AddProduct appends a priced line.
func (r *Receipt) AddProduct(product catalog.Product, quantity, price, totalPrice float64) {
	r.Items = append(r.Items, Item{Product: product, Quantity: quantity, Price: price, TotalPrice: totalPrice})
}

// AddDiscount appends a discount record. Amounts are negative by convention.
func (r *Receipt) AddDiscount(discount promo.Discount) {
	r.Discounts = append(r.Discounts, discount)
}

// AddLoyaltyPoints records points earned by this checkout.
func (r *Receipt) AddLoyaltyPoints(points int) {
	r.LoyaltyPoints += points
}

// Total is the payable amount: item totals plus (negative) discounts.
func (r *Receipt) Total() float64 {
	var total float64
	for _, item := range r.Items {
		total += item.TotalPrice
	}
	for _, discount := range r.Discounts {
		total += discount.Amount
	}
	return total
}
