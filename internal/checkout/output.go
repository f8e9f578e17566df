package checkout

import (
	"strings"

	"github.com/noah-isme/backend-kasir/internal/receipt"
)

// LineOutput is one priced basket line on the response.
type LineOutput struct {
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// DiscountOutput is one applied discount on the response. Product is empty
// for bundle discounts, which are not tied to a single product.
type DiscountOutput struct {
	Product     string  `json:"product,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Output is the serialized receipt returned by quote and checkout.
type Output struct {
	ReceiptID     string           `json:"receipt_id"`
	Items         []LineOutput     `json:"items"`
	Discounts     []DiscountOutput `json:"discounts"`
	Total         float64          `json:"total"`
	LoyaltyEarned int              `json:"loyalty_points_earned,omitempty"`
	Printed       string           `json:"printed"`
}

func outputFrom(r *receipt.Receipt, p receipt.Printer) Output {
	out := Output{
		ReceiptID:     r.ID,
		Items:         make([]LineOutput, 0, len(r.Items)),
		Discounts:     make([]DiscountOutput, 0, len(r.Discounts)),
		Total:         r.Total(),
		LoyaltyEarned: r.LoyaltyPoints,
	}
	for _, item := range r.Items {
		out.Items = append(out.Items, LineOutput{
			Name:       item.Product.Name,
			Unit:       string(item.Product.Unit),
			Quantity:   item.Quantity,
			UnitPrice:  item.Price,
			TotalPrice: item.TotalPrice,
		})
	}
	for _, d := range r.Discounts {
		do := DiscountOutput{Description: d.Description, Amount: d.Amount}
		if d.Product != nil {
			do.Product = d.Product.Name
		}
		out.Discounts = append(out.Discounts, do)
	}
	out.Printed = strings.TrimRight(p.Print(r), "\n")
	return out
}
