package cart

import (
	"github.com/noah-isme/backend-kasir/internal/catalog"
	"github.com/noah-isme/backend-kasir/internal/promo"
)

// Line is a single scanned basket entry. The same product may appear on
// several lines; Quantities aggregates them.
type Line struct {
	Product  catalog.Product
	Quantity float64
}

// Cart accumulates basket lines and registered coupons for one checkout.
// It is a plain in-memory container: pricing and discount resolution happen
// elsewhere, against a snapshot of its state.
type Cart struct {
	lines      []Line
	quantities map[catalog.Product]float64
	coupons    []promo.Coupon
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{quantities: make(map[catalog.Product]float64)}
}

// AddItem adds a single unit of the product.
func (c *Cart) AddItem(product catalog.Product) {
	c.AddItemQuantity(product, 1)
}

// AddItemQuantity records a basket line and folds the quantity into the
// per-product totals.
func (c *Cart) AddItemQuantity(product catalog.Product, quantity float64) {
	c.lines = append(c.lines, Line{Product: product, Quantity: quantity})
	c.quantities[product] += quantity
}

// AddCoupon registers a coupon. A code already registered on this cart is
// silently ignored: the first registration wins, duplicates are neither
// merged nor replaced.
func (c *Cart) AddCoupon(coupon promo.Coupon) {
	for _, existing := range c.coupons {
		if existing.Code == coupon.Code {
			return
		}
	}
	c.coupons = append(c.coupons, coupon)
}

// Lines returns the scanned lines in scan order.
func (c *Cart) Lines() []Line {
	return c.lines
}

// Quantities returns the aggregated product totals. The engine copies this
// mapping before mutating anything, so handing out the internal map is safe
// for the checkout flow.
func (c *Cart) Quantities() map[catalog.Product]float64 {
	return c.quantities
}

// Coupons returns registered coupons in registration order.
func (c *Cart) Coupons() []promo.Coupon {
	return c.coupons
}
