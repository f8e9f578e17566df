package promo

import (
	"time"

	"github.com/noah-isme/backend-kasir/internal/catalog"
)

// Coupon is a time-bounded, uniquely coded instance of an offer formula
// scoped to one basket. Code uniqueness within a basket is enforced at
// registration time (first registration wins); the engine also guards
// against duplicate codes when handed a raw list.
type Coupon struct {
	Product   catalog.Product
	Code      string
	StartDate time.Time
	EndDate   time.Time
	Type      OfferType
	Amount    float64
	Terms     *CouponTerms
}

// ValidOn reports whether date falls inside the inclusive validity window.
// A window whose end precedes its start is structurally fine; the coupon
// simply never applies.
func (c Coupon) ValidOn(date time.Time) bool {
	return !date.Before(c.StartDate) && !date.After(c.EndDate)
}

// offer materialises the underlying formula carried by the coupon.
func (c Coupon) offer() Offer {
	return Offer{Type: c.Type, Product: c.Product, Amount: c.Amount, Terms: c.Terms}
}
