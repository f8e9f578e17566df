package promo

import (
	"fmt"
	"time"

	"github.com/noah-isme/backend-kasir/internal/catalog"
)

// Catalog resolves unit prices during discount resolution. Implementations
// must fail for unknown products rather than defaulting.
type Catalog interface {
	UnitPrice(product catalog.Product) (float64, error)
}

// PriceMap is an in-memory Catalog, handy for pre-fetched prices and tests.
type PriceMap map[catalog.Product]float64

// UnitPrice implements Catalog.
func (m PriceMap) UnitPrice(product catalog.Product) (float64, error) {
	price, ok := m[product]
	if !ok {
		return 0, fmt.Errorf("price for %q: %w", product.Name, catalog.ErrProductNotFound)
	}
	return price, nil
}

// Engine resolves the discounts applicable to a basket snapshot. It runs
// three ordered phases over a private quantity pool: bundle selection rounds,
// coupon application, then standing per-product offers. An Engine value holds
// read-only configuration and may serve many Resolve calls, but each call
// operates on its own pool copy so concurrent checkouts never share state.
type Engine struct {
	Catalog Catalog
	Offers  map[catalog.Product]Offer
	Bundles []BundleOffer
}

// Resolve computes the ordered discount list for the given quantities,
// registered coupons, and checkout date. The result preserves phase order:
// bundle discounts in application order, then coupon discounts in
// registration order, then standing-offer discounts in pool iteration order.
// Callers needing a particular presentation order must sort explicitly.
func (e *Engine) Resolve(quantities map[catalog.Product]float64, coupons []Coupon, date time.Time) ([]Discount, error) {
	pool := NewPool(quantities)

	discounts, err := e.applyBundles(pool)
	if err != nil {
		return nil, err
	}
	couponDiscounts, err := e.applyCoupons(pool, coupons, date)
	if err != nil {
		return nil, err
	}
	discounts = append(discounts, couponDiscounts...)

	standing, err := e.applyStandingOffers(pool)
	if err != nil {
		return nil, err
	}
	return append(discounts, standing...), nil
}

// applyBundles runs greedy selection rounds: each round scans all bundles,
// picks the applicable one with the strictly greatest saving (first
// registered wins ties, since only a strict comparison updates the best),
// consumes its quantities, and repeats until nothing applies. The greedy,
// non-backtracking choice can miss a larger combined saving when bundles
// overlap; that behaviour is intentional and covered by tests.
func (e *Engine) applyBundles(pool Pool) ([]Discount, error) {
	var out []Discount
	for {
		var best *BundleOffer
		bestSavings := 0.0
		for i := range e.Bundles {
			bundle := e.Bundles[i]
			if !bundle.CanApply(pool) {
				continue
			}
			savings, err := bundle.DiscountAmount(e.Catalog)
			if err != nil {
				return nil, err
			}
			if savings > bestSavings {
				bestSavings = savings
				best = &e.Bundles[i]
			}
		}
		if best == nil {
			return out, nil
		}
		best.Consume(pool)
		out = append(out, Discount{Description: best.Description(), Amount: -bestSavings})
	}
}

// applyCoupons walks coupons in registration order over the post-bundle
// pool. A fired coupon-discount coupon consumes only the items within its
// addressable band plus the threshold items establishing eligibility; a
// coupon carrying any other offer type claims the whole remaining line.
func (e *Engine) applyCoupons(pool Pool, coupons []Coupon, date time.Time) ([]Discount, error) {
	var out []Discount
	seen := make(map[string]struct{}, len(coupons))
	for _, coupon := range coupons {
		if _, dup := seen[coupon.Code]; dup {
			continue
		}
		seen[coupon.Code] = struct{}{}

		if !coupon.ValidOn(date) {
			continue
		}
		quantity := pool.Quantity(coupon.Product)
		if quantity <= 0 {
			continue
		}
		unitPrice, err := e.Catalog.UnitPrice(coupon.Product)
		if err != nil {
			return nil, err
		}
		discount, err := coupon.offer().CalculateDiscount(quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		if discount == nil {
			continue
		}
		out = append(out, *discount)

		consumed := quantity
		if coupon.Type == OfferCouponDiscount {
			if band := float64(coupon.Terms.Threshold + coupon.Terms.Limit); band < consumed {
				consumed = band
			}
		}
		pool.Consume(coupon.Product, consumed)
		if pool.Quantity(coupon.Product) <= 0 {
			pool.Remove(coupon.Product)
		}
	}
	return out, nil
}

// applyStandingOffers is the terminal phase: whatever quantity survived the
// bundle and coupon phases is priced against the standing per-product offers.
// The pool is not mutated further.
func (e *Engine) applyStandingOffers(pool Pool) ([]Discount, error) {
	var out []Discount
	for product, quantity := range pool {
		if quantity <= 0 {
			continue
		}
		offer, ok := e.Offers[product]
		if !ok {
			continue
		}
		unitPrice, err := e.Catalog.UnitPrice(product)
		if err != nil {
			return nil, err
		}
		discount, err := offer.CalculateDiscount(quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		if discount != nil {
			out = append(out, *discount)
		}
	}
	return out, nil
}
