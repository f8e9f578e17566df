package promo

import "github.com/noah-isme/backend-kasir/internal/catalog"

// Pool is the mutable working copy of remaining product quantities threaded
// through the resolution phases. It is created fresh per Resolve call and is
// never shared across calls. An absent entry and an entry at or below zero
// are interchangeable for applicability checks.
type Pool map[catalog.Product]float64

// NewPool copies the caller's quantity mapping so resolution never mutates
// caller-owned state.
func NewPool(quantities map[catalog.Product]float64) Pool {
	pool := make(Pool, len(quantities))
	for product, qty := range quantities {
		pool[product] = qty
	}
	return pool
}

// Quantity returns the remaining quantity for a product, zero when absent.
func (p Pool) Quantity(product catalog.Product) float64 {
	return p[product]
}

// Consume subtracts qty from the product's remaining quantity. The entry is
// left in place even when driven to zero or below; callers that want the
// entry gone use Remove.
func (p Pool) Consume(product catalog.Product, qty float64) {
	p[product] -= qty
}

// Remove drops the product's entry entirely.
func (p Pool) Remove(product catalog.Product) {
	delete(p, product)
}
