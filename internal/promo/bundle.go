package promo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/backend-kasir/internal/catalog"
)

// BundleOffer discounts a fixed set of products bought together. Items maps
// each member product to the quantity the bundle requires.
type BundleOffer struct {
	Items           map[catalog.Product]float64
	DiscountPercent float64
}

// CanApply reports whether every member product is present in the pool with
// at least the required remaining quantity.
func (b BundleOffer) CanApply(pool Pool) bool {
	if len(b.Items) == 0 {
		return false
	}
	for product, required := range b.Items {
		if pool.Quantity(product) < required {
			return false
		}
	}
	return true
}

// DiscountAmount is the fixed saving the bundle yields: the catalog value of
// the required quantities scaled by the discount percentage. It does not
// depend on how much of the pool exists beyond the requirement.
func (b BundleOffer) DiscountAmount(prices Catalog) (float64, error) {
	var total float64
	for product, required := range b.Items {
		unitPrice, err := prices.UnitPrice(product)
		if err != nil {
			return 0, fmt.Errorf("bundle member %q: %w", product.Name, err)
		}
		total += unitPrice * required
	}
	return total * b.DiscountPercent / 100, nil
}

// Consume decrements each member's pool entry by its required quantity. An
// entry may end up at or below zero; later applicability checks treat that
// the same as absence.
func (b BundleOffer) Consume(pool Pool) {
	for product, required := range b.Items {
		pool.Consume(product, required)
	}
}

// Description builds a stable label from the member names sorted
// lexicographically, so the text does not depend on map iteration order.
func (b BundleOffer) Description() string {
	names := make([]string, 0, len(b.Items))
	for product := range b.Items {
		names = append(names, product.Name)
	}
	sort.Strings(names)
	return fmt.Sprintf("bundle (%s)", strings.Join(names, " + "))
}
