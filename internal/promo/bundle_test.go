package promo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/catalog"
)

var (
	toothpaste = catalog.Product{Name: "toothpaste", Unit: catalog.UnitEach}
	chocolate  = catalog.Product{Name: "chocolate", Unit: catalog.UnitEach}
)

func TestBundleCanApply(t *testing.T) {
	bundle := BundleOffer{
		Items:           map[catalog.Product]float64{toothbrush: 1, toothpaste: 1},
		DiscountPercent: 10,
	}

	require.False(t, bundle.CanApply(Pool{toothbrush: 1}))
	require.True(t, bundle.CanApply(Pool{toothbrush: 1, toothpaste: 1}))
	require.True(t, bundle.CanApply(Pool{toothbrush: 5, toothpaste: 2}))
	require.False(t, bundle.CanApply(Pool{toothbrush: 0.5, toothpaste: 1}))

	// Entries at or below zero behave like absence.
	require.False(t, bundle.CanApply(Pool{toothbrush: 0, toothpaste: 1}))
	require.False(t, bundle.CanApply(Pool{toothbrush: -1, toothpaste: 1}))

	require.False(t, BundleOffer{DiscountPercent: 10}.CanApply(Pool{toothbrush: 1}))
}

func TestBundleDiscountAmount(t *testing.T) {
	prices := PriceMap{chocolate: 5.00, toothpaste: 1.79}
	bundle := BundleOffer{
		Items:           map[catalog.Product]float64{chocolate: 1, toothpaste: 1},
		DiscountPercent: 10,
	}

	amount, err := bundle.DiscountAmount(prices)
	require.NoError(t, err)
	require.InDelta(t, 0.679, amount, 1e-9)

	// Fixed amount regardless of surplus pool quantity, by construction.
	_, err = BundleOffer{
		Items:           map[catalog.Product]float64{toothbrush: 1},
		DiscountPercent: 10,
	}.DiscountAmount(prices)
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestBundleConsume(t *testing.T) {
	bundle := BundleOffer{
		Items:           map[catalog.Product]float64{toothbrush: 1, toothpaste: 2},
		DiscountPercent: 10,
	}
	pool := Pool{toothbrush: 1, toothpaste: 3}

	bundle.Consume(pool)
	require.InDelta(t, 0, pool.Quantity(toothbrush), 1e-9)
	require.InDelta(t, 1, pool.Quantity(toothpaste), 1e-9)
	require.False(t, bundle.CanApply(pool))
}

func TestBundleDescriptionSortsMembers(t *testing.T) {
	bundle := BundleOffer{
		Items: map[catalog.Product]float64{
			toothpaste: 1,
			chocolate:  1,
			toothbrush: 1,
		},
		DiscountPercent: 10,
	}
	require.Equal(t, "bundle (chocolate + toothbrush + toothpaste)", bundle.Description())
}
