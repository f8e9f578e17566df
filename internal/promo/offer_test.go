package promo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/catalog"
)

var toothbrush = catalog.Product{Name: "toothbrush", Unit: catalog.UnitEach}

func TestNewOfferRejectsUnknownType(t *testing.T) {
	_, err := NewOffer("BUY_ONE_GET_ONE", toothbrush, 0)
	require.ErrorIs(t, err, ErrUnknownOfferType)
}

func TestNewOfferRejectsCouponTypeWithoutTerms(t *testing.T) {
	_, err := NewOffer(OfferCouponDiscount, toothbrush, 0)
	require.ErrorIs(t, err, ErrUnknownOfferType)
}

func TestThreeForTwo(t *testing.T) {
	offer, err := NewOffer(OfferThreeForTwo, toothbrush, 0)
	require.NoError(t, err)

	tests := []struct {
		name     string
		quantity float64
		want     float64
		none     bool
	}{
		{name: "below threshold", quantity: 2, none: true},
		{name: "fractional below threshold", quantity: 2.9, none: true},
		{name: "exactly three", quantity: 3, want: -0.99},
		{name: "one excess item", quantity: 4, want: -0.99},
		{name: "two full groups", quantity: 7, want: -1.98},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := offer.CalculateDiscount(tc.quantity, 0.99)
			require.NoError(t, err)
			if tc.none {
				require.Nil(t, d)
				return
			}
			require.NotNil(t, d)
			require.InDelta(t, tc.want, d.Amount, 1e-9)
			require.Equal(t, "3 for 2", d.Description)
			require.Equal(t, toothbrush, *d.Product)
		})
	}
}

func TestThreeForTwoPayableStrictlyBelowFullPrice(t *testing.T) {
	offer, err := NewOffer(OfferThreeForTwo, toothbrush, 0)
	require.NoError(t, err)
	for _, qty := range []float64{3, 4, 5, 6, 9, 13} {
		d, err := offer.CalculateDiscount(qty, 0.99)
		require.NoError(t, err)
		require.NotNil(t, d)
		require.Negative(t, d.Amount)
	}
}

func TestTenPercentDiscount(t *testing.T) {
	offer, err := NewOffer(OfferTenPercentDiscount, toothbrush, 10)
	require.NoError(t, err)

	d, err := offer.CalculateDiscount(1, 0.99)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.InDelta(t, -0.099, d.Amount, 1e-9)
	require.Equal(t, "10% off", d.Description)

	// Percent offers apply regardless of quantity, including fractions.
	d, err = offer.CalculateDiscount(0.5, 1.99)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.InDelta(t, -0.0995, d.Amount, 1e-9)
}

func TestTwoForAmount(t *testing.T) {
	offer, err := NewOffer(OfferTwoForAmount, toothbrush, 1.50)
	require.NoError(t, err)

	d, err := offer.CalculateDiscount(1, 0.99)
	require.NoError(t, err)
	require.Nil(t, d)

	d, err = offer.CalculateDiscount(2, 0.99)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.InDelta(t, -0.48, d.Amount, 1e-9)
	require.Equal(t, "2 for 1.5", d.Description)

	// Odd remainder pays full unit price.
	d, err = offer.CalculateDiscount(3, 0.99)
	require.NoError(t, err)
	require.InDelta(t, -0.48, d.Amount, 1e-9)
}

func TestGroupOffersExactMultiplePaysGroupPrice(t *testing.T) {
	two, err := NewOffer(OfferTwoForAmount, toothbrush, 1.50)
	require.NoError(t, err)
	five, err := NewOffer(OfferFiveForAmount, toothbrush, 4.00)
	require.NoError(t, err)

	// At an exact multiple of the group size the payable amount is
	// groups * fixed amount, so the discount equals full price minus that.
	d, err := two.CalculateDiscount(4, 0.99)
	require.NoError(t, err)
	require.InDelta(t, -(4*0.99 - 2*1.50), d.Amount, 1e-9)

	d, err = five.CalculateDiscount(10, 0.99)
	require.NoError(t, err)
	require.InDelta(t, -(10*0.99 - 2*4.00), d.Amount, 1e-9)
}

func TestFiveForAmount(t *testing.T) {
	offer, err := NewOffer(OfferFiveForAmount, toothbrush, 4.00)
	require.NoError(t, err)

	d, err := offer.CalculateDiscount(4, 0.99)
	require.NoError(t, err)
	require.Nil(t, d)

	d, err = offer.CalculateDiscount(5, 0.99)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.InDelta(t, -0.95, d.Amount, 1e-9)

	d, err = offer.CalculateDiscount(6, 0.99)
	require.NoError(t, err)
	require.InDelta(t, -(6*0.99 - (4.00 + 0.99)), d.Amount, 1e-9)
}

func TestCouponDiscountBand(t *testing.T) {
	offer := NewCouponOffer(toothbrush, CouponTerms{Threshold: 6, Limit: 6, Percent: 50})

	d, err := offer.CalculateDiscount(6, 2.00)
	require.NoError(t, err)
	require.Nil(t, d, "threshold is strict")

	d, err = offer.CalculateDiscount(12, 2.00)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.InDelta(t, -6.00, d.Amount, 1e-9)
	require.Equal(t, "coupon 50% off", d.Description)

	// Never discounts more than Limit units however large the quantity.
	d, err = offer.CalculateDiscount(100, 2.00)
	require.NoError(t, err)
	require.InDelta(t, -6.00, d.Amount, 1e-9)
}

func TestCouponDiscountMissingTermsFails(t *testing.T) {
	offer := Offer{Type: OfferCouponDiscount, Product: toothbrush}
	_, err := offer.CalculateDiscount(12, 2.00)
	require.ErrorIs(t, err, ErrMissingCouponTerms)
}

func TestZeroValueDiscountIsNotEmitted(t *testing.T) {
	offer, err := NewOffer(OfferTenPercentDiscount, toothbrush, 0)
	require.NoError(t, err)
	d, err := offer.CalculateDiscount(3, 0.99)
	require.NoError(t, err)
	require.Nil(t, d)
}
