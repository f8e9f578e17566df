package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/catalog"
	"github.com/noah-isme/backend-kasir/internal/loyalty"
	"github.com/noah-isme/backend-kasir/internal/promo"
)

type fakeCatalog struct {
	entries map[string]catalog.Entry
}

func (f fakeCatalog) Product(_ context.Context, name string) (catalog.Entry, error) {
	entry, ok := f.entries[name]
	if !ok {
		return catalog.Entry{}, catalog.ErrProductNotFound
	}
	return entry, nil
}

type fakePromo struct {
	offers  map[catalog.Product]promo.Offer
	bundles []promo.BundleOffer
	coupons map[string]promo.Coupon
}

func (f fakePromo) StandingOffers(context.Context) (map[catalog.Product]promo.Offer, error) {
	return f.offers, nil
}

func (f fakePromo) BundleOffers(context.Context) ([]promo.BundleOffer, error) {
	return f.bundles, nil
}

func (f fakePromo) CouponsByCode(_ context.Context, codes []string) ([]promo.Coupon, error) {
	var out []promo.Coupon
	for _, code := range codes {
		if coupon, ok := f.coupons[code]; ok {
			out = append(out, coupon)
		}
	}
	return out, nil
}

var (
	toothbrush = catalog.Product{Name: "toothbrush", Unit: catalog.UnitEach}
	toothpaste = catalog.Product{Name: "toothpaste", Unit: catalog.UnitEach}
	chocolate  = catalog.Product{Name: "chocolate", Unit: catalog.UnitEach}
	apples     = catalog.Product{Name: "apples", Unit: catalog.UnitKilo}
	orange     = catalog.Product{Name: "orange juice", Unit: catalog.UnitEach}
	detergent  = catalog.Product{Name: "detergent", Unit: catalog.UnitEach}
)

func storeFixture() fakeCatalog {
	return fakeCatalog{entries: map[string]catalog.Entry{
		"toothbrush":   {Product: toothbrush, Price: 0.99},
		"toothpaste":   {Product: toothpaste, Price: 1.79},
		"chocolate":    {Product: chocolate, Price: 5.00},
		"apples":       {Product: apples, Price: 1.99},
		"orange juice": {Product: orange, Price: 2.00},
		"detergent":    {Product: detergent, Price: 9.90},
	}}
}

func newService(p fakePromo) *Service {
	return &Service{
		Catalog: storeFixture(),
		Promo:   p,
		Loyalty: loyalty.Service{},
		Now:     func() time.Time { return time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC) },
	}
}

func TestCheckoutPlainBasket(t *testing.T) {
	svc := newService(fakePromo{})

	rcpt, err := svc.Checkout(context.Background(), Input{
		Items: []ItemInput{{Name: "apples", Quantity: 2}},
	})
	require.NoError(t, err)
	require.Empty(t, rcpt.Discounts)
	require.InDelta(t, 3.98, rcpt.Total(), 1e-9)
	require.Equal(t, 3, rcpt.LoyaltyPoints)
}

func TestCheckoutThreeForTwo(t *testing.T) {
	offer, err := promo.NewOffer(promo.OfferThreeForTwo, toothbrush, 0)
	require.NoError(t, err)
	svc := newService(fakePromo{offers: map[catalog.Product]promo.Offer{toothbrush: offer}})

	rcpt, err := svc.Checkout(context.Background(), Input{
		Items: []ItemInput{{Name: "toothbrush", Quantity: 3}},
	})
	require.NoError(t, err)
	require.Len(t, rcpt.Discounts, 1)
	require.InDelta(t, -0.99, rcpt.Discounts[0].Amount, 1e-9)
	require.InDelta(t, 1.98, rcpt.Total(), 1e-9)
}

func TestCheckoutBundle(t *testing.T) {
	svc := newService(fakePromo{
		bundles: []promo.BundleOffer{{
			Items:           map[catalog.Product]float64{chocolate: 1, toothpaste: 1},
			DiscountPercent: 10,
		}},
	})

	rcpt, err := svc.Checkout(context.Background(), Input{
		Items: []ItemInput{
			{Name: "chocolate", Quantity: 1},
			{Name: "toothpaste", Quantity: 1},
			{Name: "toothbrush", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, rcpt.Discounts, 1)
	require.Nil(t, rcpt.Discounts[0].Product)
	require.InDelta(t, -0.679, rcpt.Discounts[0].Amount, 1e-9)
	require.InDelta(t, 7.101, rcpt.Total(), 1e-9)
}

func TestCheckoutCouponWindowUsesCalendarDate(t *testing.T) {
	// The clock reads mid-afternoon on the coupon's last valid day; validity
	// is date-granular, so the coupon still applies.
	svc := newService(fakePromo{coupons: map[string]promo.Coupon{
		"SUMMER50": {
			Product:   orange,
			Code:      "SUMMER50",
			StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			Type:      promo.OfferCouponDiscount,
			Terms:     &promo.CouponTerms{Threshold: 6, Limit: 6, Percent: 50},
		},
	}})

	rcpt, err := svc.Checkout(context.Background(), Input{
		Items:       []ItemInput{{Name: "orange juice", Quantity: 12}},
		CouponCodes: []string{"SUMMER50"},
	})
	require.NoError(t, err)
	require.Len(t, rcpt.Discounts, 1)
	require.InDelta(t, -6.00, rcpt.Discounts[0].Amount, 1e-9)
	require.InDelta(t, 18.00, rcpt.Total(), 1e-9)
}

func TestCheckoutExpiredCouponIgnored(t *testing.T) {
	svc := newService(fakePromo{coupons: map[string]promo.Coupon{
		"OLD": {
			Product:   orange,
			Code:      "OLD",
			StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			Type:      promo.OfferCouponDiscount,
			Terms:     &promo.CouponTerms{Threshold: 6, Limit: 6, Percent: 50},
		},
	}})

	rcpt, err := svc.Checkout(context.Background(), Input{
		Items:       []ItemInput{{Name: "orange juice", Quantity: 12}},
		CouponCodes: []string{"OLD"},
	})
	require.NoError(t, err)
	require.Empty(t, rcpt.Discounts)
	require.InDelta(t, 24.00, rcpt.Total(), 1e-9)
}

func TestCheckoutRedeemsLoyaltyPoints(t *testing.T) {
	svc := newService(fakePromo{})

	rcpt, err := svc.Checkout(context.Background(), Input{
		Items:         []ItemInput{{Name: "detergent", Quantity: 2}},
		LoyaltyPoints: 500,
	})
	require.NoError(t, err)
	require.Len(t, rcpt.Discounts, 1)
	require.Equal(t, "Loyalty Discount", rcpt.Discounts[0].Description)
	require.InDelta(t, -5.00, rcpt.Discounts[0].Amount, 1e-9)
	require.InDelta(t, 14.80, rcpt.Total(), 1e-9)
	require.Equal(t, 14, rcpt.LoyaltyPoints)
}

func TestCheckoutLoyaltyRedemptionCappedAtTotal(t *testing.T) {
	svc := newService(fakePromo{})

	rcpt, err := svc.Checkout(context.Background(), Input{
		Items:         []ItemInput{{Name: "toothbrush", Quantity: 1}},
		LoyaltyPoints: 100000,
	})
	require.NoError(t, err)
	require.InDelta(t, 0, rcpt.Total(), 1e-9)
	require.Equal(t, 0, rcpt.LoyaltyPoints)
}

func TestQuoteSkipsLoyaltyEffects(t *testing.T) {
	svc := newService(fakePromo{})

	rcpt, err := svc.Quote(context.Background(), Input{
		Items:         []ItemInput{{Name: "detergent", Quantity: 2}},
		LoyaltyPoints: 500,
	})
	require.NoError(t, err)
	require.Empty(t, rcpt.Discounts)
	require.InDelta(t, 19.80, rcpt.Total(), 1e-9)
	require.Equal(t, 0, rcpt.LoyaltyPoints)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	svc := newService(fakePromo{})

	_, err := svc.Checkout(context.Background(), Input{
		Items: []ItemInput{{Name: "caviar", Quantity: 1}},
	})
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
}
