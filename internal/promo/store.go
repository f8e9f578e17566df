package promo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/backend-kasir/internal/catalog"
)

// Store loads standing promotional configuration from Postgres. Offers,
// bundles, and coupons are long-lived configuration owned outside the
// resolution call; the engine only ever reads what Store returns.
type Store struct {
	Pool *pgxpool.Pool
}

// StandingOffers returns the per-product offers keyed by product.
func (s *Store) StandingOffers(ctx context.Context) (map[catalog.Product]Offer, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT o.product_name, p.unit, o.offer_type, o.amount, o.threshold, o.item_limit, o.percent
		FROM special_offers o
		JOIN products p ON p.name = o.product_name`)
	if err != nil {
		return nil, fmt.Errorf("query special offers: %w", err)
	}
	defer rows.Close()

	offers := make(map[catalog.Product]Offer)
	for rows.Next() {
		var (
			name, unitRaw, offerType string
			amount                   *float64
			threshold, limit         *int
			percent                  *float64
		)
		if err := rows.Scan(&name, &unitRaw, &offerType, &amount, &threshold, &limit, &percent); err != nil {
			return nil, fmt.Errorf("scan special offer: %w", err)
		}
		unit, err := catalog.ParseUnit(unitRaw)
		if err != nil {
			return nil, err
		}
		product := catalog.Product{Name: name, Unit: unit}
		offer, err := buildOffer(OfferType(offerType), product, amount, threshold, limit, percent)
		if err != nil {
			return nil, fmt.Errorf("offer for %q: %w", name, err)
		}
		offers[product] = offer
	}
	return offers, rows.Err()
}

// BundleOffers returns all registered bundle offers in definition order; the
// engine's tie-break depends on that order being stable.
func (s *Store) BundleOffers(ctx context.Context) ([]BundleOffer, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT b.id, b.discount_percent, i.product_name, p.unit, i.quantity
		FROM bundle_offers b
		JOIN bundle_offer_items i ON i.bundle_id = b.id
		JOIN products p ON p.name = i.product_name
		ORDER BY b.id`)
	if err != nil {
		return nil, fmt.Errorf("query bundle offers: %w", err)
	}
	defer rows.Close()

	var bundles []BundleOffer
	index := make(map[int64]int)
	for rows.Next() {
		var (
			id            int64
			percent, qty  float64
			name, unitRaw string
		)
		if err := rows.Scan(&id, &percent, &name, &unitRaw, &qty); err != nil {
			return nil, fmt.Errorf("scan bundle offer: %w", err)
		}
		unit, err := catalog.ParseUnit(unitRaw)
		if err != nil {
			return nil, err
		}
		pos, ok := index[id]
		if !ok {
			pos = len(bundles)
			index[id] = pos
			bundles = append(bundles, BundleOffer{
				Items:           make(map[catalog.Product]float64),
				DiscountPercent: percent,
			})
		}
		bundles[pos].Items[catalog.Product{Name: name, Unit: unit}] = qty
	}
	return bundles, rows.Err()
}

// CouponsByCode loads the coupons matching the provided codes. Unknown codes
// are simply absent from the result; a checkout presenting a code nobody
// issued gets no discount rather than an error.
func (s *Store) CouponsByCode(ctx context.Context, codes []string) ([]Coupon, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT c.code, c.product_name, p.unit, c.start_date, c.end_date,
		       c.offer_type, c.amount, c.threshold, c.item_limit, c.percent
		FROM coupons c
		JOIN products p ON p.name = c.product_name
		WHERE c.code = ANY($1)`, codes)
	if err != nil {
		return nil, fmt.Errorf("query coupons: %w", err)
	}
	defer rows.Close()

	found := make(map[string]Coupon)
	for rows.Next() {
		var coupon Coupon
		var (
			name, unitRaw, offerType string
			amount                   *float64
			threshold, limit         *int
			percent                  *float64
		)
		if err := rows.Scan(&coupon.Code, &name, &unitRaw, &coupon.StartDate, &coupon.EndDate,
			&offerType, &amount, &threshold, &limit, &percent); err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		unit, err := catalog.ParseUnit(unitRaw)
		if err != nil {
			return nil, err
		}
		coupon.Product = catalog.Product{Name: name, Unit: unit}
		offer, err := buildOffer(OfferType(offerType), coupon.Product, amount, threshold, limit, percent)
		if err != nil {
			return nil, fmt.Errorf("coupon %q: %w", coupon.Code, err)
		}
		coupon.Type = offer.Type
		coupon.Amount = offer.Amount
		coupon.Terms = offer.Terms
		found[coupon.Code] = coupon
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Preserve the order codes were presented in; coupon application order
	// is registration order.
	out := make([]Coupon, 0, len(found))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		if coupon, ok := found[code]; ok {
			out = append(out, coupon)
		}
	}
	return out, nil
}

// buildOffer assembles an Offer from stored columns, funnelling through the
// factory so unknown stored types fail loudly instead of defaulting.
func buildOffer(offerType OfferType, product catalog.Product, amount *float64, threshold, limit *int, percent *float64) (Offer, error) {
	if offerType == OfferCouponDiscount {
		if threshold == nil || limit == nil || percent == nil {
			return Offer{}, fmt.Errorf("%w (product %q)", ErrMissingCouponTerms, product.Name)
		}
		return NewCouponOffer(product, CouponTerms{Threshold: *threshold, Limit: *limit, Percent: *percent}), nil
	}
	var arg float64
	if amount != nil {
		arg = *amount
	}
	return NewOffer(offerType, product, arg)
}
