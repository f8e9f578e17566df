package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/noah-isme/backend-kasir/internal/cart"
	"github.com/noah-isme/backend-kasir/internal/catalog"
	"github.com/noah-isme/backend-kasir/internal/loyalty"
	"github.com/noah-isme/backend-kasir/internal/obs"
	"github.com/noah-isme/backend-kasir/internal/promo"
	"github.com/noah-isme/backend-kasir/internal/receipt"
)

// CatalogSource resolves products and unit prices.
type CatalogSource interface {
	Product(ctx context.Context, name string) (catalog.Entry, error)
}

// PromoSource loads the standing promotional configuration.
type PromoSource interface {
	StandingOffers(ctx context.Context) (map[catalog.Product]promo.Offer, error)
	BundleOffers(ctx context.Context) ([]promo.BundleOffer, error)
	CouponsByCode(ctx context.Context, codes []string) ([]promo.Coupon, error)
}

// ItemInput is one basket line in a checkout request.
type ItemInput struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
}

// Input is the checkout request payload.
type Input struct {
	Items         []ItemInput `json:"items" validate:"required,min=1,dive"`
	CouponCodes   []string    `json:"coupon_codes" validate:"dive,required"`
	LoyaltyPoints int         `json:"loyalty_points" validate:"gte=0"`
}

// Service is the teller: it prices the basket, resolves discounts through
// the promo engine, and finishes the receipt with loyalty redemption. Each
// call builds its own cart and price map, so concurrent checkouts share
// nothing mutable.
type Service struct {
	Catalog CatalogSource
	Promo   PromoSource
	Loyalty loyalty.Service
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// checkoutDate truncates the clock to a calendar date; coupon validity
// windows are date-granular.
func (s *Service) checkoutDate() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Checkout prices the basket, applies discounts and loyalty redemption, and
// records points earned.
func (s *Service) Checkout(ctx context.Context, in Input) (*receipt.Receipt, error) {
	rcpt, err := s.assemble(ctx, in)
	if err != nil {
		return nil, err
	}
	s.Loyalty.ApplyReduction(rcpt, in.LoyaltyPoints)
	s.Loyalty.RecordPointsEarned(rcpt)
	return rcpt, nil
}

// Quote prices the basket with discounts but without loyalty effects; it is
// the speculative re-evaluation path and has no side effects of any kind.
func (s *Service) Quote(ctx context.Context, in Input) (*receipt.Receipt, error) {
	return s.assemble(ctx, in)
}

func (s *Service) assemble(ctx context.Context, in Input) (*receipt.Receipt, error) {
	if s == nil || s.Catalog == nil || s.Promo == nil {
		return nil, errors.New("checkout service not configured")
	}

	basket := cart.New()
	prices := make(promo.PriceMap, len(in.Items))
	for _, item := range in.Items {
		entry, err := s.Catalog.Product(ctx, item.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", item.Name, err)
		}
		basket.AddItemQuantity(entry.Product, item.Quantity)
		prices[entry.Product] = entry.Price
	}

	coupons, err := s.Promo.CouponsByCode(ctx, in.CouponCodes)
	if err != nil {
		return nil, fmt.Errorf("load coupons: %w", err)
	}
	for _, coupon := range coupons {
		basket.AddCoupon(coupon)
	}

	offers, err := s.Promo.StandingOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load offers: %w", err)
	}
	bundles, err := s.Promo.BundleOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bundles: %w", err)
	}

	engine := &promo.Engine{Catalog: prices, Offers: offers, Bundles: bundles}
	discounts, err := engine.Resolve(basket.Quantities(), basket.Coupons(), s.checkoutDate())
	if err != nil {
		return nil, err
	}

	rcpt := receipt.New()
	for _, line := range basket.Lines() {
		price := prices[line.Product]
		rcpt.AddProduct(line.Product, line.Quantity, price, line.Quantity*price)
	}
	for _, discount := range discounts {
		rcpt.AddDiscount(discount)
		countDiscount(discount)
	}
	return rcpt, nil
}

func countDiscount(d promo.Discount) {
	if obs.DiscountsAppliedTotal == nil {
		return
	}
	kind := "product"
	if d.Product == nil {
		kind = "bundle"
	}
	obs.DiscountsAppliedTotal.WithLabelValues(kind).Inc()
}
