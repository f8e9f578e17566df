package promo

import (
	"errors"
	"fmt"
	"math"

	"github.com/noah-isme/backend-kasir/internal/catalog"
)

var (
	// ErrUnknownOfferType is returned when constructing an offer with a type
	// the engine does not recognise.
	ErrUnknownOfferType = errors.New("unknown offer type")
	// ErrMissingCouponTerms indicates a coupon-discount offer was evaluated
	// without its structured threshold/limit/percent argument. This is a
	// configuration error, never a "no discount" outcome.
	ErrMissingCouponTerms = errors.New("coupon discount offer missing terms")
)

// OfferType selects the discount formula an offer applies.
type OfferType string

const (
	OfferThreeForTwo        OfferType = "THREE_FOR_TWO"
	OfferTenPercentDiscount OfferType = "TEN_PERCENT_DISCOUNT"
	OfferTwoForAmount       OfferType = "TWO_FOR_AMOUNT"
	OfferFiveForAmount      OfferType = "FIVE_FOR_AMOUNT"
	OfferCouponDiscount     OfferType = "COUPON_DISCOUNT"
)

// CouponTerms is the structured argument of a coupon-discount offer: items
// strictly above Threshold, up to Limit of them, are discounted by Percent.
type CouponTerms struct {
	Threshold int     `json:"threshold"`
	Limit     int     `json:"limit"`
	Percent   float64 `json:"percent"`
}

// Offer is a stateless per-product discount formula. Amount holds the percent
// or fixed group price for the simple offer types; Terms is set only for
// coupon-discount offers.
type Offer struct {
	Type    OfferType
	Product catalog.Product
	Amount  float64
	Terms   *CouponTerms
}

// NewOffer builds an offer for the simple (non-coupon) formula types.
// Unrecognised types fail at construction time.
func NewOffer(offerType OfferType, product catalog.Product, amount float64) (Offer, error) {
	switch offerType {
	case OfferThreeForTwo, OfferTenPercentDiscount, OfferTwoForAmount, OfferFiveForAmount:
		return Offer{Type: offerType, Product: product, Amount: amount}, nil
	case OfferCouponDiscount:
		return Offer{}, fmt.Errorf("%w: %s requires coupon terms", ErrUnknownOfferType, offerType)
	default:
		return Offer{}, fmt.Errorf("%w: %q", ErrUnknownOfferType, offerType)
	}
}

// NewCouponOffer builds a coupon-discount offer carrying structured terms.
func NewCouponOffer(product catalog.Product, terms CouponTerms) Offer {
	t := terms
	return Offer{Type: OfferCouponDiscount, Product: product, Terms: &t}
}

// CalculateDiscount evaluates the offer's formula against a quantity and unit
// price. It returns nil when the quantity is below the formula's activation
// threshold or the computed reduction is exactly zero. Quantities may be
// fractional; integer grouping applies only to the "for N" style formulas.
func (o Offer) CalculateDiscount(quantity, unitPrice float64) (*Discount, error) {
	switch o.Type {
	case OfferThreeForTwo:
		return o.forGroupPrice(quantity, unitPrice, 3, 2*unitPrice, "3 for 2", 3)
	case OfferTenPercentDiscount:
		amount := quantity * unitPrice * o.Amount / 100
		return o.discount(fmt.Sprintf("%g%% off", o.Amount), amount), nil
	case OfferTwoForAmount:
		return o.forGroupPrice(quantity, unitPrice, 2, o.Amount, fmt.Sprintf("2 for %g", o.Amount), 2)
	case OfferFiveForAmount:
		return o.forGroupPrice(quantity, unitPrice, 5, o.Amount, fmt.Sprintf("5 for %g", o.Amount), 5)
	case OfferCouponDiscount:
		return o.couponBand(quantity, unitPrice)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOfferType, o.Type)
	}
}

// forGroupPrice prices complete groups of groupSize at groupPrice and the
// remainder at the unit price. minQty is the smallest whole quantity the
// formula activates at; three-for-two additionally demands strictly more
// than two items, which its caller encodes by passing minQty 3.
func (o Offer) forGroupPrice(quantity, unitPrice float64, groupSize int, groupPrice float64, description string, minQty int) (*Discount, error) {
	whole := int(math.Floor(quantity))
	if whole < minQty {
		return nil, nil
	}
	payable := groupPrice*float64(whole/groupSize) + float64(whole%groupSize)*unitPrice
	return o.discount(description, quantity*unitPrice-payable), nil
}

func (o Offer) couponBand(quantity, unitPrice float64) (*Discount, error) {
	if o.Terms == nil {
		return nil, fmt.Errorf("%w (product %q)", ErrMissingCouponTerms, o.Product.Name)
	}
	whole := int(math.Floor(quantity))
	if whole <= o.Terms.Threshold {
		return nil, nil
	}
	discountable := whole - o.Terms.Threshold
	if discountable > o.Terms.Limit {
		discountable = o.Terms.Limit
	}
	amount := float64(discountable) * unitPrice * o.Terms.Percent / 100
	return o.discount(fmt.Sprintf("coupon %g%% off", o.Terms.Percent), amount), nil
}

func (o Offer) discount(description string, amount float64) *Discount {
	if amount == 0 {
		return nil
	}
	product := o.Product
	return &Discount{Product: &product, Description: description, Amount: -amount}
}
