package loyalty

import (
	"github.com/noah-isme/backend-kasir/internal/promo"
	"github.com/noah-isme/backend-kasir/internal/receipt"
)

// DefaultPointValue is the redemption value of one loyalty point.
const DefaultPointValue = 0.01

// Service converts loyalty points to receipt reductions and back. It runs
// after discount resolution as a plain post-processing step.
type Service struct {
	PointValue float64
}

func (s Service) pointValue() float64 {
	if s.PointValue <= 0 {
		return DefaultPointValue
	}
	return s.PointValue
}

// ApplyReduction redeems up to availablePoints against the receipt's current
// total, capped so the total never goes negative. Zero-value redemptions are
// not recorded.
func (s Service) ApplyReduction(r *receipt.Receipt, availablePoints int) {
	if availablePoints <= 0 {
		return
	}
	redemption := float64(availablePoints) * s.pointValue()
	if total := r.Total(); redemption > total {
		redemption = total
	}
	if redemption <= 0 {
		return
	}
	r.AddDiscount(promo.Discount{Description: "Loyalty Discount", Amount: -redemption})
}

// RecordPointsEarned grants one point per whole currency unit of the final
// total and records it on the receipt.
func (s Service) RecordPointsEarned(r *receipt.Receipt) int {
	earned := int(r.Total())
	if earned < 0 {
		earned = 0
	}
	r.AddLoyaltyPoints(earned)
	return earned
}
