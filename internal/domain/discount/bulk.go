package discount

import (
	"github.com/shopspring/decimal"

	ierr "github.com/deskhive/deskhive/internal/errors"
	"github.com/deskhive/deskhive/internal/types"
)

// BulkDiscountResult is the outcome of a volume-discount calculation.
type BulkDiscountResult struct {
	OriginalTotal   decimal.Decimal `json:"original_total"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	DiscountedTotal decimal.Decimal `json:"discounted_total"`
	AppliedTier     *BulkTier       `json:"applied_tier,omitempty"`
}

// MembershipDiscountResult is the outcome of a membership-rate discount.
type MembershipDiscountResult struct {
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	DiscountedAmount decimal.Decimal `json:"discounted_amount"`
}

// CalculateBulkDiscount resolves the richest qualifying volume tier: the
// candidate with the highest MinQuantity the quantity satisfies. Ties on
// MinQuantity resolve to the higher percentage. No qualifying tier means no
// discount, not an error.
func CalculateBulkDiscount(quantity int64, unitPrice decimal.Decimal, tiers []BulkTier) (*BulkDiscountResult, error) {
	if quantity < 0 {
		return nil, ierr.NewErrorf("quantity cannot be negative: %d", quantity).
			WithHint("Provide a quantity of 0 or more").
			Mark(ierr.ErrValidation)
	}

	result := &BulkDiscountResult{
		OriginalTotal:   unitPrice.Mul(decimal.NewFromInt(quantity)),
		DiscountAmount:  decimal.Zero,
		DiscountedTotal: unitPrice.Mul(decimal.NewFromInt(quantity)),
	}

	var applied *BulkTier
	for i := range tiers {
		tier := tiers[i]
		if quantity < tier.MinQuantity {
			continue
		}
		if applied == nil ||
			tier.MinQuantity > applied.MinQuantity ||
			(tier.MinQuantity == applied.MinQuantity && tier.DiscountPercentage.GreaterThan(applied.DiscountPercentage)) {
			applied = &tier
		}
	}
	if applied == nil {
		return result, nil
	}

	result.AppliedTier = applied
	result.DiscountAmount = result.OriginalTotal.Mul(applied.DiscountPercentage).Div(hundred)
	result.DiscountedTotal = result.OriginalTotal.Sub(result.DiscountAmount)
	return result, nil
}

// CalculateMembershipDiscount applies the rate configured for a membership
// level. An unknown level resolves to a zero discount, never an error.
func CalculateMembershipDiscount(amount decimal.Decimal, level types.MembershipLevel, rates map[types.MembershipLevel]decimal.Decimal) MembershipDiscountResult {
	rate, ok := rates[level]
	if !ok {
		return MembershipDiscountResult{
			DiscountAmount:   decimal.Zero,
			DiscountedAmount: amount,
		}
	}

	discountAmount := amount.Mul(rate).Div(hundred)
	return MembershipDiscountResult{
		DiscountAmount:   discountAmount,
		DiscountedAmount: amount.Sub(discountAmount),
	}
}
