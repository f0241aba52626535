package discount

import (
	"github.com/shopspring/decimal"

	ierr "github.com/deskhive/deskhive/internal/errors"
	"github.com/deskhive/deskhive/internal/types"
)

// DiscountRule is a tenant-configured discount. Rules without a coupon code
// apply generically; coded rules only apply when the code is supplied in
// the pricing context.
type DiscountRule struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Type        types.DiscountType `json:"type"`
	Value       decimal.Decimal    `json:"value"`
	MaxDiscount *decimal.Decimal   `json:"max_discount,omitempty"`

	// Priority orders application; lower numbers apply first.
	Priority int `json:"priority"`

	// Stackable rules always combine. The first non-stackable rule applied
	// suppresses every later non-stackable rule in the same calculation.
	Stackable  bool   `json:"stackable"`
	CouponCode string `json:"coupon_code,omitempty"`

	types.BaseModel
}

// Validate checks the rule's structural invariants.
func (r *DiscountRule) Validate() error {
	if r.ID == "" {
		return ierr.NewError("discount rule ID is required").
			WithHint("Provide a valid rule ID").
			Mark(ierr.ErrValidation)
	}
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if r.Value.IsNegative() {
		return ierr.NewErrorf("discount value cannot be negative for rule %s", r.ID).
			WithHint("Set a discount value of 0 or more").
			Mark(ierr.ErrValidation)
	}
	if r.MaxDiscount != nil && r.MaxDiscount.IsNegative() {
		return ierr.NewErrorf("max discount cannot be negative for rule %s", r.ID).
			WithHint("Set a max discount of 0 or more").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsActive reports whether the rule is live configuration.
func (r *DiscountRule) IsActive() bool {
	return r.Status == types.StatusPublished
}

// BulkTier is one volume-discount step. Selection picks the tier with the
// highest MinQuantity the quantity still satisfies.
type BulkTier struct {
	MinQuantity        int64           `json:"min_quantity"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// AppliedDiscount records one rule's contribution to a calculation.
type AppliedDiscount struct {
	RuleID string             `json:"rule_id"`
	Name   string             `json:"name"`
	Type   types.DiscountType `json:"type"`
	Amount decimal.Decimal    `json:"amount"`
}
