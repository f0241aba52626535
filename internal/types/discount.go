package types

import (
	ierr "github.com/deskhive/deskhive/internal/errors"
)

// DiscountType represents how a discount rule's value is interpreted.
type DiscountType string

const (
	// DiscountTypePercentage applies value as a percentage of the running
	// amount.
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	// DiscountTypeFixedAmount subtracts value directly.
	DiscountTypeFixedAmount DiscountType = "FIXED_AMOUNT"
)

func (t DiscountType) Validate() error {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixedAmount:
		return nil
	}
	return ierr.NewErrorf("invalid discount type '%s'", t).
		WithHint("Use one of: PERCENTAGE, FIXED_AMOUNT").
		Mark(ierr.ErrValidation)
}

// MembershipLevel identifies a tenant-configured membership tier. Levels
// are free-form per tenant; these constants cover the default ladder.
type MembershipLevel string

const (
	MembershipLevelBronze   MembershipLevel = "BRONZE"
	MembershipLevelSilver   MembershipLevel = "SILVER"
	MembershipLevelGold     MembershipLevel = "GOLD"
	MembershipLevelPlatinum MembershipLevel = "PLATINUM"
)
