package types

import (
	ierr "github.com/deskhive/deskhive/internal/errors"
)

// PricingRuleType classifies what condition a pricing rule keys off.
type PricingRuleType string

const (
	PricingRuleTypeTimeBased     PricingRuleType = "TIME_BASED"
	PricingRuleTypeVolumeBased   PricingRuleType = "VOLUME_BASED"
	PricingRuleTypeDurationBased PricingRuleType = "DURATION_BASED"
	PricingRuleTypeSpaceBased    PricingRuleType = "SPACE_BASED"
	PricingRuleTypeSeasonal      PricingRuleType = "SEASONAL"
	PricingRuleTypeMembership    PricingRuleType = "MEMBERSHIP"
	PricingRuleTypeDynamic       PricingRuleType = "DYNAMIC"
)

func (t PricingRuleType) Validate() error {
	switch t {
	case PricingRuleTypeTimeBased, PricingRuleTypeVolumeBased,
		PricingRuleTypeDurationBased, PricingRuleTypeSpaceBased,
		PricingRuleTypeSeasonal, PricingRuleTypeMembership,
		PricingRuleTypeDynamic:
		return nil
	}
	return ierr.NewErrorf("invalid pricing rule type '%s'", t).
		WithHint("Use one of the supported rule types").
		Mark(ierr.ErrValidation)
}

// ModifierType determines how a matched rule changes the unit price.
type ModifierType string

const (
	// ModifierTypeMultiplier scales the running price by the modifier.
	ModifierTypeMultiplier ModifierType = "MULTIPLIER"
	// ModifierTypeFixedAmount adds the modifier to the running price.
	ModifierTypeFixedAmount ModifierType = "FIXED_AMOUNT"
	// ModifierTypeReplacement sets the running price to the modifier and
	// suppresses later multiplicative rules on the same price.
	ModifierTypeReplacement ModifierType = "REPLACEMENT"
)

func (t ModifierType) Validate() error {
	switch t {
	case ModifierTypeMultiplier, ModifierTypeFixedAmount, ModifierTypeReplacement:
		return nil
	}
	return ierr.NewErrorf("invalid modifier type '%s'", t).
		WithHint("Use one of: MULTIPLIER, FIXED_AMOUNT, REPLACEMENT").
		Mark(ierr.ErrValidation)
}

// SpaceType is the kind of bookable space a rule is scoped to.
type SpaceType string

const (
	SpaceTypeHotDesk       SpaceType = "HOT_DESK"
	SpaceTypeDedicatedDesk SpaceType = "DEDICATED_DESK"
	SpaceTypePrivateOffice SpaceType = "PRIVATE_OFFICE"
	SpaceTypeMeetingRoom   SpaceType = "MEETING_ROOM"
	SpaceTypeEventSpace    SpaceType = "EVENT_SPACE"
)

// PlanType is the membership plan a rule is scoped to.
type PlanType string

const (
	PlanTypeDayPass    PlanType = "DAY_PASS"
	PlanTypeFlex       PlanType = "FLEX"
	PlanTypeDedicated  PlanType = "DEDICATED"
	PlanTypeEnterprise PlanType = "ENTERPRISE"
)
