package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/deskhive/deskhive/internal/types"
)

var hundred = decimal.NewFromInt(100)

// AdjustmentType labels the lead-time adjustment that fired.
type AdjustmentType string

const (
	AdjustmentTypeNone       AdjustmentType = "none"
	AdjustmentTypeEarlyBird  AdjustmentType = "early_bird"
	AdjustmentTypeLastMinute AdjustmentType = "last_minute"
)

// EarlyBirdPolicy discounts bookings made at least Days before the service
// date.
type EarlyBirdPolicy struct {
	Days     int             `json:"days"`
	Discount decimal.Decimal `json:"discount"`
}

// LastMinutePolicy surcharges bookings made within Hours of the service
// date.
type LastMinutePolicy struct {
	Hours     int             `json:"hours"`
	Surcharge decimal.Decimal `json:"surcharge"`
}

// TimeAdjustmentPolicy configures lead-time pricing. Either side may be
// nil, meaning that adjustment is not configured.
type TimeAdjustmentPolicy struct {
	EarlyBird  *EarlyBirdPolicy  `json:"early_bird,omitempty"`
	LastMinute *LastMinutePolicy `json:"last_minute,omitempty"`
}

// Adjustment is the lead-time adjustment applied to a base price.
type Adjustment struct {
	Type   AdjustmentType  `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// TimeBasedPriceResult is the outcome of a lead-time pricing calculation.
type TimeBasedPriceResult struct {
	BasePrice     decimal.Decimal `json:"base_price"`
	Adjustment    Adjustment      `json:"adjustment"`
	AdjustedPrice decimal.Decimal `json:"adjusted_price"`
}

// CalculateTimeBasedPricing adjusts a base price by the lead time between
// booking and service. Last minute is checked before early bird, so a
// same-instant booking always resolves to last minute when both policies
// could technically fire. Zero or negative lead time counts as last
// minute. Amounts are rounded to the currency precision at source.
func CalculateTimeBasedPricing(basePrice decimal.Decimal, bookingDate, serviceDate time.Time, policy TimeAdjustmentPolicy, currency string) TimeBasedPriceResult {
	leadTime := serviceDate.Sub(bookingDate)

	if policy.LastMinute != nil && leadTime <= time.Duration(policy.LastMinute.Hours)*time.Hour {
		amount := types.RoundToCurrencyPrecision(
			basePrice.Mul(policy.LastMinute.Surcharge).Div(hundred), currency)
		return TimeBasedPriceResult{
			BasePrice:     basePrice,
			Adjustment:    Adjustment{Type: AdjustmentTypeLastMinute, Amount: amount},
			AdjustedPrice: basePrice.Add(amount),
		}
	}

	if policy.EarlyBird != nil && leadTime >= time.Duration(policy.EarlyBird.Days)*24*time.Hour {
		amount := types.RoundToCurrencyPrecision(
			basePrice.Mul(policy.EarlyBird.Discount).Div(hundred), currency)
		return TimeBasedPriceResult{
			BasePrice:     basePrice,
			Adjustment:    Adjustment{Type: AdjustmentTypeEarlyBird, Amount: amount},
			AdjustedPrice: basePrice.Sub(amount),
		}
	}

	return TimeBasedPriceResult{
		BasePrice:     basePrice,
		Adjustment:    Adjustment{Type: AdjustmentTypeNone, Amount: decimal.Zero},
		AdjustedPrice: basePrice,
	}
}
