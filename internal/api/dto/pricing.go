package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/deskhive/deskhive/internal/domain/booking"
	"github.com/deskhive/deskhive/internal/domain/discount"
	"github.com/deskhive/deskhive/internal/domain/pricingrule"
	"github.com/deskhive/deskhive/internal/domain/tax"
	ierr "github.com/deskhive/deskhive/internal/errors"
	"github.com/deskhive/deskhive/internal/types"
	"github.com/deskhive/deskhive/internal/validator"
)

// LineItem is a caller-owned, already-validated billable line. It is
// immutable once passed in; the engine works on copies of derived values.
type LineItem struct {
	ID          string          `json:"id" validate:"required"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity" validate:"gte=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" swaggertype:"string"`
}

// PricingContext represents "now" for rule evaluation: validity windows and
// time-of-day conditions are evaluated against Date in Timezone. Metadata
// is opaque pass-through for tenant-custom data.
type PricingContext struct {
	ClientID      string            `json:"client_id"`
	Date          time.Time         `json:"date" validate:"required"`
	Currency      string            `json:"currency,omitempty"`
	Jurisdiction  string            `json:"jurisdiction,omitempty"`
	Timezone      string            `json:"timezone,omitempty"`
	PlanType      types.PlanType    `json:"plan_type,omitempty"`
	SpaceType     types.SpaceType   `json:"space_type,omitempty"`
	DiscountCodes []string          `json:"discount_codes,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// CalculatePricingRequest is the itemized pricing entry point's input.
type CalculatePricingRequest struct {
	LineItems []LineItem     `json:"line_items" validate:"required,min=1,dive"`
	Context   PricingContext `json:"context" validate:"required"`
}

// Validate validates the calculate pricing request.
func (r *CalculatePricingRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(r.LineItems))
	for _, item := range r.LineItems {
		if _, dup := seen[item.ID]; dup {
			return ierr.NewErrorf("duplicate line item ID %s", item.ID).
				WithHint("Line item IDs must be unique within a request").
				Mark(ierr.ErrValidation)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

// LineItemPricing breaks down how one line item was priced.
type LineItemPricing struct {
	LineItemID         string                        `json:"line_item_id"`
	Quantity           int64                         `json:"quantity"`
	UnitPrice          decimal.Decimal               `json:"unit_price"`
	EffectiveUnitPrice decimal.Decimal               `json:"effective_unit_price"`
	Amount             decimal.Decimal               `json:"amount"`
	AppliedModifiers   []pricingrule.AppliedModifier `json:"applied_modifiers,omitempty"`
}

// PricingResult is the itemized outcome of a pricing calculation. Total is
// never negative: over-discounts and pathological negative unit prices are
// clamped, not propagated.
type PricingResult struct {
	LineItems      []LineItemPricing          `json:"line_items"`
	Subtotal       decimal.Decimal            `json:"subtotal"`
	Discounts      []discount.AppliedDiscount `json:"discounts"`
	TotalDiscounts decimal.Decimal            `json:"total_discounts"`
	Taxes          []tax.AppliedTax           `json:"taxes"`
	TotalTaxes     decimal.Decimal            `json:"total_taxes"`
	Total          decimal.Decimal            `json:"total"`
}

// CalculateSubscriptionPricingRequest prices a subscription interval.
type CalculateSubscriptionPricingRequest struct {
	MonthlyRate  decimal.Decimal    `json:"monthly_rate" swaggertype:"string"`
	StartDate    time.Time          `json:"start_date" validate:"required"`
	EndDate      time.Time          `json:"end_date" validate:"required"`
	BillingCycle types.BillingCycle `json:"billing_cycle" validate:"required"`
	Currency     string             `json:"currency,omitempty"`
}

// Validate validates the subscription pricing request.
func (r *CalculateSubscriptionPricingRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.BillingCycle.Validate()
}

// CalculateTimeBasedPricingRequest prices a booking by lead time.
type CalculateTimeBasedPricingRequest struct {
	BasePrice   decimal.Decimal              `json:"base_price" swaggertype:"string"`
	BookingDate time.Time                    `json:"booking_date" validate:"required"`
	ServiceDate time.Time                    `json:"service_date" validate:"required"`
	Policy      booking.TimeAdjustmentPolicy `json:"policy"`
	Currency    string                       `json:"currency,omitempty"`
}

// Validate validates the time-based pricing request.
func (r *CalculateTimeBasedPricingRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// CalculateHourlyBookingPriceRequest prices an hourly booking interval.
type CalculateHourlyBookingPriceRequest struct {
	HourlyRate   decimal.Decimal `json:"hourly_rate" swaggertype:"string"`
	Start        time.Time       `json:"start" validate:"required"`
	End          time.Time       `json:"end" validate:"required"`
	MinimumHours int64           `json:"minimum_hours,omitempty"`
}

// Validate validates the hourly booking request.
func (r *CalculateHourlyBookingPriceRequest) Validate() error {
	return validator.ValidateRequest(r)
}
