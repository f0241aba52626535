package proration

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/deskhive/deskhive/internal/errors"
	"github.com/deskhive/deskhive/internal/logger"
	"github.com/deskhive/deskhive/internal/types"
)

// PartialPeriod is the trailing fraction of a billing cycle left over after
// whole periods are consumed.
type PartialPeriod struct {
	Days   int             `json:"days"`
	Amount decimal.Decimal `json:"amount"`
}

// SubscriptionProrationResult decomposes a subscription interval into whole
// billing periods plus at most one partial trailing period.
type SubscriptionProrationResult struct {
	TotalAmount   decimal.Decimal `json:"total_amount"`
	FullPeriods   int             `json:"full_periods"`
	PartialPeriod *PartialPeriod  `json:"partial_period,omitempty"`
}

// Calculator prices subscription intervals. It holds no state between
// calls and is safe for concurrent use.
type Calculator struct {
	logger *logger.Logger
}

func NewCalculator(log *logger.Logger) *Calculator {
	return &Calculator{logger: log}
}

// CalculateSubscriptionPricing splits [startDate, endDate] into the maximum
// number of whole billingCycle periods, each priced at the cycle's
// period-equivalent of the monthly rate, plus one trailing partial period
// of N days priced at monthlyRate × N / daysInCalendarMonth. A started day
// in the partial period bills as a whole day. Amounts are rounded to the
// currency precision.
func (c *Calculator) CalculateSubscriptionPricing(
	monthlyRate decimal.Decimal,
	startDate, endDate time.Time,
	billingCycle types.BillingCycle,
	currency string,
) (*SubscriptionProrationResult, error) {
	if endDate.Before(startDate) {
		return nil, ierr.NewError("subscription end date cannot be before start date").
			WithHint("Check the subscription date range").
			WithReportableDetails(map[string]any{
				"start_date": startDate,
				"end_date":   endDate,
			}).
			Mark(ierr.ErrValidation)
	}
	if monthlyRate.IsNegative() {
		return nil, ierr.NewError("monthly rate cannot be negative").
			WithHint("Set a monthly rate of 0 or more").
			Mark(ierr.ErrValidation)
	}
	if err := billingCycle.Validate(); err != nil {
		return nil, err
	}

	periodRate := billingCycle.PeriodRate(monthlyRate)

	result := &SubscriptionProrationResult{
		TotalAmount: decimal.Zero,
	}

	cursor := startDate
	for {
		next := billingCycle.NextPeriodStart(cursor)
		if next.After(endDate) {
			break
		}
		result.FullPeriods++
		result.TotalAmount = result.TotalAmount.Add(periodRate)
		cursor = next
	}

	if cursor.Before(endDate) {
		days := int(math.Ceil(endDate.Sub(cursor).Hours() / 24))
		daysInMonth := types.DaysInCalendarMonth(cursor)
		amount := monthlyRate.
			Mul(decimal.NewFromInt(int64(days))).
			Div(decimal.NewFromInt(int64(daysInMonth)))
		amount = types.RoundToCurrencyPrecision(amount, currency)

		result.PartialPeriod = &PartialPeriod{
			Days:   days,
			Amount: amount,
		}
		result.TotalAmount = result.TotalAmount.Add(amount)
	}

	result.TotalAmount = types.RoundToCurrencyPrecision(result.TotalAmount, currency)

	c.logger.Debugw("subscription proration calculated",
		"billing_cycle", billingCycle,
		"full_periods", result.FullPeriods,
		"total_amount", result.TotalAmount.String())

	return result, nil
}
