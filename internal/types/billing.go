package types

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/deskhive/deskhive/internal/errors"
)

// BillingCycle is the cadence a subscription is billed at. Subscription
// rates are configured monthly; other cycles derive their period rate from
// the monthly rate.
type BillingCycle string

const (
	BillingCycleDaily     BillingCycle = "DAILY"
	BillingCycleWeekly    BillingCycle = "WEEKLY"
	BillingCycleMonthly   BillingCycle = "MONTHLY"
	BillingCycleQuarterly BillingCycle = "QUARTERLY"
	BillingCycleYearly    BillingCycle = "YEARLY"
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	daysPerYear   = decimal.NewFromInt(365)
	weeksPerYear  = decimal.NewFromInt(52)
)

func (c BillingCycle) Validate() error {
	switch c {
	case BillingCycleDaily, BillingCycleWeekly, BillingCycleMonthly,
		BillingCycleQuarterly, BillingCycleYearly:
		return nil
	}
	return ierr.NewErrorf("invalid billing cycle '%s'", c).
		WithHint("Use one of: DAILY, WEEKLY, MONTHLY, QUARTERLY, YEARLY").
		Mark(ierr.ErrValidation)
}

// PeriodRate converts a monthly rate into the charge for one full period of
// this cycle. Daily and weekly rates are annualized so a year of daily
// billing equals a year of monthly billing.
func (c BillingCycle) PeriodRate(monthlyRate decimal.Decimal) decimal.Decimal {
	annual := monthlyRate.Mul(monthsPerYear)
	switch c {
	case BillingCycleDaily:
		return annual.Div(daysPerYear)
	case BillingCycleWeekly:
		return annual.Div(weeksPerYear)
	case BillingCycleQuarterly:
		return monthlyRate.Mul(decimal.NewFromInt(3))
	case BillingCycleYearly:
		return annual
	default:
		return monthlyRate
	}
}

// NextPeriodStart returns the start of the period following the one that
// begins at start. Calendar-aware: monthly periods follow month lengths.
func (c BillingCycle) NextPeriodStart(start time.Time) time.Time {
	switch c {
	case BillingCycleDaily:
		return start.AddDate(0, 0, 1)
	case BillingCycleWeekly:
		return start.AddDate(0, 0, 7)
	case BillingCycleQuarterly:
		return start.AddDate(0, 3, 0)
	case BillingCycleYearly:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}

// DaysInCalendarMonth returns the number of days in the calendar month
// containing t, used to price partial trailing periods.
func DaysInCalendarMonth(t time.Time) int {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
