package booking

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/deskhive/deskhive/internal/errors"
)

// DefaultMinimumHours is the floor applied when the caller does not
// configure a minimum.
const DefaultMinimumHours = 1

// HourlyPriceResult breaks down an elapsed-time charge.
type HourlyPriceResult struct {
	ElapsedHours decimal.Decimal `json:"elapsed_hours"`
	BilledHours  int64           `json:"billed_hours"`
	Price        decimal.Decimal `json:"price"`
}

// CalculateHourlyBookingPrice charges an hourly rate for an interval.
// Elapsed time rounds up to the next whole hour, never down: a 2.5 hour
// booking bills as 3 hours. Billed hours are floored at minimumHours.
func CalculateHourlyBookingPrice(hourlyRate decimal.Decimal, start, end time.Time, minimumHours int64) (*HourlyPriceResult, error) {
	if !end.After(start) {
		return nil, ierr.NewError("booking end must be after start").
			WithHint("Check the booking interval").
			WithReportableDetails(map[string]any{
				"start": start,
				"end":   end,
			}).
			Mark(ierr.ErrValidation)
	}
	if hourlyRate.IsNegative() {
		return nil, ierr.NewError("hourly rate cannot be negative").
			WithHint("Set an hourly rate of 0 or more").
			Mark(ierr.ErrValidation)
	}
	if minimumHours <= 0 {
		minimumHours = DefaultMinimumHours
	}

	elapsed := decimal.NewFromFloat(end.Sub(start).Hours())
	billed := elapsed.Ceil().IntPart()
	if billed < minimumHours {
		billed = minimumHours
	}

	return &HourlyPriceResult{
		ElapsedHours: elapsed,
		BilledHours:  billed,
		Price:        hourlyRate.Mul(decimal.NewFromInt(billed)),
	}, nil
}
