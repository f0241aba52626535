package pricingrule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/deskhive/deskhive/internal/errors"
	"github.com/deskhive/deskhive/internal/types"
)

// TimeSlot restricts a rule to a window within selected weekdays. Start and
// End are wall-clock times in "HH:MM" form; the window is half-open, so a
// slot ending at 18:00 does not match 18:00 itself.
type TimeSlot struct {
	Start string         `json:"start"`
	End   string         `json:"end"`
	Days  []time.Weekday `json:"days"`
}

// PricingRule is a tenant-configured conditional price modifier. Rules are
// loaded per tenant by the calling layer and treated as read-only here.
type PricingRule struct {
	ID        string                `json:"id"`
	TierID    string                `json:"tier_id"`
	RuleType  types.PricingRuleType `json:"rule_type"`
	SpaceType types.SpaceType       `json:"space_type,omitempty"`
	PlanType  types.PlanType        `json:"plan_type,omitempty"`
	TimeSlots []TimeSlot            `json:"time_slots,omitempty"`

	// Conditions is opaque tenant-custom data carried through for future
	// extension. The engine never branches on its contents.
	Conditions map[string]any `json:"conditions,omitempty"`

	BasePrice    decimal.Decimal    `json:"base_price"`
	Modifier     decimal.Decimal    `json:"modifier"`
	ModifierType types.ModifierType `json:"modifier_type"`
	Priority     int                `json:"priority"`
	ValidFrom    *time.Time         `json:"valid_from,omitempty"`
	ValidTo      *time.Time         `json:"valid_to,omitempty"`

	types.BaseModel
}

// Validate checks the rule's structural invariants.
func (r *PricingRule) Validate() error {
	if r.ID == "" {
		return ierr.NewError("pricing rule ID is required").
			WithHint("Provide a valid rule ID").
			Mark(ierr.ErrValidation)
	}
	if err := r.RuleType.Validate(); err != nil {
		return err
	}
	if err := r.ModifierType.Validate(); err != nil {
		return err
	}
	if r.BasePrice.IsNegative() {
		return ierr.NewErrorf("base price cannot be negative for rule %s", r.ID).
			WithHint("Set a base price of 0 or more").
			Mark(ierr.ErrValidation)
	}
	// Negative fixed amounts are credits; prices and scale factors are not
	// allowed to go negative.
	if r.Modifier.IsNegative() && r.ModifierType != types.ModifierTypeFixedAmount {
		return ierr.NewErrorf("modifier cannot be negative for %s rule %s", r.ModifierType, r.ID).
			WithHint("Only FIXED_AMOUNT modifiers may be negative").
			Mark(ierr.ErrValidation)
	}
	if r.ValidFrom != nil && r.ValidTo != nil && !r.ValidFrom.Before(*r.ValidTo) {
		return ierr.NewErrorf("validity window is inverted for rule %s", r.ID).
			WithHint("valid_from must be before valid_to").
			WithReportableDetails(map[string]any{
				"valid_from": r.ValidFrom,
				"valid_to":   r.ValidTo,
			}).
			Mark(ierr.ErrValidation)
	}
	for i, slot := range r.TimeSlots {
		if err := slot.Validate(); err != nil {
			return ierr.WithError(err).
				WithHintf("time slot %d is invalid for rule %s", i, r.ID).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// IsActive reports whether the rule is live configuration.
func (r *PricingRule) IsActive() bool {
	return r.Status == types.StatusPublished
}

// IsValidAt checks the rule's validity window against the evaluation date.
// An unset bound is open-ended.
func (r *PricingRule) IsValidAt(date time.Time) bool {
	if r.ValidFrom != nil && date.Before(*r.ValidFrom) {
		return false
	}
	if r.ValidTo != nil && date.After(*r.ValidTo) {
		return false
	}
	return true
}

// Validate checks slot times parse and the window is non-empty.
func (s TimeSlot) Validate() error {
	start, err := parseClock(s.Start)
	if err != nil {
		return err
	}
	end, err := parseClock(s.End)
	if err != nil {
		return err
	}
	if start >= end {
		return ierr.NewErrorf("time slot %s-%s is empty or inverted", s.Start, s.End).
			WithHint("Slot start must be before slot end").
			Mark(ierr.ErrValidation)
	}
	if len(s.Days) == 0 {
		return ierr.NewError("time slot must select at least one day").
			WithHint("Add at least one weekday to the slot").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Contains reports whether t's weekday and time of day fall inside the
// slot. The caller is responsible for converting t to the tenant timezone
// first.
func (s TimeSlot) Contains(t time.Time) bool {
	matched := false
	for _, day := range s.Days {
		if t.Weekday() == day {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	start, err := parseClock(s.Start)
	if err != nil {
		return false
	}
	end, err := parseClock(s.End)
	if err != nil {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= start && minutes < end
}

// Overlaps reports whether two slots can both match some instant: the day
// sets intersect and the time windows overlap. Used for rule-authoring
// conflict detection, never at evaluation time.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	daysIntersect := false
	for _, d1 := range s.Days {
		for _, d2 := range other.Days {
			if d1 == d2 {
				daysIntersect = true
				break
			}
		}
	}
	if !daysIntersect {
		return false
	}

	start1, err := parseClock(s.Start)
	if err != nil {
		return false
	}
	end1, err := parseClock(s.End)
	if err != nil {
		return false
	}
	start2, err := parseClock(other.Start)
	if err != nil {
		return false
	}
	end2, err := parseClock(other.End)
	if err != nil {
		return false
	}
	return start1 < end2 && start2 < end1
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock time %q", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock time %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock time %q", clock)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock time %q out of range", clock)
	}
	return hours*60 + minutes, nil
}
