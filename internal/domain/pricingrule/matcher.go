package pricingrule

import (
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/deskhive/deskhive/internal/logger"
	"github.com/deskhive/deskhive/internal/types"
)

// MatchRequest is the evaluation context a rule set is matched against.
type MatchRequest struct {
	PlanType  types.PlanType
	SpaceType types.SpaceType
	Date      time.Time
	Quantity  int64
	Duration  time.Duration
	// Timezone is the tenant timezone time slots are evaluated in; empty
	// means UTC.
	Timezone string
}

// AppliedModifier records one rule's effect on a unit price.
type AppliedModifier struct {
	RuleID       string                `json:"rule_id"`
	RuleType     types.PricingRuleType `json:"rule_type"`
	ModifierType types.ModifierType    `json:"modifier_type"`
	PriceBefore  decimal.Decimal       `json:"price_before"`
	PriceAfter   decimal.Decimal       `json:"price_after"`
}

// SlotOverlap is an authoring-time warning for two slots that can both
// match the same instant.
type SlotOverlap struct {
	RuleID string
	First  TimeSlot
	Second TimeSlot
}

// Matcher evaluates a tenant's pricing rules against a request context.
// It holds no state between calls and is safe for concurrent use.
type Matcher struct {
	logger *logger.Logger
}

func NewMatcher(log *logger.Logger) *Matcher {
	return &Matcher{logger: log}
}

// Match selects the rules applicable to the request: active, inside their
// validity window, matching the request's plan/space scoping, and (for
// slotted rules) covering the request date's weekday and time of day in the
// tenant timezone. The result is sorted by ascending (priority, id) so
// modifier application is deterministic.
func (m *Matcher) Match(rules []*PricingRule, req MatchRequest) []*PricingRule {
	loc := types.LoadTimezone(req.Timezone)
	localDate := req.Date.In(loc)

	matched := lo.Filter(rules, func(rule *PricingRule, _ int) bool {
		return m.matches(rule, req, localDate)
	})

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority < matched[j].Priority
		}
		return matched[i].ID < matched[j].ID
	})

	m.logger.Debugw("pricing rules matched",
		"candidates", len(rules),
		"matched", len(matched))

	return matched
}

func (m *Matcher) matches(rule *PricingRule, req MatchRequest, localDate time.Time) bool {
	if rule == nil || !rule.IsActive() {
		return false
	}
	if !rule.IsValidAt(req.Date) {
		return false
	}
	if rule.PlanType != "" && rule.PlanType != req.PlanType {
		return false
	}
	if rule.SpaceType != "" && rule.SpaceType != req.SpaceType {
		return false
	}
	if len(rule.TimeSlots) > 0 {
		inSlot := false
		for _, slot := range rule.TimeSlots {
			if slot.Contains(localDate) {
				inSlot = true
				break
			}
		}
		if !inSlot {
			return false
		}
	}
	return true
}

// ApplyModifiers folds the matched rules into a unit price, in the order
// Match returned them. A REPLACEMENT pins the price and suppresses later
// MULTIPLIER rules; FIXED_AMOUNT adjustments still apply after it.
func (m *Matcher) ApplyModifiers(basePrice decimal.Decimal, matched []*PricingRule) (decimal.Decimal, []AppliedModifier) {
	price := basePrice
	applied := make([]AppliedModifier, 0, len(matched))
	replaced := false

	for _, rule := range matched {
		before := price
		switch rule.ModifierType {
		case types.ModifierTypeReplacement:
			price = rule.Modifier
			replaced = true
		case types.ModifierTypeMultiplier:
			if replaced {
				continue
			}
			price = price.Mul(rule.Modifier)
		case types.ModifierTypeFixedAmount:
			price = price.Add(rule.Modifier)
		default:
			continue
		}

		applied = append(applied, AppliedModifier{
			RuleID:       rule.ID,
			RuleType:     rule.RuleType,
			ModifierType: rule.ModifierType,
			PriceBefore:  before,
			PriceAfter:   price,
		})
	}

	return price, applied
}

// ValidateTimeSlots reports every pair of overlapping slots on a rule.
// Overlaps are authoring-time warnings, not rejections: evaluation treats
// overlapping slots as a union.
func (m *Matcher) ValidateTimeSlots(rule *PricingRule) []SlotOverlap {
	var overlaps []SlotOverlap
	for i := 0; i < len(rule.TimeSlots); i++ {
		for j := i + 1; j < len(rule.TimeSlots); j++ {
			if rule.TimeSlots[i].Overlaps(rule.TimeSlots[j]) {
				overlaps = append(overlaps, SlotOverlap{
					RuleID: rule.ID,
					First:  rule.TimeSlots[i],
					Second: rule.TimeSlots[j],
				})
			}
		}
	}

	if len(overlaps) > 0 {
		m.logger.Warnw("pricing rule has overlapping time slots",
			"rule_id", rule.ID,
			"overlap_count", len(overlaps))
	}

	return overlaps
}
