package discount

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/deskhive/deskhive/internal/logger"
	"github.com/deskhive/deskhive/internal/types"
)

var hundred = decimal.NewFromInt(100)

// Result is the outcome of a discount engine run. The invariant
// DiscountedSubtotal + TotalDiscount == Subtotal always holds.
type Result struct {
	Subtotal           decimal.Decimal   `json:"subtotal"`
	Applied            []AppliedDiscount `json:"applied"`
	TotalDiscount      decimal.Decimal   `json:"total_discount"`
	DiscountedSubtotal decimal.Decimal   `json:"discounted_subtotal"`
}

// Engine applies a tenant's discount rules to a subtotal with priority
// ordering and stacking semantics. It holds no state between calls.
type Engine struct {
	logger *logger.Logger
}

func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Apply walks the applicable rules in ascending priority order, computing
// each discount against the current remaining amount. Percentage discounts
// are rounded to the currency precision at source. Each discount is capped
// at the rule's max discount and at the remaining amount, so the final
// discounted subtotal is never negative.
func (e *Engine) Apply(subtotal decimal.Decimal, rules []*DiscountRule, discountCodes []string, currency string) Result {
	result := Result{
		Subtotal:           subtotal,
		Applied:            []AppliedDiscount{},
		TotalDiscount:      decimal.Zero,
		DiscountedSubtotal: subtotal,
	}
	if subtotal.LessThanOrEqual(decimal.Zero) {
		return result
	}

	codes := make(map[string]struct{}, len(discountCodes))
	for _, code := range discountCodes {
		codes[code] = struct{}{}
	}

	applicable := lo.Filter(rules, func(rule *DiscountRule, _ int) bool {
		if rule == nil || !rule.IsActive() {
			return false
		}
		if rule.CouponCode == "" {
			return true
		}
		_, supplied := codes[rule.CouponCode]
		return supplied
	})

	sort.SliceStable(applicable, func(i, j int) bool {
		if applicable[i].Priority != applicable[j].Priority {
			return applicable[i].Priority < applicable[j].Priority
		}
		return applicable[i].ID < applicable[j].ID
	})

	remaining := subtotal
	nonStackableUsed := false

	for _, rule := range applicable {
		if !rule.Stackable && nonStackableUsed {
			continue
		}
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		amount := e.discountAmount(rule, remaining, currency)
		if amount.LessThanOrEqual(decimal.Zero) {
			continue
		}

		remaining = remaining.Sub(amount)
		result.TotalDiscount = result.TotalDiscount.Add(amount)
		result.Applied = append(result.Applied, AppliedDiscount{
			RuleID: rule.ID,
			Name:   rule.Name,
			Type:   rule.Type,
			Amount: amount,
		})
		if !rule.Stackable {
			nonStackableUsed = true
		}

		e.logger.Debugw("discount applied",
			"rule_id", rule.ID,
			"type", rule.Type,
			"amount", amount.String(),
			"remaining", remaining.String())
	}

	result.DiscountedSubtotal = subtotal.Sub(result.TotalDiscount)
	return result
}

// discountAmount computes a single rule's discount against the remaining
// amount, capped at the rule's max discount and at the remaining amount.
func (e *Engine) discountAmount(rule *DiscountRule, remaining decimal.Decimal, currency string) decimal.Decimal {
	var amount decimal.Decimal
	switch rule.Type {
	case types.DiscountTypePercentage:
		amount = types.RoundToCurrencyPrecision(remaining.Mul(rule.Value).Div(hundred), currency)
	case types.DiscountTypeFixedAmount:
		amount = rule.Value
	default:
		return decimal.Zero
	}

	if rule.MaxDiscount != nil && amount.GreaterThan(*rule.MaxDiscount) {
		amount = *rule.MaxDiscount
	}
	if amount.GreaterThan(remaining) {
		amount = remaining
	}
	return amount
}
