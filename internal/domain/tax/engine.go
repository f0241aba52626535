package tax

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/deskhive/deskhive/internal/logger"
	"github.com/deskhive/deskhive/internal/types"
)

var hundred = decimal.NewFromInt(100)

// Result is the outcome of a tax engine run.
type Result struct {
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	Applied       []AppliedTax    `json:"applied"`
	TotalTax      decimal.Decimal `json:"total_tax"`
}

// Engine accumulates jurisdictional tax on the post-discount subtotal.
// Rates for the jurisdiction are summed, not compounded, and applied once.
type Engine struct {
	logger *logger.Logger
}

func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Apply taxes the discounted subtotal with every active rule matching the
// jurisdiction. No matching rule is a configuration gap, not an error: the
// result is simply zero tax. Each rule's contribution is rounded to the
// currency precision at source.
func (e *Engine) Apply(discountedSubtotal decimal.Decimal, rules []*TaxRule, jurisdiction, currency string) Result {
	result := Result{
		TaxableAmount: discountedSubtotal,
		Applied:       []AppliedTax{},
		TotalTax:      decimal.Zero,
	}
	if discountedSubtotal.LessThanOrEqual(decimal.Zero) {
		return result
	}

	matching := lo.Filter(rules, func(rule *TaxRule, _ int) bool {
		return rule != nil && rule.IsActive() && rule.AppliesTo(jurisdiction)
	})

	for _, rule := range matching {
		amount := types.RoundToCurrencyPrecision(
			discountedSubtotal.Mul(rule.Rate).Div(hundred), currency)
		result.TotalTax = result.TotalTax.Add(amount)
		result.Applied = append(result.Applied, AppliedTax{
			RuleID: rule.ID,
			Name:   rule.Name,
			Type:   rule.Type,
			Rate:   rule.Rate,
			Amount: amount,
		})
	}

	if len(matching) == 0 {
		e.logger.Debugw("no tax rules for jurisdiction",
			"jurisdiction", jurisdiction)
	}

	return result
}
