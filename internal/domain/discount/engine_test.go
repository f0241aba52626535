package discount

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/deskhive/deskhive/internal/logger"
	"github.com/deskhive/deskhive/internal/types"
)

func newTestEngine() *Engine {
	return NewEngine(logger.GetLogger())
}

func publishedRule(id string, priority int, ruleType types.DiscountType, value string) *DiscountRule {
	return &DiscountRule{
		ID:        id,
		Name:      id,
		Type:      ruleType,
		Value:     decimal.RequireFromString(value),
		Priority:  priority,
		Stackable: true,
		BaseModel: types.BaseModel{Status: types.StatusPublished},
	}
}

func TestEngineApply_PercentageOnRemainingAmount(t *testing.T) {
	engine := newTestEngine()

	rules := []*DiscountRule{
		publishedRule("disc_10pct", 1, types.DiscountTypePercentage, "10"),
		publishedRule("disc_flat20", 2, types.DiscountTypeFixedAmount, "20"),
	}

	// 1000 - 10% = 900, then -20 = 880
	result := engine.Apply(decimal.NewFromInt(1000), rules, nil, "usd")

	assert.Len(t, result.Applied, 2)
	assert.True(t, result.Applied[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, result.Applied[1].Amount.Equal(decimal.NewFromInt(20)))
	assert.True(t, result.TotalDiscount.Equal(decimal.NewFromInt(120)))
	assert.True(t, result.DiscountedSubtotal.Equal(decimal.NewFromInt(880)))
}

// Percentage rules compute against the amount remaining after earlier rules,
// so application order changes the outcome.
func TestEngineApply_PriorityOrdering(t *testing.T) {
	engine := newTestEngine()

	flat := publishedRule("disc_flat100", 1, types.DiscountTypeFixedAmount, "100")
	pct := publishedRule("disc_10pct", 2, types.DiscountTypePercentage, "10")

	// Flat first: 1000 - 100 = 900, then 10% of 900 = 90 -> 810
	result := engine.Apply(decimal.NewFromInt(1000), []*DiscountRule{pct, flat}, nil, "usd")

	assert.Len(t, result.Applied, 2)
	assert.Equal(t, "disc_flat100", result.Applied[0].RuleID)
	assert.Equal(t, "disc_10pct", result.Applied[1].RuleID)
	assert.True(t, result.DiscountedSubtotal.Equal(decimal.NewFromInt(810)),
		"expected 810, got %s", result.DiscountedSubtotal.String())
}

func TestEngineApply_MaxDiscountCap(t *testing.T) {
	engine := newTestEngine()

	rule := publishedRule("disc_50pct", 1, types.DiscountTypePercentage, "50")
	rule.MaxDiscount = lo.ToPtr(decimal.NewFromInt(75))

	result := engine.Apply(decimal.NewFromInt(1000), []*DiscountRule{rule}, nil, "usd")

	assert.True(t, result.TotalDiscount.Equal(decimal.NewFromInt(75)))
	assert.True(t, result.DiscountedSubtotal.Equal(decimal.NewFromInt(925)))
}

func TestEngineApply_NonStackableSuppressesLaterNonStackables(t *testing.T) {
	engine := newTestEngine()

	first := publishedRule("disc_a", 1, types.DiscountTypePercentage, "10")
	first.Stackable = false
	second := publishedRule("disc_b", 2, types.DiscountTypePercentage, "20")
	second.Stackable = false
	stackable := publishedRule("disc_c", 3, types.DiscountTypeFixedAmount, "5")

	result := engine.Apply(decimal.NewFromInt(1000), []*DiscountRule{first, second, stackable}, nil, "usd")

	assert.Len(t, result.Applied, 2)
	assert.Equal(t, "disc_a", result.Applied[0].RuleID)
	assert.Equal(t, "disc_c", result.Applied[1].RuleID)
	assert.True(t, result.TotalDiscount.Equal(decimal.NewFromInt(105)))
}

func TestEngineApply_CouponCodeFiltering(t *testing.T) {
	engine := newTestEngine()

	generic := publishedRule("disc_generic", 1, types.DiscountTypeFixedAmount, "10")
	coded := publishedRule("disc_coded", 2, types.DiscountTypeFixedAmount, "50")
	coded.CouponCode = "SUMMER"

	t.Run("CodeNotSupplied", func(t *testing.T) {
		result := engine.Apply(decimal.NewFromInt(100), []*DiscountRule{generic, coded}, nil, "usd")
		assert.Len(t, result.Applied, 1)
		assert.Equal(t, "disc_generic", result.Applied[0].RuleID)
	})

	t.Run("CodeSupplied", func(t *testing.T) {
		result := engine.Apply(decimal.NewFromInt(100), []*DiscountRule{generic, coded}, []string{"SUMMER"}, "usd")
		assert.Len(t, result.Applied, 2)
		assert.True(t, result.TotalDiscount.Equal(decimal.NewFromInt(60)))
	})
}

func TestEngineApply_SkipsInactiveRules(t *testing.T) {
	engine := newTestEngine()

	archived := publishedRule("disc_archived", 1, types.DiscountTypePercentage, "50")
	archived.Status = types.StatusArchived

	result := engine.Apply(decimal.NewFromInt(100), []*DiscountRule{archived}, nil, "usd")

	assert.Empty(t, result.Applied)
	assert.True(t, result.DiscountedSubtotal.Equal(decimal.NewFromInt(100)))
}

// Discounts never push the subtotal below zero; a fixed discount larger
// than the remaining amount is truncated.
func TestEngineApply_FloorsAtZero(t *testing.T) {
	engine := newTestEngine()

	rules := []*DiscountRule{
		publishedRule("disc_big", 1, types.DiscountTypeFixedAmount, "150"),
		publishedRule("disc_late", 2, types.DiscountTypeFixedAmount, "30"),
	}

	result := engine.Apply(decimal.NewFromInt(100), rules, nil, "usd")

	assert.Len(t, result.Applied, 1)
	assert.True(t, result.Applied[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, result.DiscountedSubtotal.IsZero())
}

func TestEngineApply_ZeroSubtotal(t *testing.T) {
	engine := newTestEngine()

	rules := []*DiscountRule{publishedRule("disc_10pct", 1, types.DiscountTypePercentage, "10")}
	result := engine.Apply(decimal.Zero, rules, nil, "usd")

	assert.Empty(t, result.Applied)
	assert.True(t, result.TotalDiscount.IsZero())
	assert.True(t, result.DiscountedSubtotal.IsZero())
}

func TestEngineApply_CurrencyRounding(t *testing.T) {
	engine := newTestEngine()

	rule := publishedRule("disc_third", 1, types.DiscountTypePercentage, "33.333")

	// 10.00 * 0.33333 = 3.3333 -> 3.33 in usd
	result := engine.Apply(decimal.RequireFromString("10.00"), []*DiscountRule{rule}, nil, "usd")
	assert.True(t, result.TotalDiscount.Equal(decimal.RequireFromString("3.33")))

	// 1000 * 0.33333 = 333.33 -> 333 in jpy
	result = engine.Apply(decimal.RequireFromString("1000"), []*DiscountRule{rule}, nil, "jpy")
	assert.True(t, result.TotalDiscount.Equal(decimal.RequireFromString("333")))
}

func TestEngineApply_RoundTripInvariant(t *testing.T) {
	engine := newTestEngine()

	rules := []*DiscountRule{
		publishedRule("disc_a", 1, types.DiscountTypePercentage, "12.5"),
		publishedRule("disc_b", 2, types.DiscountTypeFixedAmount, "7.77"),
		publishedRule("disc_c", 3, types.DiscountTypePercentage, "33.333"),
	}

	subtotals := []string{"0.01", "99.99", "1234.56", "100000"}
	for _, s := range subtotals {
		subtotal := decimal.RequireFromString(s)
		result := engine.Apply(subtotal, rules, nil, "usd")
		assert.True(t, result.DiscountedSubtotal.Add(result.TotalDiscount).Equal(subtotal),
			"subtotal %s: %s + %s != %s", s, result.DiscountedSubtotal.String(), result.TotalDiscount.String(), s)
	}
}
