package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/deskhive/deskhive/internal/api/dto"
	"github.com/deskhive/deskhive/internal/config"
	"github.com/deskhive/deskhive/internal/domain/booking"
	"github.com/deskhive/deskhive/internal/domain/discount"
	"github.com/deskhive/deskhive/internal/domain/pricingrule"
	"github.com/deskhive/deskhive/internal/domain/tax"
	ierr "github.com/deskhive/deskhive/internal/errors"
	"github.com/deskhive/deskhive/internal/logger"
	"github.com/deskhive/deskhive/internal/testutil"
	"github.com/deskhive/deskhive/internal/types"
)

type PricingServiceSuite struct {
	suite.Suite
	ctx     context.Context
	service PricingService

	pricingRuleRepo *testutil.InMemoryPricingRuleStore
	discountRepo    *testutil.InMemoryDiscountStore
	taxRepo         *testutil.InMemoryTaxStore
}

func TestPricingService(t *testing.T) {
	suite.Run(t, new(PricingServiceSuite))
}

func (s *PricingServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.pricingRuleRepo = testutil.NewInMemoryPricingRuleStore()
	s.discountRepo = testutil.NewInMemoryDiscountStore()
	s.taxRepo = testutil.NewInMemoryTaxStore()

	s.service = NewPricingService(ServiceParams{
		Logger:          logger.GetLogger(),
		Config:          config.GetDefaultConfig(),
		PricingRuleRepo: s.pricingRuleRepo,
		DiscountRepo:    s.discountRepo,
		TaxRepo:         s.taxRepo,
	})
}

func (s *PricingServiceSuite) seedPeakHoursRule() {
	s.NoError(s.pricingRuleRepo.Create(s.ctx, &pricingrule.PricingRule{
		ID:       "rule_peak",
		RuleType: types.PricingRuleTypeTimeBased,
		TimeSlots: []pricingrule.TimeSlot{{
			Start: "09:00",
			End:   "18:00",
			Days:  []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		}},
		Modifier:     decimal.RequireFromString("1.5"),
		ModifierType: types.ModifierTypeMultiplier,
		Priority:     1,
		BaseModel:    types.GetDefaultBaseModel(s.ctx),
	}))
}

func (s *PricingServiceSuite) seedDiscountAndTax() {
	s.NoError(s.discountRepo.Create(s.ctx, &discount.DiscountRule{
		ID:        "disc_member",
		Name:      "member discount",
		Type:      types.DiscountTypePercentage,
		Value:     decimal.NewFromInt(10),
		Priority:  1,
		Stackable: true,
		BaseModel: types.GetDefaultBaseModel(s.ctx),
	}))
	s.NoError(s.taxRepo.Create(s.ctx, &tax.TaxRule{
		ID:           "tax_vat",
		Name:         "VAT",
		Rate:         decimal.NewFromInt(20),
		Type:         types.TaxRuleTypeVAT,
		Jurisdiction: "DE",
		BaseModel:    types.GetDefaultBaseModel(s.ctx),
	}))
}

// 2024-06-10 is a Monday.
func peakMonday() time.Time {
	return time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
}

func (s *PricingServiceSuite) TestCalculatePricing_FullFlow() {
	s.seedPeakHoursRule()
	s.seedDiscountAndTax()

	result, err := s.service.CalculatePricing(s.ctx, dto.CalculatePricingRequest{
		LineItems: []dto.LineItem{
			{ID: "li_desk", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		},
		Context: dto.PricingContext{
			ClientID:     "client_1",
			Date:         peakMonday(),
			Currency:     "eur",
			Jurisdiction: "DE",
		},
	})

	s.NoError(err)
	s.Len(result.LineItems, 1)

	// 100 * 1.5 peak multiplier, two units
	s.True(result.LineItems[0].EffectiveUnitPrice.Equal(decimal.NewFromInt(150)))
	s.True(result.Subtotal.Equal(decimal.NewFromInt(300)))

	// 10% discount, then 20% VAT on 270
	s.True(result.TotalDiscounts.Equal(decimal.NewFromInt(30)))
	s.True(result.TotalTaxes.Equal(decimal.NewFromInt(54)))
	s.True(result.Total.Equal(decimal.NewFromInt(324)),
		"expected total 324, got %s", result.Total.String())
}

func (s *PricingServiceSuite) TestCalculatePricing_NoConfiguredRules() {
	result, err := s.service.CalculatePricing(s.ctx, dto.CalculatePricingRequest{
		LineItems: []dto.LineItem{
			{ID: "li_desk", Quantity: 3, UnitPrice: decimal.RequireFromString("49.99")},
		},
		Context: dto.PricingContext{Date: peakMonday(), Currency: "usd"},
	})

	s.NoError(err)
	s.True(result.Subtotal.Equal(decimal.RequireFromString("149.97")))
	s.True(result.TotalDiscounts.IsZero())
	s.True(result.TotalTaxes.IsZero())
	s.True(result.Total.Equal(result.Subtotal))
}

func (s *PricingServiceSuite) TestCalculatePricing_OffPeakSkipsRule() {
	s.seedPeakHoursRule()

	// Saturday is outside the seeded slot
	saturday := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	result, err := s.service.CalculatePricing(s.ctx, dto.CalculatePricingRequest{
		LineItems: []dto.LineItem{{ID: "li_desk", Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
		Context:   dto.PricingContext{Date: saturday, Currency: "usd"},
	})

	s.NoError(err)
	s.True(result.LineItems[0].EffectiveUnitPrice.Equal(decimal.NewFromInt(100)))
	s.Empty(result.LineItems[0].AppliedModifiers)
}

// A negative fixed adjustment that undercuts the base price clamps the
// effective unit price at zero instead of producing a negative line.
func (s *PricingServiceSuite) TestCalculatePricing_NegativeEffectivePriceClamped() {
	s.NoError(s.pricingRuleRepo.Create(s.ctx, &pricingrule.PricingRule{
		ID:           "rule_credit",
		RuleType:     types.PricingRuleTypeDynamic,
		Modifier:     decimal.NewFromInt(-150),
		ModifierType: types.ModifierTypeFixedAmount,
		Priority:     1,
		BaseModel:    types.GetDefaultBaseModel(s.ctx),
	}))

	result, err := s.service.CalculatePricing(s.ctx, dto.CalculatePricingRequest{
		LineItems: []dto.LineItem{{ID: "li_desk", Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
		Context:   dto.PricingContext{Date: peakMonday(), Currency: "usd"},
	})

	s.NoError(err)
	s.True(result.LineItems[0].EffectiveUnitPrice.IsZero())
	s.True(result.Total.GreaterThanOrEqual(decimal.Zero))
}

func (s *PricingServiceSuite) TestCalculatePricing_ValidationErrors() {
	s.Run("NoLineItems", func() {
		_, err := s.service.CalculatePricing(s.ctx, dto.CalculatePricingRequest{
			Context: dto.PricingContext{Date: peakMonday()},
		})
		s.Error(err)
		s.True(ierr.IsValidation(err))
	})

	s.Run("DuplicateLineItemIDs", func() {
		_, err := s.service.CalculatePricing(s.ctx, dto.CalculatePricingRequest{
			LineItems: []dto.LineItem{
				{ID: "li_dup", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
				{ID: "li_dup", Quantity: 1, UnitPrice: decimal.NewFromInt(20)},
			},
			Context: dto.PricingContext{Date: peakMonday()},
		})
		s.Error(err)
		s.True(ierr.IsValidation(err))
	})

	s.Run("NegativeQuantity", func() {
		_, err := s.service.CalculatePricing(s.ctx, dto.CalculatePricingRequest{
			LineItems: []dto.LineItem{{ID: "li_bad", Quantity: -1, UnitPrice: decimal.NewFromInt(10)}},
			Context:   dto.PricingContext{Date: peakMonday()},
		})
		s.Error(err)
		s.True(ierr.IsValidation(err))
	})
}

// Pure calculation: the same request against the same configuration always
// produces the same result.
func (s *PricingServiceSuite) TestCalculatePricing_Deterministic() {
	s.seedPeakHoursRule()
	s.seedDiscountAndTax()

	req := dto.CalculatePricingRequest{
		LineItems: []dto.LineItem{{ID: "li_desk", Quantity: 2, UnitPrice: decimal.RequireFromString("99.99")}},
		Context: dto.PricingContext{
			Date:         peakMonday(),
			Currency:     "eur",
			Jurisdiction: "DE",
		},
	}

	first, err := s.service.CalculatePricing(s.ctx, req)
	s.NoError(err)
	second, err := s.service.CalculatePricing(s.ctx, req)
	s.NoError(err)

	s.True(first.Total.Equal(second.Total))
	s.True(first.Subtotal.Equal(second.Subtotal))
}

func (s *PricingServiceSuite) TestCalculateSubscriptionPricing() {
	result, err := s.service.CalculateSubscriptionPricing(s.ctx, dto.CalculateSubscriptionPricingRequest{
		MonthlyRate:  decimal.NewFromInt(310),
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		BillingCycle: types.BillingCycleMonthly,
		Currency:     "usd",
	})

	s.NoError(err)
	s.Equal(2, result.FullPeriods)
	s.True(result.TotalAmount.Equal(decimal.NewFromInt(770)))
}

func (s *PricingServiceSuite) TestCalculateSubscriptionPricing_InvalidCycle() {
	_, err := s.service.CalculateSubscriptionPricing(s.ctx, dto.CalculateSubscriptionPricingRequest{
		MonthlyRate:  decimal.NewFromInt(310),
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		BillingCycle: types.BillingCycle("FORTNIGHTLY"),
	})

	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PricingServiceSuite) TestCalculateTimeBasedPricing() {
	result, err := s.service.CalculateTimeBasedPricing(s.ctx, dto.CalculateTimeBasedPricingRequest{
		BasePrice:   decimal.NewFromInt(100),
		BookingDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ServiceDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		Policy: booking.TimeAdjustmentPolicy{
			EarlyBird: &booking.EarlyBirdPolicy{Days: 14, Discount: decimal.NewFromInt(10)},
		},
		Currency: "usd",
	})

	s.NoError(err)
	s.Equal(booking.AdjustmentTypeEarlyBird, result.Adjustment.Type)
	s.True(result.AdjustedPrice.Equal(decimal.NewFromInt(90)))
}

func (s *PricingServiceSuite) TestCalculateHourlyBookingPrice() {
	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	result, err := s.service.CalculateHourlyBookingPrice(s.ctx, dto.CalculateHourlyBookingPriceRequest{
		HourlyRate: decimal.NewFromInt(50),
		Start:      start,
		End:        start.Add(150 * time.Minute),
	})

	s.NoError(err)
	s.Equal(int64(3), result.BilledHours)
	s.True(result.Price.Equal(decimal.NewFromInt(150)))
}

func (s *PricingServiceSuite) TestCalculateBulkDiscount() {
	result, err := s.service.CalculateBulkDiscount(s.ctx, 10, decimal.NewFromInt(100), []discount.BulkTier{
		{MinQuantity: 5, DiscountPercentage: decimal.NewFromInt(10)},
	})

	s.NoError(err)
	s.True(result.DiscountedTotal.Equal(decimal.NewFromInt(900)))
}

func (s *PricingServiceSuite) TestCalculateMembershipDiscount() {
	rates := map[types.MembershipLevel]decimal.Decimal{
		types.MembershipLevelGold: decimal.NewFromInt(15),
	}

	result := s.service.CalculateMembershipDiscount(s.ctx, decimal.NewFromInt(200), types.MembershipLevelGold, rates)
	s.True(result.DiscountedAmount.Equal(decimal.NewFromInt(170)))
}

func (s *PricingServiceSuite) TestValidatePricingRules() {
	weekday := []time.Weekday{time.Monday}

	valid := &pricingrule.PricingRule{
		ID:           "rule_ok",
		RuleType:     types.PricingRuleTypeTimeBased,
		Modifier:     decimal.NewFromInt(2),
		ModifierType: types.ModifierTypeMultiplier,
		TimeSlots: []pricingrule.TimeSlot{
			{Start: "09:00", End: "12:00", Days: weekday},
			{Start: "11:00", End: "14:00", Days: weekday},
		},
		BaseModel: types.GetDefaultBaseModel(s.ctx),
	}

	overlaps, err := s.service.ValidatePricingRules(s.ctx, []*pricingrule.PricingRule{valid})
	s.NoError(err)
	s.Len(overlaps, 1)

	invalid := &pricingrule.PricingRule{
		ID:           "rule_bad",
		RuleType:     types.PricingRuleTypeTimeBased,
		Modifier:     decimal.NewFromInt(-1),
		ModifierType: types.ModifierTypeMultiplier,
	}

	_, err = s.service.ValidatePricingRules(s.ctx, []*pricingrule.PricingRule{invalid})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
