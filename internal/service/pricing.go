package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/deskhive/deskhive/internal/api/dto"
	"github.com/deskhive/deskhive/internal/domain/booking"
	"github.com/deskhive/deskhive/internal/domain/discount"
	"github.com/deskhive/deskhive/internal/domain/pricingrule"
	"github.com/deskhive/deskhive/internal/domain/proration"
	"github.com/deskhive/deskhive/internal/domain/tax"
	ierr "github.com/deskhive/deskhive/internal/errors"
	"github.com/deskhive/deskhive/internal/types"
)

// PricingService turns booking/subscription requests plus tenant pricing
// configuration into final, itemized prices. Every calculation is a pure
// function of its inputs; the service holds no state between calls and is
// safe for concurrent use.
type PricingService interface {
	CalculatePricing(ctx context.Context, req dto.CalculatePricingRequest) (*dto.PricingResult, error)
	CalculateSubscriptionPricing(ctx context.Context, req dto.CalculateSubscriptionPricingRequest) (*proration.SubscriptionProrationResult, error)
	CalculateTimeBasedPricing(ctx context.Context, req dto.CalculateTimeBasedPricingRequest) (*booking.TimeBasedPriceResult, error)
	CalculateHourlyBookingPrice(ctx context.Context, req dto.CalculateHourlyBookingPriceRequest) (*booking.HourlyPriceResult, error)
	CalculateBulkDiscount(ctx context.Context, quantity int64, unitPrice decimal.Decimal, tiers []discount.BulkTier) (*discount.BulkDiscountResult, error)
	CalculateMembershipDiscount(ctx context.Context, amount decimal.Decimal, level types.MembershipLevel, rates map[types.MembershipLevel]decimal.Decimal) discount.MembershipDiscountResult
	ValidatePricingRules(ctx context.Context, rules []*pricingrule.PricingRule) ([]pricingrule.SlotOverlap, error)
}

type pricingService struct {
	serviceParams  ServiceParams
	matcher        *pricingrule.Matcher
	discountEngine *discount.Engine
	taxEngine      *tax.Engine
	proration      *proration.Calculator
}

// NewPricingService creates a new pricing service. Services are cheap
// values meant to be constructed per call or per request scope.
func NewPricingService(serviceParams ServiceParams) PricingService {
	return &pricingService{
		serviceParams:  serviceParams,
		matcher:        pricingrule.NewMatcher(serviceParams.Logger),
		discountEngine: discount.NewEngine(serviceParams.Logger),
		taxEngine:      tax.NewEngine(serviceParams.Logger),
		proration:      proration.NewCalculator(serviceParams.Logger),
	}
}

// CalculatePricing prices a set of line items: per-item rule modifiers,
// then discounts on the subtotal, then tax on the discounted amount. The
// total is clamped at zero.
func (s *pricingService) CalculatePricing(ctx context.Context, req dto.CalculatePricingRequest) (*dto.PricingResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger := s.serviceParams.Logger.WithContext(ctx)
	currency := s.currency(req.Context.Currency)

	rules, discountRules, taxRules, err := s.loadConfiguration(ctx)
	if err != nil {
		return nil, err
	}

	logger.Infow("calculating pricing",
		"client_id", req.Context.ClientID,
		"line_items", len(req.LineItems),
		"pricing_rules", len(rules),
		"discount_rules", len(discountRules),
		"tax_rules", len(taxRules))

	result := &dto.PricingResult{
		LineItems: make([]dto.LineItemPricing, 0, len(req.LineItems)),
		Subtotal:  decimal.Zero,
	}

	for _, item := range req.LineItems {
		matched := s.matcher.Match(rules, pricingrule.MatchRequest{
			PlanType:  req.Context.PlanType,
			SpaceType: req.Context.SpaceType,
			Date:      req.Context.Date,
			Quantity:  item.Quantity,
			Timezone:  req.Context.Timezone,
		})

		effective, applied := s.matcher.ApplyModifiers(item.UnitPrice, matched)
		// Negative unit prices are clamped, never propagated.
		if effective.IsNegative() {
			logger.Warnw("negative effective unit price clamped to zero",
				"line_item_id", item.ID,
				"effective_unit_price", effective.String())
			effective = decimal.Zero
		}
		effective = types.RoundToCurrencyPrecision(effective, currency)

		amount := effective.Mul(decimal.NewFromInt(item.Quantity))
		result.LineItems = append(result.LineItems, dto.LineItemPricing{
			LineItemID:         item.ID,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			EffectiveUnitPrice: effective,
			Amount:             amount,
			AppliedModifiers:   applied,
		})
		result.Subtotal = result.Subtotal.Add(amount)
	}

	discountResult := s.discountEngine.Apply(result.Subtotal, discountRules, req.Context.DiscountCodes, currency)
	result.Discounts = discountResult.Applied
	result.TotalDiscounts = discountResult.TotalDiscount

	taxResult := s.taxEngine.Apply(discountResult.DiscountedSubtotal, taxRules, req.Context.Jurisdiction, currency)
	result.Taxes = taxResult.Applied
	result.TotalTaxes = taxResult.TotalTax

	total := discountResult.DiscountedSubtotal.Add(taxResult.TotalTax)
	if total.IsNegative() {
		total = decimal.Zero
	}
	result.Total = total

	logger.Infow("pricing calculated",
		"subtotal", result.Subtotal.String(),
		"total_discounts", result.TotalDiscounts.String(),
		"total_taxes", result.TotalTaxes.String(),
		"total", result.Total.String())

	return result, nil
}

// CalculateSubscriptionPricing prices a subscription interval as whole
// billing periods plus a prorated partial trailing period.
func (s *pricingService) CalculateSubscriptionPricing(ctx context.Context, req dto.CalculateSubscriptionPricingRequest) (*proration.SubscriptionProrationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.proration.CalculateSubscriptionPricing(
		req.MonthlyRate,
		req.StartDate,
		req.EndDate,
		req.BillingCycle,
		s.currency(req.Currency),
	)
}

// CalculateTimeBasedPricing applies early-bird or last-minute adjustments
// based on the lead time between booking and service date.
func (s *pricingService) CalculateTimeBasedPricing(ctx context.Context, req dto.CalculateTimeBasedPricingRequest) (*booking.TimeBasedPriceResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	result := booking.CalculateTimeBasedPricing(
		req.BasePrice,
		req.BookingDate,
		req.ServiceDate,
		req.Policy,
		s.currency(req.Currency),
	)
	return &result, nil
}

// CalculateHourlyBookingPrice bills an interval at an hourly rate, rounding
// elapsed time up to whole hours.
func (s *pricingService) CalculateHourlyBookingPrice(ctx context.Context, req dto.CalculateHourlyBookingPriceRequest) (*booking.HourlyPriceResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	minimumHours := req.MinimumHours
	if minimumHours <= 0 && s.serviceParams.Config != nil {
		minimumHours = int64(s.serviceParams.Config.Pricing.MinimumBilledHours)
	}
	if minimumHours <= 0 {
		minimumHours = booking.DefaultMinimumHours
	}
	return booking.CalculateHourlyBookingPrice(req.HourlyRate, req.Start, req.End, minimumHours)
}

// CalculateBulkDiscount resolves the best qualifying volume tier.
func (s *pricingService) CalculateBulkDiscount(ctx context.Context, quantity int64, unitPrice decimal.Decimal, tiers []discount.BulkTier) (*discount.BulkDiscountResult, error) {
	return discount.CalculateBulkDiscount(quantity, unitPrice, tiers)
}

// CalculateMembershipDiscount applies a membership level's configured rate.
func (s *pricingService) CalculateMembershipDiscount(ctx context.Context, amount decimal.Decimal, level types.MembershipLevel, rates map[types.MembershipLevel]decimal.Decimal) discount.MembershipDiscountResult {
	return discount.CalculateMembershipDiscount(amount, level, rates)
}

// ValidatePricingRules checks rule invariants and reports authoring-time
// time-slot overlaps. Overlaps are warnings; invariant violations are
// validation errors.
func (s *pricingService) ValidatePricingRules(ctx context.Context, rules []*pricingrule.PricingRule) ([]pricingrule.SlotOverlap, error) {
	var overlaps []pricingrule.SlotOverlap
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		overlaps = append(overlaps, s.matcher.ValidateTimeSlots(rule)...)
	}
	return overlaps, nil
}

// loadConfiguration fetches the tenant's rule sets for a single
// calculation. A nil repository contributes an empty rule set; load
// failures surface as database errors.
func (s *pricingService) loadConfiguration(ctx context.Context) ([]*pricingrule.PricingRule, []*discount.DiscountRule, []*tax.TaxRule, error) {
	var (
		rules         []*pricingrule.PricingRule
		discountRules []*discount.DiscountRule
		taxRules      []*tax.TaxRule
		err           error
	)

	if s.serviceParams.PricingRuleRepo != nil {
		rules, err = s.serviceParams.PricingRuleRepo.List(ctx)
		if err != nil {
			return nil, nil, nil, ierr.WithError(err).
				WithHint("Failed to load pricing rules").
				Mark(ierr.ErrDatabase)
		}
	}
	if s.serviceParams.DiscountRepo != nil {
		discountRules, err = s.serviceParams.DiscountRepo.List(ctx)
		if err != nil {
			return nil, nil, nil, ierr.WithError(err).
				WithHint("Failed to load discount rules").
				Mark(ierr.ErrDatabase)
		}
	}
	if s.serviceParams.TaxRepo != nil {
		taxRules, err = s.serviceParams.TaxRepo.List(ctx)
		if err != nil {
			return nil, nil, nil, ierr.WithError(err).
				WithHint("Failed to load tax rules").
				Mark(ierr.ErrDatabase)
		}
	}

	return rules, discountRules, taxRules, nil
}

// currency falls back to the configured default when the context does not
// specify one.
func (s *pricingService) currency(currency string) string {
	if currency != "" {
		return currency
	}
	if s.serviceParams.Config != nil {
		return s.serviceParams.Config.Pricing.DefaultCurrency
	}
	return "usd"
}
