package testutil

import (
	"context"
	"sort"

	"github.com/deskhive/deskhive/internal/domain/discount"
	"github.com/deskhive/deskhive/internal/domain/pricingrule"
	"github.com/deskhive/deskhive/internal/domain/tax"
)

// InMemoryPricingRuleStore implements pricingrule.Repository
type InMemoryPricingRuleStore struct {
	*InMemoryStore[*pricingrule.PricingRule]
}

func NewInMemoryPricingRuleStore() *InMemoryPricingRuleStore {
	return &InMemoryPricingRuleStore{
		InMemoryStore: NewInMemoryStore[*pricingrule.PricingRule](),
	}
}

func (s *InMemoryPricingRuleStore) Create(ctx context.Context, rule *pricingrule.PricingRule) error {
	return s.InMemoryStore.Create(ctx, rule.ID, rule)
}

func (s *InMemoryPricingRuleStore) List(ctx context.Context) ([]*pricingrule.PricingRule, error) {
	rules := s.InMemoryStore.List(ctx)
	// Stable order so tests don't depend on map iteration
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules, nil
}

// InMemoryDiscountStore implements discount.Repository
type InMemoryDiscountStore struct {
	*InMemoryStore[*discount.DiscountRule]
}

func NewInMemoryDiscountStore() *InMemoryDiscountStore {
	return &InMemoryDiscountStore{
		InMemoryStore: NewInMemoryStore[*discount.DiscountRule](),
	}
}

func (s *InMemoryDiscountStore) Create(ctx context.Context, rule *discount.DiscountRule) error {
	return s.InMemoryStore.Create(ctx, rule.ID, rule)
}

func (s *InMemoryDiscountStore) List(ctx context.Context) ([]*discount.DiscountRule, error) {
	rules := s.InMemoryStore.List(ctx)
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules, nil
}

// InMemoryTaxStore implements tax.Repository
type InMemoryTaxStore struct {
	*InMemoryStore[*tax.TaxRule]
}

func NewInMemoryTaxStore() *InMemoryTaxStore {
	return &InMemoryTaxStore{
		InMemoryStore: NewInMemoryStore[*tax.TaxRule](),
	}
}

func (s *InMemoryTaxStore) Create(ctx context.Context, rule *tax.TaxRule) error {
	return s.InMemoryStore.Create(ctx, rule.ID, rule)
}

func (s *InMemoryTaxStore) List(ctx context.Context) ([]*tax.TaxRule, error) {
	rules := s.InMemoryStore.List(ctx)
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules, nil
}
