package service

import (
	"github.com/deskhive/deskhive/internal/config"
	"github.com/deskhive/deskhive/internal/domain/discount"
	"github.com/deskhive/deskhive/internal/domain/pricingrule"
	"github.com/deskhive/deskhive/internal/domain/tax"
	"github.com/deskhive/deskhive/internal/logger"
)

// ServiceParams bundles the dependencies services are constructed from.
// Repositories are the persistence collaborator owned by the calling
// layer; services load configuration through them once per call and never
// cache it.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	PricingRuleRepo pricingrule.Repository
	DiscountRepo    discount.Repository
	TaxRepo         tax.Repository
}
