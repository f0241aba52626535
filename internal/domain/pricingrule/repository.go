package pricingrule

import (
	"context"
)

// Repository supplies a tenant's pricing rules to the engine. Persistence
// is owned by the calling layer; the engine never caches what it loads.
type Repository interface {
	List(ctx context.Context) ([]*PricingRule, error)
}
