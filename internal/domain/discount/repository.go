package discount

import (
	"context"
)

// Repository supplies a tenant's discount rules to the engine.
type Repository interface {
	List(ctx context.Context) ([]*DiscountRule, error)
}
