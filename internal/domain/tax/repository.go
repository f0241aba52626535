package tax

import (
	"context"
)

// Repository supplies a tenant's tax rules to the engine.
type Repository interface {
	List(ctx context.Context) ([]*TaxRule, error)
}
