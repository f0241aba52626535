package testutil

import (
	"context"

	"github.com/deskhive/deskhive/internal/types"
)

// SetupContext returns a context carrying default tenant scoping for tests.
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.SetTenantID(ctx, types.DefaultTenantID)
	ctx = types.SetUserID(ctx, types.DefaultUserID)
	ctx = types.SetRequestID(ctx, types.GenerateUUIDWithPrefix("req"))
	return ctx
}
