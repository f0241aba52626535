package types

import (
	"context"
)

type contextKey string

const (
	CtxRequestID     contextKey = "ctx_request_id"
	CtxTenantID      contextKey = "ctx_tenant_id"
	CtxEnvironmentID contextKey = "ctx_environment_id"
	CtxUserID        contextKey = "ctx_user_id"
)

// Default identifiers used when a context carries no tenant scoping, e.g.
// in scripts and tests.
const (
	DefaultTenantID = "tenant_default"
	DefaultUserID   = "user_system"
)

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

func SetTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, CtxTenantID, tenantID)
}

func SetEnvironmentID(ctx context.Context, environmentID string) context.Context {
	return context.WithValue(ctx, CtxEnvironmentID, environmentID)
}

func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

func GetRequestID(ctx context.Context) string {
	return ctxValue(ctx, CtxRequestID)
}

func GetTenantID(ctx context.Context) string {
	return ctxValue(ctx, CtxTenantID)
}

func GetEnvironmentID(ctx context.Context) string {
	return ctxValue(ctx, CtxEnvironmentID)
}

func GetUserID(ctx context.Context) string {
	return ctxValue(ctx, CtxUserID)
}

func ctxValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
