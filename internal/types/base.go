package types

import (
	"context"
	"time"
)

// Status is the lifecycle state of a tenant-configured row.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

// BaseModel carries the tenant scoping and audit fields shared by all
// tenant-configured entities. Rules are loaded per tenant by the calling
// layer; the engine only reads these fields.
type BaseModel struct {
	TenantID      string    `json:"tenant_id"`
	EnvironmentID string    `json:"environment_id"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	CreatedBy     string    `json:"created_by"`
	UpdatedBy     string    `json:"updated_by"`
}

// GetDefaultBaseModel builds a BaseModel from the scoping carried in ctx.
func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	tenantID := GetTenantID(ctx)
	if tenantID == "" {
		tenantID = DefaultTenantID
	}
	userID := GetUserID(ctx)
	if userID == "" {
		userID = DefaultUserID
	}
	return BaseModel{
		TenantID:      tenantID,
		EnvironmentID: GetEnvironmentID(ctx),
		Status:        StatusPublished,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     userID,
		UpdatedBy:     userID,
	}
}
