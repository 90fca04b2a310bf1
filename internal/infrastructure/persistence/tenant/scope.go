// Package tenant scopes gorm queries to one company.
//
// Usage:
//
//	db.Scopes(tenant.Scope(tenantID)).Find(&invoices)
package tenant

import (
	"context"
	"errors"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTenantIDRequired is returned when a query would run without a tenant
var ErrTenantIDRequired = errors.New("tenant_id is required")

// Scope restricts a query to rows of tenantID. A nil tenant fails the query
// instead of silently matching every tenant.
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantIDRequired)
			return db
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}

// FromContext scopes db to the tenant stored in ctx by the tenant middleware
func FromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).Scopes(Scope(logger.GetTenantID(ctx)))
}
