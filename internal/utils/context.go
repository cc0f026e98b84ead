package utils

import (
	"context"
	"errors"

	"github.com/kingrain94/realty-api/internal/domain"
)

type ContextKey string

const (
	ClaimsKey   ContextKey = "claims"
	TenantKey   ContextKey = "tenant"
	AdminKey    ContextKey = "admin"
	CrossKey    ContextKey = "cross_tenant"
	LocaleKey   ContextKey = "locale"
	TenantIDKey ContextKey = "tenant_id"
)

var (
	ErrNoTenantInContext = errors.New("no tenant bound to context")
	ErrNoAdminInContext  = errors.New("no admin found in context")
)

// WithTenant binds the resolved tenant for the rest of the request.
func WithTenant(ctx context.Context, tenant *domain.Tenant) context.Context {
	return context.WithValue(ctx, TenantKey, tenant)
}

func TenantFromContext(ctx context.Context) (*domain.Tenant, error) {
	tenant, ok := ctx.Value(TenantKey).(*domain.Tenant)
	if !ok || tenant == nil {
		return nil, ErrNoTenantInContext
	}
	return tenant, nil
}

func WithAdmin(ctx context.Context, admin *domain.Admin) context.Context {
	return context.WithValue(ctx, AdminKey, admin)
}

func AdminFromContext(ctx context.Context) (*domain.Admin, error) {
	admin, ok := ctx.Value(AdminKey).(*domain.Admin)
	if !ok || admin == nil {
		return nil, ErrNoAdminInContext
	}
	return admin, nil
}

// WithCrossTenant marks the request as an explicit cross-tenant operation.
// Only super-admin routes set this.
func WithCrossTenant(ctx context.Context) context.Context {
	return context.WithValue(ctx, CrossKey, true)
}

func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, LocaleKey, locale)
}

// LocaleFromContext returns the requested locale or "" when none was asked for.
func LocaleFromContext(ctx context.Context) string {
	locale, _ := ctx.Value(LocaleKey).(string)
	return locale
}

// ScopeFromContext derives the repository scope for the request. A bound tenant
// always wins; otherwise the cross-tenant marker yields the escape hatch and
// anything else yields an unbound scope that sees nothing.
func ScopeFromContext(ctx context.Context) domain.TenantScope {
	if tenant, err := TenantFromContext(ctx); err == nil {
		return domain.ScopeTo(tenant.ID)
	}
	if cross, _ := ctx.Value(CrossKey).(bool); cross {
		return domain.CrossTenant()
	}
	return domain.TenantScope{}
}
