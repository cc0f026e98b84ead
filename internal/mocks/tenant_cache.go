package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/domain"
)

// TenantCache is a mock type for the TenantCache type
type TenantCache struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, key
func (m *TenantCache) Get(ctx context.Context, key string) (*domain.Tenant, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

// Set provides a mock function with given fields: ctx, key, tenant
func (m *TenantCache) Set(ctx context.Context, key string, tenant *domain.Tenant) error {
	args := m.Called(ctx, key, tenant)
	return args.Error(0)
}

// Delete provides a mock function with given fields: ctx, keys
func (m *TenantCache) Delete(ctx context.Context, keys ...string) error {
	_ca := []interface{}{ctx}
	for _, _va := range keys {
		_ca = append(_ca, _va)
	}
	args := m.Called(_ca...)
	return args.Error(0)
}
