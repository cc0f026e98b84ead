package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/domain"
)

// TenantResolver is a mock type for the TenantResolver type
type TenantResolver struct {
	mock.Mock
}

// Resolve provides a mock function with given fields: ctx, apiKey, host
func (m *TenantResolver) Resolve(ctx context.Context, apiKey string, host string) (*domain.Tenant, error) {
	args := m.Called(ctx, apiKey, host)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (m *TenantResolver) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}
