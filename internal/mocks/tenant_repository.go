package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/domain"
)

// TenantRepository is a mock type for the TenantRepository type
type TenantRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, tenant
func (m *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	args := m.Called(ctx, tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (m *TenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

// GetByAPIKey provides a mock function with given fields: ctx, apiKey
func (m *TenantRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Tenant, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

// GetByDomain provides a mock function with given fields: ctx, domainName
func (m *TenantRepository) GetByDomain(ctx context.Context, domainName string) (*domain.Tenant, error) {
	args := m.Called(ctx, domainName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

// Update provides a mock function with given fields: ctx, tenant
func (m *TenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

// Delete provides a mock function with given fields: ctx, id
func (m *TenantRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// List provides a mock function with given fields: ctx, filter
func (m *TenantRepository) List(ctx context.Context, filter domain.TenantFilter) ([]domain.Tenant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

// CountDependents provides a mock function with given fields: ctx, id
func (m *TenantRepository) CountDependents(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
