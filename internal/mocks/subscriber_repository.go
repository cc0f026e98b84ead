package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/domain"
)

// SubscriberRepository is a mock type for the SubscriberRepository type
type SubscriberRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, scope, subscriber
func (m *SubscriberRepository) Create(ctx context.Context, scope domain.TenantScope, subscriber *domain.Subscriber) error {
	args := m.Called(ctx, scope, subscriber)
	return args.Error(0)
}

// GetByID provides a mock function with given fields: ctx, scope, id
func (m *SubscriberRepository) GetByID(ctx context.Context, scope domain.TenantScope, id string) (*domain.Subscriber, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscriber), args.Error(1)
}

// List provides a mock function with given fields: ctx, scope, filter
func (m *SubscriberRepository) List(ctx context.Context, scope domain.TenantScope, filter domain.ContentFilter) ([]domain.Subscriber, int64, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Subscriber), args.Get(1).(int64), args.Error(2)
}

// Update provides a mock function with given fields: ctx, scope, subscriber
func (m *SubscriberRepository) Update(ctx context.Context, scope domain.TenantScope, subscriber *domain.Subscriber) error {
	args := m.Called(ctx, scope, subscriber)
	return args.Error(0)
}

// Delete provides a mock function with given fields: ctx, scope, id
func (m *SubscriberRepository) Delete(ctx context.Context, scope domain.TenantScope, id string) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}

// DeleteUnconfirmedBefore provides a mock function with given fields: ctx, scope, before
func (m *SubscriberRepository) DeleteUnconfirmedBefore(ctx context.Context, scope domain.TenantScope, before time.Time) (int64, error) {
	args := m.Called(ctx, scope, before)
	return args.Get(0).(int64), args.Error(1)
}
