package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/domain"
)

// ContentRepository is a mock type for the ContentRepository type
type ContentRepository[T any] struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx, scope, filter
func (m *ContentRepository[T]) List(ctx context.Context, scope domain.TenantScope, filter domain.ContentFilter) ([]T, int64, error) {
	args := m.MethodCalled("List", ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]T), args.Get(1).(int64), args.Error(2)
}

// GetByID provides a mock function with given fields: ctx, scope, id
func (m *ContentRepository[T]) GetByID(ctx context.Context, scope domain.TenantScope, id string) (*T, error) {
	args := m.MethodCalled("GetByID", ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

// GetBySlug provides a mock function with given fields: ctx, scope, slug
func (m *ContentRepository[T]) GetBySlug(ctx context.Context, scope domain.TenantScope, slug string) (*T, error) {
	args := m.MethodCalled("GetBySlug", ctx, scope, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

// SlugExists provides a mock function with given fields: ctx, scope, slug, excludeID
func (m *ContentRepository[T]) SlugExists(ctx context.Context, scope domain.TenantScope, slug string, excludeID string) (bool, error) {
	args := m.MethodCalled("SlugExists", ctx, scope, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

// Create provides a mock function with given fields: ctx, scope, record, translations
func (m *ContentRepository[T]) Create(ctx context.Context, scope domain.TenantScope, record *T, translations []domain.Translation) error {
	args := m.MethodCalled("Create", ctx, scope, record, translations)
	return args.Error(0)
}

// Update provides a mock function with given fields: ctx, scope, record, translations
func (m *ContentRepository[T]) Update(ctx context.Context, scope domain.TenantScope, record *T, translations []domain.Translation) error {
	args := m.MethodCalled("Update", ctx, scope, record, translations)
	return args.Error(0)
}

// Delete provides a mock function with given fields: ctx, scope, id
func (m *ContentRepository[T]) Delete(ctx context.Context, scope domain.TenantScope, id string) error {
	args := m.MethodCalled("Delete", ctx, scope, id)
	return args.Error(0)
}

// ListingRepository is a mock type for the ListingRepository type
type ListingRepository struct {
	ContentRepository[domain.Listing]
}

// GetBySourceURL provides a mock function with given fields: ctx, scope, sourceURL
func (m *ListingRepository) GetBySourceURL(ctx context.Context, scope domain.TenantScope, sourceURL string) (*domain.Listing, error) {
	args := m.Called(ctx, scope, sourceURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

// ListByIDs provides a mock function with given fields: ctx, scope, ids
func (m *ListingRepository) ListByIDs(ctx context.Context, scope domain.TenantScope, ids []string) ([]domain.Listing, error) {
	args := m.Called(ctx, scope, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

// ListingComplexRepository is a mock type for the ListingComplexRepository type
type ListingComplexRepository struct {
	ContentRepository[domain.ListingComplex]
}

// Reorder provides a mock function with given fields: ctx, scope, id, position
func (m *ListingComplexRepository) Reorder(ctx context.Context, scope domain.TenantScope, id string, position int) error {
	args := m.Called(ctx, scope, id, position)
	return args.Error(0)
}
