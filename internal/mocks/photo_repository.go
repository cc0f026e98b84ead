package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/domain"
)

// PhotoRepository is a mock type for the PhotoRepository type
type PhotoRepository struct {
	mock.Mock
}

// ListByParent provides a mock function with given fields: ctx, scope, parent
func (m *PhotoRepository) ListByParent(ctx context.Context, scope domain.TenantScope, parent domain.PhotoParent) ([]domain.Photo, error) {
	args := m.Called(ctx, scope, parent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}

// GetByID provides a mock function with given fields: ctx, scope, id
func (m *PhotoRepository) GetByID(ctx context.Context, scope domain.TenantScope, id string) (*domain.Photo, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

// Add provides a mock function with given fields: ctx, scope, photo, position
func (m *PhotoRepository) Add(ctx context.Context, scope domain.TenantScope, photo *domain.Photo, position int) error {
	args := m.Called(ctx, scope, photo, position)
	return args.Error(0)
}

// SetMain provides a mock function with given fields: ctx, scope, parent, photoID
func (m *PhotoRepository) SetMain(ctx context.Context, scope domain.TenantScope, parent domain.PhotoParent, photoID string) error {
	args := m.Called(ctx, scope, parent, photoID)
	return args.Error(0)
}

// Reorder provides a mock function with given fields: ctx, scope, parent, photoID, position
func (m *PhotoRepository) Reorder(ctx context.Context, scope domain.TenantScope, parent domain.PhotoParent, photoID string, position int) error {
	args := m.Called(ctx, scope, parent, photoID, position)
	return args.Error(0)
}

// Delete provides a mock function with given fields: ctx, scope, parent, photoID
func (m *PhotoRepository) Delete(ctx context.Context, scope domain.TenantScope, parent domain.PhotoParent, photoID string) (*domain.Photo, error) {
	args := m.Called(ctx, scope, parent, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}
