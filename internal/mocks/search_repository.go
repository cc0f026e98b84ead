package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/domain"
)

// SearchRepository is a mock type for the SearchRepository type
type SearchRepository struct {
	mock.Mock
}

// IndexListing provides a mock function with given fields: ctx, doc
func (m *SearchRepository) IndexListing(ctx context.Context, doc *domain.ListingDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// BulkIndexListings provides a mock function with given fields: ctx, docs
func (m *SearchRepository) BulkIndexListings(ctx context.Context, docs []domain.ListingDocument) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

// SearchListings provides a mock function with given fields: ctx, scope, filter
func (m *SearchRepository) SearchListings(ctx context.Context, scope domain.TenantScope, filter domain.ContentFilter) ([]string, int64, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]string), args.Get(1).(int64), args.Error(2)
}

// DeleteListing provides a mock function with given fields: ctx, tenantID, listingID
func (m *SearchRepository) DeleteListing(ctx context.Context, tenantID string, listingID string) error {
	args := m.Called(ctx, tenantID, listingID)
	return args.Error(0)
}

// CreateIndex provides a mock function with given fields: ctx, tenantID
func (m *SearchRepository) CreateIndex(ctx context.Context, tenantID string) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

// DeleteIndex provides a mock function with given fields: ctx, tenantID
func (m *SearchRepository) DeleteIndex(ctx context.Context, tenantID string) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}
