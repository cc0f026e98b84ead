package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/service/scraper"
)

// PageFetcher is a mock type for the PageFetcher type
type PageFetcher struct {
	mock.Mock
}

// Fetch provides a mock function with given fields: ctx, pageURL
func (m *PageFetcher) Fetch(ctx context.Context, pageURL string) (*scraper.Page, error) {
	args := m.Called(ctx, pageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scraper.Page), args.Error(1)
}

// Download provides a mock function with given fields: ctx, imageURL
func (m *PageFetcher) Download(ctx context.Context, imageURL string) ([]byte, error) {
	args := m.Called(ctx, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
