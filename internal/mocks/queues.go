package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/domain"
)

// IndexQueue is a mock type for the IndexQueue type
type IndexQueue struct {
	mock.Mock
}

// SendIndexListing provides a mock function with given fields: ctx, tenantID, listingID
func (m *IndexQueue) SendIndexListing(ctx context.Context, tenantID string, listingID string) error {
	args := m.Called(ctx, tenantID, listingID)
	return args.Error(0)
}

// SendDeleteListing provides a mock function with given fields: ctx, tenantID, listingID
func (m *IndexQueue) SendDeleteListing(ctx context.Context, tenantID string, listingID string) error {
	args := m.Called(ctx, tenantID, listingID)
	return args.Error(0)
}

// ScrapeQueue is a mock type for the ScrapeQueue type
type ScrapeQueue struct {
	mock.Mock
}

// SendScrape provides a mock function with given fields: ctx, job
func (m *ScrapeQueue) SendScrape(ctx context.Context, job *domain.ScrapeJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MailQueue is a mock type for the MailQueue type
type MailQueue struct {
	mock.Mock
}

// SendMail provides a mock function with given fields: ctx, tenantID, mail
func (m *MailQueue) SendMail(ctx context.Context, tenantID string, mail *domain.Mail) error {
	args := m.Called(ctx, tenantID, mail)
	return args.Error(0)
}

// CleanupQueue is a mock type for the CleanupQueue type
type CleanupQueue struct {
	mock.Mock
}

// SendPurgeSubscribers provides a mock function with given fields: ctx, tenantID, before
func (m *CleanupQueue) SendPurgeSubscribers(ctx context.Context, tenantID string, before time.Time) error {
	args := m.Called(ctx, tenantID, before)
	return args.Error(0)
}

// EventPublisher is a mock type for the EventPublisher type
type EventPublisher struct {
	mock.Mock
}

// Publish provides a mock function with given fields: ctx, event
func (m *EventPublisher) Publish(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
