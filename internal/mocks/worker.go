package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/service/queue"
)

// MessageQueue is a mock type for the MessageQueue type
type MessageQueue struct {
	mock.Mock
}

// ReceiveMessages provides a mock function with given fields: ctx, queueURL, maxMessages, waitTimeSeconds
func (m *MessageQueue) ReceiveMessages(ctx context.Context, queueURL string, maxMessages int32, waitTimeSeconds int32) ([]queue.ReceivedMessage, error) {
	args := m.Called(ctx, queueURL, maxMessages, waitTimeSeconds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queue.ReceivedMessage), args.Error(1)
}

// DeleteMessage provides a mock function with given fields: ctx, queueURL, receiptHandle
func (m *MessageQueue) DeleteMessage(ctx context.Context, queueURL string, receiptHandle *string) error {
	args := m.Called(ctx, queueURL, receiptHandle)
	return args.Error(0)
}

// ListingIndexer is a mock type for the ListingIndexer type
type ListingIndexer struct {
	mock.Mock
}

// IndexListing provides a mock function with given fields: ctx, tenantID, listingID
func (m *ListingIndexer) IndexListing(ctx context.Context, tenantID string, listingID string) error {
	args := m.Called(ctx, tenantID, listingID)
	return args.Error(0)
}

// DeleteListing provides a mock function with given fields: ctx, tenantID, listingID
func (m *ListingIndexer) DeleteListing(ctx context.Context, tenantID string, listingID string) error {
	args := m.Called(ctx, tenantID, listingID)
	return args.Error(0)
}

// TenantLookup is a mock type for the TenantLookup type
type TenantLookup struct {
	mock.Mock
}

// GetByID provides a mock function with given fields: ctx, id
func (m *TenantLookup) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

// MailSender is a mock type for the MailSender type
type MailSender struct {
	mock.Mock
}

// Send provides a mock function with given fields: ctx, mail
func (m *MailSender) Send(ctx context.Context, mail *domain.Mail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}
