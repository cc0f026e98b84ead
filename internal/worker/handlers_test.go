package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/mocks"
	"github.com/kingrain94/realty-api/internal/service"
	"github.com/kingrain94/realty-api/internal/service/mailer"
	"github.com/kingrain94/realty-api/internal/service/queue"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

// MockScrapeImporter is a mock type for the ScrapeImporter type
type MockScrapeImporter struct {
	mock.Mock
}

// Import provides a mock function with given fields: ctx, job
func (m *MockScrapeImporter) Import(ctx context.Context, job *domain.ScrapeJob) (*service.ScrapeResult, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScrapeResult), args.Error(1)
}

func TestIndexHandler(t *testing.T) {
	ctx := context.Background()
	indexer := new(mocks.ListingIndexer)
	indexer.On("IndexListing", ctx, "acme", "l1").Return(nil)
	indexer.On("DeleteListing", ctx, "acme", "l2").Return(errors.New("timeout"))
	h := NewIndexHandler(indexer)

	assert.NoError(t, h.Handle(ctx, queue.Message{Type: queue.MessageTypeIndexListing, TenantID: "acme", ListingID: "l1"}))
	assert.EqualError(t, h.Handle(ctx, queue.Message{Type: queue.MessageTypeDeleteListing, TenantID: "acme", ListingID: "l2"}), "timeout")
	assert.ErrorIs(t, h.Handle(ctx, queue.Message{Type: queue.MessageTypeIndexListing, TenantID: "acme"}), ErrUnprocessable)
	assert.ErrorIs(t, h.Handle(ctx, queue.Message{Type: queue.MessageTypeSendMail, TenantID: "acme", ListingID: "l1"}), ErrUnprocessable)
}

func scrapeMessage(tenantID string) queue.Message {
	return queue.Message{
		Type:     queue.MessageTypeScrape,
		TenantID: tenantID,
		Scrape:   &domain.ScrapeJob{ID: "job-1", TenantID: tenantID, URL: "https://source.example.com/1"},
	}
}

func TestScrapeHandler_ImportsWithTenantBound(t *testing.T) {
	ctx := context.Background()
	tenants := new(mocks.TenantLookup)
	importer := new(MockScrapeImporter)
	tenant := &domain.Tenant{ID: "acme", Active: true}
	tenants.On("GetByID", ctx, "acme").Return(tenant, nil)
	importer.On("Import", mock.MatchedBy(func(c context.Context) bool {
		bound, err := utils.TenantFromContext(c)
		return err == nil && bound.ID == "acme"
	}), mock.Anything).Return(&service.ScrapeResult{ListingID: "l1", Created: true}, nil)

	err := NewScrapeHandler(tenants, importer, logger.NewNop()).Handle(ctx, scrapeMessage("acme"))

	assert.NoError(t, err)
	importer.AssertExpectations(t)
}

func TestScrapeHandler_SkipsInactiveTenant(t *testing.T) {
	ctx := context.Background()
	tenants := new(mocks.TenantLookup)
	importer := new(MockScrapeImporter)
	tenants.On("GetByID", ctx, "acme").Return(&domain.Tenant{ID: "acme"}, nil)

	err := NewScrapeHandler(tenants, importer, logger.NewNop()).Handle(ctx, scrapeMessage("acme"))

	assert.NoError(t, err)
	importer.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
}

func TestScrapeHandler_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted tenant", func(t *testing.T) {
		tenants := new(mocks.TenantLookup)
		tenants.On("GetByID", ctx, "gone").Return(nil, service.ErrTenantNotFound)

		err := NewScrapeHandler(tenants, new(MockScrapeImporter), logger.NewNop()).Handle(ctx, scrapeMessage("gone"))

		assert.ErrorIs(t, err, ErrUnprocessable)
	})

	t.Run("missing job", func(t *testing.T) {
		err := NewScrapeHandler(new(mocks.TenantLookup), new(MockScrapeImporter), logger.NewNop()).
			Handle(ctx, queue.Message{Type: queue.MessageTypeScrape, TenantID: "acme"})

		assert.ErrorIs(t, err, ErrUnprocessable)
	})

	t.Run("source failure is final", func(t *testing.T) {
		tenants := new(mocks.TenantLookup)
		importer := new(MockScrapeImporter)
		tenants.On("GetByID", ctx, "acme").Return(&domain.Tenant{ID: "acme", Active: true}, nil)
		importer.On("Import", mock.Anything, mock.Anything).Return(nil, service.ErrScrapeSourceFailed)

		err := NewScrapeHandler(tenants, importer, logger.NewNop()).Handle(ctx, scrapeMessage("acme"))

		assert.ErrorIs(t, err, ErrUnprocessable)
	})

	t.Run("database failure is retried", func(t *testing.T) {
		tenants := new(mocks.TenantLookup)
		importer := new(MockScrapeImporter)
		tenants.On("GetByID", ctx, "acme").Return(&domain.Tenant{ID: "acme", Active: true}, nil)
		importer.On("Import", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

		err := NewScrapeHandler(tenants, importer, logger.NewNop()).Handle(ctx, scrapeMessage("acme"))

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnprocessable)
	})
}

func TestMailHandler(t *testing.T) {
	ctx := context.Background()
	sender := new(mocks.MailSender)
	good := &domain.Mail{Template: domain.MailScrapeReport}
	bad := &domain.Mail{Template: "nope"}
	sender.On("Send", ctx, good).Return(nil)
	sender.On("Send", ctx, bad).Return(mailer.ErrUnknownTemplate)
	h := NewMailHandler(sender)

	assert.NoError(t, h.Handle(ctx, queue.Message{Type: queue.MessageTypeSendMail, Mail: good}))
	assert.ErrorIs(t, h.Handle(ctx, queue.Message{Type: queue.MessageTypeSendMail, Mail: bad}), ErrUnprocessable)
	assert.ErrorIs(t, h.Handle(ctx, queue.Message{Type: queue.MessageTypeSendMail}), ErrUnprocessable)
}
