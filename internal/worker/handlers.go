package worker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/service"
	"github.com/kingrain94/realty-api/internal/service/mailer"
	"github.com/kingrain94/realty-api/internal/service/queue"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

//go:generate mockery --name ListingIndexer --output ../mocks
type ListingIndexer interface {
	IndexListing(ctx context.Context, tenantID, listingID string) error
	DeleteListing(ctx context.Context, tenantID, listingID string) error
}

//go:generate mockery --name TenantLookup --output ../mocks
type TenantLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
}

//go:generate mockery --name ScrapeImporter --inpackage --testonly
type ScrapeImporter interface {
	Import(ctx context.Context, job *domain.ScrapeJob) (*service.ScrapeResult, error)
}

//go:generate mockery --name MailSender --output ../mocks
type MailSender interface {
	Send(ctx context.Context, mail *domain.Mail) error
}

func unprocessable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnprocessable, fmt.Sprintf(format, args...))
}

// IndexHandler applies listing index and delete messages to OpenSearch.
type IndexHandler struct {
	indexer ListingIndexer
}

func NewIndexHandler(indexer ListingIndexer) *IndexHandler {
	return &IndexHandler{indexer: indexer}
}

func (h *IndexHandler) Name() string { return "index" }

func (h *IndexHandler) Handle(ctx context.Context, msg queue.Message) error {
	if msg.TenantID == "" || msg.ListingID == "" {
		return unprocessable("%s message without tenant or listing id", msg.Type)
	}

	switch msg.Type {
	case queue.MessageTypeIndexListing:
		return h.indexer.IndexListing(ctx, msg.TenantID, msg.ListingID)
	case queue.MessageTypeDeleteListing:
		return h.indexer.DeleteListing(ctx, msg.TenantID, msg.ListingID)
	default:
		return unprocessable("unknown message type: %s", msg.Type)
	}
}

// ScrapeHandler runs listing imports. Jobs of deleted or inactive tenants are
// dropped.
type ScrapeHandler struct {
	tenants  TenantLookup
	importer ScrapeImporter
	logger   *logger.Logger
}

func NewScrapeHandler(tenants TenantLookup, importer ScrapeImporter, logger *logger.Logger) *ScrapeHandler {
	return &ScrapeHandler{tenants: tenants, importer: importer, logger: logger}
}

func (h *ScrapeHandler) Name() string { return "scrape" }

func (h *ScrapeHandler) Handle(ctx context.Context, msg queue.Message) error {
	if msg.Type != queue.MessageTypeScrape {
		return unprocessable("unknown message type: %s", msg.Type)
	}
	if msg.Scrape == nil || msg.Scrape.TenantID == "" {
		return unprocessable("scrape message without job")
	}
	job := msg.Scrape

	tenant, err := h.tenants.GetByID(ctx, job.TenantID)
	if errors.Is(err, service.ErrTenantNotFound) {
		return unprocessable("tenant %s no longer exists", job.TenantID)
	}
	if err != nil {
		return fmt.Errorf("failed to load tenant: %w", err)
	}
	if !tenant.Active {
		h.logger.Info("Skipping scrape job of inactive tenant", zap.String("tenant_id", tenant.ID), zap.String("job_id", job.ID))
		return nil
	}

	result, err := h.importer.Import(utils.WithTenant(ctx, tenant), job)
	switch {
	case err == nil:
		h.logger.Info("Scrape job completed",
			zap.String("job_id", job.ID),
			zap.String("listing_id", result.ListingID),
			zap.Bool("created", result.Created),
			zap.Int("photos", result.Photos),
		)
		return nil
	case isPermanentScrapeError(err):
		// The failure was already reported to the tenant.
		return fmt.Errorf("%w: %v", ErrUnprocessable, err)
	default:
		return err
	}
}

func isPermanentScrapeError(err error) bool {
	for _, target := range []error{
		service.ErrFeatureDisabled,
		service.ErrScraperNotEnabled,
		service.ErrDomainMismatch,
		service.ErrTenantMismatch,
		service.ErrScrapeSourceFailed,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// MailHandler delivers queued mails.
type MailHandler struct {
	sender MailSender
}

func NewMailHandler(sender MailSender) *MailHandler {
	return &MailHandler{sender: sender}
}

func (h *MailHandler) Name() string { return "mail" }

func (h *MailHandler) Handle(ctx context.Context, msg queue.Message) error {
	if msg.Type != queue.MessageTypeSendMail {
		return unprocessable("unknown message type: %s", msg.Type)
	}
	if msg.Mail == nil {
		return unprocessable("mail message without mail")
	}

	err := h.sender.Send(ctx, msg.Mail)
	if errors.Is(err, mailer.ErrUnknownTemplate) {
		return fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}
	return err
}
