package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/service/scraper"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

const defaultMaxScrapedImages = 10

//go:generate mockery --name PageFetcher --output ../mocks
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*scraper.Page, error)
	Download(ctx context.Context, imageURL string) ([]byte, error)
}

// ScrapeResult summarises one processed scrape job.
type ScrapeResult struct {
	ListingID string `json:"listing_id"`
	Created   bool   `json:"created"`
	Photos    int    `json:"photos"`
}

// ScrapeService queues imports of listing pages from a tenant's source site and
// runs them in the scrape worker.
type ScrapeService struct {
	queue     ScrapeQueue
	mail      MailQueue
	events    EventPublisher
	fetcher   PageFetcher
	listings  *ListingService
	photos    *PhotoService
	maxImages int
	logger    *logger.Logger
}

func NewScrapeService(queue ScrapeQueue, mail MailQueue, events EventPublisher, fetcher PageFetcher, listings *ListingService, photos *PhotoService, log *logger.Logger) *ScrapeService {
	return &ScrapeService{
		queue:     queue,
		mail:      mail,
		events:    events,
		fetcher:   fetcher,
		listings:  listings,
		photos:    photos,
		maxImages: defaultMaxScrapedImages,
		logger:    log,
	}
}

// checkSource validates that rawURL may be imported for the tenant.
func checkSource(tenant *domain.Tenant, rawURL string) error {
	if !tenant.FeatureEnabled(domain.FeatureScraping) {
		return ErrFeatureDisabled
	}
	if tenant.ScraperSourceURL == "" {
		return ErrScraperNotEnabled
	}
	if !scraper.SameSite(rawURL, tenant.ScraperSourceURL) {
		return ErrDomainMismatch
	}
	return nil
}

func (s *ScrapeService) Enqueue(ctx context.Context, req dto.ScrapeRequest) (*domain.ScrapeJob, error) {
	tenant, err := utils.TenantFromContext(ctx)
	if err != nil {
		return nil, ErrTenantNotFound
	}
	if err := checkSource(tenant, req.URL); err != nil {
		return nil, err
	}

	job := &domain.ScrapeJob{
		ID:          uuid.New().String(),
		TenantID:    tenant.ID,
		URL:         req.URL,
		RequestedAt: time.Now().UTC(),
	}
	if admin, err := utils.AdminFromContext(ctx); err == nil {
		job.RequestedBy = admin.ID
	}

	if err := s.queue.SendScrape(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to enqueue scrape job: %w", err)
	}
	s.publish(ctx, tenant.ID, domain.EventScrapeQueued, job.URL, job)
	return job, nil
}

// Import runs a job. The tenant must be bound to ctx. Image failures are
// logged and do not fail the job.
func (s *ScrapeService) Import(ctx context.Context, job *domain.ScrapeJob) (*ScrapeResult, error) {
	tenant, err := utils.TenantFromContext(ctx)
	if err != nil {
		return nil, ErrTenantNotFound
	}
	if tenant.ID != job.TenantID {
		return nil, ErrTenantMismatch
	}
	if err := checkSource(tenant, job.URL); err != nil {
		return nil, err
	}

	page, err := s.fetcher.Fetch(ctx, job.URL)
	if err != nil {
		s.fail(ctx, job, err)
		return nil, fmt.Errorf("%w: %v", ErrScrapeSourceFailed, err)
	}
	page.URL = job.URL

	// Storage failures are retried by the worker, so they are not reported.
	listing, created, err := s.listings.UpsertFromSource(ctx, page)
	if err != nil {
		return nil, err
	}

	result := &ScrapeResult{ListingID: listing.ID, Created: created}
	if created {
		result.Photos = s.importImages(ctx, listing, page.Images)
	}

	s.publish(ctx, tenant.ID, domain.EventScrapeCompleted, job.URL, result)
	s.report(ctx, tenant, job, "completed", listing.ID)
	return result, nil
}

func (s *ScrapeService) importImages(ctx context.Context, listing *domain.Listing, images []string) int {
	parent := domain.PhotoParent{Type: domain.TypeListing, ID: listing.ID}
	imported := 0
	for _, imageURL := range images {
		if imported >= s.maxImages {
			break
		}
		data, err := s.fetcher.Download(ctx, imageURL)
		if err != nil {
			s.logger.Warn("failed to download image", zap.String("url", imageURL), zap.Error(err))
			continue
		}
		if _, err := s.photos.Upload(ctx, parent, bytes.NewReader(data), dto.PhotoUploadRequest{}); err != nil {
			s.logger.Warn("failed to import image", zap.String("url", imageURL), zap.Error(err))
			continue
		}
		imported++
	}
	return imported
}

func (s *ScrapeService) fail(ctx context.Context, job *domain.ScrapeJob, cause error) {
	s.publish(ctx, job.TenantID, domain.EventScrapeFailed, job.URL, map[string]string{
		"job_id": job.ID,
		"error":  cause.Error(),
	})
	if tenant, err := utils.TenantFromContext(ctx); err == nil {
		s.report(ctx, tenant, job, "failed", "")
	}
}

// report mails the outcome to the admin mailbox.
func (s *ScrapeService) report(ctx context.Context, tenant *domain.Tenant, job *domain.ScrapeJob, status, listingID string) {
	if s.mail == nil {
		return
	}
	mail := &domain.Mail{
		Template: domain.MailScrapeReport,
		Locale:   tenant.DefaultLocale,
		Data: map[string]string{
			"tenant":     tenant.Name,
			"url":        job.URL,
			"status":     status,
			"listing_id": listingID,
			"job_id":     job.ID,
			"queued_at":  job.RequestedAt.Format(time.RFC3339),
		},
	}
	if err := s.mail.SendMail(ctx, tenant.ID, mail); err != nil {
		s.logger.Warn("failed to enqueue scrape report", zap.String("job_id", job.ID), zap.Error(err))
	}
}

func (s *ScrapeService) publish(ctx context.Context, tenantID string, eventType domain.EventType, subject string, payload any) {
	publishEvent(ctx, s.events, s.logger, tenantID, eventType, subject, payload)
}
