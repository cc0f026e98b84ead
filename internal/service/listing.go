package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/service/scraper"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

const defaultCurrency = "USD"

type ListingService struct {
	*contentService[domain.Listing]
	repo  repository.Repository
	queue IndexQueue
}

func NewListingService(repo repository.Repository, queue IndexQueue, storage ObjectStorage, log *logger.Logger) *ListingService {
	return &ListingService{
		contentService: &contentService[domain.Listing]{
			repo:    repo.Listing(),
			photos:  repo.Photo(),
			storage: storage,
			logger:  log,
		},
		repo:  repo,
		queue: queue,
	}
}

func (s *ListingService) Create(ctx context.Context, req dto.ListingRequest) (*domain.Listing, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, err
	}
	translations := req.Translations.ToInput()
	if err := validateTranslations(tenant, translations, "title"); err != nil {
		return nil, err
	}
	if err := s.checkComplex(ctx, scope, req.ListingComplexID); err != nil {
		return nil, err
	}

	listing := &domain.Listing{ID: uuid.New().String(), TenantID: tenant.ID}
	applyListingRequest(listing, req)
	if listing.Slug, err = s.uniqueSlug(ctx, scope, req.Slug, translations.Value(tenant.DefaultLocale, "title"), ""); err != nil {
		return nil, err
	}

	if err := s.repo.Listing().Create(ctx, scope, listing, translations.Build(tenant.ID, domain.TypeListing, listing.ID)); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	s.enqueueIndex(ctx, listing)
	return s.Get(ctx, listing.ID)
}

func (s *ListingService) Update(ctx context.Context, id string, req dto.ListingRequest) (*domain.Listing, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, err
	}
	listing, err := s.repo.Listing().GetByID(ctx, scope, id)
	if err != nil {
		return nil, notFound(err)
	}
	translations := req.Translations.ToInput()
	if err := validateTranslations(tenant, translations, "title"); err != nil {
		return nil, err
	}
	if err := s.checkComplex(ctx, scope, req.ListingComplexID); err != nil {
		return nil, err
	}

	applyListingRequest(listing, req)
	if req.Slug != "" && req.Slug != listing.Slug {
		if listing.Slug, err = s.uniqueSlug(ctx, scope, req.Slug, "", listing.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Listing().Update(ctx, scope, listing, translations.Build(tenant.ID, domain.TypeListing, listing.ID)); err != nil {
		return nil, notFound(err)
	}
	s.enqueueIndex(ctx, listing)
	return s.Get(ctx, listing.ID)
}

func (s *ListingService) Delete(ctx context.Context, id string) error {
	tenant, err := utils.TenantFromContext(ctx)
	if err != nil {
		return repository.ErrTenantRequired
	}
	if err := s.contentService.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.queue.SendDeleteListing(ctx, tenant.ID, id); err != nil {
		s.logger.Error("failed to enqueue listing removal", err, zap.String("listing_id", id))
	}
	return nil
}

// Search serves the public listing index. Free-text queries go to OpenSearch and
// fall back to Postgres when the search cluster is unavailable.
func (s *ListingService) Search(ctx context.Context, filter domain.ContentFilter) (*Page[domain.Listing], error) {
	filter.Status = domain.StatusPublished
	if filter.Query == "" {
		return s.List(ctx, filter)
	}
	filter.Paginate(DefaultPageSize, MaxPageSize)
	scope := utils.ScopeFromContext(ctx)

	ids, total, err := s.repo.Search().SearchListings(ctx, scope, filter)
	if err != nil {
		s.logger.Warn("listing search failed, falling back to database", zap.Error(err))
		return s.List(ctx, filter)
	}

	listings, err := s.repo.Listing().ListByIDs(ctx, scope, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	return &Page[domain.Listing]{Items: listings, Total: total, Page: filter.Page, PerPage: filter.PageSize}, nil
}

// Reindex enqueues every listing of the bound tenant for indexing.
func (s *ListingService) Reindex(ctx context.Context) (int, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return 0, err
	}

	queued := 0
	filter := domain.ContentFilter{Page: 1, PageSize: MaxPageSize}
	for {
		filter.Paginate(DefaultPageSize, MaxPageSize)
		listings, total, err := s.repo.Listing().List(ctx, scope, filter)
		if err != nil {
			return queued, fmt.Errorf("failed to list listings: %w", err)
		}
		for _, listing := range listings {
			if err := s.queue.SendIndexListing(ctx, tenant.ID, listing.ID); err != nil {
				return queued, fmt.Errorf("failed to enqueue listing %s: %w", listing.ID, err)
			}
			queued++
		}
		if int64(filter.Page*filter.PageSize) >= total || len(listings) == 0 {
			return queued, nil
		}
		filter.Page++
	}
}

func (s *ListingService) checkComplex(ctx context.Context, scope domain.TenantScope, complexID *string) error {
	if complexID == nil || *complexID == "" {
		return nil
	}
	if _, err := s.repo.ListingComplex().GetByID(ctx, scope, *complexID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewValidationError("listing_complex_id", "does not exist")
		}
		return err
	}
	return nil
}

func (s *ListingService) enqueueIndex(ctx context.Context, listing *domain.Listing) {
	if err := s.queue.SendIndexListing(ctx, listing.TenantID, listing.ID); err != nil {
		s.logger.Error("failed to enqueue listing indexing", err, zap.String("listing_id", listing.ID))
	}
}

func applyListingRequest(listing *domain.Listing, req dto.ListingRequest) {
	listing.Status = parseStatus(req.Status)
	listing.Price = req.Price
	listing.Currency = req.Currency
	if listing.Currency == "" {
		listing.Currency = defaultCurrency
	}
	listing.Rooms = req.Rooms
	listing.Area = req.Area
	listing.ListingComplexID = nil
	if req.ListingComplexID != nil && *req.ListingComplexID != "" {
		listing.ListingComplexID = req.ListingComplexID
	}
	listing.PublishedAt = publishedAt(listing.Status, listing.PublishedAt)
}

// publishedAt stamps the first publication and keeps it afterwards.
func publishedAt(status domain.ContentStatus, current *time.Time) *time.Time {
	if status != domain.StatusPublished || current != nil {
		return current
	}
	now := time.Now().UTC()
	return &now
}

// UpsertFromSource creates or refreshes the listing imported from sourceURL.
// New imports start as drafts; existing listings keep their status and slug.
func (s *ListingService) UpsertFromSource(ctx context.Context, page *scraper.Page) (*domain.Listing, bool, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, false, err
	}
	translations := domain.TranslationInput{
		tenant.DefaultLocale: {"title": page.Title, "description": page.Description},
	}

	listing, err := s.repo.Listing().GetBySourceURL(ctx, scope, page.URL)
	created := errors.Is(err, repository.ErrNotFound)
	switch {
	case created:
		listing = &domain.Listing{
			ID:        uuid.New().String(),
			TenantID:  tenant.ID,
			Status:    domain.StatusDraft,
			Currency:  defaultCurrency,
			SourceURL: page.URL,
		}
		if listing.Slug, err = s.uniqueSlug(ctx, scope, "", page.Title, ""); err != nil {
			return nil, false, err
		}
	case err != nil:
		return nil, false, err
	}

	if page.Price > 0 {
		listing.Price = page.Price
	}
	if page.Currency != "" {
		listing.Currency = page.Currency
	}

	rows := translations.Build(tenant.ID, domain.TypeListing, listing.ID)
	if created {
		err = s.repo.Listing().Create(ctx, scope, listing, rows)
	} else {
		err = s.repo.Listing().Update(ctx, scope, listing, rows)
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to save imported listing: %w", err)
	}
	s.enqueueIndex(ctx, listing)
	return listing, created, nil
}
