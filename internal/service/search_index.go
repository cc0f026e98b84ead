package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/pkg/logger"
)

// IndexService keeps the search index in line with Postgres. Only published
// listings are searchable; anything else is removed from the index.
type IndexService struct {
	repo   repository.Repository
	events EventPublisher
	logger *logger.Logger
}

func NewIndexService(repo repository.Repository, events EventPublisher, log *logger.Logger) *IndexService {
	return &IndexService{repo: repo, events: events, logger: log}
}

func (s *IndexService) IndexListing(ctx context.Context, tenantID, listingID string) error {
	listing, err := s.repo.Listing().GetByID(ctx, domain.ScopeTo(tenantID), listingID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.repo.Search().DeleteListing(ctx, tenantID, listingID)
	}
	if err != nil {
		return fmt.Errorf("failed to load listing: %w", err)
	}

	if listing.Status != domain.StatusPublished {
		return s.repo.Search().DeleteListing(ctx, tenantID, listingID)
	}
	if err := s.repo.Search().IndexListing(ctx, domain.NewListingDocument(listing)); err != nil {
		return fmt.Errorf("failed to index listing: %w", err)
	}
	publishEvent(ctx, s.events, s.logger, tenantID, domain.EventListingIndexed, listing.Slug, map[string]string{"listing_id": listing.ID})
	return nil
}

func (s *IndexService) DeleteListing(ctx context.Context, tenantID, listingID string) error {
	return s.repo.Search().DeleteListing(ctx, tenantID, listingID)
}
