package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/pkg/logger"
)

type ListingComplexService struct {
	*contentService[domain.ListingComplex]
	complexes repository.ListingComplexRepository
}

func NewListingComplexService(repo repository.Repository, storage ObjectStorage, log *logger.Logger) *ListingComplexService {
	return &ListingComplexService{
		contentService: &contentService[domain.ListingComplex]{
			repo:    repo.ListingComplex(),
			feature: domain.FeatureListingComplexes,
			photos:  repo.Photo(),
			storage: storage,
			logger:  log,
		},
		complexes: repo.ListingComplex(),
	}
}

func (s *ListingComplexService) Create(ctx context.Context, req dto.ListingComplexRequest) (*domain.ListingComplex, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, err
	}
	translations := req.Translations.ToInput()
	if err := validateTranslations(tenant, translations, "name"); err != nil {
		return nil, err
	}

	lc := &domain.ListingComplex{
		ID:       uuid.New().String(),
		TenantID: tenant.ID,
		Status:   parseStatus(req.Status),
		Order:    req.Order,
	}
	if lc.Slug, err = s.uniqueSlug(ctx, scope, req.Slug, translations.Value(tenant.DefaultLocale, "name"), ""); err != nil {
		return nil, err
	}

	if err := s.complexes.Create(ctx, scope, lc, translations.Build(tenant.ID, domain.TypeListingComplex, lc.ID)); err != nil {
		return nil, fmt.Errorf("failed to create listing complex: %w", err)
	}
	return s.Get(ctx, lc.ID)
}

// Update never writes the order column directly; a changed order goes through
// Reorder so the sequence stays dense.
func (s *ListingComplexService) Update(ctx context.Context, id string, req dto.ListingComplexRequest) (*domain.ListingComplex, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, err
	}
	lc, err := s.complexes.GetByID(ctx, scope, id)
	if err != nil {
		return nil, notFound(err)
	}
	translations := req.Translations.ToInput()
	if err := validateTranslations(tenant, translations, "name"); err != nil {
		return nil, err
	}

	lc.Status = parseStatus(req.Status)
	if req.Slug != "" && req.Slug != lc.Slug {
		if lc.Slug, err = s.uniqueSlug(ctx, scope, req.Slug, "", lc.ID); err != nil {
			return nil, err
		}
	}
	if err := s.complexes.Update(ctx, scope, lc, translations.Build(tenant.ID, domain.TypeListingComplex, lc.ID)); err != nil {
		return nil, notFound(err)
	}

	if req.Order > 0 && req.Order != lc.Order {
		return s.Reorder(ctx, id, req.Order)
	}
	return s.Get(ctx, lc.ID)
}

func (s *ListingComplexService) Reorder(ctx context.Context, id string, position int) (*domain.ListingComplex, error) {
	_, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.complexes.Reorder(ctx, scope, id, position); err != nil {
		return nil, notFound(err)
	}
	return s.Get(ctx, id)
}
