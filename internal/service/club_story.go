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

type ClubStoryService struct {
	*contentService[domain.ClubStory]
}

func NewClubStoryService(repo repository.Repository, storage ObjectStorage, log *logger.Logger) *ClubStoryService {
	return &ClubStoryService{
		contentService: &contentService[domain.ClubStory]{
			repo:    repo.ClubStory(),
			feature: domain.FeatureClubStories,
			photos:  repo.Photo(),
			storage: storage,
			logger:  log,
		},
	}
}

func (s *ClubStoryService) Create(ctx context.Context, req dto.ClubStoryRequest) (*domain.ClubStory, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, err
	}
	translations := req.Translations.ToInput()
	if err := validateTranslations(tenant, translations, "title"); err != nil {
		return nil, err
	}

	story := &domain.ClubStory{
		ID:       uuid.New().String(),
		TenantID: tenant.ID,
		Status:   parseStatus(req.Status),
	}
	if story.Slug, err = s.uniqueSlug(ctx, scope, req.Slug, translations.Value(tenant.DefaultLocale, "title"), ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, scope, story, translations.Build(tenant.ID, domain.TypeClubStory, story.ID)); err != nil {
		return nil, fmt.Errorf("failed to create club story: %w", err)
	}
	return s.Get(ctx, story.ID)
}

func (s *ClubStoryService) Update(ctx context.Context, id string, req dto.ClubStoryRequest) (*domain.ClubStory, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, err
	}
	story, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, notFound(err)
	}
	translations := req.Translations.ToInput()
	if err := validateTranslations(tenant, translations, "title"); err != nil {
		return nil, err
	}

	story.Status = parseStatus(req.Status)
	if req.Slug != "" && req.Slug != story.Slug {
		if story.Slug, err = s.uniqueSlug(ctx, scope, req.Slug, "", story.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, scope, story, translations.Build(tenant.ID, domain.TypeClubStory, story.ID)); err != nil {
		return nil, notFound(err)
	}
	return s.Get(ctx, story.ID)
}
