package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/pkg/logger"
)

type BlogPostService struct {
	*contentService[domain.BlogPost]
}

func NewBlogPostService(repo repository.Repository, storage ObjectStorage, log *logger.Logger) *BlogPostService {
	return &BlogPostService{
		contentService: &contentService[domain.BlogPost]{
			repo:    repo.BlogPost(),
			feature: domain.FeatureBlog,
			photos:  repo.Photo(),
			storage: storage,
			logger:  log,
		},
	}
}

func (s *BlogPostService) Create(ctx context.Context, req dto.BlogPostRequest) (*domain.BlogPost, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, err
	}
	translations := req.Translations.ToInput()
	if err := validateTranslations(tenant, translations, "title"); err != nil {
		return nil, err
	}

	post := &domain.BlogPost{
		ID:       uuid.New().String(),
		TenantID: tenant.ID,
		Status:   parseStatus(req.Status),
	}
	post.PublishedAt = blogPublishedAt(post.Status, req.PublishedAt, nil)
	if post.Slug, err = s.uniqueSlug(ctx, scope, req.Slug, translations.Value(tenant.DefaultLocale, "title"), ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, scope, post, translations.Build(tenant.ID, domain.TypeBlogPost, post.ID)); err != nil {
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}
	return s.Get(ctx, post.ID)
}

func (s *BlogPostService) Update(ctx context.Context, id string, req dto.BlogPostRequest) (*domain.BlogPost, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, err
	}
	post, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, notFound(err)
	}
	translations := req.Translations.ToInput()
	if err := validateTranslations(tenant, translations, "title"); err != nil {
		return nil, err
	}

	post.Status = parseStatus(req.Status)
	post.PublishedAt = blogPublishedAt(post.Status, req.PublishedAt, post.PublishedAt)
	if req.Slug != "" && req.Slug != post.Slug {
		if post.Slug, err = s.uniqueSlug(ctx, scope, req.Slug, "", post.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, scope, post, translations.Build(tenant.ID, domain.TypeBlogPost, post.ID)); err != nil {
		return nil, notFound(err)
	}
	return s.Get(ctx, post.ID)
}

// blogPublishedAt prefers an explicit publication date, which may schedule a
// post in the future.
func blogPublishedAt(status domain.ContentStatus, requested, current *time.Time) *time.Time {
	if requested != nil {
		t := requested.UTC()
		return &t
	}
	return publishedAt(status, current)
}
