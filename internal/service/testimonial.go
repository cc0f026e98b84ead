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

type TestimonialService struct {
	*contentService[domain.Testimonial]
}

func NewTestimonialService(repo repository.Repository, log *logger.Logger) *TestimonialService {
	return &TestimonialService{
		contentService: &contentService[domain.Testimonial]{
			repo:    repo.Testimonial(),
			feature: domain.FeatureTestimonials,
			logger:  log,
		},
	}
}

func (s *TestimonialService) Create(ctx context.Context, req dto.TestimonialRequest) (*domain.Testimonial, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, err
	}
	translations := req.Translations.ToInput()
	if err := validateTranslations(tenant, translations, "text"); err != nil {
		return nil, err
	}

	testimonial := &domain.Testimonial{
		ID:         uuid.New().String(),
		TenantID:   tenant.ID,
		AuthorName: req.AuthorName,
		Rating:     req.Rating,
		Status:     parseStatus(req.Status),
	}
	if err := s.repo.Create(ctx, scope, testimonial, translations.Build(tenant.ID, domain.TypeTestimonial, testimonial.ID)); err != nil {
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}
	return s.Get(ctx, testimonial.ID)
}

func (s *TestimonialService) Update(ctx context.Context, id string, req dto.TestimonialRequest) (*domain.Testimonial, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, err
	}
	testimonial, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, notFound(err)
	}
	translations := req.Translations.ToInput()
	if err := validateTranslations(tenant, translations, "text"); err != nil {
		return nil, err
	}

	testimonial.AuthorName = req.AuthorName
	testimonial.Rating = req.Rating
	testimonial.Status = parseStatus(req.Status)
	if err := s.repo.Update(ctx, scope, testimonial, translations.Build(tenant.ID, domain.TypeTestimonial, testimonial.ID)); err != nil {
		return nil, notFound(err)
	}
	return s.Get(ctx, testimonial.ID)
}
