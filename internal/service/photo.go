package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/service/media"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

// parentFeatures gates photo galleries of feature-switched content.
var parentFeatures = map[string]domain.Feature{
	domain.TypeListingComplex: domain.FeatureListingComplexes,
	domain.TypeBlogPost:       domain.FeatureBlog,
	domain.TypeClubStory:      domain.FeatureClubStories,
}

// PhotoService owns photo galleries. Ordering and main-photo exclusivity are
// enforced by the repository inside one transaction per mutation.
type PhotoService struct {
	repo      repository.Repository
	storage   ObjectStorage
	processor ImageProcessor
	events    EventPublisher
	logger    *logger.Logger
}

func NewPhotoService(repo repository.Repository, storage ObjectStorage, processor ImageProcessor, events EventPublisher, log *logger.Logger) *PhotoService {
	return &PhotoService{
		repo:      repo,
		storage:   storage,
		processor: processor,
		events:    events,
		logger:    log,
	}
}

// ObjectKey is the storage key of a processed photo.
func ObjectKey(tenantID string, parent domain.PhotoParent, photoID string) string {
	return fmt.Sprintf("tenants/%s/%s/%s/%s.webp", tenantID, parent.Type, parent.ID, photoID)
}

func (s *PhotoService) scope(ctx context.Context, parent domain.PhotoParent) (*domain.Tenant, domain.TenantScope, error) {
	if err := parent.Validate(); err != nil {
		return nil, domain.TenantScope{}, ErrParentNotFound
	}
	tenant, err := utils.TenantFromContext(ctx)
	if err != nil {
		return nil, domain.TenantScope{}, repository.ErrTenantRequired
	}
	if feature, ok := parentFeatures[parent.Type]; ok && !tenant.FeatureEnabled(feature) {
		return nil, domain.TenantScope{}, ErrFeatureDisabled
	}
	return tenant, domain.ScopeTo(tenant.ID), nil
}

func (s *PhotoService) List(ctx context.Context, parent domain.PhotoParent) ([]domain.Photo, error) {
	_, scope, err := s.scope(ctx, parent)
	if err != nil {
		return nil, err
	}
	return s.repo.Photo().ListByParent(ctx, scope, parent)
}

// Upload processes an image, stores it and inserts it into the gallery. The
// stored object is removed again when the insert fails.
func (s *PhotoService) Upload(ctx context.Context, parent domain.PhotoParent, r io.Reader, req dto.PhotoUploadRequest) (*domain.Photo, error) {
	tenant, scope, err := s.scope(ctx, parent)
	if err != nil {
		return nil, err
	}

	img, err := s.processor.Process(r)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedFormat) {
			return nil, ErrInvalidImage
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	photo := &domain.Photo{
		ID:         uuid.New().String(),
		TenantID:   tenant.ID,
		ParentType: parent.Type,
		ParentID:   parent.ID,
		Width:      img.Width,
		Height:     img.Height,
		Main:       req.Main,
	}
	photo.ImageKey = ObjectKey(tenant.ID, parent, photo.ID)

	if photo.URL, err = s.storage.Put(ctx, photo.ImageKey, img.Data, media.WebPContentType); err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	if err := s.repo.Photo().Add(ctx, scope, photo, req.Position); err != nil {
		s.removeObject(ctx, photo.ImageKey)
		return nil, photoError(err)
	}

	s.publish(ctx, tenant.ID, domain.EventPhotoAdded, parent.String(), photo)
	return photo, nil
}

func (s *PhotoService) SetMain(ctx context.Context, parent domain.PhotoParent, photoID string) ([]domain.Photo, error) {
	_, scope, err := s.scope(ctx, parent)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Photo().SetMain(ctx, scope, parent, photoID); err != nil {
		return nil, photoError(err)
	}
	return s.repo.Photo().ListByParent(ctx, scope, parent)
}

func (s *PhotoService) Reorder(ctx context.Context, parent domain.PhotoParent, photoID string, position int) ([]domain.Photo, error) {
	_, scope, err := s.scope(ctx, parent)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Photo().Reorder(ctx, scope, parent, photoID, position); err != nil {
		return nil, photoError(err)
	}
	return s.repo.Photo().ListByParent(ctx, scope, parent)
}

func (s *PhotoService) Delete(ctx context.Context, parent domain.PhotoParent, photoID string) error {
	_, scope, err := s.scope(ctx, parent)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Photo().Delete(ctx, scope, parent, photoID)
	if err != nil {
		return photoError(err)
	}
	s.removeObject(ctx, deleted.ImageKey)
	return nil
}

func (s *PhotoService) removeObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete photo object", zap.String("key", key), zap.Error(err))
	}
}

func (s *PhotoService) publish(ctx context.Context, tenantID string, eventType domain.EventType, subject string, payload any) {
	publishEvent(ctx, s.events, s.logger, tenantID, eventType, subject, payload)
}

func photoError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotInSequence):
		return ErrPhotoNotFound
	case errors.Is(err, repository.ErrParentNotFound):
		return ErrParentNotFound
	default:
		return err
	}
}
