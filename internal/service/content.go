package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
	pkgutils "github.com/kingrain94/realty-api/pkg/utils"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	maxSlugAttempts = 50
)

// Page is one page of a list result.
type Page[T any] struct {
	Items   []T
	Total   int64
	Page    int
	PerPage int
}

func (p *Page[T]) Pages() int {
	if p.PerPage == 0 {
		return 0
	}
	return int(math.Ceil(float64(p.Total) / float64(p.PerPage)))
}

// contentService holds the behaviour shared by every translatable content type.
// The scope always comes from the request context.
type contentService[T domain.Record] struct {
	repo    repository.ContentRepository[T]
	feature domain.Feature
	photos  repository.PhotoRepository
	storage ObjectStorage
	logger  *logger.Logger
}

// requireFeature fails when a tenant is bound and has the feature switched off.
func (s *contentService[T]) requireFeature(ctx context.Context) error {
	if s.feature == "" {
		return nil
	}
	tenant, err := utils.TenantFromContext(ctx)
	if err != nil {
		return nil
	}
	if !tenant.FeatureEnabled(s.feature) {
		return ErrFeatureDisabled
	}
	return nil
}

// writeTenant returns the tenant a write goes to. Writes never run cross-tenant.
func (s *contentService[T]) writeTenant(ctx context.Context) (*domain.Tenant, domain.TenantScope, error) {
	tenant, err := utils.TenantFromContext(ctx)
	if err != nil {
		return nil, domain.TenantScope{}, repository.ErrTenantRequired
	}
	if err := s.requireFeature(ctx); err != nil {
		return nil, domain.TenantScope{}, err
	}
	return tenant, domain.ScopeTo(tenant.ID), nil
}

func (s *contentService[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := s.requireFeature(ctx); err != nil {
		return nil, err
	}
	record, err := s.repo.GetByID(ctx, utils.ScopeFromContext(ctx), id)
	if err != nil {
		return nil, notFound(err)
	}
	return record, nil
}

// GetPublished resolves a current or historical slug to a published record.
func (s *contentService[T]) GetPublished(ctx context.Context, slug string) (*T, error) {
	if err := s.requireFeature(ctx); err != nil {
		return nil, err
	}
	record, err := s.repo.GetBySlug(ctx, utils.ScopeFromContext(ctx), slug)
	if err != nil {
		return nil, notFound(err)
	}
	if (*record).RecordStatus() != domain.StatusPublished {
		return nil, ErrNotFound
	}
	return record, nil
}

func (s *contentService[T]) List(ctx context.Context, filter domain.ContentFilter) (*Page[T], error) {
	if err := s.requireFeature(ctx); err != nil {
		return nil, err
	}
	filter.Paginate(DefaultPageSize, MaxPageSize)

	items, total, err := s.repo.List(ctx, utils.ScopeFromContext(ctx), filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return &Page[T]{Items: items, Total: total, Page: filter.Page, PerPage: filter.PageSize}, nil
}

// ListPublished is the public listing: status is forced to published.
func (s *contentService[T]) ListPublished(ctx context.Context, filter domain.ContentFilter) (*Page[T], error) {
	filter.Status = domain.StatusPublished
	return s.List(ctx, filter)
}

// Delete removes the record together with its translations and photos. Stored
// photo objects are removed after the transaction commits.
func (s *contentService[T]) Delete(ctx context.Context, id string) error {
	_, scope, err := s.writeTenant(ctx)
	if err != nil {
		return err
	}
	record, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return notFound(err)
	}

	var photos []domain.Photo
	if s.photos != nil {
		parent := domain.PhotoParent{Type: (*record).RecordType(), ID: id}
		if photos, err = s.photos.ListByParent(ctx, scope, parent); err != nil {
			return fmt.Errorf("failed to load photos: %w", err)
		}
	}

	if err := s.repo.Delete(ctx, scope, id); err != nil {
		return notFound(err)
	}

	if s.storage != nil {
		for _, photo := range photos {
			if err := s.storage.Delete(ctx, photo.ImageKey); err != nil {
				s.logger.Warn("failed to delete photo object",
					zap.String("key", photo.ImageKey),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// uniqueSlug returns a slug free within the tenant. An explicit slug that is
// taken fails validation; a generated one gets a numeric suffix.
func (s *contentService[T]) uniqueSlug(ctx context.Context, scope domain.TenantScope, requested, source, excludeID string) (string, error) {
	if requested != "" {
		exists, err := s.repo.SlugExists(ctx, scope, requested, excludeID)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if exists {
			return "", NewValidationError("slug", "is already taken")
		}
		return requested, nil
	}

	base := pkgutils.MakeSlug(source)
	if base == "" {
		base = strings.Split(uuid.New().String(), "-")[0]
	}
	for n := 1; n <= maxSlugAttempts; n++ {
		candidate := pkgutils.SlugCandidate(base, n)
		exists, err := s.repo.SlugExists(ctx, scope, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return base + "-" + strings.Split(uuid.New().String(), "-")[0], nil
}

// validateTranslations checks that every locale is enabled for the tenant and
// that the default locale carries the required fields.
func validateTranslations(tenant *domain.Tenant, in domain.TranslationInput, required ...string) error {
	verr := &ValidationError{}
	if len(in) == 0 {
		verr.Add("translations", "is required")
		return verr
	}
	for locale := range in {
		if !tenant.SupportsLocale(locale) {
			verr.Add("translations."+locale, "locale is not enabled for this tenant")
		}
	}
	for _, field := range required {
		if strings.TrimSpace(in.Value(tenant.DefaultLocale, field)) == "" {
			verr.Add(fmt.Sprintf("translations.%s.%s", tenant.DefaultLocale, field), "is required")
		}
	}
	return verr.OrNil()
}

func parseStatus(status string) domain.ContentStatus {
	if status == "" {
		return domain.StatusDraft
	}
	return domain.ContentStatus(status)
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
