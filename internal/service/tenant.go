package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/service/cache"
	"github.com/kingrain94/realty-api/pkg/logger"
)

const (
	defaultLocale     = "en"
	defaultRateLimit  = 1000
	apiKeyBytes       = 32
	tenantLoadTimeout = 5 * time.Second
)

type TenantService struct {
	repo   repository.Repository
	cache  TenantCache
	group  singleflight.Group
	logger *logger.Logger
}

func NewTenantService(repo repository.Repository, tenantCache TenantCache, log *logger.Logger) *TenantService {
	return &TenantService{
		repo:   repo,
		cache:  tenantCache,
		logger: log,
	}
}

// Resolve finds the active tenant for a request. An API key wins over the host;
// an unknown key does not fall back to the host.
func (s *TenantService) Resolve(ctx context.Context, apiKey, host string) (*domain.Tenant, error) {
	if apiKey != "" {
		return s.lookup(ctx, cache.APIKeyKey(apiKey), func(ctx context.Context) (*domain.Tenant, error) {
			return s.repo.Tenant().GetByAPIKey(ctx, apiKey)
		})
	}

	host = NormalizeHost(host)
	if host == "" {
		return nil, ErrTenantNotFound
	}
	return s.lookup(ctx, cache.HostKey(host), func(ctx context.Context) (*domain.Tenant, error) {
		return s.repo.Tenant().GetByDomain(ctx, host)
	})
}

// lookup reads through the cache. Concurrent misses for the same key share one
// database query, which runs detached from the caller that started it so a
// cancelled request cannot fail the others waiting on it.
func (s *TenantService) lookup(ctx context.Context, key string, load func(context.Context) (*domain.Tenant, error)) (*domain.Tenant, error) {
	if s.cache != nil {
		tenant, err := s.cache.Get(ctx, key)
		if err == nil {
			return activeOnly(tenant)
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("tenant cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tenantLoadTimeout)
		defer cancel()

		tenant, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil && tenant.Active {
			if err := s.cache.Set(loadCtx, key, tenant); err != nil {
				s.logger.Warn("tenant cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return tenant, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	tenant := *v.(*domain.Tenant)
	return activeOnly(&tenant)
}

func activeOnly(tenant *domain.Tenant) (*domain.Tenant, error) {
	if tenant == nil || !tenant.Active {
		return nil, ErrTenantNotFound
	}
	return tenant, nil
}

// NormalizeHost lowercases a Host header value and strips the port.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(strings.ToLower(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimSuffix(host, ".")
}

func (s *TenantService) Create(ctx context.Context, req dto.CreateTenantRequest) (*domain.Tenant, error) {
	apiKey, err := generateAPIKey()
	if err != nil {
		return nil, err
	}

	tenant := &domain.Tenant{
		Slug:             req.Slug,
		Name:             req.Name,
		APIKey:           apiKey,
		Domain:           NormalizeHost(req.Domain),
		ScraperSourceURL: req.ScraperSourceURL,
		DefaultLocale:    req.DefaultLocale,
		Metadata:         datatypes.JSON(req.Metadata),
		RateLimit:        req.RateLimit,
		Active:           true,
	}
	if tenant.DefaultLocale == "" {
		tenant.DefaultLocale = defaultLocale
	}
	if tenant.RateLimit == 0 {
		tenant.RateLimit = defaultRateLimit
	}
	tenant.Locales = datatypes.NewJSONSlice(withDefaultLocale(req.Locales, tenant.DefaultLocale))

	flags, err := applyFeatures(domain.FeatureFlags{}, req.Features)
	if err != nil {
		return nil, err
	}
	tenant.Features = datatypes.NewJSONType(flags)

	created, err := s.repo.Tenant().Create(ctx, tenant)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTenantExists
		}
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	return created, nil
}

func (s *TenantService) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	tenant, err := s.repo.Tenant().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return tenant, nil
}

func (s *TenantService) List(ctx context.Context, filter domain.TenantFilter) ([]domain.Tenant, error) {
	return s.repo.Tenant().List(ctx, filter)
}

func (s *TenantService) Update(ctx context.Context, id string, req dto.UpdateTenantRequest) (*domain.Tenant, error) {
	tenant, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stale := cacheKeys(tenant)

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Domain != nil {
		tenant.Domain = NormalizeHost(*req.Domain)
	}
	if req.ScraperSourceURL != nil {
		tenant.ScraperSourceURL = *req.ScraperSourceURL
	}
	if req.DefaultLocale != nil {
		tenant.DefaultLocale = *req.DefaultLocale
	}
	if req.Locales != nil || req.DefaultLocale != nil {
		locales := req.Locales
		if locales == nil {
			locales = tenant.Locales
		}
		tenant.Locales = datatypes.NewJSONSlice(withDefaultLocale(locales, tenant.DefaultLocale))
	}
	if req.Features != nil {
		flags, err := applyFeatures(tenant.Features.Data(), req.Features)
		if err != nil {
			return nil, err
		}
		tenant.Features = datatypes.NewJSONType(flags)
	}
	if req.Metadata != nil {
		tenant.Metadata = datatypes.JSON(req.Metadata)
	}
	if req.RateLimit != nil {
		tenant.RateLimit = *req.RateLimit
	}
	if req.Active != nil {
		tenant.Active = *req.Active
	}

	if err := s.repo.Tenant().Update(ctx, tenant); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTenantExists
		}
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	s.invalidate(ctx, append(stale, cacheKeys(tenant)...)...)
	return tenant, nil
}

// RotateAPIKey issues a new key; the old one stops resolving immediately.
func (s *TenantService) RotateAPIKey(ctx context.Context, id string) (*domain.Tenant, error) {
	tenant, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stale := cacheKeys(tenant)

	if tenant.APIKey, err = generateAPIKey(); err != nil {
		return nil, err
	}
	if err := s.repo.Tenant().Update(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to rotate api key: %w", err)
	}
	s.invalidate(ctx, stale...)
	return tenant, nil
}

// Delete refuses to remove a tenant that still owns rows.
func (s *TenantService) Delete(ctx context.Context, id string) error {
	tenant, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.Tenant().CountDependents(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count tenant content: %w", err)
	}
	if count > 0 {
		return ErrTenantHasDependents
	}

	if err := s.repo.Tenant().Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTenantNotFound
		}
		return err
	}
	s.invalidate(ctx, cacheKeys(tenant)...)

	if err := s.repo.Search().DeleteIndex(ctx, id); err != nil {
		s.logger.Error("failed to delete tenant search index", err, zap.String("tenant_id", id))
	}
	return nil
}

func (s *TenantService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil || len(keys) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("failed to invalidate tenant cache", zap.Strings("keys", keys), zap.Error(err))
	}
}

func cacheKeys(tenant *domain.Tenant) []string {
	keys := []string{cache.APIKeyKey(tenant.APIKey)}
	if tenant.Domain != "" {
		keys = append(keys, cache.HostKey(NormalizeHost(tenant.Domain)))
	}
	return keys
}

func applyFeatures(flags domain.FeatureFlags, in map[string]bool) (domain.FeatureFlags, error) {
	verr := &ValidationError{}
	for name, on := range in {
		feature, err := domain.ParseFeature(name)
		if err != nil {
			verr.Add("features."+name, "is not a known feature")
			continue
		}
		_ = flags.Set(feature, on)
	}
	return flags, verr.OrNil()
}

func withDefaultLocale(locales []string, def string) []string {
	out := make([]string, 0, len(locales)+1)
	for _, l := range locales {
		l = strings.ToLower(l)
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	if !slices.Contains(out, strings.ToLower(def)) {
		out = append([]string{strings.ToLower(def)}, out...)
	}
	return out
}

func generateAPIKey() (string, error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
