package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/mocks"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/service/cache"
	"github.com/kingrain94/realty-api/pkg/logger"
)

type TenantServiceTestSuite struct {
	suite.Suite
	mockRepo   *mocks.Repository
	mockTenant *mocks.TenantRepository
	mockSearch *mocks.SearchRepository
	mockCache  *mocks.TenantCache
	service    *TenantService
}

func (s *TenantServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockTenant = new(mocks.TenantRepository)
	s.mockSearch = new(mocks.SearchRepository)
	s.mockCache = new(mocks.TenantCache)

	s.mockRepo.On("Tenant").Return(s.mockTenant)
	s.mockRepo.On("Search").Return(s.mockSearch)

	s.service = NewTenantService(s.mockRepo, s.mockCache, logger.NewNop())
}

func TestTenantService(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}

func (s *TenantServiceTestSuite) TestResolve_APIKeyFromCache() {
	ctx := context.Background()
	tenant := &domain.Tenant{ID: "tenant1", Active: true}
	s.mockCache.On("Get", ctx, cache.APIKeyKey("key1")).Return(tenant, nil)

	resolved, err := s.service.Resolve(ctx, "key1", "ignored.example.com")

	s.NoError(err)
	s.Equal("tenant1", resolved.ID)
	s.mockTenant.AssertNotCalled(s.T(), "GetByAPIKey", mock.Anything, mock.Anything)
}

func (s *TenantServiceTestSuite) TestResolve_UnknownAPIKeyDoesNotFallBackToHost() {
	ctx := context.Background()
	s.mockCache.On("Get", ctx, cache.APIKeyKey("bad")).Return(nil, cache.ErrMiss)
	s.mockTenant.On("GetByAPIKey", mock.Anything, "bad").Return(nil, repository.ErrNotFound)

	_, err := s.service.Resolve(ctx, "bad", "acme.example.com")

	s.ErrorIs(err, ErrTenantNotFound)
	s.mockTenant.AssertNotCalled(s.T(), "GetByDomain", mock.Anything, mock.Anything)
}

func (s *TenantServiceTestSuite) TestResolve_HostIsNormalizedAndCached() {
	ctx := context.Background()
	tenant := &domain.Tenant{ID: "tenant1", Domain: "acme.example.com", Active: true}
	key := cache.HostKey("acme.example.com")
	s.mockCache.On("Get", ctx, key).Return(nil, cache.ErrMiss)
	s.mockTenant.On("GetByDomain", mock.Anything, "acme.example.com").Return(tenant, nil)
	s.mockCache.On("Set", mock.Anything, key, tenant).Return(nil)

	resolved, err := s.service.Resolve(ctx, "", "ACME.example.com:8080")

	s.NoError(err)
	s.Equal("tenant1", resolved.ID)
	s.mockCache.AssertExpectations(s.T())
}

func (s *TenantServiceTestSuite) TestResolve_InactiveTenantIsNotFound() {
	ctx := context.Background()
	tenant := &domain.Tenant{ID: "tenant1", Active: false}
	s.mockCache.On("Get", ctx, mock.Anything).Return(nil, cache.ErrMiss)
	s.mockTenant.On("GetByDomain", mock.Anything, "acme.example.com").Return(tenant, nil)

	_, err := s.service.Resolve(ctx, "", "acme.example.com")

	s.ErrorIs(err, ErrTenantNotFound)
	s.mockCache.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TenantServiceTestSuite) TestResolve_EmptyHost() {
	_, err := s.service.Resolve(context.Background(), "", "")

	s.ErrorIs(err, ErrTenantNotFound)
}

func (s *TenantServiceTestSuite) TestResolve_LoadOutlivesCancelledCaller() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tenant := &domain.Tenant{ID: "tenant1", Active: true}
	live := mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil })
	s.mockCache.On("Get", ctx, mock.Anything).Return(nil, cache.ErrMiss)
	s.mockTenant.On("GetByAPIKey", live, "key1").Return(tenant, nil)
	s.mockCache.On("Set", live, cache.APIKeyKey("key1"), tenant).Return(nil)

	resolved, err := s.service.Resolve(ctx, "key1", "")

	s.NoError(err)
	s.Equal("tenant1", resolved.ID)
	s.mockTenant.AssertExpectations(s.T())
	s.mockCache.AssertExpectations(s.T())
}

func (s *TenantServiceTestSuite) TestResolve_ConcurrentCallersGetCopies() {
	ctx := context.Background()
	tenant := &domain.Tenant{ID: "tenant1", Active: true}
	s.mockCache.On("Get", ctx, mock.Anything).Return(nil, cache.ErrMiss)
	s.mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.mockTenant.On("GetByAPIKey", mock.Anything, "key1").Return(tenant, nil)

	var wg sync.WaitGroup
	results := make([]*domain.Tenant, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = s.service.Resolve(ctx, "key1", "")
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		s.Require().NotNil(r)
		s.Equal("tenant1", r.ID)
		s.NotSame(tenant, r)
	}
}

func (s *TenantServiceTestSuite) TestCreate_Success() {
	ctx := context.Background()
	req := dto.CreateTenantRequest{
		Slug:     "acme",
		Name:     "Acme Realty",
		Domain:   "Acme-Realty.com",
		Locales:  []string{"RU"},
		Features: map[string]bool{"blog": true},
	}

	s.mockTenant.On("Create", ctx, mock.MatchedBy(func(t *domain.Tenant) bool {
		return t.Slug == "acme" &&
			t.Domain == "acme-realty.com" &&
			t.DefaultLocale == "en" &&
			t.RateLimit == defaultRateLimit &&
			t.Active &&
			len(t.APIKey) == apiKeyBytes*2 &&
			t.FeatureEnabled(domain.FeatureBlog)
	})).Return(&domain.Tenant{ID: "tenant1", Slug: "acme"}, nil)

	tenant, err := s.service.Create(ctx, req)

	s.NoError(err)
	s.Equal("tenant1", tenant.ID)
	s.mockTenant.AssertExpectations(s.T())
}

func (s *TenantServiceTestSuite) TestCreate_UnknownFeature() {
	_, err := s.service.Create(context.Background(), dto.CreateTenantRequest{
		Slug:     "acme",
		Name:     "Acme",
		Features: map[string]bool{"comments": true},
	})

	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "features.comments")
	s.mockTenant.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *TenantServiceTestSuite) TestCreate_Duplicate() {
	ctx := context.Background()
	s.mockTenant.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)

	_, err := s.service.Create(ctx, dto.CreateTenantRequest{Slug: "acme", Name: "Acme"})

	s.ErrorIs(err, ErrTenantExists)
}

func (s *TenantServiceTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := s.service.GetByID(ctx, "missing")

	s.ErrorIs(err, ErrTenantNotFound)
}

func (s *TenantServiceTestSuite) TestUpdate_InvalidatesOldAndNewKeys() {
	ctx := context.Background()
	existing := &domain.Tenant{
		ID:            "tenant1",
		APIKey:        "key1",
		Domain:        "old.example.com",
		DefaultLocale: "en",
		Active:        true,
	}
	newDomain := "New.Example.com"
	inactive := false

	s.mockTenant.On("GetByID", ctx, "tenant1").Return(existing, nil)
	s.mockTenant.On("Update", ctx, mock.MatchedBy(func(t *domain.Tenant) bool {
		return t.Domain == "new.example.com" && !t.Active
	})).Return(nil)
	s.mockCache.On("Delete", ctx,
		cache.APIKeyKey("key1"), cache.HostKey("old.example.com"),
		cache.APIKeyKey("key1"), cache.HostKey("new.example.com"),
	).Return(nil)

	tenant, err := s.service.Update(ctx, "tenant1", dto.UpdateTenantRequest{Domain: &newDomain, Active: &inactive})

	s.NoError(err)
	s.False(tenant.Active)
	s.mockCache.AssertExpectations(s.T())
}

func (s *TenantServiceTestSuite) TestUpdate_DefaultLocaleJoinsLocales() {
	ctx := context.Background()
	existing := &domain.Tenant{
		ID:            "tenant1",
		APIKey:        "key1",
		DefaultLocale: "en",
		Locales:       datatypes.JSONSlice[string]{"en"},
	}
	locale := "ru"

	s.mockTenant.On("GetByID", ctx, "tenant1").Return(existing, nil)
	s.mockTenant.On("Update", ctx, mock.Anything).Return(nil)
	s.mockCache.On("Delete", ctx, mock.Anything, mock.Anything).Return(nil)

	tenant, err := s.service.Update(ctx, "tenant1", dto.UpdateTenantRequest{DefaultLocale: &locale})

	s.NoError(err)
	s.Equal([]string{"ru", "en"}, []string(tenant.Locales))
}

func (s *TenantServiceTestSuite) TestRotateAPIKey() {
	ctx := context.Background()
	existing := &domain.Tenant{ID: "tenant1", APIKey: "old-key"}
	s.mockTenant.On("GetByID", ctx, "tenant1").Return(existing, nil)
	s.mockTenant.On("Update", ctx, mock.Anything).Return(nil)
	s.mockCache.On("Delete", ctx, cache.APIKeyKey("old-key")).Return(nil)

	tenant, err := s.service.RotateAPIKey(ctx, "tenant1")

	s.NoError(err)
	s.NotEqual("old-key", tenant.APIKey)
	s.Len(tenant.APIKey, apiKeyBytes*2)
	s.mockCache.AssertExpectations(s.T())
}

func (s *TenantServiceTestSuite) TestDelete_RefusesWhileContentExists() {
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "tenant1").Return(&domain.Tenant{ID: "tenant1", APIKey: "k"}, nil)
	s.mockTenant.On("CountDependents", ctx, "tenant1").Return(int64(3), nil)

	err := s.service.Delete(ctx, "tenant1")

	s.ErrorIs(err, ErrTenantHasDependents)
	s.mockTenant.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}

func (s *TenantServiceTestSuite) TestDelete_Success() {
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "tenant1").Return(&domain.Tenant{ID: "tenant1", APIKey: "k"}, nil)
	s.mockTenant.On("CountDependents", ctx, "tenant1").Return(int64(0), nil)
	s.mockTenant.On("Delete", ctx, "tenant1").Return(nil)
	s.mockCache.On("Delete", ctx, cache.APIKeyKey("k")).Return(nil)
	s.mockSearch.On("DeleteIndex", ctx, "tenant1").Return(errors.New("index missing"))

	err := s.service.Delete(ctx, "tenant1")

	s.NoError(err)
	s.mockTenant.AssertExpectations(s.T())
	s.mockSearch.AssertExpectations(s.T())
}

func (s *TenantServiceTestSuite) TestList_PassesFilter() {
	ctx := context.Background()
	active := true
	filter := domain.TenantFilter{Active: &active}
	s.mockTenant.On("List", ctx, filter).Return([]domain.Tenant{{ID: "tenant1"}}, nil)

	tenants, err := s.service.List(ctx, filter)

	s.NoError(err)
	s.Len(tenants, 1)
}
