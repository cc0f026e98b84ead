package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/mocks"
	"github.com/kingrain94/realty-api/internal/service"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

type TenantMiddlewareTestSuite struct {
	suite.Suite
	resolver   *mocks.TenantResolver
	middleware *TenantMiddleware
	bound      domain.TenantScope
	boundOK    bool
}

func (s *TenantMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.resolver = new(mocks.TenantResolver)
	s.middleware = NewTenantMiddleware(s.resolver, logger.NewNop())
	s.bound = domain.TenantScope{}
	s.boundOK = false
}

func TestTenantMiddleware(t *testing.T) {
	suite.Run(t, new(TenantMiddlewareTestSuite))
}

func (s *TenantMiddlewareTestSuite) capture(c *gin.Context) {
	s.bound = utils.ScopeFromContext(c.Request.Context())
	s.boundOK = true
	c.Status(http.StatusOK)
}

func (s *TenantMiddlewareTestSuite) serve(admin *domain.Admin, handlers ...gin.HandlerFunc) func(*http.Request) *httptest.ResponseRecorder {
	router := gin.New()
	chain := []gin.HandlerFunc{}
	if admin != nil {
		chain = append(chain, func(c *gin.Context) {
			c.Request = c.Request.WithContext(utils.WithAdmin(c.Request.Context(), admin))
			c.Next()
		})
	}
	chain = append(chain, handlers...)
	chain = append(chain, s.capture)
	router.GET("/", chain...)
	return func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}
}

func (s *TenantMiddlewareTestSuite) TestResolveTenant_ByAPIKey() {
	tenant := &domain.Tenant{ID: "acme", Active: true}
	s.resolver.On("Resolve", mock.Anything, "key-1", "acme.example.com").Return(tenant, nil)
	req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/", nil)
	req.Header.Set(APIKeyHeader, "key-1")

	w := s.serve(nil, s.middleware.ResolveTenant())(req)

	s.Equal(http.StatusOK, w.Code)
	s.True(s.boundOK)
	s.True(s.bound.Owns("acme"))
}

func (s *TenantMiddlewareTestSuite) TestResolveTenant_UnknownTenant() {
	s.resolver.On("Resolve", mock.Anything, "", "nobody.example.com").Return(nil, service.ErrTenantNotFound)

	w := s.serve(nil, s.middleware.ResolveTenant())(httptest.NewRequest(http.MethodGet, "http://nobody.example.com/", nil))

	s.Equal(http.StatusNotFound, w.Code)
	s.False(s.boundOK)
}

func (s *TenantMiddlewareTestSuite) TestResolveTenant_LookupError() {
	s.resolver.On("Resolve", mock.Anything, "", mock.Anything).Return(nil, errors.New("redis down"))

	w := s.serve(nil, s.middleware.ResolveTenant())(httptest.NewRequest(http.MethodGet, "/", nil))

	s.Equal(http.StatusInternalServerError, w.Code)
}

func (s *TenantMiddlewareTestSuite) TestAdminTenant_PinsTenantAdmin() {
	admin := &domain.Admin{ID: "a1", TenantID: "acme", Roles: []string{string(domain.RoleEditor)}}
	s.resolver.On("GetByID", mock.Anything, "acme").Return(&domain.Tenant{ID: "acme", Active: true}, nil)
	req := httptest.NewRequest(http.MethodGet, "/?tenant_id=globex", nil)

	w := s.serve(admin, s.middleware.AdminTenant())(req)

	s.Equal(http.StatusOK, w.Code)
	s.True(s.bound.Owns("acme"))
	s.resolver.AssertNotCalled(s.T(), "GetByID", mock.Anything, "globex")
}

func (s *TenantMiddlewareTestSuite) TestAdminTenant_InactiveTenantForbidden() {
	admin := &domain.Admin{ID: "a1", TenantID: "acme", Roles: []string{string(domain.RoleAdmin)}}
	s.resolver.On("GetByID", mock.Anything, "acme").Return(&domain.Tenant{ID: "acme"}, nil)

	w := s.serve(admin, s.middleware.AdminTenant())(httptest.NewRequest(http.MethodGet, "/", nil))

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *TenantMiddlewareTestSuite) TestAdminTenant_SuperAdminSelectsTenant() {
	admin := &domain.Admin{ID: "root", Roles: []string{string(domain.RoleSuperAdmin)}}
	s.resolver.On("GetByID", mock.Anything, "globex").Return(&domain.Tenant{ID: "globex"}, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TenantIDHeader, "globex")

	w := s.serve(admin, s.middleware.AdminTenant())(req)

	s.Equal(http.StatusOK, w.Code)
	s.True(s.bound.Owns("globex"))
}

func (s *TenantMiddlewareTestSuite) TestAdminTenant_SuperAdminCrossTenant() {
	admin := &domain.Admin{ID: "root", Roles: []string{string(domain.RoleSuperAdmin)}}

	w := s.serve(admin, s.middleware.AdminTenant())(httptest.NewRequest(http.MethodGet, "/", nil))

	s.Equal(http.StatusOK, w.Code)
	s.True(s.bound.IsCrossTenant())
	s.resolver.AssertNotCalled(s.T(), "GetByID", mock.Anything, mock.Anything)
}

func (s *TenantMiddlewareTestSuite) TestAdminTenant_RequiresAdmin() {
	w := s.serve(nil, s.middleware.AdminTenant())(httptest.NewRequest(http.MethodGet, "/", nil))

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *TenantMiddlewareTestSuite) TestAdminTenant_UnknownTenant() {
	admin := &domain.Admin{ID: "root", Roles: []string{string(domain.RoleSuperAdmin)}}
	s.resolver.On("GetByID", mock.Anything, "ghost").Return(nil, service.ErrTenantNotFound)

	w := s.serve(admin, s.middleware.AdminTenant())(httptest.NewRequest(http.MethodGet, "/?tenant_id=ghost", nil))

	s.Equal(http.StatusForbidden, w.Code)
}
