package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/metrics"
	"github.com/kingrain94/realty-api/internal/service"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

const (
	APIKeyHeader   = "X-Api-Key"
	TenantIDHeader = "X-Tenant-Id"
)

//go:generate mockery --name TenantResolver --output ../mocks
type TenantResolver interface {
	Resolve(ctx context.Context, apiKey, host string) (*domain.Tenant, error)
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
}

type TenantMiddleware struct {
	resolver TenantResolver
	logger   *logger.Logger
}

func NewTenantMiddleware(resolver TenantResolver, logger *logger.Logger) *TenantMiddleware {
	return &TenantMiddleware{
		resolver: resolver,
		logger:   logger,
	}
}

// bind stores the tenant on the gin context and the request context.
func bind(c *gin.Context, tenant *domain.Tenant) {
	c.Set(string(utils.TenantKey), tenant)
	c.Set(string(utils.TenantIDKey), tenant.ID)
	c.Request = c.Request.WithContext(utils.WithTenant(c.Request.Context(), tenant))
}

// ResolveTenant binds the tenant of a public request from the API key header,
// or from the request host when no key is sent.
func (m *TenantMiddleware) ResolveTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(APIKeyHeader)
		source := "host"
		if apiKey != "" {
			source = "api_key"
		}

		tenant, err := m.resolver.Resolve(c.Request.Context(), apiKey, c.Request.Host)
		if err != nil {
			if errors.Is(err, service.ErrTenantNotFound) {
				metrics.TenantResolutionsTotal.WithLabelValues(source, "not_found").Inc()
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
				return
			}
			metrics.TenantResolutionsTotal.WithLabelValues(source, "error").Inc()
			m.logger.Error("Failed to resolve tenant", err, zap.String("host", c.Request.Host))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		metrics.TenantResolutionsTotal.WithLabelValues(source, "resolved").Inc()
		bind(c, tenant)
		c.Next()
	}
}

// AdminTenant binds the tenant of an authenticated admin. Tenant admins are
// pinned to their own tenant. Super admins pick one with tenant_id (query or
// X-Tenant-Id header); without it the request runs cross-tenant.
func (m *TenantMiddleware) AdminTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := utils.AdminFromContext(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authentication found"})
			return
		}

		tenantID := admin.TenantID
		if admin.IsSuperAdmin() {
			tenantID = c.Query("tenant_id")
			if tenantID == "" {
				tenantID = c.GetHeader(TenantIDHeader)
			}
			if tenantID == "" {
				c.Request = c.Request.WithContext(utils.WithCrossTenant(c.Request.Context()))
				c.Next()
				return
			}
		}

		tenant, err := m.resolver.GetByID(c.Request.Context(), tenantID)
		if err != nil {
			if errors.Is(err, service.ErrTenantNotFound) {
				metrics.TenantResolutionsTotal.WithLabelValues("admin", "not_found").Inc()
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Tenant not accessible"})
				return
			}
			metrics.TenantResolutionsTotal.WithLabelValues("admin", "error").Inc()
			m.logger.Error("Failed to load admin tenant", err, zap.String("tenant_id", tenantID))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if !tenant.Active && !admin.IsSuperAdmin() {
			metrics.TenantResolutionsTotal.WithLabelValues("admin", "not_found").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Tenant not accessible"})
			return
		}

		metrics.TenantResolutionsTotal.WithLabelValues("admin", "resolved").Inc()
		bind(c, tenant)
		c.Next()
	}
}
