package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

const rateWindow = time.Minute

type RateLimitMiddleware struct {
	redis  *redis.Client
	config *config.Config
	logger *logger.Logger
}

func NewRateLimitMiddleware(redis *redis.Client, config *config.Config, logger *logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redis:  redis,
		config: config,
		logger: logger,
	}
}

// TenantRateLimit applies the per-minute limit stored on the resolved tenant.
// Requests without a bound tenant (cross-tenant super admin calls) pass.
func (m *RateLimitMiddleware) TenantRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, err := utils.TenantFromContext(c.Request.Context())
		if err != nil {
			c.Next()
			return
		}

		limit := tenant.RateLimit
		if limit <= 0 {
			limit = m.config.DefaultRateLimit
		}
		m.limit(c, fmt.Sprintf("rate_limit:tenant:%s", tenant.ID), limit, "Rate limit exceeded")
	}
}

// GlobalRateLimit limits requests per client IP.
func (m *RateLimitMiddleware) GlobalRateLimit(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.limit(c, fmt.Sprintf("rate_limit:global:%s", c.ClientIP()), limit, "Global rate limit exceeded")
	}
}

// limit counts the request in a fixed one-minute window. Redis failures let
// the request through.
func (m *RateLimitMiddleware) limit(c *gin.Context, key string, limit int, message string) {
	ctx := c.Request.Context()

	pipe := m.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, rateWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		m.logger.Error("Redis error in rate limiting", err)
		c.Next()
		return
	}

	current := int(incr.Val())
	reset := time.Now().Add(rateWindow).Unix()
	remaining := limit - current
	if remaining < 0 {
		remaining = 0
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

	if current > limit {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": message,
			"limit": limit,
			"reset": reset,
		})
		return
	}
	c.Next()
}
