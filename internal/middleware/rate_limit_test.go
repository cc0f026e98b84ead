package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

// unreachableRedis fails every command quickly.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRateLimit_FailsOpenWhenRedisIsDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := unreachableRedis()
	defer client.Close()
	m := NewRateLimitMiddleware(client, &config.Config{DefaultRateLimit: 1}, logger.NewNop())

	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		c.Request = c.Request.WithContext(utils.WithTenant(c.Request.Context(), &domain.Tenant{ID: "acme"}))
		c.Next()
	}, m.TenantRateLimit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestTenantRateLimit_SkipsUnboundRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewRateLimitMiddleware(nil, &config.Config{}, logger.NewNop())
	router := gin.New()
	router.GET("/", m.TenantRateLimit(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
