package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/utils"
)

func newAuthRouter(m *AuthMiddleware, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{m.JWTAuth()}, guards...)
	handlers = append(handlers, func(c *gin.Context) {
		admin, err := utils.AdminFromContext(c.Request.Context())
		if err != nil {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, admin.ID)
	})
	router.GET("/", handlers...)
	return router
}

func call(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func testAuth() *AuthMiddleware {
	return NewAuthMiddleware(&config.Config{JWTSecretKey: "test-secret", JWTExpirationHours: 1})
}

func TestJWTAuth_AcceptsGeneratedToken(t *testing.T) {
	m := testAuth()
	token, err := m.GenerateToken(&domain.Admin{ID: "a1", TenantID: "acme", Roles: []string{"editor"}, Confirmed: true})
	require.NoError(t, err)

	w := call(newAuthRouter(m), token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a1", w.Body.String())
}

func TestJWTAuth_Rejects(t *testing.T) {
	m := testAuth()
	unconfirmed, _ := m.GenerateToken(&domain.Admin{ID: "a1", TenantID: "acme"})
	foreign, _ := NewAuthMiddleware(&config.Config{JWTSecretKey: "other", JWTExpirationHours: 1}).
		GenerateToken(&domain.Admin{ID: "a1", Confirmed: true})
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		AdminID:          "a1",
		Confirmed:        true,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	}).SignedString([]byte("test-secret"))
	// Subscriber confirmation tokens share the secret but carry no admin id.
	confirmation, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"tenant_id":     "acme",
		"subscriber_id": "s1",
	}).SignedString([]byte("test-secret"))

	for name, token := range map[string]string{
		"missing":      "",
		"garbage":      "not.a.jwt",
		"unconfirmed":  unconfirmed,
		"foreign":      foreign,
		"expired":      expired,
		"confirmation": confirmation,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, call(newAuthRouter(m), token).Code)
		})
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()

	newAuthRouter(testAuth()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	m := testAuth()
	router := newAuthRouter(m, m.RequireRole(domain.RoleAdmin))
	editor, _ := m.GenerateToken(&domain.Admin{ID: "e1", TenantID: "acme", Roles: []string{"editor"}, Confirmed: true})
	admin, _ := m.GenerateToken(&domain.Admin{ID: "a1", TenantID: "acme", Roles: []string{"admin"}, Confirmed: true})
	root, _ := m.GenerateToken(&domain.Admin{ID: "root", Roles: []string{"super_admin"}, Confirmed: true})

	assert.Equal(t, http.StatusForbidden, call(router, editor).Code)
	assert.Equal(t, http.StatusOK, call(router, admin).Code)
	assert.Equal(t, http.StatusOK, call(router, root).Code)
}

func TestRequireSuperAdmin(t *testing.T) {
	m := testAuth()
	router := newAuthRouter(m, m.RequireSuperAdmin())
	tenantSuper, _ := m.GenerateToken(&domain.Admin{ID: "x", TenantID: "acme", Roles: []string{"super_admin"}, Confirmed: true})
	root, _ := m.GenerateToken(&domain.Admin{ID: "root", Roles: []string{"super_admin"}, Confirmed: true})

	assert.Equal(t, http.StatusForbidden, call(router, tenantSuper).Code)
	assert.Equal(t, http.StatusOK, call(router, root).Code)
}
