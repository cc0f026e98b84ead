package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/utils"
)

// AdminClaims are the claims of a backoffice access token. An empty tenant id
// marks a super admin.
type AdminClaims struct {
	AdminID   string   `json:"admin_id"`
	TenantID  string   `json:"tenant_id,omitempty"`
	Email     string   `json:"email,omitempty"`
	Roles     []string `json:"roles"`
	Confirmed bool     `json:"confirmed"`
	jwt.RegisteredClaims
}

func (c *AdminClaims) Admin() *domain.Admin {
	return &domain.Admin{
		ID:        c.AdminID,
		TenantID:  c.TenantID,
		Email:     c.Email,
		Roles:     c.Roles,
		Confirmed: c.Confirmed,
	}
}

type AuthMiddleware struct {
	config *config.Config
}

func NewAuthMiddleware(config *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		config: config,
	}
}

func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims := &AdminClaims{}
		_, err := jwt.ParseWithClaims(bearerToken[1], claims, func(token *jwt.Token) (any, error) {
			return []byte(m.config.JWTSecretKey), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || claims.AdminID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if !claims.Confirmed {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account is not confirmed"})
			return
		}

		admin := claims.Admin()
		c.Set(string(utils.AdminKey), admin)
		c.Set(string(utils.TenantIDKey), admin.TenantID)
		c.Request = c.Request.WithContext(utils.WithAdmin(c.Request.Context(), admin))
		c.Next()
	}
}

// RequireRole lets the request through when the admin holds any of roles.
// Super admins always pass.
func (m *AuthMiddleware) RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := utils.AdminFromContext(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authentication found"})
			return
		}

		if !admin.Can(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := utils.AdminFromContext(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authentication found"})
			return
		}
		if !admin.IsSuperAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Super admin access required"})
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) GenerateToken(admin *domain.Admin) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		AdminID:   admin.ID,
		TenantID:  admin.TenantID,
		Email:     admin.Email,
		Roles:     admin.Roles,
		Confirmed: admin.Confirmed,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(m.config.JWTExpirationHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.JWTSecretKey))
}
