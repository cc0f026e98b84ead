package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kingrain94/realty-api/pkg/logger"
)

type ValidationMiddleware struct {
	logger *logger.Logger
}

func NewValidationMiddleware(logger *logger.Logger) *ValidationMiddleware {
	return &ValidationMiddleware{
		logger: logger,
	}
}

// ValidateContentType rejects bodies of other media types. Requests without a
// body pass.
func (m *ValidationMiddleware) ValidateContentType(allowedTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodDelete || c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		contentType := strings.TrimSpace(strings.Split(c.GetHeader("Content-Type"), ";")[0])
		if contentType == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Content-Type header is required"})
			return
		}

		for _, allowedType := range allowedTypes {
			if strings.EqualFold(contentType, allowedType) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
			"error":         "Unsupported Content-Type",
			"allowed_types": allowedTypes,
		})
	}
}

// ValidateRequestSize limits request body size
func (m *ValidationMiddleware) ValidateRequestSize(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":         "Request body too large",
				"max_size":      maxSize,
				"received_size": c.Request.ContentLength,
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// BlockSuspiciousPatterns rejects paths and query strings carrying script
// injection or path traversal. Bodies are not inspected: blog posts legitimately
// contain markup.
func (m *ValidationMiddleware) BlockSuspiciousPatterns() gin.HandlerFunc {
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script.*?>`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on(load|click|error)=`),
		regexp.MustCompile(`(?i)<(iframe|object|embed).*?>`),
		regexp.MustCompile(`\.\./`),
		regexp.MustCompile(`\.\.\\`),
		regexp.MustCompile(`(?i)%2e%2e(%2f|%5c)`),
	}

	suspicious := func(input string) bool {
		for _, p := range patterns {
			if p.MatchString(input) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		if suspicious(c.Request.URL.Path) || suspicious(c.Request.URL.RawQuery) {
			m.logger.Warn("Blocked suspicious request",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		for key, values := range c.Request.URL.Query() {
			for _, value := range values {
				if suspicious(value) {
					m.logger.Warn("Blocked suspicious query parameter",
						zap.String("key", key),
						zap.String("ip", c.ClientIP()))
					c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
					return
				}
			}
		}

		c.Next()
	}
}
