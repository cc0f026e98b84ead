package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/kingrain94/realty-api/internal/utils"
)

// Locale binds the requested content locale from ?locale= or, failing that,
// the best Accept-Language match among the supported locales. Fallback to
// the tenant default happens when responses are rendered.
func Locale(supported []string) gin.HandlerFunc {
	negotiator := newLocaleNegotiator(supported)
	return func(c *gin.Context) {
		locale := strings.ToLower(strings.TrimSpace(c.Query("locale")))
		if locale == "" {
			locale = negotiator.match(c.GetHeader("Accept-Language"))
		}
		if locale != "" {
			c.Request = c.Request.WithContext(utils.WithLocale(c.Request.Context(), locale))
		}
		c.Next()
	}
}

type localeNegotiator struct {
	locales []string
	matcher language.Matcher
}

func newLocaleNegotiator(supported []string) *localeNegotiator {
	n := &localeNegotiator{}
	tags := make([]language.Tag, 0, len(supported))
	for _, locale := range supported {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		n.locales = append(n.locales, strings.ToLower(locale))
		tags = append(tags, tag)
	}
	if len(tags) > 0 {
		n.matcher = language.NewMatcher(tags)
	}
	return n
}

// match returns "" for wildcards and for headers that only name unsupported
// languages.
func (n *localeNegotiator) match(header string) string {
	if header == "" || n.matcher == nil {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, index, confidence := n.matcher.Match(tags...)
	if confidence < language.Low {
		return ""
	}
	return n.locales[index]
}
