package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kingrain94/realty-api/internal/utils"
)

func TestLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", Locale([]string{"en", "ru", "uk"}), func(c *gin.Context) {
		c.String(http.StatusOK, utils.LocaleFromContext(c.Request.Context()))
	})

	cases := []struct {
		name   string
		target string
		header string
		want   string
	}{
		{name: "query wins", target: "/?locale=UK", header: "ru-RU", want: "uk"},
		{name: "accept language base", target: "/", header: "ru-RU,ru;q=0.9,en;q=0.8", want: "ru"},
		{name: "quality order", target: "/", header: "en;q=0.2, uk;q=0.9", want: "uk"},
		{name: "nothing asked", target: "/", want: ""},
		{name: "wildcard", target: "/", header: "*", want: ""},
		{name: "regional variant", target: "/", header: "en-GB", want: "en"},
		{name: "unsupported only", target: "/", header: "de-DE,fr;q=0.5", want: ""},
		{name: "skips unsupported", target: "/", header: "de-DE,ru;q=0.5", want: "ru"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.header != "" {
				req.Header.Set("Accept-Language", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Body.String())
		})
	}
}

func TestLocale_NoSupportedLocales(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", Locale(nil), func(c *gin.Context) {
		c.String(http.StatusOK, utils.LocaleFromContext(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "", w.Body.String())
}
