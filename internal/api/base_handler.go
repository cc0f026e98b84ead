package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/utils"
)

type BaseHandler struct{}

func (h *BaseHandler) RequestCtx(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	for k, v := range ginCtx.Keys {
		// Convert string keys to proper context key types to avoid collisions
		contextKey := utils.ContextKey(k)
		ctx = context.WithValue(ctx, contextKey, v)
	}
	return ctx
}

// Localization picks the response locale: the requested one, falling back to
// the tenant default. Admin responses also carry all translations.
func (h *BaseHandler) Localization(ctx context.Context, admin bool) dto.Localization {
	loc := dto.Localization{Locale: utils.LocaleFromContext(ctx), Admin: admin}
	if tenant, err := utils.TenantFromContext(ctx); err == nil {
		loc.Fallback = tenant.DefaultLocale
		if loc.Locale == "" || !tenant.SupportsLocale(loc.Locale) {
			loc.Locale = tenant.DefaultLocale
		}
	}
	return loc
}
