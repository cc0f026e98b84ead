package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Tenant struct {
	ID               string                           `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Slug             string                           `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Name             string                           `gorm:"type:text;not null" json:"name"`
	APIKey           string                           `gorm:"column:api_key;type:text;not null;uniqueIndex" json:"-"`
	Domain           string                           `gorm:"type:text;index" json:"domain"`
	ScraperSourceURL string                           `gorm:"type:text" json:"scraper_source_url"`
	DefaultLocale    string                           `gorm:"type:text;not null;default:'en'" json:"default_locale"`
	Locales          datatypes.JSONSlice[string]      `gorm:"type:jsonb" json:"locales"`
	Features         datatypes.JSONType[FeatureFlags] `gorm:"type:jsonb" json:"features"`
	Metadata         datatypes.JSON                   `gorm:"type:jsonb" json:"metadata,omitempty"`
	RateLimit        int                              `gorm:"not null;default:1000" json:"rate_limit"`
	Active           bool                             `gorm:"not null;default:true" json:"active"`
	CreatedAt        time.Time                        `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time                        `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// FeatureEnabled reports whether the named feature is switched on for the tenant.
// Unknown feature names report false.
func (t *Tenant) FeatureEnabled(f Feature) bool {
	enabled, err := t.Features.Data().Enabled(f)
	return err == nil && enabled
}

// SupportsLocale reports whether locale is one of the tenant's content locales.
// A tenant without an explicit list only supports its default locale.
func (t *Tenant) SupportsLocale(locale string) bool {
	if strings.EqualFold(locale, t.DefaultLocale) {
		return true
	}
	for _, l := range t.Locales {
		if strings.EqualFold(l, locale) {
			return true
		}
	}
	return false
}

type TenantFilter struct {
	Active *bool `json:"active"`
}
