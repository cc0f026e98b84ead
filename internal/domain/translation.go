package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Translatable types, also used as polymorphic values on photos and slug history.
const (
	TypeListing        = "listing"
	TypeListingComplex = "listing_complex"
	TypeBlogPost       = "blog_post"
	TypeClubStory      = "club_story"
	TypeTestimonial    = "testimonial"
	TypeVariable       = "variable"
)

// Translation holds the locale specific fields of one record.
// (translatable_type, translatable_id, locale) is unique.
type Translation struct {
	ID               string            `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID         string            `gorm:"type:uuid;not null;index" json:"tenant_id"`
	TranslatableType string            `gorm:"type:text;not null;uniqueIndex:idx_translations_owner_locale" json:"translatable_type"`
	TranslatableID   string            `gorm:"type:uuid;not null;uniqueIndex:idx_translations_owner_locale" json:"translatable_id"`
	Locale           string            `gorm:"type:text;not null;uniqueIndex:idx_translations_owner_locale" json:"locale"`
	Fields           datatypes.JSONMap `gorm:"type:jsonb;not null" json:"fields"`
	CreatedAt        time.Time         `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Translation) TableName() string {
	return "translations"
}

func (t Translation) Get(field string) string {
	if v, ok := t.Fields[field].(string); ok {
		return v
	}
	return ""
}

type Translations []Translation

// For returns the translation for locale, falling back to fallback and then to
// whatever translation exists.
func (ts Translations) For(locale, fallback string) (Translation, bool) {
	for _, t := range ts {
		if strings.EqualFold(t.Locale, locale) {
			return t, true
		}
	}
	for _, t := range ts {
		if strings.EqualFold(t.Locale, fallback) {
			return t, true
		}
	}
	if len(ts) > 0 {
		return ts[0], true
	}
	return Translation{}, false
}

// Field resolves a single field with the same fallback rules as For.
func (ts Translations) Field(field, locale, fallback string) string {
	t, ok := ts.For(locale, fallback)
	if !ok {
		return ""
	}
	return t.Get(field)
}

// TranslationInput is the write side of a translation: locale -> field -> value.
type TranslationInput map[string]map[string]string

// Build turns the input into rows owned by the given record.
func (in TranslationInput) Build(tenantID, translatableType, translatableID string) []Translation {
	rows := make([]Translation, 0, len(in))
	for locale, fields := range in {
		m := make(datatypes.JSONMap, len(fields))
		for k, v := range fields {
			m[k] = v
		}
		rows = append(rows, Translation{
			TenantID:         tenantID,
			TranslatableType: translatableType,
			TranslatableID:   translatableID,
			Locale:           strings.ToLower(locale),
			Fields:           m,
		})
	}
	return rows
}

// Value returns a field for locale without fallback.
func (in TranslationInput) Value(locale, field string) string {
	for l, fields := range in {
		if strings.EqualFold(l, locale) {
			return fields[field]
		}
	}
	return ""
}
