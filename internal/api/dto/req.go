package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/pkg/utils"
)

// Translations maps a locale to its field values, e.g. {"en": {"title": "Sea view"}}.
type Translations map[string]map[string]string

type CreateTenantRequest struct {
	Slug             string          `json:"slug" binding:"required,slug" example:"acme"`
	Name             string          `json:"name" binding:"required,max=200" example:"Acme Realty"`
	Domain           string          `json:"domain" binding:"omitempty,hostname" example:"acme-realty.com"`
	ScraperSourceURL string          `json:"scraper_source_url" binding:"omitempty,url" example:"https://www.acme-listings.com"`
	DefaultLocale    string          `json:"default_locale" binding:"omitempty,locale" example:"en"`
	Locales          []string        `json:"locales" binding:"omitempty,dive,locale" example:"en,ru"`
	Features         map[string]bool `json:"features" example:"blog:true"`
	Metadata         json.RawMessage `json:"metadata" swaggertype:"object"`
	RateLimit        int             `json:"rate_limit" binding:"omitempty,min=1" example:"1000"`
}

type UpdateTenantRequest struct {
	Name             *string         `json:"name" binding:"omitempty,max=200"`
	Domain           *string         `json:"domain" binding:"omitempty,hostname"`
	ScraperSourceURL *string         `json:"scraper_source_url" binding:"omitempty,url"`
	DefaultLocale    *string         `json:"default_locale" binding:"omitempty,locale"`
	Locales          []string        `json:"locales" binding:"omitempty,dive,locale"`
	Features         map[string]bool `json:"features"`
	Metadata         json.RawMessage `json:"metadata" swaggertype:"object"`
	RateLimit        *int            `json:"rate_limit" binding:"omitempty,min=1"`
	Active           *bool           `json:"active"`
}

type ListingRequest struct {
	Slug             string       `json:"slug" binding:"omitempty,slug" example:"sea-view-apartment"`
	Status           string       `json:"status" binding:"omitempty,oneof=draft published hidden" example:"published"`
	ListingComplexID *string      `json:"listing_complex_id" binding:"omitempty,uuid"`
	Price            int64        `json:"price" binding:"min=0" example:"125000"`
	Currency         string       `json:"currency" binding:"omitempty,len=3,uppercase" example:"USD"`
	Rooms            int          `json:"rooms" binding:"min=0" example:"3"`
	Area             float64      `json:"area" binding:"min=0" example:"84.5"`
	Translations     Translations `json:"translations" binding:"required"`
}

type ListingComplexRequest struct {
	Slug         string       `json:"slug" binding:"omitempty,slug" example:"green-park"`
	Status       string       `json:"status" binding:"omitempty,oneof=draft published hidden"`
	Order        int          `json:"order" binding:"min=0" example:"1"`
	Translations Translations `json:"translations" binding:"required"`
}

type BlogPostRequest struct {
	Slug         string       `json:"slug" binding:"omitempty,slug"`
	Status       string       `json:"status" binding:"omitempty,oneof=draft published hidden"`
	PublishedAt  *time.Time   `json:"published_at"`
	Translations Translations `json:"translations" binding:"required"`
}

type ClubStoryRequest struct {
	Slug         string       `json:"slug" binding:"omitempty,slug"`
	Status       string       `json:"status" binding:"omitempty,oneof=draft published hidden"`
	Translations Translations `json:"translations" binding:"required"`
}

type TestimonialRequest struct {
	AuthorName   string       `json:"author_name" binding:"required,max=200" example:"Jane Doe"`
	Rating       int          `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Status       string       `json:"status" binding:"omitempty,oneof=draft published hidden"`
	Translations Translations `json:"translations" binding:"required"`
}

type VariableRequest struct {
	Key          string       `json:"key" binding:"required,max=100" example:"hero_title"`
	Translations Translations `json:"translations" binding:"required"`
}

type ReorderRequest struct {
	Position int `json:"position" binding:"required,min=1" example:"2"`
}

type PhotoUploadRequest struct {
	Position int  `form:"position" binding:"min=0"`
	Main     bool `form:"main"`
}

type PreviewRequest struct {
	ContentType string `json:"content_type" binding:"required,oneof=listing listing_complex blog_post club_story" example:"listing"`
	ContentID   string `json:"content_id" binding:"required,uuid"`
}

type ScrapeRequest struct {
	URL string `json:"url" binding:"required,url" example:"https://www.acme-listings.com/offers/123"`
}

type SubscribeRequest struct {
	Email  string `json:"email" binding:"required,email,max=320" example:"jane@example.com"`
	Locale string `json:"locale" binding:"omitempty,locale" example:"en"`
}

// ListQuery carries pagination and filtering parameters of list endpoints.
type ListQuery struct {
	Page             int    `form:"page" binding:"min=0"`
	PerPage          int    `form:"per_page" binding:"min=0"`
	Status           string `form:"status" binding:"omitempty,oneof=draft published hidden"`
	Q                string `form:"q" binding:"max=200"`
	ListingComplexID string `form:"listing_complex_id" binding:"omitempty,uuid"`
	MinPrice         int64  `form:"min_price" binding:"min=0"`
	MaxPrice         int64  `form:"max_price" binding:"min=0"`
	Rooms            int    `form:"rooms" binding:"min=0"`
	PublishedAfter   string `form:"published_after"`
	PublishedBefore  string `form:"published_before"`
}

func (q ListQuery) ToFilter() (domain.ContentFilter, error) {
	filter := domain.ContentFilter{
		Status:           domain.ContentStatus(q.Status),
		ListingComplexID: q.ListingComplexID,
		MinPrice:         q.MinPrice,
		MaxPrice:         q.MaxPrice,
		Rooms:            q.Rooms,
		Query:            q.Q,
		Page:             q.Page,
		PageSize:         q.PerPage,
	}
	if q.PublishedAfter != "" {
		t, err := utils.ParseDate(q.PublishedAfter, false)
		if err != nil {
			return filter, fmt.Errorf("published_after: %w", err)
		}
		filter.PublishedAfter = t
	}
	if q.PublishedBefore != "" {
		t, err := utils.ParseDate(q.PublishedBefore, true)
		if err != nil {
			return filter, fmt.Errorf("published_before: %w", err)
		}
		filter.PublishedBefore = t
	}
	return filter, nil
}
