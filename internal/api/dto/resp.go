package dto

import (
	"encoding/json"
	"time"
)

type TenantResponse struct {
	ID               string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Slug             string          `json:"slug" example:"acme"`
	Name             string          `json:"name" example:"Acme Realty"`
	Domain           string          `json:"domain" example:"acme-realty.com"`
	ScraperSourceURL string          `json:"scraper_source_url,omitempty"`
	DefaultLocale    string          `json:"default_locale" example:"en"`
	Locales          []string        `json:"locales" example:"en,ru"`
	Features         map[string]bool `json:"features"`
	Metadata         json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
	RateLimit        int             `json:"rate_limit" example:"1000"`
	Active           bool            `json:"active" example:"true"`
	CreatedAt        time.Time       `json:"created_at" example:"2025-07-17T21:20:48Z"`
	UpdatedAt        time.Time       `json:"updated_at" example:"2025-07-17T21:20:48Z"`
}

// TenantWithKeyResponse is only returned when a key is issued.
type TenantWithKeyResponse struct {
	TenantResponse
	APIKey string `json:"api_key" example:"rk_4f9c..."`
}

// PublicTenantResponse is what the public site needs to render a tenant.
type PublicTenantResponse struct {
	Slug          string          `json:"slug"`
	Name          string          `json:"name"`
	DefaultLocale string          `json:"default_locale"`
	Locales       []string        `json:"locales"`
	Features      map[string]bool `json:"features"`
}

type PhotoResponse struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Main   bool   `json:"main"`
	Order  int    `json:"order"`
}

type ListingResponse struct {
	ID               string          `json:"id"`
	Slug             string          `json:"slug" example:"sea-view-apartment"`
	Status           string          `json:"status" example:"published"`
	ListingComplexID *string         `json:"listing_complex_id,omitempty"`
	Price            int64           `json:"price" example:"125000"`
	Currency         string          `json:"currency" example:"USD"`
	Rooms            int             `json:"rooms" example:"3"`
	Area             float64         `json:"area" example:"84.5"`
	Locale           string          `json:"locale" example:"en"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Address          string          `json:"address"`
	MainPhoto        *PhotoResponse  `json:"main_photo,omitempty"`
	Photos           []PhotoResponse `json:"photos"`
	SourceURL        string          `json:"source_url,omitempty"`
	Translations     Translations    `json:"translations,omitempty"`
	PublishedAt      *time.Time      `json:"published_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type ListingComplexResponse struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug" example:"green-park"`
	Status       string          `json:"status"`
	Order        int             `json:"order" example:"1"`
	Locale       string          `json:"locale"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Address      string          `json:"address"`
	MainPhoto    *PhotoResponse  `json:"main_photo,omitempty"`
	Photos       []PhotoResponse `json:"photos"`
	Translations Translations    `json:"translations,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type BlogPostResponse struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	Status       string          `json:"status"`
	Locale       string          `json:"locale"`
	Title        string          `json:"title"`
	Excerpt      string          `json:"excerpt"`
	Body         string          `json:"body"`
	MainPhoto    *PhotoResponse  `json:"main_photo,omitempty"`
	Photos       []PhotoResponse `json:"photos"`
	Translations Translations    `json:"translations,omitempty"`
	PublishedAt  *time.Time      `json:"published_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ClubStoryResponse struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	Status       string          `json:"status"`
	Locale       string          `json:"locale"`
	Title        string          `json:"title"`
	Body         string          `json:"body"`
	MainPhoto    *PhotoResponse  `json:"main_photo,omitempty"`
	Photos       []PhotoResponse `json:"photos"`
	Translations Translations    `json:"translations,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type TestimonialResponse struct {
	ID           string       `json:"id"`
	AuthorName   string       `json:"author_name"`
	Rating       int          `json:"rating"`
	Status       string       `json:"status"`
	Locale       string       `json:"locale"`
	Text         string       `json:"text"`
	Translations Translations `json:"translations,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type VariableResponse struct {
	ID           string       `json:"id"`
	Key          string       `json:"key"`
	Locale       string       `json:"locale"`
	Value        string       `json:"value"`
	Translations Translations `json:"translations,omitempty"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type SubscriberResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Locale      string     `json:"locale"`
	Confirmed   bool       `json:"confirmed"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type PaginationMeta struct {
	Page    int   `json:"page" example:"1"`
	PerPage int   `json:"per_page" example:"20"`
	Total   int64 `json:"total" example:"42"`
	Pages   int   `json:"pages" example:"3"`
}

// ListResponse wraps one page of results.
type ListResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

func NewPaginationMeta(page, perPage int, total int64) PaginationMeta {
	pages := 0
	if perPage > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return PaginationMeta{Page: page, PerPage: perPage, Total: total, Pages: pages}
}

type PreviewResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url" example:"http://localhost:3000/api/preview?token=..."`
	ExpiresAt time.Time `json:"expires_at"`
}

// PreviewContentResponse returns one record regardless of its publication status.
type PreviewContentResponse struct {
	ContentType string `json:"content_type" example:"listing"`
	Content     any    `json:"content"`
}

type ScrapeResponse struct {
	JobID  string `json:"job_id"`
	URL    string `json:"url"`
	Status string `json:"status" example:"queued"`
}

type PurgeResponse struct {
	Before time.Time `json:"before"`
	Status string    `json:"status" example:"queued"`
}
