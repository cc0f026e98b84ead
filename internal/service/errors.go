package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// Tenant errors
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrTenantExists        = errors.New("tenant already exists")
	ErrTenantHasDependents = errors.New("tenant still owns content")
	ErrTenantMismatch      = errors.New("token belongs to another tenant")
	ErrFeatureDisabled     = errors.New("feature is disabled for this tenant")

	// Content errors
	ErrNotFound          = errors.New("record not found")
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrParentNotFound    = errors.New("photo parent not found")
	ErrInvalidImage      = errors.New("invalid image")
	ErrUnsupportedLocale = errors.New("unsupported locale")

	// Token errors
	ErrInvalidToken = errors.New("invalid or expired token")

	// Scraping errors
	ErrDomainMismatch     = errors.New("url does not belong to the tenant's source site")
	ErrScraperNotEnabled  = errors.New("scraper source is not configured")
	ErrScrapeSourceFailed = errors.New("failed to fetch scrape source")

	// Subscriber errors
	ErrAlreadySubscribed = errors.New("email is already subscribed")
)

// ValidationError carries per-field messages for 422 responses.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

// OrNil returns nil when no field failed, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
