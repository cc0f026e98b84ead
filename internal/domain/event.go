package domain

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventScrapeQueued        EventType = "scrape.queued"
	EventScrapeCompleted     EventType = "scrape.completed"
	EventScrapeFailed        EventType = "scrape.failed"
	EventPhotoAdded          EventType = "photo.added"
	EventListingIndexed      EventType = "listing.indexed"
	EventSubscriberConfirmed EventType = "subscriber.confirmed"
)

// Event is a job or content notification streamed to backoffice clients of one tenant.
type Event struct {
	ID         string          `json:"id"`
	Type       EventType       `json:"type"`
	TenantID   string          `json:"tenant_id"`
	Subject    string          `json:"subject,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty" swaggertype:"object"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ScrapeJob asks the scrape worker to import one page of a tenant's source site.
type ScrapeJob struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	URL         string    `json:"url"`
	RequestedBy string    `json:"requested_by,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// Mail is a templated message delivered by the mail worker.
type Mail struct {
	To       string            `json:"to"`
	Template string            `json:"template"`
	Locale   string            `json:"locale"`
	Data     map[string]string `json:"data"`
}

const (
	MailSubscriptionConfirmation = "subscription_confirmation"
	MailSubscriberConfirmed      = "subscriber_confirmed"
	MailScrapeReport             = "scrape_report"
)
