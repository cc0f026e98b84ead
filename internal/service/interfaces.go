package service

import (
	"context"
	"io"
	"time"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/service/media"
)

//go:generate mockery --name IndexQueue --output ../mocks
type IndexQueue interface {
	SendIndexListing(ctx context.Context, tenantID, listingID string) error
	SendDeleteListing(ctx context.Context, tenantID, listingID string) error
}

//go:generate mockery --name ScrapeQueue --output ../mocks
type ScrapeQueue interface {
	SendScrape(ctx context.Context, job *domain.ScrapeJob) error
}

//go:generate mockery --name MailQueue --output ../mocks
type MailQueue interface {
	SendMail(ctx context.Context, tenantID string, mail *domain.Mail) error
}

//go:generate mockery --name CleanupQueue --output ../mocks
type CleanupQueue interface {
	SendPurgeSubscribers(ctx context.Context, tenantID string, before time.Time) error
}

//go:generate mockery --name EventPublisher --output ../mocks
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.Event) error
}

//go:generate mockery --name ObjectStorage --output ../mocks
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

//go:generate mockery --name ImageProcessor --output ../mocks
type ImageProcessor interface {
	Process(r io.Reader) (*media.ProcessedImage, error)
}

//go:generate mockery --name TenantCache --output ../mocks
type TenantCache interface {
	Get(ctx context.Context, key string) (*domain.Tenant, error)
	Set(ctx context.Context, key string, tenant *domain.Tenant) error
	Delete(ctx context.Context, keys ...string) error
}
