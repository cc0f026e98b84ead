package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kingrain94/realty-api/internal/domain"
)

var (
	// ErrNotFound and ErrDuplicate are the storage errors callers match on.
	ErrNotFound  = gorm.ErrRecordNotFound
	ErrDuplicate = gorm.ErrDuplicatedKey

	// ErrTenantRequired is returned by writes issued without a bound tenant scope.
	ErrTenantRequired = errors.New("tenant scope required")
	// ErrParentNotFound is returned when a photo parent does not exist in the scope.
	ErrParentNotFound = errors.New("photo parent not found")
	// ErrScopeMismatch is returned when a record is written under another tenant's scope.
	ErrScopeMismatch = errors.New("record belongs to another tenant")
)

// ContentRepository is shared by the translatable content tables. Every method
// takes the scope explicitly; an unbound scope reads nothing and writes nothing.
//
//go:generate mockery --name ContentRepository --output ../mocks
type ContentRepository[T any] interface {
	List(ctx context.Context, scope domain.TenantScope, filter domain.ContentFilter) ([]T, int64, error)
	GetByID(ctx context.Context, scope domain.TenantScope, id string) (*T, error)
	// GetBySlug also resolves slugs recorded in the slug history.
	GetBySlug(ctx context.Context, scope domain.TenantScope, slug string) (*T, error)
	SlugExists(ctx context.Context, scope domain.TenantScope, slug, excludeID string) (bool, error)
	Create(ctx context.Context, scope domain.TenantScope, record *T, translations []domain.Translation) error
	Update(ctx context.Context, scope domain.TenantScope, record *T, translations []domain.Translation) error
	Delete(ctx context.Context, scope domain.TenantScope, id string) error
}

//go:generate mockery --name ListingRepository --output ../mocks
type ListingRepository interface {
	ContentRepository[domain.Listing]
	GetBySourceURL(ctx context.Context, scope domain.TenantScope, sourceURL string) (*domain.Listing, error)
	// ListByIDs returns listings in the order of ids, skipping ids outside the scope.
	ListByIDs(ctx context.Context, scope domain.TenantScope, ids []string) ([]domain.Listing, error)
}

//go:generate mockery --name ListingComplexRepository --output ../mocks
type ListingComplexRepository interface {
	ContentRepository[domain.ListingComplex]
	// Reorder moves a complex to position within its tenant, clamped to [1, N].
	Reorder(ctx context.Context, scope domain.TenantScope, id string, position int) error
}

//go:generate mockery --name PhotoRepository --output ../mocks
type PhotoRepository interface {
	ListByParent(ctx context.Context, scope domain.TenantScope, parent domain.PhotoParent) ([]domain.Photo, error)
	GetByID(ctx context.Context, scope domain.TenantScope, id string) (*domain.Photo, error)
	// Add inserts photo at position (0 or beyond the end appends).
	Add(ctx context.Context, scope domain.TenantScope, photo *domain.Photo, position int) error
	SetMain(ctx context.Context, scope domain.TenantScope, parent domain.PhotoParent, photoID string) error
	Reorder(ctx context.Context, scope domain.TenantScope, parent domain.PhotoParent, photoID string, position int) error
	// Delete removes the photo, closes the gap and promotes a new main photo when needed.
	Delete(ctx context.Context, scope domain.TenantScope, parent domain.PhotoParent, photoID string) (*domain.Photo, error)
}

//go:generate mockery --name SubscriberRepository --output ../mocks
type SubscriberRepository interface {
	Create(ctx context.Context, scope domain.TenantScope, subscriber *domain.Subscriber) error
	GetByID(ctx context.Context, scope domain.TenantScope, id string) (*domain.Subscriber, error)
	List(ctx context.Context, scope domain.TenantScope, filter domain.ContentFilter) ([]domain.Subscriber, int64, error)
	Update(ctx context.Context, scope domain.TenantScope, subscriber *domain.Subscriber) error
	Delete(ctx context.Context, scope domain.TenantScope, id string) error
	// DeleteUnconfirmedBefore removes subscribers that never confirmed and were created before the cutoff.
	DeleteUnconfirmedBefore(ctx context.Context, scope domain.TenantScope, before time.Time) (int64, error)
}

//go:generate mockery --name TenantRepository --output ../mocks
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Tenant, error)
	GetByDomain(ctx context.Context, domainName string) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.TenantFilter) ([]domain.Tenant, error)
	// CountDependents counts rows in tenant-owned tables.
	CountDependents(ctx context.Context, id string) (int64, error)
}

//go:generate mockery --name SearchRepository --output ../mocks
type SearchRepository interface {
	IndexListing(ctx context.Context, doc *domain.ListingDocument) error
	BulkIndexListings(ctx context.Context, docs []domain.ListingDocument) error
	// SearchListings returns matching listing ids ordered by relevance and the total hit count.
	SearchListings(ctx context.Context, scope domain.TenantScope, filter domain.ContentFilter) ([]string, int64, error)
	DeleteListing(ctx context.Context, tenantID, listingID string) error
	CreateIndex(ctx context.Context, tenantID string) error
	DeleteIndex(ctx context.Context, tenantID string) error
}

//go:generate mockery --name PostgresRepository --output ../mocks
type PostgresRepository interface {
	Tenant() TenantRepository
	Listing() ListingRepository
	ListingComplex() ListingComplexRepository
	BlogPost() ContentRepository[domain.BlogPost]
	ClubStory() ContentRepository[domain.ClubStory]
	Testimonial() ContentRepository[domain.Testimonial]
	Variable() ContentRepository[domain.Variable]
	Photo() PhotoRepository
	Subscriber() SubscriberRepository
}

//go:generate mockery --name Repository --output ../mocks
type Repository interface {
	PostgresRepository
	Search() SearchRepository
}
