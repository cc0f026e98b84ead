package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/kingrain94/realty-api/internal/domain"
)

var listingKind = contentKind{
	recordType: domain.TypeListing,
	table:      "listings",
	slugColumn: "slug",
	history:    true,
	status:     true,
	photos:     true,
	orderBy:    "listings.published_at DESC NULLS LAST, listings.created_at DESC",
	filter: func(db *gorm.DB, filter domain.ContentFilter) *gorm.DB {
		if filter.ListingComplexID != "" {
			db = db.Where("listings.listing_complex_id = ?", filter.ListingComplexID)
		}
		if filter.MinPrice > 0 {
			db = db.Where("listings.price >= ?", filter.MinPrice)
		}
		if filter.MaxPrice > 0 {
			db = db.Where("listings.price <= ?", filter.MaxPrice)
		}
		if filter.Rooms > 0 {
			db = db.Where("listings.rooms = ?", filter.Rooms)
		}
		return publishedWindow(db, "listings", filter)
	},
}

func publishedWindow(db *gorm.DB, table string, filter domain.ContentFilter) *gorm.DB {
	if !filter.PublishedAfter.IsZero() {
		db = db.Where(table+".published_at >= ?", filter.PublishedAfter)
	}
	if !filter.PublishedBefore.IsZero() {
		db = db.Where(table+".published_at <= ?", filter.PublishedBefore)
	}
	return db
}

type ListingRepository struct {
	*ContentRepository[domain.Listing]
}

func NewListingRepository(writerDB, readerDB *gorm.DB) *ListingRepository {
	return &ListingRepository{
		ContentRepository: newContentRepository[domain.Listing](writerDB, readerDB, listingKind),
	}
}

func (r *ListingRepository) GetBySourceURL(ctx context.Context, scope domain.TenantScope, sourceURL string) (*domain.Listing, error) {
	db, ok := scoped(r.readerDB.WithContext(ctx), scope, "listings")
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	var listing domain.Listing
	if err := r.preload(db).Where("listings.source_url = ?", sourceURL).Take(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepository) ListByIDs(ctx context.Context, scope domain.TenantScope, ids []string) ([]domain.Listing, error) {
	if len(ids) == 0 {
		return []domain.Listing{}, nil
	}
	db, ok := scoped(r.readerDB.WithContext(ctx), scope, "listings")
	if !ok {
		return []domain.Listing{}, nil
	}

	var listings []domain.Listing
	if err := r.preload(db).Where("listings.id IN ?", ids).Find(&listings).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	ordered := make([]domain.Listing, 0, len(listings))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}
