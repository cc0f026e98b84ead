package domain

import (
	"fmt"
	"slices"
	"time"
)

// Photo parent types. Each maps to the table that owns the photos.
var photoParentTables = map[string]string{
	TypeListing:        "listings",
	TypeListingComplex: "listing_complexes",
	TypeBlogPost:       "blog_posts",
	TypeClubStory:      "club_stories",
}

// PhotoParent identifies the record a photo hangs off.
type PhotoParent struct {
	Type string
	ID   string
}

func (p PhotoParent) Validate() error {
	if _, ok := photoParentTables[p.Type]; !ok {
		return fmt.Errorf("unknown photo parent type %q", p.Type)
	}
	if p.ID == "" {
		return fmt.Errorf("photo parent id is required")
	}
	return nil
}

// Table returns the parent table name. Validate must have passed.
func (p PhotoParent) Table() string {
	return photoParentTables[p.Type]
}

func (p PhotoParent) String() string {
	return p.Type + ":" + p.ID
}

// IsPhotoParentType reports whether photos may be attached to the given type.
func IsPhotoParentType(t string) bool {
	_, ok := photoParentTables[t]
	return ok
}

type Photo struct {
	ID         string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID   string    `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ParentType string    `gorm:"type:text;not null;index:idx_photos_parent" json:"parent_type"`
	ParentID   string    `gorm:"type:uuid;not null;index:idx_photos_parent" json:"parent_id"`
	ImageKey   string    `gorm:"type:text;not null" json:"image_key"`
	URL        string    `gorm:"type:text;not null" json:"url"`
	Width      int       `gorm:"not null;default:0" json:"width"`
	Height     int       `gorm:"not null;default:0" json:"height"`
	Main       bool      `gorm:"not null;default:false" json:"main"`
	Order      int       `gorm:"column:order;not null;default:0" json:"order"`
	CreatedAt  time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Photo) TableName() string {
	return "photos"
}

func (p Photo) Parent() PhotoParent {
	return PhotoParent{Type: p.ParentType, ID: p.ParentID}
}

// MainPhoto returns the main photo of a set, or the first by order when none is flagged.
func MainPhoto(photos []Photo) (Photo, bool) {
	if len(photos) == 0 {
		return Photo{}, false
	}
	for _, p := range photos {
		if p.Main {
			return p, true
		}
	}
	sorted := slices.Clone(photos)
	SortPhotos(sorted)
	return sorted[0], true
}

// SortPhotos orders photos by position, then creation time.
func SortPhotos(photos []Photo) {
	slices.SortStableFunc(photos, func(a, b Photo) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

// PhotoIDs returns ids in slice order.
func PhotoIDs(photos []Photo) []string {
	ids := make([]string, len(photos))
	for i, p := range photos {
		ids[i] = p.ID
	}
	return ids
}
