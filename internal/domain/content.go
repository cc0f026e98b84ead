package domain

import (
	"slices"
	"time"
)

type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
	StatusHidden    ContentStatus = "hidden"
)

var ValidStatuses = []ContentStatus{StatusDraft, StatusPublished, StatusHidden}

func IsValidStatus(status string) bool {
	return slices.Contains(ValidStatuses, ContentStatus(status))
}

type Listing struct {
	ID               string        `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID         string        `gorm:"type:uuid;not null;index;uniqueIndex:idx_listings_tenant_slug;uniqueIndex:idx_listings_tenant_source,where:source_url <> ''" json:"tenant_id"`
	ListingComplexID *string       `gorm:"type:uuid;index" json:"listing_complex_id,omitempty"`
	Slug             string        `gorm:"type:text;not null;uniqueIndex:idx_listings_tenant_slug" json:"slug"`
	Status           ContentStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	Price            int64         `gorm:"not null;default:0" json:"price"`
	Currency         string        `gorm:"type:text;not null;default:'USD'" json:"currency"`
	Rooms            int           `gorm:"not null;default:0" json:"rooms"`
	Area             float64       `gorm:"not null;default:0" json:"area"`
	SourceURL        string        `gorm:"type:text;uniqueIndex:idx_listings_tenant_source,where:source_url <> ''" json:"source_url,omitempty"`
	PublishedAt      *time.Time    `gorm:"type:timestamp with time zone" json:"published_at,omitempty"`
	CreatedAt        time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Translations     []Translation `gorm:"polymorphic:Translatable;polymorphicValue:listing" json:"translations,omitempty"`
	Photos           []Photo       `gorm:"polymorphic:Parent;polymorphicValue:listing" json:"photos,omitempty"`
	Tenant           *Tenant       `gorm:"foreignKey:TenantID" json:"-"`
}

func (Listing) TableName() string {
	return "listings"
}

type ListingComplex struct {
	ID           string        `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID     string        `gorm:"type:uuid;not null;index;uniqueIndex:idx_listing_complexes_tenant_slug" json:"tenant_id"`
	Slug         string        `gorm:"type:text;not null;uniqueIndex:idx_listing_complexes_tenant_slug" json:"slug"`
	Status       ContentStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	Order        int           `gorm:"column:order;not null;default:0" json:"order"`
	CreatedAt    time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Translations []Translation `gorm:"polymorphic:Translatable;polymorphicValue:listing_complex" json:"translations,omitempty"`
	Photos       []Photo       `gorm:"polymorphic:Parent;polymorphicValue:listing_complex" json:"photos,omitempty"`
	Tenant       *Tenant       `gorm:"foreignKey:TenantID" json:"-"`
}

func (ListingComplex) TableName() string {
	return "listing_complexes"
}

type BlogPost struct {
	ID           string        `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID     string        `gorm:"type:uuid;not null;index;uniqueIndex:idx_blog_posts_tenant_slug" json:"tenant_id"`
	Slug         string        `gorm:"type:text;not null;uniqueIndex:idx_blog_posts_tenant_slug" json:"slug"`
	Status       ContentStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	PublishedAt  *time.Time    `gorm:"type:timestamp with time zone" json:"published_at,omitempty"`
	CreatedAt    time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Translations []Translation `gorm:"polymorphic:Translatable;polymorphicValue:blog_post" json:"translations,omitempty"`
	Photos       []Photo       `gorm:"polymorphic:Parent;polymorphicValue:blog_post" json:"photos,omitempty"`
	Tenant       *Tenant       `gorm:"foreignKey:TenantID" json:"-"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

type ClubStory struct {
	ID           string        `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID     string        `gorm:"type:uuid;not null;index;uniqueIndex:idx_club_stories_tenant_slug" json:"tenant_id"`
	Slug         string        `gorm:"type:text;not null;uniqueIndex:idx_club_stories_tenant_slug" json:"slug"`
	Status       ContentStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	CreatedAt    time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Translations []Translation `gorm:"polymorphic:Translatable;polymorphicValue:club_story" json:"translations,omitempty"`
	Photos       []Photo       `gorm:"polymorphic:Parent;polymorphicValue:club_story" json:"photos,omitempty"`
	Tenant       *Tenant       `gorm:"foreignKey:TenantID" json:"-"`
}

func (ClubStory) TableName() string {
	return "club_stories"
}

type Testimonial struct {
	ID           string        `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID     string        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	AuthorName   string        `gorm:"type:text;not null" json:"author_name"`
	Rating       int           `gorm:"not null;default:5" json:"rating"`
	Status       ContentStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	CreatedAt    time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Translations []Translation `gorm:"polymorphic:Translatable;polymorphicValue:testimonial" json:"translations,omitempty"`
	Tenant       *Tenant       `gorm:"foreignKey:TenantID" json:"-"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}

// Variable is a translatable key/value used by the public site for copy.
type Variable struct {
	ID           string        `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID     string        `gorm:"type:uuid;not null;uniqueIndex:idx_variables_tenant_key" json:"tenant_id"`
	Key          string        `gorm:"type:text;not null;uniqueIndex:idx_variables_tenant_key" json:"key"`
	CreatedAt    time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Translations []Translation `gorm:"polymorphic:Translatable;polymorphicValue:variable" json:"translations,omitempty"`
	Tenant       *Tenant       `gorm:"foreignKey:TenantID" json:"-"`
}

func (Variable) TableName() string {
	return "variables"
}

type Subscriber struct {
	ID          string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID    string     `gorm:"type:uuid;not null;uniqueIndex:idx_subscribers_tenant_email" json:"tenant_id"`
	Email       string     `gorm:"type:text;not null;uniqueIndex:idx_subscribers_tenant_email" json:"email"`
	Locale      string     `gorm:"type:text;not null;default:'en'" json:"locale"`
	ConfirmedAt *time.Time `gorm:"type:timestamp with time zone" json:"confirmed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Tenant      *Tenant    `gorm:"foreignKey:TenantID" json:"-"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}

// SlugHistory keeps previous slugs resolvable after a rename.
type SlugHistory struct {
	ID            string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_slug_histories_lookup" json:"tenant_id"`
	SluggableType string    `gorm:"type:text;not null;uniqueIndex:idx_slug_histories_lookup" json:"sluggable_type"`
	Slug          string    `gorm:"type:text;not null;uniqueIndex:idx_slug_histories_lookup" json:"slug"`
	SluggableID   string    `gorm:"type:uuid;not null;index" json:"sluggable_id"`
	CreatedAt     time.Time `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (SlugHistory) TableName() string {
	return "slug_histories"
}

// ContentFilter is shared by the list endpoints of translatable content.
type ContentFilter struct {
	Status           ContentStatus `json:"status"`
	ListingComplexID string        `json:"listing_complex_id"`
	MinPrice         int64         `json:"min_price"`
	MaxPrice         int64         `json:"max_price"`
	Rooms            int           `json:"rooms"`
	Query            string        `json:"query"`
	Locale           string        `json:"locale"`
	PublishedAfter   time.Time     `json:"published_after"`
	PublishedBefore  time.Time     `json:"published_before"`
	Page             int           `json:"page"`
	PageSize         int           `json:"page_size"`
	Limit            int           `json:"limit"`
	Offset           int           `json:"offset"`
}

// Paginate normalises page and page size and fills Limit/Offset.
func (f *ContentFilter) Paginate(defaultSize, maxSize int) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultSize
	}
	if f.PageSize > maxSize {
		f.PageSize = maxSize
	}
	f.Limit = f.PageSize
	f.Offset = (f.Page - 1) * f.PageSize
}

// Record is implemented by every tenant-owned content type.
type Record interface {
	RecordType() string
	RecordID() string
	OwnerID() string
	// RecordSlug is the public identifier, or "" for types addressed by id only.
	RecordSlug() string
	RecordStatus() ContentStatus
}

func (l Listing) RecordType() string          { return TypeListing }
func (l Listing) RecordID() string            { return l.ID }
func (l Listing) OwnerID() string             { return l.TenantID }
func (l Listing) RecordSlug() string          { return l.Slug }
func (l Listing) RecordStatus() ContentStatus { return l.Status }

func (c ListingComplex) RecordType() string          { return TypeListingComplex }
func (c ListingComplex) RecordID() string            { return c.ID }
func (c ListingComplex) OwnerID() string             { return c.TenantID }
func (c ListingComplex) RecordSlug() string          { return c.Slug }
func (c ListingComplex) RecordStatus() ContentStatus { return c.Status }

func (b BlogPost) RecordType() string          { return TypeBlogPost }
func (b BlogPost) RecordID() string            { return b.ID }
func (b BlogPost) OwnerID() string             { return b.TenantID }
func (b BlogPost) RecordSlug() string          { return b.Slug }
func (b BlogPost) RecordStatus() ContentStatus { return b.Status }

func (c ClubStory) RecordType() string          { return TypeClubStory }
func (c ClubStory) RecordID() string            { return c.ID }
func (c ClubStory) OwnerID() string             { return c.TenantID }
func (c ClubStory) RecordSlug() string          { return c.Slug }
func (c ClubStory) RecordStatus() ContentStatus { return c.Status }

func (t Testimonial) RecordType() string          { return TypeTestimonial }
func (t Testimonial) RecordID() string            { return t.ID }
func (t Testimonial) OwnerID() string             { return t.TenantID }
func (t Testimonial) RecordSlug() string          { return "" }
func (t Testimonial) RecordStatus() ContentStatus { return t.Status }

func (v Variable) RecordType() string          { return TypeVariable }
func (v Variable) RecordID() string            { return v.ID }
func (v Variable) OwnerID() string             { return v.TenantID }
func (v Variable) RecordSlug() string          { return v.Key }
func (v Variable) RecordStatus() ContentStatus { return StatusPublished }
