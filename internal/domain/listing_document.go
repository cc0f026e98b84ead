package domain

import "time"

// ListingDocument is the search index representation of a listing. Localised
// fields are flattened per locale so one index serves every language.
type ListingDocument struct {
	ID               string            `json:"id"`
	TenantID         string            `json:"tenant_id"`
	ListingComplexID string            `json:"listing_complex_id,omitempty"`
	Slug             string            `json:"slug"`
	Status           ContentStatus     `json:"status"`
	Price            int64             `json:"price"`
	Currency         string            `json:"currency"`
	Rooms            int               `json:"rooms"`
	Area             float64           `json:"area"`
	Titles           map[string]string `json:"titles"`
	Descriptions     map[string]string `json:"descriptions"`
	Addresses        map[string]string `json:"addresses"`
	Text             string            `json:"text"`
	PublishedAt      *time.Time        `json:"published_at,omitempty"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func NewListingDocument(l *Listing) *ListingDocument {
	doc := &ListingDocument{
		ID:           l.ID,
		TenantID:     l.TenantID,
		Slug:         l.Slug,
		Status:       l.Status,
		Price:        l.Price,
		Currency:     l.Currency,
		Rooms:        l.Rooms,
		Area:         l.Area,
		Titles:       make(map[string]string),
		Descriptions: make(map[string]string),
		Addresses:    make(map[string]string),
		PublishedAt:  l.PublishedAt,
		UpdatedAt:    l.UpdatedAt,
	}
	if l.ListingComplexID != nil {
		doc.ListingComplexID = *l.ListingComplexID
	}

	var text []byte
	for _, t := range l.Translations {
		doc.Titles[t.Locale] = t.Get("title")
		doc.Descriptions[t.Locale] = t.Get("description")
		doc.Addresses[t.Locale] = t.Get("address")
		for _, field := range []string{"title", "description", "address"} {
			if v := t.Get(field); v != "" {
				text = append(text, v...)
				text = append(text, ' ')
			}
		}
	}
	doc.Text = string(text)
	return doc
}
