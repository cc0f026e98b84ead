package dto

import (
	"github.com/kingrain94/realty-api/internal/domain"
)

// Localization selects the translation a response is rendered in.
type Localization struct {
	Locale   string
	Fallback string
	// Admin responses also carry every translation for editing.
	Admin bool
}

func (l Localization) pick(ts []domain.Translation) (domain.Translation, string) {
	t, ok := domain.Translations(ts).For(l.Locale, l.Fallback)
	if !ok {
		return domain.Translation{}, l.Locale
	}
	return t, t.Locale
}

func (l Localization) all(ts []domain.Translation) Translations {
	if !l.Admin {
		return nil
	}
	out := make(Translations, len(ts))
	for _, t := range ts {
		fields := make(map[string]string, len(t.Fields))
		for k := range t.Fields {
			fields[k] = t.Get(k)
		}
		out[t.Locale] = fields
	}
	return out
}

// ToInput converts request translations into the domain write model.
func (t Translations) ToInput() domain.TranslationInput {
	return domain.TranslationInput(t)
}

func FromTenant(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		ID:               t.ID,
		Slug:             t.Slug,
		Name:             t.Name,
		Domain:           t.Domain,
		ScraperSourceURL: t.ScraperSourceURL,
		DefaultLocale:    t.DefaultLocale,
		Locales:          []string(t.Locales),
		Features:         featureMap(t),
		Metadata:         []byte(t.Metadata),
		RateLimit:        t.RateLimit,
		Active:           t.Active,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func FromTenants(tenants []domain.Tenant) []TenantResponse {
	responses := make([]TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = FromTenant(&tenants[i])
	}
	return responses
}

func FromTenantWithKey(t *domain.Tenant) TenantWithKeyResponse {
	return TenantWithKeyResponse{TenantResponse: FromTenant(t), APIKey: t.APIKey}
}

func FromPublicTenant(t *domain.Tenant) PublicTenantResponse {
	return PublicTenantResponse{
		Slug:          t.Slug,
		Name:          t.Name,
		DefaultLocale: t.DefaultLocale,
		Locales:       []string(t.Locales),
		Features:      featureMap(t),
	}
}

func featureMap(t *domain.Tenant) map[string]bool {
	features := make(map[string]bool, len(domain.AllFeatures))
	for _, f := range domain.AllFeatures {
		features[string(f)] = t.FeatureEnabled(f)
	}
	return features
}

func FromPhoto(p *domain.Photo) PhotoResponse {
	return PhotoResponse{
		ID:     p.ID,
		URL:    p.URL,
		Width:  p.Width,
		Height: p.Height,
		Main:   p.Main,
		Order:  p.Order,
	}
}

func FromPhotos(photos []domain.Photo) []PhotoResponse {
	sorted := append([]domain.Photo(nil), photos...)
	domain.SortPhotos(sorted)
	responses := make([]PhotoResponse, len(sorted))
	for i := range sorted {
		responses[i] = FromPhoto(&sorted[i])
	}
	return responses
}

func mainPhoto(photos []domain.Photo) *PhotoResponse {
	p, ok := domain.MainPhoto(photos)
	if !ok {
		return nil
	}
	resp := FromPhoto(&p)
	return &resp
}

func FromListing(l *domain.Listing, loc Localization) ListingResponse {
	t, locale := loc.pick(l.Translations)
	resp := ListingResponse{
		ID:               l.ID,
		Slug:             l.Slug,
		Status:           string(l.Status),
		ListingComplexID: l.ListingComplexID,
		Price:            l.Price,
		Currency:         l.Currency,
		Rooms:            l.Rooms,
		Area:             l.Area,
		Locale:           locale,
		Title:            t.Get("title"),
		Description:      t.Get("description"),
		Address:          t.Get("address"),
		MainPhoto:        mainPhoto(l.Photos),
		Photos:           FromPhotos(l.Photos),
		Translations:     loc.all(l.Translations),
		PublishedAt:      l.PublishedAt,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
	if loc.Admin {
		resp.SourceURL = l.SourceURL
	}
	return resp
}

func FromListingComplex(c *domain.ListingComplex, loc Localization) ListingComplexResponse {
	t, locale := loc.pick(c.Translations)
	return ListingComplexResponse{
		ID:           c.ID,
		Slug:         c.Slug,
		Status:       string(c.Status),
		Order:        c.Order,
		Locale:       locale,
		Name:         t.Get("name"),
		Description:  t.Get("description"),
		Address:      t.Get("address"),
		MainPhoto:    mainPhoto(c.Photos),
		Photos:       FromPhotos(c.Photos),
		Translations: loc.all(c.Translations),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func FromBlogPost(b *domain.BlogPost, loc Localization) BlogPostResponse {
	t, locale := loc.pick(b.Translations)
	return BlogPostResponse{
		ID:           b.ID,
		Slug:         b.Slug,
		Status:       string(b.Status),
		Locale:       locale,
		Title:        t.Get("title"),
		Excerpt:      t.Get("excerpt"),
		Body:         t.Get("body"),
		MainPhoto:    mainPhoto(b.Photos),
		Photos:       FromPhotos(b.Photos),
		Translations: loc.all(b.Translations),
		PublishedAt:  b.PublishedAt,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func FromClubStory(s *domain.ClubStory, loc Localization) ClubStoryResponse {
	t, locale := loc.pick(s.Translations)
	return ClubStoryResponse{
		ID:           s.ID,
		Slug:         s.Slug,
		Status:       string(s.Status),
		Locale:       locale,
		Title:        t.Get("title"),
		Body:         t.Get("body"),
		MainPhoto:    mainPhoto(s.Photos),
		Photos:       FromPhotos(s.Photos),
		Translations: loc.all(s.Translations),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func FromTestimonial(t *domain.Testimonial, loc Localization) TestimonialResponse {
	tr, locale := loc.pick(t.Translations)
	return TestimonialResponse{
		ID:           t.ID,
		AuthorName:   t.AuthorName,
		Rating:       t.Rating,
		Status:       string(t.Status),
		Locale:       locale,
		Text:         tr.Get("text"),
		Translations: loc.all(t.Translations),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func FromVariable(v *domain.Variable, loc Localization) VariableResponse {
	t, locale := loc.pick(v.Translations)
	return VariableResponse{
		ID:           v.ID,
		Key:          v.Key,
		Locale:       locale,
		Value:        t.Get("value"),
		Translations: loc.all(v.Translations),
		UpdatedAt:    v.UpdatedAt,
	}
}

func FromSubscriber(s *domain.Subscriber) SubscriberResponse {
	return SubscriberResponse{
		ID:          s.ID,
		Email:       s.Email,
		Locale:      s.Locale,
		Confirmed:   s.ConfirmedAt != nil,
		ConfirmedAt: s.ConfirmedAt,
		CreatedAt:   s.CreatedAt,
	}
}

// MapList renders a slice with fn, keeping the input order.
func MapList[S any, D any](items []S, fn func(*S) D) []D {
	out := make([]D, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}
