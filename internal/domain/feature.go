package domain

import "fmt"

// Feature names a tenant-level switch.
type Feature string

const (
	FeatureBlog             Feature = "blog"
	FeatureClubStories      Feature = "club_stories"
	FeatureTestimonials     Feature = "testimonials"
	FeatureNewsletter       Feature = "newsletter"
	FeatureListingComplexes Feature = "listing_complexes"
	FeatureScraping         Feature = "scraping"
	FeaturePreview          Feature = "preview"
)

// AllFeatures lists every known feature in a stable order.
var AllFeatures = []Feature{
	FeatureBlog,
	FeatureClubStories,
	FeatureTestimonials,
	FeatureNewsletter,
	FeatureListingComplexes,
	FeatureScraping,
	FeaturePreview,
}

// FeatureFlags is stored as JSONB on the tenant row.
type FeatureFlags struct {
	Blog             bool `json:"blog"`
	ClubStories      bool `json:"club_stories"`
	Testimonials     bool `json:"testimonials"`
	Newsletter       bool `json:"newsletter"`
	ListingComplexes bool `json:"listing_complexes"`
	Scraping         bool `json:"scraping"`
	Preview          bool `json:"preview"`
}

func (f FeatureFlags) Enabled(feature Feature) (bool, error) {
	switch feature {
	case FeatureBlog:
		return f.Blog, nil
	case FeatureClubStories:
		return f.ClubStories, nil
	case FeatureTestimonials:
		return f.Testimonials, nil
	case FeatureNewsletter:
		return f.Newsletter, nil
	case FeatureListingComplexes:
		return f.ListingComplexes, nil
	case FeatureScraping:
		return f.Scraping, nil
	case FeaturePreview:
		return f.Preview, nil
	default:
		return false, fmt.Errorf("unknown feature %q", feature)
	}
}

// Set switches a feature on or off.
func (f *FeatureFlags) Set(feature Feature, on bool) error {
	switch feature {
	case FeatureBlog:
		f.Blog = on
	case FeatureClubStories:
		f.ClubStories = on
	case FeatureTestimonials:
		f.Testimonials = on
	case FeatureNewsletter:
		f.Newsletter = on
	case FeatureListingComplexes:
		f.ListingComplexes = on
	case FeatureScraping:
		f.Scraping = on
	case FeaturePreview:
		f.Preview = on
	default:
		return fmt.Errorf("unknown feature %q", feature)
	}
	return nil
}

// ParseFeature validates a raw feature name.
func ParseFeature(name string) (Feature, error) {
	for _, f := range AllFeatures {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown feature %q", name)
}
