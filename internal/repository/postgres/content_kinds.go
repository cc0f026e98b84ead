package postgres

import (
	"gorm.io/gorm"

	"github.com/kingrain94/realty-api/internal/domain"
)

var blogPostKind = contentKind{
	recordType: domain.TypeBlogPost,
	table:      "blog_posts",
	slugColumn: "slug",
	history:    true,
	status:     true,
	photos:     true,
	orderBy:    "blog_posts.published_at DESC NULLS LAST, blog_posts.created_at DESC",
	filter: func(db *gorm.DB, filter domain.ContentFilter) *gorm.DB {
		return publishedWindow(db, "blog_posts", filter)
	},
}

var clubStoryKind = contentKind{
	recordType: domain.TypeClubStory,
	table:      "club_stories",
	slugColumn: "slug",
	history:    true,
	status:     true,
	photos:     true,
	orderBy:    "club_stories.created_at DESC",
}

var testimonialKind = contentKind{
	recordType: domain.TypeTestimonial,
	table:      "testimonials",
	status:     true,
	orderBy:    "testimonials.created_at DESC",
}

// Variables are addressed by key; renaming a key does not keep the old one alive.
var variableKind = contentKind{
	recordType: domain.TypeVariable,
	table:      "variables",
	slugColumn: "key",
	orderBy:    "variables.key ASC",
}

func NewBlogPostRepository(writerDB, readerDB *gorm.DB) *ContentRepository[domain.BlogPost] {
	return newContentRepository[domain.BlogPost](writerDB, readerDB, blogPostKind)
}

func NewClubStoryRepository(writerDB, readerDB *gorm.DB) *ContentRepository[domain.ClubStory] {
	return newContentRepository[domain.ClubStory](writerDB, readerDB, clubStoryKind)
}

func NewTestimonialRepository(writerDB, readerDB *gorm.DB) *ContentRepository[domain.Testimonial] {
	return newContentRepository[domain.Testimonial](writerDB, readerDB, testimonialKind)
}

func NewVariableRepository(writerDB, readerDB *gorm.DB) *ContentRepository[domain.Variable] {
	return newContentRepository[domain.Variable](writerDB, readerDB, variableKind)
}
