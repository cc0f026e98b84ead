package postgres

import (
	"gorm.io/gorm"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
)

type postgresRepository struct {
	tenantRepo         repository.TenantRepository
	listingRepo        repository.ListingRepository
	listingComplexRepo repository.ListingComplexRepository
	blogPostRepo       repository.ContentRepository[domain.BlogPost]
	clubStoryRepo      repository.ContentRepository[domain.ClubStory]
	testimonialRepo    repository.ContentRepository[domain.Testimonial]
	variableRepo       repository.ContentRepository[domain.Variable]
	photoRepo          repository.PhotoRepository
	subscriberRepo     repository.SubscriberRepository
}

func NewPostgresRepository(dbConnections *config.DatabaseConnections) repository.PostgresRepository {
	writer, reader := dbConnections.Writer, dbConnections.Reader
	return &postgresRepository{
		tenantRepo:         NewTenantRepository(writer, reader),
		listingRepo:        NewListingRepository(writer, reader),
		listingComplexRepo: NewListingComplexRepository(writer, reader),
		blogPostRepo:       NewBlogPostRepository(writer, reader),
		clubStoryRepo:      NewClubStoryRepository(writer, reader),
		testimonialRepo:    NewTestimonialRepository(writer, reader),
		variableRepo:       NewVariableRepository(writer, reader),
		photoRepo:          NewPhotoRepository(writer, reader),
		subscriberRepo:     NewSubscriberRepository(writer, reader),
	}
}

func (r *postgresRepository) Tenant() repository.TenantRepository {
	return r.tenantRepo
}

func (r *postgresRepository) Listing() repository.ListingRepository {
	return r.listingRepo
}

func (r *postgresRepository) ListingComplex() repository.ListingComplexRepository {
	return r.listingComplexRepo
}

func (r *postgresRepository) BlogPost() repository.ContentRepository[domain.BlogPost] {
	return r.blogPostRepo
}

func (r *postgresRepository) ClubStory() repository.ContentRepository[domain.ClubStory] {
	return r.clubStoryRepo
}

func (r *postgresRepository) Testimonial() repository.ContentRepository[domain.Testimonial] {
	return r.testimonialRepo
}

func (r *postgresRepository) Variable() repository.ContentRepository[domain.Variable] {
	return r.variableRepo
}

func (r *postgresRepository) Photo() repository.PhotoRepository {
	return r.photoRepo
}

func (r *postgresRepository) Subscriber() repository.SubscriberRepository {
	return r.subscriberRepo
}

// Migrate creates the schema. The partial index enforces a single main photo
// per parent at the database level as well.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Tenant{},
		&domain.ListingComplex{},
		&domain.Listing{},
		&domain.BlogPost{},
		&domain.ClubStory{},
		&domain.Testimonial{},
		&domain.Variable{},
		&domain.Subscriber{},
		&domain.SlugHistory{},
		&domain.Translation{},
		&domain.Photo{},
	)
	if err != nil {
		return err
	}
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_photos_parent_main ON photos (parent_type, parent_id) WHERE main`).Error
}
