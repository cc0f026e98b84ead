package composite

import (
	opensearchclient "github.com/opensearch-project/opensearch-go/v2"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/repository/opensearch"
	"github.com/kingrain94/realty-api/internal/repository/postgres"
)

type compositeRepository struct {
	postgresRepo repository.PostgresRepository
	searchRepo   repository.SearchRepository
}

func NewCompositeRepository(dbConnections *config.DatabaseConnections, osClient *opensearchclient.Client, osConfig *config.OpenSearchConfig) repository.Repository {
	return &compositeRepository{
		postgresRepo: postgres.NewPostgresRepository(dbConnections),
		searchRepo:   opensearch.NewRepository(osClient, osConfig),
	}
}

func (r *compositeRepository) Tenant() repository.TenantRepository {
	return r.postgresRepo.Tenant()
}

func (r *compositeRepository) Listing() repository.ListingRepository {
	return r.postgresRepo.Listing()
}

func (r *compositeRepository) ListingComplex() repository.ListingComplexRepository {
	return r.postgresRepo.ListingComplex()
}

func (r *compositeRepository) BlogPost() repository.ContentRepository[domain.BlogPost] {
	return r.postgresRepo.BlogPost()
}

func (r *compositeRepository) ClubStory() repository.ContentRepository[domain.ClubStory] {
	return r.postgresRepo.ClubStory()
}

func (r *compositeRepository) Testimonial() repository.ContentRepository[domain.Testimonial] {
	return r.postgresRepo.Testimonial()
}

func (r *compositeRepository) Variable() repository.ContentRepository[domain.Variable] {
	return r.postgresRepo.Variable()
}

func (r *compositeRepository) Photo() repository.PhotoRepository {
	return r.postgresRepo.Photo()
}

func (r *compositeRepository) Subscriber() repository.SubscriberRepository {
	return r.postgresRepo.Subscriber()
}

func (r *compositeRepository) Search() repository.SearchRepository {
	return r.searchRepo
}
