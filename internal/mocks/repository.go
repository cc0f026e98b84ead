package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
)

// Repository is a mock type for the Repository type
type Repository struct {
	mock.Mock
}

// Tenant provides a mock function with given fields:
func (m *Repository) Tenant() repository.TenantRepository {
	args := m.Called()
	return args.Get(0).(repository.TenantRepository)
}

// Listing provides a mock function with given fields:
func (m *Repository) Listing() repository.ListingRepository {
	args := m.Called()
	return args.Get(0).(repository.ListingRepository)
}

// ListingComplex provides a mock function with given fields:
func (m *Repository) ListingComplex() repository.ListingComplexRepository {
	args := m.Called()
	return args.Get(0).(repository.ListingComplexRepository)
}

// BlogPost provides a mock function with given fields:
func (m *Repository) BlogPost() repository.ContentRepository[domain.BlogPost] {
	args := m.Called()
	return args.Get(0).(repository.ContentRepository[domain.BlogPost])
}

// ClubStory provides a mock function with given fields:
func (m *Repository) ClubStory() repository.ContentRepository[domain.ClubStory] {
	args := m.Called()
	return args.Get(0).(repository.ContentRepository[domain.ClubStory])
}

// Testimonial provides a mock function with given fields:
func (m *Repository) Testimonial() repository.ContentRepository[domain.Testimonial] {
	args := m.Called()
	return args.Get(0).(repository.ContentRepository[domain.Testimonial])
}

// Variable provides a mock function with given fields:
func (m *Repository) Variable() repository.ContentRepository[domain.Variable] {
	args := m.Called()
	return args.Get(0).(repository.ContentRepository[domain.Variable])
}

// Photo provides a mock function with given fields:
func (m *Repository) Photo() repository.PhotoRepository {
	args := m.Called()
	return args.Get(0).(repository.PhotoRepository)
}

// Subscriber provides a mock function with given fields:
func (m *Repository) Subscriber() repository.SubscriberRepository {
	args := m.Called()
	return args.Get(0).(repository.SubscriberRepository)
}

// Search provides a mock function with given fields:
func (m *Repository) Search() repository.SearchRepository {
	args := m.Called()
	return args.Get(0).(repository.SearchRepository)
}
