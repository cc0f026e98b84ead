package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/mocks"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/service/scraper"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

type ListingServiceTestSuite struct {
	suite.Suite
	mockRepo    *mocks.Repository
	mockListing *mocks.ListingRepository
	mockComplex *mocks.ListingComplexRepository
	mockPhoto   *mocks.PhotoRepository
	mockSearch  *mocks.SearchRepository
	mockQueue   *mocks.IndexQueue
	mockStorage *mocks.ObjectStorage
	tenant      *domain.Tenant
	ctx         context.Context
	service     *ListingService
}

func (s *ListingServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockListing = new(mocks.ListingRepository)
	s.mockComplex = new(mocks.ListingComplexRepository)
	s.mockPhoto = new(mocks.PhotoRepository)
	s.mockSearch = new(mocks.SearchRepository)
	s.mockQueue = new(mocks.IndexQueue)
	s.mockStorage = new(mocks.ObjectStorage)

	s.mockRepo.On("Listing").Return(s.mockListing)
	s.mockRepo.On("ListingComplex").Return(s.mockComplex)
	s.mockRepo.On("Photo").Return(s.mockPhoto)
	s.mockRepo.On("Search").Return(s.mockSearch)

	s.tenant = &domain.Tenant{ID: "acme", DefaultLocale: "en", Active: true}
	s.ctx = utils.WithTenant(context.Background(), s.tenant)
	s.service = NewListingService(s.mockRepo, s.mockQueue, s.mockStorage, logger.NewNop())
}

func TestListingService(t *testing.T) {
	suite.Run(t, new(ListingServiceTestSuite))
}

func listingRequest(title string) dto.ListingRequest {
	return dto.ListingRequest{
		Status:       "published",
		Price:        125000,
		Rooms:        3,
		Translations: dto.Translations{"en": {"title": title}},
	}
}

func (s *ListingServiceTestSuite) TestCreate_GeneratesUniqueSlug() {
	scope := domain.ScopeTo("acme")
	s.mockListing.On("SlugExists", s.ctx, scope, "sea-view", "").Return(true, nil)
	s.mockListing.On("SlugExists", s.ctx, scope, "sea-view-2", "").Return(false, nil)
	s.mockListing.On("Create", s.ctx, scope, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.Slug == "sea-view-2" &&
			l.TenantID == "acme" &&
			l.Currency == defaultCurrency &&
			l.PublishedAt != nil
	}), mock.AnythingOfType("[]domain.Translation")).Return(nil)
	s.mockQueue.On("SendIndexListing", s.ctx, "acme", mock.AnythingOfType("string")).Return(nil)
	s.mockListing.On("GetByID", s.ctx, scope, mock.AnythingOfType("string")).
		Return(&domain.Listing{ID: "l1", Slug: "sea-view-2"}, nil)

	listing, err := s.service.Create(s.ctx, listingRequest("Sea view"))

	s.NoError(err)
	s.Equal("sea-view-2", listing.Slug)
	s.mockQueue.AssertExpectations(s.T())
}

func (s *ListingServiceTestSuite) TestCreate_ExplicitSlugTaken() {
	s.mockListing.On("SlugExists", s.ctx, domain.ScopeTo("acme"), "taken", "").Return(true, nil)
	req := listingRequest("Sea view")
	req.Slug = "taken"

	_, err := s.service.Create(s.ctx, req)

	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "slug")
}

func (s *ListingServiceTestSuite) TestCreate_RequiresTenant() {
	_, err := s.service.Create(context.Background(), listingRequest("Sea view"))

	s.ErrorIs(err, repository.ErrTenantRequired)
}

func (s *ListingServiceTestSuite) TestCreate_RejectsDisabledLocale() {
	req := listingRequest("Sea view")
	req.Translations["de"] = map[string]string{"title": "Meerblick"}

	_, err := s.service.Create(s.ctx, req)

	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "translations.de")
}

func (s *ListingServiceTestSuite) TestCreate_UnknownComplex() {
	complexID := "3f7a4a4e-9d1c-4f0c-8d7e-9a0d1c2b3e4f"
	s.mockComplex.On("GetByID", s.ctx, domain.ScopeTo("acme"), complexID).Return(nil, repository.ErrNotFound)
	req := listingRequest("Sea view")
	req.ListingComplexID = &complexID

	_, err := s.service.Create(s.ctx, req)

	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "listing_complex_id")
}

func (s *ListingServiceTestSuite) TestList_UsesContextScope() {
	other := utils.WithTenant(context.Background(), &domain.Tenant{ID: "other"})
	s.mockListing.On("List", other, domain.ScopeTo("other"), mock.Anything).Return([]domain.Listing{}, int64(0), nil)

	page, err := s.service.List(other, domain.ContentFilter{})

	s.NoError(err)
	s.Empty(page.Items)
	s.mockListing.AssertNotCalled(s.T(), "List", mock.Anything, domain.ScopeTo("acme"), mock.Anything)
}

func (s *ListingServiceTestSuite) TestGetPublished_HidesDrafts() {
	s.mockListing.On("GetBySlug", s.ctx, domain.ScopeTo("acme"), "draft").
		Return(&domain.Listing{ID: "l1", Status: domain.StatusDraft}, nil)

	_, err := s.service.GetPublished(s.ctx, "draft")

	s.ErrorIs(err, ErrNotFound)
}

func (s *ListingServiceTestSuite) TestSearch_UsesIndexForQueries() {
	scope := domain.ScopeTo("acme")
	s.mockSearch.On("SearchListings", s.ctx, scope, mock.MatchedBy(func(f domain.ContentFilter) bool {
		return f.Query == "sea" && f.Status == domain.StatusPublished && f.PageSize == DefaultPageSize
	})).Return([]string{"l2", "l1"}, int64(2), nil)
	s.mockListing.On("ListByIDs", s.ctx, scope, []string{"l2", "l1"}).
		Return([]domain.Listing{{ID: "l2"}, {ID: "l1"}}, nil)

	page, err := s.service.Search(s.ctx, domain.ContentFilter{Query: "sea"})

	s.NoError(err)
	s.Equal(int64(2), page.Total)
	s.Equal("l2", page.Items[0].ID)
}

func (s *ListingServiceTestSuite) TestSearch_FallsBackToDatabase() {
	scope := domain.ScopeTo("acme")
	s.mockSearch.On("SearchListings", s.ctx, scope, mock.Anything).Return(nil, int64(0), errors.New("cluster down"))
	s.mockListing.On("List", s.ctx, scope, mock.MatchedBy(func(f domain.ContentFilter) bool {
		return f.Query == "sea" && f.Status == domain.StatusPublished
	})).Return([]domain.Listing{{ID: "l1"}}, int64(1), nil)

	page, err := s.service.Search(s.ctx, domain.ContentFilter{Query: "sea"})

	s.NoError(err)
	s.Len(page.Items, 1)
}

func (s *ListingServiceTestSuite) TestDelete_RemovesPhotosAndIndex() {
	scope := domain.ScopeTo("acme")
	s.mockListing.On("GetByID", s.ctx, scope, "l1").Return(&domain.Listing{ID: "l1"}, nil)
	s.mockPhoto.On("ListByParent", s.ctx, scope, domain.PhotoParent{Type: domain.TypeListing, ID: "l1"}).
		Return([]domain.Photo{{ID: "p1", ImageKey: "tenants/acme/listing/l1/p1.webp"}}, nil)
	s.mockListing.On("Delete", s.ctx, scope, "l1").Return(nil)
	s.mockStorage.On("Delete", s.ctx, "tenants/acme/listing/l1/p1.webp").Return(nil)
	s.mockQueue.On("SendDeleteListing", s.ctx, "acme", "l1").Return(nil)

	err := s.service.Delete(s.ctx, "l1")

	s.NoError(err)
	s.mockStorage.AssertExpectations(s.T())
	s.mockQueue.AssertExpectations(s.T())
}

func (s *ListingServiceTestSuite) TestReindex_WalksAllPages() {
	scope := domain.ScopeTo("acme")
	first := make([]domain.Listing, MaxPageSize)
	for i := range first {
		first[i] = domain.Listing{ID: "a"}
	}
	s.mockListing.On("List", s.ctx, scope, mock.MatchedBy(func(f domain.ContentFilter) bool { return f.Page == 1 })).
		Return(first, int64(MaxPageSize+1), nil)
	s.mockListing.On("List", s.ctx, scope, mock.MatchedBy(func(f domain.ContentFilter) bool { return f.Page == 2 })).
		Return([]domain.Listing{{ID: "b"}}, int64(MaxPageSize+1), nil)
	s.mockQueue.On("SendIndexListing", s.ctx, "acme", mock.Anything).Return(nil)

	queued, err := s.service.Reindex(s.ctx)

	s.NoError(err)
	s.Equal(MaxPageSize+1, queued)
}

func (s *ListingServiceTestSuite) TestUpsertFromSource_CreatesDraft() {
	scope := domain.ScopeTo("acme")
	page := &scraper.Page{URL: "https://src.example.com/1", Title: "Loft", Price: 90000, Currency: "EUR"}
	s.mockListing.On("GetBySourceURL", s.ctx, scope, page.URL).Return(nil, repository.ErrNotFound)
	s.mockListing.On("SlugExists", s.ctx, scope, "loft", "").Return(false, nil)
	s.mockListing.On("Create", s.ctx, scope, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.Status == domain.StatusDraft && l.SourceURL == page.URL && l.Price == 90000 && l.Currency == "EUR"
	}), mock.Anything).Return(nil)
	s.mockQueue.On("SendIndexListing", s.ctx, "acme", mock.Anything).Return(nil)

	listing, created, err := s.service.UpsertFromSource(s.ctx, page)

	s.NoError(err)
	s.True(created)
	s.Equal("loft", listing.Slug)
}

func (s *ListingServiceTestSuite) TestUpsertFromSource_KeepsExistingStatus() {
	scope := domain.ScopeTo("acme")
	existing := &domain.Listing{ID: "l1", TenantID: "acme", Slug: "loft", Status: domain.StatusPublished, SourceURL: "https://src.example.com/1"}
	page := &scraper.Page{URL: existing.SourceURL, Title: "Loft renovated"}
	s.mockListing.On("GetBySourceURL", s.ctx, scope, page.URL).Return(existing, nil)
	s.mockListing.On("Update", s.ctx, scope, existing, mock.Anything).Return(nil)
	s.mockQueue.On("SendIndexListing", s.ctx, "acme", "l1").Return(nil)

	listing, created, err := s.service.UpsertFromSource(s.ctx, page)

	s.NoError(err)
	s.False(created)
	s.Equal(domain.StatusPublished, listing.Status)
	s.Equal("loft", listing.Slug)
}
