package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/service"
	"github.com/kingrain94/realty-api/internal/utils"
)

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) GetPublished(ctx context.Context, slug string) (*domain.Listing, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) List(ctx context.Context, filter domain.ContentFilter) (*service.Page[domain.Listing], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[domain.Listing]), args.Error(1)
}

func (m *MockListingService) ListPublished(ctx context.Context, filter domain.ContentFilter) (*service.Page[domain.Listing], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[domain.Listing]), args.Error(1)
}

func (m *MockListingService) Search(ctx context.Context, filter domain.ContentFilter) (*service.Page[domain.Listing], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[domain.Listing]), args.Error(1)
}

func (m *MockListingService) Create(ctx context.Context, req dto.ListingRequest) (*domain.Listing, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, id string, req dto.ListingRequest) (*domain.Listing, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingService) Reindex(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type ListingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockListingService
	handler     *ListingHandler
	tenant      *domain.Tenant
}

func (s *ListingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
	s.mockService = new(MockListingService)
	s.handler = NewListingHandler(s.mockService)
	s.tenant = &domain.Tenant{ID: "acme", DefaultLocale: "en", Locales: datatypes.JSONSlice[string]{"en", "uk"}}

	s.router = gin.New()
	bound := s.router.Group("", func(c *gin.Context) {
		ctx := utils.WithTenant(c.Request.Context(), s.tenant)
		if locale := c.Query("locale"); locale != "" {
			ctx = utils.WithLocale(ctx, locale)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	bound.GET("/listings", s.handler.ListListings)
	bound.GET("/listings/:slug", s.handler.GetListing)
	bound.GET("/admin/listings/:id", s.handler.AdminGetListing)
	bound.POST("/admin/listings", s.handler.CreateListing)
	bound.DELETE("/admin/listings/:id", s.handler.DeleteListing)
	bound.POST("/admin/listings/reindex", s.handler.ReindexListings)
	s.router.POST("/unbound/listings", s.handler.CreateListing)
}

func TestListingHandler(t *testing.T) {
	suite.Run(t, new(ListingHandlerTestSuite))
}

func (s *ListingHandlerTestSuite) serve(method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func seaView() *domain.Listing {
	return &domain.Listing{
		ID:        "l1",
		Slug:      "sea-view",
		Status:    domain.StatusPublished,
		Price:     125000,
		SourceURL: "https://source.example.com/1",
		Translations: []domain.Translation{
			{Locale: "en", Fields: datatypes.JSONMap{"title": "Sea view"}},
			{Locale: "uk", Fields: datatypes.JSONMap{"title": "Вид на море"}},
		},
	}
}

func (s *ListingHandlerTestSuite) TestListListings_SearchesWithFilter() {
	// Arrange
	page := &service.Page[domain.Listing]{Items: []domain.Listing{*seaView()}, Total: 1, Page: 1, PerPage: 20}
	s.mockService.On("Search", mock.Anything, mock.MatchedBy(func(f domain.ContentFilter) bool {
		return f.Query == "sea" && f.MinPrice == 100000 && f.Rooms == 2
	})).Return(page, nil)

	// Act
	w := s.serve(http.MethodGet, "/listings?q=sea&min_price=100000&rooms=2&locale=uk", nil)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response dto.ListResponse[dto.ListingResponse]
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Require().Len(response.Data, 1)
	s.Equal("uk", response.Data[0].Locale)
	s.Equal("Вид на море", response.Data[0].Title)
	s.Empty(response.Data[0].SourceURL)
	s.Nil(response.Data[0].Translations)
	s.Equal(int64(1), response.Meta.Total)
}

func (s *ListingHandlerTestSuite) TestListListings_UnsupportedLocaleFallsBack() {
	page := &service.Page[domain.Listing]{Items: []domain.Listing{*seaView()}, Total: 1, Page: 1, PerPage: 20}
	s.mockService.On("Search", mock.Anything, mock.Anything).Return(page, nil)

	w := s.serve(http.MethodGet, "/listings?locale=de", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"title":"Sea view"`)
}

func (s *ListingHandlerTestSuite) TestListListings_BadQuery() {
	w := s.serve(http.MethodGet, "/listings?listing_complex_id=not-a-uuid", nil)

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Search", mock.Anything, mock.Anything)
}

func (s *ListingHandlerTestSuite) TestGetListing_NotFound() {
	s.mockService.On("GetPublished", mock.Anything, "draft-only").Return(nil, service.ErrNotFound)

	w := s.serve(http.MethodGet, "/listings/draft-only", nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ListingHandlerTestSuite) TestAdminGetListing_CarriesTranslations() {
	s.mockService.On("Get", mock.Anything, "l1").Return(seaView(), nil)

	w := s.serve(http.MethodGet, "/admin/listings/l1", nil)

	s.Equal(http.StatusOK, w.Code)
	var response dto.ListingResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Len(response.Translations, 2)
	s.Equal("https://source.example.com/1", response.SourceURL)
}

func (s *ListingHandlerTestSuite) TestCreateListing_Success() {
	s.mockService.On("Create", mock.Anything, mock.MatchedBy(func(req dto.ListingRequest) bool {
		return req.Price == 125000 && req.Translations["en"]["title"] == "Sea view"
	})).Return(seaView(), nil)

	w := s.serve(http.MethodPost, "/admin/listings", map[string]any{
		"status":       "published",
		"price":        125000,
		"translations": map[string]map[string]string{"en": {"title": "Sea view"}},
	})

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), `"slug":"sea-view"`)
}

func (s *ListingHandlerTestSuite) TestCreateListing_InvalidStatus() {
	w := s.serve(http.MethodPost, "/admin/listings", map[string]any{"status": "archived"})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Contains(w.Body.String(), `"status"`)
}

func (s *ListingHandlerTestSuite) TestCreateListing_SlugTaken() {
	verr := service.NewValidationError("slug", "is already taken")
	s.mockService.On("Create", mock.Anything, mock.Anything).Return(nil, verr)

	w := s.serve(http.MethodPost, "/admin/listings", map[string]any{
		"slug":         "sea-view",
		"translations": map[string]map[string]string{"en": {"title": "Sea view"}},
	})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	var response dto.Error
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("is already taken", response.Fields["slug"])
}

func (s *ListingHandlerTestSuite) TestCreateListing_NoTenantSelected() {
	s.mockService.On("Create", mock.Anything, mock.Anything).Return(nil, repository.ErrTenantRequired)

	w := s.serve(http.MethodPost, "/unbound/listings", map[string]any{
		"translations": map[string]map[string]string{"en": {"title": "Loft"}},
	})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ListingHandlerTestSuite) TestDeleteListing() {
	s.mockService.On("Delete", mock.Anything, "l1").Return(nil)

	w := s.serve(http.MethodDelete, "/admin/listings/l1", nil)

	s.Equal(http.StatusNoContent, w.Code)
}

func (s *ListingHandlerTestSuite) TestReindexListings() {
	s.mockService.On("Reindex", mock.Anything).Return(42, nil)

	w := s.serve(http.MethodPost, "/admin/listings/reindex", nil)

	s.Equal(http.StatusAccepted, w.Code)
	s.JSONEq(`{"queued":42}`, w.Body.String())
}
