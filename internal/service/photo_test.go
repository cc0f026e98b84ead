package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/mocks"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/service/media"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

type PhotoServiceTestSuite struct {
	suite.Suite
	mockRepo      *mocks.Repository
	mockPhoto     *mocks.PhotoRepository
	mockStorage   *mocks.ObjectStorage
	mockProcessor *mocks.ImageProcessor
	mockEvents    *mocks.EventPublisher
	ctx           context.Context
	scope         domain.TenantScope
	parent        domain.PhotoParent
	service       *PhotoService
}

func (s *PhotoServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockPhoto = new(mocks.PhotoRepository)
	s.mockStorage = new(mocks.ObjectStorage)
	s.mockProcessor = new(mocks.ImageProcessor)
	s.mockEvents = new(mocks.EventPublisher)
	s.mockRepo.On("Photo").Return(s.mockPhoto)

	tenant := &domain.Tenant{
		ID:       "acme",
		Features: datatypes.NewJSONType(domain.FeatureFlags{ListingComplexes: true}),
	}
	s.ctx = utils.WithTenant(context.Background(), tenant)
	s.scope = domain.ScopeTo("acme")
	s.parent = domain.PhotoParent{Type: domain.TypeListingComplex, ID: "c1"}
	s.service = NewPhotoService(s.mockRepo, s.mockStorage, s.mockProcessor, s.mockEvents, logger.NewNop())
}

func TestPhotoService(t *testing.T) {
	suite.Run(t, new(PhotoServiceTestSuite))
}

func (s *PhotoServiceTestSuite) TestUpload_StoresAndInserts() {
	s.mockProcessor.On("Process", mock.Anything).Return(&media.ProcessedImage{Data: []byte("webp"), Width: 800, Height: 600}, nil)
	s.mockStorage.On("Put", s.ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "tenants/acme/listing_complex/c1/") && strings.HasSuffix(key, ".webp")
	}), []byte("webp"), media.WebPContentType).Return("https://cdn.example.com/p.webp", nil)
	s.mockPhoto.On("Add", s.ctx, s.scope, mock.MatchedBy(func(p *domain.Photo) bool {
		return p.Main && p.Width == 800 && p.ParentID == "c1" && p.URL == "https://cdn.example.com/p.webp"
	}), 2).Return(nil)
	s.mockEvents.On("Publish", s.ctx, mock.MatchedBy(func(e *domain.Event) bool {
		return e.Type == domain.EventPhotoAdded && e.TenantID == "acme"
	})).Return(nil)

	photo, err := s.service.Upload(s.ctx, s.parent, strings.NewReader("raw"), dto.PhotoUploadRequest{Position: 2, Main: true})

	s.NoError(err)
	s.True(photo.Main)
	s.mockEvents.AssertExpectations(s.T())
}

func (s *PhotoServiceTestSuite) TestUpload_RemovesObjectWhenInsertFails() {
	s.mockProcessor.On("Process", mock.Anything).Return(&media.ProcessedImage{Data: []byte("webp")}, nil)
	s.mockStorage.On("Put", s.ctx, mock.Anything, mock.Anything, mock.Anything).Return("url", nil)
	s.mockPhoto.On("Add", s.ctx, s.scope, mock.Anything, 0).Return(repository.ErrParentNotFound)
	s.mockStorage.On("Delete", s.ctx, mock.AnythingOfType("string")).Return(nil)

	_, err := s.service.Upload(s.ctx, s.parent, strings.NewReader("raw"), dto.PhotoUploadRequest{})

	s.ErrorIs(err, ErrParentNotFound)
	s.mockStorage.AssertCalled(s.T(), "Delete", s.ctx, mock.AnythingOfType("string"))
}

func (s *PhotoServiceTestSuite) TestUpload_InvalidImage() {
	s.mockProcessor.On("Process", mock.Anything).Return(nil, media.ErrUnsupportedFormat)

	_, err := s.service.Upload(s.ctx, s.parent, strings.NewReader("text"), dto.PhotoUploadRequest{})

	s.ErrorIs(err, ErrInvalidImage)
	s.mockStorage.AssertNotCalled(s.T(), "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PhotoServiceTestSuite) TestUpload_FeatureDisabled() {
	ctx := utils.WithTenant(context.Background(), &domain.Tenant{ID: "acme"})

	_, err := s.service.Upload(ctx, s.parent, strings.NewReader("raw"), dto.PhotoUploadRequest{})

	s.ErrorIs(err, ErrFeatureDisabled)
}

func (s *PhotoServiceTestSuite) TestUpload_UnknownParentType() {
	_, err := s.service.Upload(s.ctx, domain.PhotoParent{Type: "tenant", ID: "x"}, strings.NewReader("raw"), dto.PhotoUploadRequest{})

	s.ErrorIs(err, ErrParentNotFound)
}

func (s *PhotoServiceTestSuite) TestSetMain_ReturnsGallery() {
	gallery := []domain.Photo{{ID: "p1", Order: 1}, {ID: "p2", Order: 2, Main: true}}
	s.mockPhoto.On("SetMain", s.ctx, s.scope, s.parent, "p2").Return(nil)
	s.mockPhoto.On("ListByParent", s.ctx, s.scope, s.parent).Return(gallery, nil)

	photos, err := s.service.SetMain(s.ctx, s.parent, "p2")

	s.NoError(err)
	s.Equal(gallery, photos)
}

func (s *PhotoServiceTestSuite) TestSetMain_PhotoOfAnotherParent() {
	s.mockPhoto.On("SetMain", s.ctx, s.scope, s.parent, "foreign").Return(domain.ErrNotInSequence)

	_, err := s.service.SetMain(s.ctx, s.parent, "foreign")

	s.ErrorIs(err, ErrPhotoNotFound)
}

func (s *PhotoServiceTestSuite) TestReorder() {
	s.mockPhoto.On("Reorder", s.ctx, s.scope, s.parent, "p1", 3).Return(nil)
	s.mockPhoto.On("ListByParent", s.ctx, s.scope, s.parent).Return([]domain.Photo{}, nil)

	_, err := s.service.Reorder(s.ctx, s.parent, "p1", 3)

	s.NoError(err)
	s.mockPhoto.AssertExpectations(s.T())
}

func (s *PhotoServiceTestSuite) TestDelete_RemovesObject() {
	s.mockPhoto.On("Delete", s.ctx, s.scope, s.parent, "p1").Return(&domain.Photo{ID: "p1", ImageKey: "k1"}, nil)
	s.mockStorage.On("Delete", s.ctx, "k1").Return(errors.New("s3 down"))

	err := s.service.Delete(s.ctx, s.parent, "p1")

	s.NoError(err)
	s.mockStorage.AssertExpectations(s.T())
}

func (s *PhotoServiceTestSuite) TestRequiresTenant() {
	_, err := s.service.List(context.Background(), s.parent)

	s.ErrorIs(err, repository.ErrTenantRequired)
}
