package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/service"
)

type MockSubscriberService struct {
	mock.Mock
}

func (m *MockSubscriberService) Subscribe(ctx context.Context, req dto.SubscribeRequest) (*domain.Subscriber, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscriber), args.Error(1)
}

func (m *MockSubscriberService) Confirm(ctx context.Context, token string) (*domain.Subscriber, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscriber), args.Error(1)
}

func (m *MockSubscriberService) List(ctx context.Context, filter domain.ContentFilter) (*service.Page[domain.Subscriber], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[domain.Subscriber]), args.Error(1)
}

func (m *MockSubscriberService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubscriberService) RequestPurge(ctx context.Context, before time.Time) (time.Time, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(time.Time), args.Error(1)
}

type SubscriberHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockSubscriberService
}

func (s *SubscriberHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
	s.mockService = new(MockSubscriberService)
	handler := NewSubscriberHandler(s.mockService)

	s.router = gin.New()
	s.router.POST("/subscribers", handler.Subscribe)
	s.router.GET("/subscribers/confirm", handler.ConfirmSubscription)
	s.router.GET("/admin/subscribers", handler.ListSubscribers)
	s.router.POST("/admin/subscribers/purge", handler.PurgeSubscribers)
}

func TestSubscriberHandler(t *testing.T) {
	suite.Run(t, new(SubscriberHandlerTestSuite))
}

func (s *SubscriberHandlerTestSuite) serve(method, target string, body any) *httptest.ResponseRecorder {
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

func (s *SubscriberHandlerTestSuite) TestSubscribe_Success() {
	// Arrange
	req := dto.SubscribeRequest{Email: "jane@example.com", Locale: "uk"}
	s.mockService.On("Subscribe", mock.Anything, req).
		Return(&domain.Subscriber{ID: "s1", Email: "jane@example.com", Locale: "uk"}, nil)

	// Act
	w := s.serve(http.MethodPost, "/subscribers", req)

	// Assert
	s.Equal(http.StatusCreated, w.Code)
	var resp dto.SubscriberResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("s1", resp.ID)
	s.False(resp.Confirmed)
}

func (s *SubscriberHandlerTestSuite) TestSubscribe_InvalidEmail() {
	// Act
	w := s.serve(http.MethodPost, "/subscribers", map[string]string{"email": "nope"})

	// Assert
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Subscribe", mock.Anything, mock.Anything)
}

func (s *SubscriberHandlerTestSuite) TestSubscribe_AlreadySubscribed() {
	// Arrange
	s.mockService.On("Subscribe", mock.Anything, mock.Anything).Return(nil, service.ErrAlreadySubscribed)

	// Act
	w := s.serve(http.MethodPost, "/subscribers", map[string]string{"email": "jane@example.com"})

	// Assert
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *SubscriberHandlerTestSuite) TestSubscribe_NewsletterDisabled() {
	// Arrange
	s.mockService.On("Subscribe", mock.Anything, mock.Anything).Return(nil, service.ErrFeatureDisabled)

	// Act
	w := s.serve(http.MethodPost, "/subscribers", map[string]string{"email": "jane@example.com"})

	// Assert
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *SubscriberHandlerTestSuite) TestConfirm_MissingToken() {
	// Act
	w := s.serve(http.MethodGet, "/subscribers/confirm", nil)

	// Assert
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *SubscriberHandlerTestSuite) TestConfirm_InvalidToken() {
	// Arrange
	s.mockService.On("Confirm", mock.Anything, "bad").Return(nil, service.ErrInvalidToken)

	// Act
	w := s.serve(http.MethodGet, "/subscribers/confirm?token=bad", nil)

	// Assert
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *SubscriberHandlerTestSuite) TestConfirm_Success() {
	// Arrange
	confirmedAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s.mockService.On("Confirm", mock.Anything, "good").
		Return(&domain.Subscriber{ID: "s1", ConfirmedAt: &confirmedAt}, nil)

	// Act
	w := s.serve(http.MethodGet, "/subscribers/confirm?token=good", nil)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var resp dto.SubscriberResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Confirmed)
}

func (s *SubscriberHandlerTestSuite) TestList_Paginated() {
	// Arrange
	s.mockService.On("List", mock.Anything, domain.ContentFilter{Page: 2, PageSize: 5}).
		Return(&service.Page[domain.Subscriber]{Items: []domain.Subscriber{{ID: "s1"}}, Total: 6, Page: 2, PerPage: 5}, nil)

	// Act
	w := s.serve(http.MethodGet, "/admin/subscribers?page=2&per_page=5", nil)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *SubscriberHandlerTestSuite) TestPurge_Queued() {
	// Arrange
	before := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	s.mockService.On("RequestPurge", mock.Anything, time.Time{}).Return(before, nil)

	// Act
	w := s.serve(http.MethodPost, "/admin/subscribers/purge", nil)

	// Assert
	s.Equal(http.StatusAccepted, w.Code)
	var resp dto.PurgeResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("queued", resp.Status)
	s.True(before.Equal(resp.Before))
}

func (s *SubscriberHandlerTestSuite) TestPurge_NewsletterDisabled() {
	// Arrange
	s.mockService.On("RequestPurge", mock.Anything, mock.Anything).Return(time.Time{}, service.ErrFeatureDisabled)

	// Act
	w := s.serve(http.MethodPost, "/admin/subscribers/purge", nil)

	// Assert
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *SubscriberHandlerTestSuite) TestPurge_ExplicitCutoff() {
	// Arrange
	cutoff := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	s.mockService.On("RequestPurge", mock.Anything, cutoff).Return(cutoff, nil)

	// Act
	w := s.serve(http.MethodPost, "/admin/subscribers/purge?before=2025-01-15", nil)

	// Assert
	s.Equal(http.StatusAccepted, w.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *SubscriberHandlerTestSuite) TestPurge_InvalidCutoff() {
	// Act
	w := s.serve(http.MethodPost, "/admin/subscribers/purge?before=yesterday", nil)

	// Assert
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.mockService.AssertNotCalled(s.T(), "RequestPurge", mock.Anything, mock.Anything)
}
