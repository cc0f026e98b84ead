package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/mocks"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

type SubscriberServiceTestSuite struct {
	suite.Suite
	mockRepo       *mocks.Repository
	mockSubscriber *mocks.SubscriberRepository
	mockMail       *mocks.MailQueue
	mockCleanup    *mocks.CleanupQueue
	mockEvents     *mocks.EventPublisher
	tenant         *domain.Tenant
	ctx            context.Context
	scope          domain.TenantScope
	service        *SubscriberService
}

func (s *SubscriberServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockSubscriber = new(mocks.SubscriberRepository)
	s.mockMail = new(mocks.MailQueue)
	s.mockCleanup = new(mocks.CleanupQueue)
	s.mockEvents = new(mocks.EventPublisher)
	s.mockRepo.On("Subscriber").Return(s.mockSubscriber)

	s.tenant = &domain.Tenant{
		ID:            "acme",
		Name:          "Acme Realty",
		DefaultLocale: "en",
		Locales:       datatypes.JSONSlice[string]{"en", "uk"},
		Features:      datatypes.NewJSONType(domain.FeatureFlags{Newsletter: true}),
	}
	s.ctx = utils.WithTenant(context.Background(), s.tenant)
	s.scope = domain.ScopeTo("acme")
	s.service = NewSubscriberService(s.mockRepo, s.mockMail, s.mockCleanup, s.mockEvents, "secret", "https://api.example.com", logger.NewNop())
}

func TestSubscriberService(t *testing.T) {
	suite.Run(t, new(SubscriberServiceTestSuite))
}

func (s *SubscriberServiceTestSuite) subscribe() (*domain.Subscriber, string) {
	var sent *domain.Mail
	s.mockSubscriber.On("Create", s.ctx, s.scope, mock.AnythingOfType("*domain.Subscriber")).Return(nil).Once()
	s.mockMail.On("SendMail", s.ctx, "acme", mock.MatchedBy(func(m *domain.Mail) bool {
		return m.Template == domain.MailSubscriptionConfirmation
	})).Run(func(args mock.Arguments) {
		sent = args.Get(2).(*domain.Mail)
	}).Return(nil).Once()

	subscriber, err := s.service.Subscribe(s.ctx, dto.SubscribeRequest{Email: " Jane@Example.com ", Locale: "UK"})
	s.Require().NoError(err)
	s.Require().NotNil(sent)

	link, err := url.Parse(sent.Data["confirm_url"])
	s.Require().NoError(err)
	return subscriber, link.Query().Get("token")
}

func (s *SubscriberServiceTestSuite) TestSubscribe_QueuesConfirmation() {
	subscriber, token := s.subscribe()

	s.Equal("jane@example.com", subscriber.Email)
	s.Equal("uk", subscriber.Locale)
	s.Nil(subscriber.ConfirmedAt)
	s.NotEmpty(token)
}

func (s *SubscriberServiceTestSuite) TestSubscribe_DefaultLocale() {
	s.mockSubscriber.On("Create", s.ctx, s.scope, mock.Anything).Return(nil)
	s.mockMail.On("SendMail", s.ctx, "acme", mock.Anything).Return(nil)

	subscriber, err := s.service.Subscribe(s.ctx, dto.SubscribeRequest{Email: "a@b.co"})

	s.NoError(err)
	s.Equal("en", subscriber.Locale)
}

func (s *SubscriberServiceTestSuite) TestSubscribe_LocaleNotEnabled() {
	_, err := s.service.Subscribe(s.ctx, dto.SubscribeRequest{Email: "a@b.co", Locale: "ru"})

	var verr *ValidationError
	s.ErrorAs(err, &verr)
}

func (s *SubscriberServiceTestSuite) TestSubscribe_Duplicate() {
	s.mockSubscriber.On("Create", s.ctx, s.scope, mock.Anything).Return(repository.ErrDuplicate)

	_, err := s.service.Subscribe(s.ctx, dto.SubscribeRequest{Email: "a@b.co"})

	s.ErrorIs(err, ErrAlreadySubscribed)
	s.mockMail.AssertNotCalled(s.T(), "SendMail", mock.Anything, mock.Anything, mock.Anything)
}

func (s *SubscriberServiceTestSuite) TestSubscribe_NewsletterDisabled() {
	ctx := utils.WithTenant(context.Background(), &domain.Tenant{ID: "acme"})

	_, err := s.service.Subscribe(ctx, dto.SubscribeRequest{Email: "a@b.co"})

	s.ErrorIs(err, ErrFeatureDisabled)
}

func (s *SubscriberServiceTestSuite) TestConfirm_MarksConfirmedAndNotifies() {
	subscriber, token := s.subscribe()
	stored := *subscriber
	s.mockSubscriber.On("GetByID", s.ctx, s.scope, subscriber.ID).Return(&stored, nil)
	s.mockSubscriber.On("Update", s.ctx, s.scope, mock.MatchedBy(func(sub *domain.Subscriber) bool {
		return sub.ConfirmedAt != nil
	})).Return(nil)
	s.mockMail.On("SendMail", s.ctx, "acme", mock.MatchedBy(func(m *domain.Mail) bool {
		return m.Template == domain.MailSubscriberConfirmed && m.To == "" && m.Data["email"] == "jane@example.com"
	})).Return(nil)
	s.mockEvents.On("Publish", s.ctx, mock.MatchedBy(func(e *domain.Event) bool {
		return e.Type == domain.EventSubscriberConfirmed
	})).Return(nil)

	confirmed, err := s.service.Confirm(s.ctx, token)

	s.NoError(err)
	s.NotNil(confirmed.ConfirmedAt)
	s.mockMail.AssertExpectations(s.T())
	s.mockEvents.AssertExpectations(s.T())
}

func (s *SubscriberServiceTestSuite) TestConfirm_Twice() {
	subscriber, token := s.subscribe()
	confirmedAt := time.Now()
	stored := *subscriber
	stored.ConfirmedAt = &confirmedAt
	s.mockSubscriber.On("GetByID", s.ctx, s.scope, subscriber.ID).Return(&stored, nil)

	_, err := s.service.Confirm(s.ctx, token)

	s.NoError(err)
	s.mockSubscriber.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
}

func (s *SubscriberServiceTestSuite) TestConfirm_OtherTenant() {
	_, token := s.subscribe()
	other := *s.tenant
	other.ID = "globex"

	_, err := s.service.Confirm(utils.WithTenant(context.Background(), &other), token)

	s.ErrorIs(err, ErrTenantMismatch)
}

func (s *SubscriberServiceTestSuite) TestConfirm_Garbage() {
	_, err := s.service.Confirm(s.ctx, "not-a-token")

	s.ErrorIs(err, ErrInvalidToken)
}

func (s *SubscriberServiceTestSuite) TestDelete_NotFound() {
	s.mockSubscriber.On("Delete", s.ctx, s.scope, "x").Return(repository.ErrNotFound)

	err := s.service.Delete(s.ctx, "x")

	s.ErrorIs(err, ErrNotFound)
}

func (s *SubscriberServiceTestSuite) TestRequestPurge_UsesConfirmationWindow() {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time { return now }
	expected := now.Add(-7 * 24 * time.Hour)
	s.mockCleanup.On("SendPurgeSubscribers", s.ctx, "acme", expected).Return(nil)

	before, err := s.service.RequestPurge(s.ctx, time.Time{})

	s.NoError(err)
	s.Equal(expected, before)
	s.mockCleanup.AssertExpectations(s.T())
}

func (s *SubscriberServiceTestSuite) TestRequestPurge_ClampsRecentCutoff() {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time { return now }
	limit := now.Add(-7 * 24 * time.Hour)
	s.mockCleanup.On("SendPurgeSubscribers", s.ctx, "acme", limit).Return(nil)

	before, err := s.service.RequestPurge(s.ctx, now.Add(-time.Hour))

	s.NoError(err)
	s.Equal(limit, before)
}

func (s *SubscriberServiceTestSuite) TestRequestPurge_KeepsOlderCutoff() {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time { return now }
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.mockCleanup.On("SendPurgeSubscribers", s.ctx, "acme", older).Return(nil)

	before, err := s.service.RequestPurge(s.ctx, older)

	s.NoError(err)
	s.Equal(older, before)
}

func (s *SubscriberServiceTestSuite) TestRequestPurge_QueueFailure() {
	s.mockCleanup.On("SendPurgeSubscribers", s.ctx, "acme", mock.AnythingOfType("time.Time")).Return(errors.New("sqs down"))

	_, err := s.service.RequestPurge(s.ctx, time.Time{})

	s.Error(err)
}

func (s *SubscriberServiceTestSuite) TestRequestPurge_NewsletterDisabled() {
	ctx := utils.WithTenant(context.Background(), &domain.Tenant{ID: "acme"})

	_, err := s.service.RequestPurge(ctx, time.Time{})

	s.ErrorIs(err, ErrFeatureDisabled)
	s.mockCleanup.AssertNotCalled(s.T(), "SendPurgeSubscribers", mock.Anything, mock.Anything, mock.Anything)
}
