package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/utils"
	"github.com/kingrain94/realty-api/pkg/logger"
)

// ConfirmationTTL is how long a confirmation link stays valid.
const ConfirmationTTL = 7 * 24 * time.Hour

// ConfirmationClaims are carried by the link in the confirmation mail.
type ConfirmationClaims struct {
	TenantID     string `json:"tenant_id"`
	SubscriberID string `json:"subscriber_id"`
	jwt.RegisteredClaims
}

type SubscriberService struct {
	repo    repository.Repository
	mail    MailQueue
	cleanup CleanupQueue
	events  EventPublisher
	secret  []byte
	baseURL string
	logger  *logger.Logger
	now     func() time.Time
}

func NewSubscriberService(repo repository.Repository, mail MailQueue, cleanup CleanupQueue, events EventPublisher, secret, baseURL string, log *logger.Logger) *SubscriberService {
	return &SubscriberService{
		repo:    repo,
		mail:    mail,
		cleanup: cleanup,
		events:  events,
		secret:  []byte(secret),
		baseURL: baseURL,
		logger:  log,
		now:     time.Now,
	}
}

func (s *SubscriberService) tenant(ctx context.Context) (*domain.Tenant, error) {
	tenant, err := utils.TenantFromContext(ctx)
	if err != nil {
		return nil, ErrTenantNotFound
	}
	if !tenant.FeatureEnabled(domain.FeatureNewsletter) {
		return nil, ErrFeatureDisabled
	}
	return tenant, nil
}

// Subscribe stores an unconfirmed subscriber and queues the confirmation mail.
func (s *SubscriberService) Subscribe(ctx context.Context, req dto.SubscribeRequest) (*domain.Subscriber, error) {
	tenant, err := s.tenant(ctx)
	if err != nil {
		return nil, err
	}
	locale := strings.ToLower(req.Locale)
	if locale == "" {
		locale = tenant.DefaultLocale
	}
	if !tenant.SupportsLocale(locale) {
		return nil, NewValidationError("locale", "locale is not enabled for this tenant")
	}

	subscriber := &domain.Subscriber{
		ID:       uuid.New().String(),
		TenantID: tenant.ID,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Locale:   locale,
	}
	if err := s.repo.Subscriber().Create(ctx, domain.ScopeTo(tenant.ID), subscriber); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("failed to create subscriber: %w", err)
	}

	token, err := s.sign(subscriber)
	if err != nil {
		return nil, err
	}
	mail := &domain.Mail{
		To:       subscriber.Email,
		Template: domain.MailSubscriptionConfirmation,
		Locale:   subscriber.Locale,
		Data: map[string]string{
			"tenant":      tenant.Name,
			"confirm_url": fmt.Sprintf("%s/api/v1/subscribers/confirm?token=%s", s.baseURL, url.QueryEscape(token)),
		},
	}
	if err := s.mail.SendMail(ctx, tenant.ID, mail); err != nil {
		s.logger.Error("failed to enqueue confirmation mail", err, zap.String("subscriber_id", subscriber.ID))
	}
	return subscriber, nil
}

// Confirm marks the subscriber from a confirmation token as confirmed. Confirming
// twice is not an error.
func (s *SubscriberService) Confirm(ctx context.Context, tokenString string) (*domain.Subscriber, error) {
	tenant, err := s.tenant(ctx)
	if err != nil {
		return nil, err
	}

	claims := &ConfirmationClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	scope := domain.ScopeTo(tenant.ID)
	if !scope.Owns(claims.TenantID) {
		return nil, ErrTenantMismatch
	}

	subscriber, err := s.repo.Subscriber().GetByID(ctx, scope, claims.SubscriberID)
	if err != nil {
		return nil, notFound(err)
	}
	if subscriber.ConfirmedAt != nil {
		return subscriber, nil
	}

	now := s.now().UTC()
	subscriber.ConfirmedAt = &now
	if err := s.repo.Subscriber().Update(ctx, scope, subscriber); err != nil {
		return nil, fmt.Errorf("failed to confirm subscriber: %w", err)
	}

	notice := &domain.Mail{
		Template: domain.MailSubscriberConfirmed,
		Locale:   tenant.DefaultLocale,
		Data:     map[string]string{"tenant": tenant.Name, "email": subscriber.Email},
	}
	if err := s.mail.SendMail(ctx, tenant.ID, notice); err != nil {
		s.logger.Warn("failed to enqueue admin notification", zap.Error(err))
	}
	publishEvent(ctx, s.events, s.logger, tenant.ID, domain.EventSubscriberConfirmed, subscriber.Email, dto.FromSubscriber(subscriber))
	return subscriber, nil
}

func (s *SubscriberService) List(ctx context.Context, filter domain.ContentFilter) (*Page[domain.Subscriber], error) {
	if _, err := s.tenant(ctx); err != nil {
		return nil, err
	}
	filter.Paginate(DefaultPageSize, MaxPageSize)

	subscribers, total, err := s.repo.Subscriber().List(ctx, utils.ScopeFromContext(ctx), filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return &Page[domain.Subscriber]{Items: subscribers, Total: total, Page: filter.Page, PerPage: filter.PageSize}, nil
}

func (s *SubscriberService) Delete(ctx context.Context, id string) error {
	tenant, err := s.tenant(ctx)
	if err != nil {
		return err
	}
	return notFound(s.repo.Subscriber().Delete(ctx, domain.ScopeTo(tenant.ID), id))
}

// RequestPurge queues removal of the tenant's unconfirmed subscribers created
// before the cutoff and returns the cutoff used. The cutoff never reaches into
// the window where confirmation links are still valid; a zero cutoff means
// the edge of that window.
func (s *SubscriberService) RequestPurge(ctx context.Context, before time.Time) (time.Time, error) {
	tenant, err := s.tenant(ctx)
	if err != nil {
		return time.Time{}, err
	}

	limit := s.now().UTC().Add(-ConfirmationTTL)
	if before.IsZero() || before.After(limit) {
		before = limit
	}
	if err := s.cleanup.SendPurgeSubscribers(ctx, tenant.ID, before); err != nil {
		return time.Time{}, fmt.Errorf("failed to enqueue subscriber purge: %w", err)
	}
	s.logger.Info("Subscriber purge queued", zap.String("tenant_id", tenant.ID), zap.Time("before", before))
	return before, nil
}

func (s *SubscriberService) sign(subscriber *domain.Subscriber) (string, error) {
	issuedAt := s.now().UTC()
	claims := ConfirmationClaims{
		TenantID:     subscriber.TenantID,
		SubscriberID: subscriber.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ConfirmationTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign confirmation token: %w", err)
	}
	return token, nil
}
