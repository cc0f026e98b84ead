package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/utils"
)

// PreviewClaims bind a preview link to one record of one tenant.
type PreviewClaims struct {
	TenantID    string `json:"tenant_id"`
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
	jwt.RegisteredClaims
}

// PreviewLink is an issued preview token and the frontend URL that carries it.
type PreviewLink struct {
	Token     string
	URL       string
	ExpiresAt time.Time
}

type PreviewService struct {
	repo    repository.Repository
	secret  []byte
	ttl     time.Duration
	baseURL string
	now     func() time.Time
}

func NewPreviewService(repo repository.Repository, secret string, ttl time.Duration, baseURL string) *PreviewService {
	return &PreviewService{
		repo:    repo,
		secret:  []byte(secret),
		ttl:     ttl,
		baseURL: baseURL,
		now:     time.Now,
	}
}

// Issue signs a preview token for a record of the bound tenant. The record may
// be in any status.
func (s *PreviewService) Issue(ctx context.Context, contentType, contentID string) (*PreviewLink, error) {
	tenant, err := utils.TenantFromContext(ctx)
	if err != nil {
		return nil, ErrTenantNotFound
	}
	if !tenant.FeatureEnabled(domain.FeaturePreview) {
		return nil, ErrFeatureDisabled
	}
	if _, err := s.load(ctx, domain.ScopeTo(tenant.ID), contentType, contentID); err != nil {
		return nil, err
	}

	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.ttl)
	claims := PreviewClaims{
		TenantID:    tenant.ID,
		ContentType: contentType,
		ContentID:   contentID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign preview token: %w", err)
	}

	return &PreviewLink{
		Token:     token,
		URL:       fmt.Sprintf("%s/api/preview?token=%s", s.baseURL, url.QueryEscape(token)),
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks signature, expiry and that the token was issued for the bound tenant.
func (s *PreviewService) Verify(ctx context.Context, tokenString string) (*PreviewClaims, error) {
	claims := &PreviewClaims{}
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

	tenant, err := utils.TenantFromContext(ctx)
	if err != nil {
		return nil, ErrTenantNotFound
	}
	if !domain.ScopeTo(tenant.ID).Owns(claims.TenantID) {
		return nil, ErrTenantMismatch
	}
	return claims, nil
}

// Resolve returns the record a valid token points at.
func (s *PreviewService) Resolve(ctx context.Context, tokenString string) (string, domain.Record, error) {
	claims, err := s.Verify(ctx, tokenString)
	if err != nil {
		return "", nil, err
	}
	record, err := s.load(ctx, domain.ScopeTo(claims.TenantID), claims.ContentType, claims.ContentID)
	if err != nil {
		return "", nil, err
	}
	return claims.ContentType, record, nil
}

func (s *PreviewService) load(ctx context.Context, scope domain.TenantScope, contentType, id string) (domain.Record, error) {
	var (
		record domain.Record
		err    error
	)
	switch contentType {
	case domain.TypeListing:
		record, err = asRecord[domain.Listing](s.repo.Listing().GetByID(ctx, scope, id))
	case domain.TypeListingComplex:
		record, err = asRecord[domain.ListingComplex](s.repo.ListingComplex().GetByID(ctx, scope, id))
	case domain.TypeBlogPost:
		record, err = asRecord[domain.BlogPost](s.repo.BlogPost().GetByID(ctx, scope, id))
	case domain.TypeClubStory:
		record, err = asRecord[domain.ClubStory](s.repo.ClubStory().GetByID(ctx, scope, id))
	default:
		return nil, NewValidationError("content_type", "is not previewable")
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func asRecord[T domain.Record](record *T, err error) (domain.Record, error) {
	if err != nil {
		return nil, err
	}
	return *record, nil
}
