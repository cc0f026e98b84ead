package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/pkg/logger"
)

// VariableService manages site copy addressed by key. Variables have no
// publication state, so every variable is public.
type VariableService struct {
	*contentService[domain.Variable]
}

func NewVariableService(repo repository.Repository, log *logger.Logger) *VariableService {
	return &VariableService{
		contentService: &contentService[domain.Variable]{
			repo:   repo.Variable(),
			logger: log,
		},
	}
}

func (s *VariableService) Create(ctx context.Context, req dto.VariableRequest) (*domain.Variable, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, err
	}
	translations := req.Translations.ToInput()
	if err := validateTranslations(tenant, translations, "value"); err != nil {
		return nil, err
	}
	if err := s.checkKey(ctx, scope, req.Key, ""); err != nil {
		return nil, err
	}

	variable := &domain.Variable{
		ID:       uuid.New().String(),
		TenantID: tenant.ID,
		Key:      req.Key,
	}
	if err := s.repo.Create(ctx, scope, variable, translations.Build(tenant.ID, domain.TypeVariable, variable.ID)); err != nil {
		return nil, fmt.Errorf("failed to create variable: %w", err)
	}
	return s.Get(ctx, variable.ID)
}

func (s *VariableService) Update(ctx context.Context, id string, req dto.VariableRequest) (*domain.Variable, error) {
	tenant, scope, err := s.writeTenant(ctx)
	if err != nil {
		return nil, err
	}
	variable, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, notFound(err)
	}
	translations := req.Translations.ToInput()
	if err := validateTranslations(tenant, translations, "value"); err != nil {
		return nil, err
	}
	if req.Key != variable.Key {
		if err := s.checkKey(ctx, scope, req.Key, variable.ID); err != nil {
			return nil, err
		}
		variable.Key = req.Key
	}

	if err := s.repo.Update(ctx, scope, variable, translations.Build(tenant.ID, domain.TypeVariable, variable.ID)); err != nil {
		return nil, notFound(err)
	}
	return s.Get(ctx, variable.ID)
}

// GetByKey is the public lookup.
func (s *VariableService) GetByKey(ctx context.Context, key string) (*domain.Variable, error) {
	return s.GetPublished(ctx, key)
}

func (s *VariableService) checkKey(ctx context.Context, scope domain.TenantScope, key, excludeID string) error {
	exists, err := s.repo.SlugExists(ctx, scope, key, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check key: %w", err)
	}
	if exists {
		return NewValidationError("key", "is already taken")
	}
	return nil
}
