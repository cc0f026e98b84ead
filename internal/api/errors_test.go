package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/service"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		aud  audience
		want int
	}{
		{"validation", service.NewValidationError("slug", "is already taken"), adminAudience, http.StatusUnprocessableEntity},
		{"feature disabled publicly", service.ErrFeatureDisabled, publicAudience, http.StatusNotFound},
		{"feature disabled for admins", service.ErrFeatureDisabled, adminAudience, http.StatusForbidden},
		{"wrapped not found", fmt.Errorf("load: %w", service.ErrNotFound), publicAudience, http.StatusNotFound},
		{"unknown tenant", service.ErrTenantNotFound, publicAudience, http.StatusNotFound},
		{"bad token", service.ErrInvalidToken, publicAudience, http.StatusUnauthorized},
		{"other tenant token", service.ErrTenantMismatch, publicAudience, http.StatusForbidden},
		{"foreign scrape domain", service.ErrDomainMismatch, adminAudience, http.StatusUnprocessableEntity},
		{"duplicate subscriber", service.ErrAlreadySubscribed, publicAudience, http.StatusUnprocessableEntity},
		{"no tenant selected", repository.ErrTenantRequired, adminAudience, http.StatusBadRequest},
		{"tenant with content", service.ErrTenantHasDependents, adminAudience, http.StatusConflict},
		{"anything else", errors.New("boom"), adminAudience, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err, tc.aud))
		})
	}
}
