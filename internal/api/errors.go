package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/repository"
	"github.com/kingrain94/realty-api/internal/service"
)

// audience decides how a disabled feature is reported. Public clients must not
// learn that a resource exists at all.
type audience int

const (
	adminAudience audience = iota
	publicAudience
)

func statusFor(err error, aud audience) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrFeatureDisabled):
		if aud == publicAudience {
			return http.StatusNotFound
		}
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrPhotoNotFound),
		errors.Is(err, service.ErrParentNotFound),
		errors.Is(err, service.ErrTenantNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrTenantMismatch):
		return http.StatusForbidden
	case errors.Is(err, service.ErrDomainMismatch),
		errors.Is(err, service.ErrScraperNotEnabled),
		errors.Is(err, service.ErrAlreadySubscribed),
		errors.Is(err, service.ErrInvalidImage),
		errors.Is(err, service.ErrUnsupportedLocale):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrTenantRequired):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTenantExists),
		errors.Is(err, service.ErrTenantHasDependents):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error for a service failure.
func respondError(c *gin.Context, err error, aud audience) {
	status := statusFor(err, aud)
	switch status {
	case http.StatusInternalServerError:
		_ = c.Error(err)
		c.JSON(status, dto.Error{Error: "Internal server error"})
	case http.StatusUnprocessableEntity:
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(status, dto.Error{Error: "Validation failed", Fields: verr.Fields})
			return
		}
		c.JSON(status, dto.Error{Error: err.Error()})
	case http.StatusBadRequest:
		c.JSON(status, dto.Error{Error: "A tenant must be selected for this operation"})
	default:
		c.JSON(status, dto.Error{Error: err.Error()})
	}
}

// respondBindError reports malformed bodies as 400 and failed validation rules
// as 422 with one message per field.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldPath(fe)] = validationMessage(fe)
		}
		c.JSON(http.StatusUnprocessableEntity, dto.Error{Error: "Validation failed", Fields: fields})
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "Malformed request body"})
		return
	}
	c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
}
