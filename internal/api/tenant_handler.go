package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/utils"
)

//go:generate mockery --name TenantService --inpackage --testonly
type TenantService interface {
	Create(ctx context.Context, req dto.CreateTenantRequest) (*domain.Tenant, error)
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	List(ctx context.Context, filter domain.TenantFilter) ([]domain.Tenant, error)
	Update(ctx context.Context, id string, req dto.UpdateTenantRequest) (*domain.Tenant, error)
	RotateAPIKey(ctx context.Context, id string) (*domain.Tenant, error)
	Delete(ctx context.Context, id string) error
}

type TenantHandler struct {
	*BaseHandler
	service TenantService
}

func NewTenantHandler(service TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// CreateTenant godoc
// @Summary Create a new tenant
// @Description Create a tenant and issue its API key. The key is only returned here and on rotation.
// @Tags tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateTenantRequest true "Tenant object"
// @Success 201 {object} dto.TenantWithKeyResponse
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /tenants [post]
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tenant, err := h.service.Create(h.RequestCtx(c), req)
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}

	c.JSON(http.StatusCreated, dto.FromTenantWithKey(tenant))
}

// ListTenants godoc
// @Summary List all tenants
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Filter by active flag"
// @Success 200 {array} dto.TenantResponse
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Router /tenants [get]
func (h *TenantHandler) ListTenants(c *gin.Context) {
	var filter domain.TenantFilter
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error{Error: "active must be a boolean"})
			return
		}
		filter.Active = &active
	}

	tenants, err := h.service.List(h.RequestCtx(c), filter)
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}

	c.JSON(http.StatusOK, dto.FromTenants(tenants))
}

// GetTenant godoc
// @Summary Get a tenant
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.Error
// @Router /tenants/{id} [get]
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenant, err := h.service.GetByID(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}

	c.JSON(http.StatusOK, dto.FromTenant(tenant))
}

// UpdateTenant godoc
// @Summary Update a tenant
// @Description Only the fields present in the body change
// @Tags tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Param body body dto.UpdateTenantRequest true "Changed fields"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /tenants/{id} [patch]
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tenant, err := h.service.Update(h.RequestCtx(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}

	c.JSON(http.StatusOK, dto.FromTenant(tenant))
}

// RotateAPIKey godoc
// @Summary Rotate a tenant API key
// @Description The previous key stops working immediately
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 200 {object} dto.TenantWithKeyResponse
// @Failure 404 {object} dto.Error
// @Router /tenants/{id}/rotate-key [post]
func (h *TenantHandler) RotateAPIKey(c *gin.Context) {
	tenant, err := h.service.RotateAPIKey(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}

	c.JSON(http.StatusOK, dto.FromTenantWithKey(tenant))
}

// DeleteTenant godoc
// @Summary Delete a tenant
// @Description Only tenants without content can be deleted
// @Tags tenants
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 204
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /tenants/{id} [delete]
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	if err := h.service.Delete(h.RequestCtx(c), c.Param("id")); err != nil {
		respondError(c, err, adminAudience)
		return
	}

	c.Status(http.StatusNoContent)
}

// CurrentTenant godoc
// @Summary Get the resolved tenant
// @Description Public site settings of the tenant resolved from the API key or host
// @Tags site
// @Produce json
// @Param X-Api-Key header string false "Tenant API key"
// @Success 200 {object} dto.PublicTenantResponse
// @Failure 404 {object} dto.Error
// @Router /tenant [get]
func (h *TenantHandler) CurrentTenant(c *gin.Context) {
	tenant, err := utils.TenantFromContext(h.RequestCtx(c))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.Error{Error: "Tenant not found"})
		return
	}

	c.JSON(http.StatusOK, dto.FromPublicTenant(tenant))
}
