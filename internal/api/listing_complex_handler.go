package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
)

//go:generate mockery --name ListingComplexService --inpackage --testonly
type ListingComplexService interface {
	ContentService[domain.ListingComplex, dto.ListingComplexRequest]
	Reorder(ctx context.Context, id string, position int) (*domain.ListingComplex, error)
}

type ListingComplexHandler struct {
	*contentHandler[domain.ListingComplex, dto.ListingComplexRequest, dto.ListingComplexResponse]
	service ListingComplexService
}

func NewListingComplexHandler(service ListingComplexService) *ListingComplexHandler {
	return &ListingComplexHandler{
		contentHandler: &contentHandler[domain.ListingComplex, dto.ListingComplexRequest, dto.ListingComplexResponse]{
			service: service,
			render:  dto.FromListingComplex,
		},
		service: service,
	}
}

// ListListingComplexes godoc
// @Summary List published listing complexes
// @Description Ordered by the position set in the backoffice
// @Tags listing-complexes
// @Produce json
// @Param locale query string false "Response locale"
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Page size" default(20)
// @Success 200 {object} dto.ListResponse[dto.ListingComplexResponse]
// @Failure 404 {object} dto.Error
// @Router /listing-complexes [get]
func (h *ListingComplexHandler) ListListingComplexes(c *gin.Context) {
	h.listPublished(c)
}

// GetListingComplex godoc
// @Summary Get a published listing complex
// @Tags listing-complexes
// @Produce json
// @Param slug path string true "Listing complex slug"
// @Success 200 {object} dto.ListingComplexResponse
// @Failure 404 {object} dto.Error
// @Router /listing-complexes/{slug} [get]
func (h *ListingComplexHandler) GetListingComplex(c *gin.Context) {
	h.getPublished(c)
}

// AdminListListingComplexes godoc
// @Summary List listing complexes
// @Tags admin-listing-complexes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse[dto.ListingComplexResponse]
// @Failure 403 {object} dto.Error
// @Router /admin/listing-complexes [get]
func (h *ListingComplexHandler) AdminListListingComplexes(c *gin.Context) {
	h.listAll(c)
}

// AdminGetListingComplex godoc
// @Summary Get a listing complex
// @Tags admin-listing-complexes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing complex ID"
// @Success 200 {object} dto.ListingComplexResponse
// @Failure 404 {object} dto.Error
// @Router /admin/listing-complexes/{id} [get]
func (h *ListingComplexHandler) AdminGetListingComplex(c *gin.Context) {
	h.get(c)
}

// CreateListingComplex godoc
// @Summary Create a listing complex
// @Description Order 0 appends the complex at the end
// @Tags admin-listing-complexes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ListingComplexRequest true "Listing complex"
// @Success 201 {object} dto.ListingComplexResponse
// @Failure 422 {object} dto.Error
// @Router /admin/listing-complexes [post]
func (h *ListingComplexHandler) CreateListingComplex(c *gin.Context) {
	h.create(c)
}

// UpdateListingComplex godoc
// @Summary Update a listing complex
// @Tags admin-listing-complexes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing complex ID"
// @Param body body dto.ListingComplexRequest true "Listing complex"
// @Success 200 {object} dto.ListingComplexResponse
// @Failure 404 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /admin/listing-complexes/{id} [put]
func (h *ListingComplexHandler) UpdateListingComplex(c *gin.Context) {
	h.update(c)
}

// DeleteListingComplex godoc
// @Summary Delete a listing complex
// @Tags admin-listing-complexes
// @Security BearerAuth
// @Param id path string true "Listing complex ID"
// @Success 204
// @Failure 404 {object} dto.Error
// @Router /admin/listing-complexes/{id} [delete]
func (h *ListingComplexHandler) DeleteListingComplex(c *gin.Context) {
	h.delete(c)
}

// ReorderListingComplex godoc
// @Summary Move a listing complex
// @Description Positions are clamped to 1..N and stay dense
// @Tags admin-listing-complexes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing complex ID"
// @Param body body dto.ReorderRequest true "Target position"
// @Success 200 {object} dto.ListingComplexResponse
// @Failure 404 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /admin/listing-complexes/{id}/reorder [patch]
func (h *ListingComplexHandler) ReorderListingComplex(c *gin.Context) {
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := h.RequestCtx(c)
	lc, err := h.service.Reorder(ctx, c.Param("id"), req.Position)
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}
	c.JSON(http.StatusOK, dto.FromListingComplex(lc, h.Localization(ctx, true)))
}
