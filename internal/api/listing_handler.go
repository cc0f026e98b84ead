package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/service"
)

//go:generate mockery --name ListingService --inpackage --testonly
type ListingService interface {
	ContentService[domain.Listing, dto.ListingRequest]
	Search(ctx context.Context, filter domain.ContentFilter) (*service.Page[domain.Listing], error)
	Reindex(ctx context.Context) (int, error)
}

type ListingHandler struct {
	*contentHandler[domain.Listing, dto.ListingRequest, dto.ListingResponse]
	service ListingService
}

func NewListingHandler(service ListingService) *ListingHandler {
	return &ListingHandler{
		contentHandler: &contentHandler[domain.Listing, dto.ListingRequest, dto.ListingResponse]{
			service: service,
			render:  dto.FromListing,
		},
		service: service,
	}
}

// ListListings godoc
// @Summary List published listings
// @Description Published listings of the resolved tenant. With q the search index is used.
// @Tags listings
// @Produce json
// @Param X-Api-Key header string false "Tenant API key"
// @Param locale query string false "Response locale"
// @Param q query string false "Full text query"
// @Param listing_complex_id query string false "Listing complex"
// @Param min_price query int false "Minimum price"
// @Param max_price query int false "Maximum price"
// @Param rooms query int false "Rooms"
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Page size" default(20)
// @Success 200 {object} dto.ListResponse[dto.ListingResponse]
// @Failure 404 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /listings [get]
func (h *ListingHandler) ListListings(c *gin.Context) {
	h.list(c, publicAudience, h.service.Search)
}

// GetListing godoc
// @Summary Get a published listing
// @Description Resolves current and previous slugs
// @Tags listings
// @Produce json
// @Param slug path string true "Listing slug"
// @Param locale query string false "Response locale"
// @Success 200 {object} dto.ListingResponse
// @Failure 404 {object} dto.Error
// @Router /listings/{slug} [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	h.getPublished(c)
}

// AdminListListings godoc
// @Summary List listings
// @Description All listings of the tenant in any status
// @Tags admin-listings
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft, published or hidden"
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Page size" default(20)
// @Success 200 {object} dto.ListResponse[dto.ListingResponse]
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Router /admin/listings [get]
func (h *ListingHandler) AdminListListings(c *gin.Context) {
	h.listAll(c)
}

// AdminGetListing godoc
// @Summary Get a listing
// @Tags admin-listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} dto.ListingResponse
// @Failure 404 {object} dto.Error
// @Router /admin/listings/{id} [get]
func (h *ListingHandler) AdminGetListing(c *gin.Context) {
	h.get(c)
}

// CreateListing godoc
// @Summary Create a listing
// @Description The slug is generated from the default locale title when omitted
// @Tags admin-listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ListingRequest true "Listing"
// @Success 201 {object} dto.ListingResponse
// @Failure 400 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /admin/listings [post]
func (h *ListingHandler) CreateListing(c *gin.Context) {
	h.create(c)
}

// UpdateListing godoc
// @Summary Update a listing
// @Tags admin-listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param body body dto.ListingRequest true "Listing"
// @Success 200 {object} dto.ListingResponse
// @Failure 404 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /admin/listings/{id} [put]
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	h.update(c)
}

// DeleteListing godoc
// @Summary Delete a listing
// @Description Removes the listing with its translations and photos
// @Tags admin-listings
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204
// @Failure 404 {object} dto.Error
// @Router /admin/listings/{id} [delete]
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	h.delete(c)
}

// ReindexListings godoc
// @Summary Rebuild the search index
// @Description Queues every listing of the tenant for indexing
// @Tags admin-listings
// @Produce json
// @Security BearerAuth
// @Success 202 {object} map[string]int
// @Failure 400 {object} dto.Error
// @Router /admin/listings/reindex [post]
func (h *ListingHandler) ReindexListings(c *gin.Context) {
	queued, err := h.service.Reindex(h.RequestCtx(c))
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": queued})
}
