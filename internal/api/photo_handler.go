package api

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
)

// photoParentTypes maps route segments to photo parent types.
var photoParentTypes = map[string]string{
	"listings":          domain.TypeListing,
	"listing-complexes": domain.TypeListingComplex,
	"blog-posts":        domain.TypeBlogPost,
	"club-stories":      domain.TypeClubStory,
}

//go:generate mockery --name PhotoService --inpackage --testonly
type PhotoService interface {
	List(ctx context.Context, parent domain.PhotoParent) ([]domain.Photo, error)
	Upload(ctx context.Context, parent domain.PhotoParent, r io.Reader, req dto.PhotoUploadRequest) (*domain.Photo, error)
	SetMain(ctx context.Context, parent domain.PhotoParent, photoID string) ([]domain.Photo, error)
	Reorder(ctx context.Context, parent domain.PhotoParent, photoID string, position int) ([]domain.Photo, error)
	Delete(ctx context.Context, parent domain.PhotoParent, photoID string) error
}

type PhotoHandler struct {
	*BaseHandler
	service   PhotoService
	maxUpload int64
}

func NewPhotoHandler(service PhotoService, maxUpload int64) *PhotoHandler {
	return &PhotoHandler{service: service, maxUpload: maxUpload}
}

// parentFromRoute reads the gallery owner from the route. Routes are registered per
// parent type, so the segment always maps.
func parentFromRoute(c *gin.Context, parentType string) domain.PhotoParent {
	return domain.PhotoParent{Type: parentType, ID: c.Param("id")}
}

// ListPhotos godoc
// @Summary List photos of a record
// @Tags admin-photos
// @Produce json
// @Security BearerAuth
// @Param parent_type path string true "listings, listing-complexes, blog-posts or club-stories"
// @Param id path string true "Parent ID"
// @Success 200 {array} dto.PhotoResponse
// @Failure 404 {object} dto.Error
// @Router /admin/{parent_type}/{id}/photos [get]
func (h *PhotoHandler) ListPhotos(parentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		photos, err := h.service.List(h.RequestCtx(c), parentFromRoute(c, parentType))
		if err != nil {
			respondError(c, err, adminAudience)
			return
		}
		c.JSON(http.StatusOK, dto.FromPhotos(photos))
	}
}

// UploadPhoto godoc
// @Summary Upload a photo
// @Description The image is resized to at most 1920px wide and stored as WebP
// @Tags admin-photos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param parent_type path string true "listings, listing-complexes, blog-posts or club-stories"
// @Param id path string true "Parent ID"
// @Param file formData file true "Image"
// @Param position formData int false "Position, 0 appends"
// @Param main formData bool false "Make it the main photo"
// @Success 201 {object} dto.PhotoResponse
// @Failure 404 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /admin/{parent_type}/{id}/photos [post]
func (h *PhotoHandler) UploadPhoto(parentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.PhotoUploadRequest
		if err := c.ShouldBind(&req); err != nil {
			respondBindError(c, err)
			return
		}

		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, dto.Error{Error: "Validation failed", Fields: map[string]string{"file": "is required"}})
			return
		}
		if h.maxUpload > 0 && header.Size > h.maxUpload {
			c.JSON(http.StatusRequestEntityTooLarge, dto.Error{Error: "Image is too large"})
			return
		}
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error{Error: "Failed to read upload"})
			return
		}
		defer file.Close()

		photo, err := h.service.Upload(h.RequestCtx(c), parentFromRoute(c, parentType), file, req)
		if err != nil {
			respondError(c, err, adminAudience)
			return
		}
		c.JSON(http.StatusCreated, dto.FromPhoto(photo))
	}
}

// SetMainPhoto godoc
// @Summary Make a photo the main photo
// @Description Any other main photo of the record is cleared in the same transaction
// @Tags admin-photos
// @Produce json
// @Security BearerAuth
// @Param parent_type path string true "listings, listing-complexes, blog-posts or club-stories"
// @Param id path string true "Parent ID"
// @Param photo_id path string true "Photo ID"
// @Success 200 {array} dto.PhotoResponse
// @Failure 404 {object} dto.Error
// @Router /admin/{parent_type}/{id}/photos/{photo_id}/main [put]
func (h *PhotoHandler) SetMainPhoto(parentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		photos, err := h.service.SetMain(h.RequestCtx(c), parentFromRoute(c, parentType), c.Param("photo_id"))
		if err != nil {
			respondError(c, err, adminAudience)
			return
		}
		c.JSON(http.StatusOK, dto.FromPhotos(photos))
	}
}

// ReorderPhoto godoc
// @Summary Move a photo
// @Description Positions are clamped to 1..N and stay dense
// @Tags admin-photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param parent_type path string true "listings, listing-complexes, blog-posts or club-stories"
// @Param id path string true "Parent ID"
// @Param photo_id path string true "Photo ID"
// @Param body body dto.ReorderRequest true "Target position"
// @Success 200 {array} dto.PhotoResponse
// @Failure 404 {object} dto.Error
// @Router /admin/{parent_type}/{id}/photos/{photo_id}/reorder [patch]
func (h *PhotoHandler) ReorderPhoto(parentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ReorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		photos, err := h.service.Reorder(h.RequestCtx(c), parentFromRoute(c, parentType), c.Param("photo_id"), req.Position)
		if err != nil {
			respondError(c, err, adminAudience)
			return
		}
		c.JSON(http.StatusOK, dto.FromPhotos(photos))
	}
}

// DeletePhoto godoc
// @Summary Delete a photo
// @Description Deleting the main photo promotes the first remaining one
// @Tags admin-photos
// @Security BearerAuth
// @Param parent_type path string true "listings, listing-complexes, blog-posts or club-stories"
// @Param id path string true "Parent ID"
// @Param photo_id path string true "Photo ID"
// @Success 204
// @Failure 404 {object} dto.Error
// @Router /admin/{parent_type}/{id}/photos/{photo_id} [delete]
func (h *PhotoHandler) DeletePhoto(parentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.service.Delete(h.RequestCtx(c), parentFromRoute(c, parentType), c.Param("photo_id")); err != nil {
			respondError(c, err, adminAudience)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// RegisterRoutes mounts the gallery endpoints below every photo parent.
func (h *PhotoHandler) RegisterRoutes(admin *gin.RouterGroup) {
	for segment, parentType := range photoParentTypes {
		photos := admin.Group("/" + segment + "/:id/photos")
		photos.GET("", h.ListPhotos(parentType))
		photos.POST("", h.UploadPhoto(parentType))
		photos.PUT("/:photo_id/main", h.SetMainPhoto(parentType))
		photos.PATCH("/:photo_id/reorder", h.ReorderPhoto(parentType))
		photos.DELETE("/:photo_id", h.DeletePhoto(parentType))
	}
}
