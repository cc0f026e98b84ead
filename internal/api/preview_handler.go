package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/service"
)

//go:generate mockery --name PreviewService --inpackage --testonly
type PreviewService interface {
	Issue(ctx context.Context, contentType, contentID string) (*service.PreviewLink, error)
	Resolve(ctx context.Context, token string) (string, domain.Record, error)
}

type PreviewHandler struct {
	*BaseHandler
	service PreviewService
}

func NewPreviewHandler(service PreviewService) *PreviewHandler {
	return &PreviewHandler{service: service}
}

// IssuePreview godoc
// @Summary Issue a preview link
// @Description Signs a short lived token that shows one record regardless of its status
// @Tags admin-preview
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PreviewRequest true "Record to preview"
// @Success 201 {object} dto.PreviewResponse
// @Failure 403 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /admin/preview [post]
func (h *PreviewHandler) IssuePreview(c *gin.Context) {
	var req dto.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	link, err := h.service.Issue(h.RequestCtx(c), req.ContentType, req.ContentID)
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}

	c.JSON(http.StatusCreated, dto.PreviewResponse{
		Token:     link.Token,
		URL:       link.URL,
		ExpiresAt: link.ExpiresAt,
	})
}

// GetPreview godoc
// @Summary Show previewed content
// @Description Returns the record of a valid preview token of the resolved tenant
// @Tags preview
// @Produce json
// @Param token query string true "Preview token"
// @Param locale query string false "Response locale"
// @Success 200 {object} dto.PreviewContentResponse
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /preview [get]
func (h *PreviewHandler) GetPreview(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "Preview token is required"})
		return
	}

	ctx := h.RequestCtx(c)
	contentType, record, err := h.service.Resolve(ctx, token)
	if err != nil {
		respondError(c, err, publicAudience)
		return
	}

	c.JSON(http.StatusOK, dto.PreviewContentResponse{
		ContentType: contentType,
		Content:     renderRecord(record, h.Localization(ctx, false)),
	})
}

func renderRecord(record domain.Record, loc dto.Localization) any {
	switch r := record.(type) {
	case domain.Listing:
		return dto.FromListing(&r, loc)
	case domain.ListingComplex:
		return dto.FromListingComplex(&r, loc)
	case domain.BlogPost:
		return dto.FromBlogPost(&r, loc)
	case domain.ClubStory:
		return dto.FromClubStory(&r, loc)
	default:
		return record
	}
}
