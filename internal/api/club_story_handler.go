package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
)

//go:generate mockery --name ClubStoryService --inpackage --testonly
type ClubStoryService interface {
	ContentService[domain.ClubStory, dto.ClubStoryRequest]
}

type ClubStoryHandler struct {
	*contentHandler[domain.ClubStory, dto.ClubStoryRequest, dto.ClubStoryResponse]
}

func NewClubStoryHandler(service ClubStoryService) *ClubStoryHandler {
	return &ClubStoryHandler{
		contentHandler: &contentHandler[domain.ClubStory, dto.ClubStoryRequest, dto.ClubStoryResponse]{
			service: service,
			render:  dto.FromClubStory,
		},
	}
}

// ListClubStories godoc
// @Summary List published club stories
// @Tags club-stories
// @Produce json
// @Param locale query string false "Response locale"
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Page size" default(20)
// @Success 200 {object} dto.ListResponse[dto.ClubStoryResponse]
// @Failure 404 {object} dto.Error
// @Router /club-stories [get]
func (h *ClubStoryHandler) ListClubStories(c *gin.Context) {
	h.listPublished(c)
}

// GetClubStory godoc
// @Summary Get a published club story
// @Tags club-stories
// @Produce json
// @Param slug path string true "Club story slug"
// @Success 200 {object} dto.ClubStoryResponse
// @Failure 404 {object} dto.Error
// @Router /club-stories/{slug} [get]
func (h *ClubStoryHandler) GetClubStory(c *gin.Context) {
	h.getPublished(c)
}

// AdminListClubStories godoc
// @Summary List club stories
// @Tags admin-club-stories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse[dto.ClubStoryResponse]
// @Router /admin/club-stories [get]
func (h *ClubStoryHandler) AdminListClubStories(c *gin.Context) {
	h.listAll(c)
}

// AdminGetClubStory godoc
// @Summary Get a club story
// @Tags admin-club-stories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club story ID"
// @Success 200 {object} dto.ClubStoryResponse
// @Failure 404 {object} dto.Error
// @Router /admin/club-stories/{id} [get]
func (h *ClubStoryHandler) AdminGetClubStory(c *gin.Context) {
	h.get(c)
}

// CreateClubStory godoc
// @Summary Create a club story
// @Tags admin-club-stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ClubStoryRequest true "Club story"
// @Success 201 {object} dto.ClubStoryResponse
// @Failure 422 {object} dto.Error
// @Router /admin/club-stories [post]
func (h *ClubStoryHandler) CreateClubStory(c *gin.Context) {
	h.create(c)
}

// UpdateClubStory godoc
// @Summary Update a club story
// @Tags admin-club-stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Club story ID"
// @Param body body dto.ClubStoryRequest true "Club story"
// @Success 200 {object} dto.ClubStoryResponse
// @Failure 404 {object} dto.Error
// @Router /admin/club-stories/{id} [put]
func (h *ClubStoryHandler) UpdateClubStory(c *gin.Context) {
	h.update(c)
}

// DeleteClubStory godoc
// @Summary Delete a club story
// @Tags admin-club-stories
// @Security BearerAuth
// @Param id path string true "Club story ID"
// @Success 204
// @Failure 404 {object} dto.Error
// @Router /admin/club-stories/{id} [delete]
func (h *ClubStoryHandler) DeleteClubStory(c *gin.Context) {
	h.delete(c)
}
