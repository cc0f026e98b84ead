package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
)

//go:generate mockery --name ScrapeService --inpackage --testonly
type ScrapeService interface {
	Enqueue(ctx context.Context, req dto.ScrapeRequest) (*domain.ScrapeJob, error)
}

type ScrapeHandler struct {
	*BaseHandler
	service ScrapeService
}

func NewScrapeHandler(service ScrapeService) *ScrapeHandler {
	return &ScrapeHandler{service: service}
}

// EnqueueScrape godoc
// @Summary Import a listing from the source site
// @Description Queues a page of the tenant's source site for import. Progress is streamed as events.
// @Tags admin-scrape
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ScrapeRequest true "Page to import"
// @Success 202 {object} dto.ScrapeResponse
// @Failure 403 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /admin/scrape [post]
func (h *ScrapeHandler) EnqueueScrape(c *gin.Context) {
	var req dto.ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	job, err := h.service.Enqueue(h.RequestCtx(c), req)
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}

	c.JSON(http.StatusAccepted, dto.ScrapeResponse{JobID: job.ID, URL: job.URL, Status: "queued"})
}
