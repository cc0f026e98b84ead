package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/service"
	"github.com/kingrain94/realty-api/pkg/utils"
)

//go:generate mockery --name SubscriberService --inpackage --testonly
type SubscriberService interface {
	Subscribe(ctx context.Context, req dto.SubscribeRequest) (*domain.Subscriber, error)
	Confirm(ctx context.Context, token string) (*domain.Subscriber, error)
	List(ctx context.Context, filter domain.ContentFilter) (*service.Page[domain.Subscriber], error)
	Delete(ctx context.Context, id string) error
	RequestPurge(ctx context.Context, before time.Time) (time.Time, error)
}

type SubscriberHandler struct {
	*BaseHandler
	service SubscriberService
}

func NewSubscriberHandler(service SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{service: service}
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Description Stores an unconfirmed subscriber and mails a confirmation link
// @Tags newsletter
// @Accept json
// @Produce json
// @Param body body dto.SubscribeRequest true "Subscriber"
// @Success 201 {object} dto.SubscriberResponse
// @Failure 404 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /subscribers [post]
func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	subscriber, err := h.service.Subscribe(h.RequestCtx(c), req)
	if err != nil {
		respondError(c, err, publicAudience)
		return
	}

	c.JSON(http.StatusCreated, dto.FromSubscriber(subscriber))
}

// ConfirmSubscription godoc
// @Summary Confirm a newsletter subscription
// @Tags newsletter
// @Produce json
// @Param token query string true "Confirmation token"
// @Success 200 {object} dto.SubscriberResponse
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /subscribers/confirm [get]
func (h *SubscriberHandler) ConfirmSubscription(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "Confirmation token is required"})
		return
	}

	subscriber, err := h.service.Confirm(h.RequestCtx(c), token)
	if err != nil {
		respondError(c, err, publicAudience)
		return
	}

	c.JSON(http.StatusOK, dto.FromSubscriber(subscriber))
}

// ListSubscribers godoc
// @Summary List newsletter subscribers
// @Tags admin-newsletter
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Page size" default(20)
// @Success 200 {object} dto.ListResponse[dto.SubscriberResponse]
// @Failure 403 {object} dto.Error
// @Router /admin/subscribers [get]
func (h *SubscriberHandler) ListSubscribers(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.service.List(h.RequestCtx(c), domain.ContentFilter{Page: query.Page, PageSize: query.PerPage})
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse[dto.SubscriberResponse]{
		Data: dto.MapList(page.Items, dto.FromSubscriber),
		Meta: dto.NewPaginationMeta(page.Page, page.PerPage, page.Total),
	})
}

// DeleteSubscriber godoc
// @Summary Delete a newsletter subscriber
// @Tags admin-newsletter
// @Security BearerAuth
// @Param id path string true "Subscriber ID"
// @Success 204
// @Failure 404 {object} dto.Error
// @Router /admin/subscribers/{id} [delete]
func (h *SubscriberHandler) DeleteSubscriber(c *gin.Context) {
	if err := h.service.Delete(h.RequestCtx(c), c.Param("id")); err != nil {
		respondError(c, err, adminAudience)
		return
	}

	c.Status(http.StatusNoContent)
}

// PurgeSubscribers godoc
// @Summary Purge expired unconfirmed subscribers
// @Description Queues removal of unconfirmed subscribers created before the cutoff. The cutoff is capped at the confirmation link lifetime.
// @Tags admin-newsletter
// @Produce json
// @Security BearerAuth
// @Param before query string false "Cutoff, RFC3339 or YYYY-MM-DD"
// @Success 202 {object} dto.PurgeResponse
// @Failure 403 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /admin/subscribers/purge [post]
func (h *SubscriberHandler) PurgeSubscribers(c *gin.Context) {
	var cutoff time.Time
	if raw := c.Query("before"); raw != "" {
		parsed, err := utils.ParseDate(raw, false)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, dto.Error{
				Error:  "Validation failed",
				Fields: map[string]string{"before": "must be an RFC3339 timestamp or YYYY-MM-DD date"},
			})
			return
		}
		cutoff = parsed
	}

	before, err := h.service.RequestPurge(h.RequestCtx(c), cutoff)
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}

	c.JSON(http.StatusAccepted, dto.PurgeResponse{Before: before, Status: "queued"})
}
