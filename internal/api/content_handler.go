package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/service"
)

// ContentService is the CRUD surface every translatable content service offers.
type ContentService[T any, Req any] interface {
	Get(ctx context.Context, id string) (*T, error)
	GetPublished(ctx context.Context, slug string) (*T, error)
	List(ctx context.Context, filter domain.ContentFilter) (*service.Page[T], error)
	ListPublished(ctx context.Context, filter domain.ContentFilter) (*service.Page[T], error)
	Create(ctx context.Context, req Req) (*T, error)
	Update(ctx context.Context, id string, req Req) (*T, error)
	Delete(ctx context.Context, id string) error
}

type pageFunc[T any] func(ctx context.Context, filter domain.ContentFilter) (*service.Page[T], error)

// contentHandler implements the request plumbing shared by the content
// handlers. The exported, documented endpoints live on the typed handlers.
type contentHandler[T any, Req any, Resp any] struct {
	*BaseHandler
	service ContentService[T, Req]
	render  func(*T, dto.Localization) Resp
}

func (h *contentHandler[T, Req, Resp]) respondPage(c *gin.Context, page *service.Page[T], loc dto.Localization) {
	c.JSON(http.StatusOK, dto.ListResponse[Resp]{
		Data: dto.MapList(page.Items, func(item *T) Resp { return h.render(item, loc) }),
		Meta: dto.NewPaginationMeta(page.Page, page.PerPage, page.Total),
	})
}

func (h *contentHandler[T, Req, Resp]) list(c *gin.Context, aud audience, fetch pageFunc[T]) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	ctx := h.RequestCtx(c)
	page, err := fetch(ctx, filter)
	if err != nil {
		respondError(c, err, aud)
		return
	}
	h.respondPage(c, page, h.Localization(ctx, aud == adminAudience))
}

func (h *contentHandler[T, Req, Resp]) listPublished(c *gin.Context) {
	h.list(c, publicAudience, h.service.ListPublished)
}

func (h *contentHandler[T, Req, Resp]) listAll(c *gin.Context) {
	h.list(c, adminAudience, h.service.List)
}

func (h *contentHandler[T, Req, Resp]) getPublished(c *gin.Context) {
	ctx := h.RequestCtx(c)
	record, err := h.service.GetPublished(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err, publicAudience)
		return
	}
	c.JSON(http.StatusOK, h.render(record, h.Localization(ctx, false)))
}

func (h *contentHandler[T, Req, Resp]) get(c *gin.Context) {
	ctx := h.RequestCtx(c)
	record, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}
	c.JSON(http.StatusOK, h.render(record, h.Localization(ctx, true)))
}

func (h *contentHandler[T, Req, Resp]) create(c *gin.Context) {
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := h.RequestCtx(c)
	record, err := h.service.Create(ctx, req)
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}
	c.JSON(http.StatusCreated, h.render(record, h.Localization(ctx, true)))
}

func (h *contentHandler[T, Req, Resp]) update(c *gin.Context) {
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := h.RequestCtx(c)
	record, err := h.service.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err, adminAudience)
		return
	}
	c.JSON(http.StatusOK, h.render(record, h.Localization(ctx, true)))
}

func (h *contentHandler[T, Req, Resp]) delete(c *gin.Context) {
	if err := h.service.Delete(h.RequestCtx(c), c.Param("id")); err != nil {
		respondError(c, err, adminAudience)
		return
	}
	c.Status(http.StatusNoContent)
}
