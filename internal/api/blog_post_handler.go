package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
)

//go:generate mockery --name BlogPostService --inpackage --testonly
type BlogPostService interface {
	ContentService[domain.BlogPost, dto.BlogPostRequest]
}

type BlogPostHandler struct {
	*contentHandler[domain.BlogPost, dto.BlogPostRequest, dto.BlogPostResponse]
}

func NewBlogPostHandler(service BlogPostService) *BlogPostHandler {
	return &BlogPostHandler{
		contentHandler: &contentHandler[domain.BlogPost, dto.BlogPostRequest, dto.BlogPostResponse]{
			service: service,
			render:  dto.FromBlogPost,
		},
	}
}

// ListBlogPosts godoc
// @Summary List published blog posts
// @Tags blog
// @Produce json
// @Param locale query string false "Response locale"
// @Param published_after query string false "RFC3339 or YYYY-MM-DD"
// @Param published_before query string false "RFC3339 or YYYY-MM-DD"
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Page size" default(20)
// @Success 200 {object} dto.ListResponse[dto.BlogPostResponse]
// @Failure 404 {object} dto.Error
// @Router /blog-posts [get]
func (h *BlogPostHandler) ListBlogPosts(c *gin.Context) {
	h.listPublished(c)
}

// GetBlogPost godoc
// @Summary Get a published blog post
// @Tags blog
// @Produce json
// @Param slug path string true "Blog post slug"
// @Success 200 {object} dto.BlogPostResponse
// @Failure 404 {object} dto.Error
// @Router /blog-posts/{slug} [get]
func (h *BlogPostHandler) GetBlogPost(c *gin.Context) {
	h.getPublished(c)
}

// AdminListBlogPosts godoc
// @Summary List blog posts
// @Tags admin-blog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse[dto.BlogPostResponse]
// @Failure 403 {object} dto.Error
// @Router /admin/blog-posts [get]
func (h *BlogPostHandler) AdminListBlogPosts(c *gin.Context) {
	h.listAll(c)
}

// AdminGetBlogPost godoc
// @Summary Get a blog post
// @Tags admin-blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog post ID"
// @Success 200 {object} dto.BlogPostResponse
// @Failure 404 {object} dto.Error
// @Router /admin/blog-posts/{id} [get]
func (h *BlogPostHandler) AdminGetBlogPost(c *gin.Context) {
	h.get(c)
}

// CreateBlogPost godoc
// @Summary Create a blog post
// @Tags admin-blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.BlogPostRequest true "Blog post"
// @Success 201 {object} dto.BlogPostResponse
// @Failure 422 {object} dto.Error
// @Router /admin/blog-posts [post]
func (h *BlogPostHandler) CreateBlogPost(c *gin.Context) {
	h.create(c)
}

// UpdateBlogPost godoc
// @Summary Update a blog post
// @Tags admin-blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog post ID"
// @Param body body dto.BlogPostRequest true "Blog post"
// @Success 200 {object} dto.BlogPostResponse
// @Failure 404 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /admin/blog-posts/{id} [put]
func (h *BlogPostHandler) UpdateBlogPost(c *gin.Context) {
	h.update(c)
}

// DeleteBlogPost godoc
// @Summary Delete a blog post
// @Tags admin-blog
// @Security BearerAuth
// @Param id path string true "Blog post ID"
// @Success 204
// @Failure 404 {object} dto.Error
// @Router /admin/blog-posts/{id} [delete]
func (h *BlogPostHandler) DeleteBlogPost(c *gin.Context) {
	h.delete(c)
}
