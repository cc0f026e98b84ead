package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
)

//go:generate mockery --name TestimonialService --inpackage --testonly
type TestimonialService interface {
	ContentService[domain.Testimonial, dto.TestimonialRequest]
}

type TestimonialHandler struct {
	*contentHandler[domain.Testimonial, dto.TestimonialRequest, dto.TestimonialResponse]
}

func NewTestimonialHandler(service TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{
		contentHandler: &contentHandler[domain.Testimonial, dto.TestimonialRequest, dto.TestimonialResponse]{
			service: service,
			render:  dto.FromTestimonial,
		},
	}
}

// ListTestimonials godoc
// @Summary List published testimonials
// @Tags testimonials
// @Produce json
// @Param locale query string false "Response locale"
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Page size" default(20)
// @Success 200 {object} dto.ListResponse[dto.TestimonialResponse]
// @Failure 404 {object} dto.Error
// @Router /testimonials [get]
func (h *TestimonialHandler) ListTestimonials(c *gin.Context) {
	h.listPublished(c)
}

// AdminListTestimonials godoc
// @Summary List testimonials
// @Tags admin-testimonials
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse[dto.TestimonialResponse]
// @Router /admin/testimonials [get]
func (h *TestimonialHandler) AdminListTestimonials(c *gin.Context) {
	h.listAll(c)
}

// AdminGetTestimonial godoc
// @Summary Get a testimonial
// @Tags admin-testimonials
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Success 200 {object} dto.TestimonialResponse
// @Failure 404 {object} dto.Error
// @Router /admin/testimonials/{id} [get]
func (h *TestimonialHandler) AdminGetTestimonial(c *gin.Context) {
	h.get(c)
}

// CreateTestimonial godoc
// @Summary Create a testimonial
// @Tags admin-testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TestimonialRequest true "Testimonial"
// @Success 201 {object} dto.TestimonialResponse
// @Failure 422 {object} dto.Error
// @Router /admin/testimonials [post]
func (h *TestimonialHandler) CreateTestimonial(c *gin.Context) {
	h.create(c)
}

// UpdateTestimonial godoc
// @Summary Update a testimonial
// @Tags admin-testimonials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Param body body dto.TestimonialRequest true "Testimonial"
// @Success 200 {object} dto.TestimonialResponse
// @Failure 404 {object} dto.Error
// @Router /admin/testimonials/{id} [put]
func (h *TestimonialHandler) UpdateTestimonial(c *gin.Context) {
	h.update(c)
}

// DeleteTestimonial godoc
// @Summary Delete a testimonial
// @Tags admin-testimonials
// @Security BearerAuth
// @Param id path string true "Testimonial ID"
// @Success 204
// @Failure 404 {object} dto.Error
// @Router /admin/testimonials/{id} [delete]
func (h *TestimonialHandler) DeleteTestimonial(c *gin.Context) {
	h.delete(c)
}
