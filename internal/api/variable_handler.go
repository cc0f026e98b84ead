package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/api/dto"
	"github.com/kingrain94/realty-api/internal/domain"
)

//go:generate mockery --name VariableService --inpackage --testonly
type VariableService interface {
	ContentService[domain.Variable, dto.VariableRequest]
}

type VariableHandler struct {
	*contentHandler[domain.Variable, dto.VariableRequest, dto.VariableResponse]
}

func NewVariableHandler(service VariableService) *VariableHandler {
	return &VariableHandler{
		contentHandler: &contentHandler[domain.Variable, dto.VariableRequest, dto.VariableResponse]{
			service: service,
			render:  dto.FromVariable,
		},
	}
}

// ListVariables godoc
// @Summary List site variables
// @Tags variables
// @Produce json
// @Param locale query string false "Response locale"
// @Success 200 {object} dto.ListResponse[dto.VariableResponse]
// @Router /variables [get]
func (h *VariableHandler) ListVariables(c *gin.Context) {
	h.listPublished(c)
}

// GetVariable godoc
// @Summary Get a site variable by key
// @Tags variables
// @Produce json
// @Param slug path string true "Variable key"
// @Success 200 {object} dto.VariableResponse
// @Failure 404 {object} dto.Error
// @Router /variables/{slug} [get]
func (h *VariableHandler) GetVariable(c *gin.Context) {
	h.getPublished(c)
}

// AdminListVariables godoc
// @Summary List variables
// @Tags admin-variables
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse[dto.VariableResponse]
// @Router /admin/variables [get]
func (h *VariableHandler) AdminListVariables(c *gin.Context) {
	h.listAll(c)
}

// AdminGetVariable godoc
// @Summary Get a variable
// @Tags admin-variables
// @Produce json
// @Security BearerAuth
// @Param id path string true "Variable ID"
// @Success 200 {object} dto.VariableResponse
// @Failure 404 {object} dto.Error
// @Router /admin/variables/{id} [get]
func (h *VariableHandler) AdminGetVariable(c *gin.Context) {
	h.get(c)
}

// CreateVariable godoc
// @Summary Create a variable
// @Tags admin-variables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.VariableRequest true "Variable"
// @Success 201 {object} dto.VariableResponse
// @Failure 422 {object} dto.Error
// @Router /admin/variables [post]
func (h *VariableHandler) CreateVariable(c *gin.Context) {
	h.create(c)
}

// UpdateVariable godoc
// @Summary Update a variable
// @Tags admin-variables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Variable ID"
// @Param body body dto.VariableRequest true "Variable"
// @Success 200 {object} dto.VariableResponse
// @Failure 404 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /admin/variables/{id} [put]
func (h *VariableHandler) UpdateVariable(c *gin.Context) {
	h.update(c)
}

// DeleteVariable godoc
// @Summary Delete a variable
// @Tags admin-variables
// @Security BearerAuth
// @Param id path string true "Variable ID"
// @Success 204
// @Failure 404 {object} dto.Error
// @Router /admin/variables/{id} [delete]
func (h *VariableHandler) DeleteVariable(c *gin.Context) {
	h.delete(c)
}
