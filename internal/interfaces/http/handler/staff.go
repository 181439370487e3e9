package handler

import (
	salesapp "github.com/fcinventory/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
)

// StaffHandler handles staff endpoints
type StaffHandler struct {
	BaseHandler
	staffService *salesapp.StaffService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(staffService *salesapp.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// List godoc
// @Summary      List staff members
// @Tags         staff
// @Produce      json
// @Param        search query string false "Search term"
// @Success      200 {object} dto.Response{data=[]salesapp.StaffResponse,meta=dto.Meta}
// @Router       /staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	var filter salesapp.StaffListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	staff, total, err := h.staffService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, staff, total, page(filter.Page), pageSize(filter.PageSize, salesapp.StaffDefaultPageSize))
}

// Create godoc
// @Summary      Create a staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        request body salesapp.StaffRequest true "Staff member"
// @Success      201 {object} dto.Response{data=salesapp.StaffResponse}
// @Router       /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req salesapp.StaffRequest
	if !h.bindJSON(c, &req) {
		return
	}

	staff, err := h.staffService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, staff)
}

// GetByID godoc
// @Summary      Get staff member by ID
// @Tags         staff
// @Produce      json
// @Param        id path int true "Staff ID"
// @Success      200 {object} dto.Response{data=salesapp.StaffResponse}
// @Router       /staff/{id} [get]
func (h *StaffHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	staff, err := h.staffService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, staff)
}

// Update godoc
// @Summary      Rename a staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id path int true "Staff ID"
// @Param        request body salesapp.StaffRequest true "Staff member"
// @Success      200 {object} dto.Response{data=salesapp.StaffResponse}
// @Router       /staff/{id} [put]
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req salesapp.StaffRequest
	if !h.bindJSON(c, &req) {
		return
	}

	staff, err := h.staffService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, staff)
}

// Delete godoc
// @Summary      Delete a staff member
// @Description  Refused with 422 while sales reference the staff member
// @Tags         staff
// @Param        id path int true "Staff ID"
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /staff/{id} [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.staffService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
