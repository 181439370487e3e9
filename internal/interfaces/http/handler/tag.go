package handler

import (
	catalogapp "github.com/fcinventory/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// TagHandler handles tag endpoints
type TagHandler struct {
	BaseHandler
	tagService *catalogapp.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService *catalogapp.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List godoc
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Param        search query string false "Search term"
// @Success      200 {object} dto.Response{data=[]catalogapp.TagResponse,meta=dto.Meta}
// @Router       /tags [get]
func (h *TagHandler) List(c *gin.Context) {
	var filter catalogapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	tags, total, err := h.tagService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, tags, total, page(filter.Page), pageSize(filter.PageSize, catalogapp.TagDefaultPageSize))
}

// Create godoc
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateTagRequest true "Tag"
// @Success      201 {object} dto.Response{data=catalogapp.TagResponse}
// @Router       /tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req catalogapp.CreateTagRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tag)
}

// GetByID godoc
// @Summary      Get tag by ID
// @Tags         tags
// @Produce      json
// @Param        id path int true "Tag ID"
// @Success      200 {object} dto.Response{data=catalogapp.TagResponse}
// @Router       /tags/{id} [get]
func (h *TagHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	tag, err := h.tagService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tag)
}

// Update godoc
// @Summary      Rename a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id path int true "Tag ID"
// @Param        request body catalogapp.UpdateTagRequest true "Tag"
// @Success      200 {object} dto.Response{data=catalogapp.TagResponse}
// @Router       /tags/{id} [put]
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req catalogapp.UpdateTagRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tag)
}

// Delete godoc
// @Summary      Delete a tag
// @Description  Removes the tag and its product links
// @Tags         tags
// @Param        id path int true "Tag ID"
// @Success      204
// @Router       /tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.tagService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
