package handler

import (
	salesapp "github.com/fcinventory/backend/internal/application/sales"
	"github.com/fcinventory/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles sale endpoints
type SaleHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *salesapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List godoc
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Param        staff_id query int false "Staff filter"
// @Param        product_id query int false "Product filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]salesapp.SaleResponse,meta=dto.Meta}
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter salesapp.SaleListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	sales, total, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, sales, total, page(filter.Page), pageSize(filter.PageSize, dto.DefaultPageSize))
}

// Create godoc
// @Summary      Record a sale
// @Description  sold_price is resolved from the product's current prices. A repeated Idempotency-Key is refused with 409.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client generated key"
// @Param        request body salesapp.CreateSaleRequest true "Sale"
// @Success      201 {object} dto.Response{data=salesapp.SaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req salesapp.CreateSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// GetByID godoc
// @Summary      Get sale by ID
// @Tags         sales
// @Produce      json
// @Param        id path int true "Sale ID"
// @Success      200 {object} dto.Response{data=salesapp.SaleResponse}
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Update godoc
// @Summary      Update a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path int true "Sale ID"
// @Param        request body salesapp.UpdateSaleRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=salesapp.SaleResponse}
// @Router       /sales/{id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req salesapp.UpdateSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Delete godoc
// @Summary      Delete a sale
// @Tags         sales
// @Param        id path int true "Sale ID"
// @Success      204
// @Router       /sales/{id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.saleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
