package sales

import (
	"time"

	"github.com/fcinventory/backend/internal/domain/sales"
	"github.com/fcinventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest represents a request to record a sale
type CreateSaleRequest struct {
	ProductID    int64            `json:"product_id" binding:"required,min=1"`
	Quantity     *int             `json:"quantity" binding:"omitempty,min=0"`
	Date         *time.Time       `json:"date"`
	SpecialPrice *decimal.Decimal `json:"special_price"`
	UseListPrice bool             `json:"use_list_price"`
	StaffID      *int64           `json:"staff_id"`
	Notes        string           `json:"notes" binding:"max=2000"`
}

// UpdateSaleRequest represents a request to update a sale. Nil fields are left unchanged;
// the Clear flags null the matching column.
type UpdateSaleRequest struct {
	ProductID         *int64           `json:"product_id" binding:"omitempty,min=1"`
	Quantity          *int             `json:"quantity" binding:"omitempty,min=0"`
	Date              *time.Time       `json:"date"`
	SpecialPrice      *decimal.Decimal `json:"special_price"`
	ClearSpecialPrice bool             `json:"clear_special_price"`
	UseListPrice      *bool            `json:"use_list_price"`
	StaffID           *int64           `json:"staff_id"`
	ClearStaff        bool             `json:"clear_staff"`
	Notes             *string          `json:"notes" binding:"omitempty,max=2000"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID           int64               `json:"id"`
	ProductID    int64               `json:"product_id"`
	Quantity     *int                `json:"quantity"`
	Date         *time.Time          `json:"date"`
	SpecialPrice decimal.NullDecimal `json:"special_price"`
	UseListPrice bool                `json:"use_list_price"`
	SoldPrice    decimal.NullDecimal `json:"sold_price"`
	StaffID      *int64              `json:"staff_id"`
	Notes        string              `json:"notes"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	Search    string `form:"search"`
	StaffID   *int64 `form:"staff_id"`
	ProductID *int64 `form:"product_id"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// StaffRequest represents a request to create or rename a staff member
type StaffRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// StaffResponse represents a staff member in API responses
type StaffResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StaffListFilter represents filter options for the staff list
type StaffListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *sales.Sale) SaleResponse {
	return SaleResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		Quantity:     s.Quantity,
		Date:         s.Date,
		SpecialPrice: s.SpecialPrice,
		UseListPrice: s.UseListPrice,
		SoldPrice:    s.SoldPrice,
		StaffID:      s.StaffID,
		Notes:        s.Notes,
	}
}

// ToStaffResponse converts a domain Staff to StaffResponse
func ToStaffResponse(s *sales.Staff) StaffResponse {
	return StaffResponse{ID: s.ID, Name: s.Name}
}

func (f SaleListFilter) toDomainFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	if f.StaffID != nil {
		filter.Filters["staff_id"] = *f.StaffID
	}
	if f.ProductID != nil {
		filter.Filters["product_id"] = *f.ProductID
	}
	return filter
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
