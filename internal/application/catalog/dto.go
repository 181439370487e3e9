package catalog

import (
	"github.com/fcinventory/backend/internal/domain/catalog"
	"github.com/fcinventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	Contact string `json:"contact" binding:"max=255"`
	Email   string `json:"email" binding:"omitempty,email,max=255"`
	Phone   string `json:"phone" binding:"max=64"`
	Notes   string `json:"notes" binding:"max=2000"`
}

// UpdateSupplierRequest represents a request to update a supplier. Nil fields are left unchanged.
type UpdateSupplierRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Contact *string `json:"contact" binding:"omitempty,max=255"`
	Email   *string `json:"email" binding:"omitempty,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=64"`
	Notes   *string `json:"notes" binding:"omitempty,max=2000"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// ListFilter represents the common list query of the catalog endpoints
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductListFilter adds product specific filters to ListFilter
type ProductListFilter struct {
	ListFilter
	SupplierID   *int64 `form:"supplier_id"`
	TagID        *int64 `form:"tag_id"`
	Discontinued *bool  `form:"discontinued"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Code            string           `json:"code" binding:"required,min=1,max=255"`
	Name            string           `json:"name" binding:"required,min=1,max=255"`
	Description     string           `json:"description" binding:"max=2000"`
	ListPrice       *decimal.Decimal `json:"list_price"`
	SellingPrice    *decimal.Decimal `json:"selling_price"`
	QuantityPerUnit *int             `json:"quantity_per_unit" binding:"omitempty,min=0"`
	InitialVolume   *int             `json:"initial_volume" binding:"omitempty,min=0"`
	SupplierID      *int64           `json:"supplier_id"`
	Discontinued    bool             `json:"discontinued"`
	TagIDs          []int64          `json:"tag_ids"`
}

// UpdateProductRequest represents a request to update a product. Nil fields are left unchanged;
// ClearSupplier detaches the supplier.
type UpdateProductRequest struct {
	Code            *string          `json:"code" binding:"omitempty,min=1,max=255"`
	Name            *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description     *string          `json:"description" binding:"omitempty,max=2000"`
	ListPrice       *decimal.Decimal `json:"list_price"`
	SellingPrice    *decimal.Decimal `json:"selling_price"`
	QuantityPerUnit *int             `json:"quantity_per_unit" binding:"omitempty,min=0"`
	InitialVolume   *int             `json:"initial_volume" binding:"omitempty,min=0"`
	SupplierID      *int64           `json:"supplier_id"`
	ClearSupplier   bool             `json:"clear_supplier"`
	Discontinued    *bool            `json:"discontinued"`
	TagIDs          *[]int64         `json:"tag_ids"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                  int64               `json:"id"`
	Code                string              `json:"code"`
	Name                string              `json:"name"`
	Fullname            *string             `json:"fullname"`
	DisplayName         string              `json:"display_name"`
	Description         string              `json:"description"`
	ListPrice           decimal.NullDecimal `json:"list_price"`
	SellingPrice        decimal.NullDecimal `json:"selling_price"`
	ListPriceDisplay    string              `json:"list_price_display"`
	SellingPriceDisplay string              `json:"selling_price_display"`
	QuantityPerUnit     *int                `json:"quantity_per_unit"`
	InitialVolume       *int                `json:"initial_volume"`
	SupplierID          *int64              `json:"supplier_id"`
	SupplierName        *string             `json:"supplier_name"`
	Discontinued        bool                `json:"discontinued"`
	Tags                []TagResponse       `json:"tags"`
}

// CreateTagRequest represents a request to create a tag
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

// UpdateTagRequest represents a request to rename a tag
type UpdateTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ToSupplierResponse converts a domain Supplier to SupplierResponse
func ToSupplierResponse(s *catalog.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:      s.ID,
		Name:    s.Name,
		Contact: s.Contact,
		Email:   s.Email,
		Phone:   s.Phone,
		Notes:   s.Notes,
	}
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	tags := make([]TagResponse, 0, len(p.Tags))
	for i := range p.Tags {
		tags = append(tags, ToTagResponse(&p.Tags[i]))
	}
	return ProductResponse{
		ID:                  p.ID,
		Code:                p.Code,
		Name:                p.Name,
		Fullname:            p.Fullname,
		DisplayName:         p.DisplayName(),
		Description:         p.Description,
		ListPrice:           p.ListPrice,
		SellingPrice:        p.SellingPrice,
		ListPriceDisplay:    FormatPrice(p.ListPrice),
		SellingPriceDisplay: FormatPrice(p.SellingPrice),
		QuantityPerUnit:     p.QuantityPerUnit,
		InitialVolume:       p.InitialVolume,
		SupplierID:          p.SupplierID,
		SupplierName:        p.SupplierName,
		Discontinued:        p.Discontinued,
		Tags:                tags,
	}
}

// ToTagResponse converts a domain Tag to TagResponse
func ToTagResponse(t *catalog.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

// toDomainFilter fills list defaults and converts to a repository filter
func (f ListFilter) toDomainFilter(defaultPageSize int) shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	filter.PageSize = defaultPageSize
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
	return filter
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
