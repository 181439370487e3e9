package catalog

import (
	"strings"

	"github.com/fcinventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable item in the catalog.
// Fullname is derived and rewritten by the repository on every save of the product or its supplier.
type Product struct {
	ID              int64
	Code            string
	Name            string
	ListPrice       decimal.NullDecimal // cost
	SellingPrice    decimal.NullDecimal // standard retail
	QuantityPerUnit *int
	Description     string
	InitialVolume   *int
	SupplierID      *int64
	Discontinued    bool
	Tags            []Tag
	Fullname        *string

	// SupplierName is populated on reads that join the supplier
	SupplierName *string
}

// NewProduct creates a new product
func NewProduct(code, name string) (*Product, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	return &Product{Code: code, Name: name}, nil
}

// Update updates the product's basic information
func (p *Product) Update(code, name, description string) error {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if err := validateProductCode(code); err != nil {
		return err
	}
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Code = code
	p.Name = name
	p.Description = description
	return nil
}

// SetPrices sets list and selling price. Either may be null.
func (p *Product) SetPrices(listPrice, sellingPrice decimal.NullDecimal) error {
	if listPrice.Valid && listPrice.Decimal.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}
	if sellingPrice.Valid && sellingPrice.Decimal.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	p.ListPrice = listPrice
	p.SellingPrice = sellingPrice
	return nil
}

// SetPackaging sets quantity per unit and the initial stock volume
func (p *Product) SetPackaging(quantityPerUnit, initialVolume *int) error {
	if quantityPerUnit != nil && *quantityPerUnit < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity per unit cannot be negative")
	}
	if initialVolume != nil && *initialVolume < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Initial volume cannot be negative")
	}
	p.QuantityPerUnit = quantityPerUnit
	p.InitialVolume = initialVolume
	return nil
}

// AssignSupplier sets or clears the owning supplier
func (p *Product) AssignSupplier(supplierID *int64) {
	p.SupplierID = supplierID
}

// SetTags replaces the product's tags
func (p *Product) SetTags(tags []Tag) {
	p.Tags = tags
}

// TagIDs returns the ids of the product's tags
func (p *Product) TagIDs() []int64 {
	ids := make([]int64, 0, len(p.Tags))
	for _, t := range p.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// Discontinue marks the product as no longer sold
func (p *Product) Discontinue() {
	p.Discontinued = true
}

// Reinstate clears the discontinued flag
func (p *Product) Reinstate() {
	p.Discontinued = false
}

// RefreshFullname recomputes the display string from the given supplier name
func (p *Product) RefreshFullname(supplierName *string) {
	p.SupplierName = supplierName
	p.Fullname = ComposeFullname(supplierName, p.Name, p.ListPrice, p.SellingPrice)
}

// DisplayName returns the fullname, or the bare name when no fullname could be composed
func (p *Product) DisplayName() string {
	if p.Fullname != nil {
		return *p.Fullname
	}
	return p.Name
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 255 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 255 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 255 characters")
	}
	return nil
}
