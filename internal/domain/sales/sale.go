package sales

import (
	"time"

	"github.com/fcinventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Sale is one sale transaction.
// SoldPrice is derived and rewritten by the repository inside the save transaction.
type Sale struct {
	ID           int64
	Quantity     *int
	Date         *time.Time
	SpecialPrice decimal.NullDecimal
	UseListPrice bool
	Notes        string
	ProductID    int64
	StaffID      *int64
	SoldPrice    decimal.NullDecimal
}

// NewSale creates a sale of the given product
func NewSale(productID int64) (*Sale, error) {
	s := &Sale{}
	if err := s.SetProduct(productID); err != nil {
		return nil, err
	}
	return s, nil
}

// SetProduct changes the sold product
func (s *Sale) SetProduct(productID int64) error {
	if productID <= 0 {
		return shared.NewDomainError("INVALID_PRODUCT", "Sale must reference a product")
	}
	s.ProductID = productID
	return nil
}

// SetQuantity sets the quantity. Nil means one unit.
func (s *Sale) SetQuantity(quantity *int) error {
	if quantity != nil && *quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	s.Quantity = quantity
	return nil
}

// SetPricing sets the special price override and the list price flag
func (s *Sale) SetPricing(specialPrice decimal.NullDecimal, useListPrice bool) error {
	if specialPrice.Valid && specialPrice.Decimal.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Special price cannot be negative")
	}
	s.SpecialPrice = specialPrice
	s.UseListPrice = useListPrice
	return nil
}

// SetDate sets the sale timestamp
func (s *Sale) SetDate(date *time.Time) {
	s.Date = date
}

// AssignStaff sets or clears the selling staff member
func (s *Sale) AssignStaff(staffID *int64) {
	s.StaffID = staffID
}

// SetNotes sets free-text notes
func (s *Sale) SetNotes(notes string) {
	s.Notes = notes
}

// EffectiveQuantity returns the quantity with absent read as one
func (s *Sale) EffectiveQuantity() int64 {
	return EffectiveQuantity(s.Quantity)
}

// ResolveSoldPrice recomputes SoldPrice from the sold product's prices
func (s *Sale) ResolveSoldPrice(listPrice, sellingPrice decimal.NullDecimal) {
	s.SoldPrice = ResolvePrice(s.SpecialPrice, s.UseListPrice, listPrice, sellingPrice)
}
