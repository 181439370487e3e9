package models

import (
	"time"

	"github.com/fcinventory/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// StaffModel is the persistence model for the Staff domain entity.
type StaffModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (StaffModel) TableName() string {
	return "staff"
}

// ToDomain converts the persistence model to a domain Staff entity.
func (m *StaffModel) ToDomain() *sales.Staff {
	return &sales.Staff{ID: m.ID, Name: m.Name}
}

// FromDomain populates the persistence model from a domain Staff entity.
func (m *StaffModel) FromDomain(s *sales.Staff) {
	m.ID = s.ID
	m.Name = s.Name
}

// SaleModel is the persistence model for the Sale domain entity.
type SaleModel struct {
	ID           int64 `gorm:"primaryKey;autoIncrement"`
	Quantity     *int
	Date         *time.Time          `gorm:"index"`
	SpecialPrice decimal.NullDecimal `gorm:"type:numeric"`
	UseListPrice bool                `gorm:"not null;default:false"`
	Notes        string              `gorm:"type:text;not null;default:''"`
	ProductID    int64               `gorm:"not null;index"`
	StaffID      *int64              `gorm:"index"`
	SoldPrice    decimal.NullDecimal `gorm:"type:numeric"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sale"
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *sales.Sale {
	return &sales.Sale{
		ID:           m.ID,
		Quantity:     m.Quantity,
		Date:         m.Date,
		SpecialPrice: m.SpecialPrice,
		UseListPrice: m.UseListPrice,
		Notes:        m.Notes,
		ProductID:    m.ProductID,
		StaffID:      m.StaffID,
		SoldPrice:    m.SoldPrice,
	}
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *sales.Sale) {
	m.ID = s.ID
	m.Quantity = s.Quantity
	m.Date = s.Date
	m.SpecialPrice = s.SpecialPrice
	m.UseListPrice = s.UseListPrice
	m.Notes = s.Notes
	m.ProductID = s.ProductID
	m.StaffID = s.StaffID
	m.SoldPrice = s.SoldPrice
}

// SaleModelFromDomain creates a new persistence model from a domain Sale entity.
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// All returns every model in dependency order, for AutoMigrate in tests.
func All() []any {
	return []any{
		&SupplierModel{},
		&TagModel{},
		&ProductModel{},
		&ProductTagModel{},
		&StaffModel{},
		&SaleModel{},
	}
}
