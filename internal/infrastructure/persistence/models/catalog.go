package models

import (
	"github.com/fcinventory/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// SupplierModel is the persistence model for the Supplier domain entity.
type SupplierModel struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	Name    string `gorm:"type:varchar(255);not null;uniqueIndex:idx_supplier_name"`
	Contact string `gorm:"type:varchar(255);not null;default:''"`
	Email   string `gorm:"type:varchar(255);not null;default:''"`
	Phone   string `gorm:"type:varchar(64);not null;default:''"`
	Notes   string `gorm:"type:text;not null;default:''"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "supplier"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *catalog.Supplier {
	return &catalog.Supplier{
		ID:      m.ID,
		Name:    m.Name,
		Contact: m.Contact,
		Email:   m.Email,
		Phone:   m.Phone,
		Notes:   m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Supplier entity.
func (m *SupplierModel) FromDomain(s *catalog.Supplier) {
	m.ID = s.ID
	m.Name = s.Name
	m.Contact = s.Contact
	m.Email = s.Email
	m.Phone = s.Phone
	m.Notes = s.Notes
}

// TagModel is the persistence model for the Tag domain entity.
type TagModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(64);not null"`
}

// TableName returns the table name for GORM
func (TagModel) TableName() string {
	return "tag"
}

// ToDomain converts the persistence model to a domain Tag entity.
func (m *TagModel) ToDomain() *catalog.Tag {
	return &catalog.Tag{ID: m.ID, Name: m.Name}
}

// FromDomain populates the persistence model from a domain Tag entity.
func (m *TagModel) FromDomain(t *catalog.Tag) {
	m.ID = t.ID
	m.Name = t.Name
}

// ProductTagModel is one row of the product/tag link table.
type ProductTagModel struct {
	ProductID int64 `gorm:"primaryKey"`
	TagID     int64 `gorm:"primaryKey;index"`
}

// TableName returns the table name for GORM
func (ProductTagModel) TableName() string {
	return "product_tags"
}

// ProductModel is the persistence model for the Product domain entity.
// Supplier and Tags are read-side associations; repositories write them explicitly.
type ProductModel struct {
	ID              int64               `gorm:"primaryKey;autoIncrement"`
	Code            string              `gorm:"type:varchar(255);not null;uniqueIndex:idx_product_code"`
	Name            string              `gorm:"type:varchar(255);not null;uniqueIndex:idx_product_name"`
	ListPrice       decimal.NullDecimal `gorm:"type:numeric"`
	SellingPrice    decimal.NullDecimal `gorm:"type:numeric"`
	QuantityPerUnit *int
	Description     string `gorm:"type:text;not null;default:''"`
	InitialVolume   *int
	SupplierID      *int64  `gorm:"index"`
	Discontinued    bool    `gorm:"not null;default:false"`
	Fullname        *string `gorm:"type:varchar(1000)"`

	Supplier *SupplierModel `gorm:"foreignKey:SupplierID"`
	Tags     []TagModel     `gorm:"many2many:product_tags;joinForeignKey:ProductID;joinReferences:TagID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "product"
}

// ToDomain converts the persistence model to a domain Product entity.
// SupplierName and Tags are filled when the associations were preloaded.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		ID:              m.ID,
		Code:            m.Code,
		Name:            m.Name,
		ListPrice:       m.ListPrice,
		SellingPrice:    m.SellingPrice,
		QuantityPerUnit: m.QuantityPerUnit,
		Description:     m.Description,
		InitialVolume:   m.InitialVolume,
		SupplierID:      m.SupplierID,
		Discontinued:    m.Discontinued,
		Fullname:        m.Fullname,
		Tags:            make([]catalog.Tag, 0, len(m.Tags)),
	}
	if m.Supplier != nil {
		name := m.Supplier.Name
		p.SupplierName = &name
	}
	for i := range m.Tags {
		p.Tags = append(p.Tags, *m.Tags[i].ToDomain())
	}
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
// Associations are left empty.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.ID = p.ID
	m.Code = p.Code
	m.Name = p.Name
	m.ListPrice = p.ListPrice
	m.SellingPrice = p.SellingPrice
	m.QuantityPerUnit = p.QuantityPerUnit
	m.Description = p.Description
	m.InitialVolume = p.InitialVolume
	m.SupplierID = p.SupplierID
	m.Discontinued = p.Discontinued
	m.Fullname = p.Fullname
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
