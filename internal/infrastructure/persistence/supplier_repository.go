package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/fcinventory/backend/internal/domain/catalog"
	"github.com/fcinventory/backend/internal/domain/shared"
	"github.com/fcinventory/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSupplierRepository implements catalog.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *GormSupplierRepository) WithTx(tx *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: tx}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id int64) (*catalog.Supplier, error) {
	var m models.SupplierModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds all suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Supplier, error) {
	var rows []models.SupplierModel
	query := applyPaging(r.search(r.db.WithContext(ctx).Model(&models.SupplierModel{}), filter), "supplier", filter, SupplierSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]catalog.Supplier, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

// Count counts suppliers matching the filter
func (r *GormSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.search(r.db.WithContext(ctx).Model(&models.SupplierModel{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks whether another supplier already uses name
func (r *GormSupplierRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SupplierModel{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a supplier, then rebuilds the fullname of each of its products
// in the same transaction
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *catalog.Supplier) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := &models.SupplierModel{}
		m.FromDomain(supplier)
		if err := tx.Save(m).Error; err != nil {
			return fmt.Errorf("save supplier: %w", err)
		}
		supplier.ID = m.ID

		var products []models.ProductModel
		if err := tx.Where("supplier_id = ?", m.ID).Find(&products).Error; err != nil {
			return fmt.Errorf("load supplier products: %w", err)
		}
		name := m.Name
		for i := range products {
			p := products[i].ToDomain()
			p.RefreshFullname(&name)
			if err := writeFullname(tx, p.ID, p.Fullname); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormSupplierRepository) search(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search == "" {
		return query
	}
	p := likePattern(filter.Search)
	return query.Where(
		"LOWER(supplier.name) LIKE ? OR LOWER(supplier.contact) LIKE ? OR LOWER(supplier.email) LIKE ? OR LOWER(supplier.phone) LIKE ? OR LOWER(supplier.notes) LIKE ?",
		p, p, p, p, p)
}

func writeFullname(tx *gorm.DB, productID int64, fullname *string) error {
	if err := tx.Model(&models.ProductModel{}).Where("id = ?", productID).Update("fullname", fullname).Error; err != nil {
		return fmt.Errorf("update fullname of product %d: %w", productID, err)
	}
	return nil
}
