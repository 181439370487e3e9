package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/fcinventory/backend/internal/domain/catalog"
	"github.com/fcinventory/backend/internal/domain/shared"
	"github.com/fcinventory/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: tx}
}

func (r *GormProductRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tag.name ASC") })
}

// FindByID finds a product with its supplier and tags loaded
func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.withAssociations(ctx).First(&m, "product.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var rows []models.ProductModel
	query := r.applyFilter(r.withAssociations(ctx).Model(&models.ProductModel{}), filter)
	query = applyPaging(query, "product", filter, ProductSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListAll returns every product ordered by id, without associations
func (r *GormProductRepository) ListAll(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// ExistsByCode checks whether another product already uses code
func (r *GormProductRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	return r.exists(ctx, "code", code, excludeID)
}

// ExistsByName checks whether another product already uses name
func (r *GormProductRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return r.exists(ctx, "name", name, excludeID)
}

func (r *GormProductRepository) exists(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where(column+" = ? AND id <> ?", value, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a product in one transaction: the supplier name is read,
// the fullname recomputed, the row upserted and the tag links replaced.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		supplierName, err := lookupSupplierName(tx, product.SupplierID)
		if err != nil {
			return err
		}
		product.RefreshFullname(supplierName)

		m := models.ProductModelFromDomain(product)
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return fmt.Errorf("save product: %w", err)
		}
		product.ID = m.ID

		if err := tx.Where("product_id = ?", m.ID).Delete(&models.ProductTagModel{}).Error; err != nil {
			return fmt.Errorf("clear product tags: %w", err)
		}
		if len(product.Tags) == 0 {
			return nil
		}
		links := make([]models.ProductTagModel, 0, len(product.Tags))
		seen := make(map[int64]bool, len(product.Tags))
		for _, id := range product.TagIDs() {
			if seen[id] {
				continue
			}
			seen[id] = true
			links = append(links, models.ProductTagModel{ProductID: m.ID, TagID: id})
		}
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("link product tags: %w", err)
		}
		return nil
	})
}

// RecomputeFullnames rewrites the fullname of every product from current supplier names
func (r *GormProductRepository) RecomputeFullnames(ctx context.Context) (int64, error) {
	var updated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.ProductModel
		if err := tx.Preload("Supplier").Find(&rows).Error; err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		for i := range rows {
			p := rows[i].ToDomain()
			p.RefreshFullname(p.SupplierName)
			if err := writeFullname(tx, p.ID, p.Fullname); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where(
			"LOWER(product.name) LIKE ? OR LOWER(product.code) LIKE ? OR LOWER(COALESCE(product.fullname, '')) LIKE ? OR "+
				"product.supplier_id IN (SELECT supplier.id FROM supplier WHERE LOWER(supplier.name) LIKE ?) OR "+
				"product.id IN (SELECT product_tags.product_id FROM product_tags JOIN tag ON tag.id = product_tags.tag_id WHERE LOWER(tag.name) LIKE ?)",
			p, p, p, p, p)
	}

	for key, value := range filter.Filters {
		switch key {
		case "supplier_id":
			query = query.Where("product.supplier_id = ?", value)
		case "discontinued":
			query = query.Where("product.discontinued = ?", value)
		case "tag_id":
			query = query.Where("product.id IN (SELECT product_id FROM product_tags WHERE tag_id = ?)", value)
		}
	}
	return query
}

func lookupSupplierName(tx *gorm.DB, supplierID *int64) (*string, error) {
	if supplierID == nil {
		return nil, nil
	}
	var s models.SupplierModel
	if err := tx.Select("id", "name").First(&s, "id = ?", *supplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError("INVALID_SUPPLIER", fmt.Sprintf("Supplier %d does not exist", *supplierID))
		}
		return nil, fmt.Errorf("read supplier name: %w", err)
	}
	return &s.Name, nil
}

func toProducts(rows []models.ProductModel) []catalog.Product {
	out := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out
}
