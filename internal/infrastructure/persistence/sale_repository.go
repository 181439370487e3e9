package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/fcinventory/backend/internal/domain/sales"
	"github.com/fcinventory/backend/internal/domain/shared"
	"github.com/fcinventory/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id int64) (*sales.Sale, error) {
	var m models.SaleModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	var rows []models.SaleModel
	query := applyPaging(r.applyFilter(r.db.WithContext(ctx).Model(&models.SaleModel{}), filter), "sale", filter, SaleSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSales(rows), nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.SaleModel{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListAll returns every sale ordered by id
func (r *GormSaleRepository) ListAll(ctx context.Context) ([]sales.Sale, error) {
	var rows []models.SaleModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSales(rows), nil
}

// CountByStaff counts sales recorded by a staff member
func (r *GormSaleRepository) CountByStaff(ctx context.Context, staffID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SaleModel{}).Where("staff_id = ?", staffID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save reads the sold product's prices, resolves sold_price and upserts the sale
// in one transaction
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.ProductModel
		err := tx.Select("id", "list_price", "selling_price").First(&product, "id = ?", sale.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewDomainError("INVALID_PRODUCT", fmt.Sprintf("Product %d does not exist", sale.ProductID))
		}
		if err != nil {
			return fmt.Errorf("read product prices: %w", err)
		}
		sale.ResolveSoldPrice(product.ListPrice, product.SellingPrice)

		m := models.SaleModelFromDomain(sale)
		if err := tx.Save(m).Error; err != nil {
			return fmt.Errorf("save sale: %w", err)
		}
		sale.ID = m.ID
		return nil
	})
}

// Delete removes a sale
func (r *GormSaleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.SaleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// RecomputeSoldPrices rewrites sold_price of every sale from current product prices.
// Sales whose product no longer exists keep their stored price.
func (r *GormSaleRepository) RecomputeSoldPrices(ctx context.Context) (int64, error) {
	var updated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products []models.ProductModel
		if err := tx.Select("id", "list_price", "selling_price").Find(&products).Error; err != nil {
			return fmt.Errorf("load product prices: %w", err)
		}
		byID := make(map[int64]models.ProductModel, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		var rows []models.SaleModel
		if err := tx.Find(&rows).Error; err != nil {
			return fmt.Errorf("load sales: %w", err)
		}
		for i := range rows {
			p, ok := byID[rows[i].ProductID]
			if !ok {
				continue
			}
			s := rows[i].ToDomain()
			s.ResolveSoldPrice(p.ListPrice, p.SellingPrice)
			if err := tx.Model(&models.SaleModel{}).Where("id = ?", s.ID).Update("sold_price", s.SoldPrice).Error; err != nil {
				return fmt.Errorf("update sold price of sale %d: %w", s.ID, err)
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

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(sale.notes) LIKE ?", likePattern(filter.Search))
	}
	for key, value := range filter.Filters {
		switch key {
		case "staff_id":
			query = query.Where("sale.staff_id = ?", value)
		case "product_id":
			query = query.Where("sale.product_id = ?", value)
		}
	}
	return query
}

func toSales(rows []models.SaleModel) []sales.Sale {
	out := make([]sales.Sale, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out
}
