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

// GormStaffRepository implements sales.StaffRepository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// FindByID finds a staff member by ID
func (r *GormStaffRepository) FindByID(ctx context.Context, id int64) (*sales.Staff, error) {
	var m models.StaffModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll finds staff matching the filter
func (r *GormStaffRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Staff, error) {
	var rows []models.StaffModel
	query := applyPaging(r.search(r.db.WithContext(ctx).Model(&models.StaffModel{}), filter), "staff", filter, StaffSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toStaff(rows), nil
}

// Count counts staff matching the filter
func (r *GormStaffRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.search(r.db.WithContext(ctx).Model(&models.StaffModel{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListAll returns every staff member ordered by id
func (r *GormStaffRepository) ListAll(ctx context.Context) ([]sales.Staff, error) {
	var rows []models.StaffModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toStaff(rows), nil
}

// Save creates or updates a staff member
func (r *GormStaffRepository) Save(ctx context.Context, staff *sales.Staff) error {
	m := &models.StaffModel{}
	m.FromDomain(staff)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("save staff: %w", err)
	}
	staff.ID = m.ID
	return nil
}

// Delete removes a staff member
func (r *GormStaffRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.StaffModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormStaffRepository) search(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search == "" {
		return query
	}
	return query.Where("LOWER(staff.name) LIKE ?", likePattern(filter.Search))
}

func toStaff(rows []models.StaffModel) []sales.Staff {
	out := make([]sales.Staff, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out
}
