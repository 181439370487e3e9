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

// GormTagRepository implements catalog.TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByID finds a tag by its ID
func (r *GormTagRepository) FindByID(ctx context.Context, id int64) (*catalog.Tag, error) {
	var m models.TagModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByIDs finds the tags with the given ids. Unknown ids are skipped.
func (r *GormTagRepository) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Tag, error) {
	if len(ids) == 0 {
		return []catalog.Tag{}, nil
	}
	var rows []models.TagModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTags(rows), nil
}

// FindAll finds all tags matching the filter
func (r *GormTagRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Tag, error) {
	var rows []models.TagModel
	query := applyPaging(r.search(r.db.WithContext(ctx).Model(&models.TagModel{}), filter), "tag", filter, TagSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTags(rows), nil
}

// Count counts tags matching the filter
func (r *GormTagRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.search(r.db.WithContext(ctx).Model(&models.TagModel{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a tag
func (r *GormTagRepository) Save(ctx context.Context, tag *catalog.Tag) error {
	m := &models.TagModel{}
	m.FromDomain(tag)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	tag.ID = m.ID
	return nil
}

// Delete detaches the tag from every product and removes it
func (r *GormTagRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.ProductTagModel{}).Error; err != nil {
			return fmt.Errorf("detach tag: %w", err)
		}
		result := tx.Delete(&models.TagModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormTagRepository) search(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search == "" {
		return query
	}
	return query.Where("LOWER(tag.name) LIKE ?", likePattern(filter.Search))
}

func toTags(rows []models.TagModel) []catalog.Tag {
	out := make([]catalog.Tag, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out
}
