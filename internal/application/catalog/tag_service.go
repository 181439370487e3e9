package catalog

import (
	"context"

	"github.com/fcinventory/backend/internal/domain/catalog"
)

// TagService handles tag operations
type TagService struct {
	tagRepo catalog.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo catalog.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// Create creates a new tag
func (s *TagService) Create(ctx context.Context, req CreateTagRequest) (*TagResponse, error) {
	return s.save(ctx, 0, req.Name)
}

// Import creates a tag under a fixed id
func (s *TagService) Import(ctx context.Context, id int64, name string) (*TagResponse, error) {
	return s.save(ctx, id, name)
}

func (s *TagService) save(ctx context.Context, id int64, name string) (*TagResponse, error) {
	tag, err := catalog.NewTag(name)
	if err != nil {
		return nil, err
	}
	tag.ID = id
	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}
	response := ToTagResponse(tag)
	return &response, nil
}

// GetByID retrieves a tag by ID
func (s *TagService) GetByID(ctx context.Context, id int64) (*TagResponse, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTagResponse(tag)
	return &response, nil
}

// TagDefaultPageSize is the tag list page size when none is requested
const TagDefaultPageSize = 100

// List retrieves tags
func (s *TagService) List(ctx context.Context, filter ListFilter) ([]TagResponse, int64, error) {
	domainFilter := filter.toDomainFilter(TagDefaultPageSize)
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "name"
	}

	tags, err := s.tagRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tagRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TagResponse, len(tags))
	for i := range tags {
		responses[i] = ToTagResponse(&tags[i])
	}
	return responses, total, nil
}

// Update renames a tag
func (s *TagService) Update(ctx context.Context, id int64, req UpdateTagRequest) (*TagResponse, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tag.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, err
	}
	response := ToTagResponse(tag)
	return &response, nil
}

// Delete removes a tag and detaches it from its products
func (s *TagService) Delete(ctx context.Context, id int64) error {
	return s.tagRepo.Delete(ctx, id)
}
