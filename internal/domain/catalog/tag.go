package catalog

import (
	"strings"

	"github.com/fcinventory/backend/internal/domain/shared"
)

// Tag labels products. Order carries no meaning.
type Tag struct {
	ID   int64
	Name string
}

// NewTag creates a new tag
func NewTag(name string) (*Tag, error) {
	t := &Tag{}
	if err := t.Rename(name); err != nil {
		return nil, err
	}
	return t, nil
}

// Rename changes the tag name
func (t *Tag) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tag name cannot be empty")
	}
	if len([]rune(name)) > 64 {
		return shared.NewDomainError("INVALID_NAME", "Tag name cannot exceed 64 characters")
	}
	t.Name = name
	return nil
}
