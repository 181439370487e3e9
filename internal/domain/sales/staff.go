package sales

import (
	"strings"

	"github.com/fcinventory/backend/internal/domain/shared"
)

// Staff is a member who records sales
type Staff struct {
	ID   int64
	Name string
}

// NewStaff creates a staff member
func NewStaff(name string) (*Staff, error) {
	s := &Staff{}
	if err := s.Rename(name); err != nil {
		return nil, err
	}
	return s, nil
}

// Rename changes the staff member's name
func (s *Staff) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Staff name cannot be empty")
	}
	s.Name = name
	return nil
}
