package catalog

import (
	"strings"

	"github.com/fcinventory/backend/internal/domain/shared"
)

// Supplier is a company products are bought from
type Supplier struct {
	ID      int64
	Name    string
	Contact string
	Email   string
	Phone   string
	Notes   string
}

// NewSupplier creates a new supplier
func NewSupplier(name string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}
	return &Supplier{Name: name}, nil
}

// Rename changes the supplier name. Every product fullname that embeds it is rebuilt on save.
func (s *Supplier) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateSupplierName(name); err != nil {
		return err
	}
	s.Name = name
	return nil
}

// SetContact sets the contact details
func (s *Supplier) SetContact(contact, email, phone string) error {
	if len(contact) > 255 {
		return shared.NewDomainError("INVALID_CONTACT", "Contact cannot exceed 255 characters")
	}
	if len(email) > 255 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 255 characters")
	}
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Email must contain @")
	}
	s.Contact = strings.TrimSpace(contact)
	s.Email = strings.TrimSpace(email)
	s.Phone = strings.TrimSpace(phone)
	return nil
}

// SetNotes sets free-text notes
func (s *Supplier) SetNotes(notes string) {
	s.Notes = notes
}

func validateSupplierName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 255 characters")
	}
	return nil
}
