package catalog

import (
	"context"

	"github.com/fcinventory/backend/internal/domain/catalog"
	"github.com/fcinventory/backend/internal/domain/shared"
)

// SupplierService handles supplier operations
type SupplierService struct {
	supplierRepo catalog.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo catalog.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := catalog.NewSupplier(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, supplier.Name, 0); err != nil {
		return nil, err
	}
	if err := supplier.SetContact(req.Contact, req.Email, req.Phone); err != nil {
		return nil, err
	}
	supplier.SetNotes(req.Notes)

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Import creates a supplier under a fixed id
func (s *SupplierService) Import(ctx context.Context, id int64, name string) (*SupplierResponse, error) {
	supplier, err := catalog.NewSupplier(name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, supplier.Name, id); err != nil {
		return nil, err
	}
	supplier.ID = id

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id int64) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// SupplierDefaultPageSize is the supplier list page size when none is requested
const SupplierDefaultPageSize = 20

// List retrieves suppliers with search and pagination
func (s *SupplierService) List(ctx context.Context, filter ListFilter) ([]SupplierResponse, int64, error) {
	domainFilter := filter.toDomainFilter(SupplierDefaultPageSize)

	suppliers, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses, total, nil
}

// Update updates a supplier. A rename rewrites the fullname of every product it supplies.
func (s *SupplierService) Update(ctx context.Context, id int64, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := supplier.Rename(*req.Name); err != nil {
			return nil, err
		}
		if err := s.ensureUniqueName(ctx, supplier.Name, id); err != nil {
			return nil, err
		}
	}

	contact, email, phone := supplier.Contact, supplier.Email, supplier.Phone
	if req.Contact != nil {
		contact = *req.Contact
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if err := supplier.SetContact(contact, email, phone); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		supplier.SetNotes(*req.Notes)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete always refuses: products keep their supplier history
func (s *SupplierService) Delete(ctx context.Context, id int64) error {
	if _, err := s.supplierRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return shared.ErrDeleteDenied
}

func (s *SupplierService) ensureUniqueName(ctx context.Context, name string, excludeID int64) error {
	exists, err := s.supplierRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Supplier with this name already exists")
	}
	return nil
}
