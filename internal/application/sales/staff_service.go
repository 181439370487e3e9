package sales

import (
	"context"
	"fmt"

	"github.com/fcinventory/backend/internal/domain/sales"
	"github.com/fcinventory/backend/internal/domain/shared"
)

// StaffService handles staff operations
type StaffService struct {
	staffRepo sales.StaffRepository
	saleRepo  sales.SaleRepository
}

// NewStaffService creates a new StaffService
func NewStaffService(staffRepo sales.StaffRepository, saleRepo sales.SaleRepository) *StaffService {
	return &StaffService{
		staffRepo: staffRepo,
		saleRepo:  saleRepo,
	}
}

// Create creates a staff member
func (s *StaffService) Create(ctx context.Context, req StaffRequest) (*StaffResponse, error) {
	return s.save(ctx, 0, req.Name)
}

// Import creates a staff member under a fixed id
func (s *StaffService) Import(ctx context.Context, id int64, name string) (*StaffResponse, error) {
	return s.save(ctx, id, name)
}

func (s *StaffService) save(ctx context.Context, id int64, name string) (*StaffResponse, error) {
	staff, err := sales.NewStaff(name)
	if err != nil {
		return nil, err
	}
	staff.ID = id
	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}
	response := ToStaffResponse(staff)
	return &response, nil
}

// GetByID retrieves a staff member by ID
func (s *StaffService) GetByID(ctx context.Context, id int64) (*StaffResponse, error) {
	staff, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToStaffResponse(staff)
	return &response, nil
}

// StaffDefaultPageSize is the staff list page size when none is requested
const StaffDefaultPageSize = 100

// List retrieves staff members
func (s *StaffService) List(ctx context.Context, filter StaffListFilter) ([]StaffResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "name"
	domainFilter.PageSize = StaffDefaultPageSize
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	staff, err := s.staffRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.staffRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StaffResponse, len(staff))
	for i := range staff {
		responses[i] = ToStaffResponse(&staff[i])
	}
	return responses, total, nil
}

// Update renames a staff member
func (s *StaffService) Update(ctx context.Context, id int64, req StaffRequest) (*StaffResponse, error) {
	staff, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := staff.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}
	response := ToStaffResponse(staff)
	return &response, nil
}

// Delete removes a staff member who has no recorded sales
func (s *StaffService) Delete(ctx context.Context, id int64) error {
	if _, err := s.staffRepo.FindByID(ctx, id); err != nil {
		return err
	}
	count, err := s.saleRepo.CountByStaff(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("DELETE_DENIED", fmt.Sprintf("Staff member has %d recorded sales", count))
	}
	return s.staffRepo.Delete(ctx, id)
}
