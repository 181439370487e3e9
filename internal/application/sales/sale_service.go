package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/fcinventory/backend/internal/domain/sales"
	"github.com/fcinventory/backend/internal/domain/shared"
)

// SaleService handles sale operations
type SaleService struct {
	saleRepo  sales.SaleRepository
	staffRepo sales.StaffRepository
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo sales.SaleRepository, staffRepo sales.StaffRepository) *SaleService {
	return &SaleService{
		saleRepo:  saleRepo,
		staffRepo: staffRepo,
	}
}

// Create records a sale. The repository resolves sold_price from the product's prices.
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	sale, err := sales.NewSale(req.ProductID)
	if err != nil {
		return nil, err
	}
	if err := sale.SetQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := sale.SetPricing(nullable(req.SpecialPrice), req.UseListPrice); err != nil {
		return nil, err
	}
	sale.SetDate(req.Date)
	sale.SetNotes(req.Notes)
	if err := s.assignStaff(ctx, sale, req.StaffID); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, id int64) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with filters and pagination
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
	domainFilter := filter.toDomainFilter()

	items, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SaleResponse, len(items))
	for i := range items {
		responses[i] = ToSaleResponse(&items[i])
	}
	return responses, total, nil
}

// Update updates a sale and re-resolves its sold price
func (s *SaleService) Update(ctx context.Context, id int64, req UpdateSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ProductID != nil {
		if err := sale.SetProduct(*req.ProductID); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil {
		if err := sale.SetQuantity(req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.Date != nil {
		sale.SetDate(req.Date)
	}

	special, useList := sale.SpecialPrice, sale.UseListPrice
	switch {
	case req.ClearSpecialPrice:
		special = nullable(nil)
	case req.SpecialPrice != nil:
		special = nullable(req.SpecialPrice)
	}
	if req.UseListPrice != nil {
		useList = *req.UseListPrice
	}
	if err := sale.SetPricing(special, useList); err != nil {
		return nil, err
	}

	switch {
	case req.ClearStaff:
		sale.AssignStaff(nil)
	case req.StaffID != nil:
		if err := s.assignStaff(ctx, sale, req.StaffID); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		sale.SetNotes(*req.Notes)
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// Delete removes a sale
func (s *SaleService) Delete(ctx context.Context, id int64) error {
	return s.saleRepo.Delete(ctx, id)
}

// RecomputeSoldPrices rewrites sold_price for every sale
func (s *SaleService) RecomputeSoldPrices(ctx context.Context) (int64, error) {
	return s.saleRepo.RecomputeSoldPrices(ctx)
}

func (s *SaleService) assignStaff(ctx context.Context, sale *sales.Sale, staffID *int64) error {
	if staffID == nil {
		sale.AssignStaff(nil)
		return nil
	}
	if _, err := s.staffRepo.FindByID(ctx, *staffID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_STAFF", fmt.Sprintf("Staff member %d does not exist", *staffID))
		}
		return err
	}
	sale.AssignStaff(staffID)
	return nil
}
