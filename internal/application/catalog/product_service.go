package catalog

import (
	"context"
	"fmt"

	"github.com/fcinventory/backend/internal/domain/catalog"
	"github.com/fcinventory/backend/internal/domain/shared"
)

// ProductDefaultPageSize is the product list page size when none is requested
const ProductDefaultPageSize = 100

// ProductService handles product operations
type ProductService struct {
	productRepo catalog.ProductRepository
	tagRepo     catalog.TagRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, tagRepo catalog.TagRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		tagRepo:     tagRepo,
	}
}

// Create creates a new product. The repository composes the fullname on save.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, product.Code, product.Name, 0); err != nil {
		return nil, err
	}

	product.Description = req.Description
	if err := product.SetPrices(nullable(req.ListPrice), nullable(req.SellingPrice)); err != nil {
		return nil, err
	}
	if err := product.SetPackaging(req.QuantityPerUnit, req.InitialVolume); err != nil {
		return nil, err
	}
	product.AssignSupplier(req.SupplierID)
	if req.Discontinued {
		product.Discontinue()
	}
	if err := s.attachTags(ctx, product, req.TagIDs); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with search, filters and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := filter.toDomainFilter(ProductDefaultPageSize)
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.TagID != nil {
		domainFilter.Filters["tag_id"] = *filter.TagID
	}
	if filter.Discontinued != nil {
		domainFilter.Filters["discontinued"] = *filter.Discontinued
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, total, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	code, name, description := product.Code, product.Name, product.Description
	if req.Code != nil {
		code = *req.Code
	}
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(code, name, description); err != nil {
		return nil, err
	}
	if req.Code != nil || req.Name != nil {
		if err := s.ensureUnique(ctx, product.Code, product.Name, id); err != nil {
			return nil, err
		}
	}

	listPrice, sellingPrice := product.ListPrice, product.SellingPrice
	if req.ListPrice != nil {
		listPrice = nullable(req.ListPrice)
	}
	if req.SellingPrice != nil {
		sellingPrice = nullable(req.SellingPrice)
	}
	if err := product.SetPrices(listPrice, sellingPrice); err != nil {
		return nil, err
	}

	qpu, volume := product.QuantityPerUnit, product.InitialVolume
	if req.QuantityPerUnit != nil {
		qpu = req.QuantityPerUnit
	}
	if req.InitialVolume != nil {
		volume = req.InitialVolume
	}
	if err := product.SetPackaging(qpu, volume); err != nil {
		return nil, err
	}

	switch {
	case req.ClearSupplier:
		product.AssignSupplier(nil)
	case req.SupplierID != nil:
		product.AssignSupplier(req.SupplierID)
	}

	if req.Discontinued != nil {
		if *req.Discontinued {
			product.Discontinue()
		} else {
			product.Reinstate()
		}
	}

	if req.TagIDs != nil {
		if err := s.attachTags(ctx, product, *req.TagIDs); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Delete always refuses: sales keep referencing their product
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return shared.ErrDeleteDenied
}

// RecomputeFullnames rebuilds every product fullname
func (s *ProductService) RecomputeFullnames(ctx context.Context) (int64, error) {
	return s.productRepo.RecomputeFullnames(ctx)
}

func (s *ProductService) ensureUnique(ctx context.Context, code, name string, excludeID int64) error {
	exists, err := s.productRepo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
	}
	exists, err = s.productRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Product with this name already exists")
	}
	return nil
}

func (s *ProductService) attachTags(ctx context.Context, product *catalog.Product, ids []int64) error {
	if len(ids) == 0 {
		product.SetTags(nil)
		return nil
	}
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	tags, err := s.tagRepo.FindByIDs(ctx, unique)
	if err != nil {
		return err
	}
	if len(tags) != len(unique) {
		found := make(map[int64]bool, len(tags))
		for _, t := range tags {
			found[t.ID] = true
		}
		for _, id := range unique {
			if !found[id] {
				return shared.NewDomainError("INVALID_TAG", fmt.Sprintf("Tag %d does not exist", id))
			}
		}
	}
	product.SetTags(tags)
	return nil
}
