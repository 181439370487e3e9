package catalog

import (
	"context"

	"github.com/fcinventory/backend/internal/domain/shared"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	FindByID(ctx context.Context, id int64) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)

	// Save creates or updates a supplier and rebuilds the fullname of every product it owns
	// in the same transaction.
	Save(ctx context.Context, supplier *Supplier) error
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product with its tags and supplier name loaded
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindAll finds products matching the filter. Search covers name, code, fullname,
	// supplier name and tag name.
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ListAll returns every product without pagination
	ListAll(ctx context.Context) ([]Product, error)

	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)

	// Save creates or updates a product, replaces its tag links and rewrites its fullname
	// in the same transaction.
	Save(ctx context.Context, product *Product) error

	// RecomputeFullnames rewrites the fullname of every product and returns the number updated
	RecomputeFullnames(ctx context.Context) (int64, error)
}

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	FindByID(ctx context.Context, id int64) (*Tag, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Tag, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tag, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, tag *Tag) error

	// Delete removes the tag and detaches it from every product
	Delete(ctx context.Context, id int64) error
}
