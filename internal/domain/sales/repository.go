package sales

import (
	"context"

	"github.com/fcinventory/backend/internal/domain/shared"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	FindByID(ctx context.Context, id int64) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ListAll returns every sale without pagination
	ListAll(ctx context.Context) ([]Sale, error)

	// CountByStaff counts sales recorded by a staff member
	CountByStaff(ctx context.Context, staffID int64) (int64, error)

	// Save creates or updates a sale. sold_price is resolved from the product's current
	// prices in the same transaction.
	Save(ctx context.Context, sale *Sale) error

	Delete(ctx context.Context, id int64) error

	// RecomputeSoldPrices rewrites sold_price for every sale and returns the number updated
	RecomputeSoldPrices(ctx context.Context) (int64, error)
}

// StaffRepository defines the interface for staff persistence
type StaffRepository interface {
	FindByID(ctx context.Context, id int64) (*Staff, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Staff, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ListAll(ctx context.Context) ([]Staff, error)
	Save(ctx context.Context, staff *Staff) error
	Delete(ctx context.Context, id int64) error
}
