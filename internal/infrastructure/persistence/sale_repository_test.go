package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fcinventory/backend/internal/domain/sales"
	"github.com/fcinventory/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedStaff(t *testing.T, db *gorm.DB, name string) *sales.Staff {
	t.Helper()
	s, err := sales.NewStaff(name)
	require.NoError(t, err)
	require.NoError(t, NewGormStaffRepository(db).Save(context.Background(), s))
	return s
}

func TestGormSaleRepository_SaveResolvesSoldPrice(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()
	p := seedProduct(t, db, "P-1", "Pillow", nil, "10", "15")

	tests := []struct {
		name    string
		special decimal.NullDecimal
		useList bool
		want    string
	}{
		{"selling price by default", decimal.NullDecimal{}, false, "15"},
		{"list price flag", decimal.NullDecimal{}, true, "10"},
		{"special price wins", testPrice("12"), true, "12"},
		{"zero special falls through", testPrice("0"), false, "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := sales.NewSale(p.ID)
			require.NoError(t, err)
			require.NoError(t, s.SetPricing(tt.special, tt.useList))

			require.NoError(t, repo.Save(ctx, s))

			got, err := repo.FindByID(ctx, s.ID)
			require.NoError(t, err)
			require.True(t, got.SoldPrice.Valid)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got.SoldPrice.Decimal),
				"want %s got %s", tt.want, got.SoldPrice.Decimal)
		})
	}
}

func TestGormSaleRepository_SaveUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	s, err := sales.NewSale(77)
	require.NoError(t, err)

	err = NewGormSaleRepository(db).Save(context.Background(), s)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_PRODUCT", domainErr.Code)
}

func TestGormSaleRepository_FilterAndCountByStaff(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()
	p := seedProduct(t, db, "P-1", "Pillow", nil, "10", "15")
	lee := seedStaff(t, db, "Dr. Lee")
	sam := seedStaff(t, db, "Sam")

	when := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	for i, staffID := range []int64{lee.ID, lee.ID, sam.ID} {
		s, err := sales.NewSale(p.ID)
		require.NoError(t, err)
		id := staffID
		s.AssignStaff(&id)
		s.SetDate(&when)
		if i == 2 {
			s.SetNotes("Walk-in customer")
		}
		require.NoError(t, repo.Save(ctx, s))
	}

	count, err := repo.CountByStaff(ctx, lee.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	filter := shared.DefaultFilter()
	filter.Filters["staff_id"] = sam.ID
	found, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Walk-in customer", found[0].Notes)
	require.NotNil(t, found[0].Date)
	assert.True(t, when.Equal(*found[0].Date))

	filter = shared.DefaultFilter()
	filter.Search = "walk-in"
	total, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestGormSaleRepository_RecomputeSoldPrices(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSaleRepository(db)
	products := NewGormProductRepository(db)
	ctx := context.Background()
	p := seedProduct(t, db, "P-1", "Pillow", nil, "10", "15")

	s, err := sales.NewSale(p.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	require.NoError(t, p.SetPrices(testPrice("10"), testPrice("18")))
	require.NoError(t, products.Save(ctx, p))

	updated, err := repo.RecomputeSoldPrices(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("18").Equal(got.SoldPrice.Decimal))
}

func TestGormSaleRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()
	p := seedProduct(t, db, "P-1", "Pillow", nil, "10", "15")
	s, err := sales.NewSale(p.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	require.NoError(t, repo.Delete(ctx, s.ID))
	assert.Equal(t, shared.ErrNotFound, repo.Delete(ctx, s.ID))
}

func TestGormStaffRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStaffRepository(db)
	ctx := context.Background()
	lee := seedStaff(t, db, "Dr. Lee")
	seedStaff(t, db, "Sam")

	require.NoError(t, lee.Rename("Dr. Leigh"))
	require.NoError(t, repo.Save(ctx, lee))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Dr. Leigh", all[0].Name)

	filter := shared.DefaultFilter()
	filter.Search = "sam"
	found, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, found, 1)

	require.NoError(t, repo.Delete(ctx, lee.ID))
	_, err = repo.FindByID(ctx, lee.ID)
	assert.Equal(t, shared.ErrNotFound, err)
}
