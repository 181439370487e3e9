package sales

import (
	"context"
	"testing"

	"github.com/fcinventory/backend/internal/domain/sales"
	"github.com/fcinventory/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStaffService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refused while sales reference the staff member", func(t *testing.T) {
		staffRepo := new(MockStaffRepository)
		saleRepo := new(MockSaleRepository)
		svc := NewStaffService(staffRepo, saleRepo)

		staffRepo.On("FindByID", ctx, int64(1)).Return(&sales.Staff{ID: 1, Name: "Sam"}, nil)
		saleRepo.On("CountByStaff", ctx, int64(1)).Return(int64(3), nil)

		err := svc.Delete(ctx, 1)
		assert.ErrorIs(t, err, shared.ErrDeleteDenied)
		assert.Contains(t, err.Error(), "3")
		staffRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes when unused", func(t *testing.T) {
		staffRepo := new(MockStaffRepository)
		saleRepo := new(MockSaleRepository)
		svc := NewStaffService(staffRepo, saleRepo)

		staffRepo.On("FindByID", ctx, int64(1)).Return(&sales.Staff{ID: 1, Name: "Sam"}, nil)
		saleRepo.On("CountByStaff", ctx, int64(1)).Return(int64(0), nil)
		staffRepo.On("Delete", ctx, int64(1)).Return(nil)

		require.NoError(t, svc.Delete(ctx, 1))
		staffRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		staffRepo := new(MockStaffRepository)
		svc := NewStaffService(staffRepo, new(MockSaleRepository))
		staffRepo.On("FindByID", ctx, int64(5)).Return(nil, shared.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, 5), shared.ErrNotFound)
	})
}

func TestStaffService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	staffRepo := new(MockStaffRepository)
	svc := NewStaffService(staffRepo, new(MockSaleRepository))

	staffRepo.On("Save", ctx, mock.MatchedBy(func(s *sales.Staff) bool { return s.Name == "Dr. Lee" })).
		Run(func(args mock.Arguments) { args.Get(1).(*sales.Staff).ID = 4 }).
		Return(nil).Once()

	created, err := svc.Create(ctx, StaffRequest{Name: " Dr. Lee "})
	require.NoError(t, err)
	assert.Equal(t, StaffResponse{ID: 4, Name: "Dr. Lee"}, *created)

	_, err = svc.Create(ctx, StaffRequest{Name: "  "})
	assert.Error(t, err)

	existing := &sales.Staff{ID: 4, Name: "Dr. Lee"}
	staffRepo.On("FindByID", ctx, int64(4)).Return(existing, nil)
	staffRepo.On("Save", ctx, existing).Return(nil)

	updated, err := svc.Update(ctx, 4, StaffRequest{Name: "Dr. Lee-Park"})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Lee-Park", updated.Name)
}

func TestStaffService_List(t *testing.T) {
	ctx := context.Background()
	staffRepo := new(MockStaffRepository)
	svc := NewStaffService(staffRepo, new(MockSaleRepository))

	match := mock.MatchedBy(func(f shared.Filter) bool { return f.OrderBy == "name" && f.Search == "lee" })
	staffRepo.On("FindAll", ctx, match).Return([]sales.Staff{{ID: 1, Name: "Dr. Lee"}}, nil)
	staffRepo.On("Count", ctx, match).Return(int64(1), nil)

	items, total, err := svc.List(ctx, StaffListFilter{Search: "lee"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Dr. Lee", items[0].Name)
}
