package sales

import (
	"context"

	"github.com/fcinventory/backend/internal/domain/sales"
	"github.com/fcinventory/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockSaleRepository is a mock implementation of SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id int64) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) ListAll(ctx context.Context) ([]sales.Sale, error) {
	args := m.Called(ctx)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) CountByStaff(ctx context.Context, staffID int64) (int64, error) {
	args := m.Called(ctx, staffID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) RecomputeSoldPrices(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockStaffRepository is a mock implementation of StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) FindByID(ctx context.Context, id int64) (*sales.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Staff, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.Staff), args.Error(1)
}

func (m *MockStaffRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStaffRepository) ListAll(ctx context.Context) ([]sales.Staff, error) {
	args := m.Called(ctx)
	return args.Get(0).([]sales.Staff), args.Error(1)
}

func (m *MockStaffRepository) Save(ctx context.Context, staff *sales.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
