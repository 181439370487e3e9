package persistence

import (
	"context"
	"testing"

	"github.com/fcinventory/backend/internal/domain/catalog"
	"github.com/fcinventory/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with every table migrated.
// A single connection keeps the same in-memory database for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func testPrice(v string) decimal.NullDecimal {
	if v == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) *catalog.Supplier {
	t.Helper()
	s, err := catalog.NewSupplier(name)
	require.NoError(t, err)
	require.NoError(t, NewGormSupplierRepository(db).Save(context.Background(), s))
	return s
}

func seedTag(t *testing.T, db *gorm.DB, name string) *catalog.Tag {
	t.Helper()
	tag, err := catalog.NewTag(name)
	require.NoError(t, err)
	require.NoError(t, NewGormTagRepository(db).Save(context.Background(), tag))
	return tag
}

func seedProduct(t *testing.T, db *gorm.DB, code, name string, supplierID *int64, list, selling string, tags ...catalog.Tag) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(code, name)
	require.NoError(t, err)
	require.NoError(t, p.SetPrices(testPrice(list), testPrice(selling)))
	p.AssignSupplier(supplierID)
	p.SetTags(tags)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), p))
	return p
}
