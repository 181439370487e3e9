package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func strPtr(s string) *string { return &s }

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(" SKU-001 ", "Adjusting Pillow")
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", product.Code)
		assert.Equal(t, "Adjusting Pillow", product.Name)
		assert.False(t, product.ListPrice.Valid)
		assert.False(t, product.SellingPrice.Valid)
		assert.Nil(t, product.Fullname)
		assert.Nil(t, product.SupplierID)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewProduct("", "Pillow")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code cannot be empty")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})
}

func TestProduct_SetPrices(t *testing.T) {
	p, err := NewProduct("SKU-001", "Pillow")
	require.NoError(t, err)

	t.Run("accepts null prices", func(t *testing.T) {
		require.NoError(t, p.SetPrices(decimal.NullDecimal{}, decimal.NullDecimal{}))
		assert.False(t, p.ListPrice.Valid)
	})

	t.Run("rejects negative list price", func(t *testing.T) {
		err := p.SetPrices(price("-1"), price("10"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "List price cannot be negative")
	})

	t.Run("rejects negative selling price", func(t *testing.T) {
		err := p.SetPrices(price("1"), price("-10"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Selling price cannot be negative")
	})

	t.Run("stores valid prices", func(t *testing.T) {
		require.NoError(t, p.SetPrices(price("10"), price("15")))
		assert.True(t, p.ListPrice.Decimal.Equal(decimal.NewFromInt(10)))
		assert.True(t, p.SellingPrice.Decimal.Equal(decimal.NewFromInt(15)))
	})
}

func TestProduct_SetPackaging(t *testing.T) {
	p, _ := NewProduct("SKU-001", "Pillow")
	negative := -2
	require.Error(t, p.SetPackaging(&negative, nil))
	require.Error(t, p.SetPackaging(nil, &negative))

	six, ten := 6, 10
	require.NoError(t, p.SetPackaging(&six, &ten))
	assert.Equal(t, 6, *p.QuantityPerUnit)
	assert.Equal(t, 10, *p.InitialVolume)
}

func TestProduct_TagIDs(t *testing.T) {
	p, _ := NewProduct("SKU-001", "Pillow")
	assert.Empty(t, p.TagIDs())

	p.SetTags([]Tag{{ID: 3, Name: "Support"}, {ID: 7, Name: "Sleep"}})
	assert.Equal(t, []int64{3, 7}, p.TagIDs())
}

func TestProduct_RefreshFullname(t *testing.T) {
	p, _ := NewProduct("SKU-001", "Pillow")
	require.NoError(t, p.SetPrices(price("10"), price("15")))

	p.RefreshFullname(strPtr("Acme"))
	require.NotNil(t, p.Fullname)
	assert.Equal(t, "Acme | Pillow | $10.00 list / $15.00 selling price", *p.Fullname)
	assert.Equal(t, *p.Fullname, p.DisplayName())

	p.RefreshFullname(nil)
	assert.Nil(t, p.Fullname)
	assert.Equal(t, "Pillow", p.DisplayName())
}

func TestProduct_Discontinue(t *testing.T) {
	p, _ := NewProduct("SKU-001", "Pillow")
	p.Discontinue()
	assert.True(t, p.Discontinued)
	p.Reinstate()
	assert.False(t, p.Discontinued)
}
