package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeFullname(t *testing.T) {
	tests := []struct {
		name     string
		supplier *string
		product  string
		list     decimal.NullDecimal
		selling  decimal.NullDecimal
		want     *string
	}{
		{
			name:     "all parts present",
			supplier: strPtr("Acme"),
			product:  "Pillow",
			list:     price("10"),
			selling:  price("15"),
			want:     strPtr("Acme | Pillow | $10.00 list / $15.00 selling price"),
		},
		{
			name:     "one-decimal input still renders two decimals",
			supplier: strPtr("Acme"),
			product:  "Pillow",
			list:     price("10.0"),
			selling:  price("16"),
			want:     strPtr("Acme | Pillow | $10.00 list / $16.00 selling price"),
		},
		{
			name:     "fractional prices keep two decimals",
			supplier: strPtr("Acme Corp"),
			product:  "Ice Pack",
			list:     price("3.5"),
			selling:  price("7.999"),
			want:     strPtr("Acme Corp | Ice Pack | $3.50 list / $8.00 selling price"),
		},
		{
			name:    "missing supplier yields nil",
			product: "Pillow",
			list:    price("10"),
			selling: price("15"),
		},
		{
			name:     "missing list price yields nil",
			supplier: strPtr("Acme"),
			product:  "Pillow",
			selling:  price("15"),
		},
		{
			name:     "missing selling price yields nil",
			supplier: strPtr("Acme"),
			product:  "Pillow",
			list:     price("10"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeFullname(tt.supplier, tt.product, tt.list, tt.selling)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestComposeFullname_SupplierRename(t *testing.T) {
	before := ComposeFullname(strPtr("Acme"), "Pillow", price("10"), price("15"))
	after := ComposeFullname(strPtr("Acme Corp"), "Pillow", price("10"), price("15"))

	require.NotNil(t, before)
	require.NotNil(t, after)
	assert.Contains(t, *after, "Acme Corp |")
	assert.NotEqual(t, *before, *after)
}
