package report

import (
	"testing"

	"github.com/fcinventory/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func price(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func intPtr(v int) *int { return &v }

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestGrossSales(t *testing.T) {
	tests := []struct {
		name string
		rec  SaleRecord
		want decimal.Decimal
	}{
		{
			name: "selling price times quantity",
			rec:  SaleRecord{RawQuantity: intPtr(2), ListPrice: price("10"), SellingPrice: price("15")},
			want: dec("30"),
		},
		{
			name: "special price with null quantity",
			rec:  SaleRecord{SpecialPrice: price("20"), ListPrice: price("10"), SellingPrice: price("15")},
			want: dec("20"),
		},
		{
			name: "list price flag",
			rec:  SaleRecord{RawQuantity: intPtr(3), UseListPrice: true, ListPrice: price("10"), SellingPrice: price("15")},
			want: dec("30"),
		},
		{
			name: "zero quantity reads as one",
			rec:  SaleRecord{RawQuantity: intPtr(0), SellingPrice: price("15")},
			want: dec("15"),
		},
		{
			name: "rounds to cents",
			rec:  SaleRecord{RawQuantity: intPtr(3), SellingPrice: price("3.333")},
			want: dec("10"),
		},
		{
			name: "no price data grosses zero",
			rec:  SaleRecord{RawQuantity: intPtr(4)},
			want: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrossSales(tt.rec)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestGrossSales_Idempotent(t *testing.T) {
	rec := SaleRecord{RawQuantity: intPtr(7), SellingPrice: price("1.115")}
	first := GrossSales(rec)
	second := GrossSales(rec)
	assert.True(t, first.Equal(second))
	assert.True(t, first.Equal(first.Round(2)))
}

func TestProfit(t *testing.T) {
	tests := []struct {
		name string
		rec  SaleRecord
		want decimal.Decimal
	}{
		{
			name: "sold price minus list price",
			rec:  SaleRecord{RawQuantity: intPtr(2), SoldPrice: price("15"), ListPrice: price("10"), SellingPrice: price("15")},
			want: dec("10"),
		},
		{
			name: "special price with null quantity",
			rec:  SaleRecord{SpecialPrice: price("20"), SoldPrice: price("20"), ListPrice: price("10"), SellingPrice: price("15")},
			want: dec("10"),
		},
		{
			name: "special price wins over sold price",
			rec:  SaleRecord{RawQuantity: intPtr(1), SpecialPrice: price("12"), SoldPrice: price("15"), ListPrice: price("10")},
			want: dec("2"),
		},
		{
			name: "no special and no sold price is zero even with a selling price",
			rec:  SaleRecord{RawQuantity: intPtr(2), ListPrice: price("10"), SellingPrice: price("15")},
			want: decimal.Zero,
		},
		{
			name: "null list price counts as zero cost",
			rec:  SaleRecord{RawQuantity: intPtr(2), SoldPrice: price("15")},
			want: dec("30"),
		},
		{
			name: "selling below cost is negative",
			rec:  SaleRecord{RawQuantity: intPtr(1), SpecialPrice: price("8"), ListPrice: price("10")},
			want: dec("-2"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Profit(tt.rec)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

// Gross sales priced at read time must equal the sold_price the write path persists.
func TestGrossSales_MatchesWriteTimeSoldPrice(t *testing.T) {
	list, selling := price("10"), price("15")
	cases := []struct {
		special decimal.NullDecimal
		useList bool
	}{
		{decimal.NullDecimal{}, false},
		{decimal.NullDecimal{}, true},
		{price("0"), true},
		{price("20"), false},
		{price("20"), true},
	}

	for _, c := range cases {
		s, _ := sales.NewSale(1)
		_ = s.SetPricing(c.special, c.useList)
		s.ResolveSoldPrice(list, selling)

		rec := SaleRecord{
			RawQuantity:  intPtr(1),
			SpecialPrice: c.special,
			UseListPrice: c.useList,
			SoldPrice:    s.SoldPrice,
			ListPrice:    list,
			SellingPrice: selling,
		}
		assert.True(t, s.SoldPrice.Decimal.Equal(GrossSales(rec)),
			"special=%v useList=%v sold=%s gross=%s", c.special, c.useList, s.SoldPrice.Decimal, GrossSales(rec))
	}
}
