package report

import (
	"github.com/fcinventory/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// GrossSales is the effective price times quantity, rounded to cents.
// A record with no resolvable price grosses zero.
func GrossSales(rec SaleRecord) decimal.Decimal {
	unit := sales.ResolvePrice(rec.SpecialPrice, rec.UseListPrice, rec.ListPrice, rec.SellingPrice)
	if !unit.Valid {
		return decimal.Zero
	}
	qty := decimal.NewFromInt(sales.EffectiveQuantity(rec.RawQuantity))
	return unit.Decimal.Mul(qty).Round(2)
}

// Profit is (price - list price) times quantity, rounded to cents, where price is the
// special price, else the stored sold price. When neither is set the profit is zero;
// unlike GrossSales there is no fall back to the selling price.
func Profit(rec SaleRecord) decimal.Decimal {
	var unit decimal.Decimal
	switch {
	case rec.SpecialPrice.Valid && !rec.SpecialPrice.Decimal.IsZero():
		unit = rec.SpecialPrice.Decimal
	case rec.SoldPrice.Valid && !rec.SoldPrice.Decimal.IsZero():
		unit = rec.SoldPrice.Decimal
	default:
		return decimal.Zero
	}

	cost := decimal.Zero
	if rec.ListPrice.Valid {
		cost = rec.ListPrice.Decimal
	}
	qty := decimal.NewFromInt(sales.EffectiveQuantity(rec.RawQuantity))
	return unit.Sub(cost).Mul(qty).Round(2)
}
