package sales

import "github.com/shopspring/decimal"

// ResolvePrice returns the effective per-unit price of a sale:
//  1. special price when present and greater than zero
//  2. the product list price when useListPrice is set
//  3. the product selling price otherwise
//
// The result is null only when the chosen product price is null.
// The same rule fills sold_price on write and prices sales in reports.
func ResolvePrice(special decimal.NullDecimal, useListPrice bool, listPrice, sellingPrice decimal.NullDecimal) decimal.NullDecimal {
	if special.Valid && special.Decimal.IsPositive() {
		return special
	}
	if useListPrice {
		return listPrice
	}
	return sellingPrice
}

// EffectiveQuantity reads an absent or zero quantity as one unit
func EffectiveQuantity(quantity *int) int64 {
	if quantity == nil || *quantity == 0 {
		return 1
	}
	return int64(*quantity)
}
