package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ComposeFullname builds the product display string
//
//	"<supplier name> | <product name> | $<list_price> list / $<selling_price> selling price"
//
// Prices are always rendered with two fixed decimals ($10.00, never the REAL-cast
// $10.0 of a SQL string concatenation). A missing supplier or price yields nil,
// the same way SQL concatenation over NULL does.
func ComposeFullname(supplierName *string, productName string, listPrice, sellingPrice decimal.NullDecimal) *string {
	if supplierName == nil || !listPrice.Valid || !sellingPrice.Valid {
		return nil
	}

	var b strings.Builder
	b.WriteString(*supplierName)
	b.WriteString(" | ")
	b.WriteString(productName)
	b.WriteString(" | $")
	b.WriteString(listPrice.Decimal.StringFixed(2))
	b.WriteString(" list / $")
	b.WriteString(sellingPrice.Decimal.StringFixed(2))
	b.WriteString(" selling price")

	s := b.String()
	return &s
}
