package catalog

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MissingPrice is shown in place of a null price
const MissingPrice = "$---"

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders a price as $1,234.56, or MissingPrice when null
func FormatPrice(p decimal.NullDecimal) string {
	if !p.Valid {
		return MissingPrice
	}
	v := p.Decimal.Round(2).InexactFloat64()
	if v < 0 {
		return pricePrinter.Sprintf("-$%v", number.Decimal(-v, number.Scale(2)))
	}
	return pricePrinter.Sprintf("$%v", number.Decimal(v, number.Scale(2)))
}
