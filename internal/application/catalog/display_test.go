package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   decimal.NullDecimal
		want string
	}{
		{decimal.NullDecimal{}, "$---"},
		{price("0"), "$0.00"},
		{price("15"), "$15.00"},
		{price("1234.5"), "$1,234.50"},
		{price("1234567.891"), "$1,234,567.89"},
		{price("-3.2"), "-$3.20"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.in))
	}
}
