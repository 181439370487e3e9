package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(line int, data map[string]string) *Row {
	return &Row{LineNumber: line, Data: data}
}

func TestFieldRuleBuilder(t *testing.T) {
	rule := Field("StandardCost").Required().Decimal().NonNegative().MaxLength(12).Unique().Build()

	assert.Equal(t, "StandardCost", rule.Column)
	assert.Equal(t, TypeDecimal, rule.Type)
	assert.True(t, rule.Required)
	assert.True(t, rule.Unique)
	assert.Equal(t, 12, rule.MaxLength)
	require.NotNil(t, rule.MinValue)
	assert.True(t, rule.MinValue.IsZero())

	assert.Equal(t, TypeString, Field("Name").Build().Type)
	assert.Equal(t, TypeInt, Field("ID").Int().Build().Type)
	assert.Equal(t, TypeBool, Field("Discontinued").Bool().Build().Type)
}

func TestFieldValidator(t *testing.T) {
	t.Run("Required field", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("ID").Required().Build()}, 10)
		assert.False(t, v.ValidateRow(row(2, map[string]string{"ID": ""})))
		assert.Equal(t, ErrCodeRequiredField, v.Errors().Errors()[0].Code)
	})

	t.Run("Optional empty field passes", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("SupplierID").Int().Build()}, 10)
		assert.True(t, v.ValidateRow(row(2, map[string]string{"SupplierID": ""})))
	})

	t.Run("Type checks", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{
			Field("ID").Int().Build(),
			Field("Cost").Decimal().Build(),
			Field("Discontinued").Bool().Build(),
		}, 10)

		assert.True(t, v.ValidateRow(row(2, map[string]string{"ID": "4", "Cost": "1.25", "Discontinued": "Yes"})))
		assert.False(t, v.ValidateRow(row(3, map[string]string{"ID": "4.5", "Cost": "abc", "Discontinued": "maybe"})))

		errs := v.Errors().Errors()
		require.Len(t, errs, 3)
		assert.Equal(t, "ID", errs[0].Column)
		assert.Equal(t, "Cost", errs[1].Column)
		assert.Equal(t, "Discontinued", errs[2].Column)
	})

	t.Run("Max length", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("Category").MaxLength(3).Build()}, 10)
		assert.False(t, v.ValidateRow(row(2, map[string]string{"Category": "Braces"})))
		assert.Equal(t, ErrCodeInvalidLength, v.Errors().Errors()[0].Code)
	})

	t.Run("Non-negative", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("Cost").Decimal().NonNegative().Build()}, 10)
		assert.True(t, v.ValidateRow(row(2, map[string]string{"Cost": "0"})))
		assert.False(t, v.ValidateRow(row(3, map[string]string{"Cost": "-1"})))
		assert.Equal(t, ErrCodeInvalidRange, v.Errors().Errors()[0].Code)
	})

	t.Run("Unique within file", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("ID").Int().Unique().Build()}, 10)
		assert.True(t, v.ValidateRow(row(2, map[string]string{"ID": "1"})))
		assert.True(t, v.ValidateRow(row(3, map[string]string{"ID": "2"})))
		assert.False(t, v.ValidateRow(row(4, map[string]string{"ID": "1"})))

		err := v.Errors().Errors()[0]
		assert.Equal(t, ErrCodeDuplicateInFile, err.Code)
		assert.Contains(t, err.Message, "first seen in row 2")
	})

	t.Run("Columns follow rule order", func(t *testing.T) {
		v := NewFieldValidator(productRules, 10)
		assert.Equal(t, []string{
			"ProductCode", "ProductName", "StandardCost", "ListPrice",
			"QuantityPerUnit", "Description", "SupplierID", "Discontinued",
		}, v.Columns())
	})
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "yes", "Y"} {
		b, err := ParseBool(v)
		require.NoError(t, err, v)
		assert.True(t, b, v)
	}
	for _, v := range []string{"false", "0", "No", "n", ""} {
		b, err := ParseBool(v)
		require.NoError(t, err, v)
		assert.False(t, b, v)
	}
	_, err := ParseBool("sometimes")
	assert.Error(t, err)
}
