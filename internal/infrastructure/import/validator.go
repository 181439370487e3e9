package csvimport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldType represents the expected type of a field
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInt     FieldType = "int"
	TypeDecimal FieldType = "decimal"
	TypeBool    FieldType = "bool"
)

// FieldRule defines validation rules for a column
type FieldRule struct {
	Column    string
	Type      FieldType
	Required  bool
	MaxLength int
	MinValue  *decimal.Decimal
	Unique    bool
}

// FieldRuleBuilder helps build field rules fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field creates a new field rule builder
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{rule: FieldRule{Column: column, Type: TypeString}}
}

// Required marks the field as required
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// Int expects an integer
func (b *FieldRuleBuilder) Int() *FieldRuleBuilder {
	b.rule.Type = TypeInt
	return b
}

// Decimal expects a decimal number
func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// Bool expects true/false, 1/0, yes/no or y/n
func (b *FieldRuleBuilder) Bool() *FieldRuleBuilder {
	b.rule.Type = TypeBool
	return b
}

// MaxLength caps the value length in bytes
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// NonNegative requires a numeric value >= 0
func (b *FieldRuleBuilder) NonNegative() *FieldRuleBuilder {
	zero := decimal.Zero
	b.rule.MinValue = &zero
	return b
}

// Unique rejects a value already seen in an earlier row of the same file
func (b *FieldRuleBuilder) Unique() *FieldRuleBuilder {
	b.rule.Unique = true
	return b
}

// Build returns the rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// FieldValidator checks rows against rules in declaration order
type FieldValidator struct {
	rules  []FieldRule
	seen   map[string]map[string]int // column -> value -> first row number
	errors *ErrorCollection
}

// NewFieldValidator creates a new field validator
func NewFieldValidator(rules []FieldRule, maxErrors int) *FieldValidator {
	return &FieldValidator{
		rules:  rules,
		seen:   make(map[string]map[string]int),
		errors: NewErrorCollection(maxErrors),
	}
}

// Columns returns the column names the rules cover
func (v *FieldValidator) Columns() []string {
	cols := make([]string, 0, len(v.rules))
	for _, r := range v.rules {
		cols = append(cols, r.Column)
	}
	return cols
}

// ValidateRow validates every ruled field of row and reports whether it passed
func (v *FieldValidator) ValidateRow(row *Row) bool {
	ok := true
	for _, rule := range v.rules {
		value := row.Get(rule.Column)

		if value == "" {
			if rule.Required {
				v.errors.AddRequiredError(row.LineNumber, rule.Column)
				ok = false
			}
			continue
		}

		if err := validateType(value, rule.Type); err != nil {
			v.errors.AddTypeError(row.LineNumber, rule.Column, string(rule.Type), value)
			ok = false
			continue
		}

		if rule.MaxLength > 0 && len(value) > rule.MaxLength {
			v.errors.Add(RowError{Row: row.LineNumber, Column: rule.Column, Code: ErrCodeInvalidLength,
				Message: fmt.Sprintf("length must be at most %d", rule.MaxLength)})
			ok = false
		}

		if rule.MinValue != nil && (rule.Type == TypeInt || rule.Type == TypeDecimal) {
			if d, err := decimal.NewFromString(value); err == nil && d.LessThan(*rule.MinValue) {
				v.errors.Add(RowError{Row: row.LineNumber, Column: rule.Column, Code: ErrCodeInvalidRange,
					Message: fmt.Sprintf("value must be at least %s", rule.MinValue), Value: value})
				ok = false
			}
		}

		if rule.Unique {
			if v.seen[rule.Column] == nil {
				v.seen[rule.Column] = make(map[string]int)
			}
			if first, dup := v.seen[rule.Column][value]; dup {
				v.errors.Add(RowError{Row: row.LineNumber, Column: rule.Column, Code: ErrCodeDuplicateInFile,
					Message: fmt.Sprintf("duplicate value '%s' (first seen in row %d)", value, first), Value: value})
				ok = false
			} else {
				v.seen[rule.Column][value] = row.LineNumber
			}
		}
	}
	return ok
}

// Errors returns the error collection
func (v *FieldValidator) Errors() *ErrorCollection {
	return v.errors
}

func validateType(value string, fieldType FieldType) error {
	switch fieldType {
	case TypeInt:
		_, err := strconv.ParseInt(value, 10, 64)
		return err
	case TypeDecimal:
		_, err := decimal.NewFromString(value)
		return err
	case TypeBool:
		_, err := ParseBool(value)
		return err
	}
	return nil
}

// ParseBool accepts true/false, 1/0, yes/no and y/n in any case
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value: %s", value)
}
