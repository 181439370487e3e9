package csvimport

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Seed source file names, read in this order
const (
	SuppliersFile  = "Suppliers.csv"
	CategoriesFile = "Categories.csv"
	ProductsFile   = "Products.csv"
	StaffFile      = "Staff.csv"
)

// SupplierRow is one line of Suppliers.csv
type SupplierRow struct {
	Line    int
	ID      int64
	Company string
}

// TagRow is one line of Categories.csv
type TagRow struct {
	Line     int
	ID       int64
	Category string
}

// StaffRow is one line of Staff.csv
type StaffRow struct {
	Line     int
	ID       int64
	FullName string
}

// ProductRow is one line of Products.csv.
// StandardCost is the list price and ListPrice is the selling price.
type ProductRow struct {
	Line            int
	Code            string
	Name            string
	ListPrice       decimal.NullDecimal
	SellingPrice    decimal.NullDecimal
	QuantityPerUnit *int
	Description     string
	SupplierID      *int64
	Discontinued    bool
}

var (
	supplierRules = []FieldRule{
		Field("ID").Required().Int().Unique().Build(),
		Field("Company").Required().MaxLength(255).Build(),
	}
	tagRules = []FieldRule{
		Field("ID").Required().Int().Unique().Build(),
		Field("Category").Required().MaxLength(64).Build(),
	}
	staffRules = []FieldRule{
		Field("ID").Required().Int().Unique().Build(),
		Field("FullName").Required().MaxLength(255).Build(),
	}
	productRules = []FieldRule{
		Field("ProductCode").Required().MaxLength(255).Unique().Build(),
		Field("ProductName").Required().MaxLength(255).Unique().Build(),
		Field("StandardCost").Decimal().NonNegative().Build(),
		Field("ListPrice").Decimal().NonNegative().Build(),
		Field("QuantityPerUnit").Int().NonNegative().Build(),
		Field("Description").Build(),
		Field("SupplierID").Int().Build(),
		Field("Discontinued").Bool().Build(),
	}
)

// ReadSuppliers parses Suppliers.csv. Rows failing validation are reported in the
// collection and left out of the result.
func ReadSuppliers(r io.Reader) ([]SupplierRow, *ErrorCollection, error) {
	var out []SupplierRow
	errs, err := readValidated(r, supplierRules, func(row *Row) {
		out = append(out, SupplierRow{Line: row.LineNumber, ID: mustInt(row.Get("ID")), Company: row.Get("Company")})
	})
	return out, errs, err
}

// ReadTags parses Categories.csv
func ReadTags(r io.Reader) ([]TagRow, *ErrorCollection, error) {
	var out []TagRow
	errs, err := readValidated(r, tagRules, func(row *Row) {
		out = append(out, TagRow{Line: row.LineNumber, ID: mustInt(row.Get("ID")), Category: row.Get("Category")})
	})
	return out, errs, err
}

// ReadStaff parses Staff.csv
func ReadStaff(r io.Reader) ([]StaffRow, *ErrorCollection, error) {
	var out []StaffRow
	errs, err := readValidated(r, staffRules, func(row *Row) {
		out = append(out, StaffRow{Line: row.LineNumber, ID: mustInt(row.Get("ID")), FullName: row.Get("FullName")})
	})
	return out, errs, err
}

// ReadProducts parses Products.csv
func ReadProducts(r io.Reader) ([]ProductRow, *ErrorCollection, error) {
	var out []ProductRow
	errs, err := readValidated(r, productRules, func(row *Row) {
		p := ProductRow{
			Line:         row.LineNumber,
			Code:         row.Get("ProductCode"),
			Name:         row.Get("ProductName"),
			ListPrice:    nullDecimal(row.Get("StandardCost")),
			SellingPrice: nullDecimal(row.Get("ListPrice")),
			Description:  row.Get("Description"),
		}
		if v := row.Get("QuantityPerUnit"); v != "" {
			q := int(mustInt(v))
			p.QuantityPerUnit = &q
		}
		if v := row.Get("SupplierID"); v != "" {
			id := mustInt(v)
			p.SupplierID = &id
		}
		// productRules rejected malformed cells before accept
		p.Discontinued, _ = ParseBool(row.Get("Discontinued"))
		out = append(out, p)
	})
	return out, errs, err
}

// OpenSource opens a seed file inside dir
func OpenSource(dir, name string) (*os.File, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("open seed source %s: %w", name, err)
	}
	return f, nil
}

func readValidated(r io.Reader, rules []FieldRule, accept func(*Row)) (*ErrorCollection, error) {
	parser, err := NewCSVParser(r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}

	validator := NewFieldValidator(rules, 0)
	if missing := parser.MissingHeaders(validator.Columns()); len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return validator.Errors(), err
	}
	for _, row := range rows {
		stripMoney(row, rules)
		if validator.ValidateRow(row) {
			accept(row)
		}
	}
	return validator.Errors(), nil
}

// stripMoney removes currency symbols and thousands separators from decimal columns
func stripMoney(row *Row, rules []FieldRule) {
	for _, rule := range rules {
		if rule.Type != TypeDecimal {
			continue
		}
		v := row.Data[rule.Column]
		v = strings.TrimPrefix(v, "$")
		row.Data[rule.Column] = strings.ReplaceAll(v, ",", "")
	}
}

func nullDecimal(v string) decimal.NullDecimal {
	if v == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func mustInt(v string) int64 {
	n, _ := strconv.ParseInt(v, 10, 64)
	return n
}
