package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/fcinventory/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// ExportColumns is the header row of the sales export
var ExportColumns = []string{
	"sale_id", "date", "quantity", "product_id", "product_code", "product_name", "product_fullname",
	"list_price", "selling_price", "special_price", "use_list_price", "sold_price",
	"staff_id", "staff_name", "notes", "gross_sales", "profit",
}

const exportTimeLayout = "2006-01-02 15:04:05"

// WriteCSV writes records as CSV. Null values become empty cells.
func WriteCSV(w io.Writer, records []report.SaleRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return err
	}
	for i := range records {
		if err := cw.Write(exportRow(&records[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRow(r *report.SaleRecord) []string {
	date := ""
	if r.Date != nil {
		date = r.Date.UTC().Format(exportTimeLayout)
	}
	fullname, staffID, staffName := "", "", ""
	if r.ProductFullname != nil {
		fullname = *r.ProductFullname
	}
	if r.StaffID != nil {
		staffID = strconv.FormatInt(*r.StaffID, 10)
	}
	if r.StaffName != nil {
		staffName = *r.StaffName
	}
	return []string{
		strconv.FormatInt(r.SaleID, 10),
		date,
		strconv.FormatInt(r.Quantity, 10),
		strconv.FormatInt(r.ProductID, 10),
		r.ProductCode,
		r.ProductName,
		fullname,
		money(r.ListPrice),
		money(r.SellingPrice),
		money(r.SpecialPrice),
		strconv.FormatBool(r.UseListPrice),
		money(r.SoldPrice),
		staffID,
		staffName,
		r.Notes,
		r.GrossSales.StringFixed(2),
		r.Profit.StringFixed(2),
	}
}

func money(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}
