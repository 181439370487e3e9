package report

import (
	"time"

	"github.com/fcinventory/backend/internal/domain/catalog"
	"github.com/fcinventory/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// DateKeyLayout is the canonical date bucket format of the report
const DateKeyLayout = "2006-01-02"

// Dataset is the raw input of the sales summary.
// Callers load it; the summary itself never touches storage.
type Dataset struct {
	Sales    []sales.Sale
	Products []catalog.Product
	Staff    []sales.Staff
}

// SummaryFilter restricts which sales enter the summary.
// Dates select the interval (StartDate, EndDate].
type SummaryFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	StaffID   *int64
}

// HasDateBounds reports whether any date bound is set
func (f SummaryFilter) HasDateBounds() bool {
	return f.StartDate != nil || f.EndDate != nil
}

// SaleRecord is a sale joined to its product and staff member, decorated with
// gross sales and profit
type SaleRecord struct {
	SaleID       int64
	Date         *time.Time
	DateKey      *string
	RawQuantity  *int
	Quantity     int64
	SpecialPrice decimal.NullDecimal
	UseListPrice bool
	SoldPrice    decimal.NullDecimal
	Notes        string

	ProductID       int64
	ProductCode     string
	ProductName     string
	ProductFullname *string
	ListPrice       decimal.NullDecimal
	SellingPrice    decimal.NullDecimal

	StaffID   *int64
	StaffName *string

	GrossSales decimal.Decimal
	Profit     decimal.Decimal
}

// ChartPoint is one bucket of a chart series. X is nil for the missing-date bucket.
type ChartPoint struct {
	X *string `json:"x"`
	Y float64 `json:"y"`
}

// SalesSummary is the folded sales report
type SalesSummary struct {
	GrossSales             float64      `json:"gross_sales"`
	Profits                float64      `json:"profits"`
	ChartGross             []ChartPoint `json:"chart_gross"`
	ChartGrossMissingDate  []ChartPoint `json:"chart_gross_missing_date"`
	ChartProfit            []ChartPoint `json:"chart_profit"`
	ChartProfitMissingDate []ChartPoint `json:"chart_profit_missing_date"`
	ChartCount             []ChartPoint `json:"chart_count"`
	ChartCountMissingDate  []ChartPoint `json:"chart_count_missing_date"`
}
