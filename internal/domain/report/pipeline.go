package report

import (
	"sort"

	"github.com/fcinventory/backend/internal/domain/catalog"
	"github.com/fcinventory/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// FilterSales keeps sales inside (StartDate, EndDate] and, when set, recorded by StaffID.
// Undated sales are dropped whenever any date bound is set.
func FilterSales(in []sales.Sale, filter SummaryFilter) []sales.Sale {
	out := make([]sales.Sale, 0, len(in))
	for _, s := range in {
		if filter.HasDateBounds() {
			if s.Date == nil {
				continue
			}
			if filter.StartDate != nil && !s.Date.After(*filter.StartDate) {
				continue
			}
			if filter.EndDate != nil && s.Date.After(*filter.EndDate) {
				continue
			}
		}
		if filter.StaffID != nil && (s.StaffID == nil || *s.StaffID != *filter.StaffID) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// JoinSales inner-joins sales to products and left-joins them to staff.
// Sales whose product is unknown are dropped; unknown staff leaves the staff name nil.
func JoinSales(in []sales.Sale, products []catalog.Product, staff []sales.Staff) []SaleRecord {
	productByID := make(map[int64]catalog.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}
	staffByID := make(map[int64]sales.Staff, len(staff))
	for _, st := range staff {
		staffByID[st.ID] = st
	}

	out := make([]SaleRecord, 0, len(in))
	for _, s := range in {
		p, ok := productByID[s.ProductID]
		if !ok {
			continue
		}
		rec := SaleRecord{
			SaleID:          s.ID,
			Date:            s.Date,
			RawQuantity:     s.Quantity,
			SpecialPrice:    s.SpecialPrice,
			UseListPrice:    s.UseListPrice,
			SoldPrice:       s.SoldPrice,
			Notes:           s.Notes,
			ProductID:       p.ID,
			ProductCode:     p.Code,
			ProductName:     p.Name,
			ProductFullname: p.Fullname,
			ListPrice:       p.ListPrice,
			SellingPrice:    p.SellingPrice,
			StaffID:         s.StaffID,
		}
		if s.StaffID != nil {
			if st, ok := staffByID[*s.StaffID]; ok {
				name := st.Name
				rec.StaffName = &name
			}
		}
		out = append(out, rec)
	}
	return out
}

// NormalizeRecords fills the quantity, derives the YYYY-MM-DD date key in UTC and sorts
// by date ascending with undated records last. The input slice is sorted in place.
// Keys use UTC so they agree with date-only filter bounds, which parse as midnight UTC.
func NormalizeRecords(records []SaleRecord) []SaleRecord {
	for i := range records {
		records[i].Quantity = sales.EffectiveQuantity(records[i].RawQuantity)
		if records[i].Date != nil {
			key := records[i].Date.UTC().Format(DateKeyLayout)
			records[i].DateKey = &key
		} else {
			records[i].DateKey = nil
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Date, records[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return records
}

// DecorateRecords sets GrossSales and Profit on every record
func DecorateRecords(records []SaleRecord) []SaleRecord {
	for i := range records {
		records[i].GrossSales = GrossSales(records[i])
		records[i].Profit = Profit(records[i])
	}
	return records
}

// FoldByDate sums value per date key. Dated buckets come back ordered by key; undated
// records collapse into a single bucket with a nil X. Both slices are non-nil.
func FoldByDate(records []SaleRecord, value func(SaleRecord) decimal.Decimal) (dated, missing []ChartPoint) {
	sums := make(map[string]decimal.Decimal)
	keys := make([]string, 0)
	missingSum := decimal.Zero
	hasMissing := false

	for _, rec := range records {
		v := value(rec)
		if rec.DateKey == nil {
			missingSum = missingSum.Add(v)
			hasMissing = true
			continue
		}
		k := *rec.DateKey
		if _, seen := sums[k]; !seen {
			keys = append(keys, k)
		}
		sums[k] = sums[k].Add(v)
	}
	sort.Strings(keys)

	dated = make([]ChartPoint, 0, len(keys))
	for _, k := range keys {
		x := k
		dated = append(dated, ChartPoint{X: &x, Y: sums[k].Round(2).InexactFloat64()})
	}
	missing = make([]ChartPoint, 0, 1)
	if hasMissing {
		missing = append(missing, ChartPoint{X: nil, Y: missingSum.Round(2).InexactFloat64()})
	}
	return dated, missing
}

// BuildRecords runs filter, join, normalize and decorate over the dataset
func BuildRecords(data Dataset, filter SummaryFilter) []SaleRecord {
	filtered := FilterSales(data.Sales, filter)
	joined := JoinSales(filtered, data.Products, data.Staff)
	return DecorateRecords(NormalizeRecords(joined))
}

// SummarizeRecords totals decorated records and folds them into chart series
func SummarizeRecords(records []SaleRecord) SalesSummary {
	gross, profit := decimal.Zero, decimal.Zero
	for _, rec := range records {
		gross = gross.Add(rec.GrossSales)
		profit = profit.Add(rec.Profit)
	}

	summary := SalesSummary{
		GrossSales: gross.Round(2).InexactFloat64(),
		Profits:    profit.Round(2).InexactFloat64(),
	}
	summary.ChartGross, summary.ChartGrossMissingDate = FoldByDate(records, grossValue)
	summary.ChartProfit, summary.ChartProfitMissingDate = FoldByDate(records, profitValue)
	summary.ChartCount, summary.ChartCountMissingDate = FoldByDate(records, quantityValue)
	return summary
}

// Summarize builds the full sales summary for the dataset
func Summarize(data Dataset, filter SummaryFilter) SalesSummary {
	return SummarizeRecords(BuildRecords(data, filter))
}

func grossValue(rec SaleRecord) decimal.Decimal    { return rec.GrossSales }
func profitValue(rec SaleRecord) decimal.Decimal   { return rec.Profit }
func quantityValue(rec SaleRecord) decimal.Decimal { return decimal.NewFromInt(rec.Quantity) }
