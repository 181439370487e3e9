package report

import (
	"context"
	"fmt"

	"github.com/fcinventory/backend/internal/domain/catalog"
	"github.com/fcinventory/backend/internal/domain/report"
	"github.com/fcinventory/backend/internal/domain/sales"
	"github.com/fcinventory/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ReportService builds sales reports from the current contents of the store.
// Nothing is cached; each call reloads the three tables.
type ReportService struct {
	saleRepo    sales.SaleRepository
	productRepo catalog.ProductRepository
	staffRepo   sales.StaffRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	saleRepo sales.SaleRepository,
	productRepo catalog.ProductRepository,
	staffRepo sales.StaffRepository,
) *ReportService {
	return &ReportService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		staffRepo:   staffRepo,
	}
}

// SalesSummary returns totals and chart series for the filtered sales
func (s *ReportService) SalesSummary(ctx context.Context, filter report.SummaryFilter) (*report.SalesSummary, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "sales_summary")
	defer span.End()

	records, err := s.records(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	_, foldSpan := telemetry.StartServiceSpan(ctx, "report", "fold")
	summary := report.SummarizeRecords(records)
	foldSpan.End()

	span.SetAttributes(attribute.Int("report.records", len(records)))
	return &summary, nil
}

// ExportRecords returns the decorated records behind the summary, ordered by date
func (s *ReportService) ExportRecords(ctx context.Context, filter report.SummaryFilter) ([]report.SaleRecord, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "export_records")
	defer span.End()

	records, err := s.records(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("report.records", len(records)))
	return records, nil
}

func (s *ReportService) records(ctx context.Context, filter report.SummaryFilter) ([]report.SaleRecord, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	_, span := telemetry.StartServiceSpan(ctx, "report", "decorate",
		attribute.Int("report.sales", len(data.Sales)))
	defer span.End()
	return report.BuildRecords(data, filter), nil
}

func (s *ReportService) load(ctx context.Context) (report.Dataset, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "load")
	defer span.End()

	var data report.Dataset
	var err error
	if data.Sales, err = s.saleRepo.ListAll(ctx); err != nil {
		telemetry.RecordError(span, err)
		return data, fmt.Errorf("load sales: %w", err)
	}
	if data.Products, err = s.productRepo.ListAll(ctx); err != nil {
		telemetry.RecordError(span, err)
		return data, fmt.Errorf("load products: %w", err)
	}
	if data.Staff, err = s.staffRepo.ListAll(ctx); err != nil {
		telemetry.RecordError(span, err)
		return data, fmt.Errorf("load staff: %w", err)
	}
	return data, nil
}
