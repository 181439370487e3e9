// Package seed loads the initial inventory from the CSV source exports.
package seed

import (
	"context"
	"fmt"
	"io"

	catalogapp "github.com/fcinventory/backend/internal/application/catalog"
	salesapp "github.com/fcinventory/backend/internal/application/sales"
	csvimport "github.com/fcinventory/backend/internal/infrastructure/import"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SupplierImporter creates suppliers under their source ids
type SupplierImporter interface {
	Import(ctx context.Context, id int64, name string) (*catalogapp.SupplierResponse, error)
}

// TagImporter creates tags under their source ids
type TagImporter interface {
	Import(ctx context.Context, id int64, name string) (*catalogapp.TagResponse, error)
}

// ProductCreator creates products
type ProductCreator interface {
	Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error)
}

// StaffImporter creates staff members under their source ids
type StaffImporter interface {
	Import(ctx context.Context, id int64, name string) (*salesapp.StaffResponse, error)
}

// SequenceSyncer advances id sequences past explicitly inserted ids
type SequenceSyncer interface {
	SyncSequences(ctx context.Context) error
}

// FileReport is the outcome of one source file
type FileReport struct {
	File     string               `json:"file"`
	Imported int                  `json:"imported"`
	Errors   []csvimport.RowError `json:"errors,omitempty"`
	Failed   int                  `json:"failed"`
}

// Report is the outcome of a seed run
type Report struct {
	Files []FileReport `json:"files"`
}

// Failed returns the total number of rejected rows
func (r *Report) Failed() int {
	n := 0
	for _, f := range r.Files {
		n += f.Failed
	}
	return n
}

// Service seeds an empty database
type Service struct {
	suppliers SupplierImporter
	tags      TagImporter
	products  ProductCreator
	staff     StaffImporter
	sequences SequenceSyncer
	logger    *zap.Logger
}

// NewService creates a seed service. sequences may be nil.
func NewService(
	suppliers SupplierImporter,
	tags TagImporter,
	products ProductCreator,
	staff StaffImporter,
	sequences SequenceSyncer,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		suppliers: suppliers,
		tags:      tags,
		products:  products,
		staff:     staff,
		sequences: sequences,
		logger:    logger,
	}
}

// Run reads Suppliers.csv, Categories.csv, Products.csv and Staff.csv from dir, in that order.
// Invalid or rejected rows are reported and skipped; a missing or malformed file stops the run.
func (s *Service) Run(ctx context.Context, dir string) (*Report, error) {
	steps := []struct {
		file string
		load func(context.Context, io.Reader) (int, *csvimport.ErrorCollection, error)
	}{
		{csvimport.SuppliersFile, s.loadSuppliers},
		{csvimport.CategoriesFile, s.loadTags},
		{csvimport.ProductsFile, s.loadProducts},
		{csvimport.StaffFile, s.loadStaff},
	}

	report := &Report{}
	for _, step := range steps {
		f, err := csvimport.OpenSource(dir, step.file)
		if err != nil {
			return report, err
		}
		imported, errs, err := step.load(ctx, f)
		_ = f.Close()
		if err != nil {
			return report, fmt.Errorf("%s: %w", step.file, err)
		}

		fr := FileReport{File: step.file, Imported: imported, Errors: errs.Errors(), Failed: errs.TotalCount()}
		report.Files = append(report.Files, fr)
		s.logger.Info("Seed source loaded",
			zap.String("file", step.file),
			zap.Int("imported", imported),
			zap.Int("failed", fr.Failed))
	}

	if s.sequences != nil {
		if err := s.sequences.SyncSequences(ctx); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (s *Service) loadSuppliers(ctx context.Context, r io.Reader) (int, *csvimport.ErrorCollection, error) {
	rows, errs, err := csvimport.ReadSuppliers(r)
	if err != nil {
		return 0, nil, err
	}
	imported := 0
	for _, row := range rows {
		if _, err := s.suppliers.Import(ctx, row.ID, row.Company); err != nil {
			errs.AddRejected(row.Line, err)
			continue
		}
		imported++
	}
	return imported, errs, nil
}

func (s *Service) loadTags(ctx context.Context, r io.Reader) (int, *csvimport.ErrorCollection, error) {
	rows, errs, err := csvimport.ReadTags(r)
	if err != nil {
		return 0, nil, err
	}
	imported := 0
	for _, row := range rows {
		if _, err := s.tags.Import(ctx, row.ID, row.Category); err != nil {
			errs.AddRejected(row.Line, err)
			continue
		}
		imported++
	}
	return imported, errs, nil
}

func (s *Service) loadProducts(ctx context.Context, r io.Reader) (int, *csvimport.ErrorCollection, error) {
	rows, errs, err := csvimport.ReadProducts(r)
	if err != nil {
		return 0, nil, err
	}
	imported := 0
	for _, row := range rows {
		req := catalogapp.CreateProductRequest{
			Code:            row.Code,
			Name:            row.Name,
			Description:     row.Description,
			ListPrice:       decimalPtr(row.ListPrice),
			SellingPrice:    decimalPtr(row.SellingPrice),
			QuantityPerUnit: row.QuantityPerUnit,
			SupplierID:      row.SupplierID,
			Discontinued:    row.Discontinued,
		}
		if _, err := s.products.Create(ctx, req); err != nil {
			errs.AddRejected(row.Line, err)
			continue
		}
		imported++
	}
	return imported, errs, nil
}

func (s *Service) loadStaff(ctx context.Context, r io.Reader) (int, *csvimport.ErrorCollection, error) {
	rows, errs, err := csvimport.ReadStaff(r)
	if err != nil {
		return 0, nil, err
	}
	imported := 0
	for _, row := range rows {
		if _, err := s.staff.Import(ctx, row.ID, row.FullName); err != nil {
			errs.AddRejected(row.Line, err)
			continue
		}
		imported++
	}
	return imported, errs, nil
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
