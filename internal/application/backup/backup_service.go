// Package backup exports every inventory table to CSV and packs the files into a
// timestamped zip archive.
package backup

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TimestampLayout names the backup folder and archive
const TimestampLayout = "20060102_150405"

// TableDumper writes one table as CSV
type TableDumper interface {
	Dump(ctx context.Context, table string, w io.Writer) (int, error)
}

// ArchiveUploader ships a finished archive off the host
type ArchiveUploader interface {
	UploadArchive(ctx context.Context, path string) (string, error)
}

// TableDump reports one dumped table
type TableDump struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
}

// Result describes a finished backup
type Result struct {
	ArchivePath string      `json:"archive_path"`
	Tables      []TableDump `json:"tables"`
	UploadedKey string      `json:"uploaded_key,omitempty"`
}

// Service runs backups
type Service struct {
	dumper   TableDumper
	tables   []string
	uploader ArchiveUploader
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithUploader uploads each archive after it is written
func WithUploader(u ArchiveUploader) Option {
	return func(s *Service) {
		s.uploader = u
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source of the archive name
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a backup service over the given tables, archived in that order
func NewService(dumper TableDumper, tables []string, opts ...Option) *Service {
	s := &Service{
		dumper: dumper,
		tables: tables,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run writes <dest>/inventory_backup_<ts>.zip. Table CSVs are staged in
// <dest>/backup_<ts>/, which is removed before returning.
func (s *Service) Run(ctx context.Context, dest string) (*Result, error) {
	ts := s.now().Format(TimestampLayout)
	staging := filepath.Join(dest, "backup_"+ts)
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return nil, fmt.Errorf("create backup folder: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			s.logger.Warn("Failed to remove backup staging folder", zap.String("path", staging), zap.Error(err))
		}
	}()
	s.logger.Info("Backup started", zap.String("staging", staging))

	dumps, err := s.dumpTables(ctx, staging)
	if err != nil {
		return nil, err
	}

	archive := filepath.Join(dest, "inventory_backup_"+ts+".zip")
	if err := s.writeArchive(archive, staging); err != nil {
		_ = os.Remove(archive)
		return nil, err
	}
	if err := s.removeStaged(staging); err != nil {
		return nil, err
	}

	result := &Result{ArchivePath: archive, Tables: dumps}
	if s.uploader != nil {
		key, err := s.uploader.UploadArchive(ctx, archive)
		if err != nil {
			return result, fmt.Errorf("upload backup archive: %w", err)
		}
		result.UploadedKey = key
	}

	s.logger.Info("Backup finished",
		zap.String("archive", archive),
		zap.Int("tables", len(dumps)),
		zap.String("uploaded_key", result.UploadedKey))
	return result, nil
}

// dumpTables writes each table to its own CSV, one goroutine per table
func (s *Service) dumpTables(ctx context.Context, staging string) ([]TableDump, error) {
	dumps := make([]TableDump, len(s.tables))
	g, gctx := errgroup.WithContext(ctx)
	for i, table := range s.tables {
		g.Go(func() error {
			f, err := os.Create(filepath.Join(staging, table+".csv"))
			if err != nil {
				return fmt.Errorf("create %s.csv: %w", table, err)
			}
			n, dumpErr := s.dumper.Dump(gctx, table, f)
			if err := errors.Join(dumpErr, f.Close()); err != nil {
				return fmt.Errorf("dump %s: %w", table, err)
			}
			dumps[i] = TableDump{Table: table, Rows: n}
			s.logger.Debug("Table dumped", zap.String("table", table), zap.Int("rows", n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dumps, nil
}

func (s *Service) writeArchive(archive, staging string) error {
	out, err := os.Create(archive)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	zw := zip.NewWriter(out)

	modified := s.now()
	for _, table := range s.tables {
		if err := addFile(zw, filepath.Join(staging, table+".csv"), modified); err != nil {
			_ = zw.Close()
			_ = out.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("finish archive: %w", err)
	}
	return out.Close()
}

func addFile(zw *zip.Writer, path string, modified time.Time) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer in.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     filepath.Base(path),
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return fmt.Errorf("add %s: %w", filepath.Base(path), err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("compress %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Service) removeStaged(staging string) error {
	for _, table := range s.tables {
		if err := os.Remove(filepath.Join(staging, table+".csv")); err != nil {
			return fmt.Errorf("remove staged csv: %w", err)
		}
	}
	if err := os.Remove(staging); err != nil {
		return fmt.Errorf("remove backup folder: %w", err)
	}
	return nil
}
