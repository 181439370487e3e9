package persistence

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/fcinventory/backend/internal/infrastructure/config"

	// database/sql drivers for the raw table dump
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// BackupTables lists the tables written by a backup, in archive order
var BackupTables = []string{"product", "product_tags", "sale", "staff", "supplier", "tag"}

// OpenSQL opens a plain database/sql handle. driver is "sqlite" or "postgres";
// for sqlite dsn is the database file path.
func OpenSQL(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "sqlite":
		return sql.Open("sqlite3", SQLiteDSN(dsn))
	case "postgres":
		return sql.Open("postgres", dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// OpenConfiguredSQL is OpenSQL for the configured driver
func OpenConfiguredSQL(cfg *config.DatabaseConfig) (*sql.DB, error) {
	if cfg.Driver == "postgres" {
		return OpenSQL(cfg.Driver, cfg.DSN())
	}
	return OpenSQL(cfg.Driver, cfg.File)
}

// TableDumper writes whole tables as CSV with a header row of column names
type TableDumper struct {
	db *sql.DB
}

// NewTableDumper creates a TableDumper over db
func NewTableDumper(db *sql.DB) *TableDumper {
	return &TableDumper{db: db}
}

// Dump writes every row of table to w and returns the number of data rows written
func (d *TableDumper) Dump(ctx context.Context, table string, w io.Writer) (int, error) {
	if !slices.Contains(BackupTables, table) {
		return 0, fmt.Errorf("table %q is not part of the backup set", table)
	}

	rows, err := d.db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return 0, fmt.Errorf("columns of %s: %w", table, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return 0, err
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	record := make([]string, len(columns))

	n := 0
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return n, fmt.Errorf("scan %s: %w", table, err)
		}
		for i, v := range values {
			record[i] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return n, err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return n, fmt.Errorf("read %s: %w", table, err)
	}

	cw.Flush()
	return n, cw.Error()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case time.Time:
		return x.Format("2006-01-02 15:04:05.999999")
	default:
		return fmt.Sprint(x)
	}
}
