package persistence

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableDumper_Dump(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := OpenSQL("sqlite", filepath.Join(t.TempDir(), "dump.sqlite"))
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = sqlDB.ExecContext(ctx, `CREATE TABLE staff (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = sqlDB.ExecContext(ctx, `INSERT INTO staff (id, name) VALUES (1, 'Dr. Lee'), (2, 'Sam, Jr.')`)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := NewTableDumper(sqlDB).Dump(ctx, "staff", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "name"},
		{"1", "Dr. Lee"},
		{"2", "Sam, Jr."},
	}, records)
}

func TestTableDumper_RejectsUnknownTable(t *testing.T) {
	sqlDB, err := OpenSQL("sqlite", filepath.Join(t.TempDir(), "dump.sqlite"))
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = NewTableDumper(sqlDB).Dump(context.Background(), "sqlite_master", &bytes.Buffer{})
	assert.ErrorContains(t, err, "not part of the backup set")
}

func TestOpenSQL_UnknownDriver(t *testing.T) {
	_, err := OpenSQL("mysql", "")
	assert.Error(t, err)
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", formatCell(nil))
	assert.Equal(t, "10.5", formatCell(10.5))
	assert.Equal(t, "15", formatCell(float64(15)))
	assert.Equal(t, "1", formatCell(true))
	assert.Equal(t, "abc", formatCell([]byte("abc")))
	assert.Equal(t, "2024-03-02 10:00:00", formatCell(time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)))
}
