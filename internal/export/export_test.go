package export

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/readingroadmap/bestsellers/internal/transform"
)

var testRecords = []transform.BookRecord{
	{Title: "Charlotte's Web", Author: "E. B. White", ISBN: "9780064400558", ARLevel: 0.0, Course: "YELLOW_BASIC", Level: "AGE_0"},
	{Title: "Holes", Author: "Louis Sachar", ISBN: "9780440414803", ARLevel: 0.0, Course: "PURPLE_CHAPTER", Level: "GRADE_6"},
}

func TestRenderSQL(t *testing.T) {
	got := RenderSQL("header", []string{"A;\nB;\n", "", "C;\nD;\n"})

	assert.Equal(t, "-- header\n\nA;\nB;\n\n\nC;\nD;\n\n", got)
}

func TestWriteSQLOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sql")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new file"), 0644))

	require.NoError(t, WriteSQL(path, "h", []string{"X;\n"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "-- h\n\nX;\n\n", string(data))
}

func TestWriteSpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.xlsx")

	require.NoError(t, WriteSpreadsheet(path, testRecords))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)

	rows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, SpreadsheetHeader, rows[0])
	assert.Equal(t, "Charlotte's Web", rows[1][0])
	assert.Equal(t, "PURPLE_CHAPTER", rows[2][4])
	assert.Equal(t, "GRADE_6", rows[2][5])

	for _, row := range rows[1:] {
		level, err := strconv.ParseFloat(row[3], 64)
		require.NoError(t, err)
		assert.Equal(t, 0.0, level)
	}
}

func TestWriteSpreadsheetHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, WriteSpreadsheet(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, SpreadsheetHeader, rows[0])
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.parquet")

	require.NoError(t, WriteParquet(path, testRecords))

	got, err := ReadParquet(path)
	require.NoError(t, err)
	assert.Equal(t, testRecords, got)
}

func TestReadParquetMissingFile(t *testing.T) {
	_, err := ReadParquet(filepath.Join(t.TempDir(), "missing.parquet"))
	assert.Error(t, err)
}
