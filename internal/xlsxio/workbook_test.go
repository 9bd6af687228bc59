package xlsxio

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testSheet(t *testing.T, set func(f *excelize.File)) *Sheet {
	t.Helper()
	f := excelize.NewFile()
	set(f)
	s, err := FromFile(f).Sheet("Sheet1")
	require.NoError(t, err)
	return s
}

func TestCellTrimsWhitespace(t *testing.T) {
	s := testSheet(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "  Whale Rock  "))
		require.NoError(t, f.SetCellValue("Sheet1", "B2", "line1\nline2"))
	})

	assert.Equal(t, "Whale Rock", s.Cell(1, 1))
	// Newlines inside cells survive.
	assert.Equal(t, "line1\nline2", s.Cell(2, 2))
	// Out-of-range addresses are empty, never a panic.
	assert.Equal(t, "", s.Cell(99, 99))
	assert.Equal(t, "", s.Cell(0, 0))
}

func TestDateFromSerial(t *testing.T) {
	s := testSheet(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A1", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	})

	got, ok := s.Date(1, 1)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestDateRejectsPlainNumbers(t *testing.T) {
	s := testSheet(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A1", 4))
		require.NoError(t, f.SetCellValue("Sheet1", "A2", 1250.5))
	})

	// A bare number in a date column is a count or a price, not the serial
	// of a date cell.
	_, ok := s.Date(1, 1)
	assert.False(t, ok)
	_, ok = s.Date(2, 1)
	assert.False(t, ok)
}

func TestDateFromTypedStrings(t *testing.T) {
	s := testSheet(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "2025-03-01"))
		require.NoError(t, f.SetCellValue("Sheet1", "A2", "01.03.2025"))
		require.NoError(t, f.SetCellValue("Sheet1", "A3", "1.3.2025"))
		require.NoError(t, f.SetCellValue("Sheet1", "A4", "not a date"))
		require.NoError(t, f.SetCellValue("Sheet1", "A5", ""))
	})

	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for row := 1; row <= 3; row++ {
		got, ok := s.Date(row, 1)
		require.True(t, ok, "row %d", row)
		assert.Equal(t, want, got, "row %d", row)
	}

	_, ok := s.Date(4, 1)
	assert.False(t, ok)
	_, ok = s.Date(5, 1)
	assert.False(t, ok)
}

func TestParseDateString(t *testing.T) {
	got, ok := ParseDateString(" 2025-03-01 10:30:00 ")
	require.True(t, ok)
	// Time of day is discarded.
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseDateString("01/03/2025")
	assert.False(t, ok)
}

func TestMaxRowAndCol(t *testing.T) {
	s := testSheet(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "C3", "x"))
	})

	assert.Equal(t, 3, s.MaxRow())
	assert.Equal(t, 3, s.MaxCol())
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestSheetNames(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("Orga 0825")
	require.NoError(t, err)

	wb := FromFile(f)
	assert.Equal(t, []string{"Sheet1", "Orga 0825"}, wb.SheetNames())
	assert.Equal(t, "Sheet1", wb.ActiveSheetName())
}
