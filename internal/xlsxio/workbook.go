// =============================================================================
// Travel Voucher Generator - Spreadsheet Access
// =============================================================================
//
// Thin wrapper around excelize that gives the parsers a stable, 1-indexed
// cell grid. Every sheet is materialized twice: once with formatted values
// (what the planner sees) and once with raw values (so date cells keep their
// underlying serial numbers instead of a locale-dependent rendering).
//
// =============================================================================

package xlsxio

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// WORKBOOK
// =============================================================================

// Workbook is an open spreadsheet file.
type Workbook struct {
	f    *excelize.File
	path string
}

// Open opens a workbook from disk.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{f: f, path: path}, nil
}

// FromFile wraps an already open excelize file. Used by tests that build
// workbooks in memory.
func FromFile(f *excelize.File) *Workbook {
	return &Workbook{f: f}
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Path returns the file the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns all sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// ActiveSheetName returns the name of the sheet that was active when the
// workbook was last saved.
func (w *Workbook) ActiveSheetName() string {
	return w.f.GetSheetName(w.f.GetActiveSheetIndex())
}

// Sheet materializes a sheet into an addressable grid.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	rows, err := w.f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	raw, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	return &Sheet{Name: name, rows: rows, raw: raw}, nil
}

// =============================================================================
// SHEET
// =============================================================================

// Sheet is a fully materialized sheet. Rows and columns are 1-indexed to
// match how planners talk about their spreadsheets.
type Sheet struct {
	Name string
	rows [][]string
	raw  [][]string
}

// MaxRow returns the number of the last row containing data.
func (s *Sheet) MaxRow() int {
	return len(s.rows)
}

// MaxCol returns the widest column index over all rows.
func (s *Sheet) MaxCol() int {
	max := 0
	for _, r := range s.rows {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}

// Cell returns the formatted value at (row, col), trimmed of surrounding
// whitespace. Newlines inside the cell are preserved; planners use them to
// pack several services into one cell. Out-of-range addresses return "".
func (s *Sheet) Cell(row, col int) string {
	return strings.TrimSpace(s.at(s.rows, row, col))
}

// Raw returns the unformatted value at (row, col). Date cells yield their
// Excel serial number.
func (s *Sheet) Raw(row, col int) string {
	return strings.TrimSpace(s.at(s.raw, row, col))
}

func (s *Sheet) at(grid [][]string, row, col int) string {
	if row < 1 || col < 1 || row > len(grid) {
		return ""
	}
	r := grid[row-1]
	if col > len(r) {
		return ""
	}
	return r[col-1]
}

// =============================================================================
// DATE PARSING
// =============================================================================

// dateLayouts are the string date formats planners actually type into
// cells that are not real date cells.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2.1.2006",
	"2006-01-02 15:04:05",
}

// Date interprets the cell at (row, col) as a calendar date. Real date cells
// arrive as Excel serial numbers in the raw grid; typed dates are matched
// against the known planner formats. The returned time is truncated to
// midnight UTC.
func (s *Sheet) Date(row, col int) (time.Time, bool) {
	raw := s.Raw(row, col)
	if raw == "" {
		return time.Time{}, false
	}

	// Real date cells carry a date number format, so their formatted value
	// differs from the raw serial. A number rendered as itself is a count
	// or a price, not a date.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if s.Cell(row, col) == raw {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return midnight(t), true
	}

	return ParseDateString(raw)
}

// ParseDateString parses a typed date using the known planner formats.
func ParseDateString(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return midnight(t), true
		}
	}
	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
