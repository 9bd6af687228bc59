// =============================================================================
// Travel Voucher Generator - Row Extraction
// =============================================================================
//
// Turns the raw sheet grid into a flat list of RowRecord values, one per
// dated itinerary row. Everything below this layer works on RowRecords and
// never touches the spreadsheet again.
//
// =============================================================================

package orga

import (
	"strings"
	"time"

	"github.com/PierreFinestTravel/Vouchersystem/internal/xlsxio"
)

const (
	// headerSearchRows is how many leading rows are scanned for the header.
	headerSearchRows = 30

	// defaultHeaderRow is used when no "Days" header is found. Matches the
	// position in the compact sheet format.
	defaultHeaderRow = 10

	// dataSearchRows is how far below the header the first dated row is
	// expected.
	dataSearchRows = 10

	// metadataRows is the header block above the itinerary that carries
	// trip metadata as label/value pairs.
	metadataRows = 9

	// metadataValueCol is the column holding metadata values; labels sit in
	// column 1.
	metadataValueCol = 4
)

// =============================================================================
// ROW RECORD
// =============================================================================

// RowRecord is one dated itinerary row with every cell the segmenters care
// about, read through the detected column map. Cells keep their embedded
// newlines; the segmenters split them.
type RowRecord struct {
	Row  int
	Date time.Time

	Days string

	// Hotel section
	RegionCity    string
	HotelSupplier string
	Room          string
	Board         string
	HotelStatus   string
	HotelNotes    string

	// Golf section
	GolfSupplier string
	GolfCourse   string
	TeeTime      string
	GolfCart     string
	RentalSet    string
	GolfNotes    string

	// Activity section
	ActivitySupplier string
	ActivityName     string
	ActivityTime     string
	ActivityNotes    string

	// Transfer section
	TransferSupplier string
	TransferRoute    string
	ServiceType      string
	PickupTime       string
	DropoffTime      string
	FlightNum        string
	FlightTime       string
	TransferNotes    string
	TransferStatus   string
}

// =============================================================================
// ROW LOCATION
// =============================================================================

// FindHeaderRow locates the row carrying the column headers, identified by
// the "Days" label in column 1.
func FindHeaderRow(s *xlsxio.Sheet) int {
	for row := 1; row < headerSearchRows; row++ {
		if strings.EqualFold(s.Cell(row, 1), "days") {
			return row
		}
	}
	return defaultHeaderRow
}

// FindDataStart locates the first dated itinerary row below the header.
// Example rows (marked "e.g" in the days column) are skipped.
func FindDataStart(s *xlsxio.Sheet, headerRow int) int {
	defaults := DefaultColumnMap()
	for row := headerRow + 1; row < headerRow+dataSearchRows; row++ {
		if _, ok := s.Date(row, defaults.Date); !ok {
			continue
		}
		if strings.EqualFold(s.Cell(row, defaults.Days), "e.g") {
			continue
		}
		return row
	}
	return headerRow + 2
}

// =============================================================================
// EXTRACTION
// =============================================================================

// ExtractRows reads every dated row from startRow to the end of the sheet.
// An undated row whose first column mentions "action" or "book" marks the
// end of the itinerary; other undated rows are simply skipped.
func ExtractRows(s *xlsxio.Sheet, cols ColumnMap, startRow int) []RowRecord {
	var rows []RowRecord

	for row := startRow; row <= s.MaxRow(); row++ {
		date, ok := s.Date(row, cols.Date)
		if !ok {
			first := strings.ToLower(s.Cell(row, 1))
			if strings.Contains(first, "action") || strings.Contains(first, "book") {
				break
			}
			continue
		}

		rows = append(rows, RowRecord{
			Row:  row,
			Date: date,
			Days: s.Cell(row, cols.Days),

			RegionCity:    s.Cell(row, cols.RegionCity),
			HotelSupplier: s.Cell(row, cols.HotelSupplier),
			Room:          s.Cell(row, cols.Room),
			Board:         s.Cell(row, cols.Board),
			HotelStatus:   s.Cell(row, cols.HotelStatus),
			HotelNotes:    s.Cell(row, cols.HotelNotes),

			GolfSupplier: s.Cell(row, cols.GolfSupplier),
			GolfCourse:   s.Cell(row, cols.GolfCourse),
			TeeTime:      s.Cell(row, cols.TeeTime),
			GolfCart:     s.Cell(row, cols.GolfCart),
			RentalSet:    s.Cell(row, cols.RentalSet),
			GolfNotes:    s.Cell(row, cols.GolfNotes),

			ActivitySupplier: s.Cell(row, cols.ActivitySupplier),
			ActivityName:     s.Cell(row, cols.ActivityName),
			ActivityTime:     s.Cell(row, cols.ActivityTime),
			ActivityNotes:    s.Cell(row, cols.ActivityNotes),

			TransferSupplier: s.Cell(row, cols.TransferSupplier),
			TransferRoute:    s.Cell(row, cols.TransferRoute),
			ServiceType:      s.Cell(row, cols.ServiceType),
			PickupTime:       s.Cell(row, cols.PickupTime),
			DropoffTime:      s.Cell(row, cols.DropoffTime),
			FlightNum:        s.Cell(row, cols.FlightNum),
			FlightTime:       s.Cell(row, cols.FlightTime),
			TransferNotes:    s.Cell(row, cols.TransferNotes),
			TransferStatus:   s.Cell(row, cols.TransferStatus),
		})
	}

	return rows
}

// =============================================================================
// CELL SPLITTING
// =============================================================================

// splitLines splits a multi-line cell into trimmed, non-empty lines.
func splitLines(cell string) []string {
	var out []string
	for _, line := range strings.Split(cell, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// splitRaw splits a multi-line cell keeping empty lines, so positional
// columns (times, flight numbers) stay aligned with their supplier line.
func splitRaw(cell string) []string {
	return strings.Split(cell, "\n")
}

// lineAt returns the idx-th element of lines, or "" past the end.
func lineAt(lines []string, idx int) string {
	if idx < len(lines) {
		return strings.TrimSpace(lines[idx])
	}
	return ""
}
