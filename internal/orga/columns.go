// =============================================================================
// Travel Voucher Generator - Column Detection
// =============================================================================
//
// Planning sheets are authored by hand and the column layout drifts between
// trips. This module detects the role of each column from the header row
// instead of trusting fixed positions.
//
// The sheet always keeps its sections in the same left-to-right order:
//
//   Hotel -> Golf -> Activity -> Transfer
//
// which is what lets ambiguous headers be resolved: a bare "Supplier" header
// is the activity supplier when it appears after the golf section, and the
// transfer supplier when it appears after the activity section. Rules are
// evaluated in order per column; the first matching rule claims the column,
// and a later column matching the same role overwrites the earlier claim.
//
// Detection never fails: any role without a matching header keeps its
// default position from the compact sheet format.
//
// =============================================================================

package orga

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/PierreFinestTravel/Vouchersystem/internal/xlsxio"
)

// =============================================================================
// DETECTION CONSTANTS
// =============================================================================

const (
	// columnScanLimit caps how many columns of the header row are examined.
	columnScanLimit = 60

	// activitySupplierLookback is how many columns to search backwards from
	// an "Activity" header for its bare "Supplier" companion. Chosen from
	// the sheet layouts in circulation; wider layouts would need a larger
	// window.
	activitySupplierLookback = 4

	// transferSupplierLookback is the backward search window from a
	// transport/route header to its bare "Supplier" companion.
	transferSupplierLookback = 2
)

// =============================================================================
// COLUMN MAP
// =============================================================================

// ColumnMap holds the 1-indexed column position of every role the parsers
// read. A zero value means the role has no column in this sheet.
type ColumnMap struct {
	// Hotel section
	Days          int
	Day           int
	Date          int
	RegionCity    int
	HotelSupplier int
	Room          int
	Board         int
	HotelNotes    int
	HotelStatus   int
	HotelInvoice  int

	// Golf section
	GolfSupplier int
	GolfCourse   int
	TeeTime      int
	DrivingRange int
	GolfCart     int
	RentalSet    int
	GolfNotes    int
	GolfStatus   int
	GolfInvoice  int

	// Activity section
	ActivitySupplier int
	ActivityName     int
	ActivityTime     int
	ActivityNotes    int
	ActivityStatus   int
	ActivityInvoice  int

	// Transfer section
	TransferSupplier int
	TransferRoute    int
	ServiceType      int
	PickupTime       int
	DropoffTime      int
	FlightNum        int
	FlightTime       int
	TravelTime       int
	TransferNotes    int
	TransferStatus   int
	TransferInvoice  int
}

// DefaultColumnMap returns the column positions of the compact sheet format.
// These are the fallback when header detection finds nothing better.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		Days:          1,
		Day:           2,
		Date:          3,
		RegionCity:    4,
		HotelSupplier: 5,
		Room:          6,
		Board:         7,
		HotelNotes:    8,
		HotelStatus:   9,
		HotelInvoice:  10,

		GolfSupplier: 11,
		GolfCourse:   12,
		TeeTime:      13,
		DrivingRange: 0, // not present in the compact format
		GolfCart:     14,
		RentalSet:    15,
		GolfNotes:    16,
		GolfStatus:   17,
		GolfInvoice:  18,

		ActivitySupplier: 20,
		ActivityName:     21,
		ActivityTime:     22,
		ActivityNotes:    23,
		ActivityStatus:   24,
		ActivityInvoice:  25,

		TransferSupplier: 26,
		TransferRoute:    27,
		ServiceType:      28,
		PickupTime:       29,
		DropoffTime:      30,
		FlightNum:        31,
		FlightTime:       32,
		TravelTime:       33,
		TransferNotes:    34,
		TransferStatus:   35,
		TransferInvoice:  36,
	}
}

// =============================================================================
// DETECTION
// =============================================================================

// headerRule pairs a header predicate with the role assignment it triggers.
// Rules are tried in order per column; the first match claims the column.
type headerRule struct {
	match  func(h string) bool
	assign func(m *ColumnMap, col int)
}

// DetectColumns maps column positions from the header row of a sheet.
// It is a pure function of the header text: the same row always yields the
// same ColumnMap.
func DetectColumns(s *xlsxio.Sheet, headerRow int) ColumnMap {
	m := DefaultColumnMap()

	// Read all non-empty headers, lowercased.
	limit := s.MaxCol()
	if limit > columnScanLimit {
		limit = columnScanLimit
	}
	headers := make(map[int]string)
	for col := 1; col <= limit; col++ {
		if v := strings.ToLower(s.Cell(headerRow, col)); v != "" {
			headers[col] = v
		}
	}

	cols := make([]int, 0, len(headers))
	for col := range headers {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	log.Debug().
		Int("header_row", headerRow).
		Int("headers", len(headers)).
		Msg("detecting column layout")

	// Section starts, discovered as the scan moves left to right.
	var golfStart, activityStart, transferStart int

	lookbackSupplier := func(from, window int) int {
		for c := from - 1; c >= from-window && c >= 1; c-- {
			if headers[c] == "supplier" {
				return c
			}
		}
		return 0
	}

	rules := []headerRule{
		// Hotel section
		{eq("days"), func(m *ColumnMap, c int) { m.Days = c }},
		{eq("day"), func(m *ColumnMap, c int) { m.Day = c }},
		{eq("date"), func(m *ColumnMap, c int) { m.Date = c }},
		{eq("region/city", "region", "city"), func(m *ColumnMap, c int) { m.RegionCity = c }},
		{hasAll("hotel", "supplier"), func(m *ColumnMap, c int) { m.HotelSupplier = c }},
		{eq("room"), func(m *ColumnMap, c int) { m.Room = c }},
		{eq("board"), func(m *ColumnMap, c int) { m.Board = c }},

		// Golf section, starts at the "golf supplier" header
		{hasAll("golf", "supplier"), func(m *ColumnMap, c int) {
			m.GolfSupplier = c
			golfStart = c
		}},
		{hasAll("golf", "course"), func(m *ColumnMap, c int) { m.GolfCourse = c }},
		{hasAll("tee", "time"), func(m *ColumnMap, c int) { m.TeeTime = c }},
		{hasAll("driving", "range"), func(m *ColumnMap, c int) { m.DrivingRange = c }},
		{hasAll("golf", "cart"), func(m *ColumnMap, c int) { m.GolfCart = c }},
		{hasAll("rental", "set"), func(m *ColumnMap, c int) { m.RentalSet = c }},

		// Activity section. A bare "Supplier" after the golf section is the
		// activity supplier; an "Activity" header also searches backwards
		// for an unclaimed "Supplier" companion.
		{func(h string) bool { return h == "supplier" && golfStart != 0 && activityStart == 0 },
			func(m *ColumnMap, c int) {
				m.ActivitySupplier = c
				activityStart = c
			}},
		{eq("activity"), func(m *ColumnMap, c int) {
			m.ActivityName = c
			if activityStart == 0 {
				if sup := lookbackSupplier(c, activitySupplierLookback); sup != 0 {
					m.ActivitySupplier = sup
					activityStart = sup
				}
			}
		}},

		// Transfer section, by the same convention.
		{func(h string) bool { return h == "supplier" && activityStart != 0 && transferStart == 0 },
			func(m *ColumnMap, c int) {
				m.TransferSupplier = c
				transferStart = c
			}},
		{func(h string) bool {
			return strings.Contains(h, "transport") ||
				(strings.Contains(h, "transfer") && strings.Contains(h, "route"))
		}, func(m *ColumnMap, c int) {
			m.TransferRoute = c
			if transferStart == 0 {
				if sup := lookbackSupplier(c, transferSupplierLookback); sup != 0 {
					m.TransferSupplier = sup
					transferStart = sup
				}
			}
		}},
		{eq("service type"), func(m *ColumnMap, c int) { m.ServiceType = c }},
		{hasAny("p/up", "pickup"), func(m *ColumnMap, c int) { m.PickupTime = c }},
		{hasAny("d/off", "dropoff"), func(m *ColumnMap, c int) { m.DropoffTime = c }},
		{hasAll("flight", "#"), func(m *ColumnMap, c int) { m.FlightNum = c }},
		{hasAll("flight", "time"), func(m *ColumnMap, c int) { m.FlightTime = c }},
		{hasAll("travel", "time"), func(m *ColumnMap, c int) { m.TravelTime = c }},
	}

	for _, col := range cols {
		h := headers[col]
		for _, r := range rules {
			if r.match(h) {
				r.assign(&m, col)
				break
			}
		}
	}

	// Second pass: "Notes", "Status" and invoice columns repeat once per
	// section, so they are attributed to a section by position relative to
	// the detected section starts. Rightmost section wins.
	for _, col := range cols {
		h := headers[col]
		switch {
		case h == "notes":
			switch {
			case transferStart != 0 && col > transferStart:
				m.TransferNotes = col
			case activityStart != 0 && col > activityStart:
				m.ActivityNotes = col
			case golfStart != 0 && col > golfStart:
				m.GolfNotes = col
			case col <= 10:
				m.HotelNotes = col
			}
		case h == "status":
			switch {
			case transferStart != 0 && col > transferStart:
				m.TransferStatus = col
			case activityStart != 0 && col > activityStart:
				m.ActivityStatus = col
			case golfStart != 0 && col > golfStart:
				m.GolfStatus = col
			case col <= 10:
				m.HotelStatus = col
			}
		case strings.Contains(h, "invoice"):
			switch {
			case transferStart != 0 && col > transferStart:
				m.TransferInvoice = col
			case activityStart != 0 && col > activityStart:
				m.ActivityInvoice = col
			case golfStart != 0 && col > golfStart:
				m.GolfInvoice = col
			case col <= 10:
				m.HotelInvoice = col
			}
		}
	}

	log.Debug().
		Int("hotel_supplier", m.HotelSupplier).
		Int("golf_supplier", m.GolfSupplier).
		Int("activity_supplier", m.ActivitySupplier).
		Int("transfer_supplier", m.TransferSupplier).
		Msg("column layout detected")

	return m
}

// =============================================================================
// HEADER PREDICATES
// =============================================================================

func eq(values ...string) func(string) bool {
	return func(h string) bool {
		for _, v := range values {
			if h == v {
				return true
			}
		}
		return false
	}
}

func hasAll(words ...string) func(string) bool {
	return func(h string) bool {
		for _, w := range words {
			if !strings.Contains(h, w) {
				return false
			}
		}
		return true
	}
}

func hasAny(words ...string) func(string) bool {
	return func(h string) bool {
		for _, w := range words {
			if strings.Contains(h, w) {
				return true
			}
		}
		return false
	}
}
