// =============================================================================
// Travel Voucher Generator - Planning Sheet Parser
// =============================================================================
//
// Top-level orchestration for one planning workbook: pick the right sheet,
// read the trip metadata block, locate the itinerary, detect the column
// layout, extract the rows and run the six segmenters. The result is a fully
// enriched ParsedDocument ready for voucher rendering.
//
// =============================================================================

package orga

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/PierreFinestTravel/Vouchersystem/internal/supplier"
	"github.com/PierreFinestTravel/Vouchersystem/internal/types"
	"github.com/PierreFinestTravel/Vouchersystem/internal/xlsxio"
)

// ErrNoServices is returned when a workbook parses cleanly but yields not a
// single voucher-producing service. Generating an empty travel pack is
// always a mistake upstream, so this is a hard failure.
var ErrNoServices = errors.New("no services found in planning sheet")

// Parser turns planning workbooks into ParsedDocuments. The supplier
// directory it is constructed with enriches every entity with canonical
// contact details.
type Parser struct {
	dir    *supplier.Directory
	region string
}

// NewParser returns a parser resolving suppliers against dir. Region
// controls downstream voucher suppression and is recorded on the document.
func NewParser(dir *supplier.Directory, region string) *Parser {
	return &Parser{dir: dir, region: region}
}

// ParseFile parses a planning workbook from disk.
func (p *Parser) ParseFile(path string) (*types.ParsedDocument, error) {
	log.Info().Str("path", path).Msg("parsing planning sheet")

	wb, err := xlsxio.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return p.Parse(wb)
}

// Parse parses an already open workbook.
func (p *Parser) Parse(wb *xlsxio.Workbook) (*types.ParsedDocument, error) {
	if err := p.dir.ReloadIfStale(); err != nil {
		return nil, err
	}

	sheet, err := selectSheet(wb)
	if err != nil {
		return nil, err
	}
	log.Info().Str("sheet", sheet.Name).Msg("selected planning sheet")

	doc := &types.ParsedDocument{Region: p.region}
	doc.Meta = readMetadata(sheet)

	headerRow := FindHeaderRow(sheet)
	dataStart := FindDataStart(sheet, headerRow)
	log.Debug().Int("header_row", headerRow).Int("data_start", dataStart).Msg("located itinerary")

	cols := DetectColumns(sheet, headerRow)
	rows := ExtractRows(sheet, cols, dataStart)
	log.Info().Int("rows", len(rows)).Msg("extracted itinerary rows")

	doc.Hotels = SegmentHotels(rows)
	doc.Transfers = SegmentTransfers(rows)
	doc.CarRentals = SegmentCarRental(rows)
	doc.Activities = SegmentActivities(rows)
	doc.Restaurants = SegmentRestaurants(rows)
	doc.Golf = SegmentGolf(rows)

	p.enrich(doc)

	log.Info().
		Int("hotels", len(doc.Hotels)).
		Int("transfers", len(doc.Transfers)).
		Int("car_rentals", len(doc.CarRentals)).
		Int("activities", len(doc.Activities)).
		Int("restaurants", len(doc.Restaurants)).
		Int("golf", len(doc.Golf)).
		Msg("planning sheet parsed")

	if doc.TotalServices() == 0 {
		return nil, ErrNoServices
	}

	return doc, nil
}

// enrich resolves every entity's supplier against the directory.
func (p *Parser) enrich(doc *types.ParsedDocument) {
	for i := range doc.Hotels {
		doc.Hotels[i].Contact = p.dir.Lookup(doc.Hotels[i].Supplier)
	}
	for i := range doc.Transfers {
		doc.Transfers[i].Contact = p.dir.Lookup(doc.Transfers[i].Supplier)
	}
	for i := range doc.CarRentals {
		doc.CarRentals[i].Contact = p.dir.Lookup(doc.CarRentals[i].Supplier)
	}
	for i := range doc.Activities {
		doc.Activities[i].Contact = p.dir.Lookup(doc.Activities[i].Supplier)
	}
	for i := range doc.Restaurants {
		doc.Restaurants[i].Contact = p.dir.Lookup(doc.Restaurants[i].Supplier)
	}
	for i := range doc.Golf {
		doc.Golf[i].Contact = p.dir.Lookup(doc.Golf[i].Supplier)
	}
}

// =============================================================================
// SHEET SELECTION
// =============================================================================

// selectSheet picks the planning sheet out of a workbook. Planners keep old
// revisions around, so the preference order is:
//
//  1. a sheet named like "Orga ... correct"
//  2. the first "orga" sheet that actually carries hotel data
//  3. the first "orga" sheet
//  4. the active sheet
func selectSheet(wb *xlsxio.Workbook) (*xlsxio.Sheet, error) {
	var orgaSheets []string
	for _, name := range wb.SheetNames() {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, "orga") {
			continue
		}
		orgaSheets = append(orgaSheets, name)
		if strings.Contains(lower, "correct") {
			return wb.Sheet(name)
		}
	}

	// Probe the known header positions for a sheet with real hotel data.
	defaults := DefaultColumnMap()
	for _, name := range orgaSheets {
		s, err := wb.Sheet(name)
		if err != nil {
			return nil, err
		}
		for _, headerRow := range []int{10, 19} {
			for _, dataRow := range []int{headerRow + 2, headerRow + 1} {
				hotel := strings.ToLower(s.Cell(dataRow, defaults.HotelSupplier))
				if hotel != "" && hotel != "hotel supplier" && hotel != "e.g" && hotel != "example" {
					return s, nil
				}
			}
		}
	}

	if len(orgaSheets) > 0 {
		return wb.Sheet(orgaSheets[0])
	}

	active := wb.ActiveSheetName()
	if active == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	log.Warn().Str("sheet", active).Msg("no planning sheet found by name, using active sheet")
	return wb.Sheet(active)
}

// =============================================================================
// TRIP METADATA
// =============================================================================

// readMetadata reads the label/value pairs above the itinerary. Labels sit
// in column 1, values in column 4.
func readMetadata(s *xlsxio.Sheet) types.TripMeta {
	var meta types.TripMeta

	for row := 1; row <= metadataRows; row++ {
		label := strings.ToLower(s.Cell(row, 1))
		value := s.Cell(row, metadataValueCol)
		if label == "" || value == "" {
			continue
		}

		switch {
		case strings.Contains(label, "lead name"):
			meta.LeadName = value
		case strings.Contains(label, "pax"):
			if n, err := strconv.Atoi(value); err == nil {
				meta.Pax = n
			}
		case strings.Contains(label, "dates"):
			meta.Dates = value
		case strings.Contains(label, "trip number"):
			meta.TripNumber = value
		}
	}

	return meta
}
