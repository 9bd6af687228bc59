// =============================================================================
// Travel Voucher Generator - Group Booking Room Extraction
// =============================================================================
//
// Group bookings arrive as a spreadsheet listing travellers with room
// assignments. A numeric room value starts a new room; rows without a room
// value belong to the room above them, but only within a small adjacency
// window so a name way down the sheet is never silently attached to the
// wrong room. Names are only ever extracted, never guessed.
//
// =============================================================================

package clientfile

import (
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/PierreFinestTravel/Vouchersystem/internal/xlsxio"
)

// ErrNoRooms is returned when a group booking sheet yields no room with a
// usable occupant name.
var ErrNoRooms = errors.New("no rooms with valid names found in group file")

const (
	// roomShareWindow is how many rows below the last occupied row of a
	// room an unnumbered name still joins that room. Chosen from the sheet
	// layouts in circulation.
	roomShareWindow = 2

	// groupHeaderSearchRows caps the scan for the "Room" header row.
	groupHeaderSearchRows = 30

	// groupHeaderScanCols caps the scan for the name column headers.
	groupHeaderScanCols = 14

	// maxFilenameLen caps the filename derived from occupant names.
	maxFilenameLen = 60
)

// groupSheetNames are the sheet names group bookings conventionally use, in
// preference order.
var groupSheetNames = []string{"BookingSheet", "Booking Sheet", "Clients", "Teilnehmer"}

// skipLastNames are values in the last name column that repeat the header
// or carry schedule metadata instead of a person.
var skipLastNames = []string{"last name", "nachname", "arr./dep."}

// skipLastNameKeywords mark metadata rows by substring.
var skipLastNameKeywords = []string{"bitte", "nächte", "ez", "dz"}

// nonRoomCodes are non-numeric room column values that are expected and
// carry no room assignment.
var nonRoomCodes = map[string]bool{"PRO": true, "ROOM": true}

// =============================================================================
// ROOM GROUP
// =============================================================================

// RoomGroup is a room and the travellers sharing it.
type RoomGroup struct {
	RoomNumber int
	Occupants  []string
}

// NamesDisplay joins the occupant names for voucher display.
func (r RoomGroup) NamesDisplay() string {
	return strings.Join(r.Occupants, " & ")
}

// FilenameSafe derives a filesystem-safe fragment from the occupant names.
// Never empty for a room with at least one occupant.
func (r RoomGroup) FilenameSafe() string {
	joined := strings.Join(r.Occupants, "_")

	var b strings.Builder
	for _, c := range joined {
		switch {
		case c == ' ' || c == '&':
			b.WriteByte('_')
		case c == '-' || c == '_':
			b.WriteRune(c)
		case isAlnum(c):
			b.WriteRune(c)
		}
	}

	safe := b.String()
	if len(safe) > maxFilenameLen {
		safe = safe[:maxFilenameLen]
	}
	return safe
}

func isAlnum(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c > 127 && (strings.ContainsRune("äöüÄÖÜß", c) || isLetterExt(c))
}

func isLetterExt(c rune) bool {
	return c >= 'À' && c <= 'ÿ'
}

// =============================================================================
// PARSING
// =============================================================================

// ParseGroup extracts room assignments from a group booking spreadsheet.
func ParseGroup(path string) ([]RoomGroup, error) {
	wb, err := xlsxio.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet, err := selectGroupSheet(wb)
	if err != nil {
		return nil, err
	}
	log.Info().Str("sheet", sheet.Name).Msg("parsing group booking sheet")

	rooms := ParseGroupSheet(sheet)
	if len(rooms) == 0 {
		log.Error().Str("path", path).Msg("group file contains no usable room assignments")
		return nil, ErrNoRooms
	}
	return rooms, nil
}

func selectGroupSheet(wb *xlsxio.Workbook) (*xlsxio.Sheet, error) {
	existing := make(map[string]bool)
	for _, name := range wb.SheetNames() {
		existing[name] = true
	}
	for _, name := range groupSheetNames {
		if existing[name] {
			return wb.Sheet(name)
		}
	}
	return wb.Sheet(wb.ActiveSheetName())
}

// ParseGroupSheet extracts room assignments from a materialized sheet.
// Empty result means the sheet held no usable data.
func ParseGroupSheet(sheet *xlsxio.Sheet) []RoomGroup {
	headerRow, roomCol, lastCol, firstCol := findGroupHeader(sheet)
	log.Debug().
		Int("header_row", headerRow).
		Int("room_col", roomCol).
		Int("last_name_col", lastCol).
		Int("first_name_col", firstCol).
		Msg("group sheet layout")

	var (
		rooms       []RoomGroup
		currentIdx  = -1
		lastRoomRow = headerRow
	)

	for row := headerRow + 1; row <= sheet.MaxRow(); row++ {
		roomVal := sheet.Cell(row, roomCol)
		lastName := sheet.Cell(row, lastCol)
		firstName := sheet.Cell(row, firstCol)

		if lastName == "" && firstName == "" {
			continue
		}

		lower := strings.ToLower(lastName)
		if isHeaderRepeat(lower) || lastName != "" && containsAnyFold(lower, skipLastNameKeywords) {
			continue
		}

		fullName := strings.TrimSpace(strings.TrimSpace(firstName + " " + lastName))
		if fullName == "" {
			continue
		}

		if roomVal != "" {
			num, err := strconv.Atoi(roomVal)
			if err != nil {
				if !nonRoomCodes[strings.ToUpper(roomVal)] {
					log.Debug().Str("room", roomVal).Int("row", row).Msg("skipping non-numeric room value")
				}
				continue
			}
			rooms = append(rooms, RoomGroup{RoomNumber: num, Occupants: []string{fullName}})
			currentIdx = len(rooms) - 1
			lastRoomRow = row
			continue
		}

		// Unnumbered row: shares the room above when close enough.
		if currentIdx >= 0 && row-lastRoomRow <= roomShareWindow {
			rooms[currentIdx].Occupants = append(rooms[currentIdx].Occupants, fullName)
			lastRoomRow = row
		} else {
			log.Debug().Int("row", row).Str("name", fullName).Msg("skipping orphan name outside room window")
		}
	}

	// Drop rooms whose occupant names are all blank or single characters.
	valid := rooms[:0]
	for _, room := range rooms {
		var occupants []string
		for _, name := range room.Occupants {
			if name = strings.TrimSpace(name); len(name) >= 2 {
				occupants = append(occupants, name)
			}
		}
		if len(occupants) > 0 {
			room.Occupants = occupants
			valid = append(valid, room)
		} else {
			log.Warn().Int("room", room.RoomNumber).Msg("room has no valid occupant names")
		}
	}

	return valid
}

func isHeaderRepeat(lowerLastName string) bool {
	for _, v := range skipLastNames {
		if lowerLastName == v {
			return true
		}
	}
	return false
}

// findGroupHeader locates the header row (cell "Room" in column 1) and the
// room/name column positions. Defaults match the conventional layout when
// no header is found.
func findGroupHeader(sheet *xlsxio.Sheet) (headerRow, roomCol, lastCol, firstCol int) {
	roomCol, lastCol, firstCol = 1, 5, 6

	for row := 1; row < groupHeaderSearchRows && row <= sheet.MaxRow(); row++ {
		if !strings.EqualFold(sheet.Cell(row, 1), "room") {
			continue
		}
		headerRow = row
		for col := 1; col <= groupHeaderScanCols; col++ {
			val := strings.ToLower(sheet.Cell(row, col))
			switch {
			case val == "room":
				roomCol = col
			case strings.Contains(val, "last") && strings.Contains(val, "name"):
				lastCol = col
			case strings.Contains(val, "first") && strings.Contains(val, "name"):
				firstCol = col
			}
		}
		return headerRow, roomCol, lastCol, firstCol
	}

	log.Warn().Msg("no header row found in group sheet, assuming row 1")
	return 1, roomCol, lastCol, firstCol
}
