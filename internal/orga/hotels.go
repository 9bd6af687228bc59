// =============================================================================
// Travel Voucher Generator - Hotel Segmentation
// =============================================================================

package orga

import (
	"strings"
	"time"

	"github.com/PierreFinestTravel/Vouchersystem/internal/types"
)

// boardsWithGameDrives are the board basis codes that imply a safari lodge
// stay with scheduled game drives.
var boardsWithGameDrives = map[string]bool{
	"FB":  true,
	"FB+": true,
}

// hotelGroup is the stay being accumulated while consecutive rows name the
// same property.
type hotelGroup struct {
	supplier string
	checkIn  time.Time
	region   string
	room     string
	board    string
	notes    string
	status   string
}

// SegmentHotels groups consecutive rows naming the same property into stays.
//
// A stay opens on the first row naming a property and closes when a row
// names a different one; the closing row's date is the checkout (the guest
// sleeps at the next property that night). The final stay checks out the day
// after the last itinerary row. Rows naming no property are skipped; rows
// repeating the open property fold in (the room overwrites, notes append).
func SegmentHotels(rows []RowRecord) []types.HotelStay {
	var hotels []types.HotelStay
	var current *hotelGroup

	for _, row := range rows {
		supplier := row.HotelSupplier
		if supplier == "" {
			continue
		}
		// Multi-line hotel cells carry booking chatter below the name.
		supplier = strings.TrimSpace(strings.SplitN(supplier, "\n", 2)[0])
		if supplier == "" {
			continue
		}

		switch {
		case current == nil:
			current = &hotelGroup{
				supplier: supplier,
				checkIn:  row.Date,
				region:   row.RegionCity,
				room:     row.Room,
				board:    row.Board,
				notes:    row.HotelNotes,
				status:   row.HotelStatus,
			}

		case !strings.EqualFold(supplier, current.supplier):
			hotels = append(hotels, current.flush(row.Date))
			current = &hotelGroup{
				supplier: supplier,
				checkIn:  row.Date,
				region:   row.RegionCity,
				room:     row.Room,
				board:    row.Board,
				notes:    row.HotelNotes,
				status:   row.HotelStatus,
			}

		default:
			// Same property, another night. Later room info wins, notes
			// accumulate.
			if row.Room != "" {
				current.room = row.Room
			}
			if row.HotelNotes != "" {
				if current.notes != "" {
					current.notes += "\n" + row.HotelNotes
				} else {
					current.notes = row.HotelNotes
				}
			}
		}
	}

	if current != nil {
		lastDate := current.checkIn
		if len(rows) > 0 {
			lastDate = rows[len(rows)-1].Date
		}
		hotels = append(hotels, current.flush(lastDate.AddDate(0, 0, 1)))
	}

	return hotels
}

// flush closes the group into a HotelStay with the given checkout date.
func (g *hotelGroup) flush(checkOut time.Time) types.HotelStay {
	stay := types.HotelStay{
		Supplier:   g.supplier,
		RegionCity: g.region,
		RoomType:   g.room,
		Board:      g.board,
		CheckIn:    g.checkIn,
		CheckOut:   checkOut,
		Nights:     int(checkOut.Sub(g.checkIn).Hours() / 24),
		Notes:      g.notes,
		Status:     g.status,
	}
	stay.GameDrives = gameDriveSchedule(stay)
	return stay
}

// gameDriveSchedule synthesizes the standard game drive programme for full
// board safari stays: an afternoon drive on arrival day, a morning drive on
// the final day, and both in between. Non-safari boards get none.
func gameDriveSchedule(stay types.HotelStay) []string {
	if !boardsWithGameDrives[strings.ToUpper(strings.TrimSpace(stay.Board))] {
		return nil
	}

	var lines []string
	lastNight := stay.CheckOut.AddDate(0, 0, -1)
	for d := stay.CheckIn; d.Before(stay.CheckOut); d = d.AddDate(0, 0, 1) {
		day := d.Format("02.01.2006")
		switch {
		case d.Equal(stay.CheckIn):
			lines = append(lines, day+" - X1 Afternoon Game Drive")
		case d.Equal(lastNight):
			lines = append(lines, day+" - X1 Morning Game Drive")
		default:
			lines = append(lines, day+" - X1 Morning & Afternoon Game Drive")
		}
	}
	return lines
}
