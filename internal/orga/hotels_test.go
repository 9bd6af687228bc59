package orga

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestSegmentHotelsSplitsOnSupplierChange(t *testing.T) {
	rows := []RowRecord{
		{Date: day(10), HotelSupplier: "Whale Rock Lodge", RegionCity: "Hermanus", Room: "Double", Board: "BB"},
		{Date: day(11), HotelSupplier: "Whale Rock Lodge"},
		{Date: day(12), HotelSupplier: "Wedgeview", RegionCity: "Stellenbosch", Board: "BB"},
	}

	hotels := SegmentHotels(rows)

	if assert.Len(t, hotels, 2) {
		first := hotels[0]
		assert.Equal(t, "Whale Rock Lodge", first.Supplier)
		assert.Equal(t, day(10), first.CheckIn)
		// Checkout is the day the next property takes over.
		assert.Equal(t, day(12), first.CheckOut)
		assert.Equal(t, 2, first.Nights)
		assert.Equal(t, "Hermanus", first.RegionCity)

		last := hotels[1]
		assert.Equal(t, "Wedgeview", last.Supplier)
		// The final stay checks out the day after the last itinerary row.
		assert.Equal(t, day(13), last.CheckOut)
		assert.Equal(t, 1, last.Nights)
	}
}

func TestSegmentHotelsSameSupplierAccumulates(t *testing.T) {
	rows := []RowRecord{
		{Date: day(1), HotelSupplier: "Umlani", Room: "Standard", HotelNotes: "early check-in"},
		{Date: day(2), HotelSupplier: "umlani", Room: "Safari Tent", HotelNotes: "anniversary"},
	}

	hotels := SegmentHotels(rows)

	if assert.Len(t, hotels, 1) {
		assert.Equal(t, "Safari Tent", hotels[0].RoomType)
		assert.Equal(t, "early check-in\nanniversary", hotels[0].Notes)
	}
}

func TestSegmentHotelsUsesFirstLineOfCell(t *testing.T) {
	rows := []RowRecord{
		{Date: day(1), HotelSupplier: "Whale Rock Lodge\nbooked by Anna\nconf #123"},
	}

	hotels := SegmentHotels(rows)

	if assert.Len(t, hotels, 1) {
		assert.Equal(t, "Whale Rock Lodge", hotels[0].Supplier)
	}
}

func TestSegmentHotelsIgnoresPropertylessMiddleRows(t *testing.T) {
	rows := []RowRecord{
		{Date: day(1), HotelSupplier: "Umlani", Room: "Standard"},
		{Date: day(2), Room: "Honeymoon Suite", HotelNotes: "transfer day"},
		{Date: day(3), HotelSupplier: "Umlani"},
	}

	hotels := SegmentHotels(rows)

	if assert.Len(t, hotels, 1) {
		// A row naming no property never touches the open stay.
		assert.Equal(t, "Standard", hotels[0].RoomType)
		assert.Empty(t, hotels[0].Notes)
		assert.Equal(t, day(4), hotels[0].CheckOut)
	}
}

func TestSegmentHotelsSkipsRowsWithoutSupplier(t *testing.T) {
	rows := []RowRecord{
		{Date: day(1)},
		{Date: day(2)},
	}
	assert.Empty(t, SegmentHotels(rows))
}

func TestGameDriveScheduleFullBoard(t *testing.T) {
	rows := []RowRecord{
		{Date: day(1), HotelSupplier: "Umlani", Board: "FB+"},
		{Date: day(2), HotelSupplier: "Umlani"},
		{Date: day(3), HotelSupplier: "Umlani"},
	}

	hotels := SegmentHotels(rows)

	if assert.Len(t, hotels, 1) {
		assert.Equal(t, []string{
			"01.03.2025 - X1 Afternoon Game Drive",
			"02.03.2025 - X1 Morning & Afternoon Game Drive",
			"03.03.2025 - X1 Morning Game Drive",
		}, hotels[0].GameDrives)
	}
}

func TestGameDriveScheduleSingleNight(t *testing.T) {
	rows := []RowRecord{
		{Date: day(5), HotelSupplier: "Ukuthula Bush Lodge", Board: "FB"},
	}

	hotels := SegmentHotels(rows)

	if assert.Len(t, hotels, 1) {
		assert.Equal(t, []string{"05.03.2025 - X1 Afternoon Game Drive"}, hotels[0].GameDrives)
	}
}

func TestGameDriveScheduleRequiresFullBoard(t *testing.T) {
	rows := []RowRecord{
		{Date: day(1), HotelSupplier: "Wedgeview", Board: "BB"},
		{Date: day(2), HotelSupplier: "Wedgeview"},
	}

	hotels := SegmentHotels(rows)

	if assert.Len(t, hotels, 1) {
		assert.Nil(t, hotels[0].GameDrives)
	}
}
