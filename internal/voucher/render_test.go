package voucher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PierreFinestTravel/Vouchersystem/internal/types"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func testDocument() *types.ParsedDocument {
	return &types.ParsedDocument{
		Region: types.RegionSA,
		Hotels: []types.HotelStay{{
			Supplier: "Whale Rock Lodge",
			RoomType: "Deluxe Sea View",
			Board:    "BB",
			CheckIn:  day(1),
			CheckOut: day(3),
			Nights:   2,
			Notes:    "early check-in requested",
			Contact: types.ContactInfo{
				DisplayName: "WHALE ROCK LUXURY LODGE",
				Address:     "37 Springfield Avenue, Hermanus",
				Phone:       "+27 (0)28 313 0014",
			},
		}},
		Transfers: []types.TransferVoucher{{
			Supplier: "Osprey Tours",
			Contact:  types.ContactInfo{DisplayName: "OSPREY TOURS"},
			Legs: []types.TransferLeg{{
				Date:         day(1),
				PickupPoint:  "Cape Town Airport",
				DropoffPoint: "Whale Rock Lodge",
				PickupTime:   "11h00",
				FlightNumber: "BA6234",
			}},
		}},
		Restaurants: []types.RestaurantVoucher{{
			Supplier: "The Bungalow",
			Contact:  types.ContactInfo{DisplayName: "THE BUNGALOW"},
			Date:     day(2),
			Time:     "19h30",
		}},
		Golf: []types.GolfVoucher{{
			Supplier: "Pearl Valley",
			Contact:  types.ContactInfo{DisplayName: "PEARL VALLEY"},
			Course:   "Jack Nicklaus Signature",
			Date:     day(2),
			TeeTime:  "08h12",
		}},
	}
}

func renderToDir(t *testing.T, doc *types.ParsedDocument, groupText string) ([]types.RenderedDoc, string) {
	t.Helper()
	dir := t.TempDir()
	docs, err := NewRenderer(dir).RenderAll(doc, "Hans Meyer & Petra Meyer", "4512", groupText)
	require.NoError(t, err)
	return docs, dir
}

func readVoucher(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRenderAllWritesAllCategories(t *testing.T) {
	docs, dir := renderToDir(t, testDocument(), "")

	require.Len(t, docs, 4)

	kinds := map[types.VoucherKind]bool{}
	for _, d := range docs {
		kinds[d.Kind] = true
		assert.Equal(t, dir, filepath.Dir(d.Path))
		assert.FileExists(t, d.Path)
	}
	assert.True(t, kinds[types.KindHotel])
	assert.True(t, kinds[types.KindTransfer])
	assert.True(t, kinds[types.KindRestaurant])
	assert.True(t, kinds[types.KindGolf])
}

func TestRenderHotelVoucher(t *testing.T) {
	docs, _ := renderToDir(t, testDocument(), "")

	content := readVoucher(t, docs[0].Path)
	assert.Contains(t, content, "WHALE ROCK LUXURY LODGE")
	assert.Contains(t, content, "Tel: +27 (0)28 313 0014")
	assert.Contains(t, content, "TRAVELLERS: Hans Meyer & Petra Meyer")
	assert.Contains(t, content, "REF NO: 4512")
	assert.Contains(t, content, "CHECK IN: 01 March 2025    TIME: 14h00")
	assert.Contains(t, content, "CHECK OUT: 03 March 2025    TIME: 11h00    NIGHTS: 2")
	assert.Contains(t, content, "  - Accommodation Type: X1 Deluxe Sea View - DBL")
	assert.Contains(t, content, "  - Board Basis: Bed & Breakfast")
	assert.Contains(t, content, "early check-in requested")
	assert.Contains(t, content, "All additional services are for guest's own account")
	assert.NotContains(t, content, "GROUP:")
}

func TestRenderHotelVoucherGroupBooking(t *testing.T) {
	docs, _ := renderToDir(t, testDocument(), "Room 101")

	content := readVoucher(t, docs[0].Path)
	assert.Contains(t, content, "GROUP:\nRoom 101")
}

func TestRenderTransferVoucher(t *testing.T) {
	docs, _ := renderToDir(t, testDocument(), "")

	content := readVoucher(t, docs[1].Path)
	assert.Contains(t, content, "OSPREY TOURS")
	assert.Contains(t, content, "  - Pick Up: 01.03.2025 - Cape Town Airport @ 11h00 (Flight BA6234)")
	assert.Contains(t, content, "arrivals hall with your name board")
	assert.Contains(t, content, "  - Drop Off: Whale Rock Lodge")
}

func TestRenderGameDriveSchedule(t *testing.T) {
	doc := &types.ParsedDocument{
		Region: types.RegionSA,
		Hotels: []types.HotelStay{{
			Supplier:   "Umlani",
			Board:      "FB+",
			CheckIn:    day(1),
			CheckOut:   day(3),
			Nights:     2,
			GameDrives: []string{"01.03.2025 - X1 Afternoon Game Drive", "02.03.2025 - X1 Morning Game Drive"},
			Contact:    types.ContactInfo{DisplayName: "UMLANI BUSH CAMP"},
		}},
	}

	docs, _ := renderToDir(t, doc, "")

	content := readVoucher(t, docs[0].Path)
	assert.Contains(t, content, "Board Basis: Full Board Plus - Dinner, Bed, Breakfast, Lunch and Activities")
	assert.Contains(t, content, "  - Activities:")
	assert.Contains(t, content, "      01.03.2025 - X1 Afternoon Game Drive")
}

func TestRenderRestaurantDefaultsToDinner(t *testing.T) {
	docs, _ := renderToDir(t, testDocument(), "")

	content := readVoucher(t, docs[2].Path)
	assert.Contains(t, content, "DATE: 02 March 2025")
	assert.Contains(t, content, "TIME: 19h30")
	assert.Contains(t, content, "  - Dinner reservation")
}

func TestRenderGolfVoucher(t *testing.T) {
	docs, _ := renderToDir(t, testDocument(), "")

	content := readVoucher(t, docs[3].Path)
	assert.Contains(t, content, "  - Golf Course: Jack Nicklaus Signature")
	assert.Contains(t, content, "TIME: Tee Time: 08h12")
}

func TestRenderAllSuppressesForEuropeanTrips(t *testing.T) {
	doc := testDocument()
	doc.Region = types.RegionEU
	doc.CarRentals = []types.CarRentalVoucher{{
		Supplier: "Pace Car Rental",
		Contact:  types.ContactInfo{DisplayName: "PACE CAR RENTAL"},
		CarGroup: "Group O",
	}}

	docs, _ := renderToDir(t, doc, "")

	for _, d := range docs {
		assert.NotEqual(t, types.KindCarRental, d.Kind)
		assert.NotEqual(t, types.KindRestaurant, d.Kind)
		assert.NotEqual(t, types.KindActivity, d.Kind)
	}
	// Hotels, transfers and golf always render.
	assert.Len(t, docs, 3)
}

func TestRenderFilenames(t *testing.T) {
	docs, _ := renderToDir(t, testDocument(), "")

	base := filepath.Base(docs[0].Path)
	assert.Equal(t, "hotel_1_Whale_Rock_Lodge.txt", base)
	assert.True(t, strings.HasPrefix(filepath.Base(docs[1].Path), "transfer_1_"))
}

func TestBoardBasisUnknownCodePassesThrough(t *testing.T) {
	assert.Equal(t, "Bed & Breakfast", BoardBasis("bb"))
	assert.Equal(t, "XYZ", BoardBasis("XYZ"))
}

func TestBuildActivityMultipleEntries(t *testing.T) {
	activity := types.ActivityVoucher{
		Supplier: "Ernie Els",
		Contact:  types.ContactInfo{DisplayName: "ERNIE ELS WINES"},
		Entries: []types.ActivityEntry{
			{Date: day(2), Name: "Wine Tasting", Time: "15h00"},
			{Date: day(4), Name: "Cellar Tour", Notes: "private guide"},
		},
	}

	data := buildActivity(activity, "Hans Meyer", "4512")

	assert.Equal(t, []string{
		"  - 02.03.2025 - 15h00 - Wine Tasting",
		"  - 04.03.2025 - Cellar Tour",
	}, data.Services)
	assert.Equal(t, "private guide", data.Notes)
	assert.Empty(t, data.Date)
}

func TestEarliestLeg(t *testing.T) {
	transfer := types.TransferVoucher{Legs: []types.TransferLeg{
		{Date: day(5)}, {Date: day(2)}, {Date: day(8)},
	}}
	assert.Equal(t, day(2), earliestLeg(transfer))
}
