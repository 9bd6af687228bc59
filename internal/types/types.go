// =============================================================================
// Travel Voucher Generator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - orga
//   - voucher
//   - validate
//   - pdfmerge
//
// =============================================================================

package types

import "time"

// =============================================================================
// VOUCHER KINDS
// =============================================================================

// VoucherKind identifies a category of travel service. The kind determines
// which template a voucher is rendered with and where it sorts in the final
// merged document.
type VoucherKind string

const (
	KindHotel      VoucherKind = "hotel"
	KindTransfer   VoucherKind = "transfer"
	KindCarRental  VoucherKind = "car_rental"
	KindActivity   VoucherKind = "activity"
	KindRestaurant VoucherKind = "restaurant"
	KindGolf       VoucherKind = "golf"
)

// Priority returns the sort rank of the kind in the final travel pack.
// Hotels come first, golf last. Unknown kinds sort after everything else.
func (k VoucherKind) Priority() int {
	switch k {
	case KindHotel:
		return 1
	case KindTransfer:
		return 2
	case KindCarRental:
		return 3
	case KindActivity:
		return 4
	case KindRestaurant:
		return 5
	case KindGolf:
		return 6
	default:
		return 99
	}
}

// =============================================================================
// REGIONS
// =============================================================================

// Region codes control which voucher categories are produced downstream.
// European trips skip activity, restaurant and car rental vouchers because
// those services are booked directly by the partner agencies.
const (
	RegionSA = "SA"
	RegionEU = "EU"
)

// =============================================================================
// SUPPLIER CONTACT
// =============================================================================

// ContactInfo is the canonical identity of a supplier as resolved against the
// supplier directory. A zero Address/Phone/GPS is normal for suppliers the
// directory does not know; DisplayName is always populated.
type ContactInfo struct {
	DisplayName string
	Address     string
	Phone       string
	GPS         string
}

// =============================================================================
// SERVICE ENTITIES
// =============================================================================

// HotelStay is one contiguous stay at a single property.
type HotelStay struct {
	// Supplier is the raw property name as it appeared in the planning sheet.
	Supplier string

	// RegionCity is the free-text region or city taken from the first row of
	// the stay.
	RegionCity string

	RoomType string

	// Board is the board basis code, e.g. "BB" or "FB+".
	Board string

	CheckIn  time.Time
	CheckOut time.Time

	// Nights is the day difference between CheckOut and CheckIn.
	Nights int

	Notes  string
	Status string

	// GameDrives holds the synthesized game drive schedule for full board
	// safari stays, one display line per day.
	GameDrives []string

	Contact ContactInfo
}

// TransferLeg is a single pickup or movement within a transfer voucher.
type TransferLeg struct {
	Date         time.Time
	PickupPoint  string
	DropoffPoint string
	PickupTime   string
	DropoffTime  string
	FlightNumber string
	Notes        string
}

// TransferVoucher groups all legs operated by one transfer supplier.
type TransferVoucher struct {
	Supplier string
	Legs     []TransferLeg
	Contact  ContactInfo
}

// CarRentalVoucher describes a single rental spanning the whole trip.
// A planning sheet yields at most one of these.
type CarRentalVoucher struct {
	Supplier        string
	CarGroup        string
	PickupDate      time.Time
	PickupLocation  string
	DropoffDate     time.Time
	DropoffLocation string
	Contact         ContactInfo
}

// ActivityEntry is a single dated activity within an activity voucher.
type ActivityEntry struct {
	Date  time.Time
	Name  string
	Time  string
	Notes string
}

// ActivityVoucher groups all activities run by one supplier.
type ActivityVoucher struct {
	Supplier string
	Entries  []ActivityEntry
	Contact  ContactInfo
}

// RestaurantVoucher is a single meal reservation. Restaurant vouchers are
// never grouped; each reservation stands alone.
type RestaurantVoucher struct {
	Supplier string
	Date     time.Time
	Time     string
	Notes    string
	Contact  ContactInfo
}

// GolfVoucher is a single round of golf.
type GolfVoucher struct {
	Supplier  string
	Course    string
	Date      time.Time
	TeeTime   string
	Cart      string
	RentalSet string
	Notes     string
	Contact   ContactInfo
}

// =============================================================================
// PARSED DOCUMENT
// =============================================================================

// TripMeta holds the header metadata block of a planning sheet.
type TripMeta struct {
	LeadName   string
	Pax        int
	Dates      string
	TripNumber string
}

// ParsedDocument is the complete result of parsing one planning spreadsheet.
// Slices preserve the order in which services appeared in the sheet.
type ParsedDocument struct {
	Meta   TripMeta
	Region string

	Hotels      []HotelStay
	Transfers   []TransferVoucher
	CarRentals  []CarRentalVoucher
	Activities  []ActivityVoucher
	Restaurants []RestaurantVoucher
	Golf        []GolfVoucher
}

// TotalServices returns the number of voucher-producing entities in the
// document across all categories.
func (d *ParsedDocument) TotalServices() int {
	return len(d.Hotels) + len(d.Transfers) + len(d.CarRentals) +
		len(d.Activities) + len(d.Restaurants) + len(d.Golf)
}

// =============================================================================
// RENDERED OUTPUT
// =============================================================================

// RenderedDoc is one generated voucher document on disk, tagged with enough
// information to sort it into the final travel pack.
type RenderedDoc struct {
	Path string
	Kind VoucherKind
	Date time.Time
}
