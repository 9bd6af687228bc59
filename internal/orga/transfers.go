// =============================================================================
// Travel Voucher Generator - Transfer Segmentation
// =============================================================================

package orga

import (
	"strings"

	"github.com/PierreFinestTravel/Vouchersystem/internal/types"
)

// carRentalMarkers identify route lines that describe the rental car rather
// than a driven transfer. "group " catches the car group descriptors rental
// companies use ("Group O - Compact SUV").
var carRentalMarkers = []string{"rental car", "group o", "group "}

// isCarRentalRoute reports whether a route line belongs to the car rental
// voucher instead of a transfer.
func isCarRentalRoute(route string) bool {
	if route == "" {
		return false
	}
	lower := strings.ToLower(route)
	for _, marker := range carRentalMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// SegmentTransfers groups transfer legs by supplier, preserving the order in
// which suppliers first appear in the sheet.
//
// Supplier and route cells may pack several services as separate lines; the
// lines are zipped positionally with the pickup time, dropoff time and
// flight number cells. Time and flight cells keep their blank lines so the
// positions stay aligned.
func SegmentTransfers(rows []RowRecord) []types.TransferVoucher {
	bySupplier := make(map[string]*types.TransferVoucher)
	var order []string

	for _, row := range rows {
		if row.TransferSupplier == "" {
			continue
		}

		suppliers := splitLines(row.TransferSupplier)
		routes := splitLines(row.TransferRoute)
		pickups := splitRaw(row.PickupTime)
		dropoffs := splitRaw(row.DropoffTime)
		flights := splitRaw(row.FlightNum)

		for idx, sup := range suppliers {
			rt := ""
			if idx < len(routes) {
				rt = routes[idx]
			}

			if isCarRentalRoute(rt) {
				continue
			}
			// Flight-only lines (airline bookings) are not transfers unless
			// they mention an airport pickup.
			lower := strings.ToLower(rt)
			if strings.Contains(lower, "flight") && !strings.Contains(lower, "airport") {
				continue
			}

			key := strings.ToLower(strings.TrimSpace(sup))
			voucher, ok := bySupplier[key]
			if !ok {
				voucher = &types.TransferVoucher{Supplier: sup}
				bySupplier[key] = voucher
				order = append(order, key)
			}

			pickup, dropoff, routeNotes := parseRoute(rt)

			var notes []string
			if routeNotes != "" {
				notes = append(notes, routeNotes)
			}
			if row.TransferNotes != "" {
				notes = append(notes, row.TransferNotes)
			}

			voucher.Legs = append(voucher.Legs, types.TransferLeg{
				Date:         row.Date,
				PickupPoint:  pickup,
				DropoffPoint: dropoff,
				PickupTime:   lineAt(pickups, idx),
				DropoffTime:  lineAt(dropoffs, idx),
				FlightNumber: lineAt(flights, idx),
				Notes:        strings.Join(notes, "\n"),
			})
		}
	}

	vouchers := make([]types.TransferVoucher, 0, len(order))
	for _, key := range order {
		vouchers = append(vouchers, *bySupplier[key])
	}
	return vouchers
}

// parseRoute splits a route description into pickup point, dropoff point
// and extra notes.
//
// Recognized shapes:
//
//	"Trf - Location"               dropoff only
//	"A - B incl. extras"           pickup A, dropoff B, note with the extras
//	"A - B"                        pickup A, dropoff B
//	"Location"                     dropoff only
func parseRoute(route string) (pickup, dropoff, notes string) {
	if !strings.Contains(route, "-") {
		return "", route, ""
	}

	parts := strings.SplitN(route, "-", 2)
	first := strings.TrimSpace(parts[0])
	second := strings.TrimSpace(parts[1])

	switch {
	case strings.EqualFold(first, "trf") || strings.EqualFold(first, "transfer"):
		return "", second, ""

	case strings.Contains(strings.ToLower(second), "incl."):
		pos := strings.Index(strings.ToLower(second), "incl.")
		dropoff = strings.TrimSpace(second[:pos])
		notes = "Includes: " + strings.TrimSpace(second[pos+len("incl."):])
		return first, dropoff, notes

	default:
		return first, second, ""
	}
}
