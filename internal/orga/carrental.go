// =============================================================================
// Travel Voucher Generator - Car Rental Segmentation
// =============================================================================

package orga

import (
	"strings"
	"time"

	"github.com/PierreFinestTravel/Vouchersystem/internal/types"
)

// Planning sheets rarely name the rental company or the depot; these are the
// operational defaults when the sheet stays silent.
const (
	defaultCarRentalSupplier = "Pace Car Rental"
	defaultCarRentalLocation = "Cape Town International Airport"
)

// SegmentCarRental scans the transfer route column for rental car lines and
// accumulates them into at most one voucher spanning the whole trip.
//
// The first car group line fixes the pickup date; every further rental line
// extends the dropoff date, so the rental covers the full span of days the
// sheet mentions the car. Lines mentioning collection or return override the
// depot locations.
func SegmentCarRental(rows []RowRecord) []types.CarRentalVoucher {
	var (
		carGroup        string
		pickupDate      time.Time
		dropoffDate     time.Time
		pickupLocation  string
		dropoffLocation string
	)

	for _, row := range rows {
		if row.TransferRoute == "" {
			continue
		}

		for _, rt := range splitLines(row.TransferRoute) {
			if !isCarRentalRoute(rt) {
				continue
			}
			lower := strings.ToLower(rt)

			if strings.Contains(lower, "group") {
				if carGroup == "" {
					carGroup = rt
					pickupDate = row.Date
				}
				dropoffDate = row.Date
			}
			if strings.Contains(lower, "collect") || strings.Contains(lower, "pickup") {
				pickupLocation = rt
			}
			if strings.Contains(lower, "drop") || strings.Contains(lower, "return") {
				dropoffLocation = rt
			}
		}
	}

	if carGroup == "" {
		return nil
	}

	if pickupLocation == "" {
		pickupLocation = defaultCarRentalLocation
	}
	if dropoffLocation == "" {
		dropoffLocation = defaultCarRentalLocation
	}

	return []types.CarRentalVoucher{{
		Supplier:        defaultCarRentalSupplier,
		CarGroup:        carGroup,
		PickupDate:      pickupDate,
		PickupLocation:  pickupLocation,
		DropoffDate:     dropoffDate,
		DropoffLocation: dropoffLocation,
	}}
}
