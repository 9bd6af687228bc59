// =============================================================================
// Travel Voucher Generator - Golf Segmentation
// =============================================================================

package orga

import "github.com/PierreFinestTravel/Vouchersystem/internal/types"

// SegmentGolf produces one voucher per row carrying both a golf supplier and
// a course. Golf rounds are never grouped; each tee time is its own booking.
func SegmentGolf(rows []RowRecord) []types.GolfVoucher {
	var vouchers []types.GolfVoucher

	for _, row := range rows {
		if row.GolfSupplier == "" || row.GolfCourse == "" {
			continue
		}

		vouchers = append(vouchers, types.GolfVoucher{
			Supplier:  row.GolfSupplier,
			Course:    row.GolfCourse,
			Date:      row.Date,
			TeeTime:   row.TeeTime,
			Cart:      row.GolfCart,
			RentalSet: row.RentalSet,
			Notes:     row.GolfNotes,
		})
	}

	return vouchers
}
