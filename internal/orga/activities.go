// =============================================================================
// Travel Voucher Generator - Activity & Restaurant Segmentation
// =============================================================================
//
// The activity columns of a planning sheet mix genuine activities (wine
// tastings, boat tours) with plain meal reservations. Both segmenters read
// the same cells; classification decides which voucher an item becomes.
//
// Precedence: activity keywords win. An item mentioning both a meal and an
// activity word ("dinner & wine tasting") is an activity, never a
// restaurant, so no (row, line) pair can appear in both outputs.
//
// =============================================================================

package orga

import (
	"strings"

	"github.com/PierreFinestTravel/Vouchersystem/internal/types"
)

// mealKeywords mark plain restaurant reservations.
var mealKeywords = []string{"dinner", "lunch"}

// activityKeywords mark genuine activities, even when booked at a venue that
// also serves food.
var activityKeywords = []string{
	"tasting", "tour", "tickets", "watching",
	"drive", "panorama", "route", "safari",
}

// activityItem is one line of the activity columns after positional
// splitting.
type activityItem struct {
	supplier string
	name     string
	time     string
	notes    string
}

// classification is the keyword profile of one item.
type classification struct {
	meal     bool
	activity bool
}

func classify(item activityItem) classification {
	text := strings.ToLower(item.supplier + " " + item.name + " " + item.notes)
	var c classification
	for _, kw := range mealKeywords {
		if strings.Contains(text, kw) {
			c.meal = true
			break
		}
	}
	for _, kw := range activityKeywords {
		if strings.Contains(text, kw) {
			c.activity = true
			break
		}
	}
	return c
}

// splitActivityItems zips the activity cells of a row into per-line items.
// All four cells are blank-filtered before zipping.
func splitActivityItems(row RowRecord) []activityItem {
	suppliers := splitLines(row.ActivitySupplier)
	names := splitLines(row.ActivityName)
	times := splitLines(row.ActivityTime)
	notes := splitLines(row.ActivityNotes)

	items := make([]activityItem, 0, len(suppliers))
	for idx, sup := range suppliers {
		items = append(items, activityItem{
			supplier: sup,
			name:     lineAt(names, idx),
			time:     lineAt(times, idx),
			notes:    lineAt(notes, idx),
		})
	}
	return items
}

// SegmentActivities groups activity entries by supplier in first-appearance
// order. Meal-only items are left for the restaurant segmenter, and game
// drives are left out entirely because safari hotels schedule them on the
// hotel voucher.
func SegmentActivities(rows []RowRecord) []types.ActivityVoucher {
	bySupplier := make(map[string]*types.ActivityVoucher)
	var order []string

	for _, row := range rows {
		if row.ActivitySupplier == "" {
			continue
		}

		for _, item := range splitActivityItems(row) {
			c := classify(item)
			if c.meal && !c.activity {
				continue
			}
			if strings.Contains(strings.ToLower(item.name), "game drive") {
				continue
			}

			key := strings.ToLower(strings.TrimSpace(item.supplier))
			voucher, ok := bySupplier[key]
			if !ok {
				voucher = &types.ActivityVoucher{Supplier: item.supplier}
				bySupplier[key] = voucher
				order = append(order, key)
			}

			name := item.name
			if name == "" {
				name = item.supplier
			}
			voucher.Entries = append(voucher.Entries, types.ActivityEntry{
				Date:  row.Date,
				Name:  name,
				Time:  item.time,
				Notes: item.notes,
			})
		}
	}

	vouchers := make([]types.ActivityVoucher, 0, len(order))
	for _, key := range order {
		vouchers = append(vouchers, *bySupplier[key])
	}
	return vouchers
}

// SegmentRestaurants produces one voucher per meal reservation. Restaurants
// are never grouped; each booking stands on its own voucher.
func SegmentRestaurants(rows []RowRecord) []types.RestaurantVoucher {
	var restaurants []types.RestaurantVoucher

	for _, row := range rows {
		if row.ActivitySupplier == "" {
			continue
		}

		for _, item := range splitActivityItems(row) {
			c := classify(item)
			if !c.meal || c.activity {
				continue
			}

			notes := item.notes
			if notes == "" {
				notes = item.name
			}
			restaurants = append(restaurants, types.RestaurantVoucher{
				Supplier: item.supplier,
				Date:     row.Date,
				Time:     item.time,
				Notes:    notes,
			})
		}
	}

	return restaurants
}
