package orga

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		item     activityItem
		meal     bool
		activity bool
	}{
		{"plain dinner", activityItem{supplier: "The Bungalow", notes: "Dinner reservation"}, true, false},
		{"plain activity", activityItem{supplier: "Ernie Els", name: "Wine Tasting"}, false, true},
		{"meal and activity words", activityItem{supplier: "Guardian Peak", name: "Lunch & Wine Tasting"}, true, true},
		{"neither", activityItem{supplier: "Some Venue", name: "Visit"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := classify(tt.item)
			assert.Equal(t, tt.meal, c.meal)
			assert.Equal(t, tt.activity, c.activity)
		})
	}
}

func TestActivityAndRestaurantAreMutuallyExclusive(t *testing.T) {
	// An item carrying both meal and activity words is always an activity.
	rows := []RowRecord{
		{Date: day(1), ActivitySupplier: "Guardian Peak", ActivityName: "Lunch & Wine Tasting"},
	}

	assert.Len(t, SegmentActivities(rows), 1)
	assert.Empty(t, SegmentRestaurants(rows))
}

func TestSegmentActivitiesGroupsBySupplier(t *testing.T) {
	rows := []RowRecord{
		{
			Date:             day(1),
			ActivitySupplier: "Table Mountain\nErnie Els",
			ActivityName:     "Cableway Tickets\nWine Tasting",
			ActivityTime:     "10h00\n15h00",
		},
		{Date: day(3), ActivitySupplier: "Ernie Els", ActivityName: "Cellar Tour"},
	}

	vouchers := SegmentActivities(rows)

	if assert.Len(t, vouchers, 2) {
		assert.Equal(t, "Table Mountain", vouchers[0].Supplier)
		assert.Equal(t, "10h00", vouchers[0].Entries[0].Time)

		ernie := vouchers[1]
		assert.Equal(t, "Ernie Els", ernie.Supplier)
		if assert.Len(t, ernie.Entries, 2) {
			assert.Equal(t, "Wine Tasting", ernie.Entries[0].Name)
			assert.Equal(t, "Cellar Tour", ernie.Entries[1].Name)
			assert.Equal(t, day(3), ernie.Entries[1].Date)
		}
	}
}

func TestSegmentActivitiesNameFallsBackToSupplier(t *testing.T) {
	rows := []RowRecord{
		{Date: day(1), ActivitySupplier: "Whale Watching"},
	}

	vouchers := SegmentActivities(rows)

	if assert.Len(t, vouchers, 1) {
		assert.Equal(t, "Whale Watching", vouchers[0].Entries[0].Name)
	}
}

func TestSegmentActivitiesSkipsGameDrives(t *testing.T) {
	// Game drives are scheduled on the safari hotel voucher.
	rows := []RowRecord{
		{Date: day(1), ActivitySupplier: "Umlani", ActivityName: "Morning Game Drive"},
	}
	assert.Empty(t, SegmentActivities(rows))
}

func TestSegmentRestaurantsOnePerReservation(t *testing.T) {
	rows := []RowRecord{
		{Date: day(1), ActivitySupplier: "The Bungalow", ActivityName: "Dinner", ActivityTime: "19h30"},
		{Date: day(2), ActivitySupplier: "The Bungalow", ActivityName: "Dinner"},
	}

	restaurants := SegmentRestaurants(rows)

	// Same venue twice still yields two vouchers.
	if assert.Len(t, restaurants, 2) {
		assert.Equal(t, "19h30", restaurants[0].Time)
		assert.Equal(t, "Dinner", restaurants[0].Notes)
		assert.Equal(t, day(2), restaurants[1].Date)
	}
}

func TestSegmentRestaurantsIgnoresActivities(t *testing.T) {
	rows := []RowRecord{
		{Date: day(1), ActivitySupplier: "Ernie Els", ActivityName: "Wine Tasting"},
	}
	assert.Empty(t, SegmentRestaurants(rows))
}
