package orga

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFindHeaderRow(t *testing.T) {
	rows := make([][]interface{}, 12)
	rows[6] = []interface{}{"Days", "Day", "Date"}
	s := buildSheet(t, rows)

	assert.Equal(t, 7, FindHeaderRow(s))
}

func TestFindHeaderRowFallsBack(t *testing.T) {
	s := buildSheet(t, [][]interface{}{{"Trip"}, {"Lead Name"}})
	assert.Equal(t, defaultHeaderRow, FindHeaderRow(s))
}

func TestFindDataStartSkipsExampleRow(t *testing.T) {
	rows := make([][]interface{}, 6)
	rows[0] = []interface{}{"Days", "Day", "Date"}
	rows[2] = []interface{}{"e.g", "Mon", "2025-03-01"}
	rows[3] = []interface{}{"1", "Tue", "2025-03-02"}
	s := buildSheet(t, rows)

	assert.Equal(t, 4, FindDataStart(s, 1))
}

func TestExtractRows(t *testing.T) {
	rows := make([][]interface{}, 7)
	rows[0] = []interface{}{"Days", "Day", "Date", "Region/City", "Hotel Supplier"}
	rows[1] = []interface{}{"1", "Mon", "2025-03-01", "Cape Town", "Home Suite Station House"}
	rows[2] = []interface{}{"", "", "", "", ""} // undated, skipped
	rows[3] = []interface{}{"2", "Tue", "2025-03-02", "Cape Town", "Home Suite Station House"}
	rows[4] = []interface{}{"Action: book transfers"} // terminator
	rows[5] = []interface{}{"3", "Wed", "2025-03-03", "Hermanus", "Whale Rock Lodge"}
	s := buildSheet(t, rows)

	out := ExtractRows(s, DefaultColumnMap(), 2)

	if assert.Len(t, out, 2) {
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), out[0].Date)
		assert.Equal(t, "Home Suite Station House", out[0].HotelSupplier)
		assert.Equal(t, "Cape Town", out[0].RegionCity)
		assert.Equal(t, 4, out[1].Row)
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"Osprey Tours", "Percy Tours"}, splitLines("Osprey Tours\n\n  Percy Tours  \n"))
	assert.Nil(t, splitLines(""))
}

func TestSplitRawKeepsBlanks(t *testing.T) {
	lines := splitRaw("09h00\n\n14h30")
	assert.Equal(t, []string{"09h00", "", "14h30"}, lines)
	assert.Equal(t, "", lineAt(lines, 1))
	assert.Equal(t, "14h30", lineAt(lines, 2))
	assert.Equal(t, "", lineAt(lines, 9))
}
