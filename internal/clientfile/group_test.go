package clientfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/PierreFinestTravel/Vouchersystem/internal/xlsxio"
)

// groupSheet materializes an in-memory sheet from row data.
func groupSheet(t *testing.T, rows [][]interface{}) *xlsxio.Sheet {
	t.Helper()

	f := excelize.NewFile()
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	s, err := xlsxio.FromFile(f).Sheet("Sheet1")
	require.NoError(t, err)
	return s
}

func TestParseGroupSheetSharedRoom(t *testing.T) {
	rows := [][]interface{}{
		{"Room", "", "", "", "Last Name", "First Name"},
		{"101", "", "", "", "Smith", "John"},
		{"", "", "", "", "Smith", "Jane"},
		{"102", "", "", "", "Meyer", "Hans"},
	}

	groups := ParseGroupSheet(groupSheet(t, rows))

	if assert.Len(t, groups, 2) {
		assert.Equal(t, 101, groups[0].RoomNumber)
		assert.Equal(t, []string{"John Smith", "Jane Smith"}, groups[0].Occupants)
		assert.Equal(t, []string{"Hans Meyer"}, groups[1].Occupants)
	}
}

func TestParseGroupSheetAdjacencyWindow(t *testing.T) {
	// An unnumbered name right below a shared room still joins it; one far
	// below the last occupied row does not.
	rows := [][]interface{}{
		{"Room", "", "", "", "Last Name", "First Name"},
		{"201", "", "", "", "Smith", "John"},
		{"", "", "", "", "Smith", "Jane"},
		{"", "", "", "", "Smith", "Jimmy"},
		{}, {}, {},
		{"", "", "", "", "Stray", "Name"},
	}

	groups := ParseGroupSheet(groupSheet(t, rows))

	if assert.Len(t, groups, 1) {
		assert.Equal(t, []string{"John Smith", "Jane Smith", "Jimmy Smith"}, groups[0].Occupants)
	}
}

func TestParseGroupSheetSkipsMetadataRows(t *testing.T) {
	rows := [][]interface{}{
		{"Room", "", "", "", "Last Name", "First Name"},
		{"Room", "", "", "", "Last Name", "First Name"}, // repeated header
		{"PRO", "", "", "", "Guide", "Tour"},
		{"301", "", "", "", "Schmidt", "Karl"},
		{"", "", "", "", "bitte EZ", ""},
		{"", "", "", "", "Schmidt", "Anna"},
	}

	groups := ParseGroupSheet(groupSheet(t, rows))

	if assert.Len(t, groups, 1) {
		assert.Equal(t, 301, groups[0].RoomNumber)
		assert.Equal(t, []string{"Karl Schmidt", "Anna Schmidt"}, groups[0].Occupants)
	}
}

func TestParseGroupSheetEmpty(t *testing.T) {
	rows := [][]interface{}{
		{"Room", "", "", "", "Last Name", "First Name"},
	}
	assert.Empty(t, ParseGroupSheet(groupSheet(t, rows)))
}

func TestNamesDisplay(t *testing.T) {
	g := RoomGroup{RoomNumber: 1, Occupants: []string{"John Smith", "Jane Smith"}}
	assert.Equal(t, "John Smith & Jane Smith", g.NamesDisplay())
}

func TestFilenameSafe(t *testing.T) {
	g := RoomGroup{Occupants: []string{"John Smith", "Jörg Müller-Lüdenscheidt"}}

	safe := g.FilenameSafe()
	assert.NotEmpty(t, safe)
	assert.NotContains(t, safe, " ")
	assert.NotContains(t, safe, "&")
	assert.Equal(t, "John_Smith_Jörg_Müller-Lüdenscheidt", safe)
}
