package clientfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTripID(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"1008 LFA FRM Frilling SA - Orga.xlsx", "1008"},
		{"_1008 LFA FRM Frilling SA - Orga.xlsx", "1008"},
		{"Bestätigung - Thonhauser GM 22122025.docx", "1222"},
		{"Orga Trip 0311 final.xlsx", "0311"},
		{"no id here.xlsx", ""},
		{`C:\bookings\1008 Orga.xlsx`, "1008"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractTripID(tt.filename), "filename %q", tt.filename)
	}
}

func TestValidateTripIDs(t *testing.T) {
	match, orgaID, clientID := ValidateTripIDs(
		"1222 Thonhauser SA - Orga.xlsx",
		"Bestätigung - Thonhauser GM 22122025.docx",
	)
	assert.True(t, match)
	assert.Equal(t, "1222", orgaID)
	assert.Equal(t, "1222", clientID)
}

func TestValidateTripIDsMismatch(t *testing.T) {
	match, _, _ := ValidateTripIDs("1008 Orga.xlsx", "Bestätigung 22122025.docx")
	assert.False(t, match)
}

func TestValidateTripIDsMissing(t *testing.T) {
	match, orgaID, clientID := ValidateTripIDs("orga.xlsx", "client.docx")
	assert.False(t, match)
	assert.Equal(t, "?", orgaID)
	assert.Equal(t, "?", clientID)
}
