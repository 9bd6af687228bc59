// =============================================================================
// Travel Voucher Generator - Trip ID Matching
// =============================================================================
//
// Every trip carries a 4-digit ID encoding month and day of departure. Both
// the planning sheet and the client file embed it in their filenames, in a
// few competing conventions; comparing the two IDs catches the classic
// mistake of pairing a planning sheet with the wrong client file.
//
// =============================================================================

package clientfile

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	// "1008 LFA FRM Frilling SA - Orga.xlsx", optionally underscore-prefixed
	tripIDLeading = regexp.MustCompile(`^_?(\d{4})\s`)

	// "Bestätigung - Thonhauser GM 22122025.docx": trailing DDMMYYYY date,
	// trip ID is MMDD
	tripIDDocxDate = regexp.MustCompile(`(?i)(\d{2})(\d{2})(\d{4})\.docx$`)

	// fallback: first 4-digit run anywhere
	tripIDAnywhere = regexp.MustCompile(`(\d{4})`)
)

// ExtractTripID pulls the 4-digit trip ID out of a filename, or "" when the
// name carries none.
func ExtractTripID(filename string) string {
	filename = filepath.Base(strings.ReplaceAll(filename, `\`, "/"))

	if m := tripIDLeading.FindStringSubmatch(filename); m != nil {
		return m[1]
	}
	if m := tripIDDocxDate.FindStringSubmatch(filename); m != nil {
		day, month := m[1], m[2]
		return month + day
	}
	if m := tripIDAnywhere.FindStringSubmatch(filename); m != nil {
		return m[1]
	}
	return ""
}

// ValidateTripIDs compares the trip IDs embedded in the planning sheet and
// client file names. Missing IDs never validate; "?" stands in for them in
// the returned values.
func ValidateTripIDs(orgaFile, clientFile string) (match bool, orgaID, clientID string) {
	orgaID = ExtractTripID(orgaFile)
	clientID = ExtractTripID(clientFile)

	if orgaID == "" {
		log.Warn().Str("file", orgaFile).Msg("no trip ID in planning sheet filename")
	}
	if clientID == "" {
		log.Warn().Str("file", clientFile).Msg("no trip ID in client filename")
	}

	match = orgaID != "" && clientID != "" && orgaID == clientID

	if orgaID == "" {
		orgaID = "?"
	}
	if clientID == "" {
		clientID = "?"
	}
	return match, orgaID, clientID
}
