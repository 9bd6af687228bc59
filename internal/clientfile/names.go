// =============================================================================
// Travel Voucher Generator - Name String Splitting
// =============================================================================

package clientfile

import (
	"regexp"
	"strings"
)

var andSplitter = regexp.MustCompile(`(?i)\s+and\s+`)

// ParseNameString splits a raw name string into individual traveller names.
//
// The couple shorthand "Thomas & Petra Thonhauser" expands to both full
// names sharing the surname. It only applies to short, comma-free strings
// where the second name carries at least two words and its surname does not
// already appear in the first part; anything else falls through to plain
// delimiter splitting on ", ", " & " or " and ".
func ParseNameString(raw string) []string {
	raw = strings.TrimSpace(raw)

	if strings.Contains(raw, " & ") &&
		!strings.Contains(raw, ",") &&
		strings.Count(raw, " ") <= 4 {
		parts := strings.Split(raw, " & ")
		if len(parts) == 2 {
			second := strings.Fields(strings.TrimSpace(parts[1]))
			if len(second) >= 2 {
				surname := second[len(second)-1]
				first := strings.TrimSpace(parts[0])
				if !strings.Contains(first, surname) {
					return []string{
						first + " " + surname,
						strings.TrimSpace(parts[1]),
					}
				}
			}
		}
	}

	var names []string
	switch {
	case strings.Contains(raw, ", "):
		names = strings.Split(raw, ", ")
	case strings.Contains(raw, " & "):
		names = strings.Split(raw, " & ")
	case strings.Contains(strings.ToLower(raw), " and "):
		names = andSplitter.Split(raw, -1)
	default:
		names = []string{raw}
	}

	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return names
}
