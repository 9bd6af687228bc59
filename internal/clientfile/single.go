// =============================================================================
// Travel Voucher Generator - Single Booking Name Extraction
// =============================================================================
//
// Single-mode bookings arrive as a confirmation document containing the
// traveller names behind a label like "Kundennamen:" or "Traveller names:".
// Names are only ever extracted, never guessed: when no label pattern
// matches, the result is empty and the caller must treat that as a failure.
//
// =============================================================================

package clientfile

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

// ErrNoTravellerNames is returned when a confirmation document contains no
// recognizable name label. Vouchers without traveller names are worthless,
// so this is a hard failure.
var ErrNoTravellerNames = errors.New("no traveller names found in client file")

// inlinePatterns match a label with the names on the same line. Order
// matters: the most specific labels come first, and the first valid match
// wins. A generic "Name:" pattern is deliberately absent, it would match
// company labels like "Firmen Name:".
var inlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Kundennamen?:\s*(.+)`),
	regexp.MustCompile(`(?i)Traveller\s*names?:\s*(.+)`),
	regexp.MustCompile(`(?i)Client\s*names?:\s*(.+)`),
	regexp.MustCompile(`(?i)Guest\s*names?:\s*(.+)`),
	regexp.MustCompile(`(?i)Reisende[nr]?:\s*(.+)`),
	regexp.MustCompile(`(?i)Gast(?:name)?:\s*(.+)`),
	regexp.MustCompile(`(?i)Teilnehmer:\s*(.+)`),
}

// headerPatterns match a label alone on its line, with the names on the
// following lines.
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Kundennamen?:?\s*$`),
	regexp.MustCompile(`(?i)^Traveller\s*names?:?\s*$`),
	regexp.MustCompile(`(?i)^Client\s*names?:?\s*$`),
	regexp.MustCompile(`(?i)^Guest\s*names?:?\s*$`),
	regexp.MustCompile(`(?i)^Reisende[nr]?:?\s*$`),
	regexp.MustCompile(`(?i)^Teilnehmer:?\s*$`),
}

// sectionKeywords mark the start of a new labelled section below a name
// header; reaching one ends the name scan.
var sectionKeywords = []string{
	"firmen", "typ", "datum", "link", "b&b", "übernachtung",
	"geschäftsbedingungen", "storno", "einreise", "impf",
}

// titlePrefixes are salutations a name line may start with.
var titlePrefixes = []string{"Herr ", "Frau ", "Mr ", "Mrs ", "Ms ", "Dr "}

var (
	trailingAnnotation = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	leadingTitle       = regexp.MustCompile(`^(Herr|Frau|Mr\.?|Mrs\.?|Ms\.?|Dr\.?)\s+`)
	allDigits          = regexp.MustCompile(`^\d+$`)
)

// headerScanWindow is how many paragraphs below a name header are searched
// for name lines.
const headerScanWindow = 10

// ParseSingle extracts traveller names from a confirmation document on
// disk.
func ParseSingle(path string) ([]string, error) {
	paragraphs, err := ExtractParagraphs(path)
	if err != nil {
		return nil, err
	}
	names := ParseParagraphs(paragraphs)
	if len(names) == 0 {
		log.Error().Str("path", path).Msg("no name label matched in client file")
		return nil, ErrNoTravellerNames
	}
	return names, nil
}

// ParseParagraphs extracts traveller names from paragraph text. The result
// is empty when no label pattern matches; no name is ever invented.
func ParseParagraphs(paragraphs []string) []string {
	for i, text := range paragraphs {
		if text == "" {
			continue
		}

		// Names on the same line as the label.
		for _, pat := range inlinePatterns {
			m := pat.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			raw := strings.TrimSpace(m[1])
			if len(raw) < 3 || allDigits.MatchString(raw) {
				continue
			}
			var valid []string
			for _, n := range ParseNameString(raw) {
				if n = strings.TrimSpace(n); len(n) >= 2 {
					valid = append(valid, n)
				}
			}
			if len(valid) > 0 {
				log.Info().Strs("names", valid).Msg("found traveller names on label line")
				return valid
			}
		}

		// A label alone on its line, names on the following lines.
		for _, pat := range headerPatterns {
			if !pat.MatchString(text) {
				continue
			}
			if found := scanBelowHeader(paragraphs, i); len(found) > 0 {
				log.Info().Strs("names", found).Msg("found traveller names below label")
				return found
			}
		}
	}

	return nil
}

// scanBelowHeader collects name lines following a header label. The scan
// stops at a blank line once names were found, or at the next labelled
// section.
func scanBelowHeader(paragraphs []string, headerIdx int) []string {
	var found []string

	end := headerIdx + headerScanWindow
	if end > len(paragraphs) {
		end = len(paragraphs)
	}

	for j := headerIdx + 1; j < end; j++ {
		text := strings.TrimSpace(paragraphs[j])

		if text == "" {
			if len(found) > 0 {
				break
			}
			continue
		}

		if strings.Contains(text, ":") && containsAnyFold(text, sectionKeywords) {
			break
		}

		if !looksLikeName(text) {
			continue
		}

		clean := strings.TrimSpace(trailingAnnotation.ReplaceAllString(text, ""))
		clean = strings.TrimSpace(leadingTitle.ReplaceAllString(clean, ""))
		if len(clean) >= 2 {
			found = append(found, clean)
		}
	}

	return found
}

// looksLikeName reports whether a line plausibly holds a person's name:
// either a salutation prefix or an uppercase first letter with at least two
// words.
func looksLikeName(text string) bool {
	for _, prefix := range titlePrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	r := []rune(text)
	return unicode.IsUpper(r[0]) && len(strings.Fields(text)) >= 2
}

func containsAnyFold(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
