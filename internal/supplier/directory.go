// =============================================================================
// Travel Voucher Generator - Supplier Directory
// =============================================================================
//
// The supplier directory maps the messy free-text supplier names found in
// planning spreadsheets to canonical contact records (display name, address,
// phone, GPS). The directory is loaded from a YAML file grouped by category:
//
//   hotels:
//     WHALE ROCK LODGE:
//       name: Whale Rock Luxury Lodge
//       address: 36 Springfield Ave, Hermanus
//       phone: +27 28 312 0000
//       gps: -34.414, 19.217
//
// Lookup never fails. When no record matches, a presentable name is
// synthesized from the raw text so voucher generation can always proceed;
// the validation report flags such suppliers as suspicious.
//
// =============================================================================

package supplier

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/PierreFinestTravel/Vouchersystem/internal/types"
)

// =============================================================================
// DIRECTORY STRUCTURE
// =============================================================================

// record is a single directory entry as it appears in the YAML file.
type record struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	GPS     string `yaml:"gps"`
}

// entry is a loaded directory record plus the category it came from.
type entry struct {
	record
	Category string
}

// Directory is the in-memory supplier directory. It remembers the file it
// was loaded from and reloads itself when the file changes on disk, so a
// long-lived process picks up directory edits without a restart.
type Directory struct {
	path    string
	modTime time.Time

	// entries is keyed by the normalized (uppercased, trimmed) raw name.
	entries map[string]entry

	// keys drives the substring fallback scan. Scan order is not
	// guaranteed; ambiguous raw names resolve best-effort.
	keys []string
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the supplier directory from a YAML file.
func Load(path string) (*Directory, error) {
	d := &Directory{path: path}
	if err := d.reload(); err != nil {
		return nil, err
	}
	return d, nil
}

// reload re-reads the backing file and rebuilds the entry index.
func (d *Directory) reload() error {
	info, err := os.Stat(d.path)
	if err != nil {
		return fmt.Errorf("failed to stat supplier file: %w", err)
	}

	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("failed to read supplier file: %w", err)
	}

	// Category name -> raw supplier name -> record.
	var raw map[string]map[string]record
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse supplier file %s: %w", d.path, err)
	}

	entries := make(map[string]entry)
	var keys []string
	for category, suppliers := range raw {
		for name, rec := range suppliers {
			key := normalizeKey(name)
			if key == "" {
				continue
			}
			if rec.Name == "" {
				rec.Name = name
			}
			if _, dup := entries[key]; !dup {
				keys = append(keys, key)
			}
			entries[key] = entry{record: rec, Category: category}
		}
	}

	d.entries = entries
	d.keys = keys
	d.modTime = info.ModTime()

	log.Debug().
		Str("path", d.path).
		Int("suppliers", len(entries)).
		Msg("supplier directory loaded")

	return nil
}

// ReloadIfStale re-reads the backing file when its modification time has
// advanced since the last load. A vanished or unreadable file keeps the
// current in-memory directory.
func (d *Directory) ReloadIfStale() error {
	info, err := os.Stat(d.path)
	if err != nil {
		log.Warn().Err(err).Str("path", d.path).Msg("supplier file unavailable, keeping cached directory")
		return nil
	}
	if !info.ModTime().After(d.modTime) {
		return nil
	}
	log.Info().Str("path", d.path).Msg("supplier file changed, reloading")
	return d.reload()
}

// Len returns the number of loaded supplier records.
func (d *Directory) Len() int {
	return len(d.entries)
}

// =============================================================================
// LOOKUP
// =============================================================================

// Lookup resolves a raw supplier name to canonical contact information.
//
// The match chain, in order:
//  1. exact match on the normalized name
//  2. substring match in either direction against every known key
//  3. match on the first whitespace-separated word
//
// When nothing matches, a display name is synthesized from the raw text:
// title-cased, unless the raw text is already fully uppercase (acronym-style
// names stay as written). Lookup never fails.
func (d *Directory) Lookup(raw string) types.ContactInfo {
	key := normalizeKey(raw)
	if key == "" {
		return types.ContactInfo{}
	}

	if e, ok := d.entries[key]; ok {
		return contactOf(e)
	}

	// Substring in either direction, first hit wins.
	for _, k := range d.keys {
		if strings.Contains(k, key) || strings.Contains(key, k) {
			return contactOf(d.entries[k])
		}
	}

	// First word only. Catches "Whale Rock (new booking)" style suffixes.
	if first := strings.Fields(key); len(first) > 0 {
		for _, k := range d.keys {
			kf := strings.Fields(k)
			if len(kf) > 0 && kf[0] == first[0] {
				return contactOf(d.entries[k])
			}
		}
	}

	return types.ContactInfo{DisplayName: synthesizeName(raw)}
}

// Known reports whether a raw supplier name resolves to a directory record
// rather than a synthesized fallback.
func (d *Directory) Known(raw string) bool {
	key := normalizeKey(raw)
	if key == "" {
		return false
	}
	if _, ok := d.entries[key]; ok {
		return true
	}
	for _, k := range d.keys {
		if strings.Contains(k, key) || strings.Contains(key, k) {
			return true
		}
	}
	if first := strings.Fields(key); len(first) > 0 {
		for _, k := range d.keys {
			kf := strings.Fields(k)
			if len(kf) > 0 && kf[0] == first[0] {
				return true
			}
		}
	}
	return false
}

// Category returns the directory category of a raw supplier name, or "" when
// the name only resolves through synthesis.
func (d *Directory) Category(raw string) string {
	key := normalizeKey(raw)
	if key == "" {
		return ""
	}
	if e, ok := d.entries[key]; ok {
		return e.Category
	}
	for _, k := range d.keys {
		if strings.Contains(k, key) || strings.Contains(key, k) {
			return d.entries[k].Category
		}
	}
	return ""
}

func contactOf(e entry) types.ContactInfo {
	return types.ContactInfo{
		DisplayName: e.Name,
		Address:     e.Address,
		Phone:       e.Phone,
		GPS:         e.GPS,
	}
}

// =============================================================================
// NAME NORMALIZATION
// =============================================================================

// normalizeKey uppercases and trims a raw name and strips the transfer
// marker some planners append, either as a trailing "(TR)" or a standalone
// trailing "TR" word.
func normalizeKey(raw string) string {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.TrimSuffix(key, "(TR)")
	key = strings.TrimSpace(key)
	if strings.HasSuffix(key, " TR") {
		key = strings.TrimSpace(strings.TrimSuffix(key, " TR"))
	}
	return key
}

// synthesizeName produces a presentable display name for a supplier the
// directory does not know. Fully uppercase input is assumed to be an acronym
// and kept as written; everything else is title-cased.
func synthesizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}
	if name == strings.ToUpper(name) {
		return name
	}
	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
