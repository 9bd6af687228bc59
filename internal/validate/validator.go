// =============================================================================
// Travel Voucher Generator - Run Validation
// =============================================================================
//
// Cross-checks a parsed planning sheet before the travel pack ships: every
// service is listed with whether a voucher will be generated, suppliers the
// directory does not know are flagged as suspicious, and unusable titles
// are hard errors. The report is written as JSON next to the run output so
// a failed run can be diagnosed without re-parsing anything.
//
// =============================================================================

package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/PierreFinestTravel/Vouchersystem/internal/supplier"
	"github.com/PierreFinestTravel/Vouchersystem/internal/types"
)

// ReportFilename is the conventional name of the validation report inside a
// run directory.
const ReportFilename = "run_debug_report.json"

// minTitleLen is the shortest supplier title considered usable on a
// voucher.
const minTitleLen = 3

// =============================================================================
// REPORT STRUCTURE
// =============================================================================

// Item is the validation record of one service entity.
type Item struct {
	Kind          types.VoucherKind `json:"type"`
	Name          string            `json:"orga_name"`
	Date          string            `json:"orga_date,omitempty"`
	Generated     bool              `json:"voucher_generated"`
	SkippedReason string            `json:"skipped_reason,omitempty"`
	CanonicalName string            `json:"canonical_name"`
}

// SuspiciousName is a supplier the directory could not resolve; its voucher
// carries a synthesized title that deserves a human glance.
type SuspiciousName struct {
	Name string            `json:"name"`
	Kind types.VoucherKind `json:"type"`
}

// TripIDs is the result of the filename cross-check between the planning
// sheet and the client file.
type TripIDs struct {
	Orga   string `json:"orga"`
	Client string `json:"client"`
	Match  bool   `json:"match"`
}

// Report is the full validation result of one run.
type Report struct {
	Timestamp time.Time `json:"timestamp"`
	OrgaFile  string    `json:"orga_file"`
	Region    string    `json:"region"`

	TotalItems int `json:"total_items"`
	Generated  int `json:"generated"`
	Skipped    int `json:"skipped"`

	Items           []Item           `json:"items"`
	SuspiciousNames []SuspiciousName `json:"suspicious_names,omitempty"`
	Warnings        []string         `json:"warnings,omitempty"`
	Errors          []string         `json:"errors,omitempty"`
	TripIDs         *TripIDs         `json:"trip_ids,omitempty"`

	Passed bool `json:"passed"`
}

// RecordTripIDs attaches the filename cross-check result to the report. A
// mismatch is a warning, never a failure; Passed is unaffected.
func (r *Report) RecordTripIDs(orgaID, clientID string, match bool) {
	r.TripIDs = &TripIDs{Orga: orgaID, Client: clientID, Match: match}
	if !match {
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("trip ID mismatch: planning sheet has %s, client file has %s", orgaID, clientID))
	}
}

// Write stores the report as indented JSON.
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode validation report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write validation report: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks parsed documents against the supplier directory.
type Validator struct {
	dir *supplier.Directory
}

// New returns a validator resolving names against dir.
func New(dir *supplier.Directory) *Validator {
	return &Validator{dir: dir}
}

// Validate builds the validation report for a parsed document. Region
// suppression is reflected as skipped items, never as errors.
func (v *Validator) Validate(doc *types.ParsedDocument, orgaFile string) *Report {
	report := &Report{
		Timestamp: time.Now(),
		OrgaFile:  orgaFile,
		Region:    doc.Region,
	}

	suppressed := doc.Region == types.RegionEU
	suppressedReason := "not generated for european trips"

	for _, h := range doc.Hotels {
		v.add(report, types.KindHotel, h.Supplier, h.CheckIn, "")
	}
	for _, t := range doc.Transfers {
		var date time.Time
		if len(t.Legs) > 0 {
			date = t.Legs[0].Date
		}
		v.add(report, types.KindTransfer, t.Supplier, date, "")
	}
	for _, c := range doc.CarRentals {
		reason := ""
		if suppressed {
			reason = suppressedReason
		}
		v.add(report, types.KindCarRental, c.Supplier, c.PickupDate, reason)
	}
	for _, a := range doc.Activities {
		var date time.Time
		if len(a.Entries) > 0 {
			date = a.Entries[0].Date
		}
		reason := ""
		if suppressed {
			reason = suppressedReason
		}
		v.add(report, types.KindActivity, a.Supplier, date, reason)
	}
	for _, rst := range doc.Restaurants {
		reason := ""
		if suppressed {
			reason = suppressedReason
		}
		v.add(report, types.KindRestaurant, rst.Supplier, rst.Date, reason)
	}
	for _, g := range doc.Golf {
		v.add(report, types.KindGolf, g.Supplier, g.Date, "")
	}

	report.TotalItems = len(report.Items)
	report.Passed = len(report.Errors) == 0

	log.Info().
		Int("items", report.TotalItems).
		Int("generated", report.Generated).
		Int("skipped", report.Skipped).
		Int("suspicious", len(report.SuspiciousNames)).
		Int("errors", len(report.Errors)).
		Bool("passed", report.Passed).
		Msg("validation complete")

	return report
}

// add records one entity, resolving its canonical title and flagging
// unusable ones.
func (v *Validator) add(report *Report, kind types.VoucherKind, name string, date time.Time, skippedReason string) {
	canonical := v.dir.Lookup(name).DisplayName

	item := Item{
		Kind:          kind,
		Name:          name,
		Generated:     skippedReason == "",
		SkippedReason: skippedReason,
		CanonicalName: canonical,
	}
	if !date.IsZero() {
		item.Date = date.Format("2006-01-02")
	}
	report.Items = append(report.Items, item)

	if item.Generated {
		report.Generated++
	} else {
		report.Skipped++
	}

	if len(canonical) < minTitleLen {
		report.Errors = append(report.Errors,
			fmt.Sprintf("%s voucher has unusable title %q (from %q)", kind, canonical, name))
		return
	}

	if !v.dir.Known(name) {
		log.Warn().Str("supplier", name).Str("kind", string(kind)).Msg("supplier not in directory")
		report.SuspiciousNames = append(report.SuspiciousNames, SuspiciousName{Name: name, Kind: kind})
		return
	}

	// A hotel row resolving to a restaurant entry usually means a typo in
	// the sheet or a misfiled directory record.
	if cat := v.dir.Category(name); cat != "" && !compatibleCategory(kind, cat) {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%s voucher supplier %q is filed under %q in the directory", kind, name, cat))
	}
}

// compatibleCategory reports whether a directory category is a plausible
// home for a supplier of the given voucher kind. Transfer operators also
// run rental fleets; wine estates serve as both activity and restaurant
// venues, and golf courses are filed with the activities.
func compatibleCategory(kind types.VoucherKind, cat string) bool {
	switch kind {
	case types.KindHotel:
		return cat == "hotels"
	case types.KindTransfer, types.KindCarRental:
		return cat == "transfers" || cat == "car_rental"
	case types.KindActivity, types.KindRestaurant, types.KindGolf:
		return cat == "activities" || cat == "restaurants"
	}
	return true
}
