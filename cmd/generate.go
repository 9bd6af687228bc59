// =============================================================================
// Travel Voucher Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which runs the full voucher
// pipeline for one trip.
//
// COMMAND USAGE:
//   vouchergen generate [flags]
//
// GENERATION PIPELINE:
//   1. Load configuration and the supplier directory
//   2. Parse the planning spreadsheet into service entities
//   3. Resolve traveller names (client file or --travellers override)
//   4. Render one voucher document per service and traveller set
//   5. Validate the run and write the debug report
//   6. Assemble the travel pack (merged PDF or zip archive)
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/PierreFinestTravel/Vouchersystem/internal/clientfile"
	"github.com/PierreFinestTravel/Vouchersystem/internal/config"
	"github.com/PierreFinestTravel/Vouchersystem/internal/orga"
	"github.com/PierreFinestTravel/Vouchersystem/internal/pdfmerge"
	"github.com/PierreFinestTravel/Vouchersystem/internal/supplier"
	"github.com/PierreFinestTravel/Vouchersystem/internal/types"
	"github.com/PierreFinestTravel/Vouchersystem/internal/validate"
	"github.com/PierreFinestTravel/Vouchersystem/internal/voucher"
	"github.com/PierreFinestTravel/Vouchersystem/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	// orgaFile is the planning spreadsheet to parse.
	orgaFile string

	// clientFile is the client document carrying the traveller names.
	clientFile string

	// clientMode selects how the client file is parsed: "single" for a
	// confirmation document, "group" for a booking sheet with rooms.
	clientMode string

	// travellersFlag bypasses client file parsing with explicit names.
	travellersFlag string

	// regionFlag overrides the configured default region.
	regionFlag string

	// refNo is the booking reference printed on every voucher.
	refNo string

	// outputFormat overrides the configured packaging (pdf or zip).
	outputFormat string

	// outName overrides the travel pack filename.
	outName string

	// skipTripCheck disables the trip ID cross-check between filenames.
	skipTripCheck bool
)

// runRetention is how long finished run scratch directories are kept for
// debugging before a later run cleans them up.
const runRetention = 7 * 24 * time.Hour

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the travel pack for one trip",
	Long: `The generate command parses a planning spreadsheet and the matching client
file, renders one voucher per booked service, validates the result and
assembles everything into a travel pack.

Traveller names come from the client file and are never guessed: a
confirmation document (--mode single) must carry a name label such as
"Kundennamen:" or "Traveller names:", and a group booking sheet
(--mode group) must carry Room / Last Name / First Name columns. A group
booking produces one voucher set per room.

On successful generation:
  - The travel pack is placed in the output directory
  - The validation report is written next to it

On failure nothing is written to the output directory; the run scratch
directory is kept for inspection.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context())
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&orgaFile, "orga", "", "Path to the planning spreadsheet (required)")
	generateCmd.Flags().StringVar(&clientFile, "client", "", "Path to the client file (confirmation document or booking sheet)")
	generateCmd.Flags().StringVar(&clientMode, "mode", "single", "Client file mode: single or group")
	generateCmd.Flags().StringVar(&travellersFlag, "travellers", "", "Explicit traveller names, bypassing the client file")
	generateCmd.Flags().StringVar(&regionFlag, "region", "", "Trip region: SA or EU (default from configuration)")
	generateCmd.Flags().StringVar(&refNo, "ref", "", "Booking reference printed on every voucher")
	generateCmd.Flags().StringVar(&outputFormat, "format", "", "Travel pack format: pdf or zip (default from configuration)")
	generateCmd.Flags().StringVar(&outName, "out", "", "Travel pack filename (without extension)")
	generateCmd.Flags().BoolVar(&skipTripCheck, "skip-trip-check", false, "Skip the trip ID cross-check between filenames")

	generateCmd.MarkFlagRequired("orga")
}

// =============================================================================
// PIPELINE
// =============================================================================

func runGenerate(ctx context.Context) error {
	start := time.Now()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	applyLogLevel(cfg.LogLevel)

	region := cfg.DefaultRegion
	if regionFlag != "" {
		region = strings.ToUpper(regionFlag)
		if region != types.RegionSA && region != types.RegionEU {
			return fmt.Errorf("unknown region %q (expected SA or EU)", regionFlag)
		}
	}

	format := cfg.OutputFormat
	if outputFormat != "" {
		format = strings.ToLower(outputFormat)
		if format != "pdf" && format != "zip" {
			return fmt.Errorf("unknown format %q (expected pdf or zip)", outputFormat)
		}
	}

	dir, err := supplier.Load(cfg.SuppliersFile)
	if err != nil {
		return err
	}
	log.Info().Int("suppliers", dir.Len()).Msg("supplier directory ready")

	// Trip ID cross-check: pairing a planning sheet with the wrong client
	// file is the classic mistake this catches. A mismatch is surfaced in
	// the log and the validation report, never treated as a failure.
	tripChecked := false
	var tripMatch bool
	var orgaID, clientID string
	if clientFile != "" && !skipTripCheck {
		tripChecked = true
		tripMatch, orgaID, clientID = clientfile.ValidateTripIDs(orgaFile, clientFile)
		if tripMatch {
			log.Info().Str("trip_id", orgaID).Msg("trip IDs match")
		} else {
			log.Warn().Str("orga_id", orgaID).Str("client_id", clientID).
				Msg("trip IDs do not match, check the file pairing")
		}
	}

	doc, err := orga.NewParser(dir, region).ParseFile(orgaFile)
	if err != nil {
		return err
	}

	travellerSets, err := resolveTravellers()
	if err != nil {
		return err
	}

	// Scratch directories from earlier runs are kept around for debugging;
	// drop the ones past the retention window before starting a new one.
	if removed, err := utils.CleanOldRuns(cfg.WorkDir, runRetention); err != nil {
		log.Warn().Err(err).Msg("scratch directory cleanup failed")
	} else if removed > 0 {
		log.Info().Int("removed", removed).Msg("old run directories cleaned up")
	}

	runDir, err := utils.NewRunDir(cfg.WorkDir)
	if err != nil {
		return err
	}
	log.Info().Str("dir", runDir).Msg("run directory created")

	// Render one voucher set per traveller group. Single bookings have one
	// set; group bookings one per room.
	var rendered []types.RenderedDoc
	for _, set := range travellerSets {
		setDir := runDir
		if len(travellerSets) > 1 {
			setDir = filepath.Join(runDir, set.dirName)
		}
		docs, err := voucher.NewRenderer(setDir).RenderAll(doc, set.display, refNo, set.groupText)
		if err != nil {
			return err
		}
		rendered = append(rendered, docs...)
	}
	log.Info().Int("vouchers", len(rendered)).Msg("vouchers rendered")

	report := validate.New(dir).Validate(doc, orgaFile)
	if tripChecked {
		report.RecordTripIDs(orgaID, clientID, tripMatch)
	}
	reportPath := filepath.Join(runDir, validate.ReportFilename)
	if err := report.Write(reportPath); err != nil {
		return err
	}
	if !report.Passed {
		return fmt.Errorf("validation failed with %d error(s), see %s", len(report.Errors), reportPath)
	}

	packPath, err := assemblePack(ctx, cfg, rendered, runDir, format)
	if err != nil {
		return err
	}

	if err := utils.CopyFile(reportPath, filepath.Join(cfg.OutputDir, validate.ReportFilename)); err != nil {
		return err
	}

	printSummary(doc, report, packPath, len(travellerSets), time.Since(start))
	return nil
}

// travellerSet is one group of travellers sharing a voucher set.
type travellerSet struct {
	display   string
	groupText string
	dirName   string
}

// resolveTravellers turns the flags into traveller sets. Explicit
// --travellers wins; otherwise the client file is parsed in the requested
// mode. No names is always a hard failure.
func resolveTravellers() ([]travellerSet, error) {
	if travellersFlag != "" {
		names := clientfile.ParseNameString(travellersFlag)
		return []travellerSet{{display: strings.Join(names, " & ")}}, nil
	}

	if clientFile == "" {
		return nil, fmt.Errorf("either --client or --travellers is required")
	}

	switch strings.ToLower(clientMode) {
	case "single":
		names, err := clientfile.ParseSingle(clientFile)
		if err != nil {
			return nil, err
		}
		log.Info().Strs("names", names).Msg("traveller names extracted")
		return []travellerSet{{display: strings.Join(names, " & ")}}, nil

	case "group":
		rooms, err := clientfile.ParseGroup(clientFile)
		if err != nil {
			return nil, err
		}
		sets := make([]travellerSet, 0, len(rooms))
		for _, room := range rooms {
			sets = append(sets, travellerSet{
				display:   room.NamesDisplay(),
				groupText: fmt.Sprintf("Room %d", room.RoomNumber),
				dirName:   fmt.Sprintf("room_%d_%s", room.RoomNumber, room.FilenameSafe()),
			})
		}
		log.Info().Int("rooms", len(sets)).Msg("room assignments extracted")
		return sets, nil

	default:
		return nil, fmt.Errorf("unknown client mode %q (expected single or group)", clientMode)
	}
}

// assemblePack builds the final travel pack in the output directory.
func assemblePack(ctx context.Context, cfg *config.Config, rendered []types.RenderedDoc, runDir, format string) (string, error) {
	name := outName
	if name == "" {
		base := filepath.Base(orgaFile)
		name = "travel_pack_" + utils.SafeFilename(strings.TrimSuffix(base, filepath.Ext(base)), 60)
	}

	switch format {
	case "pdf":
		soffice, err := pdfmerge.FindSoffice(cfg.SofficePath)
		if err != nil {
			return "", err
		}
		out := filepath.Join(cfg.OutputDir, name+".pdf")
		timeout := time.Duration(cfg.ConvertTimeoutSeconds) * time.Second
		if err := pdfmerge.BuildPDF(ctx, rendered, runDir, out, soffice, timeout); err != nil {
			return "", err
		}
		return out, nil

	case "zip":
		out := filepath.Join(cfg.OutputDir, name+".zip")
		if err := pdfmerge.BuildZip(rendered, out); err != nil {
			return "", err
		}
		return out, nil

	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

// printSummary prints the run summary to stdout.
func printSummary(doc *types.ParsedDocument, report *validate.Report, packPath string, sets int, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("Generation Summary")
	fmt.Println("================================================================================")
	if doc.Meta.LeadName != "" {
		fmt.Printf("  Lead Name:    %s\n", doc.Meta.LeadName)
	}
	if doc.Meta.TripNumber != "" {
		fmt.Printf("  Trip Number:  %s\n", doc.Meta.TripNumber)
	}
	fmt.Printf("  Region:       %s\n", doc.Region)
	fmt.Printf("  Hotels:       %d\n", len(doc.Hotels))
	fmt.Printf("  Transfers:    %d\n", len(doc.Transfers))
	fmt.Printf("  Car Rentals:  %d\n", len(doc.CarRentals))
	fmt.Printf("  Activities:   %d\n", len(doc.Activities))
	fmt.Printf("  Restaurants:  %d\n", len(doc.Restaurants))
	fmt.Printf("  Golf:         %d\n", len(doc.Golf))
	fmt.Printf("  Voucher Sets: %d\n", sets)
	fmt.Printf("  Suspicious:   %d supplier name(s)\n", len(report.SuspiciousNames))
	if len(report.Warnings) > 0 {
		fmt.Printf("  Warnings:     %d\n", len(report.Warnings))
	}
	fmt.Printf("  Travel Pack:  %s\n", packPath)
	fmt.Printf("  Elapsed:      %s\n", elapsed.Round(time.Millisecond))
	fmt.Println("================================================================================")
}
