// =============================================================================
// Travel Voucher Generator - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, which parses a planning
// spreadsheet and reports what would be generated, without rendering any
// vouchers or touching the output directory.
//
// COMMAND USAGE:
//   vouchergen inspect --orga <file> [flags]
//
// =============================================================================

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/PierreFinestTravel/Vouchersystem/internal/config"
	"github.com/PierreFinestTravel/Vouchersystem/internal/orga"
	"github.com/PierreFinestTravel/Vouchersystem/internal/supplier"
	"github.com/PierreFinestTravel/Vouchersystem/internal/types"
)

var (
	// inspectOrga is the planning spreadsheet to inspect.
	inspectOrga string

	// inspectRegion overrides the configured default region.
	inspectRegion string

	// inspectJSON dumps the parsed document as JSON instead of the table.
	inspectJSON bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Parse a planning spreadsheet and report its contents",
	Long: `The inspect command runs the parsing stage of the pipeline and prints what
was found: the trip metadata, every extracted service with its supplier
and dates, and any supplier names missing from the directory. Nothing is
rendered and the output directory is not touched.

Use --json to dump the parsed document as JSON for scripting.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect()
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectOrga, "orga", "", "Path to the planning spreadsheet (required)")
	inspectCmd.Flags().StringVar(&inspectRegion, "region", "", "Trip region: SA or EU (default from configuration)")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Dump the parsed document as JSON")

	inspectCmd.MarkFlagRequired("orga")
}

func runInspect() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	applyLogLevel(cfg.LogLevel)

	region := cfg.DefaultRegion
	if inspectRegion != "" {
		region = strings.ToUpper(inspectRegion)
	}

	dir, err := supplier.Load(cfg.SuppliersFile)
	if err != nil {
		return err
	}

	doc, err := orga.NewParser(dir, region).ParseFile(inspectOrga)
	if err != nil {
		return err
	}

	if inspectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	printDocument(doc, dir)
	return nil
}

const dateDisplay = "02.01.2006"

func printDocument(doc *types.ParsedDocument, dir *supplier.Directory) {
	fmt.Println()
	fmt.Println("Planning Sheet Contents")
	fmt.Println("================================================================================")
	if doc.Meta.LeadName != "" {
		fmt.Printf("  Lead Name:   %s\n", doc.Meta.LeadName)
	}
	if doc.Meta.Pax > 0 {
		fmt.Printf("  Pax:         %d\n", doc.Meta.Pax)
	}
	if doc.Meta.Dates != "" {
		fmt.Printf("  Dates:       %s\n", doc.Meta.Dates)
	}
	if doc.Meta.TripNumber != "" {
		fmt.Printf("  Trip Number: %s\n", doc.Meta.TripNumber)
	}
	fmt.Printf("  Region:      %s\n", doc.Region)
	fmt.Println()

	for _, h := range doc.Hotels {
		fmt.Printf("  hotel       %s - %s  %-40s %d night(s), %s\n",
			h.CheckIn.Format(dateDisplay), h.CheckOut.Format(dateDisplay),
			h.Supplier, h.Nights, h.Board)
	}
	for _, t := range doc.Transfers {
		fmt.Printf("  transfer    %-22s %-40s %d leg(s)\n", "", t.Supplier, len(t.Legs))
	}
	for _, c := range doc.CarRentals {
		fmt.Printf("  car rental  %s - %s  %-40s %s\n",
			c.PickupDate.Format(dateDisplay), c.DropoffDate.Format(dateDisplay),
			c.Supplier, c.CarGroup)
	}
	for _, a := range doc.Activities {
		fmt.Printf("  activity    %-22s %-40s %d entr(ies)\n", "", a.Supplier, len(a.Entries))
	}
	for _, r := range doc.Restaurants {
		fmt.Printf("  restaurant  %s              %-40s\n", r.Date.Format(dateDisplay), r.Supplier)
	}
	for _, g := range doc.Golf {
		fmt.Printf("  golf        %s              %-40s %s\n", g.Date.Format(dateDisplay), g.Supplier, g.Course)
	}

	unknown := unknownSuppliers(doc, dir)
	if len(unknown) > 0 {
		fmt.Println()
		fmt.Println("  Suppliers missing from the directory:")
		for _, name := range unknown {
			fmt.Printf("    - %s\n", name)
		}
	}
	fmt.Println("================================================================================")
	fmt.Printf("  Total services: %d\n", doc.TotalServices())
}

// unknownSuppliers lists supplier names the directory has no entry for,
// in document order without duplicates.
func unknownSuppliers(doc *types.ParsedDocument, dir *supplier.Directory) []string {
	seen := make(map[string]bool)
	var out []string
	check := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		if !dir.Known(name) {
			out = append(out, name)
			log.Debug().Str("supplier", name).Msg("not in supplier directory")
		}
	}
	for _, h := range doc.Hotels {
		check(h.Supplier)
	}
	for _, t := range doc.Transfers {
		check(t.Supplier)
	}
	for _, c := range doc.CarRentals {
		check(c.Supplier)
	}
	for _, a := range doc.Activities {
		check(a.Supplier)
	}
	for _, r := range doc.Restaurants {
		check(r.Supplier)
	}
	for _, g := range doc.Golf {
		check(g.Supplier)
	}
	return out
}
