// =============================================================================
// Travel Voucher Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (vouchergen)
//   ├── generateCmd (vouchergen generate)
//   ├── inspectCmd  (vouchergen inspect)
//   └── versionCmd  (vouchergen version)
//
// The root command owns the global flags (--config, --verbose) and the
// logging setup; the subcommands load the configuration themselves.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file, set by --config.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vouchergen",
	Short: "Travel Voucher Generator - Build supplier vouchers from planning sheets",

	Long: `Travel Voucher Generator builds the full set of supplier vouchers for a
trip from its planning spreadsheet and the client booking file, and
assembles them into a single travel pack.

Key Features:
  - Tolerant column detection for hand-authored planning sheets
  - Hotel, transfer, car rental, activity, restaurant and golf vouchers
  - Traveller name extraction from confirmation documents and group
    booking sheets (names are extracted, never guessed)
  - Supplier canonicalization against a YAML directory
  - Merged PDF or zip travel pack output with a validation report

Example Usage:
  vouchergen generate --orga "1008 Orga.xlsx" --client "1008 BS.xlsx" --mode group
  vouchergen generate --orga orga.xlsx --travellers "Thomas & Petra Thonhauser"
  vouchergen inspect --orga orga.xlsx   # Parse and report without generating`,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// setupLogging configures the global zerolog logger for console output.
// --verbose switches to debug level; the configured log level applies
// otherwise and is refined by the subcommands after loading the config.
func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
	})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// applyLogLevel applies the configured log level unless --verbose already
// forced debug output.
func applyLogLevel(level string) {
	if verbose {
		return
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, keeping info")
		return
	}
	zerolog.SetGlobalLevel(parsed)
}
