// =============================================================================
// Travel Voucher Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Travel Voucher Generator CLI. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   vouchergen generate     - Generate the travel pack for one trip
//   vouchergen inspect      - Parse a planning spreadsheet and report contents
//   vouchergen version      - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//   - configs/       : Contains the supplier directory YAML
//
// =============================================================================

package main

import (
	"github.com/PierreFinestTravel/Vouchersystem/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
