// =============================================================================
// Travel Voucher Generator - Version Command
// =============================================================================
//
// Prints the version, build date and Go runtime the binary was built with.
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version and BuildDate are injected at release time through
//
//	go build -ldflags "-X 'cmd.Version=...' -X 'cmd.BuildDate=...'"
var (
	Version   = "dev"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vouchergen %s (built %s, %s %s/%s)\n",
			Version, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
