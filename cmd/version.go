// =============================================================================
// Wise to LexOffice Converter - Version Command
// =============================================================================
//
// This file defines the 'version' command.
//
// COMMAND USAGE:
//   wiselex version           - Full build information
//   wiselex version --short   - Version number only
//
// BUILD:
//   go build -ldflags "\
//     -X 'github.com/ginjaninja78/wise-lexoffice-converter/cmd.Version=1.2.0' \
//     -X 'github.com/ginjaninja78/wise-lexoffice-converter/cmd.Commit=abc1234' \
//     -X 'github.com/ginjaninja78/wise-lexoffice-converter/cmd.BuildDate=2025-09-29'"
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// Build information, overridden with -ldflags.
var (
	Version   = "1.0.0"
	Commit    = "none"
	BuildDate = "unknown"
)

var shortVersion bool

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		writeVersion(cmd.OutOrStdout(), shortVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&shortVersion, "short", false, "Print only the version number")
}

func writeVersion(w io.Writer, short bool) {
	if short {
		fmt.Fprintln(w, Version)
		return
	}

	fmt.Fprintf(w, "wiselex %s (commit %s, built %s, %s %s/%s)\n",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
