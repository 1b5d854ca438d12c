// =============================================================================
// Wise to LexOffice Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (wiselex)
//   ├── convertCmd  (wiselex convert <file>)
//   ├── checkCmd    (wiselex check <file>)
//   ├── generateCmd (wiselex generate)
//   └── versionCmd  (wiselex version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration (file, then WISELEX_* environment)
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/config"
	"github.com/ginjaninja78/wise-lexoffice-converter/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wiselex",
	Short: "Wise to LexOffice Converter - Turn Wise statements into LexOffice bank imports",
	Long: `Wise to LexOffice Converter reads a Wise account statement export (CSV or
XLSX) and writes a CSV file that LexOffice accepts as a bank import.

Key Features:
  - German date and amount formats (29.09.2025, -553,76)
  - Payer/payee mapping based on the transaction direction
  - Protection against spreadsheet formula injection
  - Invalid rows are reported and skipped, never silently converted
  - Batch statistics for every conversion

Example Usage:
  wiselex convert statement.csv              # Write ./output/lexoffice_import_<date>.csv
  wiselex convert statement.csv -o out.csv   # Choose the output file
  wiselex check statement.csv                # Validate without writing anything
  wiselex generate -n 50                     # Create a sample Wise export`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
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
		config.DefaultConfigFileName,
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadRuntime loads the configuration and builds the logger for a command.
//
// An explicitly passed --config file must exist; the default file is
// optional and every setting falls back to its default.
func loadRuntime(cmd *cobra.Command) (*config.MainConfig, *logrus.Logger, error) {
	var (
		mainConfig *config.MainConfig
		err        error
	)

	if cmd.Flags().Changed("config") {
		mainConfig, err = config.LoadMainConfig(cfgFile)
	} else {
		mainConfig, err = config.LoadMainConfigOrDefault(cfgFile)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load main config: %w", err)
	}

	level := mainConfig.LogLevel
	if verbose {
		level = "debug"
	}

	logger, err := logging.SetupLogging(level, mainConfig.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return mainConfig, logger, nil
}
