// =============================================================================
// Wise to LexOffice Converter - Check Command
// =============================================================================
//
// This file defines the 'check' command, which parses and validates a Wise
// export without writing anything.
//
// COMMAND USAGE:
//   wiselex check <file> [--format auto|csv|xlsx]
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/converter"
	"github.com/ginjaninja78/wise-lexoffice-converter/internal/validation"
	"github.com/ginjaninja78/wise-lexoffice-converter/pkg/utils"
)

var checkFormat string

// checkCmd represents the 'check' command.
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a Wise export without converting it",
	Long: `The check command parses a Wise export and reports every row that the
convert command would skip, together with the batch statistics.

It fails when the export is malformed or contains no valid row.`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkFormat, "format", string(converter.FormatAuto), "Input format: auto, csv or xlsx")
}

func runCheck(cmd *cobra.Command, inputPath string) error {
	mainConfig, logger, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	format, err := converter.ParseInputFormat(checkFormat)
	if err != nil {
		return err
	}

	data, err := utils.ReadInputFile(inputPath, mainConfig.MaxFileSize)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	report, err := converter.New(mainConfig, logger).Check(data, format)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	stats := report.Statistics
	result := report.Validation

	fmt.Fprintf(out, "Checked %s\n", inputPath)
	fmt.Fprintf(out, "  Transactions:   %d (%d debit, %d credit)\n", stats.Total, stats.Debit, stats.Credit)
	fmt.Fprintf(out, "  Total Amount:   %s %s\n", converter.FormatAmount(stats.TotalAmount), stats.Currency)
	fmt.Fprintf(out, "  Valid:          %d\n", result.ValidRecords())
	fmt.Fprintf(out, "  Invalid:        %d\n\n", result.InvalidRecords)
	fmt.Fprintln(out, validation.FormatErrors(result.Errors))

	if result.ValidRecords() == 0 {
		return errors.New("export contains no convertible transactions")
	}

	return nil
}
