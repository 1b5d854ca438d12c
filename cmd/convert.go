// =============================================================================
// Wise to LexOffice Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which is the main command for
// converting a Wise export into a LexOffice import file.
//
// COMMAND USAGE:
//   wiselex convert <file> [flags]
//
// FLAGS:
//   --output, -o    : Output file (default <output_dir>/<prefix><date>.csv)
//   --dry-run       : Convert and report without writing any file
//   --format        : Input format: auto, csv or xlsx
//   --xlsx-preview  : Also write an xlsx copy of the output
//
// EXIT CODES:
//   0 : The output file was written
//   1 : Malformed input, nothing convertible, or an I/O failure
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/converter"
	"github.com/ginjaninja78/wise-lexoffice-converter/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	outputPath  string
	dryRun      bool
	inputFormat string
	xlsxPreview bool
)

// convertCmd represents the 'convert' command.
var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a Wise export into a LexOffice import file",
	Long: `The convert command reads a Wise account statement export, converts every
valid transaction and writes a semicolon separated CSV file for the LexOffice
bank import.

Rows with a missing date, amount or direction are reported and skipped.
The command fails when the export is malformed or not a single row can be
converted; no output file is written in that case.`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	convertCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Convert without writing output files")
	convertCmd.Flags().StringVar(&inputFormat, "format", string(converter.FormatAuto), "Input format: auto, csv or xlsx")
	convertCmd.Flags().BoolVar(&xlsxPreview, "xlsx-preview", false, "Also write an xlsx preview of the output")
}

// runConvert converts one file and prints the summary.
func runConvert(cmd *cobra.Command, inputPath string) error {
	mainConfig, logger, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	format, err := converter.ParseInputFormat(inputFormat)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("xlsx-preview") {
		mainConfig.XLSXPreview = xlsxPreview
	}

	conv := converter.New(mainConfig, logger).WithFormat(format)

	if dryRun {
		data, err := utils.ReadInputFile(inputPath, mainConfig.MaxFileSize)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		conversion, err := conv.Convert(data, format)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Dry run: no files were written.")
		return printSummary(cmd.OutOrStdout(), inputPath, converter.Result{Conversion: conversion})
	}

	result := conv.Run(inputPath, outputPath)
	if !result.Success {
		return result.Error
	}

	return printSummary(cmd.OutOrStdout(), inputPath, result)
}

func printSummary(w io.Writer, inputPath string, result converter.Result) error {
	conversion := result.Conversion
	stats := conversion.Statistics

	return utils.WriteSummary(w, utils.ConversionSummary{
		RunID:       conversion.RunID,
		InputFile:   inputPath,
		OutputFile:  result.OutputFile,
		PreviewFile: result.PreviewFile,
		Total:       stats.Total,
		Converted:   len(conversion.Records),
		Dropped:     conversion.Dropped,
		Debit:       stats.Debit,
		Credit:      stats.Credit,
		TotalAmount: converter.FormatAmount(stats.TotalAmount),
		Currency:    stats.Currency,
		Duration:    result.Stats.ProcessingTime,
	})
}
