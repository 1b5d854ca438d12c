// =============================================================================
// Wise to LexOffice Converter - File Manager Utility
// =============================================================================
//
// This module provides file utilities for the converter, including:
//   - Size-limited reading of input files
//   - Output file naming and writing
//   - Directory management
//   - The human-readable conversion summary
//
// FILE NAMING:
//   <prefix><YYYY-MM-DD>.csv, e.g. lexoffice_import_2025-09-29.csv
//   The xlsx preview shares the base name: lexoffice_import_2025-09-29.xlsx
//
// =============================================================================

package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrFileTooLarge is returned when an input file exceeds the size limit.
var ErrFileTooLarge = errors.New("file too large")

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectory creates dir and its parents if they don't exist.
func EnsureDirectory(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}

// =============================================================================
// INPUT FILES
// =============================================================================

// ReadInputFile reads a whole input file after checking it against maxSize.
//
// PARAMETERS:
//   - filePath: The path to the file.
//   - maxSize: The largest accepted size in bytes. Zero or less disables
//     the check.
//
// RETURNS:
//   - The file content.
//   - ErrFileTooLarge (wrapped) if the file exceeds maxSize.
func ReadInputFile(filePath string, maxSize int64) ([]byte, error) {
	size, err := GetFileSize(filePath)
	if err != nil {
		return nil, err
	}

	if maxSize > 0 && size > maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d bytes", ErrFileTooLarge, filePath, size, maxSize)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

// FileExists checks if a file exists.
func FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(filePath string) (int64, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to stat file: %w", err)
	}
	return info.Size(), nil
}

// =============================================================================
// OUTPUT FILES
// =============================================================================

// GenerateOutputFileName builds the output file name for a conversion at t.
//
// EXAMPLE:
//   prefix: "lexoffice_import_", t: 2025-09-29 14:30
//   output: "lexoffice_import_2025-09-29.csv"
func GenerateOutputFileName(prefix string, t time.Time) string {
	return prefix + t.Format("2006-01-02") + ".csv"
}

// PreviewFileName returns the xlsx preview path that belongs to csvPath.
func PreviewFileName(csvPath string) string {
	return strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + ".xlsx"
}

// WriteOutputFile writes data to filePath, creating the parent directory.
func WriteOutputFile(filePath string, data []byte) error {
	if err := EnsureDirectory(filepath.Dir(filePath)); err != nil {
		return err
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}

	return nil
}

// =============================================================================
// CONVERSION SUMMARY
// =============================================================================

// ConversionSummary contains summary information about one conversion.
type ConversionSummary struct {
	RunID       string
	InputFile   string
	OutputFile  string
	PreviewFile string
	Total       int
	Converted   int
	Dropped     int
	Debit       int
	Credit      int
	TotalAmount string
	Currency    string
	Duration    time.Duration
}

// WriteSummary writes a conversion summary in plain text.
//
// PARAMETERS:
//   - w: The destination, usually stdout.
//   - summary: The conversion summary.
//
// RETURNS:
//   - An error if writing fails.
func WriteSummary(w io.Writer, summary ConversionSummary) error {
	writer := bufio.NewWriter(w)

	fmt.Fprintf(writer, "Wise to LexOffice Converter - Conversion Summary\n"+
		"================================================================================\n\n")

	if summary.RunID != "" {
		fmt.Fprintf(writer, "  Run ID:         %s\n", summary.RunID)
	}
	if summary.InputFile != "" {
		fmt.Fprintf(writer, "  Input:          %s\n", summary.InputFile)
	}
	if summary.OutputFile != "" {
		fmt.Fprintf(writer, "  Output:         %s\n", summary.OutputFile)
	}
	if summary.PreviewFile != "" {
		fmt.Fprintf(writer, "  Preview:        %s\n", summary.PreviewFile)
	}

	fmt.Fprintf(writer, "\nStatistics:\n"+
		"  Transactions:   %d\n"+
		"  Converted:      %d\n"+
		"  Dropped:        %d\n"+
		"  Debits:         %d\n"+
		"  Credits:        %d\n"+
		"  Total Amount:   %s %s\n",
		summary.Total,
		summary.Converted,
		summary.Dropped,
		summary.Debit,
		summary.Credit,
		summary.TotalAmount,
		summary.Currency)

	if summary.Duration > 0 {
		fmt.Fprintf(writer, "  Duration:       %s\n", summary.Duration.Round(time.Millisecond))
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	return nil
}
