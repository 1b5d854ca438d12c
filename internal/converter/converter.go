// =============================================================================
// Wise to LexOffice Converter - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline. It turns the raw bytes of a
// Wise export into a LexOffice import file and batch statistics.
//
// CONVERSION PIPELINE:
//   1. Check the input size limit and read the file (Run only)
//   2. Parse the export (CSV or XLSX, detected from the content)
//   3. Compute statistics over every parsed record
//   4. Validate and map the records, dropping invalid ones
//   5. Serialize the LexOffice CSV (with BOM when configured)
//   6. Write the output file and optional xlsx preview (Run only)
//
// ERROR POLICY:
//   Malformed exports abort the conversion with a *csvparser.ParseError.
//   Invalid rows are logged and dropped. A batch without a single
//   convertible row fails with ErrNoConvertibleTransactions.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/config"
	"github.com/ginjaninja78/wise-lexoffice-converter/internal/csvparser"
	"github.com/ginjaninja78/wise-lexoffice-converter/internal/types"
	"github.com/ginjaninja78/wise-lexoffice-converter/internal/validation"
	"github.com/ginjaninja78/wise-lexoffice-converter/internal/writer"
	"github.com/ginjaninja78/wise-lexoffice-converter/internal/xlsxparser"
	"github.com/ginjaninja78/wise-lexoffice-converter/pkg/utils"
)

// ErrNoConvertibleTransactions is returned when no record survives validation.
var ErrNoConvertibleTransactions = errors.New("no convertible transactions found")

// =============================================================================
// INPUT FORMAT
// =============================================================================

// InputFormat selects the parser for an export.
type InputFormat string

const (
	// FormatAuto picks XLSX for spreadsheet magic bytes and CSV otherwise.
	FormatAuto InputFormat = "auto"
	FormatCSV  InputFormat = "csv"
	FormatXLSX InputFormat = "xlsx"
)

// ParseInputFormat parses a --format flag value. Empty means FormatAuto.
func ParseInputFormat(value string) (InputFormat, error) {
	switch format := InputFormat(strings.ToLower(strings.TrimSpace(value))); format {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatCSV, FormatXLSX:
		return format, nil
	default:
		return "", fmt.Errorf("unknown input format %q (want auto, csv or xlsx)", value)
	}
}

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Conversion is the in-memory outcome of converting one export.
type Conversion struct {
	// RunID identifies this conversion in the logs.
	RunID string

	// Records are the converted rows in input order.
	Records []types.OutputRecord

	// Statistics cover every parsed record, including dropped ones.
	Statistics types.ConversionStatistics

	// Dropped is the number of records that failed validation.
	Dropped int

	// CSV is the serialized LexOffice import file.
	CSV []byte
}

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the generated CSV file.
	// This is empty if processing failed.
	OutputFile string

	// PreviewFile is the path to the xlsx preview, if one was written.
	PreviewFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	// This is nil if processing was successful.
	Error error

	// Conversion holds the converted data when parsing succeeded.
	Conversion *Conversion

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsProcessed is the number of data rows parsed from the export.
	RowsProcessed int

	// RecordsConverted is the number of rows written to the output.
	RecordsConverted int

	// RecordsDropped is the number of rows that failed validation.
	RecordsDropped int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the conversion pipeline.
type Converter struct {
	config *config.MainConfig
	log    logrus.FieldLogger
	format InputFormat
	now    func() time.Time
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - cfg: The application configuration. nil uses the defaults.
//   - log: The logger for pipeline and row-level messages.
//
// RETURNS:
//   - A new Converter that auto-detects the input format.
func New(cfg *config.MainConfig, log logrus.FieldLogger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Converter{
		config: cfg,
		log:    log,
		format: FormatAuto,
		now:    time.Now,
	}
}

// WithFormat forces the input format used by Run.
func (c *Converter) WithFormat(format InputFormat) *Converter {
	c.format = format
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTIONS
// =============================================================================

// Convert converts the raw bytes of an export.
//
// PARAMETERS:
//   - data: The complete export content.
//   - format: The input format, or FormatAuto.
//
// RETURNS:
//   - The conversion. On ErrNoConvertibleTransactions the conversion is
//     still returned so that callers can report the statistics.
//   - An error if the export is malformed or nothing is convertible.
func (c *Converter) Convert(data []byte, format InputFormat) (*Conversion, error) {
	runID := uuid.NewString()
	log := c.log.WithField("run_id", runID)

	export, err := c.parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}

	log.WithFields(logrus.Fields{
		"rows":    export.RowCount,
		"columns": export.ColumnCount,
	}).Debug("Parsed export")

	conversion := &Conversion{
		RunID:      runID,
		Statistics: ComputeStatistics(export.Records, c.config.DefaultCurrency),
	}

	mapper := NewMapper(c.config.AccountHolder, log)
	conversion.Records = mapper.ConvertBatch(export.Records)
	conversion.Dropped = len(export.Records) - len(conversion.Records)

	if conversion.Dropped > 0 {
		log.WithField("dropped", conversion.Dropped).Warn("Some records were not convertible")
	}

	if len(conversion.Records) == 0 {
		return conversion, ErrNoConvertibleTransactions
	}

	csv, err := writer.EncodeLexOffice(conversion.Records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}

	if c.config.BOMEnabled() {
		csv = writer.WithBOM(csv)
	}
	conversion.CSV = csv

	log.WithField("records", len(conversion.Records)).Info("Converted export")

	return conversion, nil
}

// Report is the outcome of checking an export without converting it.
type Report struct {
	// Statistics cover every parsed record.
	Statistics types.ConversionStatistics

	// Validation holds the per-record errors.
	Validation *validation.ValidationResult

	// Lines holds the source line of each data row.
	Lines []int
}

// Check parses an export and validates every record without mapping or
// serializing anything. Validation errors carry the source line of their row.
func (c *Converter) Check(data []byte, format InputFormat) (*Report, error) {
	export, err := c.parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}

	report := &Report{
		Statistics: ComputeStatistics(export.Records, c.config.DefaultCurrency),
		Validation: validation.ValidateAll(export.Records),
		Lines:      export.Lines,
	}

	for _, verr := range report.Validation.Errors {
		verr.Line = report.SourceLine(verr.RowNumber)
	}

	return report, nil
}

// SourceLine returns the export line of the 1-based data row, or 0 when
// the row is unknown.
func (r *Report) SourceLine(row int) int {
	if row < 1 || row > len(r.Lines) {
		return 0
	}
	return r.Lines[row-1]
}

// parse dispatches to the CSV or XLSX parser.
func (c *Converter) parse(data []byte, format InputFormat) (*csvparser.Export, error) {
	if format == FormatAuto || format == "" {
		format = FormatCSV
		if xlsxparser.IsExcelFile(data) {
			format = FormatXLSX
		}
	}

	switch format {
	case FormatCSV:
		return csvparser.Parse(data, csvparser.Options{Encoding: c.config.InputEncoding})
	case FormatXLSX:
		return xlsxparser.Parse(data)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// Run converts a file and writes the LexOffice import file.
//
// PARAMETERS:
//   - inputPath: The Wise export to convert.
//   - outputPath: Where to write the CSV. Empty means
//     <output_dir>/<file_prefix><YYYY-MM-DD>.csv.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
func (c *Converter) Run(inputPath, outputPath string) Result {
	startTime := c.now()
	result := Result{
		FilePath: inputPath,
		Success:  false,
	}

	c.log.WithField("file", inputPath).Info("Processing file")

	data, err := utils.ReadInputFile(inputPath, c.config.MaxFileSize)
	if err != nil {
		result.Error = fmt.Errorf("failed to read input: %w", err)
		return result
	}

	conversion, err := c.Convert(data, c.format)
	result.Conversion = conversion
	if conversion != nil {
		result.Stats.RowsProcessed = conversion.Statistics.Total
		result.Stats.RecordsConverted = len(conversion.Records)
		result.Stats.RecordsDropped = conversion.Dropped
	}
	if err != nil {
		result.Error = err
		return result
	}

	if outputPath == "" {
		outputPath = filepath.Join(c.config.OutputDir, utils.GenerateOutputFileName(c.config.FilePrefix, startTime))
	}

	if err := utils.WriteOutputFile(outputPath, conversion.CSV); err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}
	result.OutputFile = outputPath

	c.log.WithFields(logrus.Fields{
		"run_id": conversion.RunID,
		"output": outputPath,
	}).Info("Wrote output")

	if c.config.XLSXPreview {
		previewPath, err := c.writePreview(outputPath, conversion.Records)
		if err != nil {
			// The CSV is the deliverable; a failed preview is only reported.
			c.log.WithError(err).Warn("Failed to write xlsx preview")
		} else {
			result.PreviewFile = previewPath
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = c.now().Sub(startTime)

	return result
}

// writePreview writes the xlsx copy next to the CSV output.
func (c *Converter) writePreview(outputPath string, records []types.OutputRecord) (string, error) {
	preview, err := writer.EncodeXLSXPreview(records)
	if err != nil {
		return "", err
	}

	previewPath := utils.PreviewFileName(outputPath)
	if err := utils.WriteOutputFile(previewPath, preview); err != nil {
		return "", err
	}

	return previewPath, nil
}
