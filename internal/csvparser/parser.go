// =============================================================================
// Wise to LexOffice Converter - CSV Parser Module
// =============================================================================
//
// This module is responsible for parsing Wise CSV exports into records.
//
// PARSING PROCESS:
//   1. Decode the raw bytes from the configured character encoding
//   2. Strip a leading byte-order-mark
//   3. Read every row with standard CSV quoting (quoted commas, "" escapes)
//   4. Trim the header names and skip blank rows
//   5. Check each row's width against the header
//   6. Check that the export has data rows and the required columns
//
// FATAL ERRORS:
//   Every failure is a *ParseError wrapping one of the Err* sentinels, so
//   callers can branch with errors.Is and still show the detailed message.
//   Row-shape and quoting problems are reported before an empty export,
//   which is reported before missing required columns.
//
// =============================================================================

package csvparser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/types"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrTooManyColumns = errors.New("too many columns")
	ErrTooFewColumns  = errors.New("too few columns")
	ErrMalformedCSV   = errors.New("malformed CSV")
	ErrEmptyFile      = errors.New("no transactions found in file")
	ErrMissingHeaders = errors.New("missing required column(s)")
)

// ParseError describes why an export could not be parsed.
type ParseError struct {
	// Kind is one of the Err* sentinels.
	Kind error

	// Line is the 1-based source line, or 0 when not tied to a line.
	Line int

	// Detail is appended to the message.
	Detail string

	// Missing lists the absent required columns for ErrMissingHeaders.
	Missing []string

	// Cause is the underlying decoder error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Line > 0 {
		msg += fmt.Sprintf(" on line %d", e.Line)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap exposes the sentinel and the cause to errors.Is and errors.As.
func (e *ParseError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// =============================================================================
// EXPORT STRUCTURE
// =============================================================================

// Export represents a parsed Wise export.
type Export struct {
	// Headers contains the trimmed column headers.
	Headers []string

	// Records contains the data rows in file order.
	Records []types.InputRecord

	// Lines holds the source line of each record, for error reporting.
	Lines []int

	// RowCount is the number of data rows (excluding the header and blanks).
	RowCount int

	// ColumnCount is the number of header columns.
	ColumnCount int
}

// Row is one raw row of cells and the line it started on.
type Row struct {
	Line  int
	Cells []string
}

// Options controls parsing.
type Options struct {
	// Encoding is the IANA name of the input character set. Empty means UTF-8.
	Encoding string
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a Wise CSV export.
//
// PARAMETERS:
//   - data: The complete raw file content.
//   - opts: Decoding options.
//
// RETURNS:
//   - The parsed export.
//   - A *ParseError if the file violates the export contract.
func Parse(data []byte, opts Options) (*Export, error) {
	text, err := Decode(data, opts.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(text))
	configureReader(reader)

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, malformed(err)
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, Row{Line: line, Cells: record})
	}

	// The header is the first row with content.
	for len(rows) > 0 && isRowEmpty(rows[0].Cells) {
		rows = rows[1:]
	}

	if len(rows) == 0 {
		return nil, &ParseError{Kind: ErrEmptyFile}
	}

	return BuildExport(rows[0].Cells, rows[1:])
}

// configureReader sets up the reader for Wise exports.
func configureReader(reader *csv.Reader) {
	reader.Comma = ','

	// Row widths are checked against the header in BuildExport so that
	// too-many and too-few can be told apart.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = false
	reader.ReuseRecord = false
}

// malformed converts a decoder error into a ParseError.
func malformed(err error) *ParseError {
	parseErr := &ParseError{Kind: ErrMalformedCSV, Cause: err}

	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		parseErr.Line = csvErr.StartLine
		parseErr.Detail = csvErr.Err.Error()
	} else {
		parseErr.Detail = err.Error()
	}

	return parseErr
}

// BuildExport applies the Wise header contract to raw rows.
//
// Blank rows are skipped. Every other row must have exactly as many cells
// as the header. Values are trimmed.
func BuildExport(header []string, rows []Row) (*Export, error) {
	headers := cleanHeaders(header)

	export := &Export{
		Headers:     headers,
		Records:     make([]types.InputRecord, 0, len(rows)),
		Lines:       make([]int, 0, len(rows)),
		ColumnCount: len(headers),
	}

	for _, row := range rows {
		if isRowEmpty(row.Cells) {
			continue
		}

		switch {
		case len(row.Cells) > len(headers):
			return nil, &ParseError{
				Kind:   ErrTooManyColumns,
				Line:   row.Line,
				Detail: fmt.Sprintf("expected %d, got %d", len(headers), len(row.Cells)),
			}
		case len(row.Cells) < len(headers):
			return nil, &ParseError{
				Kind:   ErrTooFewColumns,
				Line:   row.Line,
				Detail: fmt.Sprintf("expected %d, got %d", len(headers), len(row.Cells)),
			}
		}

		values := make(map[string]string, len(headers))
		for i, name := range headers {
			values[name] = strings.TrimSpace(row.Cells[i])
		}

		export.Records = append(export.Records, types.NewInputRecord(values))
		export.Lines = append(export.Lines, row.Line)
	}

	export.RowCount = len(export.Records)

	if export.RowCount == 0 {
		return nil, &ParseError{Kind: ErrEmptyFile}
	}

	if missing := missingHeaders(headers); len(missing) > 0 {
		quoted := make([]string, len(missing))
		for i, name := range missing {
			quoted[i] = fmt.Sprintf("%q", name)
		}
		return nil, &ParseError{
			Kind:    ErrMissingHeaders,
			Detail:  strings.Join(quoted, ", "),
			Missing: missing,
		}
	}

	return export, nil
}

// cleanHeaders trims header names. Empty names get a positional placeholder.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}

	return cleaned
}

// missingHeaders returns the required Wise columns absent from headers.
func missingHeaders(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, header := range headers {
		present[header] = true
	}

	var missing []string
	for _, required := range types.RequiredWiseHeaders {
		if !present[required] {
			missing = append(missing, required)
		}
	}

	return missing
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// DECODING
// =============================================================================

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw bytes from the named IANA encoding to UTF-8 and strips
// a leading byte-order-mark.
func Decode(data []byte, encoding string) ([]byte, error) {
	if isUTF8(encoding) {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return nil, &ParseError{Kind: ErrMalformedCSV, Detail: "input is not valid UTF-8"}
		}
		return data, nil
	}

	enc, err := ianaindex.IANA.Encoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to look up encoding %q: %w", encoding, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", encoding)
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, &ParseError{Kind: ErrMalformedCSV, Detail: "cannot decode " + encoding, Cause: err}
	}

	return bytes.TrimPrefix(decoded, utf8BOM), nil
}

func isUTF8(encoding string) bool {
	switch strings.ToUpper(strings.TrimSpace(encoding)) {
	case "", "UTF-8", "UTF8":
		return true
	}
	return false
}
