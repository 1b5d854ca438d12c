// =============================================================================
// Wise to LexOffice Converter - Output Writer Module
// =============================================================================
//
// This module serializes converted rows for the LexOffice bank import.
//
// LEXOFFICE FORMAT:
//   Buchungstag;Valuta;Auftraggeber/Zahlungsempfänger;...;Zusatzinfo (optional)\r\n
//   29.09.2025;29.09.2025;Kontoinhaber;John Doe;Payment to John;-553,76;Wise ID: 1\r\n
//
//   - Semicolon delimiter, CR+LF line endings, UTF-8
//   - Fields containing ';', '"' or line breaks are quoted
//   - The byte-order-mark is added separately with WithBOM, so callers
//     that hand the text to another system can leave it out
//
// =============================================================================

package writer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/types"
)

// BOM is the UTF-8 byte-order-mark.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Options controls CSV serialization.
type Options struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune

	// UseCRLF ends lines with \r\n instead of \n.
	UseCRLF bool
}

// LexOfficeOptions are the settings of the LexOffice import format.
var LexOfficeOptions = Options{
	Delimiter: ';',
	UseCRLF:   true,
}

// WriteCSV writes a header row followed by rows.
//
// PARAMETERS:
//   - w: The destination.
//   - headers: The header row.
//   - rows: The data rows; each should have len(headers) fields.
//   - opts: Delimiter and line ending.
//
// RETURNS:
//   - An error if writing fails.
func WriteCSV(w io.Writer, headers []string, rows [][]string, opts Options) error {
	csvWriter := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		csvWriter.Comma = opts.Delimiter
	}
	csvWriter.UseCRLF = opts.UseCRLF

	if err := csvWriter.Write(headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

// EncodeLexOffice serializes records in the LexOffice import format without
// a byte-order-mark.
func EncodeLexOffice(records []types.OutputRecord) ([]byte, error) {
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = record.Values()
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, types.LexOfficeHeaders, rows, LexOfficeOptions); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WithBOM returns data prefixed with a UTF-8 byte-order-mark.
func WithBOM(data []byte) []byte {
	if bytes.HasPrefix(data, BOM) {
		return data
	}

	out := make([]byte, 0, len(BOM)+len(data))
	out = append(out, BOM...)
	return append(out, data...)
}
