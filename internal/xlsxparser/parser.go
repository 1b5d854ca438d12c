// =============================================================================
// Wise to LexOffice Converter - XLSX Parser
// =============================================================================
//
// This module reads Wise statements that were opened and re-saved in a
// spreadsheet tool. The first sheet is used; its first row is the header.
//
// SHAPE RULES:
//   Spreadsheet tools drop trailing empty cells, so rows shorter than the
//   header are padded with empty values. Rows longer than the header are
//   rejected with the same error the CSV parser reports.
//
// Everything after row extraction (blank rows, header contract, required
// columns) is shared with the CSV parser through csvparser.BuildExport.
//
// =============================================================================

package xlsxparser

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/csvparser"
)

// ErrLegacyWorkbook is returned for OLE2 (.xls) workbooks, which excelize
// cannot read.
var ErrLegacyWorkbook = errors.New("legacy .xls workbooks are not supported, save the file as .xlsx or .csv")

// Parse reads the first sheet of an XLSX workbook as a Wise export.
//
// PARAMETERS:
//   - data: The complete workbook content.
//
// RETURNS:
//   - The parsed export.
//   - An error if the workbook cannot be opened, or a *csvparser.ParseError
//     if the sheet violates the export contract.
func Parse(data []byte) (*csvparser.Export, error) {
	if isOLE2(data) {
		return nil, ErrLegacyWorkbook
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}

	return buildExport(rows)
}

// buildExport pads short rows and hands the sheet to the shared contract.
func buildExport(rows [][]string) (*csvparser.Export, error) {
	headerIndex := 0
	for headerIndex < len(rows) && isRowEmpty(rows[headerIndex]) {
		headerIndex++
	}

	if headerIndex == len(rows) {
		return nil, &csvparser.ParseError{Kind: csvparser.ErrEmptyFile}
	}

	header := rows[headerIndex]
	data := make([]csvparser.Row, 0, len(rows)-headerIndex-1)

	for i := headerIndex + 1; i < len(rows); i++ {
		cells := rows[i]
		if len(cells) < len(header) {
			padded := make([]string, len(header))
			copy(padded, cells)
			cells = padded
		}

		data = append(data, csvparser.Row{Line: i + 1, Cells: cells})
	}

	return csvparser.BuildExport(header, data)
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// IsExcelFile checks magic bytes for xlsx (ZIP/PK header) or xls (OLE2).
func IsExcelFile(data []byte) bool {
	if len(data) < 4 {
		return false
	}

	// XLSX is a ZIP file (PK\x03\x04)
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return true
	}

	return isOLE2(data)
}

// isOLE2 reports the compound document header used by .xls files.
func isOLE2(data []byte) bool {
	return len(data) >= 8 && data[0] == 0xD0 && data[1] == 0xCF && data[2] == 0x11 && data[3] == 0xE0
}
