package writer

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/types"
)

// PreviewSheet is the name of the single sheet in a preview workbook.
const PreviewSheet = "LexOffice"

// previewColumnWidth keeps the text columns readable when the file is opened.
const previewColumnWidth = 22

// EncodeXLSXPreview writes the converted rows into a one-sheet workbook with
// the LexOffice columns. All cells are text so that amounts keep their
// decimal comma.
func EncodeXLSXPreview(records []types.OutputRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PreviewSheet); err != nil {
		return nil, fmt.Errorf("failed to name preview sheet: %w", err)
	}

	if err := setRow(f, 1, types.LexOfficeHeaders); err != nil {
		return nil, err
	}

	for i, record := range records {
		if err := setRow(f, i+2, record.Values()); err != nil {
			return nil, err
		}
	}

	lastColumn, err := excelize.ColumnNumberToName(len(types.LexOfficeHeaders))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve preview columns: %w", err)
	}
	if err := f.SetColWidth(PreviewSheet, "A", lastColumn, previewColumnWidth); err != nil {
		return nil, fmt.Errorf("failed to size preview columns: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}

	return buf.Bytes(), nil
}

func setRow(f *excelize.File, rowNumber int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", rowNumber, err)
	}

	row := make([]interface{}, len(values))
	for i, value := range values {
		row[i] = value
	}

	if err := f.SetSheetRow(PreviewSheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNumber, err)
	}

	return nil
}
