package xlsxparser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/csvparser"
	"github.com/ginjaninja78/wise-lexoffice-converter/internal/types"
)

// workbook builds an in-memory workbook with one row per slice.
func workbook(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

var header = []interface{}{"TransferWise ID", "Date", "Amount", "Transaction Type", "Payee Name"}

func TestParse(t *testing.T) {
	data := workbook(t,
		header,
		[]interface{}{"T-1", "29-09-2025", "-553.76", "DEBIT", "John Doe"},
		[]interface{}{"T-2", "30-09-2025", "1000.00", "CREDIT"},
	)

	export, err := Parse(data)
	require.NoError(t, err)

	require.Equal(t, 2, export.RowCount)
	assert.Equal(t, "John Doe", export.Records[0].PayeeName)
	assert.Equal(t, types.DirectionIn, export.Records[1].Direction)
	assert.Empty(t, export.Records[1].PayeeName)
	assert.Equal(t, []int{2, 3}, export.Lines)
}

func TestParse_TooManyColumns(t *testing.T) {
	data := workbook(t,
		[]interface{}{"TransferWise ID", "Date", "Amount"},
		[]interface{}{"T-1", "29-09-2025", "10", "EXTRA"},
	)

	_, err := Parse(data)
	assert.True(t, errors.Is(err, csvparser.ErrTooManyColumns), "got %v", err)
}

func TestParse_MissingHeaders(t *testing.T) {
	data := workbook(t,
		[]interface{}{"TransferWise ID", "Date", "Amount"},
		[]interface{}{"T-1", "29-09-2025", "10"},
	)

	_, err := Parse(data)
	assert.True(t, errors.Is(err, csvparser.ErrMissingHeaders), "got %v", err)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(workbook(t, header))
	assert.True(t, errors.Is(err, csvparser.ErrEmptyFile), "got %v", err)

	_, err = Parse(workbook(t))
	assert.True(t, errors.Is(err, csvparser.ErrEmptyFile), "got %v", err)
}

func TestParse_NotAWorkbook(t *testing.T) {
	_, err := Parse([]byte("TransferWise ID,Date\n"))
	assert.Error(t, err)
}

func TestParse_LegacyWorkbook(t *testing.T) {
	_, err := Parse([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00})
	assert.True(t, errors.Is(err, ErrLegacyWorkbook), "got %v", err)
}

func TestIsExcelFile(t *testing.T) {
	tests := []struct {
		data []byte
		want bool
	}{
		{data: workbook(t, header), want: true},
		{data: []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, want: true},
		{data: []byte("TransferWise ID,Date"), want: false},
		{data: []byte("PK"), want: false},
		{data: nil, want: false},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			assert.Equal(t, tt.want, IsExcelFile(tt.data))
		})
	}
}
