package csvparser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/types"
)

const minimalHeader = "TransferWise ID,Date,Amount,Transaction Type\n"

func parseString(t *testing.T, input string) (*Export, error) {
	t.Helper()
	return Parse([]byte(input), Options{})
}

func requireParseError(t *testing.T, err error, kind error) *ParseError {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	return parseErr
}

func TestParse_StripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBF" + minimalHeader + "T-1,29-09-2025,-10.00,DEBIT\n"

	export, err := parseString(t, input)
	require.NoError(t, err)

	assert.Equal(t, types.ColID, export.Headers[0])
	require.Len(t, export.Records, 1)
	assert.Equal(t, "T-1", export.Records[0].ID)
}

func TestParse_TrimsHeaders(t *testing.T) {
	input := " TransferWise ID , Date ,Amount, Currency ,Transaction Type,Description\n" +
		"T-1,29-09-2025,-10.00,EUR,DEBIT,Coffee\n"

	export, err := parseString(t, input)
	require.NoError(t, err)

	assert.Equal(t, 6, export.ColumnCount)
	assert.Equal(t, []string{"TransferWise ID", "Date", "Amount", "Currency", "Transaction Type", "Description"}, export.Headers)

	record := export.Records[0]
	assert.Equal(t, "29-09-2025", record.Date)
	assert.Equal(t, "EUR", record.Currency)
	assert.Equal(t, types.DirectionOut, record.Direction)
	assert.Equal(t, "Coffee", record.Description)
	assert.Empty(t, record.PayeeName)
}

func TestParse_TooManyColumns(t *testing.T) {
	input := "TransferWise ID,Date,Amount\nT-1,29-09-2025,10,EXTRA\n"

	_, err := parseString(t, input)
	parseErr := requireParseError(t, err, ErrTooManyColumns)
	assert.Equal(t, 2, parseErr.Line)
	assert.Equal(t, "too many columns on line 2: expected 3, got 4", err.Error())
}

func TestParse_TooFewColumns(t *testing.T) {
	input := minimalHeader + "T-1,29-09-2025\n"

	_, err := parseString(t, input)
	parseErr := requireParseError(t, err, ErrTooFewColumns)
	assert.Equal(t, 2, parseErr.Line)
	assert.False(t, errors.Is(err, ErrTooManyColumns))
}

func TestParse_MissingRequiredHeaders(t *testing.T) {
	input := "TransferWise ID,Date,Amount\nT-1,29-09-2025,10\n"

	_, err := parseString(t, input)
	parseErr := requireParseError(t, err, ErrMissingHeaders)
	assert.Equal(t, []string{"Transaction Type"}, parseErr.Missing)
	assert.Contains(t, err.Error(), `"Transaction Type"`)
}

func TestParse_MissingSeveralHeaders(t *testing.T) {
	input := "Description,Currency\nCoffee,EUR\n"

	_, err := parseString(t, input)
	parseErr := requireParseError(t, err, ErrMissingHeaders)
	assert.Equal(t, types.RequiredWiseHeaders, parseErr.Missing)
}

func TestParse_EmptyFile(t *testing.T) {
	for name, input := range map[string]string{
		"no content":  "",
		"bom only":    "\xEF\xBB\xBF",
		"header only": minimalHeader,
		"blank rows":  minimalHeader + "\n,,,\n   \n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseString(t, input)
			requireParseError(t, err, ErrEmptyFile)
		})
	}
}

func TestParse_EmptyBeatsMissingHeaders(t *testing.T) {
	_, err := parseString(t, "Description\n")
	requireParseError(t, err, ErrEmptyFile)
}

func TestParse_ShapeBeatsMissingHeaders(t *testing.T) {
	_, err := parseString(t, "Description\nCoffee,extra\n")
	requireParseError(t, err, ErrTooManyColumns)
}

func TestParse_QuotedDelimiter(t *testing.T) {
	input := "TransferWise ID,Date,Amount,Transaction Type,Description\n" +
		`T-1,29-09-2025,-10.00,DEBIT,"Payment, with ""quotes"""` + "\n"

	export, err := parseString(t, input)
	require.NoError(t, err)
	assert.Equal(t, `Payment, with "quotes"`, export.Records[0].Description)
}

func TestParse_SkipsEmptyLines(t *testing.T) {
	input := minimalHeader +
		"\n" +
		"T-1,29-09-2025,-10.00,DEBIT\n" +
		"   \n" +
		"\n" +
		"T-2,30-09-2025,25.00,CREDIT\n"

	export, err := parseString(t, input)
	require.NoError(t, err)

	require.Equal(t, 2, export.RowCount)
	assert.Equal(t, "T-1", export.Records[0].ID)
	assert.Equal(t, "T-2", export.Records[1].ID)
	assert.Equal(t, []int{3, 6}, export.Lines)
}

func TestParse_CRLF(t *testing.T) {
	input := "TransferWise ID,Date,Amount,Transaction Type\r\nT-1,29-09-2025,-10.00,DEBIT\r\n"

	export, err := parseString(t, input)
	require.NoError(t, err)
	assert.Equal(t, types.DirectionOut, export.Records[0].Direction)
}

func TestParse_Malformed(t *testing.T) {
	input := minimalHeader + "T-1,29-09-2025,ab\"c,DEBIT\n"

	_, err := parseString(t, input)
	parseErr := requireParseError(t, err, ErrMalformedCSV)
	assert.Equal(t, 2, parseErr.Line)
}

func TestParse_InvalidUTF8(t *testing.T) {
	input := minimalHeader + "T-1,29-09-2025,-1,DEBIT\xff\n"

	_, err := parseString(t, input)
	requireParseError(t, err, ErrMalformedCSV)
}

func TestParse_Latin1(t *testing.T) {
	input := []byte("TransferWise ID,Date,Amount,Transaction Type,Payee Name\nT-1,29-09-2025,-1,DEBIT,M\xfcller\n")

	export, err := Parse(input, Options{Encoding: "ISO-8859-1"})
	require.NoError(t, err)
	assert.Equal(t, "Müller", export.Records[0].PayeeName)
}

func TestParse_UnknownEncoding(t *testing.T) {
	_, err := Parse([]byte(minimalHeader), Options{Encoding: "no-such-charset"})
	assert.Error(t, err)
}

func TestBuildExport_TrimsValues(t *testing.T) {
	export, err := BuildExport(
		[]string{"TransferWise ID", "Date", "Amount", "Transaction Type"},
		[]Row{{Line: 2, Cells: []string{" T-1 ", "29-09-2025", " 5 ", " DEBIT "}}},
	)
	require.NoError(t, err)
	assert.Equal(t, "T-1", export.Records[0].ID)
	assert.Equal(t, "5", export.Records[0].Amount)
	assert.Equal(t, types.DirectionOut, export.Records[0].Direction)
}
