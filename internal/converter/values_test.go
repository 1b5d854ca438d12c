package converter

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "wise date", input: "29-09-2025", want: "29.09.2025"},
		{name: "first of year", input: "01-01-2024", want: "01.01.2024"},
		{name: "empty", input: "", want: ""},
		{name: "iso date", input: "2025-09-29", want: "2025-09-29", wantErr: true},
		{name: "single digit day", input: "1-09-2025", want: "1-09-2025", wantErr: true},
		{name: "trailing text", input: "29-09-2025 10:00", want: "29-09-2025 10:00", wantErr: true},
		{name: "garbage", input: "yesterday", want: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertDate(tt.input)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidDate))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConvertAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "1234.56", want: "1234,56"},
		{input: "-553.76", want: "-553,76"},
		{input: "100", want: "100,00"},
		{input: "99.9", want: "99,90"},
		{input: "10000.50", want: "10000,50"},
		{input: "1000000.99", want: "1000000,99"},
		{input: " 42.1 ", want: "42,10"},
		{input: "0", want: "0,00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ConvertAmount(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Ties round half away from zero.
func TestConvertAmount_Rounding(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "1234.567", want: "1234,57"},
		{input: "1234.565", want: "1234,57"},
		{input: "0.125", want: "0,13"},
		{input: "-0.125", want: "-0,13"},
		{input: "2.675", want: "2,68"},
		{input: "1.005", want: "1,01"},
		{input: "1.004", want: "1,00"},
		{input: "-0.001", want: "0,00"},
		{input: "-0.005", want: "-0,01"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ConvertAmount(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertAmount_Invalid(t *testing.T) {
	for _, input := range []string{
		"", "   ", "invalid", "abc", "12,50", "1.2.3",
		"1e20000000", "-1e20000000", "1e-20000000", "1e19", "0.0000000000000000001",
	} {
		t.Run(input, func(t *testing.T) {
			got, err := ConvertAmount(input)
			assert.Equal(t, "0,00", got)
			assert.True(t, errors.Is(err, ErrInvalidAmount))
		})
	}
}

func TestConvertAmount_ExponentNotation(t *testing.T) {
	got, err := ConvertAmount("1.5e3")
	require.NoError(t, err)
	assert.Equal(t, "1500,00", got)

	got, err = ConvertAmount("999999999999999999")
	require.NoError(t, err)
	assert.Equal(t, "999999999999999999,00", got)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "350,00", FormatAmount(decimal.NewFromInt(350)))
	assert.Equal(t, "-0,50", FormatAmount(decimal.RequireFromString("-0.5")))
	assert.Equal(t, "0,00", FormatAmount(decimal.Zero))
}
