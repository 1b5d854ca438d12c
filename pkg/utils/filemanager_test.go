package utils

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutputFileName(t *testing.T) {
	at := time.Date(2025, time.September, 29, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "lexoffice_import_2025-09-29.csv", GenerateOutputFileName("lexoffice_import_", at))

	at = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "export_2026-01-05.csv", GenerateOutputFileName("export_", at))
}

func TestPreviewFileName(t *testing.T) {
	assert.Equal(t, "out/lexoffice_import_2025-09-29.xlsx", PreviewFileName("out/lexoffice_import_2025-09-29.csv"))
	assert.Equal(t, "noext.xlsx", PreviewFileName("noext"))
}

func TestReadInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0644))

	data, err := ReadInputFile(path, 10)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))

	_, err = ReadInputFile(path, 9)
	assert.True(t, errors.Is(err, ErrFileTooLarge))

	data, err = ReadInputFile(path, 0)
	require.NoError(t, err)
	assert.Len(t, data, 10)

	_, err = ReadInputFile(filepath.Join(t.TempDir(), "absent.csv"), 10)
	assert.Error(t, err)
}

func TestWriteOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.csv")

	require.NoError(t, WriteOutputFile(path, []byte("a;b\r\n")))
	assert.True(t, FileExists(path))

	size, err := GetFileSize(path)
	require.NoError(t, err)
	assert.EqualValues(t, 5, size)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer

	err := WriteSummary(&buf, ConversionSummary{
		RunID:       "run-1",
		OutputFile:  "output/lexoffice_import_2025-09-29.csv",
		Total:       3,
		Converted:   2,
		Dropped:     1,
		Debit:       2,
		Credit:      1,
		TotalAmount: "350,00",
		Currency:    "EUR",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Run ID:         run-1")
	assert.Contains(t, out, "Output:         output/lexoffice_import_2025-09-29.csv")
	assert.Contains(t, out, "Dropped:        1")
	assert.Contains(t, out, "Total Amount:   350,00 EUR")
	assert.NotContains(t, out, "Preview:")
	assert.NotContains(t, out, "Duration:")
}
