package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultFilePrefix, cfg.FilePrefix)
	assert.Equal(t, DefaultAccountHolder, cfg.AccountHolder)
	assert.Equal(t, DefaultCurrency, cfg.DefaultCurrency)
	assert.EqualValues(t, DefaultMaxFileSize, cfg.MaxFileSize)
	assert.True(t, cfg.BOMEnabled())
	assert.False(t, cfg.XLSXPreview)
}

func TestLoadMainConfig(t *testing.T) {
	path := writeConfig(t, `
output_dir: /tmp/exports
account_holder: Muster GmbH
default_currency: usd
write_bom: false
xlsx_preview: true
log_format: json
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/exports", cfg.OutputDir)
	assert.Equal(t, "Muster GmbH", cfg.AccountHolder)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.False(t, cfg.BOMEnabled())
	assert.True(t, cfg.XLSXPreview)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, DefaultFilePrefix, cfg.FilePrefix)
}

func TestLoadMainConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad yaml", body: "output_dir: [unterminated"},
		{name: "bad log level", body: "log_level: chatty"},
		{name: "bad log format", body: "log_format: xml"},
		{name: "bad currency", body: "default_currency: EURO"},
		{name: "negative size", body: "max_file_size: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMainConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMainConfigOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadMainConfigOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)

	cfg, err = LoadMainConfigOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadMainConfig_EnvOverride(t *testing.T) {
	t.Setenv("WISELEX_OUTPUT_DIR", "/srv/out")
	t.Setenv("WISELEX_XLSX_PREVIEW", "true")

	cfg, err := LoadMainConfig(writeConfig(t, "output_dir: ./from-file"))
	require.NoError(t, err)

	assert.Equal(t, "/srv/out", cfg.OutputDir)
	assert.True(t, cfg.XLSXPreview)
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		"WISELEX_ACCOUNT_HOLDER": "Erika Mustermann",
		"WISELEX_MAX_FILE_SIZE":  "1024",
		"WISELEX_WRITE_BOM":      "false",
	}
	getenv := func(key string) string { return env[key] }

	cfg := Default()
	require.NoError(t, applyEnvOverrides(cfg, getenv))

	assert.Equal(t, "Erika Mustermann", cfg.AccountHolder)
	assert.EqualValues(t, 1024, cfg.MaxFileSize)
	assert.False(t, cfg.BOMEnabled())
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
}

func TestApplyEnvOverrides_BadValues(t *testing.T) {
	for _, key := range []string{"WISELEX_MAX_FILE_SIZE", "WISELEX_WRITE_BOM", "WISELEX_XLSX_PREVIEW"} {
		t.Run(key, func(t *testing.T) {
			getenv := func(k string) string {
				if k == key {
					return "not-a-value"
				}
				return ""
			}
			assert.Error(t, applyEnvOverrides(Default(), getenv))
		})
	}
}
