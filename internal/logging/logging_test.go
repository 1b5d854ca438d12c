package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger, err := SetupLogging("warn", "json", &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.WithField("row", 3).Warn("dropped")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["loglevel"])
	assert.Equal(t, "dropped", entry["msg"])
	assert.EqualValues(t, 3, entry["row"])
}

func TestSetupLogging_Text(t *testing.T) {
	var buf bytes.Buffer

	logger, err := SetupLogging("DEBUG", "text", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.Level)

	logger.Debug("parsed")
	assert.Contains(t, buf.String(), "parsed")
}

func TestSetupLogging_Errors(t *testing.T) {
	_, err := SetupLogging("loud", "text", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = SetupLogging("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}
