package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// SetupLogging builds the application logger.
// format is "text" or "json"; level is any logrus level name.
func SetupLogging(level, format string, out io.Writer) (*logrus.Logger, error) {
	parsedLevel, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	var formatter logrus.Formatter
	switch strings.ToLower(format) {
	case "json":
		formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		}
	case "text", "":
		formatter = &logrus.TextFormatter{
			DisableTimestamp: true,
		}
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	logger := &logrus.Logger{
		Formatter: formatter,
		Out:       out,
		Hooks:     make(logrus.LevelHooks),
		Level:     parsedLevel,
	}

	return logger, nil
}
