package converter

import "strings"

// formulaTriggers are the leading characters a spreadsheet may evaluate as
// the start of a formula.
const formulaTriggers = "=+-@\t\r"

// Sanitize trims a free-text value and defuses spreadsheet formula
// injection by prefixing a single quote when the value starts with a
// formula trigger.
func Sanitize(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	if strings.IndexByte(formulaTriggers, trimmed[0]) >= 0 {
		return "'" + trimmed
	}

	return trimmed
}
