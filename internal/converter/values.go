// =============================================================================
// Wise to LexOffice Converter - Value Converters
// =============================================================================
//
// Locale conversion of single field values from the Wise export format to
// the format expected by the LexOffice bank import.
//
// FAIL-SOFT POLICY:
//   Both converters always return a usable string. The returned error is a
//   warning for the caller to log; it never means the row must be rejected.
//
// ROUNDING:
//   Amounts are rounded half away from zero (1234.565 -> 1234,57,
//   -0.125 -> -0,13). Parsing is decimal, so 2.675 stays 2.675 and rounds
//   up instead of drifting to 2.67.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidDate is returned when a date is not in dd-mm-yyyy form.
	ErrInvalidDate = errors.New("invalid date format")

	// ErrInvalidAmount is returned when an amount cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")
)

// zeroAmount is the rendering of an absent or unparsable amount.
const zeroAmount = "0,00"

// maxAmountDigits bounds the integer and fraction digits of a parsed amount.
const maxAmountDigits = 18

var wiseDatePattern = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)

// ConvertDate converts a Wise date (dd-mm-yyyy) to the German dd.mm.yyyy form.
//
// An empty value converts to an empty value. Any other value that does not
// match is returned unchanged together with ErrInvalidDate.
func ConvertDate(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	parts := wiseDatePattern.FindStringSubmatch(value)
	if parts == nil {
		return value, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}

	return parts[1] + "." + parts[2] + "." + parts[3], nil
}

// ConvertAmount renders a decimal amount with two fraction digits and a
// decimal comma. No thousands separator is used.
//
// Empty or unparsable values render as "0,00" together with ErrInvalidAmount.
func ConvertAmount(value string) (string, error) {
	amount, err := ParseAmount(value)
	if err != nil {
		return zeroAmount, err
	}

	return FormatAmount(amount), nil
}

// FormatAmount renders a decimal in the LexOffice amount format.
func FormatAmount(amount decimal.Decimal) string {
	// Amounts that round to zero are never signed.
	rounded := amount.Round(2)
	if rounded.IsZero() {
		return zeroAmount
	}

	return strings.Replace(rounded.StringFixed(2), ".", ",", 1)
}

// ParseAmount parses a Wise amount string.
func ParseAmount(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}

	// Exponent notation can encode values whose rounding costs far more
	// than the length of the cell.
	if amount.Exponent() < -maxAmountDigits || amount.NumDigits()+int(amount.Exponent()) > maxAmountDigits {
		return decimal.Zero, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, value)
	}

	return amount, nil
}
