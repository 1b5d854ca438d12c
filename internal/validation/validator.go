// =============================================================================
// Wise to LexOffice Converter - Validation Engine
// =============================================================================
//
// This module checks whether a Wise record carries the minimum fields needed
// to build a LexOffice row.
//
// RULES (evaluated independently, never short-circuited):
//   - missing_date:       the Date column is empty
//   - missing_amount:     the Amount column is empty
//   - missing_direction:  the Transaction Type column is empty
//   - invalid_direction:  the Transaction Type is neither DEBIT nor CREDIT
//
// An empty Transaction Type violates both direction rules.
//
// ERROR HANDLING:
//   - Errors are collected, not returned one at a time
//   - Each error carries the field, offending value and data row number
//   - A record with any error is not convertible; the caller decides
//     whether that drops the row or fails the run
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// Rule names.
const (
	RuleMissingDate      = "missing_date"
	RuleMissingAmount    = "missing_amount"
	RuleMissingDirection = "missing_direction"
	RuleInvalidDirection = "invalid_direction"
)

// SeverityError marks a violation that makes a record unconvertible.
const SeverityError = "error"

// ValidationError represents a single validation error.
type ValidationError struct {
	// Severity indicates the severity of the error.
	// All record rules currently report "error".
	Severity string

	// Field is the Wise column that failed validation.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Rule is the validation rule that was violated.
	Rule string

	// Message is a human-readable error message.
	Message string

	// TransactionID is the TransferWise ID of the record, if any.
	TransactionID string

	// RowNumber is the 1-based data row (header excluded). Zero when the
	// record was validated on its own.
	RowNumber int

	// Line is the source line of the record in the export, when known.
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	location := "record"
	if e.RowNumber > 0 {
		location = fmt.Sprintf("row %d", e.RowNumber)
	}
	if e.Line > 0 {
		location += fmt.Sprintf(", line %d", e.Line)
	}
	if e.TransactionID != "" {
		location += fmt.Sprintf(" (%s)", e.TransactionID)
	}

	return fmt.Sprintf("[%s] %s, field '%s': %s",
		strings.ToUpper(e.Severity),
		location,
		e.Field,
		e.Message,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validating a batch.
type ValidationResult struct {
	// IsValid is true if no record had an error.
	IsValid bool

	// Errors contains all validation errors in row order.
	Errors []*ValidationError

	// RecordsValidated is the number of records checked.
	RecordsValidated int

	// InvalidRecords is the number of records with at least one error.
	InvalidRecords int
}

// ValidRecords is the number of records that passed every rule.
func (r *ValidationResult) ValidRecords() int {
	return r.RecordsValidated - r.InvalidRecords
}

// =============================================================================
// MAIN VALIDATION FUNCTIONS
// =============================================================================

// ValidateRecord checks a single record. An empty result means the record
// is convertible.
func ValidateRecord(record types.InputRecord) []*ValidationError {
	var errors []*ValidationError

	add := func(field, value, rule, message string) {
		errors = append(errors, &ValidationError{
			Severity:      SeverityError,
			Field:         field,
			Value:         value,
			Rule:          rule,
			Message:       message,
			TransactionID: record.ID,
		})
	}

	if record.Date == "" {
		add(types.ColDate, record.Date, RuleMissingDate, "Missing Date")
	}

	if record.Amount == "" {
		add(types.ColAmount, record.Amount, RuleMissingAmount, "Missing Amount")
	}

	if record.Direction == "" {
		add(types.ColDirection, "", RuleMissingDirection, "Missing Transaction Type")
	}

	if !record.Direction.Valid() {
		add(types.ColDirection, string(record.Direction), RuleInvalidDirection,
			"Invalid Transaction Type: "+string(record.Direction))
	}

	return errors
}

// ValidateAll validates every record and numbers the errors by data row.
func ValidateAll(records []types.InputRecord) *ValidationResult {
	result := &ValidationResult{
		IsValid:          true,
		Errors:           make([]*ValidationError, 0),
		RecordsValidated: len(records),
	}

	for i, record := range records {
		recordErrors := ValidateRecord(record)
		if len(recordErrors) == 0 {
			continue
		}

		result.IsValid = false
		result.InvalidRecords++

		for _, err := range recordErrors {
			err.RowNumber = i + 1
			result.Errors = append(result.Errors, err)
		}
	}

	return result
}

// Messages returns the plain messages of a list of errors.
func Messages(errors []*ValidationError) []string {
	messages := make([]string, len(errors))
	for i, err := range errors {
		messages[i] = err.Message
	}
	return messages
}

// FormatErrors formats validation errors for display or logging.
//
// PARAMETERS:
//   - errors: The validation errors to format.
//
// RETURNS:
//   - A formatted string containing all errors.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
