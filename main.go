// =============================================================================
// Wise to LexOffice Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Wise to LexOffice Converter CLI.
// It delegates command execution to the cmd package.
//
// USAGE:
//   wiselex convert <file>   - Convert a Wise export into a LexOffice import
//   wiselex check <file>     - Validate an export without writing anything
//   wiselex generate         - Write a random sample Wise export
//   wiselex version          - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : Cobra command definitions
//   - internal/      : Parsing, validation, mapping and output writing
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/wise-lexoffice-converter/cmd"
)

func main() {
	cmd.Execute()
}
