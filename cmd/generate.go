// =============================================================================
// Wise to LexOffice Converter - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which writes a random sample
// Wise export for trying out the converter.
//
// COMMAND USAGE:
//   wiselex generate [-n 25] [-o wise-export-generated.csv] [--seed 42]
//
// Use "-o -" to write the export to stdout.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/generator"
	"github.com/ginjaninja78/wise-lexoffice-converter/pkg/utils"
)

var (
	generateCount  int
	generateOutput string
	generateSeed   int64
)

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a sample Wise export",
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&generateCount, "count", "n", generator.DefaultCount, "Number of transactions")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", generator.DefaultOutputFile, "Output file path, - for stdout")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Random seed (default: current time)")
}

func runGenerate(cmd *cobra.Command) error {
	_, logger, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	if generateCount < 0 {
		return fmt.Errorf("count must not be negative, got %d", generateCount)
	}

	seed := generateSeed
	if !cmd.Flags().Changed("seed") {
		seed = time.Now().UnixNano()
	}

	records := generator.New(seed).Generate(generateCount)

	data, err := generator.Encode(records)
	if err != nil {
		return err
	}

	if generateOutput == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := utils.WriteOutputFile(generateOutput, data); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"count":  len(records),
		"seed":   seed,
		"output": generateOutput,
	}).Info("Generated sample export")

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d transactions to %s\n", len(records), generateOutput)

	return nil
}
