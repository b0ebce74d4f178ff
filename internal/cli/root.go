// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for docgen.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/littlefisher666/swagger-docgen/internal/logging"
)

// Global flags
var (
	cfgFile   string
	outputDir string
	formats   []string
	logFormat string
	verbose   bool
	quiet     bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "docgen",
	Short: "Swagger 2.0 document generator for annotated REST controllers",
	Long: `docgen builds a Swagger 2.0 document from declaration descriptors of
annotated REST controllers and their models.

Descriptors are YAML or JSON files describing types, methods, parameters
and their annotations. Doc comments can be read from Java sources or YAML
doc files to fill in summaries and descriptions.

Example:
  docgen generate                      # Generate swagger.json from docgen.yaml
  docgen init --title "Petstore"       # Initialize a new config file
  docgen check --ci                    # Fail when swagger.json is stale
  docgen watch                         # Watch descriptors and regenerate`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: docgen.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory (default: .)")
	rootCmd.PersistentFlags().StringSliceVarP(&formats, "format", "f", nil, "output formats: json, yaml, openapi3 (default: json)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(printCmd)
}

// IsVerbose returns whether verbose output is enabled.
func IsVerbose() bool {
	return verbose
}

// IsQuiet returns whether quiet mode is enabled.
func IsQuiet() bool {
	return quiet
}

// logLevel maps the verbosity flags to a level name.
func logLevel() string {
	switch {
	case quiet:
		return "error"
	case verbose:
		return "debug"
	default:
		return "info"
	}
}

// newLogger builds the engine logger on w from the global flags.
func newLogger(w io.Writer) (logging.Logger, error) {
	logger, err := logging.New(w, logging.Options{Level: logLevel(), Format: logFormat})
	if err != nil {
		return nil, fmt.Errorf("invalid logging flags: %w", err)
	}
	return logger, nil
}

// printInfo prints a message if not in quiet mode.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

// printError prints an error message.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
