// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/littlefisher666/swagger-docgen/internal/openapi"
)

var (
	generateDryRun  bool
	generateInclude []string
	generateExclude []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Generate the Swagger document from declaration descriptors",
	Long: `Generate a Swagger 2.0 document from declaration descriptors.

The generate command scans the source paths for descriptor files, reads
doc comments when docs are enabled, assembles the document and writes it
once per configured output format.

Formats:
  json      <fileName>.json (default)
  yaml      <fileName>.yaml
  openapi3  <fileName>.openapi3.json, converted to OpenAPI 3

Example:
  docgen generate                             # Generate from docgen.yaml
  docgen generate ./descriptors               # Generate from specific paths
  docgen generate -f json,yaml -o build/docs  # Write JSON and YAML into build/docs
  docgen generate --dry-run                   # Preview without writing`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "print the document to stdout without writing files")
	generateCmd.Flags().StringSliceVarP(&generateInclude, "include", "i", nil, "glob patterns of descriptor files to include")
	generateCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "e", nil, "glob patterns of descriptor files to exclude")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if len(args) > 0 {
		cfg.Source.Paths = args
	}
	if len(generateInclude) > 0 {
		cfg.Source.Include = generateInclude
	}
	if len(generateExclude) > 0 {
		cfg.Source.Exclude = generateExclude
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	printVerbose("Configuration:")
	printVerbose("  Paths: %s", strings.Join(cfg.Source.Paths, ", "))
	printVerbose("  Docs: %t", cfg.Docs.Enabled)
	printVerbose("  Output: %s/%s", cfg.Output.Dir, cfg.Output.FileName)
	printVerbose("  Formats: %s", strings.Join(cfg.Output.Formats, ", "))

	doc, err := buildDocument(commandContext(cmd), cfg, logger)
	if err != nil {
		return err
	}

	if generateDryRun {
		printVerbose("Dry run mode - no files will be written")
		return openapi.NewWriter().Write(doc, dryRunFormat(cfg.Output.Formats), os.Stdout)
	}

	written, err := writeDocument(cfg, doc)
	if err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	for _, path := range written {
		printInfo("Wrote %s", path)
	}
	printVerbose("%d path(s), %d definition(s)", doc.Paths.Len(), doc.Definitions.Len())

	return nil
}

func dryRunFormat(formats []string) string {
	if len(formats) == 0 {
		return openapi.FormatJSON
	}
	return formats[0]
}
