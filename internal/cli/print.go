// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/littlefisher666/swagger-docgen/internal/openapi"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print the Swagger document to stdout",
	Long: `Print the Swagger document to standard output.

If a file is provided, it is read and printed in the requested format.
Otherwise the document is generated from the current descriptors.

This is useful for piping the output to other tools or for quick inspection.

Example:
  docgen print                      # Generate and print as JSON
  docgen print swagger.json -f yaml # Convert an existing file to YAML
  docgen print -f openapi3          # Print the OpenAPI 3 conversion
  docgen print | jq '.paths'        # Pipe to jq for processing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
	outputFormat := openapi.FormatJSON
	if len(formats) > 0 {
		outputFormat = formats[0]
	}

	printVerbose("Print configuration:")
	printVerbose("  Format: %s", outputFormat)

	var doc *types.Document
	if len(args) > 0 {
		var err error
		if doc, err = readDocument(args[0]); err != nil {
			return err
		}
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger(os.Stderr)
		if err != nil {
			return err
		}
		if doc, err = buildDocument(commandContext(cmd), cfg, logger); err != nil {
			return err
		}
	}

	return openapi.NewWriter().Write(doc, outputFormat, cmd.OutOrStdout())
}
