// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/littlefisher666/swagger-docgen/internal/openapi"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

var (
	diffSummaryOnly bool
	diffExitCode    bool
)

var diffCmd = &cobra.Command{
	Use:   "diff [old] [new]",
	Short: "Compare two Swagger documents",
	Long: `Compare two Swagger documents and show the operation, definition and
top-level field differences.

If only one file is provided, it is compared against the document
generated from the current descriptors.

If no files are provided, the configured output is compared against
the document generated from the current descriptors.

Example:
  docgen diff                             # Compare output vs generated
  docgen diff swagger.json                # Compare file vs generated
  docgen diff old.json new.yaml           # Compare two files
  docgen diff --summary old.json new.json # Only print the summary line`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffSummaryOnly, "summary", false, "only print the summary line")
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "return an error when the documents differ")
}

func runDiff(cmd *cobra.Command, args []string) error {
	var oldDoc, newDoc *types.Document
	var err error

	switch len(args) {
	case 2:
		printVerbose("Comparing %s against %s...", args[0], args[1])
		if oldDoc, err = readDocument(args[0]); err != nil {
			return err
		}
		if newDoc, err = readDocument(args[1]); err != nil {
			return err
		}
	case 0, 1:
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := primaryOutput(cfg)
		if len(args) == 1 {
			path = args[0]
		}
		printVerbose("Comparing %s against generated...", path)
		if oldDoc, err = readDocument(path); err != nil {
			return err
		}
		logger, err := newLogger(os.Stderr)
		if err != nil {
			return err
		}
		if newDoc, err = buildDocument(commandContext(cmd), cfg, logger); err != nil {
			return err
		}
	default:
		return fmt.Errorf("too many arguments: expected at most 2 files")
	}

	result, err := openapi.NewDiffer().Diff(oldDoc, newDoc)
	if err != nil {
		return fmt.Errorf("failed to compare documents: %w", err)
	}

	out := cmd.OutOrStdout()
	if diffSummaryOnly {
		fmt.Fprintln(out, result.Summary)
	} else {
		fmt.Fprintln(out, openapi.FormatDiff(result))
	}

	if diffExitCode && !result.IsEmpty() {
		return fmt.Errorf("documents differ")
	}
	return nil
}

func readDocument(path string) (*types.Document, error) {
	doc, err := openapi.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	return doc, nil
}
