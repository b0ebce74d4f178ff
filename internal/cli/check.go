// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/littlefisher666/swagger-docgen/internal/openapi"
)

// Exit codes for check command
const (
	ExitCodeMatch      = 0 // Document matches the descriptors
	ExitCodeDifference = 1 // Document differs from the descriptors
	ExitCodeCheckError = 2 // Error during generation
)

var (
	checkStrict   bool
	checkIgnore   []string
	checkCI       bool
	checkFile     string
	checkOpenAPI3 bool
)

// osExit is swapped in tests.
var osExit = os.Exit

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if the written document matches the descriptors",
	Long: `Check validates that the written Swagger document matches what the
current descriptors would generate.

The document is regenerated in memory and compared with the existing
file. It's useful for CI pipelines to ensure the document is always in
sync with the controllers.

Exit codes:
  0  Document matches
  1  Document differs
  2  Error during generation

Example:
  docgen check                          # Compare against the configured output
  docgen check --file api/swagger.yaml  # Compare against a specific file
  docgen check --ci                     # CI mode with appropriate exit codes
  docgen check --ignore '/internal/*'   # Ignore matching paths and definitions
  docgen check --openapi3               # Also validate the OpenAPI 3 conversion`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", true, "fail on any difference")
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "patterns of paths and definitions to ignore in comparison")
	checkCmd.Flags().BoolVar(&checkCI, "ci", false, "CI mode: use exit codes for status")
	checkCmd.Flags().StringVar(&checkFile, "file", "", "document to compare (default: the first json or yaml output)")
	checkCmd.Flags().BoolVar(&checkOpenAPI3, "openapi3", false, "validate the generated document converted to OpenAPI 3")
}

// checkFailed exits with code in CI mode and returns err otherwise.
func checkFailed(code int, err error) error {
	if checkCI {
		osExit(code)
	}
	return err
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return checkFailed(ExitCodeCheckError, err)
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return checkFailed(ExitCodeCheckError, err)
	}

	specFile := checkFile
	if specFile == "" {
		specFile = primaryOutput(cfg)
	}

	printVerbose("Check configuration:")
	printVerbose("  Strict mode: %t", checkStrict)
	printVerbose("  CI mode: %t", checkCI)
	if len(checkIgnore) > 0 {
		printVerbose("  Ignored patterns: %s", strings.Join(checkIgnore, ", "))
	}
	printVerbose("  Paths: %s", strings.Join(cfg.Source.Paths, ", "))
	printVerbose("  Document: %s", specFile)

	// Check if the document exists
	if _, err := os.Stat(specFile); os.IsNotExist(err) {
		printError("Document not found: %s", specFile)
		printInfo("Run 'docgen generate' first to create the document")
		return checkFailed(ExitCodeDifference, fmt.Errorf("document not found: %s", specFile))
	}

	existing, err := openapi.ReadFile(specFile)
	if err != nil {
		return checkFailed(ExitCodeCheckError, fmt.Errorf("failed to read existing document: %w", err))
	}

	generated, err := buildDocument(commandContext(cmd), cfg, logger)
	if err != nil {
		return checkFailed(ExitCodeCheckError, fmt.Errorf("failed to generate document: %w", err))
	}

	if checkOpenAPI3 {
		v3, err := openapi.ToOpenAPI3(generated)
		if err != nil {
			return checkFailed(ExitCodeCheckError, err)
		}
		if err := v3.Validate(commandContext(cmd)); err != nil {
			return checkFailed(ExitCodeCheckError, fmt.Errorf("OpenAPI 3 conversion is invalid: %w", err))
		}
		printVerbose("OpenAPI 3 conversion is valid")
	}

	diffResult, err := openapi.NewDiffer().Diff(existing, generated)
	if err != nil {
		return checkFailed(ExitCodeCheckError, fmt.Errorf("failed to compare documents: %w", err))
	}

	diffResult = applyIgnorePatterns(diffResult, checkIgnore)

	// Report results
	if diffResult.IsEmpty() {
		printInfo("Document is in sync with descriptors")
		if checkCI {
			osExit(ExitCodeMatch)
		}
		return nil
	}

	printInfo("Document differs from descriptors:\n")
	printInfo(diffResult.Summary)
	printInfo("")

	if len(diffResult.PathChanges) > 0 {
		printInfo("Operation changes:")
		for _, change := range diffResult.PathChanges {
			printInfo("  %s %s %s", getChangeSymbol(change.Type), change.Method, change.Path)
		}
		printInfo("")
	}

	if len(diffResult.DefinitionChanges) > 0 {
		printInfo("Definition changes:")
		for _, change := range diffResult.DefinitionChanges {
			printInfo("  %s %s", getChangeSymbol(change.Type), change.Name)
		}
		printInfo("")
	}

	if len(diffResult.FieldChanges) > 0 {
		printInfo("Field changes:")
		for _, change := range diffResult.FieldChanges {
			printInfo("  ~ %s", change.Field)
		}
		printInfo("")
	}

	if diffResult.HasBreakingChanges {
		printError("Breaking changes detected!")
	}

	printInfo("Run 'docgen generate' to update the document")

	if checkStrict || checkCI {
		return checkFailed(ExitCodeDifference, fmt.Errorf("document differs from descriptors"))
	}

	return nil
}

// applyIgnorePatterns filters out changes that match ignore patterns.
// Field changes are never filtered.
func applyIgnorePatterns(result *openapi.DiffResult, patterns []string) *openapi.DiffResult {
	if len(patterns) == 0 {
		return result
	}

	filtered := &openapi.DiffResult{
		PathChanges:       make([]openapi.PathChange, 0),
		DefinitionChanges: make([]openapi.DefinitionChange, 0),
		FieldChanges:      result.FieldChanges,
	}

	for _, change := range result.PathChanges {
		if !matchesAnyPattern(change.Path, patterns) {
			filtered.PathChanges = append(filtered.PathChanges, change)
		}
	}

	for _, change := range result.DefinitionChanges {
		if !matchesAnyPattern(change.Name, patterns) {
			filtered.DefinitionChanges = append(filtered.DefinitionChanges, change)
		}
	}

	// Recalculate breaking changes
	for _, change := range filtered.PathChanges {
		if change.Type == openapi.DiffTypeRemoved {
			filtered.HasBreakingChanges = true
			break
		}
	}
	if !filtered.HasBreakingChanges {
		for _, change := range filtered.DefinitionChanges {
			if change.Type == openapi.DiffTypeRemoved {
				filtered.HasBreakingChanges = true
				break
			}
		}
	}

	filtered.Summary = generateFilteredSummary(filtered)

	return filtered
}

// matchesAnyPattern checks if a string matches any of the given patterns.
func matchesAnyPattern(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "*") {
			if strings.HasSuffix(s, pattern[1:]) {
				return true
			}
		} else if strings.HasSuffix(pattern, "*") {
			if strings.HasPrefix(s, pattern[:len(pattern)-1]) {
				return true
			}
		} else if strings.Contains(pattern, "*") {
			if matched, _ := filepath.Match(pattern, s); matched {
				return true
			}
		} else if s == pattern {
			return true
		}
	}
	return false
}

// generateFilteredSummary generates a summary for filtered results.
func generateFilteredSummary(result *openapi.DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected (after applying filters)"
	}

	pathCounts := map[openapi.DiffType]int{}
	for _, c := range result.PathChanges {
		pathCounts[c.Type]++
	}
	defCounts := map[openapi.DiffType]int{}
	for _, c := range result.DefinitionChanges {
		defCounts[c.Type]++
	}

	var parts []string
	for _, typ := range []openapi.DiffType{openapi.DiffTypeAdded, openapi.DiffTypeRemoved, openapi.DiffTypeModified} {
		if n := pathCounts[typ]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d operation(s) %s", n, typ))
		}
	}
	for _, typ := range []openapi.DiffType{openapi.DiffTypeAdded, openapi.DiffTypeRemoved, openapi.DiffTypeModified} {
		if n := defCounts[typ]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d definition(s) %s", n, typ))
		}
	}
	if n := len(result.FieldChanges); n > 0 {
		parts = append(parts, fmt.Sprintf("%d field(s) modified", n))
	}

	summary := strings.Join(parts, ", ")
	if result.HasBreakingChanges {
		summary += " [BREAKING CHANGES DETECTED]"
	}

	return summary
}

// getChangeSymbol returns a symbol for the change type.
func getChangeSymbol(t openapi.DiffType) string {
	switch t {
	case openapi.DiffTypeAdded:
		return "+"
	case openapi.DiffTypeRemoved:
		return "-"
	case openapi.DiffTypeModified:
		return "~"
	default:
		return " "
	}
}
