// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// DiffType represents the type of change detected.
type DiffType string

const (
	// DiffTypeAdded indicates a new item was added.
	DiffTypeAdded DiffType = "added"

	// DiffTypeRemoved indicates an item was removed.
	DiffTypeRemoved DiffType = "removed"

	// DiffTypeModified indicates an item was modified.
	DiffTypeModified DiffType = "modified"
)

// PathChange represents a change to a path/operation.
type PathChange struct {
	Type        DiffType
	Path        string
	Method      string
	Description string
}

// DefinitionChange represents a change to a model definition.
type DefinitionChange struct {
	Type        DiffType
	Name        string
	Description string
}

// FieldChange represents a change to a top-level document field such as
// info, host or tags.
type FieldChange struct {
	Field       string
	Description string
}

// DiffResult contains the differences between two documents.
type DiffResult struct {
	// PathChanges contains all path/operation changes.
	PathChanges []PathChange

	// DefinitionChanges contains all model definition changes.
	DefinitionChanges []DefinitionChange

	// FieldChanges contains top-level field changes.
	FieldChanges []FieldChange

	// HasBreakingChanges indicates if any breaking changes were detected.
	HasBreakingChanges bool

	// Summary provides a human-readable summary of changes.
	Summary string
}

// IsEmpty returns true if there are no differences.
func (d *DiffResult) IsEmpty() bool {
	return len(d.PathChanges) == 0 && len(d.DefinitionChanges) == 0 && len(d.FieldChanges) == 0
}

// Differ compares two documents.
type Differ struct{}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// Diff compares two documents and returns the differences. Either
// document may be nil.
func (d *Differ) Diff(a, b *types.Document) (*DiffResult, error) {
	result := &DiffResult{
		PathChanges:       []PathChange{},
		DefinitionChanges: []DefinitionChange{},
		FieldChanges:      []FieldChange{},
	}

	if a == nil {
		a = types.NewDocument()
	}
	if b == nil {
		b = types.NewDocument()
	}

	if err := d.diffPaths(a, b, result); err != nil {
		return nil, err
	}
	if err := d.diffDefinitions(a, b, result); err != nil {
		return nil, err
	}
	if err := d.diffFields(a, b, result); err != nil {
		return nil, err
	}

	result.HasBreakingChanges = d.detectBreakingChanges(result)
	result.Summary = d.generateSummary(result)

	return result, nil
}

// diffPaths compares the paths between two documents.
func (d *Differ) diffPaths(a, b *types.Document, result *DiffResult) error {
	var err error
	a.Paths.Range(func(path string, aItem *types.Path) bool {
		bItem, exists := b.Paths.Get(path)
		if !exists {
			for _, method := range pathMethods(aItem) {
				result.PathChanges = append(result.PathChanges, pathChange(DiffTypeRemoved, path, method))
			}
			return true
		}
		err = d.diffPath(path, aItem, bItem, result)
		return err == nil
	})
	if err != nil {
		return err
	}

	b.Paths.Range(func(path string, bItem *types.Path) bool {
		if a.Paths.Has(path) {
			return true
		}
		for _, method := range pathMethods(bItem) {
			result.PathChanges = append(result.PathChanges, pathChange(DiffTypeAdded, path, method))
		}
		return true
	})
	return nil
}

// diffPath compares operations within a path.
func (d *Differ) diffPath(path string, a, b *types.Path, result *DiffResult) error {
	for _, verb := range types.Verbs {
		aOp, bOp := operationOf(a, verb), operationOf(b, verb)
		method := strings.ToUpper(verb)
		switch {
		case aOp == nil && bOp != nil:
			result.PathChanges = append(result.PathChanges, pathChange(DiffTypeAdded, path, method))
		case aOp != nil && bOp == nil:
			result.PathChanges = append(result.PathChanges, pathChange(DiffTypeRemoved, path, method))
		case aOp != nil && bOp != nil:
			changed, err := modified(aOp, bOp)
			if err != nil {
				return fmt.Errorf("failed to compare %s %s: %w", method, path, err)
			}
			if changed {
				result.PathChanges = append(result.PathChanges, pathChange(DiffTypeModified, path, method))
			}
		}
	}
	return nil
}

func pathChange(typ DiffType, path, method string) PathChange {
	verb := map[DiffType]string{
		DiffTypeAdded:    "Added",
		DiffTypeRemoved:  "Removed",
		DiffTypeModified: "Modified",
	}[typ]
	return PathChange{
		Type:        typ,
		Path:        path,
		Method:      method,
		Description: fmt.Sprintf("%s %s %s", verb, method, path),
	}
}

func operationOf(p *types.Path, verb string) *types.Operation {
	if p == nil {
		return nil
	}
	return p.Operation(verb)
}

// pathMethods returns the upper-case HTTP methods defined on a path.
func pathMethods(p *types.Path) []string {
	var methods []string
	for _, verb := range types.Verbs {
		if operationOf(p, verb) != nil {
			methods = append(methods, strings.ToUpper(verb))
		}
	}
	return methods
}

// diffDefinitions compares the model definitions between two documents.
func (d *Differ) diffDefinitions(a, b *types.Document, result *DiffResult) error {
	var err error
	a.Definitions.Range(func(name string, aModel *types.Model) bool {
		bModel, exists := b.Definitions.Get(name)
		if !exists {
			result.DefinitionChanges = append(result.DefinitionChanges, DefinitionChange{
				Type:        DiffTypeRemoved,
				Name:        name,
				Description: fmt.Sprintf("Removed definition: %s", name),
			})
			return true
		}
		var changed bool
		if changed, err = modified(aModel, bModel); err != nil {
			err = fmt.Errorf("failed to compare definition %s: %w", name, err)
			return false
		}
		if changed {
			result.DefinitionChanges = append(result.DefinitionChanges, DefinitionChange{
				Type:        DiffTypeModified,
				Name:        name,
				Description: fmt.Sprintf("Modified definition: %s", name),
			})
		}
		return true
	})
	if err != nil {
		return err
	}

	b.Definitions.Range(func(name string, _ *types.Model) bool {
		if !a.Definitions.Has(name) {
			result.DefinitionChanges = append(result.DefinitionChanges, DefinitionChange{
				Type:        DiffTypeAdded,
				Name:        name,
				Description: fmt.Sprintf("Added definition: %s", name),
			})
		}
		return true
	})
	return nil
}

// diffFields compares the top-level fields other than paths and definitions.
func (d *Differ) diffFields(a, b *types.Document, result *DiffResult) error {
	fields := []struct {
		name string
		a, b any
	}{
		{"swagger", a.Swagger, b.Swagger},
		{"info", a.Info, b.Info},
		{"host", a.Host, b.Host},
		{"basePath", a.BasePath, b.BasePath},
		{"schemes", a.Schemes, b.Schemes},
		{"tags", a.Tags, b.Tags},
		{"securityDefinitions", a.SecurityDefinitions, b.SecurityDefinitions},
		{"externalDocs", a.ExternalDocs, b.ExternalDocs},
	}
	for _, f := range fields {
		changed, err := modified(f.a, f.b)
		if err != nil {
			return fmt.Errorf("failed to compare %s: %w", f.name, err)
		}
		if changed {
			result.FieldChanges = append(result.FieldChanges, FieldChange{
				Field:       f.name,
				Description: fmt.Sprintf("Modified %s", f.name),
			})
		}
	}
	return nil
}

// modified reports whether a and b serialize differently. Comparing the
// JSON encoding keeps map order and vendor extensions in the comparison.
func modified(a, b any) (bool, error) {
	aj, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return false, err
	}
	return !bytes.Equal(normalizeJSON(aj), normalizeJSON(bj)), nil
}

// normalizeJSON maps the encodings of empty values to one form so that
// a nil slice and an empty slice compare equal.
func normalizeJSON(b []byte) []byte {
	switch string(b) {
	case "null", "[]", "{}", `""`:
		return nil
	}
	return b
}

// detectBreakingChanges checks if any changes are breaking.
func (d *Differ) detectBreakingChanges(result *DiffResult) bool {
	// Removed operations are breaking
	for _, change := range result.PathChanges {
		if change.Type == DiffTypeRemoved {
			return true
		}
	}

	// Removed definitions are breaking
	for _, change := range result.DefinitionChanges {
		if change.Type == DiffTypeRemoved {
			return true
		}
	}

	return false
}

// generateSummary creates a human-readable summary of changes.
func (d *Differ) generateSummary(result *DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected"
	}

	var sb strings.Builder

	pathCounts := map[DiffType]int{}
	for _, c := range result.PathChanges {
		pathCounts[c.Type]++
	}
	defCounts := map[DiffType]int{}
	for _, c := range result.DefinitionChanges {
		defCounts[c.Type]++
	}

	var parts []string
	for _, typ := range []DiffType{DiffTypeAdded, DiffTypeRemoved, DiffTypeModified} {
		if n := pathCounts[typ]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d operation(s) %s", n, typ))
		}
	}
	for _, typ := range []DiffType{DiffTypeAdded, DiffTypeRemoved, DiffTypeModified} {
		if n := defCounts[typ]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d definition(s) %s", n, typ))
		}
	}
	if n := len(result.FieldChanges); n > 0 {
		parts = append(parts, fmt.Sprintf("%d field(s) modified", n))
	}

	sb.WriteString(strings.Join(parts, ", "))

	if result.HasBreakingChanges {
		sb.WriteString(" [BREAKING CHANGES DETECTED]")
	}

	return sb.String()
}

// FormatDiff returns a formatted string representation of the diff.
func FormatDiff(result *DiffResult) string {
	if result.IsEmpty() {
		return "No differences found."
	}

	var sb strings.Builder

	sb.WriteString("=== Swagger Diff ===\n\n")
	sb.WriteString(result.Summary)
	sb.WriteString("\n\n")

	if len(result.PathChanges) > 0 {
		sb.WriteString("--- Path Changes ---\n")

		// Sort changes for deterministic output
		changes := make([]PathChange, len(result.PathChanges))
		copy(changes, result.PathChanges)
		sort.Slice(changes, func(i, j int) bool {
			if changes[i].Path != changes[j].Path {
				return changes[i].Path < changes[j].Path
			}
			return changes[i].Method < changes[j].Method
		})

		for _, c := range changes {
			sb.WriteString(fmt.Sprintf("%s%s %s\n", symbol(c.Type), c.Method, c.Path))
		}
		sb.WriteString("\n")
	}

	if len(result.DefinitionChanges) > 0 {
		sb.WriteString("--- Definition Changes ---\n")

		changes := make([]DefinitionChange, len(result.DefinitionChanges))
		copy(changes, result.DefinitionChanges)
		sort.Slice(changes, func(i, j int) bool {
			return changes[i].Name < changes[j].Name
		})

		for _, c := range changes {
			sb.WriteString(fmt.Sprintf("%s%s\n", symbol(c.Type), c.Name))
		}
		sb.WriteString("\n")
	}

	if len(result.FieldChanges) > 0 {
		sb.WriteString("--- Field Changes ---\n")
		for _, c := range result.FieldChanges {
			sb.WriteString(fmt.Sprintf("~ %s\n", c.Field))
		}
	}

	return sb.String()
}

func symbol(t DiffType) string {
	switch t {
	case DiffTypeAdded:
		return "+ "
	case DiffTypeRemoved:
		return "- "
	case DiffTypeModified:
		return "~ "
	}
	return "  "
}
