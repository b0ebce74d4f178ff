// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlefisher666/swagger-docgen/internal/openapi"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

func TestApplyIgnorePatterns(t *testing.T) {
	tests := []struct {
		name                string
		result              *openapi.DiffResult
		patterns            []string
		expectedPaths       int
		expectedDefinitions int
		expectedBreaking    bool
	}{
		{
			name: "no patterns",
			result: &openapi.DiffResult{
				PathChanges: []openapi.PathChange{
					{Type: openapi.DiffTypeAdded, Path: "/api/users", Method: "GET"},
					{Type: openapi.DiffTypeRemoved, Path: "/api/posts", Method: "POST"},
				},
				DefinitionChanges: []openapi.DefinitionChange{
					{Type: openapi.DiffTypeAdded, Name: "User"},
				},
				HasBreakingChanges: true,
			},
			patterns:            []string{},
			expectedPaths:       2,
			expectedDefinitions: 1,
			expectedBreaking:    true,
		},
		{
			name: "filter by exact path",
			result: &openapi.DiffResult{
				PathChanges: []openapi.PathChange{
					{Type: openapi.DiffTypeAdded, Path: "/api/users", Method: "GET"},
					{Type: openapi.DiffTypeRemoved, Path: "/api/posts", Method: "POST"},
				},
				HasBreakingChanges: true,
			},
			patterns:      []string{"/api/users"},
			expectedPaths: 1,
			expectedBreaking: true, // /api/posts is still removed
		},
		{
			name: "filter by prefix pattern",
			result: &openapi.DiffResult{
				PathChanges: []openapi.PathChange{
					{Type: openapi.DiffTypeAdded, Path: "/api/users", Method: "GET"},
					{Type: openapi.DiffTypeAdded, Path: "/api/posts", Method: "POST"},
					{Type: openapi.DiffTypeAdded, Path: "/health", Method: "GET"},
				},
			},
			patterns:      []string{"/api/*"},
			expectedPaths: 1,
		},
		{
			name: "filter definition by name",
			result: &openapi.DiffResult{
				DefinitionChanges: []openapi.DefinitionChange{
					{Type: openapi.DiffTypeAdded, Name: "User"},
					{Type: openapi.DiffTypeAdded, Name: "Post"},
					{Type: openapi.DiffTypeRemoved, Name: "Comment"},
				},
			},
			patterns:            []string{"User", "Post"},
			expectedDefinitions: 1,
			expectedBreaking:    true,
		},
		{
			name: "breaking change removed when filtered",
			result: &openapi.DiffResult{
				PathChanges: []openapi.PathChange{
					{Type: openapi.DiffTypeRemoved, Path: "/api/deprecated", Method: "GET"},
				},
				HasBreakingChanges: true,
			},
			patterns:         []string{"/api/deprecated"},
			expectedBreaking: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := applyIgnorePatterns(tt.result, tt.patterns)

			assert.Len(t, filtered.PathChanges, tt.expectedPaths)
			assert.Len(t, filtered.DefinitionChanges, tt.expectedDefinitions)
			assert.Equal(t, tt.expectedBreaking, filtered.HasBreakingChanges)
		})
	}
}

func TestApplyIgnorePatterns_KeepsFieldChanges(t *testing.T) {
	result := &openapi.DiffResult{
		PathChanges:  []openapi.PathChange{{Type: openapi.DiffTypeAdded, Path: "/health", Method: "GET"}},
		FieldChanges: []openapi.FieldChange{{Field: "host"}},
	}

	filtered := applyIgnorePatterns(result, []string{"/health"})

	assert.Empty(t, filtered.PathChanges)
	assert.Len(t, filtered.FieldChanges, 1)
	assert.Equal(t, "1 field(s) modified", filtered.Summary)
}

func TestMatchesAnyPattern(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		patterns []string
		expected bool
	}{
		{"exact match", "/api/users", []string{"/api/users"}, true},
		{"no match", "/api/users", []string{"/api/posts"}, false},
		{"prefix wildcard", "/api/users", []string{"/api/*"}, true},
		{"suffix wildcard", "UserResponse", []string{"*Response"}, true},
		{"inner wildcard", "/api/users/{id}", []string{"/api/*/{id}"}, true},
		{"empty patterns", "/api/users", []string{}, false},
		{"multiple patterns - one match", "/api/users", []string{"/api/posts", "/api/users", "/api/comments"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matchesAnyPattern(tt.s, tt.patterns))
		})
	}
}

func TestGetChangeSymbol(t *testing.T) {
	tests := []struct {
		diffType openapi.DiffType
		expected string
	}{
		{openapi.DiffTypeAdded, "+"},
		{openapi.DiffTypeRemoved, "-"},
		{openapi.DiffTypeModified, "~"},
	}

	for _, tt := range tests {
		t.Run(string(tt.diffType), func(t *testing.T) {
			assert.Equal(t, tt.expected, getChangeSymbol(tt.diffType))
		})
	}
}

func TestGenerateFilteredSummary(t *testing.T) {
	tests := []struct {
		name     string
		result   *openapi.DiffResult
		contains []string
	}{
		{
			name:     "empty result",
			result:   &openapi.DiffResult{},
			contains: []string{"No changes detected"},
		},
		{
			name: "operations added",
			result: &openapi.DiffResult{
				PathChanges: []openapi.PathChange{
					{Type: openapi.DiffTypeAdded, Path: "/api/users"},
					{Type: openapi.DiffTypeAdded, Path: "/api/posts"},
				},
			},
			contains: []string{"2 operation(s) added"},
		},
		{
			name: "mixed changes",
			result: &openapi.DiffResult{
				PathChanges: []openapi.PathChange{
					{Type: openapi.DiffTypeAdded, Path: "/api/users"},
					{Type: openapi.DiffTypeRemoved, Path: "/api/posts"},
				},
				DefinitionChanges: []openapi.DefinitionChange{
					{Type: openapi.DiffTypeModified, Name: "User"},
				},
				HasBreakingChanges: true,
			},
			contains: []string{"1 operation(s) added", "1 operation(s) removed", "1 definition(s) modified", "BREAKING"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := generateFilteredSummary(tt.result)
			for _, expected := range tt.contains {
				assert.Contains(t, summary, expected)
			}
		})
	}
}

func TestGenerateCommand_WritesEveryFormat(t *testing.T) {
	setupProject(t, petDescriptor)
	formats = []string{"json", "yaml", "openapi3"}

	require.NoError(t, runGenerate(generateCmd, nil))

	for _, name := range []string{"swagger.json", "swagger.yaml", "swagger.openapi3.json"} {
		_, err := os.Stat(filepath.Join("out", name))
		assert.NoError(t, err, name)
	}

	doc, err := openapi.ReadFile(filepath.Join("out", "swagger.yaml"))
	require.NoError(t, err)
	assert.True(t, doc.Paths.Has("/pets/{id}"))
}

func TestGenerateCommand_DryRun(t *testing.T) {
	setupProject(t, petDescriptor)
	generateDryRun = true

	require.NoError(t, runGenerate(generateCmd, nil))

	_, err := os.Stat(filepath.Join("out", "swagger.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateCommand_InvalidConfig(t *testing.T) {
	dir := setupProject(t, petDescriptor)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docgen.yaml"), []byte("source:\n  paths: [./api]\n"), 0o644))

	err := runGenerate(generateCmd, nil)
	assert.ErrorContains(t, err, "title is required")
}

func TestCheckCommand_InSync(t *testing.T) {
	setupProject(t, petDescriptor)
	require.NoError(t, runGenerate(generateCmd, nil))

	assert.NoError(t, runCheck(checkCmd, nil))
}

func TestCheckCommand_Drift(t *testing.T) {
	dir := setupProject(t, petDescriptor)
	require.NoError(t, runGenerate(generateCmd, nil))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "owner.docgen.yaml"), []byte(ownerDescriptor), 0o644))

	err := runCheck(checkCmd, nil)
	assert.ErrorContains(t, err, "document differs")

	checkIgnore = []string{"/owners/*"}
	assert.NoError(t, runCheck(checkCmd, nil))
}

func TestCheckCommand_NonStrict(t *testing.T) {
	dir := setupProject(t, petDescriptor)
	require.NoError(t, runGenerate(generateCmd, nil))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "owner.docgen.yaml"), []byte(ownerDescriptor), 0o644))
	checkStrict = false

	assert.NoError(t, runCheck(checkCmd, nil))
}

func TestCheckCommand_NoSpecFile(t *testing.T) {
	setupProject(t, petDescriptor)

	err := runCheck(checkCmd, nil)
	assert.ErrorContains(t, err, "document not found")
}

func TestCheckCommand_CIExitCodes(t *testing.T) {
	var codes []int
	saved := osExit
	osExit = func(code int) { codes = append(codes, code) }
	t.Cleanup(func() { osExit = saved })

	dir := setupProject(t, petDescriptor)
	checkCI = true

	_ = runCheck(checkCmd, nil)
	require.NoError(t, runGenerate(generateCmd, nil))
	_ = runCheck(checkCmd, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "owner.docgen.yaml"), []byte(ownerDescriptor), 0o644))
	_ = runCheck(checkCmd, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "broken.docgen.yaml"), []byte("types: [unterminated"), 0o644))
	_ = runCheck(checkCmd, nil)

	assert.Equal(t, []int{ExitCodeDifference, ExitCodeMatch, ExitCodeDifference, ExitCodeCheckError}, codes)
}

func TestCheckCommand_OpenAPI3(t *testing.T) {
	setupProject(t, ownerDescriptor)
	require.NoError(t, runGenerate(generateCmd, nil))
	checkOpenAPI3 = true

	assert.NoError(t, runCheck(checkCmd, nil))
}

func TestCheckCommand_ExplicitFile(t *testing.T) {
	setupProject(t, petDescriptor)
	formats = []string{"yaml"}
	require.NoError(t, runGenerate(generateCmd, nil))
	formats = nil
	checkFile = filepath.Join("out", "swagger.yaml")

	assert.NoError(t, runCheck(checkCmd, nil))
}

func writeDoc(t *testing.T, path string, paths ...string) {
	t.Helper()
	doc := types.NewDocument()
	doc.Info = &types.Info{Title: "Test API", Version: "1.0.0"}
	for _, p := range paths {
		doc.Path(p).Get = &types.Operation{Summary: p}
	}
	require.NoError(t, openapi.NewWriter().WriteFile(doc, path, ""))
}

func TestDiffCommand_TwoFiles(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()
	oldFile := filepath.Join(dir, "old.json")
	newFile := filepath.Join(dir, "new.yaml")
	writeDoc(t, oldFile, "/users", "/legacy")
	writeDoc(t, newFile, "/users", "/posts")

	var buf bytes.Buffer
	diffCmd.SetOut(&buf)
	t.Cleanup(func() { diffCmd.SetOut(nil) })

	require.NoError(t, runDiff(diffCmd, []string{oldFile, newFile}))

	out := buf.String()
	assert.Contains(t, out, "+ GET /posts")
	assert.Contains(t, out, "- GET /legacy")
	assert.Contains(t, out, "[BREAKING CHANGES DETECTED]")
}

func TestDiffCommand_ExitCode(t *testing.T) {
	resetGlobals(t)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	writeDoc(t, a, "/users")
	writeDoc(t, b, "/users", "/posts")

	saved := diffExitCode
	diffExitCode = true
	t.Cleanup(func() { diffExitCode = saved })
	diffCmd.SetOut(&bytes.Buffer{})
	t.Cleanup(func() { diffCmd.SetOut(nil) })

	assert.NoError(t, runDiff(diffCmd, []string{a, a}))
	assert.ErrorContains(t, runDiff(diffCmd, []string{a, b}), "documents differ")
}

func TestDiffCommand_AgainstGenerated(t *testing.T) {
	setupProject(t, petDescriptor)
	require.NoError(t, runGenerate(generateCmd, nil))

	var buf bytes.Buffer
	diffCmd.SetOut(&buf)
	t.Cleanup(func() { diffCmd.SetOut(nil) })

	require.NoError(t, runDiff(diffCmd, nil))
	assert.Contains(t, buf.String(), "No differences found.")
}

func TestDiffCommand_TwoNonExistentFiles(t *testing.T) {
	resetGlobals(t)
	err := runDiff(diffCmd, []string{"nonexistent1.json", "nonexistent2.json"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestPrintCommand_ExistingFile(t *testing.T) {
	resetGlobals(t)
	file := filepath.Join(t.TempDir(), "swagger.json")
	writeDoc(t, file, "/users")
	formats = []string{"yaml"}

	var buf bytes.Buffer
	printCmd.SetOut(&buf)
	t.Cleanup(func() { printCmd.SetOut(nil) })

	require.NoError(t, runPrint(printCmd, []string{file}))
	assert.Contains(t, buf.String(), `swagger: "2.0"`)
	assert.Contains(t, buf.String(), "/users:")
}

func TestPrintCommand_Generated(t *testing.T) {
	setupProject(t, petDescriptor)

	var buf bytes.Buffer
	printCmd.SetOut(&buf)
	t.Cleanup(func() { printCmd.SetOut(nil) })

	require.NoError(t, runPrint(printCmd, nil))
	assert.Contains(t, buf.String(), `"swagger": "2.0"`)
	assert.Contains(t, buf.String(), `"/pets/{id}"`)
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, ExitCodeMatch)
	assert.Equal(t, 1, ExitCodeDifference)
	assert.Equal(t, 2, ExitCodeCheckError)
}
