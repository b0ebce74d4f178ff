// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir creates a temporary directory with test files.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tmpDir, path)
		dir := filepath.Dir(fullPath)
		err := os.MkdirAll(dir, 0o755)
		require.NoError(t, err)
		err = os.WriteFile(fullPath, []byte(content), 0o644)
		require.NoError(t, err)
	}

	return tmpDir
}

func TestNew_DefaultConfig(t *testing.T) {
	scanner := New(Config{})

	assert.NotNil(t, scanner)
	assert.Equal(t, ".", scanner.config.BasePath)
	assert.NotEmpty(t, scanner.config.IncludePatterns)
}

func TestScanner_Scan_Descriptors(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"pets.docgen.yaml":           "types: []",
		"store/orders.docgen.json":   `{"types": []}`,
		"store/notes.yaml":           "unrelated: true",
		"src/PetController.java":     "class PetController {}",
		"target/gen/old.docgen.yaml": "types: []",
	})

	scanner := New(Config{
		BasePath:        tmpDir,
		IncludePatterns: []string{"**/*.docgen.yaml", "**/*.docgen.json"},
		ExcludePatterns: []string{"target/**"},
	})

	files, err := scanner.Scan()
	require.NoError(t, err)
	require.Len(t, files, 2)

	formats := map[string]string{}
	for _, f := range files {
		rel, _ := filepath.Rel(tmpDir, f.Path)
		formats[filepath.ToSlash(rel)] = f.Format
		assert.NotEmpty(t, f.Content)
		assert.False(t, f.ModTime.IsZero())
	}
	assert.Equal(t, map[string]string{
		"pets.docgen.yaml":         "yaml",
		"store/orders.docgen.json": "json",
	}, formats)
}

func TestScanner_Scan_JavaSources(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"src/main/java/com/acme/Pet.java":     "class Pet {}",
		"src/main/java/com/acme/README.md":    "docs",
		"src/test/java/com/acme/PetTest.java": "class PetTest {}",
	})

	scanner := New(Config{
		BasePath:        tmpDir,
		IncludePatterns: []string{"**/*.java"},
		ExcludePatterns: []string{"src/test/**"},
	})

	files, err := scanner.Scan()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "java", files[0].Format)
}

func TestScanner_Scan_EmptyDirectory(t *testing.T) {
	scanner := New(Config{BasePath: t.TempDir()})

	files, err := scanner.Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanner_ScanPath_SingleFile(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"explicit.yaml": "types: []",
	})

	scanner := New(Config{BasePath: tmpDir})

	// explicit files bypass include patterns
	files, err := scanner.ScanPath(filepath.Join(tmpDir, "explicit.yaml"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "yaml", files[0].Format)
}

func TestScanner_ScanPath_NonexistentPath(t *testing.T) {
	scanner := New(Config{})

	_, err := scanner.ScanPath("/nonexistent/path/that/does/not/exist")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestScanner_ScanPaths_SortedAndDeduplicated(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"b/two.docgen.yaml": "types: []",
		"a/one.docgen.yaml": "types: []",
	})

	scanner := New(Config{BasePath: tmpDir})

	files, err := scanner.ScanPaths([]string{
		filepath.Join(tmpDir, "b"),
		tmpDir,
		filepath.Join(tmpDir, "a"),
	})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "one.docgen.yaml", filepath.Base(files[0].Path))
	assert.Equal(t, "two.docgen.yaml", filepath.Base(files[1].Path))
}

func TestScanner_WatchDirs(t *testing.T) {
	tmpDir := setupTestDir(t, map[string]string{
		"api/pets.docgen.yaml": "types: []",
		"target/x.docgen.yaml": "types: []",
	})

	scanner := New(Config{BasePath: tmpDir, ExcludePatterns: []string{"target/**"}})

	dirs, err := scanner.WatchDirs([]string{tmpDir})
	require.NoError(t, err)
	assert.Contains(t, dirs, tmpDir)
	assert.Contains(t, dirs, filepath.Join(tmpDir, "api"))
	assert.NotContains(t, dirs, filepath.Join(tmpDir, "target"))
}

func TestScanner_Matches(t *testing.T) {
	tmpDir := t.TempDir()
	scanner := New(Config{
		BasePath:        tmpDir,
		IncludePatterns: []string{"**/*.docgen.yaml"},
		ExcludePatterns: []string{"build/**"},
	})

	assert.True(t, scanner.Matches(filepath.Join(tmpDir, "x/pets.docgen.yaml")))
	assert.False(t, scanner.Matches(filepath.Join(tmpDir, "build/pets.docgen.yaml")))
	assert.False(t, scanner.Matches(filepath.Join(tmpDir, "pets.yaml")))
	assert.False(t, scanner.Matches(filepath.Join(tmpDir, "pets.docgen.txt")))
}
