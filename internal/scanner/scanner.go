// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds scanner configuration.
type Config struct {
	// BasePath is the base directory patterns are matched against (defaults to current directory)
	BasePath string

	// IncludePatterns are glob patterns for files to include (e.g., "**/*.docgen.yaml")
	IncludePatterns []string

	// ExcludePatterns are glob patterns for files to exclude (e.g., "target/**")
	ExcludePatterns []string
}

// Scanner discovers files in a project.
type Scanner struct {
	config Config
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	// Apply defaults
	if config.BasePath == "" {
		config.BasePath = "."
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = []string{"**/*.docgen.yaml", "**/*.docgen.json"}
	}

	return &Scanner{
		config: config,
	}
}

// Scan discovers all files under the base path matching the configuration.
func (s *Scanner) Scan() ([]SourceFile, error) {
	basePath, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}
	return s.ScanPath(basePath)
}

// ScanPath scans a specific path. A path naming a file is returned as-is
// when it has a supported extension, regardless of include patterns.
func (s *Scanner) ScanPath(path string) ([]SourceFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("path does not exist: %s", absPath)
		}
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if !info.IsDir() {
		if !IsSupportedFile(absPath) {
			return nil, nil
		}
		file, err := readSource(absPath, info)
		if err != nil {
			return nil, err
		}
		return []SourceFile{file}, nil
	}

	var files []SourceFile
	err = filepath.WalkDir(absPath, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip inaccessible paths
			return nil
		}

		if d.IsDir() {
			if s.shouldExcludeDir(s.relative(filePath)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.Matches(filePath) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		// unreadable files are skipped, not fatal
		if file, err := readSource(filePath, info); err == nil {
			files = append(files, file)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// ScanPaths scans multiple paths. Files are deduplicated and returned
// sorted by path.
func (s *Scanner) ScanPaths(paths []string) ([]SourceFile, error) {
	var allFiles []SourceFile
	seen := make(map[string]bool)

	for _, path := range paths {
		files, err := s.ScanPath(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f.Path] {
				seen[f.Path] = true
				allFiles = append(allFiles, f)
			}
		}
	}

	sort.Slice(allFiles, func(i, j int) bool { return allFiles[i].Path < allFiles[j].Path })
	return allFiles, nil
}

// WatchDirs returns every non-excluded directory under paths, for
// registering with a file watcher.
func (s *Scanner) WatchDirs(paths []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path: %w", err)
		}
		err = filepath.WalkDir(absPath, func(p string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if s.shouldExcludeDir(s.relative(p)) {
				return filepath.SkipDir
			}
			if !seen[p] {
				seen[p] = true
				dirs = append(dirs, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory: %w", err)
		}
	}

	return dirs, nil
}

// Matches reports whether a changed file is one the scanner would pick up.
func (s *Scanner) Matches(filePath string) bool {
	if !IsSupportedFile(filePath) {
		return false
	}
	rel := s.relative(filePath)
	if s.matchesPatterns(rel, s.config.ExcludePatterns) {
		return false
	}
	return s.matchesPatterns(rel, s.config.IncludePatterns)
}

// relative returns filePath relative to the base path, with forward slashes.
func (s *Scanner) relative(filePath string) string {
	basePath, _ := filepath.Abs(s.config.BasePath)
	absPath, _ := filepath.Abs(filePath)
	relPath, err := filepath.Rel(basePath, absPath)
	if err != nil {
		relPath = filepath.Base(filePath)
	}
	return filepath.ToSlash(relPath)
}

func readSource(path string, info fs.FileInfo) (SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return SourceFile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return SourceFile{
		Path:    path,
		Format:  DetectFormat(path),
		Content: content,
		ModTime: info.ModTime(),
	}, nil
}

// shouldExcludeDir checks if a directory should be excluded.
func (s *Scanner) shouldExcludeDir(relPath string) bool {
	if relPath == "" || relPath == "." {
		return false
	}

	for _, pattern := range s.config.ExcludePatterns {
		// "target" matches "target/**"
		dirPattern := strings.TrimSuffix(pattern, "/**")
		dirPattern = strings.TrimSuffix(dirPattern, "/*")

		if relPath == dirPattern {
			return true
		}

		// Also check if the pattern would match any file in this directory
		matched, _ := doublestar.Match(pattern, relPath+"/dummy.yaml")
		if matched {
			return true
		}
	}

	return false
}

// matchesPatterns checks if a path matches any of the given patterns.
func (s *Scanner) matchesPatterns(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// Invalid pattern, skip
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
