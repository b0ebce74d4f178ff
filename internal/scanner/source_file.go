// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner discovers declaration descriptors and doc-comment sources.
package scanner

import (
	"path/filepath"
	"strings"
	"time"
)

// SourceFile represents a discovered file.
type SourceFile struct {
	// Path is the absolute path to the file
	Path string

	// Format is the detected file format ("yaml", "json", "java")
	Format string

	// Content is the file content
	Content []byte

	// ModTime is the last modification time
	ModTime time.Time
}

// formatExtensions maps file extensions to format identifiers.
var formatExtensions = map[string]string{
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
	".java": "java",
}

// DetectFormat detects the file format from a file path.
func DetectFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := formatExtensions[ext]; ok {
		return format
	}
	return ""
}

// IsSupportedFile checks if a file path has a supported extension.
func IsSupportedFile(path string) bool {
	return DetectFormat(path) != ""
}
