// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package descriptor loads declaration descriptors produced by a front-end
// scanner and indexes them by type name.
package descriptor

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/littlefisher666/swagger-docgen/internal/scanner"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// File is the on-disk descriptor layout.
type File struct {
	// Types are the scanned type declarations
	Types []types.TypeDecl `json:"types" yaml:"types"`
}

// Parse decodes descriptor content. Format is "json" or "yaml".
func Parse(content []byte, format string) ([]types.TypeDecl, error) {
	var file File
	switch format {
	case "json":
		if err := json.Unmarshal(content, &file); err != nil {
			return nil, fmt.Errorf("failed to parse JSON descriptor: %w", err)
		}
	case "yaml", "":
		if err := yaml.Unmarshal(content, &file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML descriptor: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported descriptor format %q", format)
	}

	for i, decl := range file.Types {
		if decl.Name == "" {
			return nil, fmt.Errorf("type #%d has no name", i+1)
		}
	}
	return file.Types, nil
}

// ParseFile reads and decodes a descriptor file, detecting the format
// from its extension.
func ParseFile(path string) ([]types.TypeDecl, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}
	decls, err := Parse(content, scanner.DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decls, nil
}

// Load decodes every scanned descriptor file, in the given order.
func Load(files []scanner.SourceFile) ([]types.TypeDecl, error) {
	var decls []types.TypeDecl
	for _, f := range files {
		parsed, err := Parse(f.Content, f.Format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}
		decls = append(decls, parsed...)
	}
	return decls, nil
}
