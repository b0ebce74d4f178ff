// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatOpenAPI3 = "openapi3"
)

// ErrUnsupportedFormat is returned for an output format the Writer does
// not know.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Writer handles writing documents to various outputs.
type Writer struct {
	// Indent specifies the indentation for JSON output (default: 2 spaces)
	Indent int
}

// NewWriter creates a new Writer with default settings.
func NewWriter() *Writer {
	return &Writer{
		Indent: 2,
	}
}

// Write encodes doc in format to out.
func (w *Writer) Write(doc *types.Document, format string, out io.Writer) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return w.WriteJSON(doc, out)
	case FormatYAML, "yml":
		return w.WriteYAML(doc, out)
	case FormatOpenAPI3:
		return w.WriteOpenAPI3(doc, out)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteYAML writes a document as YAML to the given writer.
func (w *Writer) WriteYAML(doc *types.Document, out io.Writer) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// WriteJSON writes a document as JSON to the given writer.
func (w *Writer) WriteJSON(doc *types.Document, out io.Writer) error {
	return w.encodeJSON(doc, out)
}

// WriteOpenAPI3 converts the document to OpenAPI 3 and writes it as JSON.
func (w *Writer) WriteOpenAPI3(doc *types.Document, out io.Writer) error {
	v3, err := ToOpenAPI3(doc)
	if err != nil {
		return err
	}
	return w.encodeJSON(v3, out)
}

func (w *Writer) encodeJSON(v any, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", w.Indent))
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// ToOpenAPI3 converts a Swagger 2.0 document with kin-openapi.
func ToOpenAPI3(doc *types.Document) (*openapi3.T, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	var v2 openapi2.T
	if err := json.Unmarshal(data, &v2); err != nil {
		return nil, fmt.Errorf("failed to decode Swagger 2.0 document: %w", err)
	}

	v3, err := openapi2conv.ToV3(&v2)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to OpenAPI 3: %w", err)
	}
	return v3, nil
}

// FileName returns the output file name of format. The openapi3 output
// gets its own suffix so it can sit next to the JSON output.
func FileName(base, format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return base + ".json", nil
	case FormatYAML:
		return base + ".yaml", nil
	case FormatOpenAPI3:
		return base + ".openapi3.json", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteFile writes a document to a file.
// If format is empty, it is inferred from the file extension.
func (w *Writer) WriteFile(doc *types.Document, path string, format string) error {
	if format == "" {
		format = formatOf(path)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return w.Write(doc, format, file)
}

// WriteAll writes doc once per format into dir and returns the written
// paths in format order.
func (w *Writer) WriteAll(doc *types.Document, dir, base string, formats []string) ([]string, error) {
	written := make([]string, 0, len(formats))
	for _, format := range formats {
		name, err := FileName(base, format)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, name)
		if err := w.WriteFile(doc, path, format); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// ToYAML returns the YAML representation of a document as a string.
func (w *Writer) ToYAML(doc *types.Document) (string, error) {
	var buf strings.Builder
	if err := w.WriteYAML(doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToJSON returns the JSON representation of a document as a string.
func (w *Writer) ToJSON(doc *types.Document) (string, error) {
	var buf strings.Builder
	if err := w.WriteJSON(doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatOf(path string) string {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".openapi3.json"):
		return FormatOpenAPI3
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ReadFile reads a Swagger 2.0 document from a file.
// The format is inferred from the file extension.
func ReadFile(path string) (*types.Document, error) {
	format := formatOf(path)
	if format == FormatOpenAPI3 {
		return nil, fmt.Errorf("%w: cannot read %s back as Swagger 2.0", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc types.Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	}

	return &doc, nil
}
