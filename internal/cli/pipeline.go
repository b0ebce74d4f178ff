// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/littlefisher666/swagger-docgen/internal/config"
	"github.com/littlefisher666/swagger-docgen/internal/descriptor"
	"github.com/littlefisher666/swagger-docgen/internal/doccomment"
	"github.com/littlefisher666/swagger-docgen/internal/extension"
	"github.com/littlefisher666/swagger-docgen/internal/logging"
	"github.com/littlefisher666/swagger-docgen/internal/openapi"
	"github.com/littlefisher666/swagger-docgen/internal/scanner"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if len(formats) > 0 {
		cfg.Output.Formats = formats
	}

	return cfg, nil
}

// commandContext returns the command's context, or a background context
// when the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func sourceScanner(cfg *config.Config) *scanner.Scanner {
	return scanner.New(scanner.Config{
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
	})
}

func docScanner(cfg *config.Config) *scanner.Scanner {
	return scanner.New(scanner.Config{
		IncludePatterns: cfg.Docs.Include,
		ExcludePatterns: cfg.Docs.Exclude,
	})
}

// buildDocument discovers descriptors and doc sources for cfg and
// assembles the document.
func buildDocument(ctx context.Context, cfg *config.Config, logger logging.Logger) (*types.Document, error) {
	files, err := sourceScanner(cfg).ScanPaths(cfg.Source.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan descriptors: %w", err)
	}
	logger.Debug("scanned descriptor files", "files", len(files))

	decls, err := descriptor.Load(files)
	if err != nil {
		return nil, fmt.Errorf("failed to load descriptors: %w", err)
	}

	opts := openapi.Options{
		Config:     cfg,
		Extensions: extension.Default(),
		Logger:     logger,
	}

	if cfg.Docs.Enabled {
		docFiles, err := docScanner(cfg).ScanPaths(cfg.Docs.Paths)
		if err != nil {
			return nil, fmt.Errorf("failed to scan doc sources: %w", err)
		}
		store, err := doccomment.Load(ctx, docFiles, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load doc comments: %w", err)
		}
		opts.Docs = store
	}

	return openapi.Assemble(ctx, decls, opts)
}

// writeDocument writes doc in every configured format.
func writeDocument(cfg *config.Config, doc *types.Document) ([]string, error) {
	return openapi.NewWriter().WriteAll(doc, cfg.Output.Dir, cfg.Output.FileName, cfg.Output.Formats)
}

// primaryOutput returns the first configured output that can be read back
// as Swagger 2.0. It falls back to the JSON output.
func primaryOutput(cfg *config.Config) string {
	for _, format := range cfg.Output.Formats {
		if format == openapi.FormatOpenAPI3 {
			continue
		}
		if name, err := openapi.FileName(cfg.Output.FileName, format); err == nil {
			return filepath.Join(cfg.Output.Dir, name)
		}
	}
	return filepath.Join(cfg.Output.Dir, cfg.Output.FileName+".json")
}
