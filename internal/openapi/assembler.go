// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package openapi assembles, orders, writes and compares Swagger documents.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/littlefisher666/swagger-docgen/internal/config"
	"github.com/littlefisher666/swagger-docgen/internal/descriptor"
	"github.com/littlefisher666/swagger-docgen/internal/doccomment"
	"github.com/littlefisher666/swagger-docgen/internal/extension"
	"github.com/littlefisher666/swagger-docgen/internal/logging"
	"github.com/littlefisher666/swagger-docgen/internal/params"
	"github.com/littlefisher666/swagger-docgen/internal/reader"
	"github.com/littlefisher666/swagger-docgen/internal/schema"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// Options configures Assemble.
type Options struct {
	// Config is the validated run configuration
	Config *config.Config

	// Docs is the doc-comment source; nil disables doc enrichment
	Docs doccomment.Source

	// Extensions resolves configured extension names; nil uses extension.Default()
	Extensions *extension.Registry

	// Logger receives per-entity warnings
	Logger logging.Logger
}

// Assemble builds the canonical document for decls. Configuration errors
// are returned before any declaration is read; a malformed path template
// aborts assembly. Every other per-entity problem is logged and skipped.
func Assemble(ctx context.Context, decls []types.TypeDecl, opts Options) (*types.Document, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("assemble: configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}
	registry := opts.Extensions
	if registry == nil {
		registry = extension.Default()
	}

	doc, err := newDocument(cfg, logger)
	if err != nil {
		return nil, err
	}

	subs, err := cfg.SubstitutionMap()
	if err != nil {
		return nil, err
	}
	chain, err := registry.Chain(cfg.Extensions.Parameters)
	if err != nil {
		return nil, err
	}
	decorators, err := registry.Decorators(cfg.Extensions.Decorators)
	if err != nil {
		return nil, err
	}

	index := descriptor.NewIndex(decls, logger)
	applyDefinitions(doc, index)

	var merger *doccomment.Merger
	if opts.Docs != nil && cfg.Docs.Enabled {
		merger = doccomment.NewMerger(opts.Docs, index)
	}

	models := schema.NewRegistry()
	schemas := schema.NewResolver(index, models, schema.Options{
		Substitutions:    subs,
		AccessExclusions: cfg.PropertyAccessExclusions,
		Docs:             merger,
		Logger:           logger,
	})
	paramResolver := params.NewResolver(schemas, index, chain, logger)

	builder := reader.NewBuilder(index, paramResolver, merger, reader.NewExceptionTable(index, logger), reader.Options{
		OperationIDFormat: cfg.OperationIDFormat,
		DocsEnabled:       merger != nil,
		TypesToSkip:       cfg.TypesToSkip,
		Decorators:        decorators,
	}, logger)
	r := reader.New(reader.NewCollector(index, cfg.SkipInheritingTypes, logger), builder, logger)

	if err := r.Read(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to read declarations: %w", err)
	}

	if cfg.RemoveBasePathFromEndpoints {
		RemoveBasePath(doc, doc.BasePath)
	}
	doc.Definitions = models.Definitions()

	Canonicalize(doc)

	logger.Info("assembled document",
		"paths", doc.Paths.Len(),
		"definitions", doc.Definitions.Len(),
		"tags", len(doc.Tags),
	)
	return doc, nil
}

// newDocument creates a document carrying the configured top-level fields.
func newDocument(cfg *config.Config, logger logging.Logger) (*types.Document, error) {
	info, err := cfg.APIInfo()
	if err != nil {
		return nil, err
	}

	doc := types.NewDocument()
	doc.Info = info
	doc.Host = cfg.Host
	doc.BasePath = cfg.BasePath
	for _, s := range cfg.Schemes {
		doc.Schemes = append(doc.Schemes, strings.ToLower(strings.TrimSpace(s)))
	}

	schemes, skipped, err := cfg.SecuritySchemes()
	if err != nil {
		return nil, err
	}
	for _, name := range skipped {
		logger.Warn("skipping security definition of unsupported type", "name", name)
	}
	doc.SecurityDefinitions = schemes

	return doc, nil
}

// applyDefinitions fills the top-level fields the configuration left empty
// from definition markers, in index order.
func applyDefinitions(doc *types.Document, index *descriptor.Index) {
	for _, t := range index.Types() {
		def := t.Markers.Definition
		if def == nil {
			continue
		}
		if doc.Host == "" {
			doc.Host = def.Host
		}
		if doc.BasePath == "" {
			doc.BasePath = def.BasePath
		}
		if doc.ExternalDocs == nil && def.ExternalDocs != nil {
			docs := *def.ExternalDocs
			doc.ExternalDocs = &docs
		}
		if def.Info != nil {
			fillInfo(doc.Info, def.Info)
		}
	}
}

func fillInfo(dst, src *types.Info) {
	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.Version == "" {
		dst.Version = src.Version
	}
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.TermsOfService == "" {
		dst.TermsOfService = src.TermsOfService
	}
	if dst.Contact == nil && src.Contact != nil {
		c := *src.Contact
		dst.Contact = &c
	}
	if dst.License == nil && src.License != nil {
		l := *src.License
		dst.License = &l
	}
}

// RemoveBasePath strips basePath from the front of every path key. Only a
// whole leading segment match is stripped; a key equal to basePath becomes
// "/". Keys that collapse onto an existing key are merged.
func RemoveBasePath(doc *types.Document, basePath string) {
	base := strings.TrimSuffix(strings.TrimSpace(basePath), "/")
	if base == "" {
		return
	}

	paths := types.NewOrderedMap[*types.Path]()
	doc.Paths.Range(func(key string, path *types.Path) bool {
		stripped := stripPrefix(key, base)
		existing, ok := paths.Get(stripped)
		if !ok {
			paths.Set(stripped, path)
			return true
		}
		for _, verb := range types.Verbs {
			op := path.Operation(verb)
			if op == nil {
				continue
			}
			if dst := existing.Operation(verb); dst != nil {
				reader.MergeOperation(dst, op)
				continue
			}
			existing.Set(verb, op)
		}
		return true
	})
	doc.Paths = paths
}

func stripPrefix(key, base string) string {
	if key == base {
		return "/"
	}
	if rest, ok := strings.CutPrefix(key, base); ok && strings.HasPrefix(rest, "/") {
		return rest
	}
	return key
}
