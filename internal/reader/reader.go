// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package reader turns endpoint declarations into document paths and
// operations.
//
// The Collector groups mapped methods into resources, the Builder turns a
// method into one operation per path and verb, and the Reader merges the
// operations into the document. Operations landing on the same path and
// verb are merged: scalar fields take the later value, list fields are
// unioned.
package reader

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/littlefisher666/swagger-docgen/internal/logging"
	"github.com/littlefisher666/swagger-docgen/internal/util"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// Reader reads resources into a document.
type Reader struct {
	collector *Collector
	builder   *Builder
	logger    logging.Logger
}

// New creates a Reader.
func New(collector *Collector, builder *Builder, logger logging.Logger) *Reader {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Reader{
		collector: collector,
		builder:   builder,
		logger:    logger,
	}
}

// Read builds the operations of every resource into doc. A malformed path
// template aborts the read.
func (r *Reader) Read(ctx context.Context, doc *types.Document) error {
	resources := r.collector.Collect()
	r.logger.Debug("collected resources", "count", len(resources))

	for _, res := range resources {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.readResource(doc, res); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) readResource(doc *types.Document, res *Resource) error {
	r.builder.RegisterTags(doc, res)

	for _, m := range res.Methods {
		log := r.logger.With("type", res.Type.Name, "method", m.Name)
		if m.IsHidden() {
			log.Debug("hidden operation, skipping")
			continue
		}
		if m.Mapping == nil || len(m.Mapping.Methods) == 0 {
			log.Debug("mapping declares no HTTP method, skipping")
			continue
		}

		for _, raw := range methodPaths(res.BasePath, m.Mapping.Paths) {
			patterns := make(map[string]string)
			key, err := ParsePath(raw, patterns)
			if err != nil {
				return fmt.Errorf("type %s method %s: %w", res.Type.Name, m.Name, err)
			}

			for _, verb := range m.Mapping.Methods {
				verb = strings.ToLower(strings.TrimSpace(verb))
				if !isVerb(verb) {
					log.Warn("unsupported HTTP method, skipping", "verb", verb, "path", key)
					continue
				}
				op := r.builder.Build(doc, res, m, verb, key, patterns)
				path := doc.Path(key)
				if existing := path.Operation(verb); existing != nil {
					MergeOperation(existing, op)
					continue
				}
				path.Set(verb, op)
			}
		}
	}
	return nil
}

func isVerb(verb string) bool {
	for _, v := range types.Verbs {
		if v == verb {
			return true
		}
	}
	return false
}

// methodPaths joins the method-level paths onto base. A method without
// paths inherits base.
func methodPaths(base string, paths []string) []string {
	if len(paths) == 0 {
		return []string{base}
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, JoinPath(base, p))
	}
	return out
}

// MergeOperation merges src into dst. Non-empty scalar fields of src win,
// list fields are unioned keeping first occurrence order, parameters and
// responses of src replace those of dst with the same identity.
func MergeOperation(dst, src *types.Operation) {
	if src.Summary != "" {
		dst.Summary = src.Summary
	}
	if src.Description != "" {
		dst.Description = src.Description
	}
	if src.OperationID != "" {
		dst.OperationID = src.OperationID
	}
	dst.Deprecated = src.Deprecated

	dst.Tags = util.MergeUnique(dst.Tags, src.Tags)
	dst.Schemes = util.MergeUnique(dst.Schemes, src.Schemes)
	dst.Consumes = util.MergeUnique(dst.Consumes, src.Consumes)
	dst.Produces = util.MergeUnique(dst.Produces, src.Produces)

	for _, p := range src.Parameters {
		dst.AddParameter(p)
	}
	src.Responses.Range(func(code string, resp *types.Response) bool {
		dst.Responses.Set(code, resp)
		return true
	})

	seen := make(map[string]bool, len(dst.Security))
	for _, req := range dst.Security {
		seen[requirementKey(req)] = true
	}
	for _, req := range src.Security {
		if k := requirementKey(req); !seen[k] {
			seen[k] = true
			dst.Security = append(dst.Security, req)
		}
	}

	for k, v := range src.Extensions {
		if dst.Extensions == nil {
			dst.Extensions = make(map[string]interface{}, len(src.Extensions))
		}
		dst.Extensions[k] = v
	}
}

func requirementKey(req types.SecurityRequirement) string {
	names := make([]string, 0, len(req))
	for name, scopes := range req {
		names = append(names, name+"="+strings.Join(scopes, ","))
	}
	sort.Strings(names)
	return strings.Join(names, ";")
}
