// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package reader

import (
	"sort"
	"strings"

	"github.com/littlefisher666/swagger-docgen/internal/descriptor"
	"github.com/littlefisher666/swagger-docgen/internal/logging"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// Resource groups the mapped methods of one endpoint type that share one
// base path.
type Resource struct {
	// Key is the owning type name and base path joined by "|"
	Key string

	// Type is the owning endpoint type
	Type *types.TypeDecl

	// BasePath is the class-level base path, without a trailing slash
	BasePath string

	// Mapping is the class-level request mapping, own or inherited
	Mapping *types.Mapping

	// Api is the api marker, own or inherited
	Api *types.ApiMarker

	// Methods are the mapped methods, in declaration order
	Methods []*types.MethodDecl
}

// Collector discovers endpoint types and groups their methods into
// resources.
type Collector struct {
	index          *descriptor.Index
	skipInheriting bool
	logger         logging.Logger
}

// NewCollector creates a Collector. With skipInheriting set only types
// carrying an endpoint marker themselves are candidates.
func NewCollector(index *descriptor.Index, skipInheriting bool, logger logging.Logger) *Collector {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Collector{
		index:          index,
		skipInheriting: skipInheriting,
		logger:         logger,
	}
}

func isCandidate(t *types.TypeDecl) bool {
	return t.Markers.Controller || t.Markers.ControllerAdvice || t.Markers.Api != nil
}

// Candidates returns the types to read, sorted by name.
func (c *Collector) Candidates() []*types.TypeDecl {
	var out []*types.TypeDecl
	for _, t := range c.index.Types() {
		if isCandidate(t) || (!c.skipInheriting && c.index.Inherits(t, isCandidate)) {
			out = append(out, t)
		}
	}
	return out
}

// Collect returns the resources of every candidate, sorted by key.
func (c *Collector) Collect() []*Resource {
	byKey := make(map[string]*Resource)
	for _, t := range c.Candidates() {
		c.collectType(byKey, t)
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*Resource, 0, len(keys))
	for _, k := range keys {
		out = append(out, byKey[k])
	}
	return out
}

func (c *Collector) collectType(byKey map[string]*Resource, t *types.TypeDecl) {
	if len(t.Unresolved) > 0 {
		c.logger.Warn("type references classes that could not be loaded, skipping",
			"type", t.Name, "unresolved", strings.Join(t.Unresolved, ","))
		return
	}

	api := c.ApiMarker(t)
	if api != nil && api.Hidden {
		c.logger.Debug("hidden api, skipping", "type", t.Name)
		return
	}

	mapping := c.ClassMapping(t)
	for _, m := range c.Methods(t) {
		if m.Synthetic || m.Mapping == nil {
			continue
		}
		for _, base := range basePaths(mapping) {
			key := t.Name + "|" + base
			res, ok := byKey[key]
			if !ok {
				res = &Resource{
					Key:      key,
					Type:     t,
					BasePath: base,
					Mapping:  mapping,
					Api:      api,
				}
				byKey[key] = res
			}
			res.Methods = append(res.Methods, m)
		}
	}
}

// basePaths returns the alternative class-level base paths. A type without
// mapping paths has the single empty base path.
func basePaths(mapping *types.Mapping) []string {
	if mapping == nil || len(mapping.Paths) == 0 {
		return []string{""}
	}
	seen := make(map[string]bool, len(mapping.Paths))
	var out []string
	for _, p := range mapping.Paths {
		p = normalizeBase(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// ClassMapping returns the request mapping of t or of its nearest
// supertype declaring one.
func (c *Collector) ClassMapping(t *types.TypeDecl) *types.Mapping {
	if t.Markers.Mapping != nil {
		return t.Markers.Mapping
	}
	for _, s := range c.index.Supertypes(t) {
		if s.Markers.Mapping != nil {
			return s.Markers.Mapping
		}
	}
	return nil
}

// ApiMarker returns the api marker of t or of its nearest supertype
// declaring one.
func (c *Collector) ApiMarker(t *types.TypeDecl) *types.ApiMarker {
	if t.Markers.Api != nil {
		return t.Markers.Api
	}
	for _, s := range c.index.Supertypes(t) {
		if s.Markers.Api != nil {
			return s.Markers.Api
		}
	}
	return nil
}

// Methods returns the methods of t followed by the inherited methods it
// does not override. An overriding method without markers takes them from
// the method it overrides.
func (c *Collector) Methods(t *types.TypeDecl) []*types.MethodDecl {
	var out []*types.MethodDecl
	pos := make(map[string]int)

	owners := append([]*types.TypeDecl{t}, c.index.Supertypes(t)...)
	for _, owner := range owners {
		for i := range owner.Methods {
			m := &owner.Methods[i]
			sig := signature(m)
			if at, ok := pos[sig]; ok {
				out[at] = inherit(out[at], m)
				continue
			}
			pos[sig] = len(out)
			out = append(out, m)
		}
	}
	return out
}

func signature(m *types.MethodDecl) string {
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = types.SimpleName(strings.TrimSpace(p.Type))
	}
	return m.Name + "(" + strings.Join(parts, ",") + ")"
}

// inherit fills the markers m leaves unset from the overridden method. m
// is copied when anything changes.
func inherit(m, from *types.MethodDecl) *types.MethodDecl {
	needs := m.Mapping == nil || m.Operation == nil || m.Responses == nil ||
		m.ResponseStatus == nil || m.ImplicitParams == nil || (!m.Deprecated && from.Deprecated)
	if !needs {
		return m
	}

	merged := *m
	if merged.Mapping == nil {
		merged.Mapping = from.Mapping
	}
	if merged.Operation == nil {
		merged.Operation = from.Operation
	}
	if merged.Responses == nil {
		merged.Responses = from.Responses
	}
	if merged.ResponseStatus == nil {
		merged.ResponseStatus = from.ResponseStatus
	}
	if merged.ImplicitParams == nil {
		merged.ImplicitParams = from.ImplicitParams
	}
	merged.Deprecated = m.Deprecated || from.Deprecated

	if len(m.Params) == len(from.Params) {
		merged.Params = make([]types.ParamDecl, len(m.Params))
		copy(merged.Params, m.Params)
		for i := range merged.Params {
			if len(merged.Params[i].Markers) == 0 {
				merged.Params[i].Markers = from.Params[i].Markers
			}
			if merged.Params[i].Name == "" {
				merged.Params[i].Name = from.Params[i].Name
			}
		}
	}
	return &merged
}
