// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package doccomment

import (
	"strings"

	"github.com/littlefisher666/swagger-docgen/internal/descriptor"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// Merger resolves documentation along the inheritance chain. A nil Merger
// returns empty text for every lookup.
type Merger struct {
	source Source
	index  *descriptor.Index
}

// NewMerger creates a Merger over source. The index resolves supertypes.
func NewMerger(source Source, index *descriptor.Index) *Merger {
	return &Merger{source: source, index: index}
}

// Lookup returns the documentation of method on t. The type itself is
// searched first, then its superclass chain, then its interfaces. The
// first non-blank text wins.
func (m *Merger) Lookup(t *types.TypeDecl, method string) string {
	if m == nil || t == nil {
		return ""
	}
	return m.lookup(t, method, map[string]bool{})
}

func (m *Merger) lookup(t *types.TypeDecl, method string, seen map[string]bool) string {
	if seen[t.Name] {
		return ""
	}
	seen[t.Name] = true

	if text := m.source.MemberDoc(t.Name, method); strings.TrimSpace(text) != "" {
		return text
	}

	if super, ok := m.index.Superclass(t); ok {
		if text := m.lookup(super, method, seen); text != "" {
			return text
		}
	}

	for _, iface := range m.index.Interfaces(t) {
		if text := m.lookup(iface, method, seen); text != "" {
			return text
		}
	}
	return ""
}

// TypeDoc returns the documentation of the type itself.
func (m *Merger) TypeDoc(t *types.TypeDecl) string {
	if m == nil || t == nil {
		return ""
	}
	return m.source.TypeDoc(t.Name)
}

// FieldDoc returns the documentation of a field declared on t or one of its
// superclasses.
func (m *Merger) FieldDoc(t *types.TypeDecl, field string) string {
	if m == nil || t == nil {
		return ""
	}
	if text := m.source.MemberDoc(t.Name, field); text != "" {
		return text
	}
	for _, ancestor := range m.index.Ancestors(t) {
		if text := m.source.MemberDoc(ancestor.Name, field); text != "" {
			return text
		}
	}
	return ""
}
