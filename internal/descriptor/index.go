// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package descriptor

import (
	"errors"
	"sort"
	"strings"

	"github.com/littlefisher666/swagger-docgen/internal/logging"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// ErrDuplicateType is logged, never returned, when two declarations share
// a qualified name.
var ErrDuplicateType = errors.New("duplicate type declaration")

// rootTypes terminate ancestor walks.
var rootTypes = map[string]bool{
	"":                 true,
	"Object":           true,
	"java.lang.Object": true,
}

// Index looks up declarations by qualified or unambiguous simple name.
type Index struct {
	byName   map[string]*types.TypeDecl
	bySimple map[string][]*types.TypeDecl
	names    []string
}

// NewIndex indexes decls. When two declarations share a name the later
// one wins and a warning is logged.
func NewIndex(decls []types.TypeDecl, logger logging.Logger) *Index {
	if logger == nil {
		logger = logging.NopLogger{}
	}

	idx := &Index{
		byName:   make(map[string]*types.TypeDecl, len(decls)),
		bySimple: make(map[string][]*types.TypeDecl),
	}

	for i := range decls {
		decl := &decls[i]
		if _, dup := idx.byName[decl.Name]; dup {
			logger.Warn("keeping the last declaration", "type", decl.Name, "error", ErrDuplicateType)
		}
		idx.byName[decl.Name] = decl
	}

	for name, decl := range idx.byName {
		idx.names = append(idx.names, name)
		simple := decl.SimpleName()
		idx.bySimple[simple] = append(idx.bySimple[simple], decl)
	}
	sort.Strings(idx.names)

	return idx
}

// Lookup finds a declaration. A simple name resolves only when exactly one
// declaration carries it.
func (i *Index) Lookup(name string) (*types.TypeDecl, bool) {
	name = strings.TrimSpace(name)
	if decl, ok := i.byName[name]; ok {
		return decl, true
	}
	if strings.Contains(name, ".") {
		return nil, false
	}
	if decls := i.bySimple[name]; len(decls) == 1 {
		return decls[0], true
	}
	return nil, false
}

// Types returns all declarations sorted by name.
func (i *Index) Types() []*types.TypeDecl {
	out := make([]*types.TypeDecl, 0, len(i.names))
	for _, name := range i.names {
		out = append(out, i.byName[name])
	}
	return out
}

// Len returns the number of indexed declarations.
func (i *Index) Len() int {
	return len(i.names)
}

// Superclass returns the indexed superclass of t.
func (i *Index) Superclass(t *types.TypeDecl) (*types.TypeDecl, bool) {
	if rootTypes[t.Superclass] {
		return nil, false
	}
	return i.Lookup(baseName(t.Superclass))
}

// Interfaces returns the indexed direct interfaces of t, in declaration order.
func (i *Index) Interfaces(t *types.TypeDecl) []*types.TypeDecl {
	var out []*types.TypeDecl
	for _, name := range t.Interfaces {
		if decl, ok := i.Lookup(baseName(name)); ok {
			out = append(out, decl)
		}
	}
	return out
}

// Ancestors returns the superclass chain of t, nearest first.
func (i *Index) Ancestors(t *types.TypeDecl) []*types.TypeDecl {
	var chain []*types.TypeDecl
	seen := map[string]bool{t.Name: true}
	for cur := t; ; {
		super, ok := i.Superclass(cur)
		if !ok || seen[super.Name] {
			return chain
		}
		seen[super.Name] = true
		chain = append(chain, super)
		cur = super
	}
}

// Supertypes returns every indexed supertype of t (superclasses and
// interfaces, transitively) in breadth-first order, superclass before
// interfaces at each level. t itself is not included.
func (i *Index) Supertypes(t *types.TypeDecl) []*types.TypeDecl {
	var out []*types.TypeDecl
	seen := map[string]bool{t.Name: true}
	queue := []*types.TypeDecl{t}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		var supers []*types.TypeDecl
		if super, ok := i.Superclass(cur); ok {
			supers = append(supers, super)
		}
		supers = append(supers, i.Interfaces(cur)...)

		for _, s := range supers {
			if seen[s.Name] {
				continue
			}
			seen[s.Name] = true
			out = append(out, s)
			queue = append(queue, s)
		}
	}
	return out
}

// Inherits reports whether any supertype of t satisfies pred. t itself is
// not tested.
func (i *Index) Inherits(t *types.TypeDecl, pred func(*types.TypeDecl) bool) bool {
	for _, s := range i.Supertypes(t) {
		if pred(s) {
			return true
		}
	}
	return false
}

// baseName strips generic arguments from a type expression.
func baseName(expr string) string {
	if i := strings.Index(expr, "<"); i >= 0 {
		return strings.TrimSpace(expr[:i])
	}
	return strings.TrimSpace(expr)
}
