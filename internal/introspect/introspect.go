// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package introspect enumerates the members of a declared type that can
// carry parameter or property metadata.
package introspect

import (
	"strings"

	"github.com/littlefisher666/swagger-docgen/internal/descriptor"
	"github.com/littlefisher666/swagger-docgen/internal/util"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// MemberKind tells where a member was found.
type MemberKind string

// Member kinds.
const (
	KindField       MemberKind = "field"
	KindSetter      MemberKind = "setter"
	KindConstructor MemberKind = "constructor"
)

// Member is one introspected member with its metadata markers.
type Member struct {
	// Name is the property name the member contributes
	Name string

	// Type is the member type expression, with type parameters bound
	Type string

	// Kind is the member kind
	Kind MemberKind

	// Owner is the declaring type
	Owner *types.TypeDecl

	// Markers are the metadata markers on the member
	Markers []types.ParamMarker

	// Property is the property marker of a field, if any
	Property *types.PropertyMarker
}

// Introspector extracts members from declared types.
type Introspector struct {
	index *descriptor.Index
}

// New creates an Introspector resolving ancestors through index.
func New(index *descriptor.Index) *Introspector {
	return &Introspector{index: index}
}

// Members returns the members of t: non-static fields, then single-argument
// void methods, then constructor parameters. Each kind is taken from the
// superclass chain ancestor-first, derived last. Within a type the
// declaration order is kept, so the result is stable for the same input.
func (in *Introspector) Members(t *types.TypeDecl) []Member {
	return in.MembersOf(t, types.TypeRef{Name: t.Name})
}

// MembersOf is Members for a concrete instantiation of t: type parameters of
// t are replaced by the arguments of ref.
func (in *Introspector) MembersOf(t *types.TypeDecl, ref types.TypeRef) []Member {
	bindings := Bindings(t, ref)
	chain := in.chain(t)

	var members []Member
	for _, decl := range chain {
		for _, f := range decl.Fields {
			if f.Static {
				continue
			}
			members = append(members, Member{
				Name:     f.Name,
				Type:     Bind(f.Type, bindings),
				Kind:     KindField,
				Owner:    decl,
				Markers:  f.Markers,
				Property: f.Property,
			})
		}
	}

	for _, decl := range chain {
		for _, m := range decl.Methods {
			if !isSetter(m) {
				continue
			}
			p := m.Params[0]
			members = append(members, Member{
				Name:    propertyName(m.Name),
				Type:    Bind(p.Type, bindings),
				Kind:    KindSetter,
				Owner:   decl,
				Markers: p.Markers,
			})
		}
	}

	for _, decl := range chain {
		for _, c := range decl.Constructors {
			for _, p := range c.Params {
				members = append(members, Member{
					Name:    p.Name,
					Type:    Bind(p.Type, bindings),
					Kind:    KindConstructor,
					Owner:   decl,
					Markers: p.Markers,
				})
			}
		}
	}

	return members
}

// chain returns the superclass chain of t, root first, ending with t.
func (in *Introspector) chain(t *types.TypeDecl) []*types.TypeDecl {
	ancestors := in.index.Ancestors(t)
	chain := make([]*types.TypeDecl, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		chain = append(chain, ancestors[i])
	}
	return append(chain, t)
}

func isSetter(m types.MethodDecl) bool {
	if m.Synthetic || len(m.Params) != 1 {
		return false
	}
	return m.Returns == "" || m.Returns == "void"
}

// propertyName derives the property name of a setter ("setOwnerId" ->
// "ownerId"). Other names are kept as-is.
func propertyName(method string) string {
	if len(method) > 3 && strings.HasPrefix(method, "set") {
		return util.ToLowerCamelCase(method[3:])
	}
	return method
}

// Bindings maps the type parameters of t to the arguments of ref.
func Bindings(t *types.TypeDecl, ref types.TypeRef) map[string]types.TypeRef {
	if len(t.TypeParams) == 0 || len(ref.Args) == 0 {
		return nil
	}
	bindings := make(map[string]types.TypeRef, len(t.TypeParams))
	for i, name := range t.TypeParams {
		if i < len(ref.Args) {
			bindings[name] = ref.Args[i]
		}
	}
	return bindings
}

// Bind replaces bound type variables in a type expression. Expressions
// that do not parse are returned unchanged.
func Bind(expr string, bindings map[string]types.TypeRef) string {
	if len(bindings) == 0 {
		return expr
	}
	ref, err := types.ParseTypeRef(expr)
	if err != nil {
		return expr
	}
	return BindRef(ref, bindings).String()
}

// BindRef replaces bound type variables in ref.
func BindRef(ref types.TypeRef, bindings map[string]types.TypeRef) types.TypeRef {
	if len(bindings) == 0 {
		return ref
	}
	if ref.Elem != nil {
		elem := BindRef(*ref.Elem, bindings)
		return types.TypeRef{Elem: &elem}
	}
	if bound, ok := bindings[ref.Name]; ok && len(ref.Args) == 0 {
		return bound
	}
	out := types.TypeRef{Name: ref.Name}
	for _, arg := range ref.Args {
		out.Args = append(out.Args, BindRef(arg, bindings))
	}
	return out
}
