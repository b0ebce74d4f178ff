// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package params turns formal parameters and their markers into document
// parameters through an ordered chain of extensions.
package params

import (
	"github.com/littlefisher666/swagger-docgen/internal/descriptor"
	"github.com/littlefisher666/swagger-docgen/internal/introspect"
	"github.com/littlefisher666/swagger-docgen/internal/logging"
	"github.com/littlefisher666/swagger-docgen/internal/schema"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// Input is one parameter to resolve.
type Input struct {
	// Type is the parameter type expression
	Type string

	// Name is the source-level name, used when no marker names the parameter
	Name string

	// Markers are the metadata markers on the parameter
	Markers []types.ParamMarker

	// Skip holds the types excluded from expansion
	Skip SkipSet
}

// Marker returns the first marker of the given kind.
func (in Input) Marker(kind types.MarkerKind) (types.ParamMarker, bool) {
	for _, m := range in.Markers {
		if m.Kind == kind {
			return m, true
		}
	}
	return types.ParamMarker{}, false
}

// Extension resolves the parameters of an input. ok reports whether the
// extension claimed the input; the first claiming extension ends the chain.
type Extension func(r *Resolver, in Input) (params []*types.Parameter, ok bool)

// Resolver resolves method parameters.
type Resolver struct {
	schema       *schema.Resolver
	index        *descriptor.Index
	introspector *introspect.Introspector
	chain        []Extension
	logger       logging.Logger
}

// NewResolver creates a Resolver consulting chain in order.
func NewResolver(schemaResolver *schema.Resolver, index *descriptor.Index, chain []Extension, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Resolver{
		schema:       schemaResolver,
		index:        index,
		introspector: introspect.New(index),
		chain:        chain,
		logger:       logger,
	}
}

// Schema returns the schema resolver parameters are typed with.
func (r *Resolver) Schema() *schema.Resolver {
	return r.schema
}

// Resolve returns the parameters for in. An input without a recognized
// marker, or with a hidden marker, yields nothing.
func (r *Resolver) Resolve(in Input) []*types.Parameter {
	if !hasRecognizedMarker(in.Markers) || isHidden(in.Markers) {
		return nil
	}

	var params []*types.Parameter
	for _, ext := range r.chain {
		if out, ok := ext(r, in); ok {
			params = out
			break
		}
	}

	if len(params) > 0 {
		for _, p := range params {
			refine(p, in, len(params) == 1)
		}
		return params
	}

	if in.Skip.Has(r.Key(in.Type)) {
		return nil
	}
	if body := r.bodyFallback(in); body != nil {
		return []*types.Parameter{body}
	}
	return nil
}

// bodyFallback documents an input described only by a param marker as the
// request body.
func (r *Resolver) bodyFallback(in Input) *types.Parameter {
	if _, ok := in.Marker(types.MarkerParam); !ok {
		return nil
	}
	prop := r.schema.Property(in.Type)
	if prop == nil {
		return nil
	}
	p := &types.Parameter{Name: "body", In: types.InBody, Schema: prop}
	refine(p, in, true)
	return p
}

// Expand resolves the members of a composite type. The type is added to a
// copy of skip before its members are resolved.
func (r *Resolver) Expand(typeExpr string, skip SkipSet) []*types.Parameter {
	ref, err := types.ParseTypeRef(typeExpr)
	if err != nil {
		r.logger.Warn("cannot expand unparseable type", "type", typeExpr, "error", err)
		return nil
	}
	ref = r.schema.Substitute(ref)
	decl, ok := r.index.Lookup(ref.Name)
	if !ok {
		r.logger.Warn("cannot expand unknown type", "type", typeExpr)
		return nil
	}

	ref.Name = decl.Name
	inner := skip.With(r.keyRef(ref).String())
	var out []*types.Parameter
	for _, member := range r.introspector.MembersOf(decl, ref) {
		if member.Property != nil && member.Property.Hidden {
			continue
		}
		markers := member.Markers
		if member.Kind == introspect.KindField && !hasRecognizedMarker(markers) {
			markers = append(append([]types.ParamMarker(nil), markers...), r.implicitMarker(member))
		}
		out = append(out, r.Resolve(Input{
			Type:    member.Type,
			Name:    member.Name,
			Markers: markers,
			Skip:    inner,
		})...)
	}
	return out
}

// implicitMarker binds an unmarked field: simple values travel in the query
// string, composite values are expanded in turn.
func (r *Resolver) implicitMarker(member introspect.Member) types.ParamMarker {
	required := false
	if member.Property != nil && member.Property.Required {
		required = true
	}
	m := types.ParamMarker{Kind: types.MarkerModel, Name: member.Name}
	if r.schema.IsSimple(member.Type) {
		m = types.ParamMarker{Kind: types.MarkerQuery, Name: member.Name, Required: &required}
	}
	if member.Property != nil {
		m.Description = member.Property.Description
		m.Example = member.Property.Example
	}
	return m
}

// Key is the skip-set identity of a type expression: the substituted type
// with every name replaced by the qualified name of its declaration, so
// "Node" and "com.acme.Node" share one key. Names missing from the index
// are kept as written.
func (r *Resolver) Key(expr string) string {
	ref, err := types.ParseTypeRef(expr)
	if err != nil {
		return expr
	}
	return r.keyRef(r.schema.Substitute(ref)).String()
}

func (r *Resolver) keyRef(ref types.TypeRef) types.TypeRef {
	if ref.Elem != nil {
		elem := r.keyRef(*ref.Elem)
		return types.TypeRef{Elem: &elem}
	}
	out := types.TypeRef{Name: ref.Name}
	if decl, ok := r.index.Lookup(ref.Name); ok {
		out.Name = decl.Name
	}
	for _, arg := range ref.Args {
		out.Args = append(out.Args, r.keyRef(arg))
	}
	return out
}

// refine applies the param marker of in to a resolved parameter. The name
// is only taken over when the input resolved to a single parameter.
func refine(p *types.Parameter, in Input, single bool) {
	m, ok := in.Marker(types.MarkerParam)
	if !ok {
		return
	}
	if single && m.Name != "" {
		p.Name = m.Name
	}
	if m.Description != "" {
		p.Description = m.Description
	}
	if m.Required != nil {
		p.Required = *m.Required
	}
	if p.In == types.InPath {
		p.Required = true
	}
	if m.DefaultValue != "" {
		p.Default = m.DefaultValue
	}
	if len(m.AllowableValues) > 0 {
		p.Enum = append([]string(nil), m.AllowableValues...)
	}
	if m.Example != "" {
		p.Example = m.Example
	}
}

var recognized = map[types.MarkerKind]bool{
	types.MarkerPath:   true,
	types.MarkerQuery:  true,
	types.MarkerHeader: true,
	types.MarkerCookie: true,
	types.MarkerForm:   true,
	types.MarkerPart:   true,
	types.MarkerBody:   true,
	types.MarkerBean:   true,
	types.MarkerModel:  true,
	types.MarkerParam:  true,
}

func hasRecognizedMarker(markers []types.ParamMarker) bool {
	for _, m := range markers {
		if recognized[m.Kind] {
			return true
		}
	}
	return false
}

func isHidden(markers []types.ParamMarker) bool {
	for _, m := range markers {
		if m.Hidden {
			return true
		}
	}
	return false
}
