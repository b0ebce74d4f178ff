// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package schema resolves declared types into properties and reusable
// model definitions.
package schema

import (
	"strings"

	"github.com/littlefisher666/swagger-docgen/internal/descriptor"
	"github.com/littlefisher666/swagger-docgen/internal/doccomment"
	"github.com/littlefisher666/swagger-docgen/internal/introspect"
	"github.com/littlefisher666/swagger-docgen/internal/logging"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// Options configures a Resolver.
type Options struct {
	// Substitutions replace a type by another before resolution
	Substitutions map[string]string

	// AccessExclusions are property access levels left out of models
	AccessExclusions []string

	// Docs enriches models and properties with doc comments; may be nil
	Docs *doccomment.Merger

	// Logger receives per-type warnings
	Logger logging.Logger
}

// Resolver turns type expressions into properties, registering a model
// definition for every composite type it meets.
type Resolver struct {
	index        *descriptor.Index
	registry     *Registry
	introspector *introspect.Introspector
	opts         Options
	logger       logging.Logger

	resolving map[string]bool
	built     map[string]bool
	unknown   map[string]bool
}

// NewResolver creates a Resolver writing models into registry.
func NewResolver(index *descriptor.Index, registry *Registry, opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Resolver{
		index:        index,
		registry:     registry,
		introspector: introspect.New(index),
		opts:         opts,
		logger:       logger,
		resolving:    make(map[string]bool),
		built:        make(map[string]bool),
		unknown:      make(map[string]bool),
	}
}

// Registry returns the registry models are written to.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Property resolves a type expression. It returns nil for void types. An
// expression that does not parse resolves to a plain object.
func (r *Resolver) Property(expr string) *types.Property {
	if IsVoid(expr) {
		return nil
	}
	ref, err := types.ParseTypeRef(expr)
	if err != nil {
		r.logger.Warn("unparseable type expression", "type", expr, "error", err)
		return &types.Property{Type: "object"}
	}
	return r.PropertyRef(ref)
}

// PropertyRef resolves a parsed type reference.
func (r *Resolver) PropertyRef(ref types.TypeRef) *types.Property {
	ref = r.Substitute(ref)

	if ref.Elem != nil {
		if isByte(*ref.Elem) {
			return &types.Property{Type: "string", Format: "byte"}
		}
		return &types.Property{Type: "array", Items: r.itemsOf(*ref.Elem)}
	}
	if IsVoid(ref.Name) {
		return nil
	}

	if decl, ok := r.lookupQualified(ref.Name); ok {
		return r.declProperty(decl, ref)
	}

	switch {
	case isCollection(ref):
		return &types.Property{Type: "array", Items: r.itemsOf(ref.Arg(0))}
	case isMap(ref):
		return &types.Property{Type: "object", AdditionalProperties: r.itemsOf(ref.Arg(1))}
	case isWrapper(ref):
		if len(ref.Args) == 0 {
			return &types.Property{Type: "object"}
		}
		return r.PropertyRef(ref.Args[0])
	}

	if prop, ok := lookupScalar(ref); ok {
		return prop
	}

	if decl, ok := r.index.Lookup(ref.Name); ok {
		return r.declProperty(decl, ref)
	}

	if !r.unknown[ref.Name] {
		r.unknown[ref.Name] = true
		r.logger.Warn("unknown type, documenting as object", "type", ref.Name)
	}
	return &types.Property{Type: "object"}
}

// itemsOf resolves an element type. A missing or void element is an object.
func (r *Resolver) itemsOf(ref types.TypeRef) *types.Property {
	if ref.IsZero() {
		return &types.Property{Type: "object"}
	}
	if prop := r.PropertyRef(ref); prop != nil {
		return prop
	}
	return &types.Property{Type: "object"}
}

// Substitute applies the configured model substitutions to ref.
func (r *Resolver) Substitute(ref types.TypeRef) types.TypeRef {
	if len(r.opts.Substitutions) == 0 || ref.Elem != nil {
		return ref
	}
	to, ok := r.opts.Substitutions[ref.Name]
	if !ok {
		return ref
	}
	sub, err := types.ParseTypeRef(to)
	if err != nil {
		r.logger.Warn("invalid model substitution", "from", ref.Name, "to", to, "error", err)
		return ref
	}
	return sub
}

// IsSimple reports whether a type expression is a scalar, an enum, or a
// collection of those. Simple types can travel in a query string.
func (r *Resolver) IsSimple(expr string) bool {
	ref, err := types.ParseTypeRef(expr)
	if err != nil {
		return false
	}
	return r.isSimpleRef(ref)
}

func (r *Resolver) isSimpleRef(ref types.TypeRef) bool {
	ref = r.Substitute(ref)
	if ref.Elem != nil {
		return r.isSimpleRef(*ref.Elem)
	}
	if decl, ok := r.lookupQualified(ref.Name); ok {
		return decl.Kind == types.KindEnum
	}
	switch {
	case isCollection(ref), isWrapper(ref):
		return len(ref.Args) == 1 && r.isSimpleRef(ref.Args[0])
	case isMap(ref):
		return false
	}
	if prop, ok := lookupScalar(ref); ok {
		return prop.Type != "object" && prop.Type != "file"
	}
	if decl, ok := r.index.Lookup(ref.Name); ok {
		return decl.Kind == types.KindEnum
	}
	return false
}

// lookupQualified finds declarations named with a package qualifier.
// Platform names are left to the builtin tables.
func (r *Resolver) lookupQualified(name string) (*types.TypeDecl, bool) {
	if !strings.Contains(name, ".") {
		return nil, false
	}
	return r.index.Lookup(name)
}

func (r *Resolver) declProperty(decl *types.TypeDecl, ref types.TypeRef) *types.Property {
	if decl.Kind == types.KindEnum {
		return &types.Property{Type: "string", Enum: append([]string(nil), decl.EnumValues...)}
	}
	name := r.ModelName(decl, ref)
	r.ensureModel(name, decl, ref)
	return types.RefTo(name)
}

// ModelName names the model of a type instantiation: the model marker name
// or the simple name, followed by "Of" and the argument names joined with
// "And" for generic instantiations.
func (r *Resolver) ModelName(decl *types.TypeDecl, ref types.TypeRef) string {
	base := decl.SimpleName()
	if decl.Markers.Model != nil && decl.Markers.Model.Name != "" {
		base = decl.Markers.Model.Name
	}
	if len(ref.Args) == 0 {
		return base
	}
	names := make([]string, 0, len(ref.Args))
	for _, arg := range ref.Args {
		names = append(names, r.argName(arg))
	}
	return base + "Of" + strings.Join(names, "And")
}

func (r *Resolver) argName(ref types.TypeRef) string {
	ref = r.Substitute(ref)
	if ref.Elem != nil {
		return "ArrayOf" + r.argName(*ref.Elem)
	}
	if decl, ok := r.lookupQualified(ref.Name); ok {
		return r.ModelName(decl, ref)
	}
	switch {
	case isCollection(ref):
		return "ListOf" + r.argName(ref.Arg(0))
	case isMap(ref):
		return "MapOf" + r.argName(ref.Arg(1))
	}
	if _, ok := lookupScalar(ref); !ok {
		if decl, ok := r.index.Lookup(ref.Name); ok {
			return r.ModelName(decl, ref)
		}
	}
	name := ref.SimpleName()
	if name == "" {
		return "Object"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// ensureModel builds and registers the model of decl once per run. A type
// already being built yields only its reference, which breaks cycles.
func (r *Resolver) ensureModel(name string, decl *types.TypeDecl, ref types.TypeRef) {
	source := bound(decl, ref)
	if r.resolving[source] || r.built[source] {
		return
	}
	r.resolving[source] = true
	defer delete(r.resolving, source)

	model := r.buildModel(decl, ref)
	r.built[source] = true

	if replaced, collided := r.registry.Put(name, source, model); collided {
		r.logger.Warn("model name collision, keeping the last definition",
			"model", name, "replaced", replaced, "type", source)
	}
}

// bound names a type instantiation by its declaration and arguments.
func bound(decl *types.TypeDecl, ref types.TypeRef) string {
	out := types.TypeRef{Name: decl.Name, Args: ref.Args}
	return out.String()
}

func (r *Resolver) buildModel(decl *types.TypeDecl, ref types.TypeRef) *types.Model {
	model := types.NewModel()
	if decl.Markers.Model != nil {
		model.Description = decl.Markers.Model.Description
	}
	if model.Description == "" {
		model.Description = r.opts.Docs.TypeDoc(decl)
	}

	for _, member := range r.introspector.MembersOf(decl, ref) {
		if member.Kind != introspect.KindField {
			continue
		}
		pm := member.Property
		if pm != nil && pm.Hidden {
			continue
		}
		if r.excluded(pm) {
			continue
		}

		name := member.Name
		if pm != nil && pm.Name != "" {
			name = pm.Name
		}

		prop := r.Property(member.Type)
		if prop == nil {
			continue
		}
		if prop.Ref == "" {
			prop = prop.Clone()
			if pm != nil {
				prop.Description = pm.Description
				prop.ReadOnly = pm.ReadOnly
				if pm.Example != "" {
					prop.Example = pm.Example
				}
			}
			if prop.Description == "" {
				prop.Description = r.opts.Docs.FieldDoc(member.Owner, member.Name)
			}
		}

		model.Properties.Set(name, prop)
		if pm != nil && pm.Required {
			model.Required = append(model.Required, name)
		}
	}

	return model
}

// excluded reports whether a property marker names an excluded access level.
func (r *Resolver) excluded(pm *types.PropertyMarker) bool {
	if pm == nil || pm.Name == "" || pm.Access == "" {
		return false
	}
	for _, access := range r.opts.AccessExclusions {
		if access == pm.Access {
			return true
		}
	}
	return false
}
