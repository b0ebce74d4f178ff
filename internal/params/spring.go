// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package params

import (
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// locations maps request-binding markers to parameter locations.
var locations = map[types.MarkerKind]string{
	types.MarkerPath:   types.InPath,
	types.MarkerQuery:  types.InQuery,
	types.MarkerHeader: types.InHeader,
	types.MarkerCookie: types.InCookie,
	types.MarkerForm:   types.InFormData,
	types.MarkerPart:   types.InFormData,
	types.MarkerBody:   types.InBody,
}

// SpringExtension resolves request-binding markers: path variables, request
// params, headers, cookies, form fields, multipart parts and request bodies.
func SpringExtension(r *Resolver, in Input) ([]*types.Parameter, bool) {
	for _, m := range in.Markers {
		location, ok := locations[m.Kind]
		if !ok {
			continue
		}
		if location == types.InBody {
			return []*types.Parameter{r.bodyParameter(m, in)}, true
		}
		return []*types.Parameter{r.valueParameter(m, location, in)}, true
	}
	return nil, false
}

func (r *Resolver) bodyParameter(m types.ParamMarker, in Input) *types.Parameter {
	name := m.Name
	if name == "" {
		name = "body"
	}
	prop := r.schema.Property(in.Type)
	if prop == nil {
		prop = &types.Property{Type: "object"}
	}
	p := &types.Parameter{
		Name:        name,
		In:          types.InBody,
		Description: m.Description,
		Required:    true,
		Schema:      prop,
	}
	if m.Required != nil {
		p.Required = *m.Required
	}
	return p
}

func (r *Resolver) valueParameter(m types.ParamMarker, location string, in Input) *types.Parameter {
	name := m.Name
	if name == "" {
		name = in.Name
	}
	p := &types.Parameter{
		Name:        name,
		In:          location,
		Description: m.Description,
		Required:    m.DefaultValue == "",
	}
	if m.Required != nil {
		p.Required = *m.Required
	}
	if location == types.InPath {
		p.Required = true
	}

	ApplyType(p, r.schema.Property(in.Type))

	if m.DefaultValue != "" {
		p.Default = m.DefaultValue
	}
	if len(m.AllowableValues) > 0 {
		p.Enum = append([]string(nil), m.AllowableValues...)
	}
	if m.Example != "" {
		p.Example = m.Example
	}
	return p
}

// ApplyType copies the shape of prop onto a non-body parameter. Models and
// maps cannot travel outside the body and are documented as strings.
func ApplyType(p *types.Parameter, prop *types.Property) {
	switch {
	case prop == nil || prop.Ref != "" || prop.Type == "object" || prop.Type == "":
		p.Type = "string"
	case prop.Type == "array":
		p.Type = "array"
		p.Items = itemType(prop.Items)
		if p.In == types.InQuery || p.In == types.InFormData {
			p.CollectionFormat = "multi"
		}
	default:
		p.Type = prop.Type
		p.Format = prop.Format
		if len(prop.Enum) > 0 {
			p.Enum = append([]string(nil), prop.Enum...)
		}
	}
}

func itemType(prop *types.Property) *types.Property {
	if prop == nil || prop.Ref != "" || prop.Type == "object" || prop.Type == "array" || prop.Type == "" {
		return &types.Property{Type: "string"}
	}
	return &types.Property{Type: prop.Type, Format: prop.Format, Enum: prop.Enum}
}
