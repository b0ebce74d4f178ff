// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package params

import (
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// implicitLocations are the accepted locations of implicit parameters.
var implicitLocations = map[string]string{
	"path":     types.InPath,
	"query":    types.InQuery,
	"header":   types.InHeader,
	"form":     types.InFormData,
	"formData": types.InFormData,
	"body":     types.InBody,
}

// Implicit resolves a parameter declared on the method rather than on a
// formal parameter. ok is false for unsupported locations.
func (r *Resolver) Implicit(ip types.ImplicitParam) (*types.Parameter, bool) {
	location, ok := implicitLocations[ip.In]
	if !ok || ip.Name == "" {
		return nil, false
	}

	dataType := ip.DataType
	if dataType == "" {
		dataType = "string"
	}

	p := &types.Parameter{
		Name:        ip.Name,
		In:          location,
		Description: ip.Description,
		Required:    ip.Required || location == types.InPath,
	}

	if location == types.InBody {
		p.Schema = r.schema.Property(dataType)
		if p.Schema == nil {
			p.Schema = &types.Property{Type: "object"}
		}
		return p, true
	}

	prop := r.schema.Property(dataType)
	if ip.AllowMultiple && !prop.IsArray() {
		prop = &types.Property{Type: "array", Items: prop}
	}
	ApplyType(p, prop)

	if ip.DefaultValue != "" {
		p.Default = ip.DefaultValue
	}
	if len(ip.AllowableValues) > 0 {
		if p.Type == "array" {
			p.Items.Enum = append([]string(nil), ip.AllowableValues...)
		} else {
			p.Enum = append([]string(nil), ip.AllowableValues...)
		}
	}
	return p, true
}
