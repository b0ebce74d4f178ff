// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package extension

import (
	"strings"

	"github.com/littlefisher666/swagger-docgen/internal/params"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// PageableExtension documents a Spring Data Pageable parameter as its
// page, size and sort query parameters.
func PageableExtension(_ *params.Resolver, in params.Input) ([]*types.Parameter, bool) {
	ref, err := types.ParseTypeRef(in.Type)
	if err != nil || ref.SimpleName() != "Pageable" {
		return nil, false
	}
	if strings.Contains(ref.Name, ".") && !strings.HasPrefix(ref.Name, "org.springframework.data.") {
		return nil, false
	}

	return []*types.Parameter{
		{Name: "page", In: types.InQuery, Type: "integer", Format: "int32", Description: "Zero-based page index"},
		{Name: "size", In: types.InQuery, Type: "integer", Format: "int32", Description: "Page size"},
		{
			Name:             "sort",
			In:               types.InQuery,
			Type:             "array",
			Items:            &types.Property{Type: "string"},
			CollectionFormat: "multi",
			Description:      "Sort criteria in the format property(,asc|desc)",
		},
	}, true
}

// DeprecationNotice prefixes the description of deprecated operations.
func DeprecationNotice() Decorator {
	return DecoratorFunc{
		ID: "deprecation-notice",
		Fn: func(op *types.Operation, _ Target) {
			if !op.Deprecated || strings.HasPrefix(op.Description, "Deprecated") {
				return
			}
			if op.Description == "" {
				op.Description = "Deprecated."
				return
			}
			op.Description = "Deprecated. " + op.Description
		},
	}
}

// SourceLocation records the declaring type and method as the
// x-source vendor extension.
func SourceLocation() Decorator {
	return DecoratorFunc{
		ID: "source-location",
		Fn: func(op *types.Operation, target Target) {
			if target.Type == nil || target.Method == nil {
				return
			}
			if op.Extensions == nil {
				op.Extensions = make(map[string]interface{})
			}
			op.Extensions["x-source"] = target.Type.Name + "#" + target.Method.Name
		},
	}
}
