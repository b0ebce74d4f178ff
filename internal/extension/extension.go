// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package extension provides the named registry of parameter extensions
// and operation decorators that configuration can select.
package extension

import (
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// Target identifies the declaration an operation was built from.
type Target struct {
	// Type is the declaring endpoint type
	Type *types.TypeDecl

	// Method is the declaring method
	Method *types.MethodDecl

	// Verb is the lower-case HTTP verb
	Verb string

	// Path is the canonical path key
	Path string
}

// Decorator adds to or rewrites a built operation. Decorators run after
// every built-in rule, in configuration order.
type Decorator interface {
	// Name returns the decorator identifier used in configuration.
	Name() string

	// Decorate modifies op in place.
	Decorate(op *types.Operation, target Target)
}

// DecoratorFunc adapts a function to the Decorator interface.
type DecoratorFunc struct {
	ID string
	Fn func(op *types.Operation, target Target)
}

// Name implements Decorator.
func (d DecoratorFunc) Name() string { return d.ID }

// Decorate implements Decorator.
func (d DecoratorFunc) Decorate(op *types.Operation, target Target) { d.Fn(op, target) }
