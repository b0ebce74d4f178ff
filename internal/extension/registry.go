// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package extension

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/littlefisher666/swagger-docgen/internal/params"
)

// ErrUnknownExtension is returned when configuration names an extension
// that is not registered.
var ErrUnknownExtension = errors.New("unknown extension")

// Registry manages named parameter extensions and decorators.
type Registry struct {
	mu         sync.RWMutex
	parameters map[string]params.Extension
	decorators map[string]Decorator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		parameters: make(map[string]params.Extension),
		decorators: make(map[string]Decorator),
	}
}

// Default returns a registry holding the built-in extensions.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegisterParameter("spring", params.SpringExtension)
	r.MustRegisterParameter("bean", params.BeanExtension)
	r.MustRegisterParameter("pageable", PageableExtension)
	r.MustRegisterDecorator(DeprecationNotice())
	r.MustRegisterDecorator(SourceLocation())
	return r
}

// RegisterParameter adds a parameter extension.
// It returns an error if an extension with the same name is already registered.
func (r *Registry) RegisterParameter(name string, ext params.Extension) error {
	if ext == nil {
		return fmt.Errorf("cannot register nil parameter extension")
	}
	if name == "" {
		return fmt.Errorf("extension name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parameters[name]; exists {
		return fmt.Errorf("parameter extension %q is already registered", name)
	}
	r.parameters[name] = ext
	return nil
}

// MustRegisterParameter adds a parameter extension, panicking on error.
func (r *Registry) MustRegisterParameter(name string, ext params.Extension) {
	if err := r.RegisterParameter(name, ext); err != nil {
		panic(fmt.Sprintf("failed to register extension: %v", err))
	}
}

// RegisterDecorator adds a decorator.
// It returns an error if a decorator with the same name is already registered.
func (r *Registry) RegisterDecorator(d Decorator) error {
	if d == nil {
		return fmt.Errorf("cannot register nil decorator")
	}
	name := d.Name()
	if name == "" {
		return fmt.Errorf("decorator name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.decorators[name]; exists {
		return fmt.Errorf("decorator %q is already registered", name)
	}
	r.decorators[name] = d
	return nil
}

// MustRegisterDecorator adds a decorator, panicking on error.
func (r *Registry) MustRegisterDecorator(d Decorator) {
	if err := r.RegisterDecorator(d); err != nil {
		panic(fmt.Sprintf("failed to register decorator: %v", err))
	}
}

// Chain builds the parameter extension chain: the named extensions in the
// given order, followed by the built-in spring and bean extensions.
func (r *Registry) Chain(names []string) ([]params.Extension, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := make([]params.Extension, 0, len(names)+2)
	for _, name := range names {
		ext, ok := r.parameters[name]
		if !ok {
			return nil, fmt.Errorf("%w: parameter extension %q", ErrUnknownExtension, name)
		}
		chain = append(chain, ext)
	}
	return append(chain, params.DefaultChain()...), nil
}

// Decorators returns the named decorators in the given order.
func (r *Registry) Decorators(names []string) ([]Decorator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Decorator, 0, len(names))
	for _, name := range names {
		d, ok := r.decorators[name]
		if !ok {
			return nil, fmt.Errorf("%w: decorator %q", ErrUnknownExtension, name)
		}
		out = append(out, d)
	}
	return out, nil
}

// ParameterNames returns a sorted list of registered parameter extensions.
func (r *Registry) ParameterNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.parameters))
	for name := range r.parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DecoratorNames returns a sorted list of registered decorators.
func (r *Registry) DecoratorNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.decorators))
	for name := range r.decorators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
