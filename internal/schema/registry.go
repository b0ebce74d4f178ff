// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"sort"
	"sync"

	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// Registry stores model definitions by name, remembering which source type
// produced each one.
type Registry struct {
	mu      sync.RWMutex
	models  map[string]*types.Model
	sources map[string]string
}

// NewRegistry creates a new model registry.
func NewRegistry() *Registry {
	return &Registry{
		models:  make(map[string]*types.Model),
		sources: make(map[string]string),
	}
}

// Put stores a model. A model already stored under the same name is
// overwritten; the source it came from is returned when it differs.
func (r *Registry) Put(name, source string, model *types.Model) (replaced string, collided bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.sources[name]; ok && prev != source {
		replaced, collided = prev, true
	}
	r.models[name] = model
	r.sources[name] = source
	return replaced, collided
}

// Get returns a model by name.
func (r *Registry) Get(name string) (*types.Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, ok := r.models[name]
	return model, ok
}

// Has checks if a model exists in the registry.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.models[name]
	return ok
}

// SourceOf returns the source type of a stored model.
func (r *Registry) SourceOf(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, ok := r.sources[name]
	return source, ok
}

// Names returns all model names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of models in the registry.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.models)
}

// Definitions returns the stored models sorted by name.
func (r *Registry) Definitions() types.OrderedMap[*types.Model] {
	defs := types.NewOrderedMap[*types.Model]()
	for _, name := range r.Names() {
		model, _ := r.Get(name)
		defs.Set(name, model)
	}
	return defs
}
