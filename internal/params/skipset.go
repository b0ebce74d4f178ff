// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package params

import "sort"

// SkipSet is an immutable set of type names excluded from expansion.
// With returns a new set, so a set handed to one recursive call is never
// changed by a sibling call.
type SkipSet struct {
	types map[string]struct{}
}

// NewSkipSet creates a set holding the given type names.
func NewSkipSet(names ...string) SkipSet {
	s := SkipSet{types: make(map[string]struct{}, len(names))}
	for _, name := range names {
		s.types[name] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set.
func (s SkipSet) Has(name string) bool {
	_, ok := s.types[name]
	return ok
}

// With returns a copy of the set with name added.
func (s SkipSet) With(name string) SkipSet {
	out := SkipSet{types: make(map[string]struct{}, len(s.types)+1)}
	for k := range s.types {
		out.types[k] = struct{}{}
	}
	out.types[name] = struct{}{}
	return out
}

// Len returns the number of names in the set.
func (s SkipSet) Len() int {
	return len(s.types)
}

// Names returns the names in the set, sorted.
func (s SkipSet) Names() []string {
	names := make([]string, 0, len(s.types))
	for k := range s.types {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
