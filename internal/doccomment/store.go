// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package doccomment collects free-text documentation for types and their
// members and resolves it along the inheritance chain.
package doccomment

import "strings"

// Source provides comment text keyed by qualified type name and member name.
type Source interface {
	// TypeDoc returns the comment of the type itself.
	TypeDoc(typeName string) string

	// MemberDoc returns the comment of a method or field of the type.
	MemberDoc(typeName, member string) string
}

// TypeDocs is the documentation collected for one type.
type TypeDocs struct {
	Comment string            `yaml:"comment,omitempty"`
	Members map[string]string `yaml:"members,omitempty"`
}

// Store is an in-memory Source. It is filled once per run and read-only
// afterwards.
type Store struct {
	types map[string]*TypeDocs
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{types: make(map[string]*TypeDocs)}
}

// SetType records the comment of a type. Blank text is ignored and an
// existing comment is kept.
func (s *Store) SetType(typeName, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	docs := s.entry(typeName)
	if docs.Comment == "" {
		docs.Comment = text
	}
}

// SetMember records the comment of a member. For overloaded members the
// first non-blank comment is kept.
func (s *Store) SetMember(typeName, member, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	docs := s.entry(typeName)
	if _, ok := docs.Members[member]; !ok {
		docs.Members[member] = text
	}
}

func (s *Store) entry(typeName string) *TypeDocs {
	docs, ok := s.types[typeName]
	if !ok {
		docs = &TypeDocs{Members: make(map[string]string)}
		s.types[typeName] = docs
	}
	if docs.Members == nil {
		docs.Members = make(map[string]string)
	}
	return docs
}

// TypeDoc implements Source.
func (s *Store) TypeDoc(typeName string) string {
	if docs, ok := s.types[typeName]; ok {
		return docs.Comment
	}
	return ""
}

// MemberDoc implements Source.
func (s *Store) MemberDoc(typeName, member string) string {
	if docs, ok := s.types[typeName]; ok {
		return docs.Members[member]
	}
	return ""
}

// Len returns the number of documented types.
func (s *Store) Len() int {
	return len(s.types)
}

var _ Source = (*Store)(nil)
