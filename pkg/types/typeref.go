// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"fmt"
	"strings"
)

// TypeRef is a parsed type expression such as "Map<String, List<Pet>>" or
// "Pet[]".
type TypeRef struct {
	// Name is the raw type name as written (qualified or simple)
	Name string

	// Args are the generic type arguments
	Args []TypeRef

	// Elem is the element type when the reference is an array
	Elem *TypeRef
}

// ParseTypeRef parses a type expression.
func ParseTypeRef(expr string) (TypeRef, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return TypeRef{}, fmt.Errorf("empty type expression")
	}

	// wildcards resolve to their bound
	if s == "?" {
		return TypeRef{Name: "java.lang.Object"}, nil
	}
	if strings.HasPrefix(s, "? extends ") {
		return ParseTypeRef(strings.TrimPrefix(s, "? extends "))
	}
	if strings.HasPrefix(s, "? super ") {
		return ParseTypeRef(strings.TrimPrefix(s, "? super "))
	}

	if strings.HasSuffix(s, "...") {
		elem, err := ParseTypeRef(strings.TrimSuffix(s, "..."))
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{Elem: &elem}, nil
	}
	if strings.HasSuffix(s, "[]") {
		elem, err := ParseTypeRef(strings.TrimSuffix(s, "[]"))
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{Elem: &elem}, nil
	}

	start := strings.Index(s, "<")
	if start == -1 {
		if strings.ContainsAny(s, "<>,") {
			return TypeRef{}, fmt.Errorf("malformed type expression %q", expr)
		}
		return TypeRef{Name: s}, nil
	}
	if !strings.HasSuffix(s, ">") {
		return TypeRef{}, fmt.Errorf("malformed type expression %q", expr)
	}

	inner := s[start+1 : len(s)-1]
	if depth := strings.Count(inner, "<") - strings.Count(inner, ">"); depth != 0 {
		return TypeRef{}, fmt.Errorf("unbalanced type arguments in %q", expr)
	}

	ref := TypeRef{Name: strings.TrimSpace(s[:start])}
	for _, part := range splitArgs(inner) {
		arg, err := ParseTypeRef(part)
		if err != nil {
			return TypeRef{}, err
		}
		ref.Args = append(ref.Args, arg)
	}
	return ref, nil
}

// MustParseTypeRef parses a type expression and panics on error.
// Intended for constants and tests.
func MustParseTypeRef(expr string) TypeRef {
	ref, err := ParseTypeRef(expr)
	if err != nil {
		panic(err)
	}
	return ref
}

// IsArray reports whether the reference is an array type.
func (t TypeRef) IsArray() bool {
	return t.Elem != nil
}

// IsZero reports whether the reference is empty.
func (t TypeRef) IsZero() bool {
	return t.Name == "" && t.Elem == nil
}

// SimpleName returns the unqualified raw name.
func (t TypeRef) SimpleName() string {
	return SimpleName(t.Name)
}

// Arg returns the i-th type argument, or the zero reference.
func (t TypeRef) Arg(i int) TypeRef {
	if i < 0 || i >= len(t.Args) {
		return TypeRef{}
	}
	return t.Args[i]
}

// String renders the reference in canonical form. It is used as the
// identity of a type in skip-sets and caches.
func (t TypeRef) String() string {
	if t.Elem != nil {
		return t.Elem.String() + "[]"
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name + "<" + strings.Join(args, ",") + ">"
}

// splitArgs splits a type argument list on top-level commas. Parts are
// trimmed; empty parts are dropped.
func splitArgs(s string) []string {
	var parts []string
	var current strings.Builder
	depth := 0

	flush := func() {
		if p := strings.TrimSpace(current.String()); p != "" {
			parts = append(parts, p)
		}
		current.Reset()
	}

	for _, ch := range s {
		switch {
		case ch == '<':
			depth++
			current.WriteRune(ch)
		case ch == '>':
			depth--
			current.WriteRune(ch)
		case ch == ',' && depth == 0:
			flush()
		default:
			current.WriteRune(ch)
		}
	}
	flush()

	return parts
}
