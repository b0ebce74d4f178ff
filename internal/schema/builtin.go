// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"strings"

	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

type scalar struct {
	typ    string
	format string
}

// scalars maps well-known JVM value types, by simple name, to their
// property type and format.
var scalars = map[string]scalar{
	"String":         {"string", ""},
	"CharSequence":   {"string", ""},
	"char":           {"string", ""},
	"Character":      {"string", ""},
	"UUID":           {"string", "uuid"},
	"URI":            {"string", "uri"},
	"URL":            {"string", "url"},
	"int":            {"integer", "int32"},
	"Integer":        {"integer", "int32"},
	"short":          {"integer", "int32"},
	"Short":          {"integer", "int32"},
	"byte":           {"integer", "int32"},
	"Byte":           {"integer", "int32"},
	"long":           {"integer", "int64"},
	"Long":           {"integer", "int64"},
	"BigInteger":     {"integer", ""},
	"AtomicInteger":  {"integer", "int32"},
	"AtomicLong":     {"integer", "int64"},
	"float":          {"number", "float"},
	"Float":          {"number", "float"},
	"double":         {"number", "double"},
	"Double":         {"number", "double"},
	"BigDecimal":     {"number", ""},
	"Number":         {"number", ""},
	"boolean":        {"boolean", ""},
	"Boolean":        {"boolean", ""},
	"AtomicBoolean":  {"boolean", ""},
	"Date":           {"string", "date-time"},
	"Timestamp":      {"string", "date-time"},
	"Calendar":       {"string", "date-time"},
	"Instant":        {"string", "date-time"},
	"LocalDateTime":  {"string", "date-time"},
	"OffsetDateTime": {"string", "date-time"},
	"ZonedDateTime":  {"string", "date-time"},
	"DateTime":       {"string", "date-time"},
	"LocalDate":      {"string", "date"},
	"LocalTime":      {"string", "partial-time"},
	"MultipartFile":  {"file", ""},
	"Part":           {"file", ""},
	"File":           {"file", ""},
	"InputStream":    {"file", ""},
	"Resource":       {"file", ""},
	"Object":         {"object", ""},
	"string":         {"string", ""},
	"integer":        {"integer", "int32"},
	"number":         {"number", ""},
	"file":           {"file", ""},
	"JsonNode":       {"object", ""},
	"ObjectNode":     {"object", ""},
}

var collections = map[string]bool{
	"List":          true,
	"ArrayList":     true,
	"LinkedList":    true,
	"Set":           true,
	"HashSet":       true,
	"LinkedHashSet": true,
	"SortedSet":     true,
	"TreeSet":       true,
	"Collection":    true,
	"Iterable":      true,
	"Stream":        true,
	"Flux":          true,
}

var maps = map[string]bool{
	"Map":           true,
	"HashMap":       true,
	"LinkedHashMap": true,
	"TreeMap":       true,
	"SortedMap":     true,
	"MultiValueMap": true,
}

var wrappers = map[string]bool{
	"Optional":          true,
	"Mono":              true,
	"CompletableFuture": true,
	"Future":            true,
	"Callable":          true,
	"DeferredResult":    true,
}

// IsVoid reports whether the type expression denotes no value.
func IsVoid(expr string) bool {
	switch strings.TrimSpace(expr) {
	case "", "void", "Void", "java.lang.Void":
		return true
	}
	return false
}

// isWellKnown reports whether name belongs to a platform package whose
// types are resolved by simple name.
func isWellKnown(name string) bool {
	if !strings.Contains(name, ".") {
		return true
	}
	for _, prefix := range []string{"java.", "javax.", "jakarta.", "org.springframework.", "com.fasterxml.", "org.joda.", "reactor."} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func lookupScalar(ref types.TypeRef) (*types.Property, bool) {
	if !isWellKnown(ref.Name) {
		return nil, false
	}
	s, ok := scalars[ref.SimpleName()]
	if !ok {
		return nil, false
	}
	return &types.Property{Type: s.typ, Format: s.format}, true
}

func isCollection(ref types.TypeRef) bool {
	return isWellKnown(ref.Name) && collections[ref.SimpleName()]
}

func isMap(ref types.TypeRef) bool {
	return isWellKnown(ref.Name) && maps[ref.SimpleName()]
}

func isWrapper(ref types.TypeRef) bool {
	return isWellKnown(ref.Name) && wrappers[ref.SimpleName()]
}

// isByte matches the element type of a binary payload.
func isByte(ref types.TypeRef) bool {
	switch ref.Name {
	case "byte", "Byte", "java.lang.Byte":
		return true
	}
	return false
}
