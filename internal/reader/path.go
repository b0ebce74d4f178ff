// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package reader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedPath is returned for a path template with unbalanced braces
// or an unnamed variable.
var ErrMalformedPath = errors.New("malformed path template")

// ParsePath normalizes a request path template to its canonical key.
// Variables keep only their name ("{id:[0-9]+}" becomes "{id}"); a regex
// constraint is recorded in patterns under the variable name. A blank path
// is "/".
func ParsePath(raw string, patterns map[string]string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "/", nil
	}

	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '}':
			return "", fmt.Errorf("%w: unexpected '}' at offset %d in %q", ErrMalformedPath, i, raw)
		case '{':
			end := closingBrace(raw, i)
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at offset %d in %q", ErrMalformedPath, i, raw)
			}
			name, pattern := splitVariable(raw[i+1 : end])
			if name == "" {
				return "", fmt.Errorf("%w: unnamed variable at offset %d in %q", ErrMalformedPath, i, raw)
			}
			if pattern != "" && patterns != nil {
				patterns[name] = pattern
			}
			b.WriteByte('{')
			b.WriteString(name)
			b.WriteByte('}')
			i = end
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// closingBrace returns the index of the brace closing the one at open.
// Braces inside the regex part ("{2,3}") nest.
func closingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func splitVariable(body string) (name, pattern string) {
	name, pattern, _ = strings.Cut(body, ":")
	return strings.TrimSpace(name), strings.TrimSpace(pattern)
}

// JoinPath appends a method-level path fragment to a base path.
func JoinPath(base, p string) string {
	if strings.HasPrefix(p, "/") {
		return base + p
	}
	return base + "/" + p
}

// normalizeBase trims the trailing slash of a class-level base path.
func normalizeBase(p string) string {
	p = strings.TrimSpace(p)
	for len(p) > 0 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
