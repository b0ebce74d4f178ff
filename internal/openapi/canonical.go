// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"sort"

	"golang.org/x/text/cases"

	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// Canonicalize orders doc in place: path keys, the responses of every
// operation, definitions and security definitions sort lexicographically,
// tags sort case-insensitively by name. Running it twice changes nothing.
func Canonicalize(doc *types.Document) {
	if doc == nil {
		return
	}

	doc.Paths.Sort()
	doc.Paths.Range(func(_ string, path *types.Path) bool {
		if path == nil {
			return true
		}
		for _, verb := range types.Verbs {
			if op := path.Operation(verb); op != nil {
				op.Responses.Sort()
			}
		}
		return true
	})

	doc.Definitions.Sort()
	doc.SecurityDefinitions.Sort()
	SortTags(doc.Tags)
}

// SortTags sorts tags by case-folded name, breaking ties on the raw name.
func SortTags(tags []types.Tag) {
	fold := cases.Fold()
	sort.SliceStable(tags, func(i, j int) bool {
		a, b := fold.String(tags[i].Name), fold.String(tags[j].Name)
		if a != b {
			return a < b
		}
		return tags[i].Name < tags[j].Name
	})
}
