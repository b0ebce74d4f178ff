// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package doccomment

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadYAML adds the documentation of a YAML doc file to the store. The file
// maps qualified type names to their comment and member comments:
//
//	com.acme.pet.PetController:
//	  comment: Pet operations
//	  members:
//	    getPet: Returns a single pet
func LoadYAML(store *Store, content []byte) error {
	var entries map[string]TypeDocs
	if err := yaml.Unmarshal(content, &entries); err != nil {
		return fmt.Errorf("failed to parse doc file: %w", err)
	}

	for typeName, docs := range entries {
		store.SetType(typeName, docs.Comment)
		for member, text := range docs.Members {
			store.SetMember(typeName, member, text)
		}
	}
	return nil
}
