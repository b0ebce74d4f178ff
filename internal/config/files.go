// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// SubstitutionMap merges inline model substitutions with the substitution
// file. File entries override inline entries for the same source type.
func (c *Config) SubstitutionMap() (map[string]string, error) {
	subs := make(map[string]string, len(c.ModelSubstitutions))
	for _, s := range c.ModelSubstitutions {
		subs[strings.TrimSpace(s.From)] = strings.TrimSpace(s.To)
	}
	if c.ModelSubstitutionFile == "" {
		return subs, nil
	}

	f, err := os.Open(c.ModelSubstitutionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open model substitution file: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanr := bufio.NewScanner(f)
	lineNo := 0
	for scanr.Scan() {
		lineNo++
		line := strings.TrimSpace(scanr.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, &ValidationError{
				Field:   "modelSubstitutionFile",
				Message: fmt.Sprintf("%s:%d: bad format %q, expected actualType:expectedType", c.ModelSubstitutionFile, lineNo, line),
			}
		}
		subs[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if err := scanr.Err(); err != nil {
		return nil, fmt.Errorf("failed to read model substitution file: %w", err)
	}

	return subs, nil
}

// SecuritySchemes builds the security definitions from inline entries and
// the security definition file. For apiKey schemes without a key name the
// definition name is used. Entries of unknown type are skipped and their
// names returned in skipped.
func (c *Config) SecuritySchemes() (schemes types.OrderedMap[*types.SecurityScheme], skipped []string, err error) {
	schemes = types.NewOrderedMap[*types.SecurityScheme]()

	for _, def := range c.SecurityDefinitions {
		scheme := &types.SecurityScheme{
			Type:             def.Type,
			Description:      def.Description,
			In:               def.In,
			Flow:             def.Flow,
			AuthorizationURL: def.AuthorizationURL,
			TokenURL:         def.TokenURL,
			Scopes:           def.Scopes,
		}
		if def.Type == "apiKey" {
			scheme.Name = def.Name
		}
		schemes.Set(def.Name, scheme)
	}

	if c.SecurityDefinitionFile == "" {
		return schemes, nil, nil
	}

	data, err := os.ReadFile(c.SecurityDefinitionFile)
	if err != nil {
		return schemes, nil, fmt.Errorf("failed to read security definition file: %w", err)
	}

	var fromFile types.OrderedMap[*types.SecurityScheme]
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return schemes, nil, fmt.Errorf("failed to parse security definition file: %w", err)
	}

	fromFile.Range(func(name string, scheme *types.SecurityScheme) bool {
		if scheme == nil || !contains(supportedSchemeTypes, scheme.Type) {
			skipped = append(skipped, name)
			return true
		}
		if scheme.Type == "apiKey" && scheme.Name == "" {
			scheme.Name = name
		}
		schemes.Set(name, scheme)
		return true
	})

	return schemes, skipped, nil
}

// Description returns info.description, replaced by the description file
// content when one is configured.
func (c *Config) Description() (string, error) {
	if c.DescriptionFile == "" {
		return c.Info.Description, nil
	}
	data, err := os.ReadFile(c.DescriptionFile)
	if err != nil {
		return "", fmt.Errorf("failed to read description file: %w", err)
	}
	return string(data), nil
}

// APIInfo converts the configured info block to the document form.
func (c *Config) APIInfo() (*types.Info, error) {
	desc, err := c.Description()
	if err != nil {
		return nil, err
	}

	info := &types.Info{
		Title:          c.Info.Title,
		Version:        c.Info.Version,
		Description:    desc,
		TermsOfService: c.Info.TermsOfService,
	}
	if c.Info.Contact != (ContactConfig{}) {
		info.Contact = &types.Contact{
			Name:  c.Info.Contact.Name,
			URL:   c.Info.Contact.URL,
			Email: c.Info.Contact.Email,
		}
	}
	if c.Info.License != (LicenseConfig{}) {
		info.License = &types.License{
			Name: c.Info.License.Name,
			URL:  c.Info.License.URL,
		}
	}
	return info, nil
}
