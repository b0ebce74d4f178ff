// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for docgen.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the docgen configuration.
type Config struct {
	// Info contains API metadata
	Info InfoConfig `mapstructure:"info" yaml:"info" json:"info"`

	// DescriptionFile is a file whose content becomes info.description
	DescriptionFile string `mapstructure:"descriptionFile" yaml:"descriptionFile,omitempty" json:"descriptionFile,omitempty"`

	// Host is the host serving the API
	Host string `mapstructure:"host" yaml:"host,omitempty" json:"host,omitempty"`

	// BasePath is the base path on which the API is served
	BasePath string `mapstructure:"basePath" yaml:"basePath,omitempty" json:"basePath,omitempty"`

	// Schemes is the list of transfer protocols
	Schemes []string `mapstructure:"schemes" yaml:"schemes,omitempty" json:"schemes,omitempty"`

	// RemoveBasePathFromEndpoints strips BasePath from every path key
	RemoveBasePathFromEndpoints bool `mapstructure:"removeBasePathFromEndpoints" yaml:"removeBasePathFromEndpoints" json:"removeBasePathFromEndpoints"`

	// OperationIDFormat is the operationId template
	OperationIDFormat string `mapstructure:"operationIdFormat" yaml:"operationIdFormat" json:"operationIdFormat"`

	// SkipInheritingTypes restricts candidates to types carrying a marker directly
	SkipInheritingTypes bool `mapstructure:"skipInheritingTypes" yaml:"skipInheritingTypes" json:"skipInheritingTypes"`

	// TypesToSkip are types never expanded as parameters
	TypesToSkip []string `mapstructure:"typesToSkip" yaml:"typesToSkip,omitempty" json:"typesToSkip,omitempty"`

	// ModelSubstitutions replace one type with another before modeling
	ModelSubstitutions []Substitution `mapstructure:"modelSubstitutions" yaml:"modelSubstitutions,omitempty" json:"modelSubstitutions,omitempty"`

	// ModelSubstitutionFile holds "from : to" lines
	ModelSubstitutionFile string `mapstructure:"modelSubstitutionFile" yaml:"modelSubstitutionFile,omitempty" json:"modelSubstitutionFile,omitempty"`

	// PropertyAccessExclusions drops model properties with these access values
	PropertyAccessExclusions []string `mapstructure:"propertyAccessExclusions" yaml:"propertyAccessExclusions,omitempty" json:"propertyAccessExclusions,omitempty"`

	// SecurityDefinitions are inline security scheme definitions
	SecurityDefinitions []SecurityDefinitionConfig `mapstructure:"securityDefinitions" yaml:"securityDefinitions,omitempty" json:"securityDefinitions,omitempty"`

	// SecurityDefinitionFile is a JSON file mapping scheme names to schemes
	SecurityDefinitionFile string `mapstructure:"securityDefinitionFile" yaml:"securityDefinitionFile,omitempty" json:"securityDefinitionFile,omitempty"`

	// Extensions selects parameter extensions and operation decorators
	Extensions ExtensionsConfig `mapstructure:"extensions" yaml:"extensions" json:"extensions"`

	// Source contains descriptor discovery configuration
	Source SourceConfig `mapstructure:"source" yaml:"source" json:"source"`

	// Docs contains doc-comment source configuration
	Docs DocsConfig `mapstructure:"docs" yaml:"docs" json:"docs"`

	// Output contains output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// InfoConfig contains API metadata.
type InfoConfig struct {
	// Title is the API title
	Title string `mapstructure:"title" yaml:"title" json:"title"`

	// Description is the API description
	Description string `mapstructure:"description" yaml:"description,omitempty" json:"description,omitempty"`

	// Version is the API version
	Version string `mapstructure:"version" yaml:"version" json:"version"`

	// TermsOfService is the URL to terms of service
	TermsOfService string `mapstructure:"termsOfService" yaml:"termsOfService,omitempty" json:"termsOfService,omitempty"`

	// Contact contains contact information
	Contact ContactConfig `mapstructure:"contact" yaml:"contact,omitempty" json:"contact,omitempty"`

	// License contains license information
	License LicenseConfig `mapstructure:"license" yaml:"license,omitempty" json:"license,omitempty"`
}

// ContactConfig contains contact information.
type ContactConfig struct {
	Name  string `mapstructure:"name" yaml:"name,omitempty" json:"name,omitempty"`
	URL   string `mapstructure:"url" yaml:"url,omitempty" json:"url,omitempty"`
	Email string `mapstructure:"email" yaml:"email,omitempty" json:"email,omitempty"`
}

// LicenseConfig contains license information.
type LicenseConfig struct {
	Name string `mapstructure:"name" yaml:"name,omitempty" json:"name,omitempty"`
	URL  string `mapstructure:"url" yaml:"url,omitempty" json:"url,omitempty"`
}

// Substitution replaces the type From with the type To.
type Substitution struct {
	From string `mapstructure:"from" yaml:"from" json:"from"`
	To   string `mapstructure:"to" yaml:"to" json:"to"`
}

// SecurityDefinitionConfig is an inline security scheme definition.
// Name is both the definition key and, for apiKey schemes, the key name.
type SecurityDefinitionConfig struct {
	Name             string            `mapstructure:"name" yaml:"name" json:"name"`
	Type             string            `mapstructure:"type" yaml:"type" json:"type"`
	In               string            `mapstructure:"in" yaml:"in,omitempty" json:"in,omitempty"`
	Description      string            `mapstructure:"description" yaml:"description,omitempty" json:"description,omitempty"`
	Flow             string            `mapstructure:"flow" yaml:"flow,omitempty" json:"flow,omitempty"`
	AuthorizationURL string            `mapstructure:"authorizationUrl" yaml:"authorizationUrl,omitempty" json:"authorizationUrl,omitempty"`
	TokenURL         string            `mapstructure:"tokenUrl" yaml:"tokenUrl,omitempty" json:"tokenUrl,omitempty"`
	Scopes           map[string]string `mapstructure:"scopes" yaml:"scopes,omitempty" json:"scopes,omitempty"`
}

// ExtensionsConfig selects registered extensions by name, in order.
type ExtensionsConfig struct {
	// Parameters are parameter extensions consulted before the built-in chain
	Parameters []string `mapstructure:"parameters" yaml:"parameters,omitempty" json:"parameters,omitempty"`

	// Decorators run on every operation after the built-in rules
	Decorators []string `mapstructure:"decorators" yaml:"decorators,omitempty" json:"decorators,omitempty"`
}

// SourceConfig contains descriptor discovery configuration.
type SourceConfig struct {
	// Paths is a list of paths to scan
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// DocsConfig contains doc-comment source configuration.
type DocsConfig struct {
	// Enabled turns doc-comment enrichment on
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// Paths is a list of source roots to read doc comments from
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// OutputConfig contains output configuration.
type OutputConfig struct {
	// Dir is the output directory
	Dir string `mapstructure:"dir" yaml:"dir" json:"dir"`

	// FileName is the output file name without extension
	FileName string `mapstructure:"fileName" yaml:"fileName" json:"fileName"`

	// Formats is the list of output formats (json, yaml, openapi3)
	Formats []string `mapstructure:"formats" yaml:"formats" json:"formats"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// DefaultOperationIDFormat names operations after their method.
const DefaultOperationIDFormat = "{{methodName}}"

// operationIDTokens are the placeholders an operationId format may use.
var operationIDTokens = []string{"packageName", "className", "methodName", "httpMethod"}

var tokenRegex = regexp.MustCompile(`\{\{\s*([^}]*?)\s*\}\}`)

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"docgen.yaml",
	"docgen.json",
	".docgen.yaml",
	".docgen.json",
}

// supportedFormats is the list of supported output formats.
var supportedFormats = []string{
	"json",
	"yaml",
	"openapi3",
}

// supportedSchemeTypes is the list of security scheme types.
var supportedSchemeTypes = []string{
	"basic",
	"apiKey",
	"oauth2",
}

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

var defaultSourceInclude = []string{"**/*.docgen.yaml", "**/*.docgen.yml", "**/*.docgen.json"}

var defaultDocsInclude = []string{"**/*.java", "**/*.docs.yaml", "**/*.docs.yml"}

var defaultExclude = []string{
	".git/**",
	"node_modules/**",
	"target/**",
	"build/**",
	"**/testdata/**",
}

// Default returns a Config with default values. Info title and version
// have no default and must be configured.
func Default() *Config {
	return &Config{
		OperationIDFormat: DefaultOperationIDFormat,
		Source: SourceConfig{
			Paths:   []string{"."},
			Include: append([]string(nil), defaultSourceInclude...),
			Exclude: append([]string(nil), defaultExclude...),
		},
		Docs: DocsConfig{
			Enabled: false,
			Paths:   []string{"."},
			Include: append([]string(nil), defaultDocsInclude...),
			Exclude: append([]string(nil), defaultExclude...),
		},
		Output: OutputConfig{
			Dir:      ".",
			FileName: "swagger",
			Formats:  []string{"json"},
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
	}
}

// Load loads the configuration from a file.
// It searches for config files in the following order:
// 1. docgen.yaml
// 2. docgen.json
// 3. .docgen.yaml
// 4. .docgen.json
//
// If configPath is provided, it will use that path instead. Environment
// variables prefixed with DOCGEN_ override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	v.SetEnvPrefix("DOCGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		// Use the provided config path
		v.SetConfigFile(configPath)
	} else {
		// Search for config files in order
		found := false
		for _, name := range configFileNames {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				found = true
				break
			}
		}
		if !found {
			return Default(), nil
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("info.title", "")
	v.SetDefault("info.version", "")
	v.SetDefault("removeBasePathFromEndpoints", false)
	v.SetDefault("operationIdFormat", DefaultOperationIDFormat)
	v.SetDefault("skipInheritingTypes", false)
	v.SetDefault("source.paths", []string{"."})
	v.SetDefault("source.include", defaultSourceInclude)
	v.SetDefault("source.exclude", defaultExclude)
	v.SetDefault("docs.enabled", false)
	v.SetDefault("docs.paths", []string{"."})
	v.SetDefault("docs.include", defaultDocsInclude)
	v.SetDefault("docs.exclude", defaultExclude)
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.fileName", "swagger")
	v.SetDefault("output.formats", []string{"json"})
	v.SetDefault("watch.debounce", 500)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	// Validate required fields
	if c.Info.Title == "" {
		errs = append(errs, ValidationError{
			Field:   "info.title",
			Message: "title is required",
		})
	}

	if c.Info.Version == "" {
		errs = append(errs, ValidationError{
			Field:   "info.version",
			Message: "version is required",
		})
	}

	for _, format := range c.Output.Formats {
		if !contains(supportedFormats, format) {
			errs = append(errs, ValidationError{
				Field:   "output.formats",
				Message: fmt.Sprintf("unsupported format %q, must be one of: %s", format, strings.Join(supportedFormats, ", ")),
			})
		}
	}

	for _, match := range tokenRegex.FindAllStringSubmatch(c.OperationIDFormat, -1) {
		if !contains(operationIDTokens, match[1]) {
			errs = append(errs, ValidationError{
				Field:   "operationIdFormat",
				Message: fmt.Sprintf("unknown token %q, must be one of: %s", match[0], strings.Join(operationIDTokens, ", ")),
			})
		}
	}

	for i, sub := range c.ModelSubstitutions {
		if strings.TrimSpace(sub.From) == "" || strings.TrimSpace(sub.To) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("modelSubstitutions[%d]", i),
				Message: "from and to are required",
			})
		}
	}

	for i, def := range c.SecurityDefinitions {
		if def.Name == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("securityDefinitions[%d].name", i),
				Message: "name is required",
			})
		}
		if !contains(supportedSchemeTypes, def.Type) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("securityDefinitions[%d].type", i),
				Message: fmt.Sprintf("unsupported type %q, must be one of: %s", def.Type, strings.Join(supportedSchemeTypes, ", ")),
			})
		}
	}

	// Validate watch debounce
	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ConfigFilePath returns the path of the loaded config file, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
