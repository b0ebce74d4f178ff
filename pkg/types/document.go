// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// SwaggerVersion is the document format version written by the assembler.
const SwaggerVersion = "2.0"

// Document represents a complete Swagger 2.0 API specification document.
type Document struct {
	// Swagger is the specification version ("2.0")
	Swagger string `json:"swagger" yaml:"swagger"`

	// Info provides metadata about the API
	Info *Info `json:"info,omitempty" yaml:"info,omitempty"`

	// Host is the host (name or ip) serving the API
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// BasePath is the base path on which the API is served
	BasePath string `json:"basePath,omitempty" yaml:"basePath,omitempty"`

	// Schemes is the transfer protocol list of the API
	Schemes []string `json:"schemes,omitempty" yaml:"schemes,omitempty"`

	// Tags is the list of tags used by operations
	Tags []Tag `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Paths holds the available paths keyed by canonical path key
	Paths OrderedMap[*Path] `json:"paths" yaml:"paths"`

	// SecurityDefinitions holds the security schemes keyed by name
	SecurityDefinitions OrderedMap[*SecurityScheme] `json:"securityDefinitions,omitzero" yaml:"securityDefinitions,omitempty"`

	// Definitions holds the model definitions keyed by name
	Definitions OrderedMap[*Model] `json:"definitions,omitzero" yaml:"definitions,omitempty"`

	// ExternalDocs provides external documentation
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		Swagger:             SwaggerVersion,
		Paths:               NewOrderedMap[*Path](),
		SecurityDefinitions: NewOrderedMap[*SecurityScheme](),
		Definitions:         NewOrderedMap[*Model](),
	}
}

// Path returns the path item for key, creating it when absent.
func (d *Document) Path(key string) *Path {
	if p, ok := d.Paths.Get(key); ok && p != nil {
		return p
	}
	p := &Path{}
	d.Paths.Set(key, p)
	return p
}

// HasTag reports whether a tag with the given name is registered.
func (d *Document) HasTag(name string) bool {
	for _, t := range d.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// AddTag registers a tag once. A later description fills an empty one.
func (d *Document) AddTag(tag Tag) {
	for i := range d.Tags {
		if d.Tags[i].Name == tag.Name {
			if d.Tags[i].Description == "" {
				d.Tags[i].Description = tag.Description
			}
			return
		}
	}
	d.Tags = append(d.Tags, tag)
}

// Info provides metadata about the API.
type Info struct {
	// Title is the title of the API
	Title string `json:"title" yaml:"title"`

	// Description is a description of the API
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// TermsOfService is a URL to the Terms of Service
	TermsOfService string `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty"`

	// Contact provides contact information
	Contact *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`

	// License provides license information
	License *License `json:"license,omitempty" yaml:"license,omitempty"`

	// Version is the version of the API
	Version string `json:"version" yaml:"version"`
}

// Contact provides contact information.
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// License provides license information.
type License struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// ExternalDocs provides external documentation.
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url" yaml:"url"`
}

// Tag adds metadata to a tag used by operations.
type Tag struct {
	// Name is the tag name
	Name string `json:"name" yaml:"name"`

	// Description is a description of the tag
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Verbs lists the HTTP verbs a Path can hold, in the order they are written.
var Verbs = []string{"get", "put", "post", "delete", "options", "head", "patch"}

// Path describes the operations available on a single path.
type Path struct {
	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
}

// Operation returns the operation for verb, or nil.
func (p *Path) Operation(verb string) *Operation {
	switch strings.ToLower(verb) {
	case "get":
		return p.Get
	case "put":
		return p.Put
	case "post":
		return p.Post
	case "delete":
		return p.Delete
	case "options":
		return p.Options
	case "head":
		return p.Head
	case "patch":
		return p.Patch
	}
	return nil
}

// Set stores op under verb. Unknown verbs are ignored and reported false.
func (p *Path) Set(verb string, op *Operation) bool {
	switch strings.ToLower(verb) {
	case "get":
		p.Get = op
	case "put":
		p.Put = op
	case "post":
		p.Post = op
	case "delete":
		p.Delete = op
	case "options":
		p.Options = op
	case "head":
		p.Head = op
	case "patch":
		p.Patch = op
	default:
		return false
	}
	return true
}

// Operations returns the non-nil operations keyed by verb.
func (p *Path) Operations() map[string]*Operation {
	ops := make(map[string]*Operation)
	for _, verb := range Verbs {
		if op := p.Operation(verb); op != nil {
			ops[verb] = op
		}
	}
	return ops
}

// Operation describes a single API operation on a path.
type Operation struct {
	// Tags is a list of tags for API documentation control
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Summary is a short summary of what the operation does
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Description is a verbose explanation of the operation
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// OperationID is a unique identifier for the operation
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`

	// Schemes overrides the document schemes for this operation
	Schemes []string `json:"schemes,omitempty" yaml:"schemes,omitempty"`

	// Consumes is the list of MIME types the operation can consume
	Consumes []string `json:"consumes,omitempty" yaml:"consumes,omitempty"`

	// Produces is the list of MIME types the operation can produce
	Produces []string `json:"produces,omitempty" yaml:"produces,omitempty"`

	// Parameters is the list of parameters for the operation
	Parameters []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Responses maps status codes (or "default") to responses
	Responses OrderedMap[*Response] `json:"responses" yaml:"responses"`

	// Security is the list of security requirements
	Security []SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`

	// Deprecated marks the operation as deprecated
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// Extensions holds vendor extensions ("x-" keys)
	Extensions map[string]interface{} `json:"-" yaml:",inline"`
}

// AddResponse stores a response under code unless that code is already taken.
// It reports whether the response was stored.
func (o *Operation) AddResponse(code string, resp *Response) bool {
	if o.Responses.Has(code) {
		return false
	}
	o.Responses.Set(code, resp)
	return true
}

// AddParameter appends a parameter. A parameter with the same name and
// location replaces the earlier one in place.
func (o *Operation) AddParameter(param *Parameter) {
	for i, p := range o.Parameters {
		if p.Name == param.Name && p.In == param.In {
			o.Parameters[i] = param
			return
		}
	}
	o.Parameters = append(o.Parameters, param)
}

type operationAlias Operation

// MarshalJSON writes the operation with its vendor extensions inlined.
func (o Operation) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(operationAlias(o))
	if err != nil {
		return nil, err
	}
	if len(o.Extensions) == 0 {
		return b, nil
	}

	keys := make([]string, 0, len(o.Extensions))
	for k := range o.Extensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(b[:len(b)-1])
	first := bytes.Equal(bytes.TrimSpace(b), []byte("{}"))
	for _, k := range keys {
		kb, _ := json.Marshal(k)
		vb, err := json.Marshal(o.Extensions[k])
		if err != nil {
			return nil, err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an operation, collecting "x-" keys into Extensions.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var alias operationAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if !strings.HasPrefix(k, "x-") {
			continue
		}
		var val interface{}
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		if alias.Extensions == nil {
			alias.Extensions = make(map[string]interface{})
		}
		alias.Extensions[k] = val
	}
	*o = Operation(alias)
	return nil
}

// Parameter describes a single operation parameter.
type Parameter struct {
	// Name is the parameter name
	Name string `json:"name" yaml:"name"`

	// In is the location (path, query, header, formData, body, cookie)
	In string `json:"in" yaml:"in"`

	// Description is a brief description of the parameter
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Required determines whether the parameter is mandatory
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Schema is the body schema (body parameters only)
	Schema *Property `json:"schema,omitempty" yaml:"schema,omitempty"`

	// Type is the value type (non-body parameters)
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Format is the value format
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Items describes array elements
	Items *Property `json:"items,omitempty" yaml:"items,omitempty"`

	// CollectionFormat is the array serialization format
	CollectionFormat string `json:"collectionFormat,omitempty" yaml:"collectionFormat,omitempty"`

	// Default is the default value
	Default interface{} `json:"default,omitempty" yaml:"default,omitempty"`

	// Enum is the list of allowed values
	Enum []string `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Pattern is the regular expression the value must match
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Example is an example value
	Example interface{} `json:"x-example,omitempty" yaml:"x-example,omitempty"`
}

// Parameter locations.
const (
	InPath     = "path"
	InQuery    = "query"
	InHeader   = "header"
	InFormData = "formData"
	InBody     = "body"
	InCookie   = "cookie"
)

// Response describes a single response from an operation.
type Response struct {
	// Description is a short description of the response
	Description string `json:"description" yaml:"description"`

	// Schema is the response body schema
	Schema *Property `json:"schema,omitempty" yaml:"schema,omitempty"`

	// Headers lists the headers sent with the response
	Headers OrderedMap[*Property] `json:"headers,omitzero" yaml:"headers,omitempty"`
}

// SecurityRequirement maps a security scheme name to required scopes.
type SecurityRequirement map[string][]string

// SecurityScheme defines a security scheme usable by operations.
type SecurityScheme struct {
	// Type is basic, apiKey or oauth2
	Type string `json:"type" yaml:"type"`

	// Description is a short description of the scheme
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Name is the header or query parameter name (apiKey)
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// In is the key location, query or header (apiKey)
	In string `json:"in,omitempty" yaml:"in,omitempty"`

	// Flow is the OAuth2 flow (implicit, password, application, accessCode)
	Flow string `json:"flow,omitempty" yaml:"flow,omitempty"`

	// AuthorizationURL is the OAuth2 authorization URL
	AuthorizationURL string `json:"authorizationUrl,omitempty" yaml:"authorizationUrl,omitempty"`

	// TokenURL is the OAuth2 token URL
	TokenURL string `json:"tokenUrl,omitempty" yaml:"tokenUrl,omitempty"`

	// Scopes maps scope names to descriptions (oauth2)
	Scopes map[string]string `json:"scopes,omitempty" yaml:"scopes,omitempty"`
}
