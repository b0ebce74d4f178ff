// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides the declaration descriptors consumed by the
// document engine and the Swagger document it produces.
package types

import "strings"

// TypeKind is the kind of a declared type.
type TypeKind string

// Type kinds.
const (
	KindClass     TypeKind = "class"
	KindInterface TypeKind = "interface"
	KindEnum      TypeKind = "enum"
)

// TypeDecl is a scanned type declaration with its metadata markers.
type TypeDecl struct {
	// Name is the qualified type name (e.g., "com.acme.pet.PetController")
	Name string `json:"name" yaml:"name"`

	// Kind is class, interface or enum
	Kind TypeKind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Superclass is the qualified name of the direct superclass
	Superclass string `json:"superclass,omitempty" yaml:"superclass,omitempty"`

	// Interfaces are the directly implemented interfaces
	Interfaces []string `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`

	// TypeParams are the generic type parameter names, in order
	TypeParams []string `json:"typeParams,omitempty" yaml:"typeParams,omitempty"`

	// EnumValues are the constants of an enum type
	EnumValues []string `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`

	// Unresolved lists references the scanner could not load
	Unresolved []string `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`

	// Markers are the type-level metadata markers
	Markers TypeMarkers `json:"markers,omitempty" yaml:"markers,omitempty"`

	// Fields are the declared fields, in declaration order
	Fields []FieldDecl `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Methods are the declared methods, in declaration order
	Methods []MethodDecl `json:"methods,omitempty" yaml:"methods,omitempty"`

	// Constructors are the declared constructors
	Constructors []ConstructorDecl `json:"constructors,omitempty" yaml:"constructors,omitempty"`
}

// SimpleName returns the unqualified type name.
func (t *TypeDecl) SimpleName() string {
	return SimpleName(t.Name)
}

// PackageName returns the package part of the qualified name.
func (t *TypeDecl) PackageName() string {
	if i := strings.LastIndex(t.Name, "."); i >= 0 {
		return t.Name[:i]
	}
	return ""
}

// IsEndpoint reports whether the type declares endpoints.
func (t *TypeDecl) IsEndpoint() bool {
	return t.Markers.Controller || t.Markers.Api != nil
}

// MethodsNamed returns the declared methods with the given name.
func (t *TypeDecl) MethodsNamed(name string) []*MethodDecl {
	var out []*MethodDecl
	for i := range t.Methods {
		if t.Methods[i].Name == name {
			out = append(out, &t.Methods[i])
		}
	}
	return out
}

// SimpleName strips the package qualifier from a type name.
func SimpleName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// TypeMarkers are the metadata markers a type can carry.
type TypeMarkers struct {
	// Controller marks an endpoint type
	Controller bool `json:"controller,omitempty" yaml:"controller,omitempty"`

	// ControllerAdvice marks an exception-advice type
	ControllerAdvice bool `json:"controllerAdvice,omitempty" yaml:"controllerAdvice,omitempty"`

	// Deprecated marks the whole type deprecated
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// Api carries the api-level documentation metadata
	Api *ApiMarker `json:"api,omitempty" yaml:"api,omitempty"`

	// Mapping carries the class-level request mapping
	Mapping *Mapping `json:"mapping,omitempty" yaml:"mapping,omitempty"`

	// ResponseStatus is the status an exception type responds with
	ResponseStatus *StatusMarker `json:"responseStatus,omitempty" yaml:"responseStatus,omitempty"`

	// Model carries model naming and description
	Model *ModelMarker `json:"model,omitempty" yaml:"model,omitempty"`

	// Definition carries document-level defaults
	Definition *DefinitionMarker `json:"definition,omitempty" yaml:"definition,omitempty"`
}

// ApiMarker holds api-level documentation metadata of an endpoint type.
type ApiMarker struct {
	Value          string          `json:"value,omitempty" yaml:"value,omitempty"`
	Tags           []string        `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	Hidden         bool            `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Produces       []string        `json:"produces,omitempty" yaml:"produces,omitempty"`
	Consumes       []string        `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Protocols      string          `json:"protocols,omitempty" yaml:"protocols,omitempty"`
	Authorizations []Authorization `json:"authorizations,omitempty" yaml:"authorizations,omitempty"`
}

// Mapping is a request mapping on a type or method.
type Mapping struct {
	// Paths are the alternative paths
	Paths []string `json:"paths,omitempty" yaml:"paths,omitempty"`

	// Methods are the HTTP verbs
	Methods []string `json:"methods,omitempty" yaml:"methods,omitempty"`

	// Produces are the produced media types
	Produces []string `json:"produces,omitempty" yaml:"produces,omitempty"`

	// Consumes are the consumed media types
	Consumes []string `json:"consumes,omitempty" yaml:"consumes,omitempty"`
}

// Authorization names a security scheme and its scopes.
type Authorization struct {
	Value  string   `json:"value" yaml:"value"`
	Scopes []string `json:"scopes,omitempty" yaml:"scopes,omitempty"`
}

// StatusMarker is a respond-with-status marker.
type StatusMarker struct {
	Code   int    `json:"code" yaml:"code"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// ModelMarker names and describes a model type.
type ModelMarker struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// DefinitionMarker carries document-level defaults declared on a type.
type DefinitionMarker struct {
	Host         string        `json:"host,omitempty" yaml:"host,omitempty"`
	BasePath     string        `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Info         *Info         `json:"info,omitempty" yaml:"info,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// MethodDecl is a declared method with its metadata markers.
type MethodDecl struct {
	// Name is the method name
	Name string `json:"name" yaml:"name"`

	// Synthetic marks compiler-generated methods
	Synthetic bool `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`

	// Returns is the return type expression (e.g., "ResponseEntity<List<Pet>>")
	Returns string `json:"returns,omitempty" yaml:"returns,omitempty"`

	// Throws are the declared thrown exception types
	Throws []string `json:"throws,omitempty" yaml:"throws,omitempty"`

	// Params are the formal parameters, in declaration order
	Params []ParamDecl `json:"params,omitempty" yaml:"params,omitempty"`

	// Mapping is the method request mapping
	Mapping *Mapping `json:"mapping,omitempty" yaml:"mapping,omitempty"`

	// Operation carries operation documentation metadata
	Operation *OperationMarker `json:"operation,omitempty" yaml:"operation,omitempty"`

	// Responses is the explicit structured-response list
	Responses []ResponseMarker `json:"responses,omitempty" yaml:"responses,omitempty"`

	// ResponseStatus is the respond-with-status marker
	ResponseStatus *StatusMarker `json:"responseStatus,omitempty" yaml:"responseStatus,omitempty"`

	// ExceptionHandler lists the exception types an advice method handles
	ExceptionHandler []string `json:"exceptionHandler,omitempty" yaml:"exceptionHandler,omitempty"`

	// ImplicitParams are parameters declared without a formal parameter
	ImplicitParams []ImplicitParam `json:"implicitParams,omitempty" yaml:"implicitParams,omitempty"`

	// Deprecated marks the method deprecated
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// IsHidden reports whether the method is excluded from documentation.
func (m *MethodDecl) IsHidden() bool {
	return m.Operation != nil && m.Operation.Hidden
}

// OperationMarker holds operation documentation metadata.
type OperationMarker struct {
	Value             string            `json:"value,omitempty" yaml:"value,omitempty"`
	Notes             string            `json:"notes,omitempty" yaml:"notes,omitempty"`
	Nickname          string            `json:"nickname,omitempty" yaml:"nickname,omitempty"`
	Tags              []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
	Hidden            bool              `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Response          string            `json:"response,omitempty" yaml:"response,omitempty"`
	ResponseContainer string            `json:"responseContainer,omitempty" yaml:"responseContainer,omitempty"`
	Code              int               `json:"code,omitempty" yaml:"code,omitempty"`
	Produces          []string          `json:"produces,omitempty" yaml:"produces,omitempty"`
	Consumes          []string          `json:"consumes,omitempty" yaml:"consumes,omitempty"`
	Protocols         string            `json:"protocols,omitempty" yaml:"protocols,omitempty"`
	Authorizations    []Authorization   `json:"authorizations,omitempty" yaml:"authorizations,omitempty"`
	ResponseHeaders   []HeaderMarker    `json:"responseHeaders,omitempty" yaml:"responseHeaders,omitempty"`
	Extensions        map[string]string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// ResponseMarker is one entry of an explicit structured-response list.
// Code 0 means the "default" response.
type ResponseMarker struct {
	Code              int            `json:"code" yaml:"code"`
	Message           string         `json:"message,omitempty" yaml:"message,omitempty"`
	Response          string         `json:"response,omitempty" yaml:"response,omitempty"`
	ResponseContainer string         `json:"responseContainer,omitempty" yaml:"responseContainer,omitempty"`
	Headers           []HeaderMarker `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// HeaderMarker describes a response header.
type HeaderMarker struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Response    string `json:"response,omitempty" yaml:"response,omitempty"`
	Container   string `json:"container,omitempty" yaml:"container,omitempty"`
}

// ImplicitParam is a parameter declared on the method rather than on a
// formal parameter.
type ImplicitParam struct {
	Name            string   `json:"name" yaml:"name"`
	In              string   `json:"in" yaml:"in"`
	DataType        string   `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	DefaultValue    string   `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Required        bool     `json:"required,omitempty" yaml:"required,omitempty"`
	AllowMultiple   bool     `json:"allowMultiple,omitempty" yaml:"allowMultiple,omitempty"`
	AllowableValues []string `json:"allowableValues,omitempty" yaml:"allowableValues,omitempty"`
}

// ParamDecl is a formal method or constructor parameter.
type ParamDecl struct {
	// Name is the source-level parameter name
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Type is the parameter type expression
	Type string `json:"type" yaml:"type"`

	// Markers are the metadata markers attached to the parameter
	Markers []ParamMarker `json:"markers,omitempty" yaml:"markers,omitempty"`
}

// MarkerKind identifies a parameter-indicating marker.
type MarkerKind string

// Parameter marker kinds.
const (
	MarkerPath   MarkerKind = "path"
	MarkerQuery  MarkerKind = "query"
	MarkerHeader MarkerKind = "header"
	MarkerCookie MarkerKind = "cookie"
	MarkerForm   MarkerKind = "form"
	MarkerPart   MarkerKind = "part"
	MarkerBody   MarkerKind = "body"
	MarkerBean   MarkerKind = "bean"
	MarkerModel  MarkerKind = "model"
	MarkerParam  MarkerKind = "param"
)

// ParamMarker is a metadata marker attached to a parameter or member.
type ParamMarker struct {
	Kind            MarkerKind `json:"kind" yaml:"kind"`
	Name            string     `json:"name,omitempty" yaml:"name,omitempty"`
	Required        *bool      `json:"required,omitempty" yaml:"required,omitempty"`
	DefaultValue    string     `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Description     string     `json:"description,omitempty" yaml:"description,omitempty"`
	Hidden          bool       `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	AllowableValues []string   `json:"allowableValues,omitempty" yaml:"allowableValues,omitempty"`
	Example         string     `json:"example,omitempty" yaml:"example,omitempty"`
}

// FieldDecl is a declared field.
type FieldDecl struct {
	Name     string          `json:"name" yaml:"name"`
	Type     string          `json:"type" yaml:"type"`
	Static   bool            `json:"static,omitempty" yaml:"static,omitempty"`
	Markers  []ParamMarker   `json:"markers,omitempty" yaml:"markers,omitempty"`
	Property *PropertyMarker `json:"property,omitempty" yaml:"property,omitempty"`
}

// PropertyMarker holds model-property documentation metadata.
type PropertyMarker struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Hidden      bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Access      string `json:"access,omitempty" yaml:"access,omitempty"`
	Example     string `json:"example,omitempty" yaml:"example,omitempty"`
	ReadOnly    bool   `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
}

// ConstructorDecl is a declared constructor.
type ConstructorDecl struct {
	Params []ParamDecl `json:"params,omitempty" yaml:"params,omitempty"`
}
