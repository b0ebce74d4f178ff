// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// Property describes a value shape: a scalar, an array, a map, or a
// reference to a model definition.
type Property struct {
	// Ref is a reference to a model definition ($ref)
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Type is the data type (string, number, integer, boolean, array, object, file)
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Format is the data format (int32, int64, date-time, uuid, ...)
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Description is a description of the value
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Items is the element shape for arrays
	Items *Property `json:"items,omitempty" yaml:"items,omitempty"`

	// AdditionalProperties is the value shape for maps
	AdditionalProperties *Property `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Enum is a list of allowed values
	Enum []string `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Default is the default value
	Default interface{} `json:"default,omitempty" yaml:"default,omitempty"`

	// Example is an example value
	Example interface{} `json:"example,omitempty" yaml:"example,omitempty"`

	// ReadOnly marks a property that is only sent in responses
	ReadOnly bool `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
}

// RefPrefix is the prefix of model definition references.
const RefPrefix = "#/definitions/"

// RefTo returns a property referencing the named model definition.
func RefTo(name string) *Property {
	return &Property{Ref: RefPrefix + name}
}

// RefName returns the model name a reference property points at.
func (p *Property) RefName() string {
	if p == nil || len(p.Ref) <= len(RefPrefix) {
		return ""
	}
	return p.Ref[len(RefPrefix):]
}

// IsArray reports whether the property is an array.
func (p *Property) IsArray() bool {
	return p != nil && p.Type == "array"
}

// Clone returns a shallow copy with copied nested properties.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	c := *p
	c.Items = p.Items.Clone()
	c.AdditionalProperties = p.AdditionalProperties.Clone()
	if p.Enum != nil {
		c.Enum = append([]string(nil), p.Enum...)
	}
	return &c
}

// Model is a named, reusable data-shape description.
type Model struct {
	// Type is the model type, normally "object"
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Title is an optional short title
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Description is a description of the model
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Required lists the names of required properties
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// Properties maps property names to their shapes, in declaration order
	Properties OrderedMap[*Property] `json:"properties,omitzero" yaml:"properties,omitempty"`
}

// NewModel creates an empty object model.
func NewModel() *Model {
	return &Model{Type: "object", Properties: NewOrderedMap[*Property]()}
}
