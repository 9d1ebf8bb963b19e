package field

import (
	"sort"
)

// JSON Schema property types
type PropertyType string

const (
	PropertyTypeString  PropertyType = "string"
	PropertyTypeNumber  PropertyType = "number"
	PropertyTypeBoolean PropertyType = "boolean"
	PropertyTypeArray   PropertyType = "array"
	PropertyTypeObject  PropertyType = "object"
)

// Schema builder helpers
type SchemaProperty struct {
	Type      PropertyType      `json:"type,omitempty"`
	Title     string            `json:"title,omitempty"`
	Enum      []interface{}     `json:"enum,omitempty"`
	Minimum   *float64          `json:"minimum,omitempty"`
	Maximum   *float64          `json:"maximum,omitempty"`
	MinLength *int              `json:"minLength,omitempty"`
	MaxLength *int              `json:"maxLength,omitempty"`
	MinItems  *int              `json:"minItems,omitempty"`
	MaxItems  *int              `json:"maxItems,omitempty"`
	Items     *SchemaProperty   `json:"items,omitempty"`
	AnyOf     []*SchemaProperty `json:"anyOf,omitempty"`
}

func NewSchema(title string, properties map[string]*SchemaProperty, required []string) map[string]interface{} {
	props := make(map[string]interface{})
	for k, v := range properties {
		props[k] = v
	}

	return map[string]interface{}{
		"type":       "object",
		"title":      title,
		"properties": props,
		"required":   required,
	}
}

// Schema builds the JSON schema that entry values of a model must satisfy.
// Keys without a field are left unconstrained.
func Schema(title string, fields map[string]Field) map[string]interface{} {
	props := make(map[string]*SchemaProperty, len(fields))
	required := []string{}

	for id, f := range fields {
		props[id] = Property(f)
		if f.Required {
			required = append(required, id)
		}
	}
	sort.Strings(required)

	return NewSchema(title, props, required)
}

// Property describes the values f accepts.
func Property(f Field) *SchemaProperty {
	switch attrs := f.Attrs.(type) {
	case NumberAttributes:
		number := &SchemaProperty{Type: PropertyTypeNumber, Title: f.Name}
		if attrs.Max > attrs.Min {
			number.Minimum, number.Maximum = ptr(attrs.Min), ptr(attrs.Max)
		}
		if f.Option != OptionRange {
			return number
		}
		pair := &SchemaProperty{
			Type:     PropertyTypeArray,
			Items:    &SchemaProperty{Type: PropertyTypeNumber, Minimum: number.Minimum, Maximum: number.Maximum},
			MinItems: ptr(2),
			MaxItems: ptr(2),
		}
		return &SchemaProperty{Title: f.Name, AnyOf: []*SchemaProperty{number, pair}}

	case BooleanAttributes:
		return &SchemaProperty{Type: PropertyTypeBoolean, Title: f.Name}

	case SelectAttributes:
		options := f.Options()
		if f.IsMany() {
			items := &SchemaProperty{Type: PropertyTypeString}
			if len(options) > 0 {
				items.Enum = enum(options)
			}
			prop := &SchemaProperty{Type: PropertyTypeArray, Title: f.Name, Items: items}
			if f.Required {
				prop.MinItems = ptr(1)
			}
			return prop
		}
		prop := &SchemaProperty{Type: PropertyTypeString, Title: f.Name}
		if len(options) > 0 {
			if !f.Required {
				options = append(options, "")
			}
			prop.Enum = enum(options)
		}
		return prop

	case DateAttributes:
		prop := &SchemaProperty{Type: PropertyTypeString, Title: f.Name}
		if f.Required {
			prop.MinLength = ptr(1)
		}
		return prop

	case TextAttributes:
		prop := &SchemaProperty{Type: PropertyTypeString, Title: f.Name}
		minLen := int(attrs.Min)
		if f.Required && minLen < 1 {
			minLen = 1
		}
		if minLen > 0 {
			prop.MinLength = ptr(minLen)
		}
		if attrs.Max > 0 {
			prop.MaxLength = ptr(int(attrs.Max))
		}
		return prop
	}

	return &SchemaProperty{Type: PropertyTypeString, Title: f.Name}
}

func enum(options []string) []interface{} {
	out := make([]interface{}, len(options))
	for i, o := range options {
		out[i] = o
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
