package field

import (
	"github.com/baseplate/cms/internal/core/value"
)

// Type names a field kind.
type Type string

const (
	TypeText    Type = "text"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeSelect  Type = "select"
	TypeDate    Type = "date"
)

// Types lists every field kind in display order.
var Types = []Type{TypeText, TypeNumber, TypeBoolean, TypeSelect, TypeDate}

// ParseType maps a type name to its Type. Unknown names are text.
func ParseType(name string) Type {
	switch Type(name) {
	case TypeNumber, TypeBoolean, TypeSelect, TypeDate:
		return Type(name)
	}
	return TypeText
}

// Sub-modes per field kind.
const (
	OptionText          = "text"
	OptionTextarea      = "textarea"
	OptionNumber        = "number"
	OptionRange         = "range"
	OptionCheckbox      = "checkbox"
	OptionSwitch        = "switch"
	OptionOne           = "one"
	OptionMany          = "many"
	OptionDate          = "date"
	OptionDateTimeLocal = "datetime-local"
	OptionTime          = "time"
)

// Attributes is the kind-specific part of a Field. The set of
// implementations is closed: TextAttributes, NumberAttributes,
// BooleanAttributes, SelectAttributes and DateAttributes.
type Attributes interface {
	Type() Type
	sealed()
}

type TextAttributes struct {
	Min float64
	Max float64
}

type NumberAttributes struct {
	Min  float64
	Max  float64
	Step float64
	Unit string
}

type BooleanAttributes struct {
	TrueLabel  string
	FalseLabel string
}

// SelectAttributes keeps the option list as the user typed it; see
// ParseOptions.
type SelectAttributes struct {
	Options string
}

type DateAttributes struct{}

func (TextAttributes) Type() Type    { return TypeText }
func (NumberAttributes) Type() Type  { return TypeNumber }
func (BooleanAttributes) Type() Type { return TypeBoolean }
func (SelectAttributes) Type() Type  { return TypeSelect }
func (DateAttributes) Type() Type    { return TypeDate }

func (TextAttributes) sealed()    {}
func (NumberAttributes) sealed()  {}
func (BooleanAttributes) sealed() {}
func (SelectAttributes) sealed()  {}
func (DateAttributes) sealed()    {}

// Field is one typed slot of a model's schema.
type Field struct {
	ID                string
	Name              string
	Slug              string
	Required          bool
	Option            string
	TypeOptions       []string
	TypeOptionStrings []string
	DefaultValue      value.Value
	Attrs             Attributes
	CreatedAt         string
	UpdatedAt         string
}

// Type reports the field kind, text when no attributes are set.
func (f Field) Type() Type {
	if f.Attrs == nil {
		return TypeText
	}
	return f.Attrs.Type()
}

// IsMany reports whether f is a select field holding several values.
func (f Field) IsMany() bool {
	return f.Type() == TypeSelect && f.Option == OptionMany
}

// Clone returns a copy that shares no slices with f.
func (f Field) Clone() Field {
	out := f
	out.TypeOptions = append([]string(nil), f.TypeOptions...)
	out.TypeOptionStrings = append([]string(nil), f.TypeOptionStrings...)
	return out
}
