package field

import (
	"slices"
	"strings"
	"time"

	"github.com/baseplate/cms/internal/core/value"
)

// Choice pairs a legal option value with its display label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var choices = map[Type][]Choice{
	TypeText: {
		{OptionText, "Single Line"},
		{OptionTextarea, "Multi Line"},
	},
	TypeNumber: {
		{OptionNumber, "Number Input"},
		{OptionRange, "Range Slider"},
	},
	TypeBoolean: {
		{OptionCheckbox, "Checkbox"},
		{OptionSwitch, "Switch"},
	},
	TypeSelect: {
		{OptionOne, "Select One"},
		{OptionMany, "Select Many"},
	},
	TypeDate: {
		{OptionDate, "Date"},
		{OptionDateTimeLocal, "Date & Time"},
		{OptionTime, "Time"},
	},
}

// Choices returns the ordered option catalog for t.
func Choices(t Type) []Choice {
	return slices.Clone(choices[ParseType(string(t))])
}

// TypeOptions returns the option values and their labels as two parallel
// slices of equal length.
func TypeOptions(t Type) (options []string, labels []string) {
	for _, c := range choices[ParseType(string(t))] {
		options = append(options, c.Value)
		labels = append(labels, c.Label)
	}
	return options, labels
}

// IsValidOption reports whether option is a legal sub-mode of t.
func IsValidOption(t Type, option string) bool {
	return slices.ContainsFunc(choices[ParseType(string(t))], func(c Choice) bool {
		return c.Value == option
	})
}

// OptionLabel returns the display label of option, or "" when it is not
// legal for t.
func OptionLabel(t Type, option string) string {
	for _, c := range choices[ParseType(string(t))] {
		if c.Value == option {
			return c.Label
		}
	}
	return ""
}

// NewFieldState returns a fresh default field of the named type. Unknown
// names produce a text field.
func NewFieldState(typeName string) Field {
	return newState(ParseType(typeName), time.Now())
}

// NewRangeFieldState returns the number preset rendered as a range slider.
func NewRangeFieldState() Field {
	f := newState(TypeNumber, time.Now())
	f.Name = "New Range Field"
	f.Option = OptionRange
	f.DefaultValue = value.RangeOf(0, 100)
	return f
}

func newState(t Type, now time.Time) Field {
	options, labels := TypeOptions(t)
	f := Field{
		TypeOptions:       options,
		TypeOptionStrings: labels,
	}

	switch t {
	case TypeNumber:
		f.Name = "New Number Field"
		f.Option = OptionNumber
		f.DefaultValue = value.NumberOf(0)
		f.Attrs = NumberAttributes{Min: 0, Max: 100, Step: 1, Unit: ""}
	case TypeBoolean:
		f.Name = "New Boolean Field"
		f.Option = OptionCheckbox
		f.DefaultValue = value.BoolOf(false)
		f.Attrs = BooleanAttributes{TrueLabel: "True", FalseLabel: "False"}
	case TypeSelect:
		f.Name = "New Select Field"
		f.Option = OptionOne
		f.DefaultValue = value.StringOf("")
		f.Attrs = SelectAttributes{Options: ""}
	case TypeDate:
		f.Name = "New Date Field"
		f.Option = OptionDate
		f.DefaultValue = value.StringOf(now.Format(value.LocaleLayout))
		f.Attrs = DateAttributes{}
	default:
		f.Option = OptionText
		f.DefaultValue = value.StringOf("")
		f.Attrs = TextAttributes{Min: 0, Max: 0}
	}

	return f
}

// ChangeType re-bases f on the defaults of t, keeping its identity and
// common attributes. A field already of type t is returned unchanged.
func ChangeType(f Field, t Type, now time.Time) Field {
	t = ParseType(string(t))
	if f.Attrs != nil && f.Type() == t {
		return f
	}
	next := newState(t, now)
	next.ID = f.ID
	next.Slug = f.Slug
	next.Required = f.Required
	next.CreatedAt = f.CreatedAt
	next.UpdatedAt = f.UpdatedAt
	if f.Name != "" {
		next.Name = f.Name
	}
	return next
}

// ParseOptions splits a select field's raw option list on commas and
// newlines, dropping blanks.
func ParseOptions(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Options returns the parsed option list of a select field.
func (f Field) Options() []string {
	if attrs, ok := f.Attrs.(SelectAttributes); ok {
		return ParseOptions(attrs.Options)
	}
	return nil
}
