package field

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/baseplate/cms/internal/core/value"
)

// record is the flat serialized shape of a Field. Kind-specific keys are
// pointers so that an explicit zero survives the round trip.
type record struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Slug              string      `json:"slug"`
	Type              Type        `json:"type"`
	Required          bool        `json:"required"`
	Option            string      `json:"option"`
	TypeOptions       []string    `json:"typeOptions"`
	TypeOptionStrings []string    `json:"typeOptionStrings"`
	DefaultValue      value.Value `json:"defaultValue"`
	CreatedAt         string      `json:"createdAt"`
	UpdatedAt         string      `json:"updatedAt"`

	Min        *float64 `json:"min,omitempty"`
	Max        *float64 `json:"max,omitempty"`
	Step       *float64 `json:"step,omitempty"`
	Unit       *string  `json:"unit,omitempty"`
	TrueLabel  *string  `json:"trueLabel,omitempty"`
	FalseLabel *string  `json:"falseLabel,omitempty"`
	Options    *string  `json:"options,omitempty"`
}

func toRecord(f Field) record {
	r := record{
		ID:                f.ID,
		Name:              f.Name,
		Slug:              f.Slug,
		Type:              f.Type(),
		Required:          f.Required,
		Option:            f.Option,
		TypeOptions:       f.TypeOptions,
		TypeOptionStrings: f.TypeOptionStrings,
		DefaultValue:      f.DefaultValue,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}

	switch attrs := f.Attrs.(type) {
	case NumberAttributes:
		r.Min, r.Max, r.Step, r.Unit = &attrs.Min, &attrs.Max, &attrs.Step, &attrs.Unit
	case BooleanAttributes:
		r.TrueLabel, r.FalseLabel = &attrs.TrueLabel, &attrs.FalseLabel
	case SelectAttributes:
		r.Options = &attrs.Options
	case DateAttributes:
	case TextAttributes:
		r.Min, r.Max = &attrs.Min, &attrs.Max
	default:
		zero := 0.0
		r.Min, r.Max = &zero, &zero
	}

	return r
}

func fromRecord(r record) Field {
	t := ParseType(string(r.Type))
	f := Field{
		ID:                r.ID,
		Name:              r.Name,
		Slug:              r.Slug,
		Required:          r.Required,
		Option:            r.Option,
		TypeOptions:       r.TypeOptions,
		TypeOptionStrings: r.TypeOptionStrings,
		DefaultValue:      r.DefaultValue,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}

	switch t {
	case TypeNumber:
		f.Attrs = NumberAttributes{Min: deref(r.Min), Max: deref(r.Max), Step: deref(r.Step), Unit: deref(r.Unit)}
	case TypeBoolean:
		f.Attrs = BooleanAttributes{TrueLabel: deref(r.TrueLabel), FalseLabel: deref(r.FalseLabel)}
	case TypeSelect:
		f.Attrs = SelectAttributes{Options: deref(r.Options)}
	case TypeDate:
		f.Attrs = DateAttributes{}
	default:
		f.Attrs = TextAttributes{Min: deref(r.Min), Max: deref(r.Max)}
	}

	// The option catalog belongs to the type, not to the stored record.
	options, labels := TypeOptions(t)
	f.TypeOptions, f.TypeOptionStrings = options, labels
	if !IsValidOption(t, f.Option) {
		f.Option = options[0]
	}

	return f
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(toRecord(f))
}

// UnmarshalJSON decodes a field record. Keys missing from data take the
// defaults of the record's type.
func (f *Field) UnmarshalJSON(data []byte) error {
	merged, err := Merge(Field{}, data)
	if err != nil {
		return err
	}
	*f = merged
	return nil
}

// Merge applies the attributes present in data over base. When data names a
// different type, base is first re-based on that type's defaults.
func Merge(base Field, data []byte) (Field, error) {
	var head struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Field{}, err
	}

	t := base.Type()
	if head.Type != nil {
		t = ParseType(*head.Type)
	}
	base = ChangeType(base, t, time.Now())

	r := toRecord(base)
	if err := json.Unmarshal(data, &r); err != nil {
		return Field{}, err
	}
	r.Type = t

	return fromRecord(r), nil
}
