package model

import (
	"github.com/baseplate/cms/internal/core/field"
	"github.com/baseplate/cms/internal/core/value"
)

// EntryLabel returns the title shown for e, chosen by the model's label
// option. Values under removed fields are never used.
func EntryLabel(m Model, e Entry) string {
	switch m.LabelOption {
	case "", LabelDate:
		if t, ok := value.ParseTime(e.CreatedAt); ok {
			return t.Local().Format(value.LocaleLayout)
		}
		return e.CreatedAt
	case LabelText:
		return e.Values[LabelKey].String()
	}

	f, ok := m.Fields[m.LabelOption]
	if !ok {
		return ""
	}
	return field.DisplayValue(f, e.Values[m.LabelOption])
}

// DisplayValues renders each live field's value of e, keyed by field id.
func DisplayValues(m Model, e Entry) map[string]string {
	out := make(map[string]string, len(m.Fields))
	for id, f := range m.Fields {
		v, ok := e.Values[id]
		if !ok {
			continue
		}
		out[id] = field.DisplayValue(f, v)
	}
	return out
}
