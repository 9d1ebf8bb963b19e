package field

import (
	"strings"

	"github.com/baseplate/cms/internal/core/value"
)

// DisplayValue renders v as it is shown next to the field's name.
func DisplayValue(f Field, v value.Value) string {
	switch attrs := f.Attrs.(type) {
	case BooleanAttributes:
		if isTruthy(v) {
			return attrs.TrueLabel
		}
		return attrs.FalseLabel
	case SelectAttributes:
		if items, ok := v.Items(); ok {
			return strings.Join(items, ", ")
		}
	case NumberAttributes:
		if lo, hi, ok := v.Range(); ok {
			return withUnit(value.FormatNumber(lo)+" - "+value.FormatNumber(hi), attrs.Unit)
		}
		if v.IsPresent() {
			return withUnit(v.String(), attrs.Unit)
		}
	}
	return v.String()
}

func withUnit(s, unit string) string {
	if unit == "" {
		return s
	}
	return s + " " + unit
}

func isTruthy(v value.Value) bool {
	switch v.Kind() {
	case value.Bool:
		b, _ := v.Bool()
		return b
	case value.Number:
		n, _ := v.Num()
		return n != 0
	case value.String:
		s, _ := v.Str()
		return s != ""
	case value.Range, value.Strings:
		return true
	}
	return false
}
