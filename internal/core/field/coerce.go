package field

import (
	"strconv"
	"strings"

	"github.com/baseplate/cms/internal/core/value"
)

// Coerce converts a raw value toward the shape f stores. Values that cannot
// be converted are returned unchanged so that validation can report them.
func Coerce(f Field, v value.Value) value.Value {
	if v.IsAbsent() {
		return v
	}

	switch f.Attrs.(type) {
	case NumberAttributes:
		return coerceNumber(v)
	case BooleanAttributes:
		return coerceBoolean(v)
	case SelectAttributes:
		if f.IsMany() {
			return coerceMany(v)
		}
		return coerceOne(v)
	default:
		return coerceText(v)
	}
}

func coerceNumber(v value.Value) value.Value {
	if s, ok := v.Str(); ok {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return value.NumberOf(n)
		}
	}
	return v
}

func coerceBoolean(v value.Value) value.Value {
	switch v.Kind() {
	case value.String:
		s, _ := v.Str()
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "on", "yes", "1":
			return value.BoolOf(true)
		case "false", "off", "no", "0", "":
			return value.BoolOf(false)
		}
	case value.Number:
		n, _ := v.Num()
		return value.BoolOf(n != 0)
	}
	return v
}

func coerceMany(v value.Value) value.Value {
	if s, ok := v.Str(); ok {
		return value.StringsOf(ParseOptions(s)...)
	}
	return v
}

func coerceOne(v value.Value) value.Value {
	if items, ok := v.Items(); ok && len(items) <= 1 {
		if len(items) == 0 {
			return value.StringOf("")
		}
		return value.StringOf(items[0])
	}
	return v
}

func coerceText(v value.Value) value.Value {
	switch v.Kind() {
	case value.Number, value.Bool:
		return value.StringOf(v.String())
	}
	return v
}
