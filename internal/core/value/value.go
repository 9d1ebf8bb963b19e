package value

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Kind identifies which shape a Value holds.
type Kind int

const (
	Absent Kind = iota
	String
	Number
	Bool
	Range
	Strings
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case Range:
		return "range"
	case Strings:
		return "strings"
	default:
		return "absent"
	}
}

// Value is one entry value: a string, a number, a boolean, a [lo, hi] range,
// a list of strings, or nothing at all.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	rng  [2]float64
	strs []string
}

func StringOf(s string) Value  { return Value{kind: String, str: s} }
func NumberOf(n float64) Value { return Value{kind: Number, num: n} }
func BoolOf(b bool) Value      { return Value{kind: Bool, b: b} }

func RangeOf(lo, hi float64) Value {
	return Value{kind: Range, rng: [2]float64{lo, hi}}
}

func StringsOf(items ...string) Value {
	return Value{kind: Strings, strs: append([]string{}, items...)}
}

// From converts a decoded JSON or plain Go value. Shapes outside the legal
// set come back as an absent Value.
func From(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case Value:
		return t
	case string:
		return StringOf(t)
	case bool:
		return BoolOf(t)
	case float64:
		return NumberOf(t)
	case float32:
		return NumberOf(float64(t))
	case int:
		return NumberOf(float64(t))
	case int64:
		return NumberOf(float64(t))
	case int32:
		return NumberOf(float64(t))
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}
		}
		return NumberOf(n)
	case [2]float64:
		return RangeOf(t[0], t[1])
	case []string:
		return StringsOf(t...)
	case []any:
		return fromSlice(t)
	}
	return Value{}
}

func fromSlice(items []any) Value {
	if len(items) == 2 {
		lo, okLo := asFloat(items[0])
		hi, okHi := asFloat(items[1])
		if okLo && okHi {
			return RangeOf(lo, hi)
		}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return Value{}
		}
		out = append(out, s)
	}
	return Value{kind: Strings, strs: out}
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		n, err := t.Float64()
		return n, err == nil
	}
	return 0, false
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsAbsent() bool  { return v.kind == Absent }
func (v Value) IsPresent() bool { return v.kind != Absent }

func (v Value) Str() (string, bool) {
	return v.str, v.kind == String
}

func (v Value) Num() (float64, bool) {
	return v.num, v.kind == Number
}

func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == Bool
}

func (v Value) Range() (float64, float64, bool) {
	return v.rng[0], v.rng[1], v.kind == Range
}

// Items returns a copy of the list held by a Strings value.
func (v Value) Items() ([]string, bool) {
	if v.kind != Strings {
		return nil, false
	}
	return append([]string{}, v.strs...), true
}

// Interface returns the plain Go form used for JSON schema validation.
func (v Value) Interface() any {
	switch v.kind {
	case String:
		return v.str
	case Number:
		return v.num
	case Bool:
		return v.b
	case Range:
		return []any{v.rng[0], v.rng[1]}
	case Strings:
		out := make([]any, len(v.strs))
		for i, s := range v.strs {
			out[i] = s
		}
		return out
	}
	return nil
}

// String renders the value the way it would be printed as text: lists are
// joined with commas, absent values render empty.
func (v Value) String() string {
	switch v.kind {
	case String:
		return v.str
	case Number:
		return FormatNumber(v.num)
	case Bool:
		return strconv.FormatBool(v.b)
	case Range:
		return FormatNumber(v.rng[0]) + "," + FormatNumber(v.rng[1])
	case Strings:
		return strings.Join(v.strs, ",")
	}
	return ""
}

func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value{}
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = From(raw)
	return nil
}
