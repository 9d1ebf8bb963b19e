package query

import (
	"github.com/baseplate/cms/internal/core/field"
	"github.com/baseplate/cms/internal/core/model"
	"github.com/baseplate/cms/internal/core/value"
)

// Passes reports whether e satisfies c. A zero criterion passes every entry.
// An unknown field reference, an unknown operator or an operand that cannot
// be compared fails the entry.
func Passes(e model.Entry, c Criterion, fields map[string]field.Field) bool {
	if c.IsZero() {
		return true
	}

	f := lookup(fields, c.Field)
	if IsFieldEmpty(c.Field, f) {
		return false
	}

	left, right := resolve(e, c, f)
	switch c.Operator {
	case Equals:
		return equals(left, right, c.Field, f)
	case NotEqual:
		return !equals(left, right, c.Field, f)
	case Includes:
		in, ok := value.Includes(left, right)
		return ok && in
	case NotIncluded:
		in, ok := value.Includes(left, right)
		return ok && !in
	case GreaterThan:
		n, ok := value.CompareNumbers(left, right)
		return ok && n > 0
	case LessThan:
		n, ok := value.CompareNumbers(left, right)
		return ok && n < 0
	case IsBefore:
		n, ok := value.CompareDates(left, right)
		return ok && n < 0
	case IsAfter:
		n, ok := value.CompareDates(left, right)
		return ok && n > 0
	}
	return false
}

// Filter returns the entries that pass c, keeping their order.
func Filter(entries []model.Entry, c Criterion, fields map[string]field.Field) []model.Entry {
	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if Passes(e, c, fields) {
			out = append(out, e)
		}
	}
	return out
}

// resolve reads the entry side of c. Both sides are coerced to the field's
// type so that a stored value always equals itself.
func resolve(e model.Entry, c Criterion, f *field.Field) (value.Value, value.Value) {
	if c.Field == model.CreatedAt {
		return value.StringOf(e.CreatedAt), c.Operand
	}
	return field.Coerce(*f, e.Values[c.Field]), field.Coerce(*f, c.Operand)
}

// Dates are equal when they denote the same instant; text that does not
// parse falls back to strict equality.
func equals(left, right value.Value, ref string, f *field.Field) bool {
	if IsFieldDate(ref, f) {
		if n, ok := value.CompareDates(left, right); ok {
			return n == 0
		}
	}
	return value.Equal(left, right)
}
