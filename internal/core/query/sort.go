package query

import (
	"slices"

	"github.com/baseplate/cms/internal/core/field"
	"github.com/baseplate/cms/internal/core/model"
	"github.com/baseplate/cms/internal/core/value"
)

// Sort returns the entries ordered by the given field (or createdAt) and
// direction. Ties keep their input order and the input is not modified.
func Sort(entries []model.Entry, by string, order model.Order, fields map[string]field.Field) []model.Entry {
	compare := comparator(by, lookup(fields, by))
	read := func(e model.Entry) value.Value {
		if by == model.CreatedAt {
			return value.StringOf(e.CreatedAt)
		}
		return e.Values[by]
	}

	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b model.Entry) int {
		n := compare(read(a), read(b))
		if order == model.Desc {
			return -n
		}
		return n
	})
	return out
}

// comparator picks the ascending ordering for values read through ref.
func comparator(ref string, f *field.Field) func(a, b value.Value) int {
	if ref == model.CreatedAt {
		return compareDates
	}
	if f == nil {
		return compareGeneric
	}

	switch f.Attrs.(type) {
	case field.DateAttributes:
		return compareDates
	case field.NumberAttributes:
		return compareNumbers
	case field.BooleanAttributes:
		return compareBools
	case field.TextAttributes, field.SelectAttributes:
		return compareGeneric
	}
	return compareGeneric
}

func compareDates(a, b value.Value) int {
	if n, ok := value.CompareDates(a, b); ok {
		return n
	}
	return compareGeneric(a, b)
}

func compareNumbers(a, b value.Value) int {
	if n, ok := value.CompareNumbers(a, b); ok {
		return n
	}
	return compareGeneric(a, b)
}

func compareBools(a, b value.Value) int {
	if n, ok := value.CompareBools(a, b); ok {
		return n
	}
	return compareGeneric(a, b)
}

// compareGeneric collates two strings and otherwise falls back to a loose
// relational comparison, which ties on absent or mismatched values.
func compareGeneric(a, b value.Value) int {
	x, okA := a.Str()
	y, okB := b.Str()
	if okA && okB {
		return value.CompareStrings(x, y)
	}
	return value.Loose(a, b)
}
