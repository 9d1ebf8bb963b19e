package query

import "github.com/baseplate/cms/internal/core/field"

// OperatorsFor lists the operators offered when filtering on ref.
func OperatorsFor(ref string, f *field.Field) []Operator {
	switch {
	case IsFieldDate(ref, f):
		return []Operator{Equals, NotEqual, IsBefore, IsAfter}
	case IsFieldNumber(ref, f):
		return []Operator{Equals, NotEqual, GreaterThan, LessThan}
	default:
		return []Operator{Equals, NotEqual, Includes, NotIncluded}
	}
}
