package query

import (
	"github.com/baseplate/cms/internal/core/field"
	"github.com/baseplate/cms/internal/core/model"
)

// IsFieldEmpty reports whether ref selects nothing: it is blank, or it is
// not createdAt and no field backs it.
func IsFieldEmpty(ref string, f *field.Field) bool {
	if ref == model.CreatedAt {
		return false
	}
	return ref == "" || f == nil
}

// IsFieldDate reports whether ref reads a date: createdAt or a date field.
func IsFieldDate(ref string, f *field.Field) bool {
	if ref == model.CreatedAt {
		return true
	}
	return f != nil && f.Type() == field.TypeDate
}

// IsFieldNumber reports whether ref reads a number field.
func IsFieldNumber(ref string, f *field.Field) bool {
	if ref == model.CreatedAt {
		return false
	}
	return f != nil && f.Type() == field.TypeNumber
}

// lookup returns the live field behind ref, or nil.
func lookup(fields map[string]field.Field, ref string) *field.Field {
	f, ok := fields[ref]
	if !ok {
		return nil
	}
	return &f
}
