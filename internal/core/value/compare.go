package value

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collators keep internal buffers, so each comparison borrows one.
var collators = sync.Pool{
	New: func() any { return collate.New(language.English) },
}

// CompareStrings orders two strings using locale-aware collation.
func CompareStrings(a, b string) int {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	return c.CompareString(a, b)
}

// Equal reports strict equality. Lists compare as sets: same members,
// regardless of order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Absent:
		return true
	case String:
		return a.str == b.str
	case Number:
		return a.num == b.num
	case Bool:
		return a.b == b.b
	case Range:
		return a.rng == b.rng
	case Strings:
		return sameMembers(a.strs, b.strs)
	}
	return false
}

func sameMembers(a, b []string) bool {
	for _, s := range a {
		if !slices.Contains(b, s) {
			return false
		}
	}
	for _, s := range b {
		if !slices.Contains(a, s) {
			return false
		}
	}
	return true
}

// Includes reports substring containment for strings and membership for
// lists. The second result is false when haystack is neither.
func Includes(haystack, needle Value) (bool, bool) {
	switch haystack.kind {
	case String:
		return strings.Contains(haystack.str, needle.String()), true
	case Strings:
		if items, ok := needle.Items(); ok {
			for _, item := range items {
				if !slices.Contains(haystack.strs, item) {
					return false, true
				}
			}
			return true, true
		}
		return slices.Contains(haystack.strs, needle.String()), true
	}
	return false, false
}

// ToNumber coerces numbers, numeric strings and booleans.
func ToNumber(v Value) (float64, bool) {
	switch v.kind {
	case Number:
		return v.num, !math.IsNaN(v.num)
	case Bool:
		if v.b {
			return 1, true
		}
		return 0, true
	case String:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// CompareNumbers orders two values numerically.
func CompareNumbers(a, b Value) (int, bool) {
	x, okA := ToNumber(a)
	y, okB := ToNumber(b)
	if !okA || !okB {
		return 0, false
	}
	return cmp.Compare(x, y), true
}

// CompareBools orders false before true.
func CompareBools(a, b Value) (int, bool) {
	x, okA := a.Bool()
	y, okB := b.Bool()
	if !okA || !okB {
		return 0, false
	}
	return cmp.Compare(boolInt(x), boolInt(y)), true
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// CompareDates orders two values as points in time. Strings are parsed with
// ParseTime, numbers are epoch milliseconds.
func CompareDates(a, b Value) (int, bool) {
	x, okA := ToTime(a)
	y, okB := ToTime(b)
	if !okA || !okB {
		return 0, false
	}
	return x.Compare(y), true
}

// Loose orders two values the way a dynamically typed relational operator
// would: lists collapse to their comma-joined text, two texts compare by
// code point, anything else compares as numbers. Absent or non-numeric
// operands tie.
func Loose(a, b Value) int {
	if a.kind == Absent || b.kind == Absent {
		return 0
	}
	pa, pb := primitive(a), primitive(b)
	if pa.kind == String && pb.kind == String {
		return strings.Compare(pa.str, pb.str)
	}
	x, okA := looseNumber(pa)
	y, okB := looseNumber(pb)
	if !okA || !okB {
		return 0
	}
	return cmp.Compare(x, y)
}

func primitive(v Value) Value {
	if v.kind == Range || v.kind == Strings {
		return StringOf(v.String())
	}
	return v
}

// Blank text counts as zero here, unlike ToNumber.
func looseNumber(v Value) (float64, bool) {
	if v.kind == String && strings.TrimSpace(v.str) == "" {
		return 0, true
	}
	return ToNumber(v)
}
