package value

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ISOLayout matches the millisecond ISO-8601 form used for createdAt and
// updatedAt stamps.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// LocaleLayout is the en-US "date, time" rendering used for date defaults
// and date labels.
const LocaleLayout = "1/2/2006, 3:04:05 PM"

var layouts = []string{
	time.RFC3339Nano,
	ISOLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
	LocaleLayout,
	"1/2/2006, 15:04:05",
	"1/2/2006",
	"15:04:05",
	"15:04",
}

// Stamp renders t as an ISO-8601 UTC timestamp.
func Stamp(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseTime parses ISO and locale-rendered date strings. Bare integers are
// read as epoch milliseconds.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ToTime converts a string or epoch-millisecond number to a time.
func ToTime(v Value) (time.Time, bool) {
	switch v.kind {
	case String:
		return ParseTime(v.str)
	case Number:
		return time.UnixMilli(int64(v.num)).UTC(), true
	}
	return time.Time{}, false
}
