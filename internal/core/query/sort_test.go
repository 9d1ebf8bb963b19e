package query

import (
	"slices"
	"testing"

	"github.com/baseplate/cms/internal/core/field"
	"github.com/baseplate/cms/internal/core/model"
	"github.com/baseplate/cms/internal/core/value"
)

func TestSort_CreatedAt(t *testing.T) {
	entries := []model.Entry{
		{ID: "1", CreatedAt: "1"},
		{ID: "2", CreatedAt: "2"},
		{ID: "3", CreatedAt: "3"},
	}

	if got := ids(Sort(entries, model.CreatedAt, model.Desc, nil)); !slices.Equal(got, []string{"3", "2", "1"}) {
		t.Errorf("desc = %v", got)
	}
	if got := ids(Sort(entries, model.CreatedAt, model.Asc, nil)); !slices.Equal(got, []string{"1", "2", "3"}) {
		t.Errorf("asc = %v", got)
	}
	if entries[0].ID != "1" || entries[2].ID != "3" {
		t.Error("input was reordered")
	}
}

func TestSort_CreatedAtTimestamps(t *testing.T) {
	entries := []model.Entry{
		{ID: "b", CreatedAt: "2024-03-01T10:00:00.000Z"},
		{ID: "c", CreatedAt: "2024-03-01T11:00:00.000+02:00"},
		{ID: "a", CreatedAt: "2024-03-01T08:00:00.000Z"},
	}
	if got := ids(Sort(entries, model.CreatedAt, model.Desc, nil)); !slices.Equal(got, []string{"b", "c", "a"}) {
		t.Errorf("desc = %v", got)
	}
}

func TestSort_Strings(t *testing.T) {
	fields := testFields()
	entries := []model.Entry{
		{ID: "b", Values: model.Values{"title": value.StringOf("b")}},
		{ID: "a", Values: model.Values{"title": value.StringOf("a")}},
		{ID: "c", Values: model.Values{"title": value.StringOf("c")}},
	}

	if got := ids(Sort(entries, "title", model.Asc, fields)); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("asc = %v", got)
	}
	if got := ids(Sort(entries, "title", model.Desc, fields)); !slices.Equal(got, []string{"c", "b", "a"}) {
		t.Errorf("desc = %v", got)
	}
}

func TestSort_StringsUseCollation(t *testing.T) {
	entries := []model.Entry{
		{ID: "upper", Values: model.Values{"title": value.StringOf("Banana")}},
		{ID: "lower", Values: model.Values{"title": value.StringOf("apple")}},
		{ID: "accent", Values: model.Values{"title": value.StringOf("éclair")}},
	}
	got := ids(Sort(entries, "title", model.Asc, testFields()))
	if !slices.Equal(got, []string{"lower", "upper", "accent"}) {
		t.Errorf("collated order = %v", got)
	}
}

func TestSort_Numbers(t *testing.T) {
	entries := []model.Entry{
		{ID: "ten", Values: model.Values{"pages": value.NumberOf(10)}},
		{ID: "nine", Values: model.Values{"pages": value.NumberOf(9)}},
		{ID: "hundred", Values: model.Values{"pages": value.NumberOf(100)}},
	}
	got := ids(Sort(entries, "pages", model.Asc, testFields()))
	if !slices.Equal(got, []string{"nine", "ten", "hundred"}) {
		t.Errorf("numeric order = %v", got)
	}
}

func TestSort_DateField(t *testing.T) {
	entries := []model.Entry{
		{ID: "feb", Values: model.Values{"published": value.StringOf("2/1/2020")}},
		{ID: "dec", Values: model.Values{"published": value.StringOf("12/1/2019")}},
		{ID: "mar", Values: model.Values{"published": value.StringOf("2020-03-01")}},
	}
	got := ids(Sort(entries, "published", model.Asc, testFields()))
	if !slices.Equal(got, []string{"dec", "feb", "mar"}) {
		t.Errorf("date order = %v", got)
	}
}

func TestSort_TiesAreStable(t *testing.T) {
	entries := []model.Entry{
		{ID: "1", Values: model.Values{"read": value.BoolOf(true)}},
		{ID: "2", Values: model.Values{"read": value.BoolOf(false)}},
		{ID: "3", Values: model.Values{"read": value.BoolOf(true)}},
		{ID: "4", Values: model.Values{"read": value.BoolOf(false)}},
	}
	if got := ids(Sort(entries, "read", model.Asc, testFields())); !slices.Equal(got, []string{"2", "4", "1", "3"}) {
		t.Errorf("asc = %v", got)
	}
	if got := ids(Sort(entries, "read", model.Desc, testFields())); !slices.Equal(got, []string{"1", "3", "2", "4"}) {
		t.Errorf("desc = %v", got)
	}
}

func TestSort_MissingAndMismatchedValuesTie(t *testing.T) {
	entries := []model.Entry{
		{ID: "text", Values: model.Values{"pages": value.StringOf("many")}},
		{ID: "none"},
		{ID: "bool", Values: model.Values{"pages": value.BoolOf(true)}},
		{ID: "orphan", Values: model.Values{"gone": value.NumberOf(1)}},
	}
	for _, by := range []string{"pages", "gone", "missing"} {
		got := ids(Sort(entries, by, model.Asc, testFields()))
		if len(got) != len(entries) {
			t.Fatalf("%s: lost entries: %v", by, got)
		}
	}
	got := ids(Sort(entries[:2], "pages", model.Desc, testFields()))
	if !slices.Equal(got, []string{"text", "none"}) {
		t.Errorf("absent value should tie: %v", got)
	}
}

// Multi-select lists have no ordering of their own; they compare as their
// comma-joined text.
func TestSort_SelectManyComparesJoinedText(t *testing.T) {
	tags := field.NewFieldState("select")
	tags.Option = field.OptionMany
	fields := map[string]field.Field{"tags": tags}

	entries := []model.Entry{
		{ID: "b", Values: model.Values{"tags": value.StringsOf("b")}},
		{ID: "ac", Values: model.Values{"tags": value.StringsOf("a", "c")}},
		{ID: "B", Values: model.Values{"tags": value.StringsOf("B")}},
	}
	got := ids(Sort(entries, "tags", model.Asc, fields))
	if !slices.Equal(got, []string{"B", "ac", "b"}) {
		t.Errorf("select-many order = %v", got)
	}
}

func TestRun_FallsBackToModelSortThenCreatedAt(t *testing.T) {
	m := model.New("Books")
	m.Fields = testFields()
	m.Entries = map[string]model.Entry{
		"x": {ID: "x", CreatedAt: "2024-01-01T00:00:00.000Z", Values: model.Values{"pages": value.NumberOf(50)}},
		"y": {ID: "y", CreatedAt: "2024-01-02T00:00:00.000Z", Values: model.Values{"pages": value.NumberOf(10)}},
		"z": {ID: "z", CreatedAt: "2024-01-03T00:00:00.000Z", Values: model.Values{"pages": value.NumberOf(30)}},
	}

	res := Run(m, &Request{})
	if res.Sort != model.CreatedAt || res.Order != model.Desc {
		t.Errorf("defaults = %s %s", res.Sort, res.Order)
	}
	if got := labeledIDs(res); !slices.Equal(got, []string{"z", "y", "x"}) {
		t.Errorf("newest first = %v", got)
	}

	m.Sort, m.Order = "pages", model.Asc
	if got := labeledIDs(Run(m, &Request{})); !slices.Equal(got, []string{"y", "z", "x"}) {
		t.Errorf("model sort = %v", got)
	}

	if got := labeledIDs(Run(m, &Request{Order: model.Desc})); !slices.Equal(got, []string{"x", "z", "y"}) {
		t.Errorf("request order = %v", got)
	}

	res = Run(m, &Request{Sort: "gone", Filter: Criterion{"pages", GreaterThan, value.NumberOf(20)}})
	if res.Sort != model.CreatedAt || !slices.Equal(labeledIDs(res), []string{"x", "z"}) {
		t.Errorf("removed sort field = %s %v", res.Sort, labeledIDs(res))
	}
	if res.Total != 2 || res.Entries[0].Label == "" {
		t.Errorf("response = %+v", res)
	}
}

func labeledIDs(res *Response) []string {
	out := make([]string, len(res.Entries))
	for i, e := range res.Entries {
		out[i] = e.ID
	}
	return out
}

func TestSort_DateStringsOrderByInstant(t *testing.T) {
	published := field.NewFieldState("date")
	published.ID = "published"
	fields := map[string]field.Field{"published": published}

	entries := []model.Entry{
		{ID: "jan10", Values: model.Values{"published": value.StringOf("1/10/2020, 1:00:00 PM")}},
		{ID: "jan2", Values: model.Values{"published": value.StringOf("1/2/2020, 1:00:00 PM")}},
		{ID: "feb1", Values: model.Values{"published": value.StringOf("2/1/2020, 9:00:00 AM")}},
	}
	if got := ids(Sort(entries, "published", model.Asc, fields)); !slices.Equal(got, []string{"jan2", "jan10", "feb1"}) {
		t.Errorf("asc = %v", got)
	}
}
