package main

import (
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/baseplate/cms/internal/core/model"
	"github.com/baseplate/cms/internal/core/query"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderModels(models []*model.Model) string {
	t := newTable().Headers("ID", "NAME", "FIELDS", "ENTRIES", "SORT", "ORDER")
	for _, m := range models {
		t.Row(m.ID, m.Name, strconv.Itoa(len(m.Fields)), strconv.Itoa(len(m.Entries)), m.Sort, string(m.Order))
	}
	return t.Render()
}

// renderEntries prints one row per entry with a column per live field, in
// field creation order.
func renderEntries(m model.Model, entries []query.LabeledEntry) string {
	fields := m.FieldList()

	headers := []string{"LABEL", "CREATED"}
	for _, f := range fields {
		headers = append(headers, f.Name)
	}
	t := newTable().Headers(headers...)

	for _, e := range entries {
		display := model.DisplayValues(m, e.Entry)
		row := []string{e.Label, e.CreatedAt}
		for _, f := range fields {
			row = append(row, display[f.ID])
		}
		t.Row(row...)
	}
	return t.Render()
}
