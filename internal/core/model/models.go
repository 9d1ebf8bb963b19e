package model

import (
	"cmp"
	"maps"
	"slices"

	"github.com/baseplate/cms/internal/core/field"
	"github.com/baseplate/cms/internal/core/value"
)

// CreatedAt is the pseudo-field reference meaning "the entry's creation
// timestamp" wherever a field id is expected.
const CreatedAt = "createdAt"

// Label options that do not name a field.
const (
	LabelDate = "date"
	LabelText = "text"
)

// LabelKey is the reserved values key holding a free-text entry label.
const LabelKey = "label"

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// ParseOrder reads "asc" as ascending and anything else as descending.
func ParseOrder(s string) Order {
	if Order(s) == Asc {
		return Asc
	}
	return Desc
}

// Values maps field ids to entry values.
type Values map[string]value.Value

type Entry struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Slug      string `json:"slug,omitempty"`
	Values    Values `json:"values"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Clone returns a copy of e with its own values map.
func (e Entry) Clone() Entry {
	e.Values = maps.Clone(e.Values)
	if e.Values == nil {
		e.Values = Values{}
	}
	return e
}

// Model is a user-defined schema together with its entries.
type Model struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Slug           string                 `json:"slug"`
	Fields         map[string]field.Field `json:"fields"`
	Entries        map[string]Entry       `json:"entries"`
	DeletedFields  []string               `json:"deletedFields"`
	DeletedEntries []string               `json:"deletedEntries"`
	Sort           string                 `json:"sort"`
	Order          Order                  `json:"order"`
	LabelOption    string                 `json:"labelOption,omitempty"`
	CreatedAt      string                 `json:"createdAt"`
	UpdatedAt      string                 `json:"updatedAt"`
}

// New returns an empty model with initialized collections.
func New(name string) Model {
	return Model{
		Name:           name,
		Fields:         map[string]field.Field{},
		Entries:        map[string]Entry{},
		DeletedFields:  []string{},
		DeletedEntries: []string{},
		Sort:           CreatedAt,
		Order:          Desc,
	}
}

// Clone returns a deep copy of m.
func (m Model) Clone() Model {
	out := m
	out.Fields = make(map[string]field.Field, len(m.Fields))
	for id, f := range m.Fields {
		out.Fields[id] = f.Clone()
	}
	out.Entries = make(map[string]Entry, len(m.Entries))
	for id, e := range m.Entries {
		out.Entries[id] = e.Clone()
	}
	out.DeletedFields = append([]string{}, m.DeletedFields...)
	out.DeletedEntries = append([]string{}, m.DeletedEntries...)
	return out
}

// Field returns the live field with the given id.
func (m Model) Field(id string) (field.Field, bool) {
	f, ok := m.Fields[id]
	return f, ok
}

// EntryList returns the entries in creation order, ids breaking ties.
func (m Model) EntryList() []Entry {
	out := make([]Entry, 0, len(m.Entries))
	for _, e := range m.Entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return cmp.Or(cmp.Compare(a.CreatedAt, b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// FieldList returns the fields ordered by creation, ids breaking ties.
func (m Model) FieldList() []field.Field {
	out := make([]field.Field, 0, len(m.Fields))
	for _, f := range m.Fields {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b field.Field) int {
		return cmp.Or(cmp.Compare(a.CreatedAt, b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// Catalog is the set of live models plus the ids of removed ones.
type Catalog struct {
	Models        map[string]Model `json:"models"`
	DeletedModels []string         `json:"deletedModels"`
}

func NewCatalog() Catalog {
	return Catalog{Models: map[string]Model{}, DeletedModels: []string{}}
}

type CreateModelRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Sort        string `json:"sort"`
	Order       Order  `json:"order"`
	LabelOption string `json:"labelOption"`
}

// ModelPatch carries the attributes to merge over a model; nil means keep.
type ModelPatch struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Sort        *string `json:"sort"`
	Order       *Order  `json:"order"`
	LabelOption *string `json:"labelOption"`
}

type CreateEntryRequest struct {
	ID     string `json:"id"`
	Values Values `json:"values"`
}

// EntryPatch values are merged key by key over the stored ones.
type EntryPatch struct {
	Values Values `json:"values"`
}

type ListModelsResponse struct {
	Models []*Model `json:"models"`
	Total  int      `json:"total"`
}

func sortModels(models []*Model) {
	slices.SortFunc(models, func(a, b *Model) int {
		return cmp.Or(cmp.Compare(a.CreatedAt, b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
}
