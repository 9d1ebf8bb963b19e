package model

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/baseplate/cms/internal/core/field"
	"github.com/baseplate/cms/internal/core/value"
)

var (
	ErrNotFound      = errors.New("model not found")
	ErrFieldNotFound = errors.New("field not found")
	ErrEntryNotFound = errors.New("entry not found")
	ErrAlreadyExists = errors.New("id already in use")
	ErrConflict      = errors.New("record was modified since it was read")
	ErrReservedID    = errors.New("field id is reserved")
)

// reservedFieldIDs already have a meaning wherever a field id is read.
var reservedFieldIDs = []string{CreatedAt, LabelKey, LabelDate, LabelText}

// IsReservedFieldID reports whether id cannot name a field.
func IsReservedFieldID(id string) bool {
	return slices.Contains(reservedFieldIDs, id)
}

// DefaultNamespace seeds name-based model ids.
var DefaultNamespace = uuid.MustParse("be203641-9392-4ae6-acd6-fe729f6a4cce")

// NewModelID derives a model id from its name and creation time.
func NewModelID(namespace uuid.UUID, name string, now time.Time) string {
	return uuid.NewSHA1(namespace, []byte(name+now.UTC().String())).String()
}

// lifecycle describes how one entity kind is identified and stamped, so the
// add/update/remove transitions are written once for models, fields and
// entries.
type lifecycle[T any] struct {
	notFound  error
	id        func(T) string
	withID    func(T, string) T
	updatedAt func(T) string
	stamped   func(v T, createdAt, updatedAt string) T
	newID     func(T, time.Time) string
}

// add stores v under its id, assigning one when empty. Ids that are live or
// were retired are rejected.
func (l lifecycle[T]) add(live map[string]T, retired []string, v T, now time.Time) (map[string]T, T, error) {
	id := l.id(v)
	if id == "" {
		id = l.newID(v, now)
		v = l.withID(v, id)
	}
	if _, ok := live[id]; ok || slices.Contains(retired, id) {
		var zero T
		return live, zero, ErrAlreadyExists
	}

	stamp := value.Stamp(now)
	v = l.stamped(v, stamp, stamp)

	next := maps.Clone(live)
	if next == nil {
		next = map[string]T{}
	}
	next[id] = v
	return next, v, nil
}

// update replaces the record under id with merge(current). A non-empty
// ifUpdatedAt must match the stored stamp.
func (l lifecycle[T]) update(live map[string]T, id, ifUpdatedAt string, merge func(T) T, now time.Time) (map[string]T, T, error) {
	var zero T
	current, ok := live[id]
	if !ok {
		return live, zero, l.notFound
	}
	if ifUpdatedAt != "" && ifUpdatedAt != l.updatedAt(current) {
		return live, zero, ErrConflict
	}

	v := l.withID(merge(current), id)
	v = l.stamped(v, "", value.Stamp(now))

	next := maps.Clone(live)
	next[id] = v
	return next, v, nil
}

// remove drops id from the live set and appends it to the retired log.
func (l lifecycle[T]) remove(live map[string]T, retired []string, id string) (map[string]T, []string, error) {
	if _, ok := live[id]; !ok {
		return live, retired, l.notFound
	}
	next := maps.Clone(live)
	delete(next, id)
	return next, append(slices.Clone(retired), id), nil
}

var models = lifecycle[Model]{
	notFound:  ErrNotFound,
	id:        func(m Model) string { return m.ID },
	withID:    func(m Model, id string) Model { m.ID = id; return m },
	updatedAt: func(m Model) string { return m.UpdatedAt },
	stamped: func(m Model, createdAt, updatedAt string) Model {
		if createdAt != "" {
			m.CreatedAt = createdAt
		}
		m.UpdatedAt = updatedAt
		return m
	},
	newID: func(m Model, now time.Time) string { return NewModelID(DefaultNamespace, m.Name, now) },
}

var fields = lifecycle[field.Field]{
	notFound:  ErrFieldNotFound,
	id:        func(f field.Field) string { return f.ID },
	withID:    func(f field.Field, id string) field.Field { f.ID = id; return f },
	updatedAt: func(f field.Field) string { return f.UpdatedAt },
	stamped: func(f field.Field, createdAt, updatedAt string) field.Field {
		if createdAt != "" {
			f.CreatedAt = createdAt
		}
		f.UpdatedAt = updatedAt
		return f
	},
	newID: func(field.Field, time.Time) string { return uuid.NewString() },
}

var entries = lifecycle[Entry]{
	notFound:  ErrEntryNotFound,
	id:        func(e Entry) string { return e.ID },
	withID:    func(e Entry, id string) Entry { e.ID = id; return e },
	updatedAt: func(e Entry) string { return e.UpdatedAt },
	stamped: func(e Entry, createdAt, updatedAt string) Entry {
		if createdAt != "" {
			e.CreatedAt = createdAt
		}
		e.UpdatedAt = updatedAt
		return e
	},
	newID: func(Entry, time.Time) string { return uuid.NewString() },
}

// Normalize fills nil collections so a decoded model can be mutated.
func (m Model) Normalize() Model {
	if m.Fields == nil {
		m.Fields = map[string]field.Field{}
	}
	if m.Entries == nil {
		m.Entries = map[string]Entry{}
	}
	if m.DeletedFields == nil {
		m.DeletedFields = []string{}
	}
	if m.DeletedEntries == nil {
		m.DeletedEntries = []string{}
	}
	if m.Sort == "" {
		m.Sort = CreatedAt
	}
	if m.Order == "" {
		m.Order = Desc
	}
	return m
}

func ApplyAddModel(c Catalog, m Model, now time.Time) (Catalog, Model, error) {
	live, added, err := models.add(c.Models, c.DeletedModels, m.Normalize(), now)
	if err != nil {
		return c, Model{}, err
	}
	c.Models = live
	return c, added, nil
}

// ApplyUpdateModel merges patch over the model's own attributes. The id
// never changes.
func ApplyUpdateModel(c Catalog, id string, patch ModelPatch, ifUpdatedAt string, now time.Time) (Catalog, Model, error) {
	live, updated, err := models.update(c.Models, id, ifUpdatedAt, func(m Model) Model {
		if patch.Name != nil {
			m.Name = *patch.Name
		}
		if patch.Slug != nil {
			m.Slug = *patch.Slug
		}
		if patch.Sort != nil {
			m.Sort = *patch.Sort
		}
		if patch.Order != nil {
			m.Order = ParseOrder(string(*patch.Order))
		}
		if patch.LabelOption != nil {
			m.LabelOption = *patch.LabelOption
		}
		return m
	}, now)
	if err != nil {
		return c, Model{}, err
	}
	c.Models = live
	return c, updated, nil
}

func ApplyRemoveModel(c Catalog, id string) (Catalog, error) {
	live, retired, err := models.remove(c.Models, c.DeletedModels, id)
	if err != nil {
		return c, err
	}
	c.Models, c.DeletedModels = live, retired
	return c, nil
}

// Field and entry transitions leave the model's own updatedAt alone.

func ApplyAddField(m Model, f field.Field, now time.Time) (Model, field.Field, error) {
	if IsReservedFieldID(f.ID) {
		return m, field.Field{}, fmt.Errorf("%w: %q", ErrReservedID, f.ID)
	}
	live, added, err := fields.add(m.Fields, m.DeletedFields, f, now)
	if err != nil {
		return m, field.Field{}, err
	}
	m.Fields = live
	return m, added, nil
}

// ApplyUpdateField replaces every attribute of the field except its id and
// creation stamp.
func ApplyUpdateField(m Model, id string, f field.Field, ifUpdatedAt string, now time.Time) (Model, field.Field, error) {
	live, updated, err := fields.update(m.Fields, id, ifUpdatedAt, func(current field.Field) field.Field {
		next := f.Clone()
		next.CreatedAt = current.CreatedAt
		return next
	}, now)
	if err != nil {
		return m, field.Field{}, err
	}
	m.Fields = live
	return m, updated, nil
}

func ApplyRemoveField(m Model, id string) (Model, error) {
	live, retired, err := fields.remove(m.Fields, m.DeletedFields, id)
	if err != nil {
		return m, err
	}
	m.Fields, m.DeletedFields = live, retired
	return m, nil
}

func ApplyAddEntry(m Model, e Entry, now time.Time) (Model, Entry, error) {
	live, added, err := entries.add(m.Entries, m.DeletedEntries, e.Clone(), now)
	if err != nil {
		return m, Entry{}, err
	}
	m.Entries = live
	return m, added, nil
}

// ApplyUpdateEntry shallow-merges patch values over the stored ones.
func ApplyUpdateEntry(m Model, id string, patch EntryPatch, ifUpdatedAt string, now time.Time) (Model, Entry, error) {
	live, updated, err := entries.update(m.Entries, id, ifUpdatedAt, func(current Entry) Entry {
		next := current.Clone()
		for k, v := range patch.Values {
			next.Values[k] = v
		}
		return next
	}, now)
	if err != nil {
		return m, Entry{}, err
	}
	m.Entries = live
	return m, updated, nil
}

func ApplyRemoveEntry(m Model, id string) (Model, error) {
	live, retired, err := entries.remove(m.Entries, m.DeletedEntries, id)
	if err != nil {
		return m, err
	}
	m.Entries, m.DeletedEntries = live, retired
	return m, nil
}
