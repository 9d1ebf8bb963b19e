package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/baseplate/cms/internal/core/field"
	"github.com/baseplate/cms/internal/core/validation"
	"github.com/baseplate/cms/internal/core/value"
	"github.com/baseplate/cms/internal/log"
)

var (
	ErrNameRequired       = errors.New("model name is required")
	ErrInvalidSort        = errors.New("sort must be createdAt or a field id")
	ErrInvalidLabelOption = errors.New("label option must be date, text or a field id")
)

// Service applies model, field and entry mutations one at a time so that
// concurrent requests never lose each other's writes.
type Service struct {
	mu        sync.Mutex
	repo      Repository
	validator *validation.Validator
	namespace uuid.UUID
	now       func() time.Time
}

func NewService(repo Repository, validator *validation.Validator, namespace uuid.UUID) *Service {
	if namespace == uuid.Nil {
		namespace = DefaultNamespace
	}
	return &Service{
		repo:      repo,
		validator: validator,
		namespace: namespace,
		now:       time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req *CreateModelRequest) (*Model, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	m := New(req.Name)
	m.ID = req.ID
	if m.ID == "" {
		m.ID = NewModelID(s.namespace, req.Name, now)
	}
	m.Slug = req.Slug
	if req.Sort != "" && req.Sort != CreatedAt {
		return nil, ErrInvalidSort
	}
	if req.Order != "" {
		m.Order = ParseOrder(string(req.Order))
	}
	switch req.LabelOption {
	case "", LabelDate, LabelText:
		m.LabelOption = req.LabelOption
	default:
		return nil, ErrInvalidLabelOption
	}

	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	_, created, err := ApplyAddModel(catalog, m, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, &created); err != nil {
		return nil, err
	}
	log.Debugf("created model %s (%s)", created.ID, created.Name)
	return &created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Model, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	normalized := m.Normalize()
	return &normalized, nil
}

func (s *Service) List(ctx context.Context) (*ListModelsResponse, error) {
	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]*Model, 0, len(catalog.Models))
	for _, m := range catalog.Models {
		normalized := m.Normalize()
		models = append(models, &normalized)
	}
	sortModels(models)

	return &ListModelsResponse{
		Models: models,
		Total:  len(models),
	}, nil
}

// Update merges patch over the model's attributes. A non-empty ifUpdatedAt
// must equal the stored updatedAt.
func (s *Service) Update(ctx context.Context, id string, patch *ModelPatch, ifUpdatedAt string) (*Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, ErrNameRequired
	}
	if patch.Sort != nil && *patch.Sort != CreatedAt {
		if _, ok := m.Fields[*patch.Sort]; !ok {
			return nil, ErrInvalidSort
		}
	}
	if patch.LabelOption != nil {
		if err := checkLabelOption(*m, *patch.LabelOption); err != nil {
			return nil, err
		}
	}

	catalog := Catalog{Models: map[string]Model{id: *m}}
	_, updated, err := ApplyUpdateModel(catalog, id, *patch, ifUpdatedAt, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, &updated); err != nil {
		return nil, err
	}
	log.Debugf("updated model %s", id)
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Debugf("deleted model %s", id)
	return nil
}

// AddField stores f on the model, assigning an id when it has none.
func (s *Service) AddField(ctx context.Context, modelID string, f field.Field) (*field.Field, error) {
	if err := field.Check(f); err != nil {
		return nil, err
	}

	var added field.Field
	err := s.mutate(ctx, modelID, func(m Model) (Model, error) {
		next, created, err := ApplyAddField(m, f, s.now())
		added = created
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

func (s *Service) GetField(ctx context.Context, modelID, fieldID string) (*field.Field, error) {
	m, err := s.Get(ctx, modelID)
	if err != nil {
		return nil, err
	}
	f, ok := m.Field(fieldID)
	if !ok {
		return nil, ErrFieldNotFound
	}
	return &f, nil
}

func (s *Service) ListFields(ctx context.Context, modelID string) ([]field.Field, error) {
	m, err := s.Get(ctx, modelID)
	if err != nil {
		return nil, err
	}
	return m.FieldList(), nil
}

// UpdateField replaces the field with the one decoded from data. Attributes
// missing from data take the defaults of the field's type; a "type" key
// re-bases the field on that type instead.
func (s *Service) UpdateField(ctx context.Context, modelID, fieldID string, data []byte, ifUpdatedAt string) (*field.Field, error) {
	var updated field.Field
	err := s.mutate(ctx, modelID, func(m Model) (Model, error) {
		current, ok := m.Field(fieldID)
		if !ok {
			return m, ErrFieldNotFound
		}
		base := field.ChangeType(field.Field{}, current.Type(), s.now())
		base.Name = current.Name
		next, err := field.Merge(base, data)
		if err != nil {
			return m, err
		}
		if err := field.Check(next); err != nil {
			return m, err
		}
		m, updated, err = ApplyUpdateField(m, fieldID, next, ifUpdatedAt, s.now())
		return m, err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteField removes the field. Entry values stored under its id are kept.
// A sort or label option pointing at the field is reset, which counts as a
// change to the model itself.
func (s *Service) DeleteField(ctx context.Context, modelID, fieldID string) error {
	return s.mutate(ctx, modelID, func(m Model) (Model, error) {
		next, err := ApplyRemoveField(m, fieldID)
		if err != nil {
			return m, err
		}
		reset := false
		if next.Sort == fieldID {
			next.Sort = CreatedAt
			reset = true
		}
		if next.LabelOption == fieldID {
			next.LabelOption = LabelDate
			reset = true
		}
		if reset {
			next.UpdatedAt = value.Stamp(s.now())
		}
		return next, nil
	})
}

// AddEntry fills missing values from field defaults, coerces them to their
// field's type and validates the result.
func (s *Service) AddEntry(ctx context.Context, modelID string, req *CreateEntryRequest) (*Entry, error) {
	var added Entry
	err := s.mutate(ctx, modelID, func(m Model) (Model, error) {
		values := Values{}
		for k, v := range req.Values {
			values[k] = v
		}
		for id, f := range m.Fields {
			if v, ok := values[id]; !ok || v.IsAbsent() {
				values[id] = f.DefaultValue
			}
			values[id] = field.Coerce(f, values[id])
		}

		if err := s.validator.Validate(validationData(values), field.Schema(m.Name, m.Fields)); err != nil {
			return m, err
		}

		next, created, err := ApplyAddEntry(m, Entry{ID: req.ID, Values: values}, s.now())
		added = created
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

func (s *Service) GetEntry(ctx context.Context, modelID, entryID string) (*Entry, error) {
	m, err := s.Get(ctx, modelID)
	if err != nil {
		return nil, err
	}
	e, ok := m.Entries[entryID]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return &e, nil
}

func (s *Service) ListEntries(ctx context.Context, modelID string) ([]Entry, error) {
	m, err := s.Get(ctx, modelID)
	if err != nil {
		return nil, err
	}
	return m.EntryList(), nil
}

// UpdateEntry merges patch values over the entry's and validates the
// merged values without enforcing required fields.
func (s *Service) UpdateEntry(ctx context.Context, modelID, entryID string, patch *EntryPatch, ifUpdatedAt string) (*Entry, error) {
	var updated Entry
	err := s.mutate(ctx, modelID, func(m Model) (Model, error) {
		coerced := EntryPatch{Values: Values{}}
		for k, v := range patch.Values {
			if f, ok := m.Fields[k]; ok {
				v = field.Coerce(f, v)
			}
			coerced.Values[k] = v
		}

		next, e, err := ApplyUpdateEntry(m, entryID, coerced, ifUpdatedAt, s.now())
		if err != nil {
			return m, err
		}
		if err := s.validator.ValidatePartial(validationData(e.Values), field.Schema(m.Name, m.Fields)); err != nil {
			return m, err
		}
		updated = e
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteEntry(ctx context.Context, modelID, entryID string) error {
	return s.mutate(ctx, modelID, func(m Model) (Model, error) {
		return ApplyRemoveEntry(m, entryID)
	})
}

// mutate loads the model, applies fn and saves the result under the
// service lock.
func (s *Service) mutate(ctx context.Context, modelID string, fn func(Model) (Model, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.Get(ctx, modelID)
	if err != nil {
		return err
	}
	next, err := fn(m.Clone())
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, &next); err != nil {
		return fmt.Errorf("save model %s: %w", modelID, err)
	}
	log.Debugf("saved model %s (%d fields, %d entries)", modelID, len(next.Fields), len(next.Entries))
	return nil
}

func checkLabelOption(m Model, option string) error {
	switch option {
	case "", LabelDate, LabelText:
		return nil
	}
	if _, ok := m.Fields[option]; ok {
		return nil
	}
	return ErrInvalidLabelOption
}

// validationData drops absent values so they read as missing keys.
func validationData(values Values) map[string]interface{} {
	data := make(map[string]interface{}, len(values))
	for k, v := range values {
		if v.IsPresent() {
			data[k] = v.Interface()
		}
	}
	return data
}
