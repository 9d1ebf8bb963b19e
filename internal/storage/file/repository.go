package file

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/baseplate/cms/internal/core/model"
)

const (
	manifestFile = "models.json"
	deletedFile  = "deleted_models.json"
)

var ErrInvalidID = errors.New("model id cannot be used as a file name")

// Repository stores one JSON document per model in a directory, plus a
// models.json manifest listing the live model ids in creation order.
type Repository struct {
	mu  sync.Mutex
	dir string
}

// NewRepository uses dir, creating it and an empty manifest when missing.
func NewRepository(dir string) (*Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", dir)
	}
	r := &Repository{dir: dir}
	if _, err := os.Stat(r.path(manifestFile)); errors.Is(err, os.ErrNotExist) {
		if err := r.writeJSON(manifestFile, []string{}); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Repository) Catalog(ctx context.Context) (model.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := model.NewCatalog()
	ids, err := r.manifest()
	if err != nil {
		return c, err
	}
	for _, id := range ids {
		m, err := r.load(id)
		if err != nil {
			return c, err
		}
		if m != nil {
			c.Models[id] = *m
		}
	}

	if err := r.readJSON(deletedFile, &c.DeletedModels); err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, err
	}
	if c.DeletedModels == nil {
		c.DeletedModels = []string{}
	}
	return c, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*model.Model, error) {
	if err := checkID(id); err != nil {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.manifest()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(ids, id) {
		return nil, nil
	}
	return r.load(id)
}

// Save writes the model document and then lists its id in the manifest.
func (r *Repository) Save(ctx context.Context, m *model.Model) error {
	if err := checkID(m.ID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.writeJSON(modelFile(m.ID), m); err != nil {
		return err
	}

	ids, err := r.manifest()
	if err != nil {
		return err
	}
	if slices.Contains(ids, m.ID) {
		return nil
	}
	return r.writeJSON(manifestFile, append(ids, m.ID))
}

// Delete drops the id from the manifest, logs it as removed and deletes the
// model document.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return model.ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.manifest()
	if err != nil {
		return err
	}
	if !slices.Contains(ids, id) {
		return model.ErrNotFound
	}

	var deleted []string
	if err := r.readJSON(deletedFile, &deleted); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := r.writeJSON(manifestFile, slices.DeleteFunc(ids, func(s string) bool { return s == id })); err != nil {
		return err
	}
	if err := r.writeJSON(deletedFile, append(deleted, id)); err != nil {
		return err
	}
	if err := os.Remove(r.path(modelFile(id))); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "failed to delete model %s", id)
	}
	return nil
}

func (r *Repository) manifest() ([]string, error) {
	var ids []string
	if err := r.readJSON(manifestFile, &ids); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	return ids, nil
}

// load returns nil when the model document is missing.
func (r *Repository) load(id string) (*model.Model, error) {
	var m model.Model
	if err := r.readJSON(modelFile(id), &m); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	m = m.Normalize()
	return &m, nil
}

func (r *Repository) path(name string) string {
	return filepath.Join(r.dir, name)
}

// readJSON decodes a file into v. Documents that were saved as a JSON string
// holding JSON are decoded twice.
func (r *Repository) readJSON(name string, v any) error {
	data, err := os.ReadFile(r.path(name))
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", name)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return errors.Wrapf(err, "failed to unmarshal %s", name)
		}
		data = []byte(inner)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "failed to unmarshal %s", name)
	}
	return nil
}

// writeJSON replaces the file through a temporary sibling so readers never
// see a partial document.
func (r *Repository) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", name)
	}

	tmp, err := os.CreateTemp(r.dir, name+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to write %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), r.path(name)), "failed to replace %s", name)
}

func modelFile(id string) string {
	return "model_" + id + ".json"
}

func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return ErrInvalidID
	}
	return nil
}
