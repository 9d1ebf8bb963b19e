package memory

import (
	"context"
	"sync"

	"github.com/baseplate/cms/internal/core/model"
)

// Repository keeps the catalog in process memory. Models are cloned on the
// way in and out so callers never share maps with the store.
type Repository struct {
	mu      sync.RWMutex
	catalog model.Catalog
}

func NewRepository() *Repository {
	return &Repository{catalog: model.NewCatalog()}
}

func (r *Repository) Catalog(ctx context.Context) (model.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := model.NewCatalog()
	for id, m := range r.catalog.Models {
		out.Models[id] = m.Clone()
	}
	out.DeletedModels = append(out.DeletedModels, r.catalog.DeletedModels...)
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*model.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.catalog.Models[id]
	if !ok {
		return nil, nil
	}
	clone := m.Clone()
	return &clone, nil
}

func (r *Repository) Save(ctx context.Context, m *model.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.catalog.Models[m.ID] = m.Clone()
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := model.ApplyRemoveModel(r.catalog, id)
	if err != nil {
		return err
	}
	r.catalog = next
	return nil
}
