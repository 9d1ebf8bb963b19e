package model

import "context"

// Repository persists models. Each model is stored as one document holding
// its fields and entries.
type Repository interface {
	// Catalog returns every live model and the ids of removed ones.
	Catalog(ctx context.Context) (Catalog, error)
	// Get returns nil without error when no live model has the id.
	Get(ctx context.Context, id string) (*Model, error)
	// Save inserts or replaces the model.
	Save(ctx context.Context, m *Model) error
	// Delete drops the model and records its id as removed.
	Delete(ctx context.Context, id string) error
}
