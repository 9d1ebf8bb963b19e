package postgres

import (
	"context"
	"database/sql"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/baseplate/cms/internal/core/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS models (
	id         TEXT PRIMARY KEY,
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS deleted_models (
	id         TEXT PRIMARY KEY,
	deleted_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Repository stores each model, fields and entries included, as one JSONB
// document.
type Repository struct {
	db *Client
}

func NewRepository(db *Client) *Repository {
	return &Repository{db: db}
}

// Migrate creates the tables when they do not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.db.DB.ExecContext(ctx, schema)
	return errors.Wrap(err, "failed to create tables")
}

func (r *Repository) Catalog(ctx context.Context) (model.Catalog, error) {
	c := model.NewCatalog()

	rows, err := r.db.DB.QueryContext(ctx, `SELECT document FROM models ORDER BY created_at`)
	if err != nil {
		return c, errors.Wrap(err, "failed to list models")
	}
	defer rows.Close()

	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return c, errors.Wrap(err, "failed to scan model")
		}
		m, err := decode(doc)
		if err != nil {
			return c, err
		}
		c.Models[m.ID] = *m
	}
	if err := rows.Err(); err != nil {
		return c, errors.Wrap(err, "failed to list models")
	}

	var deleted pq.StringArray
	err = r.db.DB.QueryRowContext(ctx, `SELECT COALESCE(array_agg(id ORDER BY deleted_at), '{}') FROM deleted_models`).Scan(&deleted)
	if err != nil {
		return c, errors.Wrap(err, "failed to list deleted models")
	}
	c.DeletedModels = append(c.DeletedModels, deleted...)

	return c, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*model.Model, error) {
	var doc []byte
	err := r.db.DB.QueryRowContext(ctx, `SELECT document FROM models WHERE id = $1`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get model %s", id)
	}
	return decode(doc)
}

func (r *Repository) Save(ctx context.Context, m *model.Model) error {
	doc, err := json.Marshal(m)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal model %s", m.ID)
	}

	query := `
		INSERT INTO models (id, document)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET document = EXCLUDED.document, updated_at = CURRENT_TIMESTAMP`

	_, err = r.db.DB.ExecContext(ctx, query, m.ID, doc)
	return errors.Wrapf(err, "failed to save model %s", m.ID)
}

// Delete removes the model and logs its id in one transaction.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM models WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "failed to delete model %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO deleted_models (id) VALUES ($1) ON CONFLICT DO NOTHING`, id); err != nil {
		return errors.Wrapf(err, "failed to log deleted model %s", id)
	}

	return errors.Wrap(tx.Commit(), "failed to commit")
}

func decode(doc []byte) (*model.Model, error) {
	var m model.Model
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal model")
	}
	m = m.Normalize()
	return &m, nil
}
