package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"rssmerge/domain"
)

var (
	ErrSourceExists   = errors.New("source already registered")
	ErrSourceNotFound = errors.New("source not found")
)

const uniqueViolation = "23505"

// Repository stores the registered source list.
type Repository struct{ db *sql.DB }

var _ domain.SourceRepository = (*Repository)(nil)

func New(db *sql.DB) *Repository { return &Repository{db: db} }

func (r *Repository) Ensure(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE EXTENSION IF NOT EXISTS pgcrypto;
CREATE TABLE IF NOT EXISTS sources (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    created_at TIMESTAMP NOT NULL DEFAULT now(),
    url TEXT UNIQUE NOT NULL
);
`)
	return err
}

func (r *Repository) AddSource(ctx context.Context, url string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO sources (url) VALUES ($1)`, url)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrSourceExists
	}
	return err
}

func (r *Repository) DeleteSource(ctx context.Context, url string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sources WHERE url = $1`, url)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSourceNotFound
	}
	return nil
}

// ListSources returns sources oldest first; limit <= 0 means all.
func (r *Repository) ListSources(ctx context.Context, limit int) ([]domain.RegisteredSource, error) {
	q := `SELECT id, created_at, url FROM sources ORDER BY created_at ASC, url ASC`
	if limit > 0 {
		q += ` LIMIT $1`
		return scanSources(r.db.QueryContext(ctx, q, limit))
	}
	return scanSources(r.db.QueryContext(ctx, q))
}

func scanSources(rows *sql.Rows, err error) ([]domain.RegisteredSource, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.RegisteredSource
	for rows.Next() {
		var s domain.RegisteredSource
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.URL); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
