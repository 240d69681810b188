package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/example/toyshub/internal/domain/page"
)

// PostgresPages implements page.Store.
type PostgresPages struct {
	db *sql.DB
}

func NewPostgresPages(db *sql.DB) *PostgresPages {
	return &PostgresPages{db: db}
}

func (s *PostgresPages) Get(ctx context.Context, slug string) (*page.Page, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM pages WHERE slug = $1`, slug,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, page.ErrPageNotFound
	}
	if err != nil {
		return nil, err
	}
	var p page.Page
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresPages) Upsert(ctx context.Context, p *page.Page) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO pages (slug, doc) VALUES ($1, $2)
		 ON CONFLICT (slug) DO UPDATE SET doc = EXCLUDED.doc`,
		p.Slug, doc,
	)
	return err
}
