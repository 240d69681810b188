package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/example/toyshub/internal/domain/catalog"
)

// PostgresCategories implements catalog.CategoryStore.
type PostgresCategories struct {
	db *sql.DB
}

func NewPostgresCategories(db *sql.DB) *PostgresCategories {
	return &PostgresCategories{db: db}
}

func (s *PostgresCategories) Insert(ctx context.Context, c *catalog.Category) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, doc) VALUES ($1, $2, $3)`,
		c.ID, c.Name, doc,
	)
	return err
}

func (s *PostgresCategories) Update(ctx context.Context, c *catalog.Category) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = $2, doc = $3 WHERE id = $1`,
		c.ID, c.Name, doc,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}

func (s *PostgresCategories) Get(ctx context.Context, id string) (*catalog.Category, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM categories WHERE id = $1`, id,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, catalog.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	var c catalog.Category
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresCategories) List(ctx context.Context) ([]*catalog.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*catalog.Category
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var c catalog.Category
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (s *PostgresCategories) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}
