package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/example/toyshub/internal/domain/catalog"
)

// PostgresProducts implements catalog.ProductStore over the products table.
type PostgresProducts struct {
	db *sql.DB
}

func NewPostgresProducts(db *sql.DB) *PostgresProducts {
	return &PostgresProducts{db: db}
}

func (s *PostgresProducts) Insert(ctx context.Context, p *catalog.Product) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO products (id, sku, name, category_id, created_at, doc)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.SKU, p.Name, p.CategoryID, p.CreatedAt, doc,
	)
	if isUniqueViolation(err) {
		return catalog.ErrDuplicateProduct
	}
	return err
}

func (s *PostgresProducts) Update(ctx context.Context, p *catalog.Product) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET sku = $2, name = $3, category_id = $4, doc = $5 WHERE id = $1`,
		p.ID, p.SKU, p.Name, p.CategoryID, doc,
	)
	if isUniqueViolation(err) {
		return catalog.ErrDuplicateProduct
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

func (s *PostgresProducts) Get(ctx context.Context, id string) (*catalog.Product, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM products WHERE id = $1`, id,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	var p catalog.Product
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresProducts) List(ctx context.Context, offset, limit int) ([]*catalog.Product, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM products ORDER BY created_at DESC OFFSET $1 LIMIT $2`,
		offset, limit,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, 0, err
		}
		var p catalog.Product
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, 0, err
		}
		products = append(products, &p)
	}
	return products, total, rows.Err()
}

func (s *PostgresProducts) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}
