package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/example/toyshub/internal/domain/order"
)

// PostgresOrders implements order.Store.
type PostgresOrders struct {
	db *sql.DB
}

func NewPostgresOrders(db *sql.DB) *PostgresOrders {
	return &PostgresOrders{db: db}
}

func (s *PostgresOrders) Insert(ctx context.Context, o *order.Order) error {
	doc, err := json.Marshal(o)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, status, created_at, doc)
		 VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.UserID, string(o.Status), o.CreatedAt, doc,
	)
	return err
}

func (s *PostgresOrders) Update(ctx context.Context, o *order.Order) error {
	doc, err := json.Marshal(o)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, doc = $3 WHERE id = $1`,
		o.ID, string(o.Status), doc,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

func (s *PostgresOrders) Get(ctx context.Context, id string) (*order.Order, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM orders WHERE id = $1`, id,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	var o order.Order
	if err := json.Unmarshal(doc, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *PostgresOrders) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	return s.list(ctx,
		`SELECT doc FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (s *PostgresOrders) ListAll(ctx context.Context) ([]*order.Order, error) {
	return s.list(ctx, `SELECT doc FROM orders ORDER BY created_at DESC`)
}

func (s *PostgresOrders) list(ctx context.Context, query string, args ...any) ([]*order.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var o order.Order
		if err := json.Unmarshal(doc, &o); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}
