package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/example/toyshub/internal/domain/notification"
)

// PostgresNotifications implements notification.Store.
type PostgresNotifications struct {
	db *sql.DB
}

func NewPostgresNotifications(db *sql.DB) *PostgresNotifications {
	return &PostgresNotifications{db: db}
}

func (s *PostgresNotifications) Insert(ctx context.Context, n *notification.Notification) error {
	doc, err := json.Marshal(n)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, is_admin, is_read, created_at, doc)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.UserID, n.IsAdmin, n.IsRead, n.CreatedAt, doc,
	)
	return err
}

func (s *PostgresNotifications) ListByUser(ctx context.Context, userID string) ([]*notification.Notification, error) {
	return s.list(ctx,
		`SELECT doc FROM notifications
		 WHERE user_id = $1 AND NOT is_admin
		 ORDER BY created_at DESC`, userID)
}

func (s *PostgresNotifications) ListAdmin(ctx context.Context) ([]*notification.Notification, error) {
	return s.list(ctx,
		`SELECT doc FROM notifications WHERE is_admin ORDER BY created_at DESC`)
}

func (s *PostgresNotifications) MarkRead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications
		 SET is_read = true, doc = jsonb_set(doc, '{isRead}', 'true')
		 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notification.ErrNotFound
	}
	return nil
}

func (s *PostgresNotifications) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notification.ErrNotFound
	}
	return nil
}

func (s *PostgresNotifications) list(ctx context.Context, query string, args ...any) ([]*notification.Notification, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var n notification.Notification
		if err := json.Unmarshal(doc, &n); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

var _ notification.Store = (*PostgresNotifications)(nil)
