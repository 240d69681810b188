package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/example/toyshub/internal/apperr"
)

var ErrNotFound = apperr.NotFound("notification not found")

// Notification targets either one user or the admin broadcast group. The
// read flag is the only field that changes after creation.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type Store interface {
	Insert(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string) ([]*Notification, error)
	ListAdmin(ctx context.Context) ([]*Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateForUser records a notification addressed to one user.
func (s *Service) CreateForUser(ctx context.Context, userID, title, message, typ string) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      typ,
		CreatedAt: time.Now(),
	}
	if err := s.store.Insert(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// CreateForAdmins records an admin-broadcast notification.
func (s *Service) CreateForAdmins(ctx context.Context, title, message, typ string) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New().String(),
		IsAdmin:   true,
		Title:     title,
		Message:   message,
		Type:      typ,
		CreatedAt: time.Now(),
	}
	if err := s.store.Insert(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]*Notification, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *Service) ListForAdmins(ctx context.Context) ([]*Notification, error) {
	return s.store.ListAdmin(ctx)
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	return s.store.MarkRead(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
