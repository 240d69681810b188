// Package page holds the CMS-style content documents the storefront's
// editable blocks are built from.
package page

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/toyshub/internal/apperr"
)

var ErrPageNotFound = apperr.NotFound("page not found")

// Page is one editable content document, addressed by slug.
type Page struct {
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	Body      json.RawMessage `json:"body"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Store interface {
	Get(ctx context.Context, slug string) (*Page, error)
	Upsert(ctx context.Context, p *Page) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, slug string) (*Page, error) {
	return s.store.Get(ctx, slug)
}

// Save creates the page or replaces its content wholesale.
func (s *Service) Save(ctx context.Context, slug, title string, body json.RawMessage) (*Page, error) {
	if slug == "" {
		return nil, apperr.Validation("page slug is required")
	}
	p := &Page{
		Slug:      slug,
		Title:     title,
		Body:      body,
		UpdatedAt: time.Now(),
	}
	if err := s.store.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
