// Package mocks provides in-memory store implementations for tests. The
// product store enforces the same SKU/name uniqueness as the real schema so
// duplicate-write behavior can be exercised without a database.
package mocks

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/example/toyshub/internal/domain/catalog"
	"github.com/example/toyshub/internal/domain/notification"
	"github.com/example/toyshub/internal/domain/order"
	"github.com/example/toyshub/internal/domain/page"
)

// MemoryProducts is an in-memory catalog.ProductStore.
type MemoryProducts struct {
	mu       sync.RWMutex
	products map[string]*catalog.Product
	seq      []string // insertion order, newest appended last
}

func NewMemoryProducts() *MemoryProducts {
	return &MemoryProducts{products: make(map[string]*catalog.Product)}
}

func (s *MemoryProducts) Insert(ctx context.Context, p *catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.SKU == p.SKU || existing.Name == p.Name {
			return catalog.ErrDuplicateProduct
		}
	}
	s.products[p.ID] = clone(p)
	s.seq = append(s.seq, p.ID)
	return nil
}

func (s *MemoryProducts) Update(ctx context.Context, p *catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return catalog.ErrProductNotFound
	}
	for id, existing := range s.products {
		if id != p.ID && (existing.SKU == p.SKU || existing.Name == p.Name) {
			return catalog.ErrDuplicateProduct
		}
	}
	s.products[p.ID] = clone(p)
	return nil
}

func (s *MemoryProducts) Get(ctx context.Context, id string) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return clone(p), nil
}

func (s *MemoryProducts) List(ctx context.Context, offset, limit int) ([]*catalog.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first.
	var all []*catalog.Product
	for i := len(s.seq) - 1; i >= 0; i-- {
		if p, ok := s.products[s.seq[i]]; ok {
			all = append(all, p)
		}
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	out := make([]*catalog.Product, 0, end-offset)
	for _, p := range all[offset:end] {
		out = append(out, clone(p))
	}
	return out, total, nil
}

func (s *MemoryProducts) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return catalog.ErrProductNotFound
	}
	delete(s.products, id)
	for i, seqID := range s.seq {
		if seqID == id {
			s.seq = append(s.seq[:i], s.seq[i+1:]...)
			break
		}
	}
	return nil
}

// Len reports the number of stored products.
func (s *MemoryProducts) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// MemoryCategories is an in-memory catalog.CategoryStore.
type MemoryCategories struct {
	mu         sync.RWMutex
	categories map[string]*catalog.Category
}

func NewMemoryCategories() *MemoryCategories {
	return &MemoryCategories{categories: make(map[string]*catalog.Category)}
}

func (s *MemoryCategories) Insert(ctx context.Context, c *catalog.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = clone(c)
	return nil
}

func (s *MemoryCategories) Update(ctx context.Context, c *catalog.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.ID]; !ok {
		return catalog.ErrCategoryNotFound
	}
	s.categories[c.ID] = clone(c)
	return nil
}

func (s *MemoryCategories) Get(ctx context.Context, id string) (*catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, catalog.ErrCategoryNotFound
	}
	return clone(c), nil
}

func (s *MemoryCategories) List(ctx context.Context) ([]*catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*catalog.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, clone(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryCategories) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return catalog.ErrCategoryNotFound
	}
	delete(s.categories, id)
	return nil
}

// MemoryOrders is an in-memory order.Store.
type MemoryOrders struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
	seq    []string
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{orders: make(map[string]*order.Order)}
}

func (s *MemoryOrders) Insert(ctx context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = clone(o)
	s.seq = append(s.seq, o.ID)
	return nil
}

func (s *MemoryOrders) Update(ctx context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; !ok {
		return order.ErrOrderNotFound
	}
	s.orders[o.ID] = clone(o)
	return nil
}

func (s *MemoryOrders) Get(ctx context.Context, id string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return clone(o), nil
}

func (s *MemoryOrders) ListByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*order.Order
	for i := len(s.seq) - 1; i >= 0; i-- {
		if o, ok := s.orders[s.seq[i]]; ok && o.UserID == userID {
			out = append(out, clone(o))
		}
	}
	return out, nil
}

func (s *MemoryOrders) ListAll(ctx context.Context) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*order.Order
	for i := len(s.seq) - 1; i >= 0; i-- {
		if o, ok := s.orders[s.seq[i]]; ok {
			out = append(out, clone(o))
		}
	}
	return out, nil
}

// MemoryNotifications is an in-memory notification.Store.
type MemoryNotifications struct {
	mu            sync.RWMutex
	notifications map[string]*notification.Notification
	seq           []string
}

func NewMemoryNotifications() *MemoryNotifications {
	return &MemoryNotifications{notifications: make(map[string]*notification.Notification)}
}

func (s *MemoryNotifications) Insert(ctx context.Context, n *notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[n.ID] = clone(n)
	s.seq = append(s.seq, n.ID)
	return nil
}

func (s *MemoryNotifications) ListByUser(ctx context.Context, userID string) ([]*notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*notification.Notification
	for i := len(s.seq) - 1; i >= 0; i-- {
		if n, ok := s.notifications[s.seq[i]]; ok && !n.IsAdmin && n.UserID == userID {
			out = append(out, clone(n))
		}
	}
	return out, nil
}

func (s *MemoryNotifications) ListAdmin(ctx context.Context) ([]*notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*notification.Notification
	for i := len(s.seq) - 1; i >= 0; i-- {
		if n, ok := s.notifications[s.seq[i]]; ok && n.IsAdmin {
			out = append(out, clone(n))
		}
	}
	return out, nil
}

func (s *MemoryNotifications) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok {
		return notification.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (s *MemoryNotifications) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notifications[id]; !ok {
		return notification.ErrNotFound
	}
	delete(s.notifications, id)
	return nil
}

// MemoryPages is an in-memory page.Store.
type MemoryPages struct {
	mu    sync.RWMutex
	pages map[string]*page.Page
}

func NewMemoryPages() *MemoryPages {
	return &MemoryPages{pages: make(map[string]*page.Page)}
}

func (s *MemoryPages) Get(ctx context.Context, slug string) (*page.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pages[slug]
	if !ok {
		return nil, page.ErrPageNotFound
	}
	return clone(p), nil
}

func (s *MemoryPages) Upsert(ctx context.Context, p *page.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[p.Slug] = clone(p)
	return nil
}

// clone round-trips a document through JSON so callers never share memory
// with the store, mirroring a real database read.
func clone[T any](v *T) *T {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		panic(err)
	}
	return out
}
