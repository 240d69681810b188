// Package event defines the domain events published to Kafka and consumed
// by the notification relay and the email notifier.
package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeOrderPlaced        = "OrderPlaced"
	TypeOrderStatusChanged = "OrderStatusChanged"
	TypeProductReviewed    = "ProductReviewed"
)

// Envelope is the wire form of a domain event.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// New wraps a payload into an envelope.
func New(eventType string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now(),
		Data:       data,
	}, nil
}

// Publisher delivers envelopes to the event bus. The key selects the
// partition so events for one aggregate stay ordered.
type Publisher interface {
	Publish(ctx context.Context, key string, env Envelope) error
}

type OrderPlaced struct {
	OrderID    string          `json:"order_id"`
	UserID     string          `json:"user_id"`
	Email      string          `json:"email"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	ItemCount  int             `json:"item_count"`
	PlacedAt   time.Time       `json:"placed_at"`
}

type OrderStatusChanged struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

type ProductReviewed struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Reviewer    string    `json:"reviewer"`
	Rating      float64   `json:"rating"`
	ReviewedAt  time.Time `json:"reviewed_at"`
}
