// Package notification (relay) turns consumed domain events into stored
// notification records and pushes them to connected clients.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/toyshub/internal/domain/notification"
	"github.com/example/toyshub/internal/event"
	"github.com/example/toyshub/internal/realtime"
)

const (
	eventNameUser  = "notification"
	eventNameAdmin = "admin-notification"
)

// Relay handles event-bus messages for the API process.
type Relay struct {
	notifications *notification.Service
	hub           *realtime.Hub
}

func NewRelay(notifications *notification.Service, hub *realtime.Hub) *Relay {
	return &Relay{notifications: notifications, hub: hub}
}

// Handle is the consumer callback. Unknown event types are skipped.
func (r *Relay) Handle(ctx context.Context, key, value []byte) error {
	var env event.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return fmt.Errorf("decoding event envelope: %w", err)
	}

	switch env.Type {
	case event.TypeOrderPlaced:
		return r.handleOrderPlaced(ctx, env.Data)
	case event.TypeOrderStatusChanged:
		return r.handleOrderStatusChanged(ctx, env.Data)
	case event.TypeProductReviewed:
		return r.handleProductReviewed(ctx, env.Data)
	default:
		log.Printf("[Relay] Skipping event type: %s", env.Type)
		return nil
	}
}

func (r *Relay) handleOrderPlaced(ctx context.Context, data json.RawMessage) error {
	var e event.OrderPlaced
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("decoding OrderPlaced: %w", err)
	}

	message := fmt.Sprintf("Order %s placed for %s (%d items)", e.OrderID, e.GrandTotal.StringFixed(2), e.ItemCount)
	n, err := r.notifications.CreateForAdmins(ctx, "New order", message, "order")
	if err != nil {
		return err
	}
	r.pushAdmin(n)
	return nil
}

func (r *Relay) handleOrderStatusChanged(ctx context.Context, data json.RawMessage) error {
	var e event.OrderStatusChanged
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("decoding OrderStatusChanged: %w", err)
	}

	message := fmt.Sprintf("Your order %s is now %s", e.OrderID, e.NewStatus)
	n, err := r.notifications.CreateForUser(ctx, e.UserID, "Order update", message, "order")
	if err != nil {
		return err
	}
	r.pushUser(e.UserID, n)
	return nil
}

func (r *Relay) handleProductReviewed(ctx context.Context, data json.RawMessage) error {
	var e event.ProductReviewed
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("decoding ProductReviewed: %w", err)
	}

	message := fmt.Sprintf("%s rated %s %.1f stars", e.Reviewer, e.ProductName, e.Rating)
	n, err := r.notifications.CreateForAdmins(ctx, "New review", message, "review")
	if err != nil {
		return err
	}
	r.pushAdmin(n)
	return nil
}

func (r *Relay) pushUser(userID string, n *notification.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		log.Printf("[Relay] Error encoding notification %s: %v", n.ID, err)
		return
	}
	r.hub.PublishUser(userID, realtime.Message{Event: eventNameUser, Data: data})
}

func (r *Relay) pushAdmin(n *notification.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		log.Printf("[Relay] Error encoding notification %s: %v", n.ID, err)
		return
	}
	r.hub.PublishAdmin(realtime.Message{Event: eventNameAdmin, Data: data})
}
