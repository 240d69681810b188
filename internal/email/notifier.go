package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/toyshub/internal/event"
)

// Notifier is the consumer callback for the email process. Events without
// a recipient address are skipped.
type Notifier struct {
	emails *Service
}

func NewNotifier(emails *Service) *Notifier {
	return &Notifier{emails: emails}
}

func (n *Notifier) Handle(ctx context.Context, key, value []byte) error {
	var env event.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return fmt.Errorf("decoding event envelope: %w", err)
	}

	switch env.Type {
	case event.TypeOrderPlaced:
		var e event.OrderPlaced
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return fmt.Errorf("decoding OrderPlaced: %w", err)
		}
		if e.Email == "" {
			log.Printf("[Notifier] Order %s has no email, skipping", e.OrderID)
			return nil
		}
		return n.emails.SendOrderConfirmation(e.Email, e.OrderID, e.GrandTotal, e.ItemCount)

	case event.TypeOrderStatusChanged:
		var e event.OrderStatusChanged
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return fmt.Errorf("decoding OrderStatusChanged: %w", err)
		}
		if e.Email == "" {
			log.Printf("[Notifier] Order %s has no email, skipping", e.OrderID)
			return nil
		}
		return n.emails.SendStatusUpdate(e.Email, e.OrderID, e.NewStatus)

	default:
		return nil
	}
}
