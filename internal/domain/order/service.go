package order

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/toyshub/internal/apperr"
	"github.com/example/toyshub/internal/domain/catalog"
	"github.com/example/toyshub/internal/event"
)

var (
	ErrOrderNotFound = apperr.NotFound("order not found")
	ErrEmptyOrder    = apperr.Validation("order must have at least one item")
	ErrBadQuantity   = apperr.Validation("quantity must be greater than zero")
	ErrUnknownStatus = apperr.Validation("unknown order status")
)

type Store interface {
	Insert(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
}

// ProductLookup resolves current unit prices at checkout time.
type ProductLookup interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
}

type Service struct {
	orders    Store
	products  ProductLookup
	publisher event.Publisher
	pricing   Pricing
}

func NewService(orders Store, products ProductLookup, publisher event.Publisher, pricing Pricing) *Service {
	return &Service{
		orders:    orders,
		products:  products,
		publisher: publisher,
		pricing:   pricing,
	}
}

type CheckoutLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CheckoutInput struct {
	Lines             []CheckoutLine
	ShippingAddressID string
	ShippingAddress   Address
	PaymentMethod     string
}

// Checkout builds one immutable order from the validated cart. Unit prices
// are looked up at call time and snapshotted onto the line items; the
// shipping and COD amounts are computed once and never touched again.
// Stock is not decremented here.
func (s *Service) Checkout(ctx context.Context, userID string, in CheckoutInput) (*Order, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyOrder
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "RAZORPAY"
	}

	subtotal := decimal.Zero
	items := make([]Item, 0, len(in.Lines))
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return nil, ErrBadQuantity
		}
		p, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				return nil, apperr.Validationf("product %s no longer exists", line.ProductID)
			}
			return nil, err
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, Item{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     p.Price,
			Total:     lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	shipping := s.pricing.ShippingFor(subtotal)
	codCharge := s.pricing.CODChargeFor(paymentMethod)
	now := time.Now()

	o := &Order{
		ID:                uuid.New().String(),
		UserID:            userID,
		Items:             items,
		Subtotal:          subtotal,
		ShippingAmount:    shipping,
		CODCharge:         codCharge,
		GrandTotal:        subtotal.Add(shipping).Add(codCharge),
		PaymentStatus:     PaymentPending,
		PaymentMethod:     paymentMethod,
		ShippingAddressID: in.ShippingAddressID,
		ShippingAddress:   in.ShippingAddress,
		Status:            StatusPending,
		StatusTimestamps:  map[Status]time.Time{StatusPending: now},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.orders.Insert(ctx, o); err != nil {
		return nil, err
	}

	s.publish(ctx, o.ID, event.TypeOrderPlaced, event.OrderPlaced{
		OrderID:    o.ID,
		UserID:     o.UserID,
		Email:      o.ShippingAddress.Email,
		GrandTotal: o.GrandTotal,
		ItemCount:  len(o.Items),
		PlacedAt:   now,
	})

	return o, nil
}

// SetStatus records newStatus as current and stamps its first-entry
// timestamp if the order has never been in that status before. Re-entering
// a status leaves the original timestamp alone. Transitions are not
// validated against a state machine: any known status may follow any
// other, matching what existing clients rely on.
func (s *Service) SetStatus(ctx context.Context, orderID string, newStatus Status) (*Order, error) {
	if !newStatus.IsValid() {
		return nil, ErrUnknownStatus
	}

	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	oldStatus := o.Status
	o.Status = newStatus
	if o.StatusTimestamps == nil {
		o.StatusTimestamps = make(map[Status]time.Time)
	}
	if _, stamped := o.StatusTimestamps[newStatus]; !stamped {
		o.StatusTimestamps[newStatus] = time.Now()
	}
	o.UpdatedAt = time.Now()

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	s.publish(ctx, o.ID, event.TypeOrderStatusChanged, event.OrderStatusChanged{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Email:     o.ShippingAddress.Email,
		OldStatus: string(oldStatus),
		NewStatus: string(newStatus),
		ChangedAt: time.Now(),
	})

	return o, nil
}

func (s *Service) Get(ctx context.Context, orderID string) (*Order, error) {
	return s.orders.Get(ctx, orderID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListAll returns every order, newest first. Admin dashboards only.
func (s *Service) ListAll(ctx context.Context) ([]*Order, error) {
	return s.orders.ListAll(ctx)
}

func (s *Service) publish(ctx context.Context, key, eventType string, payload any) {
	if s.publisher == nil {
		return
	}
	env, err := event.New(eventType, payload)
	if err != nil {
		log.Printf("[Order] Failed to build %s event: %v", eventType, err)
		return
	}
	if err := s.publisher.Publish(ctx, key, env); err != nil {
		log.Printf("[Order] Failed to publish %s event: %v", eventType, err)
	}
}
