package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the single current lifecycle state of an order. Values are
// persisted lower-case; display casing is the client's concern.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var knownStatuses = map[Status]struct{}{
	StatusPending:    {},
	StatusProcessing: {},
	StatusShipped:    {},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// IsValid reports whether s is a member of the lifecycle enum.
func (s Status) IsValid() bool {
	_, ok := knownStatuses[s]
	return ok
}

// Item is an immutable snapshot of one product line at order-creation
// time. Price is the unit price at purchase; Total = Price * Quantity.
type Item struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

// Address is the shipping address copied onto the order at checkout. The
// original record stays referenced through ShippingAddressID but later
// edits to it do not reach placed orders.
type Address struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Zip          string `json:"zip"`
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

// Order is the checkout snapshot. All monetary fields are fixed at
// creation and never recomputed.
type Order struct {
	ID                string               `json:"id"`
	UserID            string               `json:"userId"`
	Items             []Item               `json:"products"`
	Subtotal          decimal.Decimal      `json:"totalAmount"`
	ShippingAmount    decimal.Decimal      `json:"shippingAmount"`
	CODCharge         decimal.Decimal      `json:"codCharge"`
	GrandTotal        decimal.Decimal      `json:"grandTotal"`
	PaymentStatus     PaymentStatus        `json:"paymentStatus"`
	PaymentMethod     string               `json:"paymentMethod"`
	TransactionID     string               `json:"transactionId,omitempty"`
	GatewayOrderID    string               `json:"orderId,omitempty"`
	ShippingAddressID string               `json:"shippingAddressId"`
	ShippingAddress   Address              `json:"shippingAddress"`
	Status            Status               `json:"orderStatus"`
	StatusTimestamps  map[Status]time.Time `json:"statusTimestamps"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}
