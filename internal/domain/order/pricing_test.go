package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testPricing() Pricing {
	return Pricing{
		ShippingFlatFee: decimal.NewFromInt(50),
		FreeShippingMin: decimal.NewFromInt(999),
		CODCharge:       decimal.NewFromInt(40),
	}
}

func TestShippingFor(t *testing.T) {
	p := testPricing()

	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{"below threshold", 500, 50},
		{"just below threshold", 998, 50},
		{"at threshold", 999, 0},
		{"above threshold", 2000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ShippingFor(decimal.NewFromInt(tt.subtotal))
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s", got)
		})
	}
}

func TestShippingFor_NoThresholdConfigured(t *testing.T) {
	p := Pricing{ShippingFlatFee: decimal.NewFromInt(50)}

	got := p.ShippingFor(decimal.NewFromInt(10000))

	assert.True(t, got.Equal(decimal.NewFromInt(50)))
}

func TestCODChargeFor(t *testing.T) {
	p := testPricing()

	assert.True(t, p.CODChargeFor(PaymentMethodCOD).Equal(decimal.NewFromInt(40)))
	assert.True(t, p.CODChargeFor("RAZORPAY").IsZero())
	assert.True(t, p.CODChargeFor("").IsZero())
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, Status("returned").IsValid())
	assert.False(t, Status("Pending").IsValid())
	assert.False(t, Status("").IsValid())
}
