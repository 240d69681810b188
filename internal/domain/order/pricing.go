package order

import "github.com/shopspring/decimal"

const PaymentMethodCOD = "COD"

// Pricing computes the checkout surcharges that get frozen onto the order.
type Pricing struct {
	ShippingFlatFee decimal.Decimal
	FreeShippingMin decimal.Decimal
	CODCharge       decimal.Decimal
}

// ShippingFor returns the flat shipping fee, waived once the subtotal
// reaches the free-shipping threshold.
func (p Pricing) ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if p.FreeShippingMin.IsPositive() && subtotal.GreaterThanOrEqual(p.FreeShippingMin) {
		return decimal.Zero
	}
	return p.ShippingFlatFee
}

// CODChargeFor returns the cash-on-delivery surcharge for the chosen
// payment method.
func (p Pricing) CODChargeFor(paymentMethod string) decimal.Decimal {
	if paymentMethod == PaymentMethodCOD {
		return p.CODCharge
	}
	return decimal.Zero
}
