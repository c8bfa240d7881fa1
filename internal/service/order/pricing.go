package order

import (
	"github.com/shopspring/decimal"

	"github.com/zeras-code/shopcart/internal/entity"
)

var oneHundred = decimal.NewFromInt(100)

// Calculator computes order totals from validated line items using fixed-point
// decimal arithmetic throughout.
type Calculator struct {
	// DeliveryCharge is a flat fee added to every order.
	DeliveryCharge decimal.Decimal
	// TaxPercent is the tax rate as a percentage (5 means 5%).
	TaxPercent decimal.Decimal
}

// Totals holds the computed monetary breakdown of an order.
// Invariant: Total = Subtotal + DeliveryCharge + TaxAmount.
type Totals struct {
	Subtotal       decimal.Decimal
	DeliveryCharge decimal.Decimal
	TaxPercent     decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// Compute aggregates line totals into subtotal, tax and grand total. The
// subtotal is the exact sum of unit price x quantity with no intermediate
// rounding. The tax amount is rounded to 2 decimal places, half away from
// zero (shopspring's Round), so totals reproduce bit-for-bit.
func (c Calculator) Compute(items []entity.OrderItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	taxAmount := subtotal.Mul(c.TaxPercent).Div(oneHundred).Round(2)
	total := subtotal.Add(c.DeliveryCharge).Add(taxAmount)

	return Totals{
		Subtotal:       subtotal,
		DeliveryCharge: c.DeliveryCharge,
		TaxPercent:     c.TaxPercent,
		TaxAmount:      taxAmount,
		Total:          total,
	}
}
