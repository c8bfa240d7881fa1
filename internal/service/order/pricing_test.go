package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeras-code/shopcart/internal/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func defaultCalculator() Calculator {
	return Calculator{
		DeliveryCharge: dec("50.00"),
		TaxPercent:     dec("5"),
	}
}

func TestCompute_ReferenceExample(t *testing.T) {
	// subtotal 100.00, delivery 50.00, tax 5% -> tax 5.00, total 155.00
	totals := defaultCalculator().Compute([]entity.OrderItem{
		{UnitPrice: dec("25.00"), Quantity: 4},
	})

	assert.True(t, totals.Subtotal.Equal(dec("100.00")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.TaxAmount.Equal(dec("5.00")), "tax = %s", totals.TaxAmount)
	assert.True(t, totals.Total.Equal(dec("155.00")), "total = %s", totals.Total)
}

func TestCompute_SubtotalIsExactSum(t *testing.T) {
	totals := defaultCalculator().Compute([]entity.OrderItem{
		{UnitPrice: dec("19.99"), Quantity: 3},
		{UnitPrice: dec("0.01"), Quantity: 7},
		{UnitPrice: dec("120.50"), Quantity: 1},
	})

	// 59.97 + 0.07 + 120.50
	assert.True(t, totals.Subtotal.Equal(dec("180.54")), "subtotal = %s", totals.Subtotal)
}

func TestCompute_TaxRoundsHalfAwayFromZero(t *testing.T) {
	calc := defaultCalculator()

	cases := []struct {
		name     string
		subtotal string
		tax      string
	}{
		{"rounds down", "10.01", "0.50"},  // 0.5005
		{"rounds half up", "10.10", "0.51"}, // 0.505
		{"exact", "200.00", "10.00"},
		{"zero", "0.00", "0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals := calc.Compute([]entity.OrderItem{
				{UnitPrice: dec(tc.subtotal), Quantity: 1},
			})
			assert.True(t, totals.TaxAmount.Equal(dec(tc.tax)),
				"subtotal %s: tax = %s, want %s", tc.subtotal, totals.TaxAmount, tc.tax)
		})
	}
}

func TestCompute_TotalInvariant(t *testing.T) {
	calc := Calculator{DeliveryCharge: dec("12.34"), TaxPercent: dec("7.25")}

	itemSets := [][]entity.OrderItem{
		{{UnitPrice: dec("3.33"), Quantity: 3}},
		{{UnitPrice: dec("0.99"), Quantity: 17}, {UnitPrice: dec("45.00"), Quantity: 2}},
		{{UnitPrice: dec("1000.01"), Quantity: 1}},
	}

	for _, items := range itemSets {
		totals := calc.Compute(items)
		want := totals.Subtotal.Add(totals.DeliveryCharge).Add(totals.TaxAmount)
		require.True(t, totals.Total.Equal(want),
			"total %s != subtotal %s + delivery %s + tax %s",
			totals.Total, totals.Subtotal, totals.DeliveryCharge, totals.TaxAmount)
	}
}

func TestCompute_NoItems(t *testing.T) {
	totals := defaultCalculator().Compute(nil)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.Equal(dec("50.00")), "total = %s", totals.Total)
}
