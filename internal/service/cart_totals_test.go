package service

import (
	"testing"

	"github.com/anta-store/anta-api/internal/models"

	"github.com/shopspring/decimal"
)

func moneyFromInt(v int64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromInt(v))
}

func TestComputeCartTotalsNoDiscountAtThreshold(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, PriceAmount: moneyFromInt(10), Quantity: 1},
		{ProductID: 2, PriceAmount: moneyFromInt(5), Quantity: 1},
	}
	totals := ComputeCartTotals(items)
	if totals.ItemCount != 2 {
		t.Fatalf("item count want 2 got %d", totals.ItemCount)
	}
	if !totals.DiscountAmount.Decimal.IsZero() {
		t.Fatalf("two items must not trigger the discount, got %s", totals.DiscountAmount.String())
	}
	if !totals.Total.Decimal.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("total want 15 got %s", totals.Total.String())
	}
}

func TestComputeCartTotalsDiscountAboveThreshold(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, PriceAmount: moneyFromInt(10), Quantity: 1},
		{ProductID: 2, PriceAmount: moneyFromInt(5), Quantity: 2},
	}
	totals := ComputeCartTotals(items)
	if totals.ItemCount != 3 {
		t.Fatalf("item count want 3 got %d", totals.ItemCount)
	}
	if !totals.Subtotal.Decimal.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("subtotal want 20 got %s", totals.Subtotal.String())
	}
	if !totals.DiscountAmount.Decimal.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("discount want 2 got %s", totals.DiscountAmount.String())
	}
	if !totals.Total.Decimal.Equal(decimal.NewFromInt(18)) {
		t.Fatalf("total want 18 got %s", totals.Total.String())
	}
	if totals.Currency != "JOD" {
		t.Fatalf("currency want JOD got %s", totals.Currency)
	}
}

func TestComputeCartTotalsIgnoresNonPositiveLines(t *testing.T) {
	items := []models.CartItem{
		{ProductID: 1, PriceAmount: moneyFromInt(10), Quantity: 0},
		{ProductID: 2, PriceAmount: moneyFromInt(5), Quantity: -3},
	}
	totals := ComputeCartTotals(items)
	if totals.ItemCount != 0 || !totals.Total.Decimal.IsZero() {
		t.Fatalf("expected empty totals, got count=%d total=%s", totals.ItemCount, totals.Total.String())
	}
}

func TestClampCartQuantity(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{2.4, 2},
		{2.6, 3},
		{99, 99},
		{150, 99},
	}
	for _, tc := range cases {
		if got := ClampCartQuantity(tc.in); got != tc.want {
			t.Fatalf("clamp(%v) want %d got %d", tc.in, tc.want, got)
		}
	}
}
