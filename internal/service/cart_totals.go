package service

import (
	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/models"

	"github.com/shopspring/decimal"
)

// CartTotals is the derived pricing of a cart. It is recomputed from the
// line items on every read and never stored.
type CartTotals struct {
	ItemCount      int          `json:"item_count"`
	Subtotal       models.Money `json:"subtotal"`
	DiscountAmount models.Money `json:"discount_amount"`
	Total          models.Money `json:"total"`
	Currency       string       `json:"currency"`
}

// ComputeCartTotals derives subtotal, discount and total from cart lines.
// The bulk discount applies only when the total unit count exceeds the
// threshold: exactly at the threshold there is no discount. The final total
// floors at zero so bad line data can never produce a negative charge.
func ComputeCartTotals(items []models.CartItem) CartTotals {
	subtotal := decimal.Zero
	itemCount := 0
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		itemCount += item.Quantity
		line := item.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	discount := decimal.Zero
	if itemCount > constants.DiscountItemThreshold {
		rate := decimal.NewFromInt(constants.DiscountRatePercent).Div(decimal.NewFromInt(100))
		discount = subtotal.Mul(rate).Round(2)
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return CartTotals{
		ItemCount:      itemCount,
		Subtotal:       models.NewMoneyFromDecimal(subtotal),
		DiscountAmount: models.NewMoneyFromDecimal(discount),
		Total:          models.NewMoneyFromDecimal(total),
		Currency:       constants.SiteCurrency,
	}
}

// ClampCartQuantity normalizes a requested quantity into the allowed range.
// Fractional inputs from UI steppers round half away from zero before
// clamping, so 0 and negatives floor to the minimum instead of removing
// the line.
func ClampCartQuantity(requested float64) int {
	qty := int(decimal.NewFromFloat(requested).Round(0).IntPart())
	if qty < constants.CartQuantityMin {
		return constants.CartQuantityMin
	}
	if qty > constants.CartQuantityMax {
		return constants.CartQuantityMax
	}
	return qty
}
