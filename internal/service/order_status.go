package service

import (
	"strings"
	"time"

	"github.com/anta-store/anta-api/internal/constants"
)

// statusTransitions is the order lifecycle. Cancellation is only possible
// before shipment; delivered and canceled are terminal.
var statusTransitions = map[string][]string{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed,
		constants.OrderStatusCanceled,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusProcessing,
		constants.OrderStatusCanceled,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped,
		constants.OrderStatusCanceled,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered,
	},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCanceled:  {},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PurchaseGateStatuses are the order statuses that count as a completed
// purchase for review eligibility. A pending or canceled order does not
// entitle the buyer to review.
func PurchaseGateStatuses() []string {
	return []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
	}
}

// statusTimestampUpdates returns the timestamp columns to stamp alongside a
// status change.
func statusTimestampUpdates(status string, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{"updated_at": now}
	switch status {
	case constants.OrderStatusConfirmed:
		updates["confirmed_at"] = &now
	case constants.OrderStatusShipped:
		updates["shipped_at"] = &now
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = &now
	case constants.OrderStatusCanceled:
		updates["canceled_at"] = &now
	}
	return updates
}
