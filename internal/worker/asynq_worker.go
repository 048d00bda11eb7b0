package worker

import (
	"context"
	"encoding/json"

	"github.com/anta-store/anta-api/internal/logger"
	"github.com/anta-store/anta-api/internal/provider"
	"github.com/anta-store/anta-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles the async task stream.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPlacedNotify, c.handleOrderPlacedNotify)
	mux.HandleFunc(queue.TaskLowStockAlert, c.handleLowStockAlert)
}

// handleOrderPlacedNotify records the staff-facing new-order notification.
// The notification channel is the structured log stream; the ops side tails
// it for alerting, so missing orders are surfaced even without email.
func (c *Consumer) handleOrderPlacedNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_placed_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPlacedNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_placed_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_placed_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_placed_notify_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_placed_notify_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	logger.Infow("worker_order_placed_notify",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"total_amount", order.TotalAmount,
		"currency", order.Currency,
		"city", order.City,
		"payment_method", order.PaymentMethod,
	)
	return nil
}

// handleLowStockAlert re-reads the live stock before alerting so a restock
// between enqueue and consume cancels the alert.
func (c *Consumer) handleLowStockAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LowStockAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_low_stock_alert_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	stock, ok, err := c.ProductRepo.GetStock(payload.ProductID)
	if err != nil {
		logger.Warnw("worker_low_stock_alert_fetch_stock_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	if !ok {
		logger.Debugw("worker_low_stock_alert_skip_product_not_found", "product_id", payload.ProductID)
		return nil
	}
	if stock > payload.Threshold {
		logger.Debugw("worker_low_stock_alert_skip_restocked",
			"product_id", payload.ProductID,
			"stock", stock,
			"threshold", payload.Threshold,
		)
		return nil
	}
	logger.Warnw("worker_low_stock_alert",
		"product_id", payload.ProductID,
		"stock", stock,
		"threshold", payload.Threshold,
	)
	return nil
}
