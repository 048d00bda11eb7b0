package queue

import (
	"encoding/json"

	"github.com/anta-store/anta-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlacedNotify notifies staff of a newly placed order.
	TaskOrderPlacedNotify = constants.TaskOrderPlacedNotify
	// TaskLowStockAlert flags products that dropped to the low-stock threshold.
	TaskLowStockAlert = constants.TaskLowStockAlert
)

// OrderPlacedNotifyPayload is the new-order notification payload.
type OrderPlacedNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	OrderNo string `json:"order_no"`
	UserID  uint   `json:"user_id"`
}

// LowStockAlertPayload is the low-stock alert payload.
type LowStockAlertPayload struct {
	ProductID uint `json:"product_id"`
	Stock     int  `json:"stock"`
	Threshold int  `json:"threshold"`
}

// NewOrderPlacedNotifyTask creates a new-order notification task.
func NewOrderPlacedNotifyTask(payload OrderPlacedNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlacedNotify, body), nil
}

// NewLowStockAlertTask creates a low-stock alert task.
func NewLowStockAlertTask(payload LowStockAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockAlert, body), nil
}
