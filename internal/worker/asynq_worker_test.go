package worker

import (
	"context"
	"testing"

	"github.com/anta-store/anta-api/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleOrderPlacedNotifyInvalidPayload(t *testing.T) {
	consumer := &Consumer{}

	task := asynq.NewTask(queue.TaskOrderPlacedNotify, []byte(`not-json`))
	if err := consumer.handleOrderPlacedNotify(context.Background(), task); err == nil {
		t.Fatalf("expected error for malformed payload")
	}

	task = asynq.NewTask(queue.TaskOrderPlacedNotify, []byte(`{"order_id":0}`))
	if err := consumer.handleOrderPlacedNotify(context.Background(), task); err != nil {
		t.Fatalf("zero order id should be skipped without error, got %v", err)
	}
}

func TestHandleLowStockAlertInvalidPayload(t *testing.T) {
	consumer := &Consumer{}

	task := asynq.NewTask(queue.TaskLowStockAlert, []byte(`not-json`))
	if err := consumer.handleLowStockAlert(context.Background(), task); err == nil {
		t.Fatalf("expected error for malformed payload")
	}

	task = asynq.NewTask(queue.TaskLowStockAlert, []byte(`{"product_id":0,"threshold":5}`))
	if err := consumer.handleLowStockAlert(context.Background(), task); err != nil {
		t.Fatalf("zero product id should be skipped without error, got %v", err)
	}
}

func TestRegisterNilMux(t *testing.T) {
	consumer := NewConsumer(nil)
	consumer.Register(nil)

	var nilConsumer *Consumer
	nilConsumer.Register(asynq.NewServeMux())
}
