package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewOrderService(orderRepo, productRepo), db
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusPending, constants.OrderStatusCanceled, true},
		{constants.OrderStatusPending, constants.OrderStatusShipped, false},
		{constants.OrderStatusConfirmed, constants.OrderStatusProcessing, true},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped, true},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipped, constants.OrderStatusCanceled, false},
		{constants.OrderStatusDelivered, constants.OrderStatusCanceled, false},
		{constants.OrderStatusCanceled, constants.OrderStatusPending, false},
		{"Pending ", "confirmed", true},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("transition %s->%s want %v got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedProduct(t, db, 1, 5)
	seedOrderWithProduct(t, db, 7, 1, constants.OrderStatusPending)

	var order models.Order
	if err := db.First(&order).Error; err != nil {
		t.Fatalf("read order failed: %v", err)
	}

	_, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition got %v", err)
	}
}

func TestCancelRestoresStock(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedProduct(t, db, 1, 3)
	seedOrderWithProduct(t, db, 7, 1, constants.OrderStatusPending)

	var order models.Order
	if err := db.First(&order).Error; err != nil {
		t.Fatalf("read order failed: %v", err)
	}

	updated, err := svc.CancelByUser(order.ID, 7)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if updated.Status != constants.OrderStatusCanceled {
		t.Fatalf("status want canceled got %s", updated.Status)
	}

	var stock int
	if err := db.Model(&models.Product{}).Where("id = ?", 1).Pluck("stock", &stock).Error; err != nil {
		t.Fatalf("read stock failed: %v", err)
	}
	if stock != 4 {
		t.Fatalf("canceled unit must return to stock: want 4 got %d", stock)
	}

	var canceledAt *time.Time
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Pluck("canceled_at", &canceledAt).Error; err != nil {
		t.Fatalf("read canceled_at failed: %v", err)
	}
	if canceledAt == nil {
		t.Fatalf("canceled_at must be stamped")
	}
}

func TestCancelByUserOnlyWhilePending(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedProduct(t, db, 1, 3)
	seedOrderWithProduct(t, db, 7, 1, constants.OrderStatusShipped)

	var order models.Order
	if err := db.First(&order).Error; err != nil {
		t.Fatalf("read order failed: %v", err)
	}

	_, err := svc.CancelByUser(order.ID, 7)
	if !errors.Is(err, ErrOrderNotCancelable) {
		t.Fatalf("want ErrOrderNotCancelable got %v", err)
	}
}

func TestTrackOrderScopesToOwner(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	seedProduct(t, db, 1, 3)
	seedOrderWithProduct(t, db, 7, 1, constants.OrderStatusPending)

	var order models.Order
	if err := db.First(&order).Error; err != nil {
		t.Fatalf("read order failed: %v", err)
	}

	got, err := svc.TrackOrder(order.OrderNo, 7)
	if err != nil || got.ID != order.ID {
		t.Fatalf("track failed: %v", err)
	}

	_, err = svc.TrackOrder(order.OrderNo, 8)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign tracking must fail with ErrOrderNotFound, got %v", err)
	}
}
