package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/anta-store/anta-api/internal/config"
	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/localstore"
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/queue"
	"github.com/anta-store/anta-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCheckoutServiceTest(t *testing.T) (*CheckoutService, *CartService, *OrderNoteService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:checkout_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	store, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("new localstore failed: %v", err)
	}
	noteService := NewOrderNoteService(NewLocalNoteStore(store), 10)

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}

	cartService := NewCartService(cartRepo, productRepo, noteService, true)
	checkoutService := NewCheckoutService(orderRepo, productRepo, cartRepo, noteService, queueClient, 5)
	return checkoutService, cartService, noteService, db
}

func TestPlaceOrderSnapshotsCartAndClearsState(t *testing.T) {
	checkout, cart, notes, db := setupCheckoutServiceTest(t)
	seedProduct(t, db, 1, 10)
	seedProduct(t, db, 2, 10)

	if _, err := cart.AddToCart(7, 1, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := cart.AddToCart(7, 2, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	notes.SetNote(7, "ring the bell twice")

	order, err := checkout.PlaceOrder(PlaceOrderInput{
		UserID:   7,
		Form:     validCheckoutForm(),
		ClientIP: "203.0.113.9",
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", order.Status)
	}
	var items []models.OrderItem
	if err := db.Where("order_id = ?", order.ID).Find(&items).Error; err != nil || len(items) != 2 {
		t.Fatalf("order items want 2 got %d err=%v", len(items), err)
	}
	if order.Note != "ring the bell twice" {
		t.Fatalf("order must embed the pending note, got %q", order.Note)
	}
	if order.Phone != "+962791234567" {
		t.Fatalf("phone must normalize, got %s", order.Phone)
	}

	// 3 units with subtotal 30: discount 3, plus standard shipping 2.
	if !order.TotalAmount.Decimal.Equal(decimal.NewFromInt(29)) {
		t.Fatalf("total want 29 got %s", order.TotalAmount.String())
	}

	view, _ := cart.GetCart(7)
	if len(view.Items) != 0 {
		t.Fatalf("cart must clear after placement, got %d lines", len(view.Items))
	}
	if notes.GetNote(7) != "" {
		t.Fatalf("note must clear after placement")
	}

	var stock int
	if err := db.Model(&models.Product{}).Where("id = ?", 1).Pluck("stock", &stock).Error; err != nil {
		t.Fatalf("read stock failed: %v", err)
	}
	if stock != 8 {
		t.Fatalf("stock want 8 got %d", stock)
	}
}

func TestPlaceOrderFailsAtomicallyOnStockRace(t *testing.T) {
	checkout, cart, notes, db := setupCheckoutServiceTest(t)
	seedProduct(t, db, 1, 5)
	seedProduct(t, db, 2, 5)

	if _, err := cart.AddToCart(7, 1, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := cart.AddToCart(7, 2, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	notes.SetNote(7, "fragile")

	// Another session drains product 2 between add and checkout.
	if err := db.Model(&models.Product{}).Where("id = ?", 2).Update("stock", 1).Error; err != nil {
		t.Fatalf("drain stock failed: %v", err)
	}

	_, err := checkout.PlaceOrder(PlaceOrderInput{UserID: 7, Form: validCheckoutForm()})
	oos, ok := IsOutOfStock(err)
	if !ok {
		t.Fatalf("expected OutOfStockError, got %v", err)
	}
	if oos.ProductID != 2 || oos.MaxAllowed != 1 {
		t.Fatalf("unexpected stock report: %+v", oos)
	}

	// Nothing committed: first product's stock intact, cart and note preserved.
	var stock int
	if err := db.Model(&models.Product{}).Where("id = ?", 1).Pluck("stock", &stock).Error; err != nil {
		t.Fatalf("read stock failed: %v", err)
	}
	if stock != 5 {
		t.Fatalf("rolled-back stock want 5 got %d", stock)
	}
	view, _ := cart.GetCart(7)
	if len(view.Items) != 2 {
		t.Fatalf("cart must survive a failed placement, got %d lines", len(view.Items))
	}
	if notes.GetNote(7) != "fragile" {
		t.Fatalf("note must survive a failed placement")
	}
	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Fatalf("no order may exist after rollback, got %d", orderCount)
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	checkout, _, _, _ := setupCheckoutServiceTest(t)

	_, err := checkout.PlaceOrder(PlaceOrderInput{UserID: 7, Form: validCheckoutForm()})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart got %v", err)
	}
}

func TestPlaceOrderRejectsInvalidForm(t *testing.T) {
	checkout, cart, _, db := setupCheckoutServiceTest(t)
	seedProduct(t, db, 1, 5)
	if _, err := cart.AddToCart(7, 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	form := validCheckoutForm()
	form.Phone = "12345"
	_, err := checkout.PlaceOrder(PlaceOrderInput{UserID: 7, Form: form})
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("want ValidationError got %v", err)
	}

	view, _ := cart.GetCart(7)
	if len(view.Items) != 1 {
		t.Fatalf("failed validation must not touch the cart")
	}
}

func TestPlaceOrderExpressShippingFee(t *testing.T) {
	checkout, cart, _, db := setupCheckoutServiceTest(t)
	seedProduct(t, db, 1, 5)
	if _, err := cart.AddToCart(7, 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	form := validCheckoutForm()
	form.ShippingMethod = constants.ShippingMethodExpress
	order, err := checkout.PlaceOrder(PlaceOrderInput{UserID: 7, Form: form})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if !order.ShippingFee.Decimal.Equal(decimal.NewFromFloat(3.5)) {
		t.Fatalf("express fee want 3.50 got %s", order.ShippingFee.String())
	}
	if !order.TotalAmount.Decimal.Equal(decimal.NewFromFloat(13.5)) {
		t.Fatalf("total want 13.50 got %s", order.TotalAmount.String())
	}
}
