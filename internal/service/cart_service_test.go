package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/anta-store/anta-api/internal/localstore"
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T, clearNoteOnCartClear bool) (*CartService, *OrderNoteService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.CartItem{}); err != nil {
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
	return NewCartService(cartRepo, productRepo, noteService, clearNoteOnCartClear), noteService, db
}

func seedProduct(t *testing.T, db *gorm.DB, id uint, stock int) {
	t.Helper()
	product := models.Product{
		ID:          id,
		CategoryID:  1,
		Slug:        fmt.Sprintf("product-%d", id),
		NameJSON:    models.JSON{"en": "Training jacket"},
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Stock:       stock,
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
}

func TestAddToCartNewLineAndIncrement(t *testing.T) {
	svc, _, db := setupCartServiceTest(t, true)
	seedProduct(t, db, 1, 10)

	result, err := svc.AddToCart(7, 1, 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !result.NewLine || result.Item.Quantity != 1 {
		t.Fatalf("expected new line qty 1, got %+v", result)
	}

	result, err = svc.AddToCart(7, 1, 2)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if result.NewLine || result.Item.Quantity != 3 {
		t.Fatalf("expected merged line qty 3, got %+v", result)
	}

	view, err := svc.GetCart(7)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("cart must hold one line per product, got %d", len(view.Items))
	}
}

func TestAddToCartRejectsOversell(t *testing.T) {
	svc, _, db := setupCartServiceTest(t, true)
	seedProduct(t, db, 1, 2)

	if _, err := svc.AddToCart(7, 1, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	_, err := svc.AddToCart(7, 1, 1)
	oos, ok := IsOutOfStock(err)
	if !ok {
		t.Fatalf("expected OutOfStockError, got %v", err)
	}
	if oos.MaxAllowed != 0 {
		t.Fatalf("max allowed want 0 got %d", oos.MaxAllowed)
	}

	view, _ := svc.GetCart(7)
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Fatalf("failed add must not change the cart: %+v", view.Items)
	}
}

func TestAddToCartReportsRemainingAllowance(t *testing.T) {
	svc, _, db := setupCartServiceTest(t, true)
	seedProduct(t, db, 1, 5)

	if _, err := svc.AddToCart(7, 1, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	_, err := svc.AddToCart(7, 1, 4)
	oos, ok := IsOutOfStock(err)
	if !ok || oos.MaxAllowed != 2 {
		t.Fatalf("expected max allowed 2, got %v", err)
	}
}

func TestUpdateQuantityClampsFloorToOne(t *testing.T) {
	svc, _, db := setupCartServiceTest(t, true)
	seedProduct(t, db, 1, 10)

	if _, err := svc.AddToCart(7, 1, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	item, err := svc.UpdateQuantity(7, 1, 0)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("zero request must clamp to 1, got %d", item.Quantity)
	}
}

func TestUpdateQuantityChecksLiveStock(t *testing.T) {
	svc, _, db := setupCartServiceTest(t, true)
	seedProduct(t, db, 1, 10)

	if _, err := svc.AddToCart(7, 1, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", 1).Update("stock", 3).Error; err != nil {
		t.Fatalf("shrink stock failed: %v", err)
	}

	_, err := svc.UpdateQuantity(7, 1, 5)
	oos, ok := IsOutOfStock(err)
	if !ok || oos.MaxAllowed != 3 {
		t.Fatalf("expected max allowed 3, got %v", err)
	}
}

func TestRemoveFromCartIsIdempotent(t *testing.T) {
	svc, _, db := setupCartServiceTest(t, true)
	seedProduct(t, db, 1, 10)

	if err := svc.RemoveFromCart(7, 1); err != nil {
		t.Fatalf("removing absent line must be a no-op, got %v", err)
	}
	if _, err := svc.AddToCart(7, 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.RemoveFromCart(7, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.RemoveFromCart(7, 1); err != nil {
		t.Fatalf("second remove failed: %v", err)
	}
}

func TestClearCartClearsNotePerPolicy(t *testing.T) {
	svc, notes, db := setupCartServiceTest(t, true)
	seedProduct(t, db, 1, 10)

	if _, err := svc.AddToCart(7, 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	notes.SetNote(7, "leave at the door")

	if err := svc.ClearCart(7); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if got := notes.GetNote(7); got != "" {
		t.Fatalf("policy requires the note to clear with the cart, got %q", got)
	}
}

func TestClearCartKeepsNoteWhenPolicyOff(t *testing.T) {
	svc, notes, db := setupCartServiceTest(t, false)
	seedProduct(t, db, 1, 10)

	if _, err := svc.AddToCart(7, 1, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	notes.SetNote(7, "gift wrap please")

	if err := svc.ClearCart(7); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if got := notes.GetNote(7); got != "gift wrap please" {
		t.Fatalf("note must survive cart clear when policy is off, got %q", got)
	}
}
