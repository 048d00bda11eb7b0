package repository

import (
	"testing"

	"github.com/anta-store/anta-api/internal/localstore"
	"github.com/anta-store/anta-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) *GormCartRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate cart failed: %v", err)
	}
	return NewCartRepository(db)
}

func cartLine(userID, productID uint, quantity int) *models.CartItem {
	return &models.CartItem{
		UserID:      userID,
		ProductID:   productID,
		NameJSON:    models.JSON{"en": "Gym bag"},
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(12)),
		Quantity:    quantity,
	}
}

func TestUpsertMergesDuplicateProduct(t *testing.T) {
	repo := setupCartRepositoryTest(t)

	if err := repo.Upsert(cartLine(1, 10, 2)); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := repo.Upsert(cartLine(1, 10, 5)); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	items, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("cart must hold one line per product, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", items[0].Quantity)
	}
}

func TestClearByUserLeavesOtherCartsAlone(t *testing.T) {
	repo := setupCartRepositoryTest(t)
	if err := repo.Upsert(cartLine(1, 10, 1)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := repo.Upsert(cartLine(2, 10, 1)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if err := repo.ClearByUser(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	items, err := repo.ListByUser(1)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty cart for user 1, got %d items err=%v", len(items), err)
	}
	items, err = repo.ListByUser(2)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected untouched cart for user 2, got %d items err=%v", len(items), err)
	}
}

func TestLocalCartRepositoryUpsertAndRemove(t *testing.T) {
	store, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("new localstore failed: %v", err)
	}
	repo := NewLocalCartRepository(store)

	if err := repo.Upsert(cartLine(1, 10, 2)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := repo.Upsert(cartLine(1, 11, 1)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := repo.Upsert(cartLine(1, 10, 4)); err != nil {
		t.Fatalf("merge upsert failed: %v", err)
	}

	items, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("line count want 2 got %d", len(items))
	}
	for _, it := range items {
		if it.ProductID == 10 && it.Quantity != 4 {
			t.Fatalf("merged quantity want 4 got %d", it.Quantity)
		}
	}

	if err := repo.DeleteByUserAndProduct(1, 10); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	items, _ = repo.ListByUser(1)
	if len(items) != 1 || items[0].ProductID != 11 {
		t.Fatalf("expected only product 11 left, got %+v", items)
	}
}
