package repository

import (
	"testing"

	"github.com/anta-store/anta-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, slug string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:  1,
		Slug:        slug,
		NameJSON:    models.JSON{"ar": "حذاء رياضي", "en": "Running shoe"},
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(25)),
		Stock:       stock,
		IsActive:    true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestDecrementStockGuardsAgainstOversell(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "oversell-guard", 3)

	affected, err := repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	affected, err = repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("second decrement failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected oversell decrement to touch no rows, got %d", affected)
	}

	stock, ok, err := repo.GetStock(product.ID)
	if err != nil || !ok {
		t.Fatalf("get stock failed: ok=%v err=%v", ok, err)
	}
	if stock != 1 {
		t.Fatalf("stock want 1 got %d", stock)
	}
}

func TestDecrementStockRejectsNonPositiveQuantity(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "bad-quantity", 5)

	if _, err := repo.DecrementStock(product.ID, 0); err == nil {
		t.Fatalf("expected error for zero quantity")
	}
	if _, err := repo.DecrementStock(product.ID, -1); err == nil {
		t.Fatalf("expected error for negative quantity")
	}
}

func TestGetStockTreatsInactiveAsAbsent(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "inactive-product", 5)

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	_, ok, err := repo.GetStock(product.ID)
	if err != nil {
		t.Fatalf("get stock failed: %v", err)
	}
	if ok {
		t.Fatalf("expected inactive product to read as absent")
	}
}

func TestListFiltersActiveAndCategory(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "active-one", 3)
	inactive := createTestProduct(t, repo, "inactive-one", 3)
	if err := db.Model(&models.Product{}).Where("id = ?", inactive.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	other := createTestProduct(t, repo, "other-category", 3)
	if err := db.Model(&models.Product{}).Where("id = ?", other.ID).Update("category_id", 2).Error; err != nil {
		t.Fatalf("move category failed: %v", err)
	}

	products, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, OnlyActive: true, CategoryID: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].Slug != "active-one" {
		t.Fatalf("unexpected listing: total=%d items=%d", total, len(products))
	}
}

func TestUpdateRatingWritesAggregate(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "rated-product", 3)

	if err := repo.UpdateRating(product.ID, 4.5, 2); err != nil {
		t.Fatalf("update rating failed: %v", err)
	}
	got, err := repo.GetByID(product.ID)
	if err != nil || got == nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got.RatingAvg != 4.5 || got.RatingCount != 2 {
		t.Fatalf("rating aggregate mismatch: avg=%v count=%d", got.RatingAvg, got.RatingCount)
	}
}
