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

func setupReviewServiceTest(t *testing.T) (*ReviewService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:review_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	reviewRepo := repository.NewReviewRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewReviewService(reviewRepo, orderRepo, productRepo), db
}

func seedOrderWithProduct(t *testing.T, db *gorm.DB, userID, productID uint, status string) {
	t.Helper()
	order := models.Order{
		OrderNo:        fmt.Sprintf("ANT-%d-%d-%s", userID, productID, status),
		UserID:         userID,
		Status:         status,
		Currency:       constants.SiteCurrency,
		ShippingMethod: constants.ShippingMethodStandard,
		PaymentMethod:  constants.PaymentMethodCOD,
		CustomerName:   "Omar Khalil",
		Phone:          "+962791234567",
		City:           "Irbid",
		Address:        "University Street 44",
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}
	item := models.OrderItem{
		OrderID:   order.ID,
		ProductID: productID,
		NameJSON:  models.JSON{"en": "Water bottle"},
		Quantity:  1,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed order item failed: %v", err)
	}
}

func TestCreateReviewRequiresPurchase(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	seedProduct(t, db, 1, 5)

	_, err := svc.CreateReview(CreateReviewInput{UserID: 7, ProductID: 1, Rating: 5})
	if !errors.Is(err, ErrNotPurchased) {
		t.Fatalf("want ErrNotPurchased got %v", err)
	}

	seedOrderWithProduct(t, db, 7, 1, constants.OrderStatusPending)
	_, err = svc.CreateReview(CreateReviewInput{UserID: 7, ProductID: 1, Rating: 5})
	if !errors.Is(err, ErrNotPurchased) {
		t.Fatalf("pending order must not open the gate, got %v", err)
	}

	seedOrderWithProduct(t, db, 7, 1, constants.OrderStatusDelivered)
	review, err := svc.CreateReview(CreateReviewInput{UserID: 7, ProductID: 1, Rating: 5, Body: "ممتاز"})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if review.ID == 0 || !review.IsPublished {
		t.Fatalf("unexpected review: %+v", review)
	}
}

func TestCreateReviewRejectsDuplicates(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	seedProduct(t, db, 1, 5)
	seedOrderWithProduct(t, db, 7, 1, constants.OrderStatusDelivered)

	if _, err := svc.CreateReview(CreateReviewInput{UserID: 7, ProductID: 1, Rating: 4}); err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	_, err := svc.CreateReview(CreateReviewInput{UserID: 7, ProductID: 1, Rating: 2})
	if !errors.Is(err, ErrReviewExists) {
		t.Fatalf("want ErrReviewExists got %v", err)
	}
}

func TestCreateReviewRejectsBadRating(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	seedProduct(t, db, 1, 5)
	seedOrderWithProduct(t, db, 7, 1, constants.OrderStatusDelivered)

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.CreateReview(CreateReviewInput{UserID: 7, ProductID: 1, Rating: rating}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("rating %d: want ErrInvalidInput got %v", rating, err)
		}
	}
}

func TestReviewLifecycleKeepsAggregateCurrent(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	seedProduct(t, db, 1, 5)
	seedOrderWithProduct(t, db, 7, 1, constants.OrderStatusDelivered)
	seedOrderWithProduct(t, db, 8, 1, constants.OrderStatusDelivered)

	first, err := svc.CreateReview(CreateReviewInput{UserID: 7, ProductID: 1, Rating: 5})
	if err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if _, err := svc.CreateReview(CreateReviewInput{UserID: 8, ProductID: 1, Rating: 3}); err != nil {
		t.Fatalf("create review failed: %v", err)
	}

	assertAggregate := func(wantAvg float64, wantCount int) {
		t.Helper()
		var product models.Product
		if err := db.First(&product, 1).Error; err != nil {
			t.Fatalf("read product failed: %v", err)
		}
		if product.RatingAvg != wantAvg || product.RatingCount != wantCount {
			t.Fatalf("aggregate want %v/%d got %v/%d", wantAvg, wantCount, product.RatingAvg, product.RatingCount)
		}
	}
	assertAggregate(4, 2)

	if err := svc.SetPublished(first.ID, false); err != nil {
		t.Fatalf("unpublish failed: %v", err)
	}
	assertAggregate(3, 1)

	if err := svc.SetPublished(first.ID, true); err != nil {
		t.Fatalf("republish failed: %v", err)
	}
	assertAggregate(4, 2)

	if err := svc.DeleteReview(first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	assertAggregate(3, 1)
}

func TestCanReview(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	seedProduct(t, db, 1, 5)

	ok, err := svc.CanReview(7, 1)
	if err != nil || ok {
		t.Fatalf("no purchase: want false got %v err=%v", ok, err)
	}

	seedOrderWithProduct(t, db, 7, 1, constants.OrderStatusConfirmed)
	ok, err = svc.CanReview(7, 1)
	if err != nil || !ok {
		t.Fatalf("confirmed purchase: want true got %v err=%v", ok, err)
	}

	if _, err := svc.CreateReview(CreateReviewInput{UserID: 7, ProductID: 1, Rating: 4}); err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	ok, err = svc.CanReview(7, 1)
	if err != nil || ok {
		t.Fatalf("existing review: want false got %v err=%v", ok, err)
	}
}
