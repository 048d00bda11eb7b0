package repository

import (
	"testing"

	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate order failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func createTestOrder(t *testing.T, repo *GormOrderRepository, orderNo string, userID uint, status string, productID uint) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:        orderNo,
		UserID:         userID,
		Status:         status,
		Currency:       constants.SiteCurrency,
		Subtotal:       models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		TotalAmount:    models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		ShippingMethod: constants.ShippingMethodStandard,
		PaymentMethod:  constants.PaymentMethodCOD,
		CustomerName:   "Layla Haddad",
		Phone:          "+962791234567",
		City:           "Amman",
		Address:        "12 Rainbow Street, Jabal Amman",
	}
	items := []models.OrderItem{{
		ProductID:  productID,
		NameJSON:   models.JSON{"en": "Trail shoe"},
		UnitPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		Quantity:   1,
		TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
	}}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestCreateAttachesItemsToOrder(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := createTestOrder(t, repo, "ANT-1001", 7, constants.OrderStatusPending, 3)

	got, err := repo.GetByIDAndUser(order.ID, 7)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got == nil || len(got.Items) != 1 || got.Items[0].OrderID != order.ID {
		t.Fatalf("expected one attached item, got %+v", got)
	}
}

func TestGetByIDAndUserScopesToOwner(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := createTestOrder(t, repo, "ANT-1002", 7, constants.OrderStatusPending, 3)

	got, err := repo.GetByIDAndUser(order.ID, 8)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected foreign order to be invisible")
	}
}

func TestHasPurchasedProductRespectsStatuses(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	createTestOrder(t, repo, "ANT-1003", 7, constants.OrderStatusPending, 3)

	gate := []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
	}

	ok, err := repo.HasPurchasedProduct(7, 3, gate)
	if err != nil {
		t.Fatalf("purchase check failed: %v", err)
	}
	if ok {
		t.Fatalf("pending order must not satisfy the purchase gate")
	}

	delivered := createTestOrder(t, repo, "ANT-1004", 7, constants.OrderStatusDelivered, 3)
	_ = delivered

	ok, err = repo.HasPurchasedProduct(7, 3, gate)
	if err != nil {
		t.Fatalf("purchase check failed: %v", err)
	}
	if !ok {
		t.Fatalf("delivered order should satisfy the purchase gate")
	}

	ok, err = repo.HasPurchasedProduct(7, 99, gate)
	if err != nil {
		t.Fatalf("purchase check failed: %v", err)
	}
	if ok {
		t.Fatalf("unpurchased product must not pass the gate")
	}
}

func TestListByUserFiltersStatus(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	createTestOrder(t, repo, "ANT-1005", 7, constants.OrderStatusPending, 3)
	createTestOrder(t, repo, "ANT-1006", 7, constants.OrderStatusDelivered, 3)
	createTestOrder(t, repo, "ANT-1007", 8, constants.OrderStatusPending, 3)

	orders, total, err := repo.ListByUser(OrderListFilter{UserID: 7, Status: constants.OrderStatusPending, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].OrderNo != "ANT-1005" {
		t.Fatalf("unexpected listing: total=%d items=%d", total, len(orders))
	}
}
