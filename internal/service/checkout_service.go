package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/logger"
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/queue"
	"github.com/anta-store/anta-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Flat shipping fees in JOD.
var (
	shippingFeeStandard = decimal.NewFromFloat(2.00)
	shippingFeeExpress  = decimal.NewFromFloat(3.50)
)

// PlaceOrderInput is the checkout submission.
type PlaceOrderInput struct {
	UserID   uint
	Form     CheckoutForm
	ClientIP string
}

// CheckoutService turns a validated cart into an order. Order creation and
// stock decrements run in one transaction: stock is taken with a guarded
// update, so two sessions racing over the last unit cannot both win.
type CheckoutService struct {
	orderRepo         *repository.GormOrderRepository
	productRepo       *repository.GormProductRepository
	cartRepo          repository.CartRepository
	noteService       *OrderNoteService
	queueClient       *queue.Client
	lowStockThreshold int
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(
	orderRepo *repository.GormOrderRepository,
	productRepo *repository.GormProductRepository,
	cartRepo repository.CartRepository,
	noteService *OrderNoteService,
	queueClient *queue.Client,
	lowStockThreshold int,
) *CheckoutService {
	if lowStockThreshold < 0 {
		lowStockThreshold = 0
	}
	return &CheckoutService{
		orderRepo:         orderRepo,
		productRepo:       productRepo,
		cartRepo:          cartRepo,
		noteService:       noteService,
		queueClient:       queueClient,
		lowStockThreshold: lowStockThreshold,
	}
}

// ValidateStep checks one checkout step without side effects.
func (s *CheckoutService) ValidateStep(step int, form *CheckoutForm) error {
	return ValidateCheckoutStep(step, form)
}

// PlaceOrder validates the full form, snapshots the cart into an order and
// commits it together with the stock decrements. On success the cart and the
// pending note are cleared; on any failure both stay intact so the user can
// retry without re-entering data.
func (s *CheckoutService) PlaceOrder(input PlaceOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	if err := ValidateCheckoutForm(&input.Form); err != nil {
		return nil, err
	}

	cartItems, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	totals := ComputeCartTotals(cartItems)
	shippingFee := shippingFeeFor(input.Form.ShippingMethod)
	grandTotal := totals.Total.Decimal.Add(shippingFee)

	phone, _ := NormalizeJordanMobile(input.Form.Phone)
	note := TruncateNote(s.noteService.GetNote(input.UserID))
	now := time.Now()

	order := &models.Order{
		OrderNo:        generateOrderNo(),
		UserID:         input.UserID,
		Status:         constants.OrderStatusPending,
		Currency:       constants.SiteCurrency,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		ShippingFee:    models.NewMoneyFromDecimal(shippingFee),
		TotalAmount:    models.NewMoneyFromDecimal(grandTotal),
		ShippingMethod: input.Form.ShippingMethod,
		PaymentMethod:  input.Form.PaymentMethod,
		PaymentRef:     strings.TrimSpace(input.Form.PaymentRef),
		Note:           note,
		CustomerName:   strings.TrimSpace(input.Form.CustomerName),
		Phone:          phone,
		City:           strings.TrimSpace(input.Form.City),
		Address:        strings.TrimSpace(input.Form.Address),
		ClientIP:       strings.TrimSpace(input.ClientIP),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	items := make([]models.OrderItem, 0, len(cartItems))
	for _, line := range cartItems {
		lineTotal := line.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, models.OrderItem{
			ProductID:  line.ProductID,
			NameJSON:   line.NameJSON,
			Image:      line.Image,
			UnitPrice:  line.PriceAmount,
			Quantity:   line.Quantity,
			TotalPrice: models.NewMoneyFromDecimal(lineTotal),
		})
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		for _, line := range cartItems {
			affected, err := productRepo.DecrementStock(line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				stock, _, err := productRepo.GetStock(line.ProductID)
				if err != nil {
					return err
				}
				return &OutOfStockError{ProductID: line.ProductID, MaxAllowed: stock}
			}
		}

		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		return cartRepo.ClearByUser(input.UserID)
	})
	if err != nil {
		if _, ok := IsOutOfStock(err); ok {
			return nil, err
		}
		logger.Errorw("order_create_failed",
			"user_id", input.UserID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil, ErrOrderCreateFailed
	}

	s.noteService.ClearNote(input.UserID)
	s.afterPlaced(order, items)

	logger.Infow("order_placed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", input.UserID,
		"total", order.TotalAmount.String(),
	)
	return order, nil
}

// afterPlaced runs the post-commit side effects. Enqueue failures only log:
// the order is already committed.
func (s *CheckoutService) afterPlaced(order *models.Order, items []models.OrderItem) {
	if err := s.queueClient.EnqueueOrderPlacedNotify(queue.OrderPlacedNotifyPayload{
		OrderID: order.ID,
		OrderNo: order.OrderNo,
		UserID:  order.UserID,
	}); err != nil {
		logger.Warnw("order_notify_enqueue_failed", "order_no", order.OrderNo, "error", err)
	}

	for _, item := range items {
		stock, ok, err := s.productRepo.GetStock(item.ProductID)
		if err != nil || !ok {
			continue
		}
		if stock <= s.lowStockThreshold {
			if err := s.queueClient.EnqueueLowStockAlert(queue.LowStockAlertPayload{
				ProductID: item.ProductID,
				Stock:     stock,
				Threshold: s.lowStockThreshold,
			}); err != nil {
				logger.Warnw("low_stock_enqueue_failed", "product_id", item.ProductID, "error", err)
			}
		}
	}
}

func shippingFeeFor(method string) decimal.Decimal {
	if method == constants.ShippingMethodExpress {
		return shippingFeeExpress
	}
	return shippingFeeStandard
}

// ShippingFees lists the flat fee per shipping method.
func ShippingFees() map[string]models.Money {
	return map[string]models.Money{
		constants.ShippingMethodStandard: models.NewMoneyFromDecimal(shippingFeeStandard),
		constants.ShippingMethodExpress:  models.NewMoneyFromDecimal(shippingFeeExpress),
	}
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("ANT%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
