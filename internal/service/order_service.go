package service

import (
	"time"

	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/logger"
	"github.com/anta-store/anta-api/internal/models"
	"github.com/anta-store/anta-api/internal/repository"

	"gorm.io/gorm"
)

// OrderService reads order history and drives the status lifecycle.
type OrderService struct {
	orderRepo   *repository.GormOrderRepository
	productRepo *repository.GormProductRepository
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo *repository.GormOrderRepository, productRepo *repository.GormProductRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, productRepo: productRepo}
}

// ListUserOrders returns a page of the user's orders.
func (s *OrderService) ListUserOrders(userID uint, status string, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetUserOrder returns one of the user's orders by ID.
func (s *OrderService) GetUserOrder(id, userID uint) (*models.Order, error) {
	if id == 0 || userID == 0 {
		return nil, ErrInvalidInput
	}
	order, err := s.orderRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// TrackOrder returns one of the user's orders by order number.
func (s *OrderService) TrackOrder(orderNo string, userID uint) (*models.Order, error) {
	if orderNo == "" || userID == 0 {
		return nil, ErrInvalidInput
	}
	order, err := s.orderRepo.GetByOrderNoAndUser(orderNo, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// CancelByUser cancels the user's own order. Only a pending order can be
// canceled by its buyer; once confirmed, cancellation goes through staff.
func (s *OrderService) CancelByUser(id, userID uint) (*models.Order, error) {
	order, err := s.GetUserOrder(id, userID)
	if err != nil {
		return nil, err
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderNotCancelable
	}
	return s.transition(order, constants.OrderStatusCanceled)
}

// ListAdmin returns a page of all orders.
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetAdmin returns any order by ID.
func (s *OrderService) GetAdmin(id uint) (*models.Order, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus moves an order along its lifecycle.
func (s *OrderService) UpdateStatus(id uint, nextStatus string) (*models.Order, error) {
	order, err := s.GetAdmin(id)
	if err != nil {
		return nil, err
	}
	return s.transition(order, nextStatus)
}

// transition applies a checked status change. Cancellation returns the
// order's units to stock in the same transaction that flips the status.
func (s *OrderService) transition(order *models.Order, nextStatus string) (*models.Order, error) {
	if !CanTransition(order.Status, nextStatus) {
		return nil, ErrInvalidTransition
	}
	now := time.Now()
	updates := statusTimestampUpdates(nextStatus, now)

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.UpdateStatus(order.ID, nextStatus, updates); err != nil {
			return err
		}
		if nextStatus == constants.OrderStatusCanceled {
			productRepo := s.productRepo.WithTx(tx)
			for _, item := range order.Items {
				if err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_status_changed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"from", order.Status,
		"to", nextStatus,
	)
	order.Status = nextStatus
	return order, nil
}
