package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/anta-store/anta-api/internal/http/handlers/shared"
	"github.com/anta-store/anta-api/internal/http/response"
	"github.com/anta-store/anta-api/internal/repository"
	"github.com/anta-store/anta-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest moves an order along its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetAdminOrders lists orders with status, order number and date filters.
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}
	if raw := c.Query("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
			filter.UserID = uint(id)
		}
	}
	if raw := c.Query("created_from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if raw := c.Query("created_to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			end := t.Add(24 * time.Hour)
			filter.CreatedTo = &end
		}
	}

	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.NewPagination(page, pageSize, total))
}

// GetAdminOrder returns one order with its items.
func (h *Handler) GetAdminOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetAdmin(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// UpdateAdminOrderStatus transitions an order. Canceling returns its units
// to stock.
func (h *Handler) UpdateAdminOrderStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrInvalidTransition):
			respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, gin.H{"order": order})
}
