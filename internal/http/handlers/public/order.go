package public

import (
	"strconv"
	"strings"

	handlershared "github.com/anta-store/anta-api/internal/http/handlers/shared"
	"github.com/anta-store/anta-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListOrders returns the caller's orders, newest first.
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)
	status := strings.TrimSpace(c.Query("status"))

	orders, total, err := h.OrderService.ListUserOrders(uid, status, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.NewPagination(page, pageSize, total))
}

// GetOrder returns one of the caller's orders with its items.
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := paramOrderID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetUserOrder(id, uid)
	if err != nil {
		respondWithMappedError(c, err, userOrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"order": order})
}

// TrackOrder looks an order up by its public order number, scoped to the
// caller so numbers cannot be enumerated across accounts.
func (h *Handler) TrackOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderNo := strings.TrimSpace(c.Query("order_no"))
	order, err := h.OrderService.TrackOrder(orderNo, uid)
	if err != nil {
		respondWithMappedError(c, err, userOrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"order": order})
}

// CancelOrder cancels a pending order and returns its units to stock.
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := paramOrderID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.CancelByUser(id, uid)
	if err != nil {
		respondWithMappedError(c, err, userOrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"order": order})
}

func paramOrderID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
