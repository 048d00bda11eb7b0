package admin

import (
	"strconv"

	"github.com/anta-store/anta-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

func queryDays(c *gin.Context) int {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	return days
}

// GetDashboardOverview returns the headline numbers for a window.
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	overview, err := h.DashboardService.Overview(queryDays(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, overview)
}

// GetDashboardOrderTrends returns the per-day order and revenue series.
func (h *Handler) GetDashboardOrderTrends(c *gin.Context) {
	trends, err := h.DashboardService.OrderTrends(queryDays(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"trends": trends})
}

// GetDashboardStockStats returns stock totals and the low-stock list.
func (h *Handler) GetDashboardStockStats(c *gin.Context) {
	stats, err := h.DashboardService.StockStats()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, stats)
}

// GetDashboardTopProducts returns the best sellers for a window.
func (h *Handler) GetDashboardTopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	ranking, err := h.DashboardService.TopProducts(queryDays(c), limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"products": ranking})
}
