package service

import (
	"time"

	"github.com/anta-store/anta-api/internal/repository"
)

// DashboardOverview is the dashboard summary response.
type DashboardOverview struct {
	OrdersTotal     int64   `json:"orders_total"`
	PendingOrders   int64   `json:"pending_orders"`
	ConfirmedOrders int64   `json:"confirmed_orders"`
	DeliveredOrders int64   `json:"delivered_orders"`
	CanceledOrders  int64   `json:"canceled_orders"`
	Revenue         float64 `json:"revenue"`
	NewUsers        int64   `json:"new_users"`
	ActiveProducts  int64   `json:"active_products"`
	PendingReviews  int64   `json:"pending_reviews"`
	Currency        string  `json:"currency"`
}

// DashboardStockStats is the stock health response.
type DashboardStockStats struct {
	OutOfStockProducts int64 `json:"out_of_stock_products"`
	LowStockProducts   int64 `json:"low_stock_products"`
	Threshold          int   `json:"threshold"`
}

// DashboardService computes admin dashboard figures over a day window.
type DashboardService struct {
	dashboardRepo     repository.DashboardRepository
	lowStockThreshold int
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(dashboardRepo repository.DashboardRepository, lowStockThreshold int) *DashboardService {
	if lowStockThreshold < 0 {
		lowStockThreshold = 0
	}
	return &DashboardService{dashboardRepo: dashboardRepo, lowStockThreshold: lowStockThreshold}
}

// resolveWindow clamps the requested day count into [1, 90] and returns the
// half-open time range ending now.
func resolveWindow(days int) (time.Time, time.Time) {
	if days < 1 {
		days = 7
	}
	if days > 90 {
		days = 90
	}
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return start, end
}

// Overview returns the summary for the last N days.
func (s *DashboardService) Overview(days int) (*DashboardOverview, error) {
	startAt, endAt := resolveWindow(days)
	row, err := s.dashboardRepo.GetOverview(startAt, endAt)
	if err != nil {
		return nil, err
	}
	return &DashboardOverview{
		OrdersTotal:     row.OrdersTotal,
		PendingOrders:   row.PendingOrders,
		ConfirmedOrders: row.ConfirmedOrders,
		DeliveredOrders: row.DeliveredOrders,
		CanceledOrders:  row.CanceledOrders,
		Revenue:         row.Revenue,
		NewUsers:        row.NewUsers,
		ActiveProducts:  row.ActiveProducts,
		PendingReviews:  row.PendingReviews,
		Currency:        row.Currency,
	}, nil
}

// OrderTrends returns daily order counts for the last N days.
func (s *DashboardService) OrderTrends(days int) ([]repository.DashboardOrderTrendRow, error) {
	startAt, endAt := resolveWindow(days)
	return s.dashboardRepo.GetOrderTrends(startAt, endAt)
}

// StockStats returns the stock health summary.
func (s *DashboardService) StockStats() (*DashboardStockStats, error) {
	row, err := s.dashboardRepo.GetStockStats(s.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	return &DashboardStockStats{
		OutOfStockProducts: row.OutOfStockProducts,
		LowStockProducts:   row.LowStockProducts,
		Threshold:          s.lowStockThreshold,
	}, nil
}

// TopProducts ranks products by units sold in the last N days.
func (s *DashboardService) TopProducts(days, limit int) ([]repository.DashboardProductRankingRow, error) {
	startAt, endAt := resolveWindow(days)
	return s.dashboardRepo.GetTopProducts(startAt, endAt, limit)
}
