package repository

import (
	"fmt"
	"time"

	"github.com/anta-store/anta-api/internal/constants"
	"github.com/anta-store/anta-api/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository aggregates statistics for the admin dashboard. It only
// runs read queries; business rules live in the service layer.
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
	GetStockStats(lowStockThreshold int) (DashboardStockStatsRow, error)
	GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error)
}

// DashboardOverviewRow is the raw overview aggregate.
type DashboardOverviewRow struct {
	OrdersTotal     int64
	PendingOrders   int64
	ConfirmedOrders int64
	DeliveredOrders int64
	CanceledOrders  int64
	Revenue         float64
	NewUsers        int64
	ActiveProducts  int64
	PendingReviews  int64
	Currency        string
}

// DashboardOrderTrendRow is one day of order counts.
type DashboardOrderTrendRow struct {
	Day             string
	OrdersTotal     int64
	OrdersConfirmed int64
}

// DashboardStockStatsRow is the stock health aggregate.
type DashboardStockStatsRow struct {
	OutOfStockProducts int64
	LowStockProducts   int64
}

// DashboardProductRankingRow is one product ranking row.
type DashboardProductRankingRow struct {
	ProductID uint
	Quantity  int64
	Amount    float64
}

// GormDashboardRepository is the GORM implementation.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a dashboard repository.
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// revenueStatuses are the statuses whose orders count toward revenue.
func revenueStatuses() []string {
	return []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
	}
}

// GetOverview computes the overview aggregate for the window.
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{Currency: constants.SiteCurrency}

	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", startAt, endAt)
	}

	if err := orderBase().Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusPending).Count(&result.PendingOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status IN ?", revenueStatuses()).Count(&result.ConfirmedOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusDelivered).Count(&result.DeliveredOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusCanceled).Count(&result.CanceledOrders).Error; err != nil {
		return result, err
	}

	if err := orderBase().Where("status IN ?", revenueStatuses()).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.Revenue).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Count(&result.NewUsers).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Count(&result.ActiveProducts).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Review{}).
		Where("is_published = ?", false).
		Count(&result.PendingReviews).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetOrderTrends returns daily order counts within the window.
func (r *GormDashboardRepository) GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	type totalRow struct {
		Day   string
		Total int64
	}

	dayExpr := "CAST(date(created_at) AS TEXT)"

	var totals []totalRow
	if err := r.db.Model(&models.Order{}).
		Select(fmt.Sprintf("%s as day, COUNT(*) as total", dayExpr)).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group(dayExpr).
		Order("day asc").
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	var confirmed []totalRow
	if err := r.db.Model(&models.Order{}).
		Select(fmt.Sprintf("%s as day, COUNT(*) as total", dayExpr)).
		Where("created_at >= ? AND created_at < ? AND status IN ?", startAt, endAt, revenueStatuses()).
		Group(dayExpr).
		Order("day asc").
		Scan(&confirmed).Error; err != nil {
		return nil, err
	}

	confirmedMap := make(map[string]int64, len(confirmed))
	for _, item := range confirmed {
		confirmedMap[item.Day] = item.Total
	}

	result := make([]DashboardOrderTrendRow, 0, len(totals))
	for _, item := range totals {
		result = append(result, DashboardOrderTrendRow{
			Day:             item.Day,
			OrdersTotal:     item.Total,
			OrdersConfirmed: confirmedMap[item.Day],
		})
	}
	return result, nil
}

// GetStockStats computes stock health counts.
func (r *GormDashboardRepository) GetStockStats(lowStockThreshold int) (DashboardStockStatsRow, error) {
	result := DashboardStockStatsRow{}

	if err := r.db.Model(&models.Product{}).
		Where("is_active = ? AND stock = 0", true).
		Count(&result.OutOfStockProducts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("is_active = ? AND stock > 0 AND stock <= ?", true, lowStockThreshold).
		Count(&result.LowStockProducts).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetTopProducts ranks products by quantity sold within the window.
func (r *GormDashboardRepository) GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []DashboardProductRankingRow
	err := r.db.Model(&models.OrderItem{}).
		Select("order_items.product_id as product_id, SUM(order_items.quantity) as quantity, COALESCE(SUM(order_items.total_price), 0) as amount").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ? AND orders.status IN ? AND orders.deleted_at IS NULL", startAt, endAt, revenueStatuses()).
		Group("order_items.product_id").
		Order("quantity desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
