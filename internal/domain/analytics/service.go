// internal/domain/analytics/service.go
package analytics

import (
	"fmt"
	"time"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/order"
	"github.com/luxfakia/storefront/internal/domain/pricing"
	"gorm.io/gorm"
)

// Service handles analytics business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new analytics service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// DashboardStats represents the admin dashboard figures
type DashboardStats struct {
	// Catalog metrics
	TotalProducts      int64 `json:"total_products"`
	HiddenProducts     int64 `json:"hidden_products"`
	OutOfStockProducts int64 `json:"out_of_stock_products"`
	TotalCategories    int64 `json:"total_categories"`

	// Order metrics
	TotalOrders     int64 `json:"total_orders"`
	PendingOrders   int64 `json:"pending_orders"`
	CompletedOrders int64 `json:"completed_orders"`
	CancelledOrders int64 `json:"cancelled_orders"`
	OrdersToday     int64 `json:"orders_today"`

	// Revenue of completed orders
	TotalRevenue     float64 `json:"total_revenue"`
	RevenueThisMonth float64 `json:"revenue_this_month"`
	AvgOrderValue    float64 `json:"avg_order_value"`

	// User metrics
	TotalUsers     int64 `json:"total_users"`
	TotalCustomers int64 `json:"total_customers"`

	RecentOrders []RecentOrder      `json:"recent_orders"`
	TopProducts  []ProductSalesData `json:"top_products"`
	DailyRevenue []TimeSeriesData   `json:"daily_revenue"`
}

// RecentOrder is a dashboard row for the latest orders
type RecentOrder struct {
	ID           uint      `json:"id"`
	CustomerName string    `json:"customer_name"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProductSalesData struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Revenue     float64 `json:"revenue"`
	OrderCount  int64   `json:"order_count"`
}

type TimeSeriesData struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Count int64   `json:"count"`
}

var (
	statusPending   = string(order.OrderStatusPending)
	statusCompleted = string(order.OrderStatusCompleted)
	statusCancelled = string(order.OrderStatusCancelled)
)

// GetDashboardStats collects every dashboard figure
func (s *Service) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	counts := []struct {
		dest  *int64
		query string
		args  []interface{}
	}{
		{&stats.TotalProducts, "SELECT COUNT(*) FROM products", nil},
		{&stats.HiddenProducts, "SELECT COUNT(*) FROM products WHERE is_hidden = ?", []interface{}{true}},
		{&stats.OutOfStockProducts, "SELECT COUNT(*) FROM products WHERE is_out_of_stock = ?", []interface{}{true}},
		{&stats.TotalCategories, "SELECT COUNT(*) FROM categories", nil},
		{&stats.TotalOrders, "SELECT COUNT(*) FROM orders", nil},
		{&stats.PendingOrders, "SELECT COUNT(*) FROM orders WHERE status = ?", []interface{}{statusPending}},
		{&stats.CompletedOrders, "SELECT COUNT(*) FROM orders WHERE status = ?", []interface{}{statusCompleted}},
		{&stats.CancelledOrders, "SELECT COUNT(*) FROM orders WHERE status = ?", []interface{}{statusCancelled}},
		{&stats.OrdersToday, "SELECT COUNT(*) FROM orders WHERE created_at >= ?", []interface{}{today}},
		{&stats.TotalUsers, "SELECT COUNT(*) FROM users", nil},
		{&stats.TotalCustomers, "SELECT COUNT(*) FROM users WHERE role = ?", []interface{}{"customer"}},
	}
	for _, c := range counts {
		if err := s.db.Raw(c.query, c.args...).Scan(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
	}

	if err := s.db.Raw("SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = ?", statusCompleted).
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("failed to compute revenue: %w", err)
	}
	if err := s.db.Raw("SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = ? AND created_at >= ?", statusCompleted, thisMonth).
		Scan(&stats.RevenueThisMonth).Error; err != nil {
		return nil, fmt.Errorf("failed to compute monthly revenue: %w", err)
	}
	stats.TotalRevenue = pricing.RoundMoney(stats.TotalRevenue)
	stats.RevenueThisMonth = pricing.RoundMoney(stats.RevenueThisMonth)
	if stats.CompletedOrders > 0 {
		stats.AvgOrderValue = pricing.RoundMoney(stats.TotalRevenue / float64(stats.CompletedOrders))
	}

	var err error
	if stats.RecentOrders, err = s.GetRecentOrders(5); err != nil {
		return nil, err
	}
	if stats.TopProducts, err = s.GetTopProducts(5); err != nil {
		return nil, err
	}
	if stats.DailyRevenue, err = s.GetDailyRevenue(7); err != nil {
		return nil, err
	}

	return stats, nil
}

// GetRecentOrders returns the newest orders
func (s *Service) GetRecentOrders(limit int) ([]RecentOrder, error) {
	var orders []RecentOrder
	err := s.db.Table("orders").
		Select("id, customer_name, total_amount, status, created_at").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Scan(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve recent orders: %w", err)
	}
	return orders, nil
}

// GetTopProducts ranks products by revenue over completed orders, using the
// names frozen on the order lines
func (s *Service) GetTopProducts(limit int) ([]ProductSalesData, error) {
	var rows []ProductSalesData
	err := s.db.Table("order_items").
		Select("order_items.product_name AS product_name, SUM(order_items.quantity) AS quantity, " +
			"SUM(order_items.quantity * order_items.price_at_purchase) AS revenue, COUNT(DISTINCT order_items.order_id) AS order_count").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ?", statusCompleted).
		Group("order_items.product_name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve top products: %w", err)
	}
	for i := range rows {
		rows[i].Revenue = pricing.RoundMoney(rows[i].Revenue)
	}
	return rows, nil
}

// GetDailyRevenue returns completed-order revenue for each of the last days, oldest first
func (s *Service) GetDailyRevenue(days int) ([]TimeSeriesData, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))

	var orders []struct {
		TotalAmount float64
		CreatedAt   time.Time
	}
	if err := s.db.Table("orders").
		Select("total_amount, created_at").
		Where("status = ? AND created_at >= ?", statusCompleted, start).
		Scan(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve daily revenue: %w", err)
	}

	series := make([]TimeSeriesData, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		series[i] = TimeSeriesData{Date: day}
		index[day] = i
	}
	for _, o := range orders {
		if i, ok := index[o.CreatedAt.In(now.Location()).Format("2006-01-02")]; ok {
			series[i].Value += o.TotalAmount
			series[i].Count++
		}
	}
	for i := range series {
		series[i].Value = pricing.RoundMoney(series[i].Value)
	}
	return series, nil
}
