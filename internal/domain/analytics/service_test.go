package analytics

import (
	"testing"
	"time"

	"github.com/luxfakia/storefront/internal/domain/order"
	"github.com/luxfakia/storefront/internal/domain/product"
	"github.com/luxfakia/storefront/internal/domain/user"
	"github.com/luxfakia/storefront/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats(t *testing.T) {
	db := testutil.NewDB(t,
		&product.Category{}, &product.Product{}, &product.PricingTier{},
		&order.Order{}, &order.OrderItem{}, &user.User{},
	)

	cat := product.Category{Name: "Dattes"}
	require.NoError(t, db.Create(&cat).Error)
	require.NoError(t, db.Create(&[]product.Product{
		{Name: "Medjool", Price: 120, Unit: "Kg", CategoryID: cat.ID},
		{Name: "Deglet Nour", Price: 60, Unit: "Kg", CategoryID: cat.ID, IsHidden: true},
		{Name: "Boite cadeau", Price: 250, Unit: "pcs", CategoryID: cat.ID, IsOutOfStock: true},
	}).Error)

	require.NoError(t, db.Create(&[]user.User{
		{Username: "root", PasswordHash: "x", Role: "admin"},
		{Username: "amina", PasswordHash: "x", Role: "customer"},
		{Username: "karim", PasswordHash: "x", Role: "customer"},
	}).Error)

	newOrder := func(status order.OrderStatus, items ...order.OrderItem) {
		o := order.Order{CustomerName: "Client", CustomerPhone: "0600", Address: "Rue 1", City: "Fes", Status: status, Items: items}
		for _, it := range items {
			o.TotalAmount += it.Quantity * it.PriceAtPurchase
		}
		require.NoError(t, db.Create(&o).Error)
	}
	newOrder(order.OrderStatusCompleted,
		order.OrderItem{ProductName: "Medjool", Unit: "Kg", Quantity: 0.5, PriceAtPurchase: 120},
		order.OrderItem{ProductName: "Boite cadeau", Unit: "pcs", Quantity: 1, PriceAtPurchase: 250},
	)
	newOrder(order.OrderStatusCompleted, order.OrderItem{ProductName: "Medjool", Unit: "Kg", Quantity: 1, PriceAtPurchase: 110})
	newOrder(order.OrderStatusPending, order.OrderItem{ProductName: "Medjool", Unit: "Kg", Quantity: 3, PriceAtPurchase: 100})
	newOrder(order.OrderStatusCancelled, order.OrderItem{ProductName: "Boite cadeau", Unit: "pcs", Quantity: 9, PriceAtPurchase: 250})

	stats, err := NewService(db, nil).GetDashboardStats()
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalProducts)
	assert.EqualValues(t, 1, stats.HiddenProducts)
	assert.EqualValues(t, 1, stats.OutOfStockProducts)
	assert.EqualValues(t, 1, stats.TotalCategories)
	assert.EqualValues(t, 4, stats.TotalOrders)
	assert.EqualValues(t, 1, stats.PendingOrders)
	assert.EqualValues(t, 2, stats.CompletedOrders)
	assert.EqualValues(t, 1, stats.CancelledOrders)
	assert.EqualValues(t, 3, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.TotalCustomers)

	// 60 + 250 + 110, cancelled and pending excluded
	assert.Equal(t, 420.0, stats.TotalRevenue)
	assert.Equal(t, 210.0, stats.AvgOrderValue)

	require.Len(t, stats.RecentOrders, 4)
	assert.Equal(t, string(order.OrderStatusCancelled), stats.RecentOrders[0].Status)

	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, "Boite cadeau", stats.TopProducts[0].ProductName)
	assert.Equal(t, 250.0, stats.TopProducts[0].Revenue)
	assert.Equal(t, "Medjool", stats.TopProducts[1].ProductName)
	assert.Equal(t, 1.5, stats.TopProducts[1].Quantity)
	assert.Equal(t, 170.0, stats.TopProducts[1].Revenue)
	assert.EqualValues(t, 2, stats.TopProducts[1].OrderCount)

	require.Len(t, stats.DailyRevenue, 7)
	last := stats.DailyRevenue[6]
	assert.Equal(t, time.Now().Format("2006-01-02"), last.Date)
	assert.Equal(t, 420.0, last.Value)
	assert.EqualValues(t, 2, last.Count)
}
