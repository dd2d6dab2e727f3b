package order

import (
	"testing"

	"github.com/luxfakia/storefront/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, svc *Service, status OrderStatus, userID *uint) *Order {
	t.Helper()
	o := Order{
		UserID:        userID,
		CustomerName:  "Salma",
		CustomerPhone: "0600000000",
		Address:       "12 rue des Orangers",
		City:          "Fes",
		TotalAmount:   42.5,
		Status:        status,
		Items: []OrderItem{
			{ProductName: "Dattes Medjool", Unit: "Kg", Quantity: 0.5, PriceAtPurchase: 85},
		},
	}
	require.NoError(t, svc.db.Create(&o).Error)
	return &o
}

func TestUpdateOrderStatus(t *testing.T) {
	db := testutil.NewDB(t, &Order{}, &OrderItem{})
	svc := NewService(db, nil)

	pending := seedOrder(t, svc, OrderStatusPending, nil)
	updated, err := svc.UpdateOrderStatus(pending.ID, OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCompleted, updated.Status)

	_, err = svc.UpdateOrderStatus(pending.ID, OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateOrderStatus(pending.ID, OrderStatus("Shipped"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateOrderStatus(999, OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrders_StatusFilter(t *testing.T) {
	db := testutil.NewDB(t, &Order{}, &OrderItem{})
	svc := NewService(db, nil)

	seedOrder(t, svc, OrderStatusPending, nil)
	seedOrder(t, svc, OrderStatusPending, nil)
	seedOrder(t, svc, OrderStatusCancelled, nil)

	res, err := svc.GetOrders(&OrderListRequest{Status: string(OrderStatusPending)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Pagination.Total)
	require.Len(t, res.Orders, 2)
	assert.Len(t, res.Orders[0].Items, 1)

	res, err = svc.GetOrders(&OrderListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Pagination.Total)
	assert.Equal(t, 1, res.Pagination.Page)

	_, err = svc.GetOrders(&OrderListRequest{Status: "Lost"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetUserOrders(t *testing.T) {
	db := testutil.NewDB(t, &Order{}, &OrderItem{})
	svc := NewService(db, nil)

	uid := uint(3)
	seedOrder(t, svc, OrderStatusPending, &uid)
	seedOrder(t, svc, OrderStatusPending, nil)

	orders, err := svc.GetUserOrders(uid)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, uid, *orders[0].UserID)
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{Quantity: 3, PriceAtPurchase: 10.0 / 3}
	assert.Equal(t, 10.0, item.LineTotal())
}
