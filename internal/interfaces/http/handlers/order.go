// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/order"
	"github.com/luxfakia/storefront/internal/interfaces/http/middleware"
	"github.com/luxfakia/storefront/internal/pkg/pdf"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OrderHandler handles order management in the admin console
type OrderHandler struct {
	base
	orderService *order.Service
	pdfService   *pdf.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, cfg *config.Config, renderer Renderer, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		base:         newBase(cfg, renderer, logger),
		orderService: order.NewService(db, cfg),
		pdfService:   pdf.NewService(cfg),
	}
}

// ListOrders handles GET /admin/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req order.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		req = order.OrderListRequest{Page: 1, Limit: 25}
	}

	page, err := h.orderService.GetOrders(&req)
	if errors.Is(err, order.ErrInvalidStatus) {
		req.Status = ""
		page, err = h.orderService.GetOrders(&req)
	}
	if err != nil {
		h.serverError(c, err, "failed to list orders")
		return
	}

	h.render(c, http.StatusOK, "admin_orders", gin.H{
		"orders":         page.Orders,
		"pagination":     page.Pagination,
		"current_status": req.Status,
		"statuses":       order.ValidStatuses(),
	})
}

// GetOrder handles GET /admin/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, ok := h.loadOrder(c)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, "admin_order_detail", gin.H{
		"order":    o,
		"statuses": order.ValidStatuses(),
	})
}

// UpdateOrderStatus handles POST /admin/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	target := fmt.Sprintf("/admin/orders/%d", id)
	status := order.OrderStatus(c.PostForm("status"))

	_, err := h.orderService.UpdateOrderStatus(id, status)
	switch {
	case err == nil:
		uid, _ := middleware.GetUserIDFromContext(c)
		h.logger.WithFields(logrus.Fields{"order_id": id, "status": status, "user_id": uid}).Info("order status changed")
		h.redirect(c, target, "success", "order_status_saved")
	case errors.Is(err, order.ErrOrderNotFound):
		h.notFound(c)
	case errors.Is(err, order.ErrInvalidStatus), errors.Is(err, order.ErrInvalidTransition):
		h.redirect(c, target, "danger", "invalid_transition")
	default:
		h.serverError(c, err, "failed to update order status")
	}
}

func (h *OrderHandler) loadOrder(c *gin.Context) (*order.Order, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return nil, false
	}
	o, err := h.orderService.GetOrder(id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			h.notFound(c)
			return nil, false
		}
		h.serverError(c, err, "failed to load order")
		return nil, false
	}
	return o, true
}
