// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/checkout"
	"github.com/luxfakia/storefront/internal/domain/order"
	"github.com/luxfakia/storefront/internal/domain/product"
	"github.com/luxfakia/storefront/internal/interfaces/http/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CheckoutHandler handles checkout and order confirmation
type CheckoutHandler struct {
	base
	checkoutService *checkout.Service
	orderService    *order.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, cfg *config.Config, renderer Renderer, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		base:            newBase(cfg, renderer, logger),
		checkoutService: checkout.NewService(db, cfg, product.NewService(db, cfg), logger),
		orderService:    order.NewService(db, cfg),
	}
}

// CheckoutForm handles GET /checkout
func (h *CheckoutHandler) CheckoutForm(c *gin.Context) {
	info := checkout.CustomerInfo{}
	if u, ok := middleware.GetCurrentUser(c); ok {
		info = checkout.CustomerInfo{
			Name:    u.GetDisplayName(),
			Phone:   u.Phone,
			Email:   u.Email,
			Address: u.Address,
			City:    u.City,
		}
	}
	h.showForm(c, http.StatusOK, info, "")
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var info checkout.CustomerInfo
	if err := c.ShouldBind(&info); err != nil {
		h.showForm(c, http.StatusBadRequest, info, "checkout_missing")
		return
	}

	s := middleware.GetSession(c)
	placed, err := h.checkoutService.PlaceOrder(c.Request.Context(), s, currentUserID(c), info)
	switch {
	case err == nil:
	case errors.Is(err, checkout.ErrEmptyCart):
		h.redirect(c, "/cart", "warning", "cart_empty")
		return
	case errors.Is(err, checkout.ErrInvalidCustomer):
		h.showForm(c, http.StatusBadRequest, info, "checkout_missing")
		return
	default:
		h.serverError(c, err, "failed to place order")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"order_id": placed.ID,
		"total":    placed.TotalAmount,
		"items":    len(placed.Items),
	}).Info("order placed")

	if err := s.AddOrder(c.Request.Context(), placed.ID); err != nil {
		h.logger.WithError(err).WithField("order_id", placed.ID).Warn("failed to remember order in session")
	}
	h.redirect(c, fmt.Sprintf("/order-confirmation/%d", placed.ID), "success", "order_placed", placed.ID)
}

// Confirmation handles GET /order-confirmation/:id. Only the account that
// placed the order, or the session it was placed from, can see it.
func (h *CheckoutHandler) Confirmation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	o, err := h.orderService.GetOrder(id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err, "failed to load order")
		return
	}

	if !canViewOrder(c, o) {
		h.notFound(c)
		return
	}

	h.render(c, http.StatusOK, "order_confirmation", gin.H{"order": o})
}

func (h *CheckoutHandler) showForm(c *gin.Context, status int, info checkout.CustomerInfo, errKey string) {
	summary, err := h.checkoutService.Summary(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		h.serverError(c, err, "failed to price cart")
		return
	}
	if summary.IsEmpty() {
		h.redirect(c, "/cart", "warning", "cart_empty")
		return
	}

	data := gin.H{
		"items":    cartLines(summary.Items, middleware.GetLang(c)),
		"totals":   summary.Totals,
		"customer": info,
	}
	if errKey != "" {
		data["error"] = message(c, errKey)
	}
	h.render(c, status, "checkout", data)
}

func canViewOrder(c *gin.Context, o *order.Order) bool {
	if uid, ok := middleware.GetUserIDFromContext(c); ok && o.UserID != nil && *o.UserID == uid {
		return true
	}
	s := middleware.GetSession(c)
	return s != nil && s.HasOrder(o.ID)
}
