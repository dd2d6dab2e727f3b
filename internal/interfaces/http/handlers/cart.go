// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/cart"
	"github.com/luxfakia/storefront/internal/domain/product"
	"github.com/luxfakia/storefront/internal/interfaces/http/middleware"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	base
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, cfg *config.Config, renderer Renderer, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		base:        newBase(cfg, renderer, logger),
		cartService: cart.NewService(product.NewService(db, cfg)),
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	cartResponse, err := h.cartService.GetCart(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		h.serverError(c, err, "failed to retrieve cart")
		return
	}

	h.render(c, http.StatusOK, "cart", gin.H{
		"items":  cartLines(cartResponse.Items, middleware.GetLang(c)),
		"totals": cartResponse.Totals,
		"empty":  cartResponse.IsEmpty(),
	})
}

// AddToCart handles GET|POST /cart/add/:id. quantity is optional and
// defaults to 1.
func (h *CartHandler) AddToCart(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	back := backOr(c, "/shop")

	raw := c.PostForm("quantity")
	if raw == "" {
		raw = c.Query("quantity")
	}
	quantity, ok := parseQuantity(raw, 1)
	if !ok {
		h.cartReply(c, back, "warning", "invalid_quantity")
		return
	}

	s := middleware.GetSession(c)
	p, err := h.cartService.AddToCart(c.Request.Context(), s, id, quantity)
	switch {
	case err == nil:
		h.cartReply(c, back, "success", "cart_added")
	case errors.Is(err, cart.ErrOutOfStock):
		h.cartReply(c, back, "warning", "out_of_stock", p.LocalizedName(middleware.GetLang(c)))
	case errors.Is(err, cart.ErrInvalidQuantity):
		h.cartReply(c, back, "warning", "invalid_quantity")
	case errors.Is(err, product.ErrProductNotFound):
		h.cartReply(c, back, "warning", "product_not_found")
	default:
		h.serverError(c, err, "failed to add to cart")
	}
}

// UpdateCartItem handles POST /cart/update/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	quantity, ok := parseQuantity(c.PostForm("quantity"), 1)
	if !ok {
		h.cartReply(c, "/cart", "warning", "invalid_quantity")
		return
	}

	err := h.cartService.UpdateCartItem(c.Request.Context(), middleware.GetSession(c), id, quantity)
	switch {
	case err == nil && quantity <= 0:
		h.cartReply(c, "/cart", "info", "cart_removed")
	case err == nil:
		h.cartReply(c, "/cart", "success", "cart_updated")
	case errors.Is(err, cart.ErrInvalidQuantity):
		h.cartReply(c, "/cart", "warning", "invalid_quantity")
	default:
		h.serverError(c, err, "failed to update cart")
	}
}

// RemoveFromCart handles GET /cart/remove/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.notFound(c)
		return
	}

	if err := h.cartService.RemoveFromCart(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		h.serverError(c, err, "failed to remove from cart")
		return
	}
	h.cartReply(c, "/cart", "info", "cart_removed")
}

// cartReply answers XHR callers with {status, message, cart_count} and
// everyone else with a flash and a redirect
func (h *CartHandler) cartReply(c *gin.Context, target, category, key string, args ...interface{}) {
	if !middleware.IsXHR(c) {
		h.redirect(c, target, category, key, args...)
		return
	}

	count, err := h.cartService.GetCartItemCount(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		h.serverError(c, err, "failed to count cart items")
		return
	}
	status := "success"
	if category == "warning" || category == "danger" {
		status = "error"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     status,
		"message":    message(c, key, args...),
		"cart_count": count,
	})
}

func cartLines(items []cart.CartItemResponse, lang string) []gin.H {
	lines := make([]gin.H, 0, len(items))
	for _, item := range items {
		lines = append(lines, gin.H{
			"product_id": item.ProductID,
			"name":       item.Product.LocalizedName(lang),
			"image_url":  item.Product.ImageURL,
			"unit":       item.Product.Unit,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
			"total":      item.Total,
		})
	}
	return lines
}
