// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/cart"
	"github.com/luxfakia/storefront/internal/domain/order"
	"github.com/luxfakia/storefront/internal/domain/pricing"
	"github.com/luxfakia/storefront/internal/domain/product"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidCustomer = errors.New("missing customer details")
)

// Service turns a session cart into a persisted order
type Service struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
	logger      *logrus.Logger
}

// NewService creates a new checkout service
func NewService(db *gorm.DB, cfg *config.Config, catalog cart.Catalog, logger *logrus.Logger) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		cartService: cart.NewService(catalog),
		logger:      logger,
	}
}

// CustomerInfo represents the contact fields of the checkout form
type CustomerInfo struct {
	Name    string `form:"name" binding:"required"`
	Phone   string `form:"phone" binding:"required"`
	Email   string `form:"email"`
	Address string `form:"address" binding:"required"`
	City    string `form:"city" binding:"required"`
}

// Normalize trims every field
func (c *CustomerInfo) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)
	c.City = strings.TrimSpace(c.City)
}

// Validate checks the required contact fields
func (c *CustomerInfo) Validate() error {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Phone == "" {
		missing = append(missing, "phone")
	}
	if c.Address == "" {
		missing = append(missing, "address")
	}
	if c.City == "" {
		missing = append(missing, "city")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCustomer, strings.Join(missing, ", "))
	}
	return nil
}

// PlaceOrder materializes the cart held by store into an order. Each line is
// priced once, here, and its effective unit price is frozen on the order item.
// The order and its items are written in one transaction; the cart is cleared
// only after the commit. userID is nil for guest checkout.
func (s *Service) PlaceOrder(ctx context.Context, store cart.Store, userID *uint, info CustomerInfo) (*order.Order, error) {
	info.Normalize()
	if err := info.Validate(); err != nil {
		return nil, err
	}

	items, err := store.LoadCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lines, err := s.cartService.PriceLines(items)
	if err != nil {
		return nil, err
	}
	if skipped := len(items) - len(lines); skipped > 0 && s.logger != nil {
		s.logger.WithField("skipped_lines", skipped).Warn("Checkout skipped cart lines for deleted products")
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	newOrder, orderItems := buildOrder(lines, userID, info)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Omit("Items").Create(&newOrder).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range orderItems {
		orderItems[i].OrderID = newOrder.ID
		if err := tx.Create(&orderItems[i]).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	// Order is committed, a failed clear is only logged
	if err := s.cartService.ClearCart(ctx, store); err != nil && s.logger != nil {
		s.logger.WithError(err).WithField("order_id", newOrder.ID).Warn("Failed to clear cart after checkout")
	}

	newOrder.Items = orderItems
	return &newOrder, nil
}

// Summary prices the cart for the checkout page without writing anything
func (s *Service) Summary(ctx context.Context, store cart.Store) (*cart.CartResponse, error) {
	return s.cartService.GetCart(ctx, store)
}

func buildOrder(lines []cart.CartItemResponse, userID *uint, info CustomerInfo) (order.Order, []order.OrderItem) {
	totals := make([]float64, 0, len(lines))
	items := make([]order.OrderItem, 0, len(lines))

	for _, l := range lines {
		pid := l.ProductID
		totals = append(totals, l.Total)
		items = append(items, order.OrderItem{
			ProductID:       &pid,
			ProductName:     l.Product.Name,
			Unit:            unitOf(l.Product),
			Quantity:        l.Quantity,
			PriceAtPurchase: l.Total / l.Quantity,
		})
	}

	return order.Order{
		UserID:        userID,
		CustomerName:  info.Name,
		CustomerPhone: info.Phone,
		CustomerEmail: info.Email,
		Address:       info.Address,
		City:          info.City,
		TotalAmount:   pricing.SumMoney(totals...),
		Status:        order.OrderStatusPending,
	}, items
}

func unitOf(p *product.Product) string {
	if p.Unit == "" {
		return pricing.UnitPiece
	}
	return p.Unit
}
