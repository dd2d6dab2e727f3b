// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"

	"github.com/luxfakia/storefront/internal/config"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=25"`
	Status string `form:"status"`
}

// OrderResponse represents a page of orders
type OrderResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// GetOrders retrieves orders newest first, optionally filtered by status
func (s *Service) GetOrders(req *OrderListRequest) (*OrderResponse, error) {
	var orders []Order
	var total int64

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 25
	}

	query := s.db.Model(&Order{})

	if req.Status != "" {
		if !isValidStatus(OrderStatus(req.Status)) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
		}
		query = query.Where("status = ?", req.Status)
	}

	// Count total records
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Preload("Items", preloadItems).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(req.Limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &OrderResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// GetOrder retrieves a single order by ID with its items
func (s *Service) GetOrder(id uint) (*Order, error) {
	var order Order
	result := s.db.
		Preload("Items", preloadItems).
		Where("id = ?", id).
		First(&order)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &order, nil
}

// GetUserOrders retrieves a customer's order history, newest first
func (s *Service) GetUserOrders(userID uint) ([]Order, error) {
	var orders []Order
	if err := s.db.
		Preload("Items", preloadItems).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve user orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus moves a pending order to Completed or Cancelled
func (s *Service) UpdateOrderStatus(orderID uint, status OrderStatus) (*Order, error) {
	if !isValidStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if !order.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w from %s to %s", ErrInvalidTransition, order.Status, status)
	}

	// Guard against a concurrent transition
	result := s.db.Model(&Order{}).
		Where("id = ? AND status = ?", orderID, OrderStatusPending).
		Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: order %d is no longer pending", ErrInvalidTransition, orderID)
	}

	order.Status = status
	return order, nil
}

func isValidStatus(status OrderStatus) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
