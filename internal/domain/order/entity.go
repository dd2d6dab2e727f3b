// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/luxfakia/storefront/internal/domain/pricing"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Order represents a placed order. Only Status changes after creation.
type Order struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"index" json:"user_id"` // Nullable for guest orders

	// Customer contact, copied from the checkout form
	CustomerName  string `gorm:"not null;size:100" json:"customer_name"`
	CustomerPhone string `gorm:"not null;size:20" json:"customer_phone"`
	CustomerEmail string `gorm:"size:120" json:"customer_email"`
	Address       string `gorm:"type:text;not null" json:"address"`
	City          string `gorm:"size:50;not null" json:"city"`

	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	Status      OrderStatus `gorm:"size:20;not null;default:'Pending';index" json:"status"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is a frozen snapshot of one purchased line
type OrderItem struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	OrderID         uint    `gorm:"not null;index" json:"order_id"`
	ProductID       *uint   `gorm:"index" json:"product_id"` // Cleared when the product is deleted
	ProductName     string  `gorm:"not null;size:100" json:"product_name"`
	Unit            string  `gorm:"size:20" json:"unit"`
	Quantity        float64 `gorm:"not null" json:"quantity"`
	PriceAtPurchase float64 `gorm:"not null" json:"price_at_purchase"` // Effective unit price charged
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// LineTotal is what the line cost at purchase time
func (i *OrderItem) LineTotal() float64 {
	return pricing.RoundMoney(i.PriceAtPurchase * i.Quantity)
}

// IsFinal reports whether the order can no longer change status
func (o *Order) IsFinal() bool {
	return o.Status != OrderStatusPending
}

// CanTransitionTo reports whether status may follow the current one
func (o *Order) CanTransitionTo(status OrderStatus) bool {
	if o.Status != OrderStatusPending {
		return false
	}
	return status == OrderStatusCompleted || status == OrderStatusCancelled
}

// ValidStatuses lists every status for filters
func ValidStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled}
}
