// internal/domain/cart/entity.go
package cart

import (
	"context"

	"github.com/luxfakia/storefront/internal/domain/product"
)

// Store is the session-scoped storage behind a cart: product id -> quantity
// in the product's canonical unit.
type Store interface {
	LoadCart(ctx context.Context) (map[uint]float64, error)
	SaveCart(ctx context.Context, items map[uint]float64) error
	ClearCart(ctx context.Context) error
}

// CartItemResponse represents a cart line with resolved prices
type CartItemResponse struct {
	ProductID uint             `json:"product_id"`
	Quantity  float64          `json:"quantity"`
	UnitPrice float64          `json:"unit_price"`
	Total     float64          `json:"total"`
	Product   *product.Product `json:"product,omitempty"`
}

// CartTotals represents calculated cart totals
type CartTotals struct {
	ItemCount     int     `json:"item_count"`     // Number of lines
	TotalQuantity float64 `json:"total_quantity"` // Sum of all quantities
	TotalAmount   float64 `json:"total_amount"`
}

// CartResponse represents a shopping cart with items and summary
type CartResponse struct {
	Items  []CartItemResponse `json:"items"`
	Totals CartTotals         `json:"totals"`
}

// IsEmpty reports whether the cart has no priced lines
func (c *CartResponse) IsEmpty() bool {
	return len(c.Items) == 0
}
