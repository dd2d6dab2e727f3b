// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/luxfakia/storefront/internal/domain/pricing"
	"github.com/luxfakia/storefront/internal/domain/product"
)

var (
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrInvalidQuantity = errors.New("quantity must be a positive number")
)

// Catalog is the product lookup the cart needs
type Catalog interface {
	Get(id uint) (*product.Product, error)
	FindByIDs(ids []uint) (map[uint]*product.Product, error)
}

// Service handles cart business logic
type Service struct {
	catalog Catalog
}

// NewService creates a new cart service
func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// GetCart prices every line of the cart. Lines whose product no longer exists
// are left out of the response and the totals.
func (s *Service) GetCart(ctx context.Context, store Store) (*CartResponse, error) {
	items, err := store.LoadCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	lines, err := s.PriceLines(items)
	if err != nil {
		return nil, err
	}

	return &CartResponse{
		Items:  lines,
		Totals: calculateTotals(lines),
	}, nil
}

// PriceLines resolves each product id -> quantity pair through the pricing
// resolver, skipping products that no longer exist. Lines are sorted by product id.
func (s *Service) PriceLines(items map[uint]float64) ([]CartItemResponse, error) {
	ids := make([]uint, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	products, err := s.catalog.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart products: %w", err)
	}

	lines := make([]CartItemResponse, 0, len(ids))
	for _, id := range ids {
		p, ok := products[id]
		if !ok {
			continue
		}
		qty := items[id]
		line := p.PriceFor(qty)
		lines = append(lines, CartItemResponse{
			ProductID: id,
			Quantity:  qty,
			UnitPrice: line.UnitPrice,
			Total:     line.Total,
			Product:   p,
		})
	}
	return lines, nil
}

// AddToCart adds quantity on top of whatever the cart already holds for the product
func (s *Service) AddToCart(ctx context.Context, store Store, productID uint, quantity float64) (*product.Product, error) {
	if !validQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}

	p, err := s.catalog.Get(productID)
	if err != nil {
		return nil, err
	}
	// hidden products are invisible to the storefront
	if p.IsHidden {
		return nil, product.ErrProductNotFound
	}
	if p.IsOutOfStock {
		return p, ErrOutOfStock
	}

	items, err := store.LoadCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if items == nil {
		items = make(map[uint]float64)
	}
	items[productID] += quantity

	if err := store.SaveCart(ctx, items); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return p, nil
}

// UpdateCartItem sets the quantity of a line. Zero or less removes the line.
func (s *Service) UpdateCartItem(ctx context.Context, store Store, productID uint, quantity float64) error {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return ErrInvalidQuantity
	}
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, store, productID)
	}

	items, err := store.LoadCart(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	if items == nil {
		items = make(map[uint]float64)
	}
	items[productID] = quantity

	if err := store.SaveCart(ctx, items); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// RemoveFromCart drops a line; removing a missing line is not an error
func (s *Service) RemoveFromCart(ctx context.Context, store Store, productID uint) error {
	items, err := store.LoadCart(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	if _, ok := items[productID]; !ok {
		return nil
	}
	delete(items, productID)

	if err := store.SaveCart(ctx, items); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// ClearCart empties the cart
func (s *Service) ClearCart(ctx context.Context, store Store) error {
	if err := store.ClearCart(ctx); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// GetCartItemCount returns the number of lines, as shown on the cart badge
func (s *Service) GetCartItemCount(ctx context.Context, store Store) (int, error) {
	items, err := store.LoadCart(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load cart: %w", err)
	}
	return len(items), nil
}

func calculateTotals(lines []CartItemResponse) CartTotals {
	totals := CartTotals{ItemCount: len(lines)}
	amounts := make([]float64, 0, len(lines))
	for _, l := range lines {
		totals.TotalQuantity += l.Quantity
		amounts = append(amounts, l.Total)
	}
	totals.TotalAmount = pricing.SumMoney(amounts...)
	return totals
}

func validQuantity(q float64) bool {
	return q > 0 && !math.IsInf(q, 0) && !math.IsNaN(q)
}
