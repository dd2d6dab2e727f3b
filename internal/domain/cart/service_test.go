package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/luxfakia/storefront/internal/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore struct {
	items   map[uint]float64
	saveErr error
}

func (m *mapStore) LoadCart(context.Context) (map[uint]float64, error) {
	out := make(map[uint]float64, len(m.items))
	for k, v := range m.items {
		out[k] = v
	}
	return out, nil
}

func (m *mapStore) SaveCart(_ context.Context, items map[uint]float64) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items = items
	return nil
}

func (m *mapStore) ClearCart(context.Context) error {
	m.items = nil
	return nil
}

type fakeCatalog map[uint]*product.Product

func (f fakeCatalog) Get(id uint) (*product.Product, error) {
	p, ok := f[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func (f fakeCatalog) FindByIDs(ids []uint) (map[uint]*product.Product, error) {
	out := make(map[uint]*product.Product)
	for _, id := range ids {
		if p, ok := f[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func catalog() fakeCatalog {
	return fakeCatalog{
		1: {ID: 1, Name: "Safran", Price: 100, Unit: "Kg", Pricings: []product.PricingTier{{Quantity: 0.25, Price: 25}}},
		2: {ID: 2, Name: "Harissa", Price: 15, Unit: "pcs"},
		3: {ID: 3, Name: "Argan", Price: 300, Unit: "pcs", IsOutOfStock: true},
		4: {ID: 4, Name: "Ras el hanout", Price: 40, Unit: "Kg", IsHidden: true},
	}
}

func TestAddToCart_IsAdditive(t *testing.T) {
	ctx := context.Background()
	svc := NewService(catalog())
	store := &mapStore{}

	_, err := svc.AddToCart(ctx, store, 2, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, store, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, store.items[2])

	require.NoError(t, svc.UpdateCartItem(ctx, store, 2, 2))
	assert.Equal(t, 2.0, store.items[2])

	require.NoError(t, svc.UpdateCartItem(ctx, store, 2, 0))
	_, ok := store.items[2]
	assert.False(t, ok)
}

func TestAddToCart_Refusals(t *testing.T) {
	ctx := context.Background()
	svc := NewService(catalog())
	store := &mapStore{items: map[uint]float64{2: 1}}

	p, err := svc.AddToCart(ctx, store, 3, 1)
	assert.ErrorIs(t, err, ErrOutOfStock)
	require.NotNil(t, p)
	assert.Equal(t, "Argan", p.Name)
	assert.NotContains(t, store.items, uint(3))

	_, err = svc.AddToCart(ctx, store, 99, 1)
	assert.ErrorIs(t, err, product.ErrProductNotFound)

	_, err = svc.AddToCart(ctx, store, 4, 1)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
	assert.NotContains(t, store.items, uint(4))

	_, err = svc.AddToCart(ctx, store, 2, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, map[uint]float64{2: 1}, store.items)
}

func TestUpdateCartItem_NegativeRemoves(t *testing.T) {
	ctx := context.Background()
	svc := NewService(catalog())
	store := &mapStore{items: map[uint]float64{1: 0.25, 2: 4}}

	require.NoError(t, svc.UpdateCartItem(ctx, store, 1, -3))
	assert.Equal(t, map[uint]float64{2: 4}, store.items)

	// removing an absent line leaves the cart alone
	require.NoError(t, svc.RemoveFromCart(ctx, store, 1))
	assert.Equal(t, map[uint]float64{2: 4}, store.items)
}

func TestGetCart_PricesLinesAndSkipsMissing(t *testing.T) {
	ctx := context.Background()
	svc := NewService(catalog())
	store := &mapStore{items: map[uint]float64{1: 0.25, 2: 3, 42: 1}}

	cart, err := svc.GetCart(ctx, store)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	assert.Equal(t, uint(1), cart.Items[0].ProductID)
	assert.Equal(t, 25.0, cart.Items[0].Total)
	assert.Equal(t, 100.0, cart.Items[0].UnitPrice)
	assert.Equal(t, 45.0, cart.Items[1].Total)

	assert.Equal(t, 70.0, cart.Totals.TotalAmount)
	assert.Equal(t, 2, cart.Totals.ItemCount)
	assert.Equal(t, 3.25, cart.Totals.TotalQuantity)

	count, err := svc.GetCartItemCount(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestAddToCart_SaveFailure(t *testing.T) {
	svc := NewService(catalog())
	store := &mapStore{saveErr: errors.New("redis down")}

	_, err := svc.AddToCart(context.Background(), store, 2, 1)
	assert.Error(t, err)
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	svc := NewService(catalog())
	store := &mapStore{items: map[uint]float64{2: 1}}

	require.NoError(t, svc.ClearCart(ctx, store))
	cart, err := svc.GetCart(ctx, store)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}
