package product

import (
	"bytes"
	"math"
	"testing"

	"github.com/luxfakia/storefront/internal/domain/order"
	"github.com/luxfakia/storefront/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

func newCatalog(t *testing.T) (*gorm.DB, *Service, *CategoryService) {
	db := testutil.NewDB(t, &Category{}, &Product{}, &PricingTier{}, &order.Order{}, &order.OrderItem{})
	return db, NewService(db, nil), NewCategoryService(db, nil)
}

func mustCategory(t *testing.T, cats *CategoryService, name string) *Category {
	t.Helper()
	c, err := cats.Create(&CategoryInput{Name: name})
	require.NoError(t, err)
	return c
}

func TestCreateProduct_WithTiers(t *testing.T) {
	_, svc, cats := newCatalog(t)
	epices := mustCategory(t, cats, "Epices")

	tiers, err := ParseTierRows(
		[]string{"250", "", "1"},
		[]string{"35", "10", "110"},
		[]string{"g", "Kg", "Kg"},
		"Kg",
	)
	require.NoError(t, err)
	require.Len(t, tiers, 2)

	p, err := svc.Create(&ProductInput{
		Name:       "Safran",
		NameAr:     "زعفران",
		Price:      120,
		Unit:       "Kg",
		CategoryID: epices.ID,
		Pricings:   tiers,
	})
	require.NoError(t, err)
	require.Len(t, p.Pricings, 2)
	assert.Equal(t, 0.25, p.Pricings[0].Quantity)
	assert.Equal(t, "g", p.Pricings[0].DisplayUnit)
	assert.Equal(t, 1.0, p.Pricings[1].Quantity)
	assert.Equal(t, "Epices", p.Category.Name)

	assert.Equal(t, 35.0, p.PriceFor(0.25).Total)
	assert.Equal(t, 60.0, p.PriceFor(0.5).Total)
	assert.Equal(t, "زعفران", p.LocalizedName("ar"))
	assert.Equal(t, "Safran", p.LocalizedName("fr"))
}

func TestCreateProduct_Validation(t *testing.T) {
	_, svc, _ := newCatalog(t)

	_, err := svc.Create(&ProductInput{Name: "Orphan", Price: 5, CategoryID: 42})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = svc.Create(&ProductInput{Name: "  ", Price: 5, CategoryID: 1})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = svc.Create(&ProductInput{Name: "Safran", Price: math.NaN(), CategoryID: 1})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestUpdateProduct_ReplacesTiers(t *testing.T) {
	db, svc, cats := newCatalog(t)
	c := mustCategory(t, cats, "Miel")

	p, err := svc.Create(&ProductInput{
		Name: "Miel de thym", Price: 200, Unit: "Kg", CategoryID: c.ID,
		Pricings: []PricingTier{{Quantity: 0.5, Price: 110, DisplayUnit: "Kg"}},
	})
	require.NoError(t, err)

	p, err = svc.Update(p.ID, &ProductInput{
		Name: "Miel de thym", Price: 210, Unit: "Kg", CategoryID: c.ID,
		Pricings: []PricingTier{{Quantity: 1, Price: 190, DisplayUnit: "Kg"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 210.0, p.Price)
	require.Len(t, p.Pricings, 1)
	assert.Equal(t, 1.0, p.Pricings[0].Quantity)

	var count int64
	db.Model(&PricingTier{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteProduct_KeepsOrderHistory(t *testing.T) {
	db, svc, cats := newCatalog(t)
	c := mustCategory(t, cats, "Olives")

	p, err := svc.Create(&ProductInput{
		Name: "Olives noires", Price: 40, Unit: "Kg", CategoryID: c.ID,
		Pricings: []PricingTier{{Quantity: 0.5, Price: 22, DisplayUnit: "Kg"}},
	})
	require.NoError(t, err)

	pid := p.ID
	o := order.Order{
		CustomerName: "Karim", CustomerPhone: "0611", Address: "x", City: "Rabat",
		TotalAmount: 22, Status: order.OrderStatusPending,
		Items: []order.OrderItem{{ProductID: &pid, ProductName: p.Name, Unit: "Kg", Quantity: 0.5, PriceAtPurchase: 44}},
	}
	require.NoError(t, db.Create(&o).Error)

	require.NoError(t, svc.Delete(p.ID))

	_, err = svc.Get(p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	var item order.OrderItem
	require.NoError(t, db.First(&item, o.Items[0].ID).Error)
	assert.Nil(t, item.ProductID)
	assert.Equal(t, "Olives noires", item.ProductName)
	assert.Equal(t, 44.0, item.PriceAtPurchase)

	var tiers int64
	db.Model(&PricingTier{}).Count(&tiers)
	assert.Zero(t, tiers)

	assert.ErrorIs(t, svc.Delete(p.ID), ErrProductNotFound)
}

func TestListProducts_FiltersAndSort(t *testing.T) {
	_, svc, cats := newCatalog(t)
	epices := mustCategory(t, cats, "Epices du monde")
	dattes := mustCategory(t, cats, "Dattes")

	for _, in := range []ProductInput{
		{Name: "Cumin", Price: 60, CategoryID: epices.ID},
		{Name: "Paprika", Price: 45, CategoryID: epices.ID},
		{Name: "Medjool", Price: 90, CategoryID: dattes.ID},
		{Name: "Deglet", Price: 30, CategoryID: dattes.ID, IsHidden: true},
	} {
		in := in
		_, err := svc.Create(&in)
		require.NoError(t, err)
	}

	all, err := svc.List(&ProductListRequest{Sort: SortPriceAsc})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Paprika", all[0].Name)
	assert.Equal(t, "Medjool", all[2].Name)

	admin, err := svc.List(&ProductListRequest{IncludeHidden: true, Sort: SortNameAsc})
	require.NoError(t, err)
	require.Len(t, admin, 4)
	assert.Equal(t, "Cumin", admin[0].Name)

	byName, err := svc.List(&ProductListRequest{Category: "monde"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	byID, err := svc.List(&ProductListRequest{Category: "2"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "Medjool", byID[0].Name)

	search, err := svc.List(&ProductListRequest{Search: "PAP"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "Paprika", search[0].Name)
}

func TestToggles(t *testing.T) {
	_, svc, cats := newCatalog(t)
	c := mustCategory(t, cats, "Thes")

	p, err := svc.Create(&ProductInput{Name: "The vert", Price: 50, CategoryID: c.ID})
	require.NoError(t, err)
	assert.False(t, p.IsOutOfStock)

	p, err = svc.ToggleOutOfStock(p.ID)
	require.NoError(t, err)
	assert.True(t, p.IsOutOfStock)

	p, err = svc.ToggleHidden(p.ID)
	require.NoError(t, err)
	assert.True(t, p.IsHidden)

	p, err = svc.ToggleHidden(p.ID)
	require.NoError(t, err)
	assert.False(t, p.IsHidden)

	_, err = svc.ToggleHidden(404)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestFindByIDs(t *testing.T) {
	_, svc, cats := newCatalog(t)
	c := mustCategory(t, cats, "Amandes")

	p, err := svc.Create(&ProductInput{Name: "Amandes", Price: 80, CategoryID: c.ID})
	require.NoError(t, err)

	found, err := svc.FindByIDs([]uint{p.ID, 999})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "Amandes", found[p.ID].Name)
}

func TestParseTierRows_Invalid(t *testing.T) {
	_, err := ParseTierRows([]string{"abc"}, []string{"10"}, nil, "Kg")
	assert.ErrorIs(t, err, ErrInvalidTier)

	_, err = ParseTierRows([]string{"1"}, []string{"-3"}, nil, "Kg")
	assert.ErrorIs(t, err, ErrInvalidTier)

	for _, raw := range []string{"NaN", "Inf", "-Inf", "+Inf"} {
		_, err = ParseTierRows([]string{raw}, []string{"10"}, nil, "Kg")
		assert.ErrorIs(t, err, ErrInvalidTier, raw)
		_, err = ParseTierRows([]string{"1"}, []string{raw}, nil, "Kg")
		assert.ErrorIs(t, err, ErrInvalidTier, raw)
	}

	tiers, err := ParseTierRows([]string{"0,5"}, []string{"12,50"}, nil, "Kg")
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	assert.Equal(t, 0.5, tiers[0].Quantity)
	assert.Equal(t, 12.5, tiers[0].Price)
	assert.Equal(t, "Kg", tiers[0].DisplayUnit)
}

func TestExportXLSX(t *testing.T) {
	_, svc, cats := newCatalog(t)
	c := mustCategory(t, cats, "Epices")

	_, err := svc.Create(&ProductInput{
		Name: "Safran", Price: 120, Unit: "Kg", CategoryID: c.ID, IsHidden: true,
		Pricings: []PricingTier{{Quantity: 0.25, Price: 35, DisplayUnit: "g"}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(&buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	rows := file.Sheets[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0].Cells[1].Value)
	assert.Equal(t, "Safran", rows[1].Cells[1].Value)
	assert.Equal(t, "Epices", rows[1].Cells[3].Value)
	assert.Equal(t, "250g=35.00", rows[1].Cells[6].Value)
	assert.Equal(t, "yes", rows[1].Cells[7].Value)
}
