package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCategory_RefusedWhileProductsExist(t *testing.T) {
	_, svc, cats := newCatalog(t)
	used := mustCategory(t, cats, "Fruits secs")
	empty := mustCategory(t, cats, "Vide")

	p, err := svc.Create(&ProductInput{Name: "Noix", Price: 70, CategoryID: used.ID})
	require.NoError(t, err)

	err = cats.Delete(used.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)
	_, err = cats.Get(used.ID)
	assert.NoError(t, err)

	require.NoError(t, cats.Delete(empty.ID))
	_, err = cats.Get(empty.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	// once emptied the category can go
	require.NoError(t, svc.Delete(p.ID))
	assert.NoError(t, cats.Delete(used.ID))

	assert.ErrorIs(t, cats.Delete(used.ID), ErrCategoryNotFound)
}

func TestCategoryNames_CaseInsensitiveUnique(t *testing.T) {
	_, _, cats := newCatalog(t)
	miel := mustCategory(t, cats, "Miel")
	mustCategory(t, cats, "Huiles")

	_, err := cats.Create(&CategoryInput{Name: "miel"})
	assert.ErrorIs(t, err, ErrDuplicateCategory)

	_, err = cats.Update(miel.ID, &CategoryInput{Name: "HUILES"})
	assert.ErrorIs(t, err, ErrDuplicateCategory)

	// renaming to itself with a different case is fine
	renamed, err := cats.Update(miel.ID, &CategoryInput{Name: "MIEL"})
	require.NoError(t, err)
	assert.Equal(t, "MIEL", renamed.Name)

	_, err = cats.Create(&CategoryInput{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestListWithProductCount(t *testing.T) {
	_, svc, cats := newCatalog(t)
	a := mustCategory(t, cats, "A")
	mustCategory(t, cats, "B")

	for _, name := range []string{"x", "y"} {
		_, err := svc.Create(&ProductInput{Name: name, Price: 1, CategoryID: a.ID})
		require.NoError(t, err)
	}

	list, err := cats.ListWithProductCount()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ProductCount)
	assert.Equal(t, int64(0), list[1].ProductCount)
}
