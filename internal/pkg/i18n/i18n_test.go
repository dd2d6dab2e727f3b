package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ar", Normalize("ar"))
	assert.Equal(t, "fr", Normalize("fr"))
	assert.Equal(t, "fr", Normalize("en"))
	assert.Equal(t, "fr", Normalize(""))
	assert.False(t, Supported("AR"))
}

func TestFromAcceptLanguage(t *testing.T) {
	assert.Equal(t, "ar", FromAcceptLanguage("ar-MA,ar;q=0.9,fr;q=0.8"))
	assert.Equal(t, "fr", FromAcceptLanguage("fr-FR,fr;q=0.9"))
	assert.Equal(t, "fr", FromAcceptLanguage(""))
	assert.Equal(t, "fr", FromAcceptLanguage("ja"))
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, "Panier", T("fr", "cart"))
	assert.Equal(t, "السلة", T("ar", "cart"))
	assert.Equal(t, "Panier", T("en", "cart"))
	assert.Equal(t, "no_such_key", T("ar", "no_such_key"))
	assert.Equal(t, "Commande #12 enregistrée, merci !", Tf("fr", "order_placed", 12))
	assert.Equal(t, "rtl", Dir("ar"))
	assert.Equal(t, "ltr", Dir("fr"))
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range catalog[French] {
		_, ok := catalog[Arabic][key]
		assert.True(t, ok, "missing ar translation for %s", key)
	}
	assert.Len(t, Messages("ar"), len(catalog[French]))
}
