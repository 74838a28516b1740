package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCataloguesAreLoaded(t *testing.T) {
	require.NoError(t, Initialize())

	assert.True(t, IsSupported("en"))
	assert.True(t, IsSupported("id"))
	assert.False(t, IsSupported("fr"))
	assert.ElementsMatch(t, []string{"en", "id"}, GetSupportedLanguages())
}

func TestTranslateFallsBackToDefaultThenKey(t *testing.T) {
	assert.Equal(t, "Product not found", T("en", KeyProductNotFound))
	assert.Equal(t, "Produk tidak ditemukan", T("id", KeyProductNotFound))
	assert.Equal(t, "Product not found", T("fr", KeyProductNotFound))
	assert.Equal(t, "missing.key", T("id", "missing.key"))
}

func TestTranslateFormatsArguments(t *testing.T) {
	assert.Equal(t, "Product(s) not found: a, b", T("en", KeyOrderProductsMissing, "a, b"))

	_, ok := Lookup("en", "missing.key")
	assert.False(t, ok)
}

func TestCataloguesShareKeys(t *testing.T) {
	require.NoError(t, Initialize())

	en := instance.translations["en"]
	id := instance.translations["id"]
	for key := range en {
		_, ok := id[key]
		assert.True(t, ok, "id catalogue is missing %s", key)
	}
	assert.Len(t, id, len(en))
}
