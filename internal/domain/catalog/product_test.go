package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name          string
		nameMongolian string
		nameEnglish   string
		productCode   string
		barcode       string
		wantErr       bool
	}{
		{
			name:          "valid product",
			nameMongolian: "Сүү 1л",
			nameEnglish:   "Milk 1L",
			productCode:   "MLK-001",
			barcode:       "6291041500213",
		},
		{
			name:          "missing mongolian name",
			nameMongolian: "",
			wantErr:       true,
		},
		{
			name:          "whitespace-only name",
			nameMongolian: "   ",
			wantErr:       true,
		},
		{
			name:          "name too long",
			nameMongolian: strings.Repeat("a", 201),
			wantErr:       true,
		},
		{
			name:          "code and barcode optional",
			nameMongolian: "Талх",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := NewProduct(tt.nameMongolian, tt.nameEnglish, tt.productCode, tt.barcode)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, product)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.nameMongolian, product.NameMongolian)
			assert.Equal(t, tt.nameEnglish, product.NameEnglish)
			assert.True(t, product.IsActive)
			assert.True(t, product.PriceRetail.IsZero())
			assert.NotEqual(t, product.ID.String(), "00000000-0000-0000-0000-000000000000")
		})
	}
}

func TestProduct_SetRetailPrice(t *testing.T) {
	product, err := NewProduct("Сүү 1л", "Milk 1L", "MLK-001", "")
	require.NoError(t, err)

	t.Run("valid price", func(t *testing.T) {
		versionBefore := product.GetVersion()
		err := product.SetRetailPrice(decimal.NewFromFloat(4500))
		assert.NoError(t, err)
		assert.True(t, product.PriceRetail.Equal(decimal.NewFromInt(4500)))
		assert.Equal(t, versionBefore+1, product.GetVersion())
	})

	t.Run("negative price rejected", func(t *testing.T) {
		err := product.SetRetailPrice(decimal.NewFromInt(-1))
		assert.Error(t, err)
		assert.True(t, product.PriceRetail.Equal(decimal.NewFromInt(4500)))
	})
}

func TestProduct_Rename(t *testing.T) {
	product, err := NewProduct("Сүү 1л", "", "", "")
	require.NoError(t, err)

	require.NoError(t, product.Rename("Сүү 2л", "Milk 2L"))
	assert.Equal(t, "Сүү 2л", product.NameMongolian)
	assert.Equal(t, "Milk 2L", product.NameEnglish)

	assert.Error(t, product.Rename("", "Milk"))
	assert.Equal(t, "Сүү 2л", product.NameMongolian)
}

func TestProduct_AssignCategory(t *testing.T) {
	product, err := NewProduct("Талх", "", "BRD-01", "")
	require.NoError(t, err)
	require.Nil(t, product.CategoryID)

	product.AssignCategory(42)
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, int64(42), *product.CategoryID)
}

func TestProduct_SetActive(t *testing.T) {
	product, err := NewProduct("Талх", "", "", "")
	require.NoError(t, err)

	product.SetActive(false)
	assert.False(t, product.IsActive)
	product.SetActive(true)
	assert.True(t, product.IsActive)
}
