package models_test

import (
	"testing"

	"produk/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCategory_IsValid(t *testing.T) {
	assert.True(t, models.Category1.IsValid())
	assert.True(t, models.Category("category3").IsValid())
	assert.False(t, models.Category("category7").IsValid())
	assert.False(t, models.Category("").IsValid())
}

func TestCategoryChoices(t *testing.T) {
	assert.Equal(t, "'category1', 'category2' or 'category3'", models.CategoryChoices())
}

func TestProductUpdate_ChangesOnlySuppliedFields(t *testing.T) {
	name := "zaki"
	update := models.ProductUpdate{Name: &name}

	changes := update.Changes()
	assert.Equal(t, map[string]interface{}{"name": "zaki"}, changes)

	product := models.Product{ID: 4, Name: "phone", Description: "It's a phone", Category: models.Category3, Quantity: 14}
	product.Apply(changes)
	assert.Equal(t, models.Product{ID: 4, Name: "zaki", Description: "It's a phone", Category: models.Category3, Quantity: 14}, product)
}

func TestProductUpdate_EmptyHasNoChanges(t *testing.T) {
	assert.Empty(t, models.ProductUpdate{}.Changes())
}

func TestProductCreate_ToProduct(t *testing.T) {
	name, description, category, quantity := "keyboard", "this is a keyboard", models.Category3, 13
	product := models.ProductCreate{Name: &name, Description: &description, Category: &category, Quantity: &quantity}.ToProduct()

	assert.Zero(t, product.ID)
	assert.Equal(t, "keyboard", product.Name)
	assert.Equal(t, "this is a keyboard", product.Description)
	assert.Equal(t, models.Category3, product.Category)
	assert.Equal(t, 13, product.Quantity)
}

func TestProduct_TableName(t *testing.T) {
	assert.Equal(t, "Product", models.Product{}.TableName())
}
