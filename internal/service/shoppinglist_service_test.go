package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/foodgram-backend/internal/model"
	"github.com/d60-Lab/foodgram-backend/internal/repository"
)

func TestShoppingListAggregation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	author := env.seedUser(t, "alice")
	buyer := env.seedUser(t, "bob")
	tag := env.seedTag(t, "breakfast")
	eggs := env.seedIngredient(t, "eggs", "pcs")
	flour := env.seedIngredient(t, "flour", "g")
	sugar := env.seedIngredient(t, "sugar", "g")

	pancakes, err := env.recipes.Create(ctx, author.ID,
		validRecipeInput(amounts([2]uint{eggs.ID, 3}, [2]uint{flour.ID, 100}), []uint{tag.ID}))
	require.NoError(t, err)
	cake, err := env.recipes.Create(ctx, author.ID,
		validRecipeInput(amounts([2]uint{eggs.ID, 2}, [2]uint{sugar.ID, 50}), []uint{tag.ID}))
	require.NoError(t, err)

	_, err = env.collections.Add(ctx, model.CollectionShoppingCart, buyer.ID, pancakes.ID)
	require.NoError(t, err)
	_, err = env.collections.Add(ctx, model.CollectionShoppingCart, buyer.ID, cake.ID)
	require.NoError(t, err)

	items, err := env.shoppingList.Aggregate(ctx, buyer.ID)
	require.NoError(t, err)

	// same ingredient summed across recipes, lines ordered by name
	assert.Equal(t, []repository.ShoppingListItem{
		{Name: "eggs", MeasurementUnit: "pcs", TotalAmount: 5},
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 100},
		{Name: "sugar", MeasurementUnit: "g", TotalAmount: 50},
	}, items)

	// another user's cart stays empty
	items, err = env.shoppingList.Aggregate(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestShoppingListIgnoresFavorites(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	author := env.seedUser(t, "alice")
	buyer := env.seedUser(t, "bob")
	tag := env.seedTag(t, "dinner")
	rice := env.seedIngredient(t, "rice", "g")

	recipe, err := env.recipes.Create(ctx, author.ID,
		validRecipeInput(amounts([2]uint{rice.ID, 200}), []uint{tag.ID}))
	require.NoError(t, err)

	_, err = env.collections.Add(ctx, model.CollectionFavorite, buyer.ID, recipe.ID)
	require.NoError(t, err)

	items, err := env.shoppingList.Aggregate(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRenderPDF(t *testing.T) {
	env := setupEnv(t)

	out, err := env.shoppingList.RenderPDF("bob", []repository.ShoppingListItem{
		{Name: "eggs", MeasurementUnit: "pcs", TotalAmount: 5},
		{Name: "flour", MeasurementUnit: "g", TotalAmount: 100},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	// an empty list still renders a valid single-page document
	empty, err := env.shoppingList.RenderPDF("bob", nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF")))
	assert.True(t, bytes.Contains(empty, []byte("/Count 1")))
}

func TestRenderPDFPaginates(t *testing.T) {
	env := setupEnv(t)

	items := make([]repository.ShoppingListItem, 60)
	for i := range items {
		items[i] = repository.ShoppingListItem{Name: "item", MeasurementUnit: "g", TotalAmount: i + 1}
	}
	out, err := env.shoppingList.RenderPDF("bob", items)
	require.NoError(t, err)
	// 60 lines at 20pt do not fit one A4 page
	assert.True(t, bytes.Contains(out, []byte("/Count 2")))
}
