package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/food-hub-app/backend/internal/models"
	"github.com/food-hub-app/backend/internal/service"
	"github.com/food-hub-app/backend/internal/testdb"
)

func TestIngredientSearchFallback(t *testing.T) {
	db := testdb.SetupSQLite(t)
	svc := service.NewIngredientService(db)

	for _, name := range []string{"Rolled oats", "Oat milk", "Lentils"} {
		require.NoError(t, svc.Create(&models.Ingredient{Name: name}))
	}

	found, err := svc.Search("oat", 10)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Oat milk", found[0].Name)

	found, err = svc.Search("OAT", 10)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = svc.Search("quinoa", 10)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestIngredientSearchLimit(t *testing.T) {
	db := testdb.SetupSQLite(t)
	svc := service.NewIngredientService(db)

	for _, name := range []string{"Oat A", "Oat B", "Oat C"} {
		require.NoError(t, svc.Create(&models.Ingredient{Name: name}))
	}

	found, err := svc.Search("oat", 2)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestIngredientCreateSetsEmbedding(t *testing.T) {
	db := testdb.SetupSQLite(t)
	svc := service.NewIngredientService(db)

	ingredient := models.Ingredient{Name: "Oats"}
	require.NoError(t, svc.Create(&ingredient))

	vec := models.IngredientEmbedding("Oats")
	assert.Equal(t, vec, ingredient.Embedding)

	got, err := svc.Get(ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oats", got.Name)
}

func TestIngredientDirectCreateReadsBack(t *testing.T) {
	db := testdb.SetupSQLite(t)

	// Rows created outside the service still need a loadable embedding.
	oats := models.Ingredient{Name: "Oats"}
	require.NoError(t, db.Create(&oats).Error)

	var found models.Ingredient
	require.NoError(t, db.First(&found, "id = ?", oats.ID).Error)
	assert.Equal(t, models.IngredientEmbedding("Oats"), found.Embedding)
}

func TestIngredientWritesRecomputeCompounds(t *testing.T) {
	db := testdb.SetupSQLite(t)
	svc := service.NewIngredientService(db)

	sugars := createNutrient(t, db, "Sugars", "G", 4)
	carbs := createNutrient(t, db, "Carbohydrate", "G", 4)
	require.NoError(t, db.Create(&models.NutrientComponent{TargetID: carbs.ID, ComponentID: sugars.ID}).Error)

	ingredient := models.Ingredient{
		Name:      "Oats",
		Nutrients: []models.IngredientNutrient{{NutrientID: sugars.ID, Amount: 0.01}},
	}
	require.NoError(t, svc.Create(&ingredient))

	var derived models.IngredientNutrient
	require.NoError(t, db.Where("ingredient_id = ? AND nutrient_id = ?", ingredient.ID, carbs.ID).
		First(&derived).Error)
	assert.InDelta(t, 0.01, derived.Amount, 1e-9)

	loaded, err := svc.Get(ingredient.ID)
	require.NoError(t, err)
	loaded.Nutrients = nil
	require.NoError(t, svc.Update(loaded, []models.IngredientNutrient{{NutrientID: sugars.ID, Amount: 0.02}}))

	// Reset so the stale primary key from the first lookup is not added
	// as a query condition; the recompute replaces the row under a new id.
	derived = models.IngredientNutrient{}
	require.NoError(t, db.Where("ingredient_id = ? AND nutrient_id = ?", ingredient.ID, carbs.ID).
		First(&derived).Error)
	assert.InDelta(t, 0.02, derived.Amount, 1e-9)
}

func TestIngredientEmbeddingDeterministic(t *testing.T) {
	a := models.IngredientEmbedding("Lentils")
	b := models.IngredientEmbedding("lentils")
	assert.Equal(t, a, b)

	slice := a.Slice()
	require.Len(t, slice, 3)
	// 7 letters: 2 vowels, 5 consonants.
	assert.Equal(t, float32(7), slice[0])
	assert.Equal(t, float32(2), slice[1])
	assert.Equal(t, float32(5), slice[2])
}
