package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/food-hub-app/backend/internal/models"
)

func createProfile(t *testing.T, db *gorm.DB) *models.Profile {
	t.Helper()

	user := models.User{
		Username:     "user-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)

	profile := models.Profile{
		UserID:        user.ID,
		Age:           30,
		Height:        178,
		Weight:        70,
		ActivityLevel: models.Sedentary,
		Sex:           models.SexMale,
	}
	profile.EnergyRequirement = profile.CalculateEnergy()
	require.NoError(t, db.Create(&profile).Error)
	return &profile
}

func createNutrient(t *testing.T, db *gorm.DB, name, unit string, energy float64) *models.Nutrient {
	t.Helper()
	nutrient := models.Nutrient{Name: name, Unit: unit, Energy: energy}
	require.NoError(t, db.Create(&nutrient).Error)
	return &nutrient
}

// createIngredient stores an ingredient with per-gram nutrient amounts.
func createIngredient(t *testing.T, db *gorm.DB, name string, amounts map[uuid.UUID]float64) *models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{Name: name}
	require.NoError(t, db.Create(&ingredient).Error)
	for nid, amount := range amounts {
		in := models.IngredientNutrient{IngredientID: ingredient.ID, NutrientID: nid, Amount: amount}
		require.NoError(t, db.Create(&in).Error)
	}
	return &ingredient
}
