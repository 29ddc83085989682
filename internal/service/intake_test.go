package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/food-hub-app/backend/internal/models"
	"github.com/food-hub-app/backend/internal/service"
	"github.com/food-hub-app/backend/internal/testdb"
	"github.com/food-hub-app/backend/internal/units"
)

func TestMealIntakesFromIngredientsAndRecipes(t *testing.T) {
	db := testdb.SetupSQLite(t)
	meals := service.NewMealService(db)
	recipes := service.NewRecipeService(db)
	profile := createProfile(t, db)

	protein := createNutrient(t, db, "Protein", units.Grams, 4)
	fat := createNutrient(t, db, "Total fat", units.Grams, 9)

	oats := createIngredient(t, db, "Oats", map[uuid.UUID]float64{
		protein.ID: 0.13,
		fat.ID:     0.07,
	})
	lentils := createIngredient(t, db, "Lentils", map[uuid.UUID]float64{protein.ID: 0.09})
	water := createIngredient(t, db, "Water", nil)

	soup, err := recipes.Create(profile.ID, "Soup", nil, []models.RecipeIngredient{
		{IngredientID: lentils.ID, Amount: 200},
		{IngredientID: water.ID, Amount: 300},
	})
	require.NoError(t, err)

	meal, err := meals.GetOrCreate(profile.ID, time.Now())
	require.NoError(t, err)
	_, err = meals.AddIngredient(profile.ID, meal.ID, oats.ID, 100)
	require.NoError(t, err)
	_, err = meals.AddRecipe(profile.ID, meal.ID, soup.ID, 250)
	require.NoError(t, err)

	meal, err = meals.Get(profile.ID, meal.ID)
	require.NoError(t, err)

	intakes := service.MealIntakes(meal)
	// 100g oats plus 250g of a 500g soup holding 18g of protein.
	assert.InDelta(t, 13+9, intakes[protein.ID], 1e-9)
	assert.InDelta(t, 7, intakes[fat.ID], 1e-9)
}

func TestAverageIntakes(t *testing.T) {
	db := testdb.SetupSQLite(t)
	meals := service.NewMealService(db)
	intakeSvc := service.NewIntakeService(db)
	profile := createProfile(t, db)

	protein := createNutrient(t, db, "Protein", units.Grams, 4)
	oats := createIngredient(t, db, "Oats", map[uuid.UUID]float64{protein.ID: 0.13})

	base := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	for d, grams := range []float64{100, 200} {
		meal, err := meals.GetOrCreate(profile.ID, base.AddDate(0, 0, d))
		require.NoError(t, err)
		_, err = meals.AddIngredient(profile.ID, meal.ID, oats.ID, grams)
		require.NoError(t, err)
	}

	averages, days, err := intakeSvc.AverageIntakes(profile.ID, base.AddDate(0, 0, -5), base.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, 2, days)
	// (13 + 26) / 2 days with meals.
	assert.InDelta(t, 19.5, averages[protein.ID], 1e-9)
}

func TestAverageIntakesEmptyLog(t *testing.T) {
	db := testdb.SetupSQLite(t)
	intakeSvc := service.NewIntakeService(db)
	profile := createProfile(t, db)

	averages, days, err := intakeSvc.AverageIntakes(profile.ID, time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)
	assert.Zero(t, days)
	assert.Empty(t, averages)
}

func TestNutrientIntakesLastMonth(t *testing.T) {
	db := testdb.SetupSQLite(t)
	meals := service.NewMealService(db)
	intakeSvc := service.NewIntakeService(db)
	profile := createProfile(t, db)

	protein := createNutrient(t, db, "Protein", units.Grams, 4)
	oats := createIngredient(t, db, "Oats", map[uuid.UUID]float64{protein.ID: 0.13})

	now := time.Date(2026, time.August, 20, 10, 0, 0, 0, time.UTC)
	meal, err := meals.GetOrCreate(profile.ID, now)
	require.NoError(t, err)
	_, err = meals.AddIngredient(profile.ID, meal.ID, oats.ID, 100)
	require.NoError(t, err)

	points, err := intakeSvc.NutrientIntakesLastMonth(profile.ID, protein.ID, now)
	require.NoError(t, err)
	require.Len(t, points, 32)

	last := points[len(points)-1]
	assert.Equal(t, "Aug 20", last.Date)
	require.NotNil(t, last.Value)
	assert.InDelta(t, 13, *last.Value, 1e-9)

	// Days without a logged meal count as zero.
	require.NotNil(t, points[0].Value)
	assert.Zero(t, *points[0].Value)
}

func TestCalorieNutrientsExcludesDoubleCounting(t *testing.T) {
	db := testdb.SetupSQLite(t)
	intakeSvc := service.NewIntakeService(db)

	fat := createNutrient(t, db, "Total fat", units.Grams, 9)
	saturated := createNutrient(t, db, "Saturated fat", units.Grams, 9)
	sugars := createNutrient(t, db, "Sugars", units.Grams, 4)
	carbs := createNutrient(t, db, "Carbohydrate", units.Grams, 4)
	createNutrient(t, db, "Protein", units.Grams, 4)
	createNutrient(t, db, "Water", units.Grams, 0)

	// Saturated fat sits under the Fatty acid type parented by Total fat.
	fattyAcids := models.NutrientType{Name: "Fatty acid type", ParentNutrientID: &fat.ID}
	require.NoError(t, db.Create(&fattyAcids).Error)
	require.NoError(t, db.Model(saturated).Association("Types").Append(&fattyAcids))

	// Sugars are a component of the carbohydrate compound.
	require.NoError(t, db.Create(&models.NutrientComponent{TargetID: carbs.ID, ComponentID: sugars.ID}).Error)

	nutrients, err := intakeSvc.CalorieNutrients()
	require.NoError(t, err)

	names := make([]string, 0, len(nutrients))
	for _, n := range nutrients {
		names = append(names, n.Name)
	}
	assert.ElementsMatch(t, []string{"Total fat", "Protein", "Carbohydrate"}, names)
}

func TestCalorieBreakdown(t *testing.T) {
	db := testdb.SetupSQLite(t)
	intakeSvc := service.NewIntakeService(db)

	fat := createNutrient(t, db, "Total fat", units.Grams, 9)
	protein := createNutrient(t, db, "Protein", units.Grams, 4)

	intakes := map[uuid.UUID]float64{
		fat.ID:     10,
		protein.ID: 45,
	}

	contributions, total, err := intakeSvc.CalorieBreakdown(intakes)
	require.NoError(t, err)
	assert.InDelta(t, 270, total, 1e-9)
	require.Len(t, contributions, 2)

	// Sorted by calories, protein first.
	assert.Equal(t, "Protein", contributions[0].Nutrient.Name)
	assert.InDelta(t, 180, contributions[0].Calories, 1e-9)
	assert.InDelta(t, 100.0*180/270, contributions[0].Ratio, 1e-9)
}

func TestCaloriesLastMonth(t *testing.T) {
	db := testdb.SetupSQLite(t)
	meals := service.NewMealService(db)
	intakeSvc := service.NewIntakeService(db)
	profile := createProfile(t, db)

	protein := createNutrient(t, db, "Protein", units.Grams, 4)
	fat := createNutrient(t, db, "Total fat", units.Grams, 9)
	oats := createIngredient(t, db, "Oats", map[uuid.UUID]float64{
		protein.ID: 0.13,
		fat.ID:     0.07,
	})

	now := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	meal, err := meals.GetOrCreate(profile.ID, now)
	require.NoError(t, err)
	_, err = meals.AddIngredient(profile.ID, meal.ID, oats.ID, 100)
	require.NoError(t, err)

	series, average, err := intakeSvc.CaloriesLastMonth(profile.ID, now)
	require.NoError(t, err)

	// Reverse alphabetical: Total fat before Protein.
	require.Len(t, series, 2)
	assert.Equal(t, "Total fat", series[0].Nutrient.Name)
	assert.Equal(t, "Protein", series[1].Nutrient.Name)

	require.Len(t, series[1].Points, 32)
	last := series[1].Points[len(series[1].Points)-1]
	assert.Equal(t, "Aug 20", last.Date)
	require.NotNil(t, last.Value)
	assert.InDelta(t, 52, *last.Value, 1e-9)

	// One logged day with 52 + 63 kcal.
	assert.InDelta(t, 115, average, 1e-9)
}
