package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/food-hub-app/backend/internal/api"
	"github.com/food-hub-app/backend/internal/models"
	"github.com/food-hub-app/backend/internal/testdb"
	"github.com/food-hub-app/backend/internal/units"
)

func setupTestAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testdb.SetupSQLite(t)

	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupAPI(router, db, nil, "test-secret", 0)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestAPI(t)
	w := doJSON(t, router, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterAndLoginFlow(t *testing.T) {
	router, _ := setupTestAPI(t)
	registerUser(t, router, "alice")

	w := doJSON(t, router, "POST", "/api/v1/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/auth/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := setupTestAPI(t)
	for _, path := range []string{
		"/api/v1/profile",
		"/api/v1/nutrients",
		"/api/v1/recipes",
		"/api/v1/meals",
		"/api/v1/dashboard",
	} {
		w := doJSON(t, router, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestProfileUpdate(t *testing.T) {
	router, _ := setupTestAPI(t)
	token := registerUser(t, router, "alice")

	w := doJSON(t, router, "PUT", "/api/v1/profile", token, gin.H{
		"age":            30,
		"height":         178,
		"weight":         70,
		"activity_level": "S",
		"sex":            "M",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile models.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, 2450, profile.EnergyRequirement)

	w = doJSON(t, router, "PUT", "/api/v1/profile", token, gin.H{
		"age":            30,
		"height":         178,
		"weight":         70,
		"activity_level": "XX",
		"sex":            "M",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeightMeasurementFlow(t *testing.T) {
	router, _ := setupTestAPI(t)
	token := registerUser(t, router, "alice")

	w := doJSON(t, router, "POST", "/api/v1/profile/weight-measurements", token, gin.H{
		"date":   "2026-08-20",
		"weight": 176.37,
		"unit":   "lbs",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var measurement models.WeightMeasurement
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &measurement))
	assert.InDelta(t, 80, measurement.Value, 0.01)

	w = doJSON(t, router, "GET", "/api/v1/profile/weight-measurements", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.WeightMeasurement
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = doJSON(t, router, "GET", "/api/v1/profile/weight-measurements/last-month", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "DELETE", "/api/v1/profile/weight-measurements/"+measurement.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, "DELETE", "/api/v1/profile/weight-measurements/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIngredientSearch(t *testing.T) {
	router, db := setupTestAPI(t)
	token := registerUser(t, router, "alice")

	require.NoError(t, db.Create(&models.Ingredient{Name: "Rolled oats"}).Error)
	require.NoError(t, db.Create(&models.Ingredient{Name: "Lentils"}).Error)

	w := doJSON(t, router, "GET", "/api/v1/ingredients?q=oat", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var found []models.Ingredient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Rolled oats", found[0].Name)

	w = doJSON(t, router, "GET", "/api/v1/ingredients", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngredientWriteEndpoints(t *testing.T) {
	router, db := setupTestAPI(t)
	token := registerUser(t, router, "alice")

	protein := models.Nutrient{Name: "Protein", Unit: units.Grams, Energy: 4}
	require.NoError(t, db.Create(&protein).Error)

	w := doJSON(t, router, "POST", "/api/v1/ingredients", token, gin.H{
		"name": "Rolled oats",
		"nutrients": []gin.H{
			{"nutrient_id": protein.ID, "amount": 0.13},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Ingredient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEqual(t, uuid.Nil, created.ID)

	w = doJSON(t, router, "PUT", "/api/v1/ingredients/"+created.ID.String(), token, gin.H{
		"name": "Oat flakes",
		"nutrients": []gin.H{
			{"nutrient_id": protein.ID, "amount": 0.11},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Ingredient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Oat flakes", updated.Name)
	require.Len(t, updated.Nutrients, 1)
	assert.InDelta(t, 0.11, updated.Nutrients[0].Amount, 1e-9)

	w = doJSON(t, router, "PUT", "/api/v1/ingredients/"+uuid.NewString(), token, gin.H{
		"name":      "Nobody",
		"nutrients": []gin.H{},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNutrientUnitEndpoint(t *testing.T) {
	router, db := setupTestAPI(t)
	token := registerUser(t, router, "alice")

	iron := models.Nutrient{Name: "Iron", Unit: units.Milligrams}
	require.NoError(t, db.Create(&iron).Error)

	w := doJSON(t, router, "PUT", "/api/v1/nutrients/"+iron.ID.String()+"/unit", token, gin.H{
		"unit": units.Micrograms,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Nutrient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, units.Micrograms, updated.Unit)

	energy := models.Nutrient{Name: "Energy", Unit: units.Calories}
	require.NoError(t, db.Create(&energy).Error)
	w = doJSON(t, router, "PUT", "/api/v1/nutrients/"+energy.ID.String()+"/unit", token, gin.H{
		"unit": units.Grams,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "PUT", "/api/v1/nutrients/"+uuid.NewString()+"/unit", token, gin.H{
		"unit": units.Grams,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeEndpoints(t *testing.T) {
	router, db := setupTestAPI(t)
	token := registerUser(t, router, "alice")

	protein := models.Nutrient{Name: "Protein", Unit: units.Grams, Energy: 4}
	require.NoError(t, db.Create(&protein).Error)
	lentils := models.Ingredient{Name: "Lentils"}
	require.NoError(t, db.Create(&lentils).Error)
	require.NoError(t, db.Create(&models.IngredientNutrient{
		IngredientID: lentils.ID, NutrientID: protein.ID, Amount: 0.09,
	}).Error)

	w := doJSON(t, router, "POST", "/api/v1/recipes", token, gin.H{
		"name": "Lentil Soup",
		"ingredients": []gin.H{
			{"ingredient_id": lentils.ID.String(), "amount": 200},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var recipe models.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	assert.Equal(t, "lentil-soup", recipe.Slug)

	// Lookup by slug.
	w = doJSON(t, router, "GET", "/api/v1/recipes/lentil-soup", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Nutrient content per 100g.
	w = doJSON(t, router, "GET", fmt.Sprintf("/api/v1/recipes/%s/nutrients", recipe.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var content struct {
		Weight    float64            `json:"weight"`
		Nutrients map[string]float64 `json:"nutrients"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &content))
	assert.InDelta(t, 200, content.Weight, 1e-9)
	assert.InDelta(t, 9, content.Nutrients[protein.ID.String()], 1e-9)

	// Another user cannot see it.
	otherToken := registerUser(t, router, "bob")
	w = doJSON(t, router, "GET", fmt.Sprintf("/api/v1/recipes/%s", recipe.ID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/api/v1/recipes/%s", recipe.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMealEndpoints(t *testing.T) {
	router, db := setupTestAPI(t)
	token := registerUser(t, router, "alice")

	protein := models.Nutrient{
		Name: "Protein", Unit: units.Grams, Energy: 4,
		Types: []models.NutrientType{{Name: "Macronutrient"}},
	}
	require.NoError(t, db.Create(&protein).Error)
	oats := models.Ingredient{Name: "Oats"}
	require.NoError(t, db.Create(&oats).Error)
	require.NoError(t, db.Create(&models.IngredientNutrient{
		IngredientID: oats.ID, NutrientID: protein.ID, Amount: 0.13,
	}).Error)

	w := doJSON(t, router, "POST", "/api/v1/meals", token, gin.H{"date": "2026-08-20"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var meal models.Meal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meal))

	// The same date maps to the same meal.
	w = doJSON(t, router, "POST", "/api/v1/meals", token, gin.H{"date": "2026-08-20"})
	require.Equal(t, http.StatusOK, w.Code)
	var again models.Meal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.Equal(t, meal.ID, again.ID)

	w = doJSON(t, router, "POST", fmt.Sprintf("/api/v1/meals/%s/ingredients", meal.ID), token, gin.H{
		"item_id": oats.ID.String(),
		"amount":  100,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/v1/meals/%s/intakes", meal.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var intakes []struct {
		Type      models.NutrientType `json:"type"`
		Nutrients []struct {
			Nutrient models.Nutrient `json:"nutrient"`
			Amount   float64         `json:"amount"`
		} `json:"nutrients"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &intakes))
	require.Len(t, intakes, 1)
	assert.Equal(t, "Macronutrient", intakes[0].Type.Name)
	require.Len(t, intakes[0].Nutrients, 1)
	assert.Equal(t, protein.ID, intakes[0].Nutrients[0].Nutrient.ID)
	assert.InDelta(t, 13, intakes[0].Nutrients[0].Amount, 1e-9)

	w = doJSON(t, router, "GET", "/api/v1/meals?from=2026-08-01&to=2026-08-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var meals []models.Meal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meals))
	assert.Len(t, meals, 1)
}

func TestDashboardEndpoint(t *testing.T) {
	router, db := setupTestAPI(t)
	token := registerUser(t, router, "alice")

	w := doJSON(t, router, "PUT", "/api/v1/profile", token, gin.H{
		"age":            30,
		"height":         178,
		"weight":         70,
		"activity_level": "S",
		"sex":            "M",
	})
	require.Equal(t, http.StatusOK, w.Code)

	iron := models.Nutrient{Name: "Iron", Unit: units.Milligrams}
	require.NoError(t, db.Create(&iron).Error)

	w = doJSON(t, router, "PUT", "/api/v1/profile/tracked-nutrients", token, gin.H{
		"nutrient_ids": []string{iron.ID.String()},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, "GET", "/api/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var dashboard struct {
		EnergyRequirement int `json:"energy_requirement"`
		Tracked           []struct {
			Nutrient models.Nutrient `json:"nutrient"`
		} `json:"tracked"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	assert.Equal(t, 2450, dashboard.EnergyRequirement)
	require.Len(t, dashboard.Tracked, 1)
	assert.Equal(t, "Iron", dashboard.Tracked[0].Nutrient.Name)

	w = doJSON(t, router, "GET", "/api/v1/dashboard/calories/last-month", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var calories struct {
		Series  []json.RawMessage `json:"series"`
		Average float64           `json:"average"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &calories))
	assert.Zero(t, calories.Average)
}

func TestNutrientDetail(t *testing.T) {
	router, db := setupTestAPI(t)
	token := registerUser(t, router, "alice")

	w := doJSON(t, router, "PUT", "/api/v1/profile", token, gin.H{
		"age":            30,
		"height":         178,
		"weight":         70,
		"activity_level": "S",
		"sex":            "M",
	})
	require.Equal(t, http.StatusOK, w.Code)

	protein := models.Nutrient{Name: "Protein", Unit: units.Grams, Energy: 4}
	require.NoError(t, db.Create(&protein).Error)
	perKG := 0.8
	require.NoError(t, db.Create(&models.IntakeRecommendation{
		NutrientID: protein.ID,
		DRIType:    models.DRITypeRDAKG,
		Sex:        models.SexBoth,
		AgeMin:     19,
		AmountMin:  &perKG,
	}).Error)

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/v1/nutrients/%s", protein.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var detail struct {
		Nutrient        models.Nutrient `json:"nutrient"`
		Recommendations []struct {
			DRIType string   `json:"dri_type"`
			Amount  *float64 `json:"amount"`
		} `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Protein", detail.Nutrient.Name)
	require.Len(t, detail.Recommendations, 1)
	assert.Equal(t, models.DRITypeRDAKG, detail.Recommendations[0].DRIType)
	require.NotNil(t, detail.Recommendations[0].Amount)
	assert.InDelta(t, 56, *detail.Recommendations[0].Amount, 1e-9)
}
