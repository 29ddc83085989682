package types

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for exchanging credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileRequest carries the editable demographic fields of a profile.
type ProfileRequest struct {
	Age           int     `json:"age" binding:"required,min=0"`
	Height        float64 `json:"height" binding:"required,gt=0"`
	Weight        float64 `json:"weight" binding:"required,gt=0"`
	ActivityLevel string  `json:"activity_level" binding:"required"`
	Sex           string  `json:"sex" binding:"required"`
}

// WeightMeasurementRequest records a body-weight reading for a day.
type WeightMeasurementRequest struct {
	// Date is expected in YYYY-MM-DD form.
	Date   string  `json:"date" binding:"required"`
	Weight float64 `json:"weight" binding:"required,gt=0"`
	// Unit may be "kg" (default) or "lbs".
	Unit string `json:"unit"`
}

// TrackedNutrientsRequest replaces the set of nutrients pinned to the dashboard.
type TrackedNutrientsRequest struct {
	NutrientIDs []string `json:"nutrient_ids" binding:"required"`
}

// IngredientNutrientRequest is the per-gram amount of one nutrient in
// an ingredient payload.
type IngredientNutrientRequest struct {
	NutrientID string  `json:"nutrient_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

// IngredientRequest is the payload for creating or updating an
// ingredient.
type IngredientRequest struct {
	Name      string                      `json:"name" binding:"required"`
	Nutrients []IngredientNutrientRequest `json:"nutrients"`
}

// NutrientUnitRequest changes the unit a nutrient is measured in.
type NutrientUnitRequest struct {
	Unit string `json:"unit" binding:"required"`
}

// MealItemRequest adds or updates a single ingredient or recipe inside a meal.
type MealItemRequest struct {
	ItemID string  `json:"item_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// RecipeIngredientRequest is one ingredient line of a recipe payload.
type RecipeIngredientRequest struct {
	IngredientID string  `json:"ingredient_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
}

// RecipeRequest is the payload for creating or updating a recipe.
type RecipeRequest struct {
	Name        string                    `json:"name" binding:"required"`
	Description string                    `json:"description"`
	FinalWeight *float64                  `json:"final_weight"`
	Ingredients []RecipeIngredientRequest `json:"ingredients"`
}

// CurrentMealRequest selects the meal subsequent logging shortcuts apply to.
type CurrentMealRequest struct {
	MealID string `json:"meal_id" binding:"required"`
}
