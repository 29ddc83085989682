package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal represents the foods eaten in a single day. There is one meal
// per profile per date.
type Meal struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_meal_owner_date" json:"owner_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_meal_owner_date" json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner       Profile          `gorm:"foreignKey:OwnerID" json:"-"`
	Ingredients []MealIngredient `json:"ingredients,omitempty"`
	Recipes     []MealRecipe     `json:"recipes,omitempty"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.Date = NormalizeDate(m.Date)
	return nil
}

// MealIngredient represents the amount (in grams) of an ingredient in a
// meal.
type MealIngredient struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	MealID       uuid.UUID `gorm:"type:varchar(36);not null;index" json:"meal_id"`
	IngredientID uuid.UUID `gorm:"type:varchar(36);not null" json:"ingredient_id"`
	Amount       float64   `gorm:"not null" json:"amount"`

	Ingredient Ingredient `json:"ingredient,omitempty"`
}

func (mi *MealIngredient) BeforeCreate(tx *gorm.DB) error {
	if mi.ID == uuid.Nil {
		mi.ID = uuid.New()
	}
	return nil
}

// MealRecipe represents the amount (in grams) of a recipe in a meal.
// The meal and recipe owners must match.
type MealRecipe struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	MealID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"meal_id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null" json:"recipe_id"`
	Amount   float64   `gorm:"not null" json:"amount"`

	Recipe Recipe `json:"recipe,omitempty"`
}

func (mr *MealRecipe) BeforeCreate(tx *gorm.DB) error {
	if mr.ID == uuid.Nil {
		mr.ID = uuid.New()
	}
	return nil
}

// NormalizeDate truncates a timestamp to a date in UTC so day-keyed
// lookups and the meal (owner, date) constraint behave consistently
// across drivers.
func NormalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
