package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe represents a prepared collection of ingredients.
type Recipe struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_owner_name,priority:1;uniqueIndex:idx_recipe_owner_slug,priority:1" json:"owner_id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex:idx_recipe_owner_name,priority:2" json:"name"`
	Slug      string    `gorm:"size:50;uniqueIndex:idx_recipe_owner_slug,priority:2" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Weight of the prepared recipe in grams. When nil the weight is
	// the sum of the ingredient amounts.
	FinalWeight *float64 `json:"final_weight"`

	Owner       Profile            `gorm:"foreignKey:OwnerID" json:"-"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Weight is the total weight of the recipe: FinalWeight when set,
// otherwise the sum of the loaded ingredient amounts.
func (r *Recipe) Weight() float64 {
	if r.FinalWeight != nil {
		return *r.FinalWeight
	}
	var sum float64
	for _, ri := range r.Ingredients {
		sum += ri.Amount
	}
	return sum
}

// RecipeIngredient represents the amount of an ingredient (in grams) in
// a recipe.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:varchar(36);not null" json:"ingredient_id"`
	Amount       float64   `gorm:"not null" json:"amount"`

	Ingredient Ingredient `json:"ingredient,omitempty"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
