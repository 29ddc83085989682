package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/food-hub-app/backend/internal/models"
)

var (
	ErrMealNotFound     = errors.New("meal not found")
	ErrMealItemNotFound = errors.New("meal item not found")
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

func (s *MealService) Get(ownerID, mealID uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.
		Preload("Ingredients.Ingredient.Nutrients").
		Preload("Recipes.Recipe.Ingredients.Ingredient.Nutrients").
		Where("owner_id = ?", ownerID).
		First(&meal, "id = ?", mealID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// GetOrCreate returns the owner's meal for a date, creating an empty
// one when the day has no meal yet. There is at most one meal per
// profile per date.
func (s *MealService) GetOrCreate(ownerID uuid.UUID, date time.Time) (*models.Meal, error) {
	date = models.NormalizeDate(date)

	var meal models.Meal
	err := s.db.Where("owner_id = ? AND date = ?", ownerID, date).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		meal = models.Meal{OwnerID: ownerID, Date: date}
		if err := s.db.Create(&meal).Error; err != nil {
			return nil, err
		}
		return &meal, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Get(ownerID, meal.ID)
}

func (s *MealService) List(ownerID uuid.UUID, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	q := s.db.Where("owner_id = ?", ownerID)
	if !from.IsZero() {
		q = q.Where("date >= ?", models.NormalizeDate(from))
	}
	if !to.IsZero() {
		q = q.Where("date <= ?", models.NormalizeDate(to))
	}
	err := q.Order("date desc").Find(&meals).Error
	return meals, err
}

// AddIngredient adds an ingredient to the meal, merging with an
// existing line for the same ingredient.
func (s *MealService) AddIngredient(ownerID, mealID, ingredientID uuid.UUID, amount float64) (*models.MealIngredient, error) {
	if _, err := s.ownedMeal(ownerID, mealID); err != nil {
		return nil, err
	}

	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, "id = ?", ingredientID).Error; err != nil {
		return nil, ErrIngredientNotFound
	}

	var line models.MealIngredient
	err := s.db.Where("meal_id = ? AND ingredient_id = ?", mealID, ingredientID).First(&line).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.MealIngredient{MealID: mealID, IngredientID: ingredientID, Amount: amount}
		if err := s.db.Create(&line).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		line.Amount += amount
		if err := s.db.Save(&line).Error; err != nil {
			return nil, err
		}
	}
	return &line, nil
}

func (s *MealService) UpdateIngredient(ownerID, mealID, lineID uuid.UUID, amount float64) error {
	if _, err := s.ownedMeal(ownerID, mealID); err != nil {
		return err
	}
	res := s.db.Model(&models.MealIngredient{}).
		Where("id = ? AND meal_id = ?", lineID, mealID).
		Update("amount", amount)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMealItemNotFound
	}
	return nil
}

func (s *MealService) RemoveIngredient(ownerID, mealID, lineID uuid.UUID) error {
	if _, err := s.ownedMeal(ownerID, mealID); err != nil {
		return err
	}
	res := s.db.Where("id = ? AND meal_id = ?", lineID, mealID).Delete(&models.MealIngredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMealItemNotFound
	}
	return nil
}

// AddRecipe adds a recipe to the meal. The recipe must belong to the
// meal's owner.
func (s *MealService) AddRecipe(ownerID, mealID, recipeID uuid.UUID, amount float64) (*models.MealRecipe, error) {
	meal, err := s.ownedMeal(ownerID, mealID)
	if err != nil {
		return nil, err
	}

	var recipe models.Recipe
	if err := s.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, ErrRecipeNotFound
	}
	if recipe.OwnerID != meal.OwnerID {
		return nil, models.ErrOwnerMismatch
	}

	var line models.MealRecipe
	err = s.db.Where("meal_id = ? AND recipe_id = ?", mealID, recipeID).First(&line).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.MealRecipe{MealID: mealID, RecipeID: recipeID, Amount: amount}
		if err := s.db.Create(&line).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		line.Amount += amount
		if err := s.db.Save(&line).Error; err != nil {
			return nil, err
		}
	}
	return &line, nil
}

func (s *MealService) UpdateRecipe(ownerID, mealID, lineID uuid.UUID, amount float64) error {
	if _, err := s.ownedMeal(ownerID, mealID); err != nil {
		return err
	}
	res := s.db.Model(&models.MealRecipe{}).
		Where("id = ? AND meal_id = ?", lineID, mealID).
		Update("amount", amount)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMealItemNotFound
	}
	return nil
}

func (s *MealService) RemoveRecipe(ownerID, mealID, lineID uuid.UUID) error {
	if _, err := s.ownedMeal(ownerID, mealID); err != nil {
		return err
	}
	res := s.db.Where("id = ? AND meal_id = ?", lineID, mealID).Delete(&models.MealRecipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMealItemNotFound
	}
	return nil
}

func (s *MealService) ownedMeal(ownerID, mealID uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.Where("id = ? AND owner_id = ?", mealID, ownerID).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}
