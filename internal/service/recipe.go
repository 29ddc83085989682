package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/food-hub-app/backend/internal/models"
)

var (
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrRecipeNameExists = errors.New("a recipe with this name already exists")
)

var slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// slugify converts a recipe name to a URL-friendly slug.
func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func (s *RecipeService) Get(ownerID, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Preload("Ingredients.Ingredient.Nutrients").
		Where("owner_id = ?", ownerID).
		First(&recipe, "id = ?", recipeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) GetBySlug(ownerID uuid.UUID, slug string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Preload("Ingredients.Ingredient.Nutrients").
		Where("owner_id = ? AND slug = ?", ownerID, slug).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) List(ownerID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.Preload("Ingredients").
		Where("owner_id = ?", ownerID).Order("name").Find(&recipes).Error
	return recipes, err
}

// Create stores a recipe with its ingredient lines. The slug is derived
// from the name; collisions among the owner's recipes get a numeric
// suffix.
func (s *RecipeService) Create(ownerID uuid.UUID, name string, finalWeight *float64, ingredients []models.RecipeIngredient) (*models.Recipe, error) {
	var existing models.Recipe
	if err := s.db.Where("owner_id = ? AND name = ?", ownerID, name).First(&existing).Error; err == nil {
		return nil, ErrRecipeNameExists
	}

	slug, err := s.uniqueSlug(ownerID, name)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		OwnerID:     ownerID,
		Name:        name,
		Slug:        slug,
		FinalWeight: finalWeight,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		for i := range ingredients {
			ingredients[i].RecipeID = recipe.ID
			if err := tx.Create(&ingredients[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ownerID, recipe.ID)
}

// Update replaces the recipe's name, final weight and ingredient lines.
// A renamed recipe gets a fresh slug.
func (s *RecipeService) Update(ownerID, recipeID uuid.UUID, name string, finalWeight *float64, ingredients []models.RecipeIngredient) (*models.Recipe, error) {
	recipe, err := s.Get(ownerID, recipeID)
	if err != nil {
		return nil, err
	}

	if name != recipe.Name {
		var existing models.Recipe
		if err := s.db.Where("owner_id = ? AND name = ? AND id <> ?", ownerID, name, recipeID).
			First(&existing).Error; err == nil {
			return nil, ErrRecipeNameExists
		}
		slug, err := s.uniqueSlug(ownerID, name)
		if err != nil {
			return nil, err
		}
		recipe.Name = name
		recipe.Slug = slug
	}
	recipe.FinalWeight = finalWeight

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range ingredients {
			ingredients[i].RecipeID = recipe.ID
			if err := tx.Create(&ingredients[i]).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Ingredients").Save(recipe).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ownerID, recipe.ID)
}

func (s *RecipeService) Delete(ownerID, recipeID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", recipeID, ownerID).Delete(&models.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecipeNotFound
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Where("recipe_id = ?", recipeID).Delete(&models.MealRecipe{}).Error
	})
}

func (s *RecipeService) uniqueSlug(ownerID uuid.UUID, name string) (string, error) {
	base := slugify(name)
	slug := base
	for n := 2; ; n++ {
		var count int64
		if err := s.db.Model(&models.Recipe{}).
			Where("owner_id = ? AND slug = ?", ownerID, slug).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// NutrientAmounts maps nutrient ids to their amount in one gram of the
// prepared recipe. Returns nil for a weightless recipe.
func RecipeNutrientAmounts(recipe *models.Recipe) map[uuid.UUID]float64 {
	weight := recipe.Weight()
	if weight == 0 {
		return nil
	}

	amounts := make(map[uuid.UUID]float64)
	for _, ri := range recipe.Ingredients {
		for _, in := range ri.Ingredient.Nutrients {
			amounts[in.NutrientID] += ri.Amount * in.Amount / weight
		}
	}
	return amounts
}
