package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/food-hub-app/backend/internal/models"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

type IngredientService struct {
	db        *gorm.DB
	nutrients *NutrientService
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db, nutrients: NewNutrientService(db)}
}

func (s *IngredientService) Get(id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.Preload("Nutrients.Nutrient").First(&ingredient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIngredientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Search looks up ingredients matching the query. On postgres the
// results are ordered by embedding distance so near-misses still rank;
// other drivers fall back to a plain substring match.
func (s *IngredientService) Search(query string, limit int) ([]models.Ingredient, error) {
	if limit <= 0 {
		limit = 20
	}

	like := "%" + strings.ToLower(query) + "%"
	var ingredients []models.Ingredient

	if s.db.Dialector.Name() == "postgres" {
		vec := models.IngredientEmbedding(query)
		subQuery := s.db.Model(&models.Ingredient{}).
			Select("id, embedding <-> ? as similarity", vec).
			Where("LOWER(name) LIKE ?", like)

		err := s.db.
			Joins("JOIN (?) as search ON ingredients.id = search.id", subQuery).
			Order("search.similarity ASC").
			Limit(limit).
			Find(&ingredients).Error
		return ingredients, err
	}

	err := s.db.
		Where("LOWER(name) LIKE ?", like).
		Order("name").
		Limit(limit).
		Find(&ingredients).Error
	return ingredients, err
}

// Create stores an ingredient together with its per-gram nutrient
// amounts. The search embedding is derived from the name, and compound
// nutrients are recomputed from the new component amounts.
func (s *IngredientService) Create(ingredient *models.Ingredient) error {
	ingredient.Embedding = models.IngredientEmbedding(ingredient.Name)
	if err := s.db.Create(ingredient).Error; err != nil {
		return err
	}
	return s.nutrients.UpdateCompoundNutrients()
}

// Update saves the ingredient's attributes and replaces its nutrient
// amounts, then recomputes the dependent compound nutrients.
func (s *IngredientService) Update(ingredient *models.Ingredient, lines []models.IngredientNutrient) error {
	ingredient.Embedding = models.IngredientEmbedding(ingredient.Name)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", ingredient.ID).Delete(&models.IngredientNutrient{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].IngredientID = ingredient.ID
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Nutrients").Save(ingredient).Error
	})
	if err != nil {
		return err
	}
	return s.nutrients.UpdateCompoundNutrients()
}
