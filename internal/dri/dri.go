// Package dri seeds the nutrient catalogue and the dietary reference
// intake recommendations the dashboard evaluates against.
package dri

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/food-hub-app/backend/internal/models"
)

// Populate creates the reference nutrients, nutrient types and intake
// recommendations. It is idempotent: existing nutrients and types are
// matched by name and left untouched, and recommendations are only
// created for nutrients that have none yet.
func Populate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		byName := make(map[string]*models.Nutrient, len(nutrients))
		for i := range nutrients {
			spec := &nutrients[i]
			nutrient := models.Nutrient{Name: spec.name, Unit: spec.unit, Energy: spec.energy}
			if err := tx.Where("name = ?", spec.name).FirstOrCreate(&nutrient).Error; err != nil {
				return fmt.Errorf("nutrient %s: %w", spec.name, err)
			}
			byName[spec.name] = &nutrient
		}

		types, err := populateTypes(tx, byName)
		if err != nil {
			return err
		}

		for i := range nutrients {
			spec := &nutrients[i]
			var assigned []models.NutrientType
			for _, name := range spec.types {
				assigned = append(assigned, *types[name])
			}
			err := tx.Model(byName[spec.name]).Association("Types").Replace(assigned)
			if err != nil {
				return fmt.Errorf("assign types of %s: %w", spec.name, err)
			}
		}

		return populateRecommendations(tx, byName)
	})
}

func populateTypes(tx *gorm.DB, nutrients map[string]*models.Nutrient) (map[string]*models.NutrientType, error) {
	names := []string{typeMacronutrient, typeVitamin, typeMineral, typeFattyAcid, typeAminoAcid}

	types := make(map[string]*models.NutrientType, len(names))
	for _, name := range names {
		nutrientType := models.NutrientType{Name: name, DisplayedName: name + "s"}
		if parent, ok := typeParents[name]; ok {
			nutrientType.ParentNutrientID = &nutrients[parent].ID
		}
		if err := tx.Where("name = ?", name).FirstOrCreate(&nutrientType).Error; err != nil {
			return nil, fmt.Errorf("nutrient type %s: %w", name, err)
		}
		types[name] = &nutrientType
	}
	return types, nil
}

func populateRecommendations(tx *gorm.DB, nutrients map[string]*models.Nutrient) error {
	for _, spec := range recommendations {
		nutrient, ok := nutrients[spec.nutrient]
		if !ok {
			return fmt.Errorf("recommendation references unknown nutrient %s", spec.nutrient)
		}

		var count int64
		err := tx.Model(&models.IntakeRecommendation{}).
			Where("nutrient_id = ? AND dri_type = ? AND sex = ? AND age_min = ?",
				nutrient.ID, spec.driType, spec.sex, spec.ageMin).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		rec := models.IntakeRecommendation{
			NutrientID: nutrient.ID,
			DRIType:    spec.driType,
			Sex:        spec.sex,
			AgeMin:     spec.ageMin,
		}
		if spec.ageMax > 0 {
			ageMax := spec.ageMax
			rec.AgeMax = &ageMax
		}
		if spec.hasMin {
			amount := spec.min
			rec.AmountMin = &amount
		}
		if spec.hasMax {
			amount := spec.max
			rec.AmountMax = &amount
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("recommendation for %s: %w", spec.nutrient, err)
		}
	}

	return nil
}
