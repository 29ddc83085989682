package service

import (
	"errors"
	"log"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/food-hub-app/backend/internal/models"
	"github.com/food-hub-app/backend/internal/units"
)

var ErrNutrientNotFound = errors.New("nutrient not found")

// typeDisplayOrder fixes the order nutrient groups appear in on the
// dashboard. Unlisted types sort after these, alphabetically.
var typeDisplayOrder = map[string]int{
	"Vitamin":         0,
	"Mineral":         1,
	"Fatty acid type": 2,
	"Amino acid":      3,
}

type NutrientService struct {
	db *gorm.DB
}

func NewNutrientService(db *gorm.DB) *NutrientService {
	return &NutrientService{db: db}
}

func (s *NutrientService) Get(id uuid.UUID) (*models.Nutrient, error) {
	var nutrient models.Nutrient
	err := s.db.Preload("Types").Preload("Components").Preload("Recommendations").
		First(&nutrient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNutrientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &nutrient, nil
}

func (s *NutrientService) GetByName(name string) (*models.Nutrient, error) {
	var nutrient models.Nutrient
	err := s.db.Preload("Types").First(&nutrient, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNutrientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &nutrient, nil
}

func (s *NutrientService) List() ([]models.Nutrient, error) {
	var nutrients []models.Nutrient
	err := s.db.Preload("Types").Order("name").Find(&nutrients).Error
	return nutrients, err
}

// NutrientGroup is a display group of nutrients sharing a type.
type NutrientGroup struct {
	Type      models.NutrientType `json:"type"`
	Nutrients []models.Nutrient   `json:"nutrients"`
}

// ListGrouped arranges the catalogue into dashboard display groups,
// ordered vitamins first, then minerals, fatty acids and amino acids.
func (s *NutrientService) ListGrouped() ([]NutrientGroup, error) {
	var nutrientTypes []models.NutrientType
	if err := s.db.Find(&nutrientTypes).Error; err != nil {
		return nil, err
	}

	sort.SliceStable(nutrientTypes, func(i, j int) bool {
		oi, iKnown := typeDisplayOrder[nutrientTypes[i].Name]
		oj, jKnown := typeDisplayOrder[nutrientTypes[j].Name]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return nutrientTypes[i].Name < nutrientTypes[j].Name
		}
	})

	groups := make([]NutrientGroup, 0, len(nutrientTypes))
	for _, nt := range nutrientTypes {
		var nutrients []models.Nutrient
		err := s.db.
			Joins("JOIN nutrient_type_assignments nta ON nta.nutrient_id = nutrients.id").
			Where("nta.nutrient_type_id = ?", nt.ID).
			Order("nutrients.name").
			Find(&nutrients).Error
		if err != nil {
			return nil, err
		}
		if len(nutrients) == 0 {
			continue
		}
		groups = append(groups, NutrientGroup{Type: nt, Nutrients: nutrients})
	}
	return groups, nil
}

// UpdateUnit changes the unit a nutrient is measured in and rescales
// every stored amount (ingredient contents and recommendation bounds)
// so they keep their physical meaning.
func (s *NutrientService) UpdateUnit(id uuid.UUID, newUnit string) error {
	nutrient, err := s.Get(id)
	if err != nil {
		return err
	}
	if nutrient.Unit == newUnit {
		return nil
	}

	factor, err := units.ConversionFactor(nutrient.Unit, newUnit, nutrient.Name)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.IngredientNutrient{}).
			Where("nutrient_id = ?", id).
			Update("amount", gorm.Expr("amount * ?", factor)).Error; err != nil {
			return err
		}

		// AMDR bounds are percentages of the energy requirement, not
		// amounts in the nutrient's unit, so they stay untouched.
		if err := tx.Model(&models.IntakeRecommendation{}).
			Where("nutrient_id = ? AND dri_type <> ?", id, models.DRITypeAMDR).
			Updates(map[string]interface{}{
				"amount_min": gorm.Expr("amount_min * ?", factor),
				"amount_max": gorm.Expr("amount_max * ?", factor),
			}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Nutrient{}).Where("id = ?", id).
			Update("unit", newUnit).Error
	})
}

// UpdateCompoundNutrients recomputes the per-ingredient amounts of
// every compound nutrient from its components. Run after ingredient
// data changes.
func (s *NutrientService) UpdateCompoundNutrients() error {
	var compounds []models.Nutrient
	err := s.db.Preload("Components").
		Joins("JOIN nutrient_components nc ON nc.target_id = nutrients.id").
		Distinct().Find(&compounds).Error
	if err != nil {
		return err
	}

	for _, compound := range compounds {
		if err := s.updateCompound(&compound); err != nil {
			return err
		}
	}
	return nil
}

func (s *NutrientService) updateCompound(compound *models.Nutrient) error {
	componentIDs := make([]uuid.UUID, 0, len(compound.Components))
	factors := make(map[uuid.UUID]float64, len(compound.Components))
	for _, component := range compound.Components {
		factor, err := units.ConversionFactor(component.Unit, compound.Unit, component.Name)
		if err != nil {
			// A component in an incompatible unit cannot contribute;
			// the remaining components still can.
			log.Printf("skipping component %q of compound %q: %v", component.Name, compound.Name, err)
			continue
		}
		componentIDs = append(componentIDs, component.ID)
		factors[component.ID] = factor
	}
	if len(componentIDs) == 0 {
		return nil
	}

	var rows []models.IngredientNutrient
	if err := s.db.Where("nutrient_id IN ?", componentIDs).Find(&rows).Error; err != nil {
		return err
	}

	sums := make(map[uuid.UUID]float64)
	for _, row := range rows {
		sums[row.IngredientID] += row.Amount * factors[row.NutrientID]
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for ingredientID, amount := range sums {
			var existing models.IngredientNutrient
			err := tx.Where("ingredient_id = ? AND nutrient_id = ?", ingredientID, compound.ID).
				First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				record := models.IngredientNutrient{
					IngredientID: ingredientID,
					NutrientID:   compound.ID,
					Amount:       amount,
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				existing.Amount = amount
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
