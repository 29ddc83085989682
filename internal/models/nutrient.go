package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/food-hub-app/backend/internal/units"
)

// Nutrient represents a nutrient contained in ingredients.
//
// Amount values of related IngredientNutrient records are stored in the
// nutrient's unit; changing the unit requires rescaling those amounts
// (see service.NutrientService.UpdateUnit).
type Nutrient struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:32;uniqueIndex;not null" json:"name"`
	Unit      string    `gorm:"size:10;not null" json:"unit"`
	// Calories provided by one unit of the nutrient.
	Energy float64 `gorm:"not null;default:0" json:"energy"`

	Types      []NutrientType `gorm:"many2many:nutrient_type_assignments" json:"types,omitempty"`
	Components []Nutrient     `gorm:"many2many:nutrient_components;joinForeignKey:TargetID;joinReferences:ComponentID" json:"components,omitempty"`

	// ChildType is set when the nutrient is the parent of a nutrient
	// type (e.g. Total fat for the Fatty acid type).
	ChildType *NutrientType `gorm:"foreignKey:ParentNutrientID" json:"child_type,omitempty"`

	Recommendations []IntakeRecommendation `json:"recommendations,omitempty"`
}

func (n *Nutrient) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (n *Nutrient) String() string {
	return fmt.Sprintf("%s (%s)", n.Name, units.PrettyUnit(n.Unit))
}

// PrettyUnit is the display symbol of the nutrient's unit (e.g. µg).
func (n *Nutrient) PrettyUnit() string {
	return units.PrettyUnit(n.Unit)
}

// NutrientType classifies nutrients, e.g. Amino acid or Macronutrient.
// A type may point at a parent nutrient; nutrients of such a type are
// presented as children of the parent (Fatty acid under Total fat).
// Hierarchies deeper than one level are rejected on save.
type NutrientType struct {
	ID               uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	Name             string     `gorm:"size:32;uniqueIndex;not null" json:"name"`
	DisplayedName    string     `gorm:"size:32" json:"displayed_name"`
	ParentNutrientID *uuid.UUID `gorm:"type:varchar(36);uniqueIndex" json:"parent_nutrient_id"`
}

func (t *NutrientType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *NutrientType) BeforeSave(tx *gorm.DB) error {
	if t.ParentNutrientID == nil {
		return nil
	}
	// The parent nutrient must sit at the top of the tree. If it belongs
	// to a parented type itself, this type would nest two levels deep.
	var count int64
	err := tx.Model(&NutrientType{}).
		Joins("JOIN nutrient_type_assignments a ON a.nutrient_type_id = nutrient_types.id").
		Where("a.nutrient_id = ? AND nutrient_types.parent_nutrient_id IS NOT NULL", *t.ParentNutrientID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrNestedNutrientType
	}
	return nil
}

// NutrientComponent joins a compound nutrient with one of its component
// nutrients. A compound's IngredientNutrient amounts are derived from
// its components.
type NutrientComponent struct {
	TargetID    uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"target_id"`
	ComponentID uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"component_id"`

	Target    Nutrient `gorm:"foreignKey:TargetID" json:"-"`
	Component Nutrient `gorm:"foreignKey:ComponentID" json:"-"`
}

func (NutrientComponent) TableName() string {
	return "nutrient_components"
}

func (c *NutrientComponent) BeforeCreate(tx *gorm.DB) error {
	if c.TargetID == c.ComponentID {
		return ErrCompoundSelfReference
	}
	return nil
}
