package models

import "errors"

var (
	// ErrCompoundSelfReference is returned when a nutrient is added as
	// a component of itself.
	ErrCompoundSelfReference = errors.New("a compound nutrient cannot be its own component")

	// ErrNestedNutrientType is returned when a nutrient type's parent
	// nutrient itself belongs to a parented type, which would nest the
	// hierarchy more than one level deep.
	ErrNestedNutrientType = errors.New("nutrient type hierarchies cannot nest more than one level")

	// ErrOwnerMismatch is returned when a meal and a recipe added to it
	// belong to different profiles.
	ErrOwnerMismatch = errors.New("the meal and recipe owners must be the same")
)
