package dri

import "github.com/food-hub-app/backend/internal/units"

// Nutrient type names. Fatty acids and amino acids present as children
// of Total fat and Protein on the dashboard.
const (
	typeMacronutrient = "Macronutrient"
	typeVitamin       = "Vitamin"
	typeMineral       = "Mineral"
	typeFattyAcid     = "Fatty acid type"
	typeAminoAcid     = "Amino acid"
)

// typeParents maps a nutrient type to the nutrient its members are
// displayed under.
var typeParents = map[string]string{
	typeFattyAcid: "Total fat",
	typeAminoAcid: "Protein",
}

type nutrientSpec struct {
	name   string
	unit   string
	energy float64
	types  []string
}

var nutrients = []nutrientSpec{
	// Macronutrients. Energy densities are the Atwater factors.
	{"Protein", units.Grams, 4, []string{typeMacronutrient}},
	{"Total fat", units.Grams, 9, []string{typeMacronutrient}},
	{"Carbohydrate", units.Grams, 4, []string{typeMacronutrient}},
	{"Fiber", units.Grams, 2, []string{typeMacronutrient}},
	{"Water", units.Grams, 0, []string{typeMacronutrient}},

	{"Saturated fat", units.Grams, 9, []string{typeFattyAcid}},
	{"Monounsaturated fat", units.Grams, 9, []string{typeFattyAcid}},
	{"Polyunsaturated fat", units.Grams, 9, []string{typeFattyAcid}},
	{"Linoleic acid", units.Grams, 9, []string{typeFattyAcid}},
	{"alpha-Linolenic acid", units.Grams, 9, []string{typeFattyAcid}},
	{"Trans fat", units.Grams, 9, []string{typeFattyAcid}},

	{"Vitamin A", units.Micrograms, 0, []string{typeVitamin}},
	{"Vitamin C", units.Milligrams, 0, []string{typeVitamin}},
	{"Vitamin D", units.Micrograms, 0, []string{typeVitamin}},
	{"Vitamin E", units.Milligrams, 0, []string{typeVitamin}},
	{"Vitamin K", units.Micrograms, 0, []string{typeVitamin}},
	{"Thiamin", units.Milligrams, 0, []string{typeVitamin}},
	{"Riboflavin", units.Milligrams, 0, []string{typeVitamin}},
	{"Niacin", units.Milligrams, 0, []string{typeVitamin}},
	{"Vitamin B6", units.Milligrams, 0, []string{typeVitamin}},
	{"Folate", units.Micrograms, 0, []string{typeVitamin}},
	{"Vitamin B12", units.Micrograms, 0, []string{typeVitamin}},
	{"Choline", units.Milligrams, 0, []string{typeVitamin}},

	{"Calcium", units.Milligrams, 0, []string{typeMineral}},
	{"Iron", units.Milligrams, 0, []string{typeMineral}},
	{"Magnesium", units.Milligrams, 0, []string{typeMineral}},
	{"Phosphorus", units.Milligrams, 0, []string{typeMineral}},
	{"Potassium", units.Milligrams, 0, []string{typeMineral}},
	{"Sodium", units.Milligrams, 0, []string{typeMineral}},
	{"Zinc", units.Milligrams, 0, []string{typeMineral}},
	{"Copper", units.Micrograms, 0, []string{typeMineral}},
	{"Selenium", units.Micrograms, 0, []string{typeMineral}},
	{"Iodine", units.Micrograms, 0, []string{typeMineral}},

	{"Histidine", units.Milligrams, 0, []string{typeAminoAcid}},
	{"Isoleucine", units.Milligrams, 0, []string{typeAminoAcid}},
	{"Leucine", units.Milligrams, 0, []string{typeAminoAcid}},
	{"Lysine", units.Milligrams, 0, []string{typeAminoAcid}},
	{"Methionine", units.Milligrams, 0, []string{typeAminoAcid}},
	{"Phenylalanine", units.Milligrams, 0, []string{typeAminoAcid}},
	{"Threonine", units.Milligrams, 0, []string{typeAminoAcid}},
	{"Tryptophan", units.Milligrams, 0, []string{typeAminoAcid}},
	{"Valine", units.Milligrams, 0, []string{typeAminoAcid}},
}

type recommendationSpec struct {
	nutrient string
	driType  string
	sex      string
	ageMin   int
	ageMax   int // 0 means open ended
	min      float64
	max      float64 // 0 means no upper bound
	hasMin   bool
	hasMax   bool
}

func rda(nutrient, sex string, ageMin, ageMax int, amount, limit float64) recommendationSpec {
	return recommendationSpec{
		nutrient: nutrient, driType: "RDA", sex: sex,
		ageMin: ageMin, ageMax: ageMax,
		min: amount, hasMin: true, max: limit, hasMax: limit > 0,
	}
}

func ai(nutrient, sex string, ageMin, ageMax int, amount, limit float64) recommendationSpec {
	return recommendationSpec{
		nutrient: nutrient, driType: "AI", sex: sex,
		ageMin: ageMin, ageMax: ageMax,
		min: amount, hasMin: true, max: limit, hasMax: limit > 0,
	}
}

func amdr(nutrient string, min, max float64) recommendationSpec {
	return recommendationSpec{
		nutrient: nutrient, driType: "AMDR", sex: "B", ageMin: 19,
		min: min, hasMin: true, max: max, hasMax: true,
	}
}

func alap(nutrient string) recommendationSpec {
	return recommendationSpec{nutrient: nutrient, driType: "ALAP", sex: "B"}
}

func perKG(nutrient, sex string, ageMin, ageMax int, amount float64) recommendationSpec {
	return recommendationSpec{
		nutrient: nutrient, driType: "RDA/KG", sex: sex,
		ageMin: ageMin, ageMax: ageMax,
		min: amount, hasMin: true,
	}
}

// Adult reference intakes, per the Dietary Reference Intake reports of
// the National Academies. Amounts are in each nutrient's unit.
var recommendations = []recommendationSpec{
	perKG("Protein", "B", 19, 0, 0.8),
	amdr("Protein", 10, 35),
	rda("Carbohydrate", "B", 19, 0, 130, 0),
	amdr("Carbohydrate", 45, 65),
	amdr("Total fat", 20, 35),
	{nutrient: "Fiber", driType: "AIK", sex: "B", ageMin: 19, min: 14, hasMin: true},
	ai("Water", "M", 19, 0, 3700, 0),
	ai("Water", "F", 19, 0, 2700, 0),

	ai("Linoleic acid", "M", 19, 50, 17, 0),
	ai("Linoleic acid", "F", 19, 50, 12, 0),
	ai("alpha-Linolenic acid", "M", 19, 0, 1.6, 0),
	ai("alpha-Linolenic acid", "F", 19, 0, 1.1, 0),
	alap("Saturated fat"),
	alap("Trans fat"),

	rda("Vitamin A", "M", 19, 0, 900, 3000),
	rda("Vitamin A", "F", 19, 0, 700, 3000),
	rda("Vitamin C", "M", 19, 0, 90, 2000),
	rda("Vitamin C", "F", 19, 0, 75, 2000),
	rda("Vitamin D", "B", 19, 70, 15, 100),
	rda("Vitamin E", "B", 19, 0, 15, 1000),
	ai("Vitamin K", "M", 19, 0, 120, 0),
	ai("Vitamin K", "F", 19, 0, 90, 0),
	rda("Thiamin", "M", 19, 0, 1.2, 0),
	rda("Thiamin", "F", 19, 0, 1.1, 0),
	rda("Riboflavin", "M", 19, 0, 1.3, 0),
	rda("Riboflavin", "F", 19, 0, 1.1, 0),
	rda("Niacin", "M", 19, 0, 16, 35),
	rda("Niacin", "F", 19, 0, 14, 35),
	rda("Vitamin B6", "B", 19, 50, 1.3, 100),
	rda("Folate", "B", 19, 0, 400, 1000),
	rda("Vitamin B12", "B", 19, 0, 2.4, 0),
	ai("Choline", "M", 19, 0, 550, 3500),
	ai("Choline", "F", 19, 0, 425, 3500),

	rda("Calcium", "B", 19, 50, 1000, 2500),
	rda("Iron", "M", 19, 0, 8, 45),
	rda("Iron", "F", 19, 50, 18, 45),
	rda("Iron", "F", 51, 0, 8, 45),
	rda("Magnesium", "M", 19, 30, 400, 0),
	rda("Magnesium", "F", 19, 30, 310, 0),
	rda("Magnesium", "M", 31, 0, 420, 0),
	rda("Magnesium", "F", 31, 0, 320, 0),
	rda("Phosphorus", "B", 19, 0, 700, 4000),
	ai("Potassium", "M", 19, 0, 3400, 0),
	ai("Potassium", "F", 19, 0, 2600, 0),
	ai("Sodium", "B", 19, 0, 1500, 2300),
	rda("Zinc", "M", 19, 0, 11, 40),
	rda("Zinc", "F", 19, 0, 8, 40),
	rda("Copper", "B", 19, 0, 900, 10000),
	rda("Selenium", "B", 19, 0, 55, 400),
	rda("Iodine", "B", 19, 0, 150, 1100),

	// Indispensable amino acids, mg per kg of body weight.
	perKG("Histidine", "B", 19, 0, 14),
	perKG("Isoleucine", "B", 19, 0, 19),
	perKG("Leucine", "B", 19, 0, 42),
	perKG("Lysine", "B", 19, 0, 38),
	perKG("Methionine", "B", 19, 0, 19),
	perKG("Phenylalanine", "B", 19, 0, 33),
	perKG("Threonine", "B", 19, 0, 20),
	perKG("Tryptophan", "B", 19, 0, 5),
	perKG("Valine", "B", 19, 0, 24),
}
