// Package units holds nutrient measurement units and conversions.
package units

import "fmt"

// Units used for nutrient amounts.
const (
	Calories   = "KCAL"
	Grams      = "G"
	Milligrams = "MG"
	Micrograms = "UG"
	IU         = "IU"
)

// Pretty maps unit constants to their display symbols.
var Pretty = map[string]string{
	Calories:   "kcal",
	Grams:      "g",
	Milligrams: "mg",
	Micrograms: "µg",
}

// 1 of the unit == <value> grams.
var gramFactors = map[string]float64{
	Micrograms: 1e-6,
	Milligrams: 1e-3,
	Grams:      1,
}

// IU conversions are substance specific (µg per IU).
var iuGramFactors = map[string]float64{
	"Vitamin A": 0.3 * 1e-6,
	"Vitamin D": 0.025 * 1e-6,
}

// PrettyUnit returns the display symbol for a unit, falling back to the
// unit itself.
func PrettyUnit(unit string) string {
	if p, ok := Pretty[unit]; ok {
		return p
	}
	return unit
}

// ConversionFactor returns the factor needed to convert an amount in
// `from` units to `to` units. The nutrient name is required only for IU
// conversions, which depend on the substance.
func ConversionFactor(from, to, nutrientName string) (float64, error) {
	if from == to {
		return 1.0, nil
	}

	f2g, err := toGrams(from, nutrientName)
	if err != nil {
		return 0, err
	}
	g2t, err := toGrams(to, nutrientName)
	if err != nil {
		return 0, err
	}

	return f2g / g2t, nil
}

func toGrams(unit, nutrientName string) (float64, error) {
	if unit == IU {
		f, ok := iuGramFactors[nutrientName]
		if !ok {
			return 0, fmt.Errorf("no IU conversion known for nutrient %q", nutrientName)
		}
		return f, nil
	}
	f, ok := gramFactors[unit]
	if !ok {
		return 0, fmt.Errorf("unit %q cannot be converted to a mass", unit)
	}
	return f, nil
}

// PoundsToKilograms converts a weight in pounds to kilograms.
func PoundsToKilograms(pounds float64) float64 {
	return pounds * 0.45359237
}
