package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversionFactorSameUnit(t *testing.T) {
	f, err := ConversionFactor(Grams, Grams, "")
	assert.NoError(t, err)
	assert.Equal(t, 1.0, f)
}

func TestConversionFactorMassUnits(t *testing.T) {
	f, err := ConversionFactor(Grams, Milligrams, "")
	assert.NoError(t, err)
	assert.InDelta(t, 1000.0, f, 1e-9)

	f, err = ConversionFactor(Micrograms, Milligrams, "")
	assert.NoError(t, err)
	assert.InDelta(t, 0.001, f, 1e-9)
}

func TestConversionFactorIU(t *testing.T) {
	f, err := ConversionFactor(IU, Micrograms, "Vitamin D")
	assert.NoError(t, err)
	assert.InDelta(t, 0.025, f, 1e-9)

	_, err = ConversionFactor(IU, Micrograms, "Vitamin C")
	assert.Error(t, err)
}

func TestConversionFactorCalories(t *testing.T) {
	_, err := ConversionFactor(Calories, Grams, "Protein")
	assert.Error(t, err)
}

func TestPoundsToKilograms(t *testing.T) {
	assert.InDelta(t, 45.359237, PoundsToKilograms(100), 1e-6)
}

func TestPrettyUnit(t *testing.T) {
	assert.Equal(t, "µg", PrettyUnit(Micrograms))
	assert.Equal(t, "IU", PrettyUnit(IU))
}
