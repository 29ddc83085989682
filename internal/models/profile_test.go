package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateEnergyAdultMale(t *testing.T) {
	p := &Profile{Age: 30, Height: 178, Weight: 70, ActivityLevel: Sedentary, Sex: SexMale}
	// 662 - 9.53*30 + 1.0*(15.91*70 + 539.6*1.78)
	assert.Equal(t, 2450, p.CalculateEnergy())
}

func TestCalculateEnergyAdultFemale(t *testing.T) {
	p := &Profile{Age: 25, Height: 165, Weight: 60, ActivityLevel: Active, Sex: SexFemale}
	// 354 - 6.91*25 + 1.27*(9.36*60 + 726*1.65)
	assert.Equal(t, 2416, p.CalculateEnergy())
}

func TestCalculateEnergyActivityRaisesRequirement(t *testing.T) {
	base := &Profile{Age: 40, Height: 180, Weight: 80, ActivityLevel: Sedentary, Sex: SexMale}
	active := &Profile{Age: 40, Height: 180, Weight: 80, ActivityLevel: VeryActive, Sex: SexMale}
	assert.Greater(t, active.CalculateEnergy(), base.CalculateEnergy())
}

func TestCalculateEnergyInfant(t *testing.T) {
	p := &Profile{Age: 0, Height: 60, Weight: 6, ActivityLevel: Sedentary, Sex: SexFemale}
	// 89*6 - 100 + 22
	assert.Equal(t, 456, p.CalculateEnergy())

	p.Age = 2
	p.Weight = 12
	// 89*12 - 100 + 20
	assert.Equal(t, 988, p.CalculateEnergy())
}

func TestCalculateEnergyChild(t *testing.T) {
	p := &Profile{Age: 10, Height: 140, Weight: 35, ActivityLevel: LowActive, Sex: SexMale}
	// 88.5 - 61.9*10 + 1.13*(26.7*35 + 903*1.4) + 25
	assert.Equal(t, 1979, p.CalculateEnergy())
}

func TestEnergyProgress(t *testing.T) {
	p := &Profile{EnergyRequirement: 2000}
	assert.Equal(t, 50, p.EnergyProgress(1000))
	assert.Equal(t, 100, p.EnergyProgress(2000))
	assert.Equal(t, 100, p.EnergyProgress(5000))
	assert.Equal(t, 0, (&Profile{}).EnergyProgress(1000))
}
