package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func adultProfile() *Profile {
	return &Profile{Age: 30, Weight: 70, Sex: SexMale, EnergyRequirement: 2500}
}

func TestRecommendationMatches(t *testing.T) {
	profile := adultProfile()

	cases := []struct {
		name string
		rec  IntakeRecommendation
		want bool
	}{
		{"in range", IntakeRecommendation{Sex: SexMale, AgeMin: 19, AgeMax: i(50)}, true},
		{"open ended", IntakeRecommendation{Sex: SexMale, AgeMin: 19}, true},
		{"both sexes", IntakeRecommendation{Sex: SexBoth, AgeMin: 19}, true},
		{"too young", IntakeRecommendation{Sex: SexMale, AgeMin: 51}, false},
		{"too old", IntakeRecommendation{Sex: SexMale, AgeMin: 9, AgeMax: i(18)}, false},
		{"wrong sex", IntakeRecommendation{Sex: SexFemale, AgeMin: 19}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.rec.Matches(profile))
		})
	}
}

func TestProfileAmountPlain(t *testing.T) {
	rec := IntakeRecommendation{DRIType: DRITypeRDA, AmountMin: f(90)}
	got := rec.ProfileAmountMin(adultProfile())
	assert.NotNil(t, got)
	assert.InDelta(t, 90, *got, 1e-9)
}

func TestProfileAmountPerKilogram(t *testing.T) {
	rec := IntakeRecommendation{DRIType: DRITypeRDAKG, AmountMin: f(0.8)}
	got := rec.ProfileAmountMin(adultProfile())
	assert.InDelta(t, 56, *got, 1e-9)
}

func TestProfileAmountPerEnergy(t *testing.T) {
	rec := IntakeRecommendation{DRIType: DRITypeAIK, AmountMin: f(14)}
	got := rec.ProfileAmountMin(adultProfile())
	assert.InDelta(t, 35, *got, 1e-9)
}

func TestProfileAmountAMDR(t *testing.T) {
	rec := IntakeRecommendation{
		DRIType:   DRITypeAMDR,
		AmountMin: f(10),
		AmountMax: f(35),
		Nutrient:  Nutrient{Name: "Protein", Energy: 4},
	}
	profile := adultProfile()

	min := rec.ProfileAmountMin(profile)
	max := rec.ProfileAmountMax(profile)
	// 10% of 2500 kcal at 4 kcal/g
	assert.InDelta(t, 62.5, *min, 1e-9)
	assert.InDelta(t, 218.75, *max, 1e-9)
}

func TestProfileAmountAMDRWithoutEnergyDensity(t *testing.T) {
	rec := IntakeRecommendation{
		DRIType:   DRITypeAMDR,
		AmountMin: f(10),
		Nutrient:  Nutrient{Name: "Broken"},
	}
	got := rec.ProfileAmountMin(adultProfile())
	assert.NotNil(t, got)
	assert.Zero(t, *got)
}

func TestDisplayedAmount(t *testing.T) {
	profile := adultProfile()

	alap := IntakeRecommendation{DRIType: DRITypeALAP, AmountMin: f(1), AmountMax: f(2)}
	assert.Nil(t, alap.DisplayedAmount(profile))

	ul := IntakeRecommendation{DRIType: DRITypeUL, AmountMax: f(40)}
	assert.InDelta(t, 40, *ul.DisplayedAmount(profile), 1e-9)

	rda := IntakeRecommendation{DRIType: DRITypeRDA, AmountMin: f(90), AmountMax: f(2000)}
	assert.InDelta(t, 90, *rda.DisplayedAmount(profile), 1e-9)
}

func TestRecommendationProgress(t *testing.T) {
	profile := adultProfile()
	rec := IntakeRecommendation{DRIType: DRITypeRDA, AmountMin: f(90)}

	assert.Equal(t, 50, *rec.Progress(profile, f(45)))
	assert.Equal(t, 100, *rec.Progress(profile, f(90)))
	assert.Equal(t, 100, *rec.Progress(profile, f(500)))
	assert.Nil(t, rec.Progress(profile, nil))

	noTarget := IntakeRecommendation{DRIType: DRITypeRDA}
	assert.Nil(t, noTarget.Progress(profile, f(45)))
}

func TestOverLimit(t *testing.T) {
	profile := adultProfile()
	rec := IntakeRecommendation{DRIType: DRITypeRDA, AmountMin: f(90), AmountMax: f(2000)}

	assert.False(t, rec.OverLimit(profile, f(1999)))
	assert.True(t, rec.OverLimit(profile, f(2000)))
	assert.True(t, rec.OverLimit(profile, f(2500)))
	assert.False(t, rec.OverLimit(profile, nil))

	noLimit := IntakeRecommendation{DRIType: DRITypeRDA, AmountMin: f(90)}
	assert.False(t, noLimit.OverLimit(profile, f(1e9)))
}
