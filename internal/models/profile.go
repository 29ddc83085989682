package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity level constants.
const (
	Sedentary  = "S"
	LowActive  = "LA"
	Active     = "A"
	VeryActive = "VA"
)

// Sex constants. SexBoth is used only by recommendations.
const (
	SexBoth   = "B"
	SexFemale = "F"
	SexMale   = "M"
)

// Estimated Energy Requirement equation constants and coefficients,
// selected by age group and sex. The physical activity coefficient
// additionally depends on the activity level.
type eerCoefficients struct {
	startConst float64
	ageC       float64
	weightC    float64
	heightC    float64
	paCoeffs   map[string]float64
}

var eerCoeffs = map[string]eerCoefficients{
	"infant": {
		weightC:  89.0,
		paCoeffs: map[string]float64{Sedentary: 1.0, LowActive: 1.0, Active: 1.0, VeryActive: 1.0},
	},
	"non-adult_M": {
		startConst: 88.5,
		ageC:       61.9,
		weightC:    26.7,
		heightC:    903,
		paCoeffs:   map[string]float64{Sedentary: 1.0, LowActive: 1.13, Active: 1.26, VeryActive: 1.42},
	},
	"non-adult_F": {
		startConst: 135.3,
		ageC:       30.8,
		weightC:    10.0,
		heightC:    934,
		paCoeffs:   map[string]float64{Sedentary: 1.0, LowActive: 1.16, Active: 1.31, VeryActive: 1.56},
	},
	"adult_M": {
		startConst: 662.0,
		ageC:       9.53,
		weightC:    15.91,
		heightC:    539.6,
		paCoeffs:   map[string]float64{Sedentary: 1.0, LowActive: 1.11, Active: 1.25, VeryActive: 1.48},
	},
	"adult_F": {
		startConst: 354,
		ageC:       6.91,
		weightC:    9.36,
		heightC:    726,
		paCoeffs:   map[string]float64{Sedentary: 1.0, LowActive: 1.12, Active: 1.27, VeryActive: 1.45},
	},
}

// Profile represents user information used for calculating intake
// recommendations.
type Profile struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Age    int `gorm:"not null" json:"age"`
	Height int `gorm:"not null" json:"height"` // in centimeters
	Weight int `gorm:"not null" json:"weight"` // in kilograms

	ActivityLevel     string `gorm:"size:2;not null" json:"activity_level"`
	Sex               string `gorm:"size:1;not null" json:"sex"`
	EnergyRequirement int    `gorm:"not null" json:"energy_requirement"` // kcal/day

	TrackedNutrients []Nutrient `gorm:"many2many:tracked_nutrients" json:"tracked_nutrients,omitempty"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CalculateEnergy computes the Estimated Energy Requirement for the
// profile, rounded to the closest integer, in kcal/day.
func (p *Profile) CalculateEnergy() int {
	var coeffs eerCoefficients
	var endConst float64

	switch {
	case p.Age < 3:
		coeffs = eerCoeffs["infant"]
		// In ages [0, 3) the end constant changes with age.
		if p.Age < 1 {
			endConst = -100 + 22
		} else {
			endConst = -100 + 20
		}
	case p.Age < 19:
		if p.Sex == SexMale {
			coeffs = eerCoeffs["non-adult_M"]
		} else {
			coeffs = eerCoeffs["non-adult_F"]
		}
		if p.Age < 9 {
			endConst = 20
		} else {
			endConst = 25
		}
	default:
		if p.Sex == SexMale {
			coeffs = eerCoeffs["adult_M"]
		} else {
			coeffs = eerCoeffs["adult_F"]
		}
	}

	pa := coeffs.paCoeffs[p.ActivityLevel]

	result := coeffs.startConst -
		coeffs.ageC*float64(p.Age) +
		pa*(coeffs.weightC*float64(p.Weight)+coeffs.heightC*float64(p.Height)/100) +
		endConst

	return int(math.Round(result))
}

// EnergyProgress is the percent ratio of a caloric intake to the
// profile's energy requirement, capped at 100.
func (p *Profile) EnergyProgress(intake float64) int {
	if p.EnergyRequirement == 0 {
		return 0
	}
	progress := int(math.Round(100 * intake / float64(p.EnergyRequirement)))
	if progress > 100 {
		return 100
	}
	return progress
}

// WeightMeasurement represents a weight measurement of a person, in
// kilograms.
type WeightMeasurement struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"profile_id"`
	Value     float64   `gorm:"not null" json:"value"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
}

func (m *WeightMeasurement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TrackedNutrient joins a profile with a nutrient it tracks on the
// dashboard.
type TrackedNutrient struct {
	ProfileID  uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"profile_id"`
	NutrientID uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"nutrient_id"`

	Nutrient Nutrient `json:"nutrient,omitempty"`
}

func (TrackedNutrient) TableName() string {
	return "tracked_nutrients"
}
