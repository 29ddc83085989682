package models

import (
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dietary Reference Intake types.
//
// The amount fields are used differently depending on the type:
//   - AMDR: AmountMin and AmountMax are the lower and upper limits of
//     the range, in percent of the energy requirement.
//   - AI, RDA, AIK, AI/KG, RDA/KG: AmountMin is the AI or RDA value,
//     AmountMax is the UL value if one exists.
//   - AIK: uses only AmountMin (amount per 1000 kcal).
//   - UL: uses only AmountMax.
//   - ALAP: ignores both.
const (
	DRITypeAI    = "AI"
	DRITypeAIK   = "AIK"
	DRITypeAIKG  = "AI/KG"
	DRITypeALAP  = "ALAP"
	DRITypeAMDR  = "AMDR"
	DRITypeRDA   = "RDA"
	DRITypeRDAKG = "RDA/KG"
	DRITypeUL    = "UL"
)

// IntakeRecommendation represents a dietary intake recommendation for a
// selected demographic.
type IntakeRecommendation struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	NutrientID uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_recommendation_demographic" json:"nutrient_id"`

	DRIType string `gorm:"size:6;not null;uniqueIndex:idx_recommendation_demographic" json:"dri_type"`
	Sex     string `gorm:"size:1;not null;uniqueIndex:idx_recommendation_demographic" json:"sex"`
	AgeMin  int    `gorm:"not null;uniqueIndex:idx_recommendation_demographic" json:"age_min"`
	AgeMax  *int   `gorm:"uniqueIndex:idx_recommendation_demographic" json:"age_max"`

	AmountMin *float64 `json:"amount_min"`
	AmountMax *float64 `json:"amount_max"`

	Nutrient Nutrient `json:"-"`
}

func (r *IntakeRecommendation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *IntakeRecommendation) String() string {
	ageMax := ""
	if r.AgeMax != nil {
		ageMax = fmt.Sprint(*r.AgeMax)
	}
	return fmt.Sprintf("%s : %d - %s [%s] (%s)", r.Nutrient.Name, r.AgeMin, ageMax, r.Sex, r.DRIType)
}

// Matches reports whether the recommendation applies to the profile's
// demographic.
func (r *IntakeRecommendation) Matches(profile *Profile) bool {
	if r.AgeMin > profile.Age {
		return false
	}
	if r.AgeMax != nil && *r.AgeMax < profile.Age {
		return false
	}
	return r.Sex == profile.Sex || r.Sex == SexBoth
}

// ProfileAmountMin is AmountMin adjusted for the profile's attributes.
//
// AMDR and AIK recommendations use the profile's energy requirement,
// AI/KG and RDA/KG use the profile's weight. AMDR additionally needs
// the recommendation's Nutrient (with its energy density) loaded.
func (r *IntakeRecommendation) ProfileAmountMin(profile *Profile) *float64 {
	return r.profileAmount(r.AmountMin, profile)
}

// ProfileAmountMax is AmountMax adjusted for the profile's attributes.
func (r *IntakeRecommendation) ProfileAmountMax(profile *Profile) *float64 {
	return r.profileAmount(r.AmountMax, profile)
}

func (r *IntakeRecommendation) profileAmount(amount *float64, profile *Profile) *float64 {
	if amount == nil {
		return nil
	}

	var ret float64
	switch r.DRIType {
	case DRITypeAIK:
		// AIK is the Adequate Intake per 1000 kcal.
		ret = *amount * float64(profile.EnergyRequirement) / 1000
	case DRITypeAIKG, DRITypeRDAKG:
		ret = *amount * float64(profile.Weight)
	case DRITypeAMDR:
		// AMDR values are percentages of the energy requirement, so
		// the amount depends on the energy provided by the nutrient.
		if r.Nutrient.Energy == 0 {
			log.Printf("no energy density for nutrient %q with an AMDR recommendation", r.Nutrient.Name)
			ret = 0
		} else {
			ret = *amount * float64(profile.EnergyRequirement) / (r.Nutrient.Energy * 100.0)
		}
	default:
		ret = *amount
	}

	return &ret
}

// DisplayedAmount is the single amount presented for the recommendation.
// UL recommendations display the upper limit, ALAP displays nothing.
func (r *IntakeRecommendation) DisplayedAmount(profile *Profile) *float64 {
	switch r.DRIType {
	case DRITypeALAP:
		return nil
	case DRITypeUL:
		return r.ProfileAmountMax(profile)
	default:
		return r.ProfileAmountMin(profile)
	}
}

// Progress is the percent ratio of the intake to the recommended
// amount, capped at 100. Returns nil when the target is missing or
// zero.
func (r *IntakeRecommendation) Progress(profile *Profile, intake *float64) *int {
	var target *float64
	if r.DRIType == DRITypeUL {
		target = r.ProfileAmountMax(profile)
	} else {
		target = r.ProfileAmountMin(profile)
	}

	if intake == nil || target == nil || *target == 0 {
		return nil
	}

	progress := int(math.Round(100 * *intake / *target))
	if progress > 100 {
		progress = 100
	}
	return &progress
}

// OverLimit reports whether the intake reaches the recommended upper
// limit. Returns false when no intake was provided.
func (r *IntakeRecommendation) OverLimit(profile *Profile, intake *float64) bool {
	if intake == nil {
		return false
	}
	limit := r.ProfileAmountMax(profile)
	if limit == nil || *limit == 0 {
		return false
	}
	return *intake >= *limit
}
