package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/food-hub-app/backend/internal/models"
)

// DashboardService assembles the nutrition overview: average intakes
// against the profile's recommendations, the tracked nutrient panel and
// warnings about sustained deficient or excessive intakes.
type DashboardService struct {
	db       *gorm.DB
	intakes  *IntakeService
	profiles *ProfileService
}

func NewDashboardService(db *gorm.DB, intakes *IntakeService, profiles *ProfileService) *DashboardService {
	return &DashboardService{db: db, intakes: intakes, profiles: profiles}
}

// RecommendationsFor returns the recommendations applying to the
// profile's demographic, at most one per (nutrient, DRI type).
func (s *DashboardService) RecommendationsFor(profile *models.Profile) ([]models.IntakeRecommendation, error) {
	var recommendations []models.IntakeRecommendation
	if err := s.db.Preload("Nutrient").Find(&recommendations).Error; err != nil {
		return nil, err
	}

	matched := recommendations[:0]
	for _, r := range recommendations {
		if r.Matches(profile) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// nutrientRecommendation picks the recommendation shown for a nutrient:
// the intake target when one exists, the upper limit otherwise.
func nutrientRecommendation(recs []models.IntakeRecommendation, nutrientID uuid.UUID) *models.IntakeRecommendation {
	var limit *models.IntakeRecommendation
	for i := range recs {
		if recs[i].NutrientID != nutrientID {
			continue
		}
		switch recs[i].DRIType {
		case models.DRITypeUL, models.DRITypeALAP:
			if limit == nil {
				limit = &recs[i]
			}
		default:
			return &recs[i]
		}
	}
	return limit
}

// NutrientStatus is one row of the dashboard: a nutrient with the
// average daily intake and its position against the recommendation.
type NutrientStatus struct {
	Nutrient  models.Nutrient `json:"nutrient"`
	Intake    float64         `json:"intake"`
	Target    *float64        `json:"target"`
	Limit     *float64        `json:"limit"`
	DRIType   string          `json:"dri_type,omitempty"`
	Progress  *int            `json:"progress"`
	OverLimit bool            `json:"over_limit"`
}

// MalnutritionWarning flags a sustained intake outside the recommended
// bounds. Magnitude is the relative distance from the crossed bound.
type MalnutritionWarning struct {
	Nutrient  models.Nutrient `json:"nutrient"`
	Intake    float64         `json:"intake"`
	Bound     float64         `json:"bound"`
	Deficient bool            `json:"deficient"`
	Magnitude float64         `json:"magnitude"`
}

// Dashboard is the aggregated nutrition overview for a profile.
type Dashboard struct {
	EnergyRequirement int                   `json:"energy_requirement"`
	CalorieIntake     float64               `json:"calorie_intake"`
	EnergyProgress    int                   `json:"energy_progress"`
	CurrentWeight     float64               `json:"current_weight"`
	DaysLogged        int                   `json:"days_logged"`
	Tracked           []NutrientStatus      `json:"tracked"`
	Calories          []CalorieContribution `json:"calories"`
	Warnings          []MalnutritionWarning `json:"warnings"`
}

// Assemble builds the dashboard from the last month of logged meals.
func (s *DashboardService) Assemble(profile *models.Profile, now time.Time) (*Dashboard, error) {
	end := models.NormalizeDate(now)
	start := end.AddDate(0, -1, 0)

	intakes, days, err := s.intakes.AverageIntakes(profile.ID, start, end)
	if err != nil {
		return nil, err
	}

	recommendations, err := s.RecommendationsFor(profile)
	if err != nil {
		return nil, err
	}

	contributions, totalCalories, err := s.intakes.CalorieBreakdown(intakes)
	if err != nil {
		return nil, err
	}

	weight, err := s.profiles.CurrentWeight(profile.ID)
	if err != nil {
		return nil, err
	}

	tracked := make([]NutrientStatus, 0, len(profile.TrackedNutrients))
	for _, nutrient := range profile.TrackedNutrients {
		tracked = append(tracked, s.nutrientStatus(profile, nutrient, recommendations, intakes))
	}

	return &Dashboard{
		EnergyRequirement: profile.EnergyRequirement,
		CalorieIntake:     totalCalories,
		EnergyProgress:    profile.EnergyProgress(totalCalories),
		CurrentWeight:     weight,
		DaysLogged:        days,
		Tracked:           tracked,
		Calories:          contributions,
		Warnings:          s.warnings(profile, recommendations, intakes, days),
	}, nil
}

func (s *DashboardService) nutrientStatus(profile *models.Profile, nutrient models.Nutrient, recs []models.IntakeRecommendation, intakes map[uuid.UUID]float64) NutrientStatus {
	status := NutrientStatus{
		Nutrient: nutrient,
		Intake:   intakes[nutrient.ID],
	}

	rec := nutrientRecommendation(recs, nutrient.ID)
	if rec == nil {
		return status
	}

	intake := status.Intake
	status.DRIType = rec.DRIType
	status.Target = rec.DisplayedAmount(profile)
	status.Limit = rec.ProfileAmountMax(profile)
	status.Progress = rec.Progress(profile, &intake)
	status.OverLimit = rec.OverLimit(profile, &intake)
	return status
}

// warnings compares average intakes with every matched recommendation
// and reports the bounds crossed, worst first. An empty log produces no
// warnings.
func (s *DashboardService) warnings(profile *models.Profile, recs []models.IntakeRecommendation, intakes map[uuid.UUID]float64, days int) []MalnutritionWarning {
	if days == 0 {
		return nil
	}

	warnings := make([]MalnutritionWarning, 0)
	for _, rec := range recs {
		// No intake data for the nutrient says nothing about the diet.
		intake, consumed := intakes[rec.NutrientID]
		if !consumed {
			continue
		}

		if min := rec.ProfileAmountMin(profile); rec.DRIType != models.DRITypeUL && min != nil && *min > 0 && intake < *min {
			warnings = append(warnings, MalnutritionWarning{
				Nutrient:  rec.Nutrient,
				Intake:    intake,
				Bound:     *min,
				Deficient: true,
				Magnitude: math.Abs(intake-*min) / *min,
			})
			continue
		}

		if max := rec.ProfileAmountMax(profile); max != nil && *max > 0 && intake > *max {
			warnings = append(warnings, MalnutritionWarning{
				Nutrient:  rec.Nutrient,
				Intake:    intake,
				Bound:     *max,
				Magnitude: math.Abs(intake-*max) / *max,
			})
		}
	}

	sort.Slice(warnings, func(i, j int) bool {
		return warnings[i].Magnitude > warnings[j].Magnitude
	})
	return warnings
}
