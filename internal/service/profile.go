package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/food-hub-app/backend/internal/models"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidActivity = errors.New("invalid activity level")
	ErrInvalidSex      = errors.New("invalid sex")
)

// currentWeightWindow is the span of measurements, counted back from the
// most recent one, averaged into the profile's current weight.
const currentWeightWindow = 7 * 24 * time.Hour

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) GetByUserID(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Preload("TrackedNutrients").Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update stores the profile's demographics and recalculates the energy
// requirement from them.
func (s *ProfileService) Update(userID uuid.UUID, age int, height, weight float64, activityLevel, sex string) (*models.Profile, error) {
	switch activityLevel {
	case models.Sedentary, models.LowActive, models.Active, models.VeryActive:
	default:
		return nil, ErrInvalidActivity
	}
	switch sex {
	case models.SexFemale, models.SexMale:
	default:
		return nil, ErrInvalidSex
	}

	profile, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	profile.Age = age
	profile.Height = int(height)
	profile.Weight = int(weight)
	profile.ActivityLevel = activityLevel
	profile.Sex = sex
	profile.EnergyRequirement = profile.CalculateEnergy()

	if err := s.db.Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// AddWeightMeasurement records a measurement for a day, replacing any
// previous reading for that day, then refreshes the profile's weight
// and energy requirement.
func (s *ProfileService) AddWeightMeasurement(profileID uuid.UUID, date time.Time, valueKg float64) (*models.WeightMeasurement, error) {
	date = models.NormalizeDate(date)

	var measurement models.WeightMeasurement
	err := s.db.Where("profile_id = ? AND date = ?", profileID, date).First(&measurement).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		measurement = models.WeightMeasurement{ProfileID: profileID, Date: date, Value: valueKg}
		if err := s.db.Create(&measurement).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		measurement.Value = valueKg
		if err := s.db.Save(&measurement).Error; err != nil {
			return nil, err
		}
	}

	if err := s.refreshProfileWeight(profileID); err != nil {
		return nil, err
	}
	return &measurement, nil
}

func (s *ProfileService) DeleteWeightMeasurement(profileID, measurementID uuid.UUID) error {
	res := s.db.Where("id = ? AND profile_id = ?", measurementID, profileID).Delete(&models.WeightMeasurement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return s.refreshProfileWeight(profileID)
}

func (s *ProfileService) ListWeightMeasurements(profileID uuid.UUID) ([]models.WeightMeasurement, error) {
	var measurements []models.WeightMeasurement
	err := s.db.Where("profile_id = ?", profileID).Order("date desc").Find(&measurements).Error
	return measurements, err
}

// CurrentWeight averages the measurements of the week leading up to the
// most recent one. A single outlier reading then moves the profile's
// weight less than taking the last value would.
func (s *ProfileService) CurrentWeight(profileID uuid.UUID) (float64, error) {
	var latest models.WeightMeasurement
	err := s.db.Where("profile_id = ?", profileID).Order("date desc").First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	windowStart := latest.Date.Add(-currentWeightWindow)
	var measurements []models.WeightMeasurement
	if err := s.db.Where("profile_id = ? AND date >= ? AND date <= ?", profileID, windowStart, latest.Date).
		Find(&measurements).Error; err != nil {
		return 0, err
	}

	var sum float64
	for _, m := range measurements {
		sum += m.Value
	}
	return sum / float64(len(measurements)), nil
}

func (s *ProfileService) refreshProfileWeight(profileID uuid.UUID) error {
	weight, err := s.CurrentWeight(profileID)
	if err != nil {
		return err
	}
	if weight == 0 {
		return nil
	}

	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", profileID).Error; err != nil {
		return err
	}
	profile.Weight = int(weight)
	profile.EnergyRequirement = profile.CalculateEnergy()
	return s.db.Save(&profile).Error
}

// DatedValue is a chart point: a day label with the value for that day.
type DatedValue struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// chartLabel formats dates the way the dashboard charts expect them.
func chartLabel(t time.Time) string {
	return t.Format("Jan 02")
}

// LastMonthWeights returns one chart point per calendar day of the last
// month. Days without a measurement between two measured days carry a
// nil value; the chart interpolates over them.
func (s *ProfileService) LastMonthWeights(profileID uuid.UUID, now time.Time) ([]DatedValue, error) {
	end := models.NormalizeDate(now)
	start := end.AddDate(0, -1, 0)

	var measurements []models.WeightMeasurement
	if err := s.db.Where("profile_id = ? AND date >= ? AND date <= ?", profileID, start, end).
		Order("date").Find(&measurements).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]float64, len(measurements))
	for _, m := range measurements {
		byDay[models.NormalizeDate(m.Date).Format("2006-01-02")] = m.Value
	}

	points := make([]DatedValue, 0, 32)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		point := DatedValue{Date: chartLabel(day)}
		if v, ok := byDay[day.Format("2006-01-02")]; ok {
			value := v
			point.Value = &value
		}
		points = append(points, point)
	}
	return points, nil
}

// SetTrackedNutrients replaces the set of nutrients pinned to the
// profile's dashboard.
func (s *ProfileService) SetTrackedNutrients(profileID uuid.UUID, nutrientIDs []uuid.UUID) error {
	var nutrients []models.Nutrient
	if len(nutrientIDs) > 0 {
		if err := s.db.Where("id IN ?", nutrientIDs).Find(&nutrients).Error; err != nil {
			return err
		}
		if len(nutrients) != len(nutrientIDs) {
			return gorm.ErrRecordNotFound
		}
	}

	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", profileID).Error; err != nil {
		return err
	}
	return s.db.Model(&profile).Association("TrackedNutrients").Replace(nutrients)
}

func (s *ProfileService) TrackedNutrients(profileID uuid.UUID) ([]models.Nutrient, error) {
	var profile models.Profile
	if err := s.db.Preload("TrackedNutrients").First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, err
	}
	return profile.TrackedNutrients, nil
}
