package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/food-hub-app/backend/internal/models"
)

// IntakeService aggregates nutrient intakes out of logged meals.
type IntakeService struct {
	db *gorm.DB
}

func NewIntakeService(db *gorm.DB) *IntakeService {
	return &IntakeService{db: db}
}

// MealIntakes maps nutrient ids to the amount consumed in a meal, in
// each nutrient's unit. The meal's ingredients and recipes must be
// loaded down to the ingredient nutrient amounts.
//
// Ingredient amounts are per gram, so an ingredient line contributes
// line grams times the per-gram amount. A recipe line is scaled by the
// consumed fraction of the prepared recipe's weight.
func MealIntakes(meal *models.Meal) map[uuid.UUID]float64 {
	intakes := make(map[uuid.UUID]float64)

	for _, mi := range meal.Ingredients {
		for _, in := range mi.Ingredient.Nutrients {
			intakes[in.NutrientID] += mi.Amount * in.Amount
		}
	}

	for _, mr := range meal.Recipes {
		weight := mr.Recipe.Weight()
		if weight == 0 {
			continue
		}
		for _, ri := range mr.Recipe.Ingredients {
			for _, in := range ri.Ingredient.Nutrients {
				intakes[in.NutrientID] += mr.Amount * ri.Amount * in.Amount / weight
			}
		}
	}

	return intakes
}

func (s *IntakeService) mealsInRange(ownerID uuid.UUID, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Preload("Ingredients.Ingredient.Nutrients").
		Preload("Recipes.Recipe.Ingredients.Ingredient.Nutrients").
		Where("owner_id = ? AND date >= ? AND date <= ?", ownerID, from, to).
		Order("date").
		Find(&meals).Error
	return meals, err
}

// IntakesByDay returns per-day nutrient intakes for the owner's meals
// in [from, to], keyed by the day in YYYY-MM-DD form.
func (s *IntakeService) IntakesByDay(ownerID uuid.UUID, from, to time.Time) (map[string]map[uuid.UUID]float64, error) {
	meals, err := s.mealsInRange(ownerID, models.NormalizeDate(from), models.NormalizeDate(to))
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]map[uuid.UUID]float64, len(meals))
	for i := range meals {
		byDay[models.NormalizeDate(meals[i].Date).Format("2006-01-02")] = MealIntakes(&meals[i])
	}
	return byDay, nil
}

// AverageIntakes averages daily nutrient intakes over the days in
// [from, to] that have a logged meal. The day count is returned so a
// caller can tell a true zero from an empty log.
func (s *IntakeService) AverageIntakes(ownerID uuid.UUID, from, to time.Time) (map[uuid.UUID]float64, int, error) {
	byDay, err := s.IntakesByDay(ownerID, from, to)
	if err != nil {
		return nil, 0, err
	}

	totals := make(map[uuid.UUID]float64)
	for _, intakes := range byDay {
		for nid, amount := range intakes {
			totals[nid] += amount
		}
	}

	days := len(byDay)
	if days > 0 {
		for nid := range totals {
			totals[nid] /= float64(days)
		}
	}
	return totals, days, nil
}

// NutrientIntakesLastMonth returns one chart point per calendar day of
// the last month with the intake of a single nutrient. Days without a
// logged meal count as zero intake.
func (s *IntakeService) NutrientIntakesLastMonth(ownerID, nutrientID uuid.UUID, now time.Time) ([]DatedValue, error) {
	end := models.NormalizeDate(now)
	start := end.AddDate(0, -1, 0)

	byDay, err := s.IntakesByDay(ownerID, start, end)
	if err != nil {
		return nil, err
	}

	points := make([]DatedValue, 0, 32)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		value := byDay[day.Format("2006-01-02")][nutrientID]
		v := value
		points = append(points, DatedValue{Date: chartLabel(day), Value: &v})
	}
	return points, nil
}

// CalorieNutrients lists the nutrients whose intakes add up to the
// total caloric intake. Nutrients under a parented type (e.g. a single
// fatty acid under Total fat) and components of a compound nutrient are
// excluded so their calories are not counted twice.
func (s *IntakeService) CalorieNutrients() ([]models.Nutrient, error) {
	var componentIDs []uuid.UUID
	if err := s.db.Model(&models.NutrientComponent{}).
		Distinct().Pluck("component_id", &componentIDs).Error; err != nil {
		return nil, err
	}
	excluded := make(map[uuid.UUID]bool, len(componentIDs))
	for _, id := range componentIDs {
		excluded[id] = true
	}

	var nutrients []models.Nutrient
	if err := s.db.Preload("Types").Where("energy > 0").Find(&nutrients).Error; err != nil {
		return nil, err
	}

	ret := nutrients[:0]
	for _, n := range nutrients {
		if excluded[n.ID] {
			continue
		}
		parented := false
		for _, t := range n.Types {
			if t.ParentNutrientID != nil {
				parented = true
				break
			}
		}
		if parented {
			continue
		}
		ret = append(ret, n)
	}
	return ret, nil
}

// CalorieContribution is the share of the caloric intake provided by
// one nutrient.
type CalorieContribution struct {
	Nutrient models.Nutrient `json:"nutrient"`
	Amount   float64         `json:"amount"`
	Calories float64         `json:"calories"`
	// Ratio of the nutrient's calories to the total, in percent.
	Ratio float64 `json:"ratio"`
}

// CalorieBreakdown converts nutrient intakes into per-nutrient calorie
// contributions and the caloric total.
func (s *IntakeService) CalorieBreakdown(intakes map[uuid.UUID]float64) ([]CalorieContribution, float64, error) {
	nutrients, err := s.CalorieNutrients()
	if err != nil {
		return nil, 0, err
	}

	var total float64
	contributions := make([]CalorieContribution, 0, len(nutrients))
	for _, n := range nutrients {
		amount := intakes[n.ID]
		calories := amount * n.Energy
		total += calories
		contributions = append(contributions, CalorieContribution{
			Nutrient: n,
			Amount:   amount,
			Calories: calories,
		})
	}

	if total > 0 {
		for i := range contributions {
			contributions[i].Ratio = 100 * contributions[i].Calories / total
		}
	}

	sort.Slice(contributions, func(i, j int) bool {
		return contributions[i].Calories > contributions[j].Calories
	})
	return contributions, total, nil
}

// CalorieSeries is the last-month caloric contribution of one nutrient,
// one chart point per calendar day.
type CalorieSeries struct {
	Nutrient models.Nutrient `json:"nutrient"`
	Points   []DatedValue    `json:"points"`
}

// CaloriesLastMonth charts the caloric contribution of every calorie
// nutrient per calendar day of the last month, nutrients in reverse
// alphabetical order. The second return is the average daily caloric
// total over the days with a logged meal.
func (s *IntakeService) CaloriesLastMonth(ownerID uuid.UUID, now time.Time) ([]CalorieSeries, float64, error) {
	end := models.NormalizeDate(now)
	start := end.AddDate(0, -1, 0)

	byDay, err := s.IntakesByDay(ownerID, start, end)
	if err != nil {
		return nil, 0, err
	}

	nutrients, err := s.CalorieNutrients()
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(nutrients, func(i, j int) bool {
		return nutrients[i].Name > nutrients[j].Name
	})

	series := make([]CalorieSeries, len(nutrients))
	for i, n := range nutrients {
		series[i] = CalorieSeries{Nutrient: n, Points: make([]DatedValue, 0, 32)}
	}

	var total float64
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		intakes := byDay[day.Format("2006-01-02")]
		for i, n := range nutrients {
			v := intakes[n.ID] * n.Energy
			total += v
			series[i].Points = append(series[i].Points, DatedValue{Date: chartLabel(day), Value: &v})
		}
	}

	var average float64
	if days := len(byDay); days > 0 {
		average = total / float64(days)
	}
	return series, average, nil
}
