package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoCurrentMeal is returned when no meal is selected or the
// selection has expired.
var ErrNoCurrentMeal = errors.New("no current meal selected")

// CurrentMealService remembers which meal a profile is currently
// logging to, so item shortcuts don't need to name the meal every time.
// The selection lives in Redis and expires after a period of
// inactivity; every read or write refreshes the timer.
type CurrentMealService struct {
	redis  *redis.Client
	expiry time.Duration
}

func NewCurrentMealService(redisClient *redis.Client, expiry time.Duration) *CurrentMealService {
	return &CurrentMealService{redis: redisClient, expiry: expiry}
}

func currentMealKey(profileID uuid.UUID) string {
	return fmt.Sprintf("current_meal:%s", profileID)
}

// Set selects the meal the profile is logging to.
func (s *CurrentMealService) Set(ctx context.Context, profileID, mealID uuid.UUID) error {
	return s.redis.Set(ctx, currentMealKey(profileID), mealID.String(), s.expiry).Err()
}

// Get returns the selected meal and refreshes the inactivity timer.
func (s *CurrentMealService) Get(ctx context.Context, profileID uuid.UUID) (uuid.UUID, error) {
	key := currentMealKey(profileID)
	val, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return uuid.Nil, ErrNoCurrentMeal
	}
	if err != nil {
		return uuid.Nil, err
	}

	mealID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, err
	}

	if s.expiry > 0 {
		if err := s.redis.Expire(ctx, key, s.expiry).Err(); err != nil {
			return uuid.Nil, err
		}
	}
	return mealID, nil
}

// Clear drops the selection.
func (s *CurrentMealService) Clear(ctx context.Context, profileID uuid.UUID) error {
	return s.redis.Del(ctx, currentMealKey(profileID)).Err()
}
