package tracker

import (
	"context"
	"fmt"
	"time"

	"better-life/internal/models"
	"better-life/internal/store"
)

var mealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

var intensities = map[string]bool{
	"low":      true,
	"moderate": true,
	"high":     true,
}

// Service validates and records activity tracker entries against the
// injected store.
type Service struct {
	store store.TrackerStore
}

func NewService(st store.TrackerStore) *Service {
	return &Service{store: st}
}

func (s *Service) LogMeal(ctx context.Context, userID string, entry models.MealEntry) (models.MealEntry, error) {
	if !mealTypes[entry.MealType] {
		return models.MealEntry{}, fmt.Errorf("unknown meal type %q", entry.MealType)
	}

	entry.UserID = userID
	entry.Date = defaultDate(entry.Date)
	if entry.Calories == 0 {
		for _, item := range entry.FoodItems {
			entry.Calories += item.Calories
		}
	}

	if err := s.store.SaveMeal(ctx, &entry); err != nil {
		return models.MealEntry{}, fmt.Errorf("failed to save meal: %w", err)
	}
	return entry, nil
}

func (s *Service) LogWorkout(ctx context.Context, userID string, entry models.WorkoutEntry) (models.WorkoutEntry, error) {
	if entry.Duration <= 0 {
		return models.WorkoutEntry{}, fmt.Errorf("duration must be positive")
	}
	if !intensities[entry.Intensity] {
		return models.WorkoutEntry{}, fmt.Errorf("unknown intensity %q", entry.Intensity)
	}

	entry.UserID = userID
	entry.Date = defaultDate(entry.Date)
	if err := s.store.SaveWorkout(ctx, &entry); err != nil {
		return models.WorkoutEntry{}, fmt.Errorf("failed to save workout: %w", err)
	}
	return entry, nil
}

func (s *Service) LogHydration(ctx context.Context, userID string, entry models.HydrationEntry) (models.HydrationEntry, error) {
	if entry.AmountML <= 0 {
		return models.HydrationEntry{}, fmt.Errorf("amount must be positive")
	}

	entry.UserID = userID
	entry.Date = defaultDate(entry.Date)
	if err := s.store.SaveHydration(ctx, &entry); err != nil {
		return models.HydrationEntry{}, fmt.Errorf("failed to save hydration entry: %w", err)
	}
	return entry, nil
}

func (s *Service) Meals(ctx context.Context, userID string) ([]models.MealEntry, error) {
	return s.store.MealsByUser(ctx, userID)
}

func (s *Service) Workouts(ctx context.Context, userID string) ([]models.WorkoutEntry, error) {
	return s.store.WorkoutsByUser(ctx, userID)
}

func (s *Service) Hydration(ctx context.Context, userID string) ([]models.HydrationEntry, error) {
	return s.store.HydrationByUser(ctx, userID)
}

func defaultDate(date string) string {
	if date != "" {
		return date
	}
	return time.Now().UTC().Format("2006-01-02")
}
