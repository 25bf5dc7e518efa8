package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"better-life/internal/models"
	"better-life/internal/store"
)

func TestLogMeal(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	entry, err := svc.LogMeal(ctx, "u-1", models.MealEntry{
		MealType: "lunch",
		FoodItems: []models.FoodItem{
			{Name: "ugali", Calories: 300},
			{Name: "sukuma wiki", Calories: 80},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "u-1", entry.UserID)
	assert.NotEmpty(t, entry.Date)

	// Calories summed from items when not supplied.
	assert.Equal(t, 380, entry.Calories)

	meals, err := svc.Meals(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, meals, 1)
}

func TestLogMealRejectsUnknownType(t *testing.T) {
	svc := NewService(store.NewMemory())

	_, err := svc.LogMeal(context.Background(), "u-1", models.MealEntry{MealType: "brunch"})
	assert.Error(t, err)
}

func TestLogWorkoutValidation(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	_, err := svc.LogWorkout(ctx, "u-1", models.WorkoutEntry{ExerciseType: "run", Duration: 0, Intensity: "high"})
	assert.Error(t, err)

	_, err = svc.LogWorkout(ctx, "u-1", models.WorkoutEntry{ExerciseType: "run", Duration: 30, Intensity: "extreme"})
	assert.Error(t, err)

	entry, err := svc.LogWorkout(ctx, "u-1", models.WorkoutEntry{ExerciseType: "run", Duration: 30, Intensity: "high"})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
}

func TestLogHydration(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	_, err := svc.LogHydration(ctx, "u-1", models.HydrationEntry{AmountML: 0})
	assert.Error(t, err)

	entry, err := svc.LogHydration(ctx, "u-1", models.HydrationEntry{AmountML: 750, Date: "2026-08-30"})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", entry.Date)

	list, err := svc.Hydration(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
