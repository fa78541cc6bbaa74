package coach_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitforge/internal/core/ai/aitest"
	"fitforge/internal/core/coach"
	"fitforge/internal/core/parser"
	"fitforge/internal/core/tracker"
	"fitforge/internal/infrastructure/storage"
	"fitforge/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T, fake *aitest.FakeProvider) (*coach.Service, *tracker.Service) {
	t.Helper()
	return setupWithCache(t, fake, false)
}

func setupWithCache(t *testing.T, fake *aitest.FakeProvider, withCache bool) (*coach.Service, *tracker.Service) {
	t.Helper()
	ai, _ := aitest.NewService(fake, withCache)
	t.Cleanup(func() { _ = ai.Close() })

	states := tracker.NewService(storage.NewMemoryStore(), tracker.WithClock(func() time.Time { return monday }))
	return coach.NewService(ai, states), states
}

func lastPrompt(t *testing.T, fake *aitest.FakeProvider) string {
	t.Helper()
	req := fake.LastRequest()
	require.NotNil(t, req)
	require.NotEmpty(t, req.Messages)
	return req.Messages[len(req.Messages)-1].Content
}

func TestMotivation(t *testing.T) {
	fake := &aitest.FakeProvider{Reply: "  Lift heavy, stay hungry.  "}
	svc, _ := setup(t, fake)

	text, err := svc.Motivation(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Lift heavy, stay hungry.", text)
	assert.Contains(t, lastPrompt(t, fake), "a young guy named Nithin")
}

func TestGenerators_RegenerateCallsModelEveryTime(t *testing.T) {
	fake := &aitest.FakeProvider{Reply: "Fresh take."}
	svc, _ := setupWithCache(t, fake, true)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Motivation(ctx, "u1")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, fake.Calls())

	for i := 0; i < 2; i++ {
		_, err := svc.Recipe(ctx, "u1", coach.RecipeOptions{})
		require.NoError(t, err)
	}
	assert.Equal(t, 4, fake.Calls())
}

func TestMotivation_Fallback(t *testing.T) {
	fake := &aitest.FakeProvider{Err: errors.New("quota exceeded")}
	svc, _ := setup(t, fake)

	text, err := svc.Motivation(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Push through the pain, Nithin! Every rep counts! 💪", text)
}

func TestAsk(t *testing.T) {
	fake := &aitest.FakeProvider{Reply: "Eat more rice."}
	svc, states := setup(t, fake)
	ctx := context.Background()

	_, err := states.AddMeal(ctx, "u1", 1200.4, 60.6)
	require.NoError(t, err)

	answer, err := svc.Ask(ctx, "u1", "How do I gain weight faster?")
	require.NoError(t, err)
	assert.Equal(t, "Eat more rice.", answer)

	prompt := lastPrompt(t, fake)
	assert.Contains(t, prompt, "User Profile: Nithin, Age: 18, Goal: Bulking")
	assert.Contains(t, prompt, "Current Weight: 58kg, Target: 68-75 kg")
	assert.Contains(t, prompt, "Daily Goals: 2800 calories, 115g protein")
	assert.Contains(t, prompt, "Current Progress: 1200 calories, 61g protein consumed today")
	assert.Contains(t, prompt, "User Question: How do I gain weight faster?")
}

func TestAsk_EmptyQuestion(t *testing.T) {
	fake := &aitest.FakeProvider{Reply: "unused"}
	svc, _ := setup(t, fake)

	_, err := svc.Ask(context.Background(), "u1", "   ")
	assert.True(t, common.IsValidationError(err))
	assert.Equal(t, 0, fake.Calls())
}

func TestAsk_ProviderError(t *testing.T) {
	fake := &aitest.FakeProvider{Err: errors.New("upstream down")}
	svc, _ := setup(t, fake)

	_, err := svc.Ask(context.Background(), "u1", "What now?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestGenerateWorkout(t *testing.T) {
	reply := "Leg Blast\nExercise: Squats\nSets: 4\nReps: 8"
	fake := &aitest.FakeProvider{Reply: reply}
	svc, _ := setup(t, fake)

	res, err := svc.GenerateWorkout(context.Background(), "u1", coach.WorkoutOptions{})
	require.NoError(t, err)
	assert.Equal(t, reply, res.Raw)
	assert.Equal(t, parser.ContentWorkout, res.Content.Type)
	plan, ok := res.Content.Content.(parser.WorkoutPlan)
	require.True(t, ok)
	assert.Equal(t, "Leg Blast", plan.Description)

	prompt := lastPrompt(t, fake)
	assert.Contains(t, prompt, "Create a detailed 45-minute Full Body workout")
	assert.Contains(t, prompt, "Equipment available: Gym")
	assert.Contains(t, prompt, "effective for Nithin's bulking goals")
}

func TestGenerateWorkout_Options(t *testing.T) {
	fake := &aitest.FakeProvider{Reply: "Quick arms"}
	svc, _ := setup(t, fake)

	_, err := svc.GenerateWorkout(context.Background(), "u1", coach.WorkoutOptions{MuscleGroup: "Arms", DurationMinutes: 20, Equipment: "Dumbbells"})
	require.NoError(t, err)

	prompt := lastPrompt(t, fake)
	assert.Contains(t, prompt, "Create a detailed 20-minute Arms workout")
	assert.Contains(t, prompt, "Equipment available: Dumbbells")
}

func TestWorkoutVariations(t *testing.T) {
	fake := &aitest.FakeProvider{Reply: "Try floor press."}
	svc, _ := setup(t, fake)

	res, err := svc.WorkoutVariations(context.Background(), "u1", "monday")
	require.NoError(t, err)
	assert.Equal(t, "Try floor press.", res.Raw)
	assert.Contains(t, lastPrompt(t, fake), `I'm doing a workout called "Push Day (Strength)"`)
	assert.Contains(t, lastPrompt(t, fake), "Dumbbell Bench Press, Dumbbell Incline Press, Dumbbell Overhead Press")

	_, err = svc.WorkoutVariations(context.Background(), "u1", "Someday")
	assert.True(t, common.IsValidationError(err))
}

func TestSuggestMeal(t *testing.T) {
	fake := &aitest.FakeProvider{Reply: "Paneer bhurji with 2 rotis."}
	svc, states := setup(t, fake)
	ctx := context.Background()

	_, err := states.AddMeal(ctx, "u1", 650, 32)
	require.NoError(t, err)

	text, err := svc.SuggestMeal(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Paneer bhurji with 2 rotis.", text)
	assert.Contains(t, lastPrompt(t, fake), "Today I need to consume 2800 calories and 115g of protein. So far, I've had 650 calories and 32g of protein.")
}

func TestWeeklyMealPlan(t *testing.T) {
	fake := &aitest.FakeProvider{Reply: "**Monday**\nOats\n**Tuesday**\nEggs"}
	svc, _ := setup(t, fake)

	plan, err := svc.WeeklyMealPlan(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Oats", plan["Monday"])
	assert.Equal(t, "Eggs", plan["Tuesday"])
	assert.Contains(t, lastPrompt(t, fake), "- Daily Nutrition Goals: 2800 calories, 115g protein")
}

func TestRecipe(t *testing.T) {
	reply := `Recipe: Chicken Rice Bowl
A quick bulking bowl.

Ingredients:
- 200g chicken breast
- 1 cup rice

Instructions:
1. Cook the rice.
2. Grill the chicken.

Nutrition:
Protein: 55g
Calories: 700 kcal`
	fake := &aitest.FakeProvider{Reply: reply}
	svc, _ := setup(t, fake)

	res, err := svc.Recipe(context.Background(), "u1", coach.RecipeOptions{Meal: "dinner"})
	require.NoError(t, err)
	assert.Equal(t, "Chicken Rice Bowl", res.Recipe.Title)
	require.Len(t, res.Recipe.Sections, 1)
	assert.Len(t, res.Recipe.Sections[0].Ingredients, 2)
	assert.Len(t, res.Recipe.Sections[0].PreparationSteps, 2)
	assert.Equal(t, "55g", res.Recipe.TotalNutrition.Protein)

	prompt := lastPrompt(t, fake)
	assert.Contains(t, prompt, "Create a dinner recipe (Indian cuisine) for Nithin")
	assert.Contains(t, prompt, "I still need about 2800 calories and 115g of protein today.")
}

func TestProgressSummary(t *testing.T) {
	fake := &aitest.FakeProvider{Reply: "**📊 Progress Analysis**\nGreat work."}
	svc, states := setup(t, fake)
	ctx := context.Background()

	_, err := states.UpdateWeight(ctx, "u1", 60.5)
	require.NoError(t, err)
	_, _, err = states.CheckIn(ctx, "u1")
	require.NoError(t, err)

	_, err = svc.ProgressSummary(ctx, "u1")
	require.NoError(t, err)

	prompt := lastPrompt(t, fake)
	assert.Contains(t, prompt, "- Age: 18 years old")
	assert.Contains(t, prompt, "- Goals: Bulking, Flexibility, Height Maximization")
	assert.Contains(t, prompt, "- Weight Progress: 58kg → 60.5kg (+2.5kg change)")
	assert.Contains(t, prompt, "- Workout Streak: 1 days")
	assert.Contains(t, prompt, "- Workouts This Month: 1 sessions")
	assert.Contains(t, prompt, "- Today's Nutrition: 0/2800 kcal (0%), 0/115g protein (0%)")
}
