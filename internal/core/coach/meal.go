package coach

import (
	"context"
	"fmt"

	"fitforge/internal/core/parser"
)

// SuggestMeal 依今日剩餘的熱量與蛋白質建議下一餐
func (s *Service) SuggestMeal(ctx context.Context, userID string) (string, error) {
	state, err := s.states.State(ctx, userID)
	if err != nil {
		return "", err
	}
	n := state.Nutrition

	prompt := fmt.Sprintf("My fitness goal is bulking for muscle gain. Today I need to consume %s calories and %sg of protein. So far, I've had %d calories and %dg of protein. Suggest a simple, high-protein Indian meal or snack I can have next to help me reach my goal. Be specific and give one option.",
		num(n.CalorieGoal), num(n.ProteinGoal), rounded(n.Calories), rounded(n.Protein))

	return s.generate(ctx, "meal", prompt)
}

// WeeklyMealPlan 七天餐單，依星期拆開
func (s *Service) WeeklyMealPlan(ctx context.Context, userID string) (parser.MealPlan, error) {
	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	st := p.state

	prompt := fmt.Sprintf(`Create a complete 7-day meal plan optimized for bulking and muscle gain.

User Profile:
- Name: %s
- Age: %d
- Current Weight: %skg
- Target: %s
- Daily Nutrition Goals: %s calories, %sg protein

Requirements:
- Cuisine: Primarily Indian meals (with variety)
- Meal Structure: 4 meals per day (Breakfast, Lunch, Snack, Dinner)
- High protein, calorie-dense meals for bulking
- Include both vegetarian and non-vegetarian options
- Practical, easy-to-prepare meals
- Vary meals across the week to avoid monotony

Format EXACTLY as follows for EACH DAY:

**Monday**
🌅 Breakfast: [Meal name] - [calories]kcal, [protein]g protein
🍽️ Lunch: [Meal name] - [calories]kcal, [protein]g protein
🍪 Snack: [Snack name] - [calories]kcal, [protein]g protein
🌙 Dinner: [Meal name] - [calories]kcal, [protein]g protein
📊 Daily Total: ~[total calories] kcal, ~[total protein]g protein

[Repeat for Tuesday through Sunday]

Keep meals simple, affordable, and suitable for muscle building. Include portion sizes and meal timing suggestions where helpful.`,
		st.User.Name, p.age, num(st.User.CurrentWeight), st.User.Goals.TargetWeight,
		num(st.Nutrition.CalorieGoal), num(st.Nutrition.ProteinGoal))

	text, err := s.generate(ctx, "meal_plan", prompt)
	if err != nil {
		return nil, err
	}
	return parser.ParseWeeklyMealPlan(text), nil
}
