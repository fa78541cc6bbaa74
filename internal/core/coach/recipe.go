package coach

import (
	"context"
	"fmt"
	"strings"

	"fitforge/internal/core/parser"
)

// RecipeOptions 食譜選項
type RecipeOptions struct {
	Meal    string `json:"meal"`
	Cuisine string `json:"cuisine"`
}

// RecipeResult 原始文字與解析後的食譜
type RecipeResult struct {
	Raw    string                  `json:"raw"`
	Recipe parser.StructuredRecipe `json:"recipe"`
}

// Recipe 生成符合目標的高蛋白食譜，並整理成結構化格式
func (s *Service) Recipe(ctx context.Context, userID string, opts RecipeOptions) (*RecipeResult, error) {
	state, err := s.states.State(ctx, userID)
	if err != nil {
		return nil, err
	}

	meal := strings.TrimSpace(opts.Meal)
	if meal == "" {
		meal = "high-protein meal"
	}
	cuisine := strings.TrimSpace(opts.Cuisine)
	if cuisine == "" {
		cuisine = "Indian"
	}

	remainingCalories := state.Nutrition.CalorieGoal - state.Nutrition.Calories
	remainingProtein := state.Nutrition.ProteinGoal - state.Nutrition.Protein
	if remainingCalories < 0 {
		remainingCalories = 0
	}
	if remainingProtein < 0 {
		remainingProtein = 0
	}

	prompt := fmt.Sprintf(`Create a %s recipe (%s cuisine) for %s, who is bulking for muscle gain.
I still need about %d calories and %dg of protein today.

Format EXACTLY as follows:
Recipe: [Recipe name]
[One sentence description]

Ingredients:
- [amount] [ingredient]

Instructions:
1. [step]

Nutrition (per serving):
Protein: [number]g
Calories: [number] kcal

Keep it simple, affordable and easy to prepare.`,
		meal, cuisine, state.User.Name, rounded(remainingCalories), rounded(remainingProtein))

	text, err := s.generate(ctx, "recipe", prompt)
	if err != nil {
		return nil, err
	}
	return &RecipeResult{Raw: text, Recipe: parser.ParseRecipeText(text)}, nil
}
