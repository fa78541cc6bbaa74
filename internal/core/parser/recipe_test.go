package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chickenRiceText = "Ingredients:\n- 200g Chicken breast\n- 1 cup Rice\nInstructions:\n1. Grill chicken\n2. Boil rice\nNutrition Information:\nProtein: 45g\nCalories: 650 kcal"

func TestParseRecipeText_ChickenRice(t *testing.T) {
	recipe := ParseRecipeText(chickenRiceText)

	require.Len(t, recipe.Sections, 1)
	section := recipe.Sections[0]
	assert.Equal(t, DefaultSectionTitle, section.Title)
	assert.Equal(t, []Ingredient{
		{Amount: "200g", Name: "Chicken breast"},
		{Amount: "1 cup", Name: "Rice"},
	}, section.Ingredients)
	assert.Equal(t, []PreparationStep{
		{Step: "Grill chicken"},
		{Step: "Boil rice"},
	}, section.PreparationSteps)

	want := NutritionInfo{Protein: "45g", Calories: "650 kcal"}
	require.NotNil(t, section.NutritionInfo)
	assert.Equal(t, want, *section.NutritionInfo)
	assert.Equal(t, want, recipe.TotalNutrition)
}

func TestParseRecipeText_FullRecipe(t *testing.T) {
	text := `Paneer Bhurji Power Bowl
A protein-packed Indian breakfast.
Perfect for bulking days.

Ingredients:
- 200g paneer
* 2 tbsp butter
• 1/2 cup onions, chopped
- Salt to taste
- 2 garlic cloves

Preparation:
1) Heat the butter in a pan.
2. Add onions and saute.
- Crumble in the paneer.

Approximate Nutritional Information:
**Protein:** ~38g
**Calories:** 520 kcal

Enjoy!`

	recipe := ParseRecipeText(text)

	assert.Equal(t, "Paneer Bhurji Power Bowl", recipe.Title)
	assert.Equal(t, "A protein-packed Indian breakfast. Perfect for bulking days.", recipe.Description)

	section := recipe.Sections[0]
	assert.Equal(t, []Ingredient{
		{Amount: "200g", Name: "paneer"},
		{Amount: "2 tbsp", Name: "butter"},
		{Amount: "1/2 cup", Name: "onions, chopped"},
		{Amount: "as needed", Name: "Salt to taste"},
		{Amount: "as needed", Name: "2 garlic cloves"},
	}, section.Ingredients)
	assert.Equal(t, []PreparationStep{
		{Step: "Heat the butter in a pan."},
		{Step: "Add onions and saute."},
		{Step: "Crumble in the paneer."},
	}, section.PreparationSteps)
	assert.Equal(t, NutritionInfo{Protein: "38g", Calories: "520 kcal"}, recipe.TotalNutrition)
}

func TestParseRecipeText_ProteinRangeTakesUpperBound(t *testing.T) {
	tests := []struct {
		name         string
		nutrition    string
		wantProtein  string
		wantCalories string
	}{
		{"plain range", "Protein: 60-65g", "65g", "0 kcal"},
		{"tilde range", "Protein: ~60-65g\nCalories: ~750-800 kcal", "65g", "800 kcal"},
		{"spaced range", "Protein: 60 - 65 g\nCalories: 750 to 800", "65g", "800 kcal"},
		{"single values", "Protein: 42.5g\nCalories: 2,800 kcal", "42.5g", "2800 kcal"},
		{"markdown", "* **Protein**: 55g\n* **Calories**: 700", "55g", "700 kcal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe := ParseRecipeText("Meal\nNutrition Information:\n" + tt.nutrition)
			assert.Equal(t, tt.wantProtein, recipe.TotalNutrition.Protein)
			assert.Equal(t, tt.wantCalories, recipe.TotalNutrition.Calories)
		})
	}
}

func TestParseRecipeText_MissingSections(t *testing.T) {
	recipe := ParseRecipeText("Just eat more rice and dal today.")

	assert.Equal(t, "Just eat more rice and dal today.", recipe.Title)
	assert.Equal(t, DefaultRecipeDescription, recipe.Description)
	require.Len(t, recipe.Sections, 1)
	assert.NotNil(t, recipe.Sections[0].Ingredients)
	assert.Empty(t, recipe.Sections[0].Ingredients)
	assert.NotNil(t, recipe.Sections[0].PreparationSteps)
	assert.Empty(t, recipe.Sections[0].PreparationSteps)
	assert.Equal(t, NutritionInfo{Protein: ZeroProtein, Calories: ZeroCalories}, recipe.TotalNutrition)
}

func TestParseRecipeText_NutritionStopsAtBlankLine(t *testing.T) {
	text := "Oats\nNutrition:\nCalories: 400\n\nProtein: 90g"
	recipe := ParseRecipeText(text)

	assert.Equal(t, "400 kcal", recipe.TotalNutrition.Calories)
	assert.Equal(t, ZeroProtein, recipe.TotalNutrition.Protein)
}

func TestParseRecipeText_WindowsLineEndings(t *testing.T) {
	text := "Oats\r\nNutrition:\r\nCalories: 400\r\n\r\nProtein: 90g"
	recipe := ParseRecipeText(text)

	assert.Equal(t, "400 kcal", recipe.TotalNutrition.Calories)
	assert.Equal(t, ZeroProtein, recipe.TotalNutrition.Protein)

	// 整份食譜與 LF 版本結果相同
	assert.Equal(t, ParseRecipeText(chickenRiceText), ParseRecipeText(strings.ReplaceAll(chickenRiceText, "\n", "\r\n")))
}

func TestParseRecipeText_Title(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line", "Egg Curry\nrest", "Egg Curry"},
		{"recipe marker on first line", "Recipe: Chole Masala\nrest", "Chole Masala"},
		{"markdown heading", "## **Rajma Rice**\nrest", "Rajma Rice"},
		{"leading blank lines", "\n\n  Soya Chunks Pulao\nrest", "Soya Chunks Pulao"},
		{"empty", "", DefaultRecipeTitle},
		{"marker after heading-only line", "###\nRecipe: Dal Tadka", "Dal Tadka"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRecipeText(tt.text).Title)
		})
	}
}

func TestParseRecipeText_EmptyInputIsDefaultShape(t *testing.T) {
	recipe := ParseRecipeText("")
	def := DefaultRecipe()

	assert.Equal(t, def.Title, recipe.Title)
	assert.Equal(t, def.Description, recipe.Description)
	assert.Equal(t, def.TotalNutrition, recipe.TotalNutrition)
	require.Len(t, recipe.Sections, 1)
	assert.Equal(t, def.Sections[0].Title, recipe.Sections[0].Title)
	assert.Equal(t, *def.Sections[0].NutritionInfo, *recipe.Sections[0].NutritionInfo)
}

func TestParseRecipeText_Idempotent(t *testing.T) {
	inputs := []string{
		chickenRiceText,
		"",
		"random words\nwith Steps: and Tips",
		strings.Repeat("Ingredients: Method: Nutrition: ", 50),
	}
	for _, in := range inputs {
		assert.Equal(t, ParseRecipeText(in), ParseRecipeText(in))
	}
}

func TestParseRecipeText_AlwaysFullyPopulated(t *testing.T) {
	inputs := []string{
		"\x00\xff\xfe",
		"Ingredients:",
		"Instructions:\n\n\n",
		"Nutrition Information: Protein: g Calories: kcal",
		"Recipe:",
		strings.Repeat("-", 10000),
		"Ingredients:\n- 999999999999999999999999g flour\nSteps:\n)))\n---\n1.\n",
	}
	for _, in := range inputs {
		recipe := ParseRecipeText(in)
		assert.NotEmpty(t, recipe.Title)
		assert.NotEmpty(t, recipe.Description)
		require.Len(t, recipe.Sections, 1)
		assert.NotNil(t, recipe.Sections[0].Ingredients)
		assert.NotNil(t, recipe.Sections[0].PreparationSteps)
		assert.NotNil(t, recipe.Sections[0].NutritionInfo)
		assert.NotEmpty(t, recipe.TotalNutrition.Protein)
		assert.NotEmpty(t, recipe.TotalNutrition.Calories)
	}
}

func TestDefaultRecipe_IsFreshCopy(t *testing.T) {
	a := DefaultRecipe()
	a.Sections[0].NutritionInfo.Protein = "100g"

	b := DefaultRecipe()
	assert.Equal(t, ZeroProtein, b.Sections[0].NutritionInfo.Protein)
}
