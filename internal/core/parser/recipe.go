package parser

import (
	"fmt"
	"regexp"
	"strings"

	"fitforge/internal/pkg/common"

	"go.uber.org/zap"
)

var (
	recipeMarkerRe = regexp.MustCompile(`(?i)Recipe:\s*(.+?)(?:\n|$)`)

	ingredientsBlockRe = regexp.MustCompile(`(?is)Ingredients:?\s*(.*?)(?:Instructions|Preparation|Directions|Method|Steps|$)`)
	stepsBlockRe       = regexp.MustCompile(`(?is)(?:Instructions|Preparation|Directions|Method|Steps):?\s*(.*?)(?:Approximate\s*Nutrition|Nutrition|Notes|Tips|$)`)
	nutritionBlockRe   = regexp.MustCompile(`(?is)(?:Approximate\s*Nutritional\s*Information|Nutrition(?:al)?(?:\s*Information)?):?\s*(.*?)(?:\n[ \t]*\n|$)`)

	ingredientLineRe = regexp.MustCompile(`(?i)^[-•*]?\s*(?:(\d+[\d/\s]*(?:g|kg|ml|cups?|tbsp|tsp|oz|pounds?|pieces?|slices?))\s+)?(.+)$`)
	stepMarkerRe     = regexp.MustCompile(`^[\d.)\-]+\s*`)

	quantity   = `~?\s*(\d[\d,]*(?:\.\d+)?)(?:\s*(?:-|–|to)\s*~?\s*(\d[\d,]*(?:\.\d+)?))?`
	proteinRe  = regexp.MustCompile(`(?i)Protein\**:?\**\s*` + quantity + `\s*g`)
	caloriesRe = regexp.MustCompile(`(?i)Calories\**:?\**\s*` + quantity)
)

// ParseRecipeText 將模型產生的自由文字整理為 StructuredRecipe。
// 不會回傳錯誤；任何非預期狀況都回傳完整的預設食譜。
func ParseRecipeText(text string) (recipe StructuredRecipe) {
	defer func() {
		if r := recover(); r != nil {
			common.LogWarn("Failed to parse recipe text, using default recipe",
				zap.Any("error", r),
				zap.Int("text_length", len(text)),
			)
			recipe = DefaultRecipe()
		}
	}()

	text = normalizeNewlines(text)
	lines := strings.Split(text, "\n")
	title, titleIdx := extractTitle(text, lines)
	nutrition := extractNutrition(text)

	return StructuredRecipe{
		Title:       title,
		Description: extractDescription(lines, titleIdx),
		Sections: []RecipeSection{
			{
				Title:            DefaultSectionTitle,
				Ingredients:      extractIngredients(text),
				PreparationSteps: extractSteps(text),
				NutritionInfo:    &nutrition,
			},
		},
		TotalNutrition: nutrition,
	}
}

// normalizeNewlines 將 CRLF 與單獨的 CR 統一為 LF
func normalizeNewlines(text string) string {
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
}

// extractTitle 取第一個非空行，並回傳其行號；沒有時找 "Recipe:" 標記
func extractTitle(text string, lines []string) (string, int) {
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		title := cleanTitle(line)
		if title != "" {
			return title, i
		}
		break
	}

	if m := recipeMarkerRe.FindStringSubmatch(text); m != nil {
		if title := cleanTitle(m[1]); title != "" {
			return title, -1
		}
	}
	return DefaultRecipeTitle, -1
}

func cleanTitle(line string) string {
	line = strings.TrimSpace(strings.TrimLeft(line, "#"))
	line = strings.TrimSpace(strings.Trim(line, "*"))
	if len(line) >= len("Recipe:") && strings.EqualFold(line[:len("Recipe:")], "Recipe:") {
		line = strings.TrimSpace(line[len("Recipe:"):])
	}
	return line
}

// extractDescription 標題之後的兩行
func extractDescription(lines []string, titleIdx int) string {
	start := titleIdx + 1
	if titleIdx < 0 {
		start = 1
	}
	if start >= len(lines) {
		return DefaultRecipeDescription
	}
	end := start + 2
	if end > len(lines) {
		end = len(lines)
	}

	description := strings.TrimSpace(strings.Join(lines[start:end], " "))
	if description == "" {
		return DefaultRecipeDescription
	}
	return description
}

func extractIngredients(text string) []Ingredient {
	ingredients := []Ingredient{}
	m := ingredientsBlockRe.FindStringSubmatch(text)
	if m == nil {
		return ingredients
	}

	for _, line := range nonBlankLines(m[1]) {
		parts := ingredientLineRe.FindStringSubmatch(line)
		if parts == nil {
			ingredients = append(ingredients, Ingredient{
				Amount: DefaultAmount,
				Name:   strings.TrimSpace(strings.TrimLeft(line, "-•* ")),
			})
			continue
		}

		amount := strings.TrimSpace(parts[1])
		if amount == "" {
			amount = DefaultAmount
		}
		ingredients = append(ingredients, Ingredient{
			Amount: amount,
			Name:   strings.TrimSpace(parts[2]),
		})
	}
	return ingredients
}

func extractSteps(text string) []PreparationStep {
	steps := []PreparationStep{}
	m := stepsBlockRe.FindStringSubmatch(text)
	if m == nil {
		return steps
	}

	for _, line := range nonBlankLines(m[1]) {
		step := strings.TrimSpace(stepMarkerRe.ReplaceAllString(line, ""))
		if step == "" {
			continue
		}
		steps = append(steps, PreparationStep{Step: step})
	}
	return steps
}

// extractNutrition 範圍值取上限（增肌取較高估計），找不到時為零值
func extractNutrition(text string) NutritionInfo {
	info := NutritionInfo{Protein: ZeroProtein, Calories: ZeroCalories}
	m := nutritionBlockRe.FindStringSubmatch(text)
	if m == nil {
		return info
	}
	block := strings.TrimSpace(m[1])

	if value, ok := upperBound(proteinRe.FindStringSubmatch(block)); ok {
		info.Protein = fmt.Sprintf("%sg", value)
	}
	if value, ok := upperBound(caloriesRe.FindStringSubmatch(block)); ok {
		info.Calories = fmt.Sprintf("%s kcal", value)
	}
	return info
}

// upperBound 有範圍時取第二個數字，否則取唯一的數字
func upperBound(match []string) (string, bool) {
	if match == nil {
		return "", false
	}
	value := match[1]
	if len(match) > 2 && match[2] != "" {
		value = match[2]
	}
	value = strings.ReplaceAll(value, ",", "")
	return value, value != ""
}

func nonBlankLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
