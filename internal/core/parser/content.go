package parser

import "strings"

var (
	recipeKeywords  = []string{"Ingredients:", "Instructions:", "Preparation:"}
	workoutKeywords = []string{"Exercise:", "Sets:", "Reps:"}
)

// ParseAIContent 依提示或關鍵字判斷內容類型並解析。
// hint 為 "recipe" 時優先走食譜；其次是關鍵字；"workout" 提示排在食譜關鍵字之後。
func ParseAIContent(text string, hint string) Content {
	if text == "" {
		return Content{Type: ContentText, Content: ""}
	}

	if hint == string(ContentRecipe) || containsAny(text, recipeKeywords) {
		return Content{Type: ContentRecipe, Content: ParseRecipeText(text)}
	}

	if hint == string(ContentWorkout) || containsAny(text, workoutKeywords) {
		return Content{Type: ContentWorkout, Content: ParseWorkoutText(text)}
	}

	return Content{Type: ContentText, Content: text}
}

// containsAny 區分大小寫
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
