package parser

// Ingredient 食材，amount 無法辨識時為 "as needed"
type Ingredient struct {
	Amount string `json:"amount"`
	Name   string `json:"name"`
}

// PreparationStep 製作步驟
type PreparationStep struct {
	Step string `json:"step"`
}

// NutritionInfo 營養資訊，數值帶單位，例如 "65g"、"800 kcal"
type NutritionInfo struct {
	Protein  string `json:"protein"`
	Calories string `json:"calories"`
}

// RecipeSection 食譜段落
type RecipeSection struct {
	Title            string            `json:"title"`
	Ingredients      []Ingredient      `json:"ingredients"`
	PreparationSteps []PreparationStep `json:"preparationSteps"`
	NutritionInfo    *NutritionInfo    `json:"nutritionInfo,omitempty"`
}

// StructuredRecipe 由模型文字整理出的食譜
type StructuredRecipe struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Sections       []RecipeSection `json:"sections"`
	TotalNutrition NutritionInfo   `json:"totalNutrition"`
}

// WorkoutPlan 訓練內容（目前只有標題與描述）
type WorkoutPlan struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Exercises   []Exercise `json:"exercises"`
}

// Exercise 單一動作
type Exercise struct {
	Name string `json:"name"`
	Sets string `json:"sets,omitempty"`
	Reps string `json:"reps,omitempty"`
	Rest string `json:"rest,omitempty"`
}

// ContentType 內容類型
type ContentType string

const (
	ContentRecipe  ContentType = "recipe"
	ContentWorkout ContentType = "workout"
	ContentText    ContentType = "text"
)

// Content 分類後的內容，Content 依 Type 為 StructuredRecipe、WorkoutPlan 或 string
type Content struct {
	Type    ContentType `json:"type"`
	Content any         `json:"content"`
}

const (
	DefaultRecipeTitle       = "AI-Generated Recipe"
	DefaultRecipeDescription = "A nutritious meal recommendation"
	DefaultSectionTitle      = "Main Dish"
	DefaultAmount            = "as needed"
	ZeroProtein              = "0g"
	ZeroCalories             = "0 kcal"

	DefaultWorkoutTitle       = "AI-Generated Workout"
	DefaultWorkoutDescription = "A customized workout plan"
)

// DefaultRecipe 解析失敗時回傳的完整預設結構，每次呼叫都是新的實例
func DefaultRecipe() StructuredRecipe {
	return StructuredRecipe{
		Title:       DefaultRecipeTitle,
		Description: DefaultRecipeDescription,
		Sections: []RecipeSection{
			{
				Title:            DefaultSectionTitle,
				Ingredients:      []Ingredient{},
				PreparationSteps: []PreparationStep{},
				NutritionInfo:    &NutritionInfo{Protein: ZeroProtein, Calories: ZeroCalories},
			},
		},
		TotalNutrition: NutritionInfo{Protein: ZeroProtein, Calories: ZeroCalories},
	}
}
