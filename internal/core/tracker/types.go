package tracker

// Goals 使用者目標
type Goals struct {
	Primary      []string `json:"primary"`
	TargetWeight string   `json:"targetWeight"`
	TargetHeight string   `json:"targetHeight"`
}

// User 使用者資料，身高單位 cm，體重單位 kg
type User struct {
	Name          string  `json:"name"`
	DOB           string  `json:"dob"`
	InitialHeight float64 `json:"initialHeight"`
	CurrentHeight float64 `json:"currentHeight"`
	InitialWeight float64 `json:"initialWeight"`
	CurrentWeight float64 `json:"currentWeight"`
	Goals         Goals   `json:"goals"`
	ReminderTime  string  `json:"reminderTime"`
}

// Workout 週計畫中的一天
type Workout struct {
	Day         string   `json:"day"`
	Name        string   `json:"name"`
	Exercises   []string `json:"exercises"`
	Completed   bool     `json:"completed"`
	CheckinDate *string  `json:"checkinDate"`
}

// Nutrition 今日攝取量與目標
type Nutrition struct {
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	CalorieGoal float64 `json:"calorieGoal"`
	ProteinGoal float64 `json:"proteinGoal"`
}

// NutritionEntry 新增餐點前的攝取量，用於復原
type NutritionEntry struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// WeightHistory 體重紀錄，Labels 與 Data 一一對應
type WeightHistory struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// AppState 單一使用者的完整追蹤狀態
type AppState struct {
	User             User             `json:"user"`
	WorkoutPlan      []Workout        `json:"workoutPlan"`
	WorkoutStreak    int              `json:"workoutStreak"`
	Nutrition        Nutrition        `json:"nutrition"`
	NutritionHistory []NutritionEntry `json:"nutritionHistory"`
	WeightHistory    WeightHistory    `json:"weightHistory"`
	LastVisitDate    *string          `json:"lastVisitDate"`
	LastWeekReset    *string          `json:"lastWeekReset"`
}

// ProfilePatch 個人資料的部分更新，nil 欄位不變
type ProfilePatch struct {
	Name          *string  `json:"name,omitempty"`
	DOB           *string  `json:"dob,omitempty"`
	CurrentHeight *float64 `json:"currentHeight,omitempty"`
	Goals         *Goals   `json:"goals,omitempty"`
	CalorieGoal   *float64 `json:"calorieGoal,omitempty"`
	ProteinGoal   *float64 `json:"proteinGoal,omitempty"`
}

// Reminder 儀表板提醒卡片
type Reminder struct {
	Time string `json:"time"`
	Text string `json:"text"`
}

// NotificationSchedule 每日通知時間，格式 HH:MM
type NotificationSchedule struct {
	WorkoutTime   string `json:"workoutTime"`
	BreakfastTime string `json:"breakfastTime"`
	LunchTime     string `json:"lunchTime"`
	DinnerTime    string `json:"dinnerTime"`
}

// Notification 每日重複的本機通知
type Notification struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Repeats bool   `json:"repeats"`
}
