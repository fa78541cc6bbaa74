package tracker

import (
	"fmt"
	"strings"
	"time"

	"fitforge/internal/pkg/common"
)

// DefaultState 新使用者的初始狀態：增肌計畫與一週訓練表
func DefaultState() *AppState {
	return &AppState{
		User: User{
			Name:          "Nithin",
			DOB:           "2007-05-04",
			InitialHeight: 167.64,
			CurrentHeight: 167.64,
			InitialWeight: 58,
			CurrentWeight: 58,
			Goals: Goals{
				Primary:      []string{"Bulking", "Flexibility", "Height Maximization"},
				TargetWeight: "68-75 kg",
				TargetHeight: `5'8"-5'9"`,
			},
			ReminderTime: "17:30",
		},
		WorkoutPlan: []Workout{
			{Day: "Sunday", Name: "Active Recovery & Height", Exercises: []string{"Walking", "Stretching", "Dead Hangs"}},
			{Day: "Monday", Name: "Push Day (Strength)", Exercises: []string{"Dumbbell Bench Press", "Dumbbell Incline Press", "Dumbbell Overhead Press"}},
			{Day: "Tuesday", Name: "Pull Day (Strength)", Exercises: []string{"Pull-Ups", "Bent-Over Dumbbell Rows", "Bicep Curls"}},
			{Day: "Wednesday", Name: "Leg Day (Strength)", Exercises: []string{"Goblet Squats", "Romanian Deadlifts", "Walking Lunges"}},
			{Day: "Thursday", Name: "Upper Body (Hypertrophy)", Exercises: []string{"Push-Ups", "Single-Arm Rows", "Lateral Raises"}},
			{Day: "Friday", Name: "Core & Full Body", Exercises: []string{"Plank", "Supermans", "Dumbbell Thrusters"}},
			{Day: "Saturday", Name: "Full Body & Skipping HIIT", Exercises: []string{"Dumbbell Thrusters", "Renegade Rows", "Skipping"}},
		},
		Nutrition: Nutrition{
			CalorieGoal: 2800,
			ProteinGoal: 115,
		},
		NutritionHistory: []NutritionEntry{},
		WeightHistory: WeightHistory{
			Labels: []string{"Start"},
			Data:   []float64{58},
		},
	}
}

// TodaysWorkout 依星期名稱找出今天的訓練，沒有時回傳 nil
func (s *AppState) TodaysWorkout(now time.Time) *Workout {
	today := TodayName(now)
	for i := range s.WorkoutPlan {
		if s.WorkoutPlan[i].Day == today {
			return &s.WorkoutPlan[i]
		}
	}
	return nil
}

// ResetDaily 跨日時重置：未在今天打卡的訓練取消完成、斷簽歸零、攝取量歸零。
// 回傳狀態是否有變動。
func (s *AppState) ResetDaily(now time.Time) bool {
	today := TodayDate(now)
	if s.LastVisitDate != nil && *s.LastVisitDate == today {
		return false
	}

	var lastCheckin string
	for i := range s.WorkoutPlan {
		w := &s.WorkoutPlan[i]
		if w.CheckinDate == nil || *w.CheckinDate != today {
			w.Completed = false
		}
		if w.CheckinDate != nil && *w.CheckinDate > lastCheckin {
			lastCheckin = *w.CheckinDate
		}
	}

	yesterday := TodayDate(now.AddDate(0, 0, -1))
	if lastCheckin != "" && lastCheckin < yesterday {
		s.WorkoutStreak = 0
	}

	s.Nutrition.Calories = 0
	s.Nutrition.Protein = 0
	s.NutritionHistory = []NutritionEntry{}
	s.LastVisitDate = &today
	return true
}

// CheckIn 今天的訓練標記完成並累加連續天數；已完成或今天沒有訓練時回傳 false
func (s *AppState) CheckIn(now time.Time) bool {
	w := s.TodaysWorkout(now)
	if w == nil || w.Completed {
		return false
	}

	today := TodayDate(now)
	w.Completed = true
	w.CheckinDate = &today
	s.WorkoutStreak++
	return true
}

// AddMeal 記錄新增前的攝取量後累加
func (s *AppState) AddMeal(calories, protein float64) error {
	if calories < 0 || protein < 0 {
		return common.NewValidationError("calories and protein must not be negative")
	}

	s.NutritionHistory = append(s.NutritionHistory, NutritionEntry{
		Calories: s.Nutrition.Calories,
		Protein:  s.Nutrition.Protein,
	})
	s.Nutrition.Calories += calories
	s.Nutrition.Protein += protein
	return nil
}

// UndoMeal 還原到上一次新增前的攝取量；沒有紀錄時回傳 false
func (s *AppState) UndoMeal() bool {
	n := len(s.NutritionHistory)
	if n == 0 {
		return false
	}

	prev := s.NutritionHistory[n-1]
	s.Nutrition.Calories = prev.Calories
	s.Nutrition.Protein = prev.Protein
	s.NutritionHistory = s.NutritionHistory[:n-1]
	return true
}

// ResetNutrition 攝取量歸零並清除復原紀錄
func (s *AppState) ResetNutrition() {
	s.Nutrition.Calories = 0
	s.Nutrition.Protein = 0
	s.NutritionHistory = []NutritionEntry{}
}

// SetReminder 設定訓練提醒時間
func (s *AppState) SetReminder(hhmm string) error {
	if _, _, err := ParseClock(hhmm); err != nil {
		return err
	}
	s.User.ReminderTime = hhmm
	return nil
}

// UpdateWeight 更新目前體重並新增一筆 "Month <n>" 紀錄
func (s *AppState) UpdateWeight(kg float64) error {
	if kg <= 0 {
		return common.NewValidationError("weight must be positive")
	}

	s.User.CurrentWeight = kg
	s.WeightHistory.Labels = append(s.WeightHistory.Labels, fmt.Sprintf("Month %d", len(s.WeightHistory.Labels)))
	s.WeightHistory.Data = append(s.WeightHistory.Data, kg)
	return nil
}

// UpdateProfile 套用個人資料的部分更新
func (s *AppState) UpdateProfile(p ProfilePatch) error {
	if p.Name != nil {
		if *p.Name == "" {
			return common.NewValidationError("name must not be empty")
		}
		s.User.Name = *p.Name
	}
	if p.DOB != nil {
		if _, err := time.Parse(dateLayout, *p.DOB); err != nil {
			return common.NewValidationError("dob must be YYYY-MM-DD")
		}
		s.User.DOB = *p.DOB
	}
	if p.CurrentHeight != nil {
		if *p.CurrentHeight <= 0 {
			return common.NewValidationError("height must be positive")
		}
		s.User.CurrentHeight = *p.CurrentHeight
	}
	if p.Goals != nil {
		s.User.Goals = *p.Goals
	}
	if p.CalorieGoal != nil {
		if *p.CalorieGoal <= 0 {
			return common.NewValidationError("calorie goal must be positive")
		}
		s.Nutrition.CalorieGoal = *p.CalorieGoal
	}
	if p.ProteinGoal != nil {
		if *p.ProteinGoal <= 0 {
			return common.NewValidationError("protein goal must be positive")
		}
		s.Nutrition.ProteinGoal = *p.ProteinGoal
	}
	return nil
}

// WorkoutsThisMonth 本月打卡過的訓練數
func (s *AppState) WorkoutsThisMonth(now time.Time) int {
	month := TodayDate(now)[:7]
	count := 0
	for _, w := range s.WorkoutPlan {
		if w.CheckinDate != nil && strings.HasPrefix(*w.CheckinDate, month) {
			count++
		}
	}
	return count
}
