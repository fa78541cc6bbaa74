package tracker

import (
	"fmt"
	"time"
)

// 預設的用餐通知時間
const (
	DefaultBreakfastTime = "08:00"
	DefaultLunchTime     = "12:30"
	DefaultDinnerTime    = "19:00"
)

// 通知 ID，補水提醒為 10 + 小時
const (
	NotificationWorkout    = 1
	NotificationPreWorkout = 2
	NotificationBreakfast  = 3
	NotificationLunch      = 4
	NotificationDinner     = 5

	hydrationIDBase    = 10
	hydrationFirstHour = 8
	hydrationLastHour  = 20
	hydrationEvery     = 3
)

// Reminders 依目前時段產生儀表板提醒，沒有符合的時段時提醒補水
func (s *AppState) Reminders(now time.Time) []Reminder {
	hour := now.Hour()
	var reminders []Reminder

	if hour >= 8 && hour < 10 {
		reminders = append(reminders, Reminder{Time: "Breakfast", Text: "Time for a high-protein breakfast to start your day strong."})
	}
	if hour >= 12 && hour < 14 {
		reminders = append(reminders, Reminder{Time: "Lunch", Text: "Refuel with a balanced lunch. Don't forget your carbs for energy."})
	}

	if reminderHour, _, err := ParseClock(s.User.ReminderTime); err == nil {
		if hour == reminderHour-1 {
			reminders = append(reminders, Reminder{Time: "Pre-Workout", Text: "Your workout is in an hour. Have a light snack like a banana."})
		}
		if hour >= reminderHour && hour < reminderHour+2 {
			name := "workout"
			if w := s.TodaysWorkout(now); w != nil {
				name = w.Name
			}
			reminders = append(reminders, Reminder{Time: "Workout Time!", Text: fmt.Sprintf("It's time for your %s. Go crush it!", name)})
		}
	}

	if len(reminders) == 0 {
		reminders = append(reminders, Reminder{Time: "Stay Hydrated", Text: "Remember to drink water throughout the day."})
	}
	return reminders
}

// WithDefaults 空白欄位以預設時間補上，訓練時間使用 workoutTime
func (s NotificationSchedule) WithDefaults(workoutTime string) NotificationSchedule {
	if s.WorkoutTime == "" {
		s.WorkoutTime = workoutTime
	}
	if s.BreakfastTime == "" {
		s.BreakfastTime = DefaultBreakfastTime
	}
	if s.LunchTime == "" {
		s.LunchTime = DefaultLunchTime
	}
	if s.DinnerTime == "" {
		s.DinnerTime = DefaultDinnerTime
	}
	return s
}

// BuildNotificationPlan 產生每日重複的通知清單
func BuildNotificationPlan(schedule NotificationSchedule) ([]Notification, error) {
	workoutHour, workoutMin, err := ParseClock(schedule.WorkoutTime)
	if err != nil {
		return nil, err
	}
	breakfastHour, breakfastMin, err := ParseClock(schedule.BreakfastTime)
	if err != nil {
		return nil, err
	}
	lunchHour, lunchMin, err := ParseClock(schedule.LunchTime)
	if err != nil {
		return nil, err
	}
	dinnerHour, dinnerMin, err := ParseClock(schedule.DinnerTime)
	if err != nil {
		return nil, err
	}

	preWorkoutHour := 23
	if workoutHour > 0 {
		preWorkoutHour = workoutHour - 1
	}

	plan := []Notification{
		{ID: NotificationWorkout, Title: "💪 Workout Time!", Body: "It's time for your workout. Let's get strong!", Hour: workoutHour, Minute: workoutMin},
		{ID: NotificationPreWorkout, Title: "🍌 Pre-Workout Snack", Body: "Your workout is in 1 hour. Have a light snack!", Hour: preWorkoutHour, Minute: workoutMin},
		{ID: NotificationBreakfast, Title: "🍳 Breakfast Time!", Body: "Start your day with a high-protein breakfast.", Hour: breakfastHour, Minute: breakfastMin},
		{ID: NotificationLunch, Title: "🥗 Lunch Time!", Body: "Refuel with a balanced lunch. Don't forget your carbs!", Hour: lunchHour, Minute: lunchMin},
		{ID: NotificationDinner, Title: "🍽️ Dinner Time!", Body: "Time for a protein-rich dinner to recover and grow.", Hour: dinnerHour, Minute: dinnerMin},
	}

	for hour := hydrationFirstHour; hour <= hydrationLastHour; hour += hydrationEvery {
		plan = append(plan, Notification{
			ID:    hydrationIDBase + hour,
			Title: "💧 Stay Hydrated",
			Body:  "Remember to drink water!",
			Hour:  hour,
		})
	}

	for i := range plan {
		plan[i].Repeats = true
	}
	return plan, nil
}
