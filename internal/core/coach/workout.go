package coach

import (
	"context"
	"fmt"
	"strings"

	"fitforge/internal/core/parser"
	"fitforge/internal/core/tracker"
	"fitforge/internal/pkg/common"
)

// WorkoutOptions 訓練生成選項
type WorkoutOptions struct {
	MuscleGroup     string `json:"muscleGroup"`
	DurationMinutes int    `json:"duration"`
	Equipment       string `json:"equipment"`
}

// WithDefaults 補上預設值
func (o WorkoutOptions) WithDefaults() WorkoutOptions {
	if strings.TrimSpace(o.MuscleGroup) == "" {
		o.MuscleGroup = "Full Body"
	}
	if o.DurationMinutes <= 0 {
		o.DurationMinutes = 45
	}
	if strings.TrimSpace(o.Equipment) == "" {
		o.Equipment = "Gym"
	}
	return o
}

// WorkoutResult 原始文字與分類結果
type WorkoutResult struct {
	Raw     string         `json:"raw"`
	Content parser.Content `json:"content"`
}

// GenerateWorkout 生成一次完整訓練
func (s *Service) GenerateWorkout(ctx context.Context, userID string, opts WorkoutOptions) (*WorkoutResult, error) {
	state, err := s.states.State(ctx, userID)
	if err != nil {
		return nil, err
	}
	opts = opts.WithDefaults()

	prompt := fmt.Sprintf(`Create a detailed %d-minute %s workout for bulking and muscle gain.
Equipment available: %s
Fitness level: Intermediate
Goal: Muscle hypertrophy and strength

Format the workout as:
**Warm-up (5 mins)**
- List warm-up exercises

**Main Workout**
For each exercise include:
- Exercise name
- Sets x Reps
- Rest period
- Form tips

**Cool-down (5 mins)**
- Stretching routine

Focus on compound movements and progressive overload. Make it practical and effective for %s's bulking goals.`,
		opts.DurationMinutes, opts.MuscleGroup, opts.Equipment, state.User.Name)

	text, err := s.generate(ctx, "workout", prompt)
	if err != nil {
		return nil, err
	}
	return &WorkoutResult{
		Raw:     text,
		Content: parser.ParseAIContent(text, string(parser.ContentWorkout)),
	}, nil
}

// WorkoutVariations 針對週計畫中某一天建議替代動作
func (s *Service) WorkoutVariations(ctx context.Context, userID, day string) (*WorkoutResult, error) {
	state, err := s.states.State(ctx, userID)
	if err != nil {
		return nil, err
	}

	var workout *tracker.Workout
	for i := range state.WorkoutPlan {
		if strings.EqualFold(state.WorkoutPlan[i].Day, strings.TrimSpace(day)) {
			workout = &state.WorkoutPlan[i]
			break
		}
	}
	if workout == nil {
		return nil, common.NewValidationError(fmt.Sprintf("no workout planned for %q", day))
	}

	prompt := fmt.Sprintf(`I'm doing a workout called "%s". My current exercises are: %s. My main goal is bulking. Suggest 2-3 alternative dumbbell exercises I can do instead to target the same muscle groups. Keep it short and list them simply.`,
		workout.Name, strings.Join(workout.Exercises, ", "))

	text, err := s.generate(ctx, "variations", prompt)
	if err != nil {
		return nil, err
	}
	return &WorkoutResult{
		Raw:     text,
		Content: parser.ParseAIContent(text, string(parser.ContentWorkout)),
	}, nil
}
