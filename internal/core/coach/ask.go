package coach

import (
	"context"
	"fmt"
	"strings"

	"fitforge/internal/pkg/common"
)

// Ask 回答使用者的健身問題，提示詞附上目前的進度
func (s *Service) Ask(ctx context.Context, userID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", common.NewValidationError("question is required")
	}

	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	st := p.state

	prompt := fmt.Sprintf(`User Profile: %s, Age: %d, Goal: Bulking
Current Weight: %skg, Target: %s
Daily Goals: %s calories, %sg protein
Current Progress: %d calories, %dg protein consumed today
Workout Streak: %d days

You are a knowledgeable, motivating fitness coach specializing in bulking and muscle gain for young adults. Provide practical, actionable advice. Keep responses concise and encouraging.

User Question: %s`,
		st.User.Name, p.age,
		num(st.User.CurrentWeight), st.User.Goals.TargetWeight,
		num(st.Nutrition.CalorieGoal), num(st.Nutrition.ProteinGoal),
		rounded(st.Nutrition.Calories), rounded(st.Nutrition.Protein),
		st.WorkoutStreak,
		question)

	return s.generate(ctx, "coach", prompt)
}
