package coach

import (
	"context"
	"fmt"
	"strings"
)

// ProgressSummary 進度分析報告
func (s *Service) ProgressSummary(ctx context.Context, userID string) (string, error) {
	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	st := p.state

	weightChange := st.User.CurrentWeight - st.User.InitialWeight
	sign := ""
	if weightChange > 0 {
		sign = "+"
	}
	calories := rounded(st.Nutrition.Calories)
	protein := rounded(st.Nutrition.Protein)

	prompt := fmt.Sprintf(`Generate a comprehensive fitness progress analysis for a young bulking athlete.

User Profile:
- Name: %s
- Age: %d years old
- Goals: %s

Progress Metrics:
- Weight Progress: %skg → %skg (%s%.1fkg change)
- Target Weight: %s
- Workout Streak: %d days
- Workouts This Month: %d sessions
- Today's Nutrition: %d/%s kcal (%s%%), %d/%sg protein (%s%%)

Provide a detailed, motivating analysis in this EXACT format:

**📊 Progress Analysis**
[2-3 sentences evaluating overall progress, weight gain rate (healthy is 0.5-1kg per month for bulking), and consistency. Be specific with numbers.]

**💪 What's Working Well**
• [Specific achievement 1 with data]
• [Specific achievement 2 with data]
• [Specific achievement 3 with data]

**🎯 Areas to Optimize**
• [Specific area 1 with actionable advice]
• [Specific area 2 with actionable advice]
• [Specific area 3 with actionable advice]

**🚀 Next 30 Days Action Plan**
1. [Concrete action item 1 - be specific about numbers/frequency]
2. [Concrete action item 2 - be specific about numbers/frequency]
3. [Concrete action item 3 - be specific about numbers/frequency]
4. [Concrete action item 4 - be specific about numbers/frequency]

**💡 Pro Tips**
[2-3 advanced tips for optimizing bulking results]

Keep it motivating, data-driven, and use a supportive coaching tone!`,
		st.User.Name, p.age, strings.Join(st.User.Goals.Primary, ", "),
		num(st.User.InitialWeight), num(st.User.CurrentWeight), sign, weightChange,
		st.User.Goals.TargetWeight,
		st.WorkoutStreak,
		st.WorkoutsThisMonth(p.now),
		calories, num(st.Nutrition.CalorieGoal), percent(calories, st.Nutrition.CalorieGoal),
		protein, num(st.Nutrition.ProteinGoal), percent(protein, st.Nutrition.ProteinGoal))

	return s.generate(ctx, "progress", prompt)
}

func percent(value int, goal float64) string {
	if goal <= 0 {
		return "0"
	}
	return fmt.Sprintf("%.0f", float64(value)/goal*100)
}
