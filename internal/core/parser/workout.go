package parser

import "strings"

// ParseWorkoutText 目前只擷取第一行作為描述，動作清單保持空白
func ParseWorkoutText(text string) WorkoutPlan {
	description := strings.TrimSpace(strings.SplitN(normalizeNewlines(text), "\n", 2)[0])
	if description == "" {
		description = DefaultWorkoutDescription
	}
	return WorkoutPlan{
		Title:       DefaultWorkoutTitle,
		Description: description,
		Exercises:   []Exercise{},
	}
}
