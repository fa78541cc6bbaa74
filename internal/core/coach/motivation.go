package coach

import (
	"context"
	"fmt"

	"fitforge/internal/pkg/common"

	"go.uber.org/zap"
)

// Motivation 每日激勵語，模型失敗時回傳固定語句
func (s *Service) Motivation(ctx context.Context, userID string) (string, error) {
	state, err := s.states.State(ctx, userID)
	if err != nil {
		return "", err
	}
	name := state.User.Name

	prompt := fmt.Sprintf("Give me a short, powerful, Gen-Z style motivational quote for a young guy named %s who is focused on bulking up and hitting the gym. Make it energetic and straight to the point.", name)

	text, err := s.generate(ctx, "motivation", prompt)
	if err != nil || text == "" {
		common.LogWarn("Using fallback motivation", zap.String("user_id", userID), zap.Error(err))
		return FallbackMotivation(name), nil
	}
	return text, nil
}

// FallbackMotivation 模型無法回應時的激勵語
func FallbackMotivation(name string) string {
	return fmt.Sprintf("Push through the pain, %s! Every rep counts! 💪", name)
}
