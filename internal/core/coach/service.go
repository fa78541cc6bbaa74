package coach

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fitforge/internal/core/tracker"
	"fitforge/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator 單次文字生成
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// StateSource 提供使用者的追蹤狀態，tracker.Service 實作此介面
type StateSource interface {
	State(ctx context.Context, userID string) (*tracker.AppState, error)
	Now() time.Time
}

// Service AI 教練，依使用者狀態組裝提示詞
type Service struct {
	ai     Generator
	states StateSource
}

// NewService 創建教練服務
func NewService(ai Generator, states StateSource) *Service {
	return &Service{
		ai:     ai,
		states: states,
	}
}

// profile 組裝提示詞需要的使用者資料
type profile struct {
	state *tracker.AppState
	now   time.Time
	age   int
}

func (s *Service) loadProfile(ctx context.Context, userID string) (*profile, error) {
	state, err := s.states.State(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.states.Now()
	age, err := tracker.CalculateAge(state.User.DOB, now)
	if err != nil {
		common.LogWarn("Invalid date of birth", zap.String("user_id", userID), zap.Error(err))
		age = 0
	}
	return &profile{state: state, now: now, age: age}, nil
}

// generate 呼叫模型並去除前後空白
func (s *Service) generate(ctx context.Context, feature, prompt string) (string, error) {
	common.LogDebug("Coach prompt", zap.String("feature", feature), zap.Int("prompt_length", len(prompt)))

	text, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s generation failed: %w", feature, err)
	}
	return strings.TrimSpace(text), nil
}

// num 與前端一致的數字格式，整數不帶小數
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func rounded(v float64) int {
	return int(math.Round(v))
}
